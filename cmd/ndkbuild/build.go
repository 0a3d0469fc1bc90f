package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmaxmax/ndkbuild/pkg/cmake"
	"github.com/tmaxmax/ndkbuild/pkg/mirror"
	"github.com/tmaxmax/ndkbuild/pkg/toolchain/provision"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Provision the NDK, then configure, build and strip the library",
	RunE:  runBuild,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and extract the NDK if it is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		_, err = e.provisioner().EnsureToolchain(commandContext())
		return err
	},
}

func runBuild(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	ctx := commandContext()

	if _, err := e.provisioner().EnsureToolchain(ctx); err != nil {
		return err
	}

	builder := &cmake.Builder{
		Release: e.release,
		Config:  e.config.BuildConfig(e.release),
		Logger:  e.logger,
	}

	e.logTools(ctx, builder.Config)

	_, err = builder.Build(ctx)
	return err
}

func (e *env) provisioner() *provision.Provisioner {
	return &provision.Provisioner{
		Release:  e.release,
		Mirrors:  e.config.NDK.Mirrors,
		Resolver: &mirror.Prober{},
		Progress: os.Stdout,
		Logger:   e.logger,
	}
}

func (e *env) logTools(ctx context.Context, bc cmake.BuildConfig) {
	for _, tool := range []string{bc.CMake, bc.MakeProgram} {
		info, err := cmake.ProbeTool(ctx, tool)
		if err != nil {
			e.logger.Warn().Err(err).Msg("Build tool not found")
			continue
		}
		e.logger.Debug().Str("path", info.Path).Str("version", info.Version).Msg(info.Name)
	}
}
