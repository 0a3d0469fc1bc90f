package cmake

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/tmaxmax/ndkbuild/pkg/toolchain"
)

// A Builder builds a library with CMake against a provisioned NDK.
type Builder struct {
	// Release is the NDK used. It must already be installed; this is not checked.
	Release toolchain.Release
	Config  BuildConfig
	// Runner defaults to an ExecRunner.
	Runner Runner
	Logger arbor.ILogger
}

// Build runs the configure, build and strip stages in order.
// A failure of the configure or build stage stops the build and is returned
// as a *StageError. The strip stage is best effort: its failure is logged and
// Build still succeeds, with the unstripped library left untouched.
func (b *Builder) Build(ctx context.Context) (Artifacts, error) {
	artifacts := b.Config.Artifacts()

	for _, inv := range []Invocation{b.ConfigureInvocation(), b.BuildInvocation()} {
		if err := b.runStage(ctx, inv); err != nil {
			return Artifacts{}, err
		}
	}

	b.bestEffort(ctx, b.StripInvocation())

	b.logger().Info().Str("library", artifacts.Library).Str("stripped", artifacts.Stripped).Msg("Build completed")

	return artifacts, nil
}

func (b *Builder) runStage(ctx context.Context, inv Invocation) error {
	b.logger().Info().Str("stage", inv.Stage.String()).Msg(inv.String())

	if err := b.runner().Run(ctx, inv); err != nil {
		return &StageError{
			Stage:      inv.Stage,
			Invocation: inv,
			ExitCode:   ExitCode(err),
			BuildDir:   b.Config.resolve(b.Config.BuildDir),
			Err:        err,
		}
	}

	return nil
}

// bestEffort runs inv and discards its outcome. A failed strip leaves a
// usable unstripped library, so it is only reported.
func (b *Builder) bestEffort(ctx context.Context, inv Invocation) {
	b.logger().Info().Str("stage", inv.Stage.String()).Msg(inv.String())

	if err := b.runner().Run(ctx, inv); err != nil {
		b.logger().Warn().Err(err).Str("stage", inv.Stage.String()).Msg("Ignoring failure, the unstripped library is kept")
	}
}

// ConfigureInvocation returns the cmake command generating the build files.
func (b *Builder) ConfigureInvocation() Invocation {
	c := b.Config
	defs := c.Definitions(b.Release)

	args := []string{"-S", c.resolve(c.SourceDir)}
	args = append(args, defs.Args()...)
	args = append(args, "-B", c.resolve(c.BuildDir), "-G", c.Generator)

	return Invocation{Stage: StageConfigure, Program: c.CMake, Args: args, Dir: c.Dir}
}

// BuildInvocation returns the cmake command building the target.
func (b *Builder) BuildInvocation() Invocation {
	c := b.Config
	return Invocation{
		Stage:   StageBuild,
		Program: c.CMake,
		Args:    []string{"--build", c.resolve(c.BuildDir), "--target", c.Target},
		Dir:     c.Dir,
	}
}

// StripInvocation returns the llvm-strip command writing the stripped copy of the library.
func (b *Builder) StripInvocation() Invocation {
	a := b.Config.Artifacts()
	return Invocation{
		Stage:   StageStrip,
		Program: b.Release.StripTool(),
		Args:    []string{a.Library, "-o", a.Stripped},
		Dir:     b.Config.Dir,
	}
}

func (b *Builder) runner() Runner {
	if b.Runner == nil {
		return ExecRunner{}
	}
	return b.Runner
}

func (b *Builder) logger() arbor.ILogger {
	if b.Logger == nil {
		b.Logger = arbor.NewLogger()
	}
	return b.Logger
}
