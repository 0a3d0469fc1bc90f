package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/tmaxmax/ndkbuild/internal/config"
	"github.com/tmaxmax/ndkbuild/internal/logging"
	"github.com/tmaxmax/ndkbuild/pkg/toolchain"
)

var (
	configPath string
	rootDir    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "ndkbuild",
	Short:         "Build the Android core library with an automatically provisioned NDK",
	Long:          `Downloads the Android NDK if it is missing, then configures, builds and strips the Android core library with CMake and Ninja.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Repository root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(buildCmd, fetchCmd, pathsCmd, toolsCmd)
}

// env holds everything resolved once at startup and shared by the commands.
type env struct {
	config  *config.Config
	release toolchain.Release
	logger  arbor.ILogger
}

func setup() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if rootDir != "" {
		cfg.Root = rootDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	release, err := cfg.Release(toolchain.DetectPlatform())
	if err != nil {
		return nil, err
	}

	return &env{
		config:  cfg,
		release: release,
		logger:  logging.New(cfg.Logging.Level),
	}, nil
}

// Cancellation is not supported: stages always run to completion.
func commandContext() context.Context {
	return context.Background()
}
