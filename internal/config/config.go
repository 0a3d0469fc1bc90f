// Package config loads the settings of a build. Without a configuration file,
// environment overrides or flags, the settings are the built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/tmaxmax/ndkbuild/internal/logging"
	"github.com/tmaxmax/ndkbuild/pkg/cmake"
	"github.com/tmaxmax/ndkbuild/pkg/toolchain"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NDKBUILD_"

// Config represents the build configuration.
type Config struct {
	// Root is the repository root: the NDK is installed and the build runs there.
	Root    string        `toml:"root"`
	NDK     NDKConfig     `toml:"ndk"`
	Build   BuildConfig   `toml:"build"`
	Logging LoggingConfig `toml:"logging"`
}

type NDKConfig struct {
	Version string   `toml:"version"`
	Mirrors []string `toml:"mirrors"` // Base URLs, in order of preference
}

type BuildConfig struct {
	SourceDir string `toml:"source_dir"`
	BuildDir  string `toml:"build_dir"`
	Target    string `toml:"target"`
	BuildType string `toml:"build_type"`
	CMake     string `toml:"cmake"`
	Ninja     string `toml:"ninja"` // Empty means the platform default
}

type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	def := cmake.DefaultBuildConfig("", toolchain.Posix)

	return &Config{
		Root: ".",
		NDK: NDKConfig{
			Version: toolchain.DefaultVersion,
			Mirrors: []string{toolchain.DefaultMirror},
		},
		Build: BuildConfig{
			SourceDir: def.SourceDir,
			BuildDir:  def.BuildDir,
			Target:    def.Target,
			BuildType: def.BuildType,
			CMake:     def.CMake,
		},
		Logging: LoggingConfig{
			Level: logging.DefaultLevel,
		},
	}
}

// Load loads configuration with priority: defaults -> .env -> file -> environment.
// The file is optional; pass an empty path to skip it.
func Load(path string) (*Config, error) {
	config := NewDefaultConfig()

	_ = godotenv.Load()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("config: failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if len(config.NDK.Mirrors) == 0 {
		return nil, fmt.Errorf("config: no NDK mirror configured")
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if root := os.Getenv(EnvPrefix + "ROOT"); root != "" {
		config.Root = root
	}
	if version := os.Getenv(EnvPrefix + "NDK_VERSION"); version != "" {
		config.NDK.Version = version
	}
	if mirrors := os.Getenv(EnvPrefix + "NDK_MIRRORS"); mirrors != "" {
		config.NDK.Mirrors = splitList(mirrors)
	}
	if cmakePath := os.Getenv(EnvPrefix + "CMAKE"); cmakePath != "" {
		config.Build.CMake = cmakePath
	}
	if ninja := os.Getenv(EnvPrefix + "NINJA"); ninja != "" {
		config.Build.Ninja = ninja
	}
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Release returns the NDK release described by the configuration.
func (c *Config) Release(platform toolchain.Platform) (toolchain.Release, error) {
	return toolchain.NewRelease(c.NDK.Version, platform, c.Root)
}

// BuildConfig returns the build parameters for the given release. The
// release's root is the build's working directory.
func (c *Config) BuildConfig(release toolchain.Release) cmake.BuildConfig {
	bc := cmake.DefaultBuildConfig(release.Root, release.Platform)
	bc.SourceDir = c.Build.SourceDir
	bc.BuildDir = c.Build.BuildDir
	bc.Target = c.Build.Target
	bc.BuildType = c.Build.BuildType
	bc.CMake = c.Build.CMake
	if c.Build.Ninja != "" {
		bc.MakeProgram = c.Build.Ninja
	}
	return bc
}
