package cmake

import (
	"path/filepath"
	"strconv"

	"github.com/tmaxmax/ndkbuild/pkg/toolchain"
)

// StrippedSuffix is appended to the library's path to name the stripped copy.
const StrippedSuffix = ".striped"

// BuildConfig holds the parameters of a build. Relative paths are resolved
// against Dir.
type BuildConfig struct {
	// Dir is the working directory of every process.
	Dir string
	// SourceDir contains the top level CMakeLists.txt.
	SourceDir string
	// BuildDir is the CMake binary directory.
	BuildDir string
	// Target is the CMake target built. The library produced is lib<Target>.so.
	Target    string
	BuildType string
	Generator string
	// ABI is the Android ABI compiled for.
	ABI string
	// APILevel is the minimum Android API level.
	APILevel int
	// CMake is the cmake executable.
	CMake string
	// MakeProgram is the build tool CMake generates for, Ninja by default.
	MakeProgram           string
	ExportCompileCommands bool
	// Extra entries, set after the defaults, which they may override.
	Extra Definitions
}

// DefaultBuildConfig returns the configuration building CHelperAndroid for
// arm64-v8a, API level 24, in Release mode with Ninja.
func DefaultBuildConfig(dir string, platform toolchain.Platform) BuildConfig {
	return BuildConfig{
		Dir:                   dir,
		SourceDir:             "CHelper-Core",
		BuildDir:              filepath.Join("build", "android_core"),
		Target:                "CHelperAndroid",
		BuildType:             "Release",
		Generator:             "Ninja",
		ABI:                   "arm64-v8a",
		APILevel:              24,
		CMake:                 "cmake",
		MakeProgram:           platform.DefaultMakeProgram(),
		ExportCompileCommands: true,
	}
}

func (c BuildConfig) resolve(path string) string {
	if filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Artifacts returns the paths of the library and of its stripped copy.
func (c BuildConfig) Artifacts() Artifacts {
	lib := filepath.Join(c.resolve(c.BuildDir), "lib"+c.Target+".so")
	return Artifacts{
		Library:  lib,
		Stripped: lib + StrippedSuffix,
	}
}

// Definitions returns the cache entries passed to the configure stage for the given NDK.
func (c BuildConfig) Definitions(release toolchain.Release) Definitions {
	ndk := release.InstallDir()
	api := strconv.Itoa(c.APILevel)

	var d Definitions
	d.Set("CMAKE_BUILD_TYPE", c.BuildType)
	d.Set("CMAKE_TOOLCHAIN_FILE", release.ToolchainFile())
	d.Set("ANDROID_ABI", c.ABI)
	d.Set("ANDROID_NDK", ndk)
	d.Set("ANDROID_PLATFORM", "android-"+api)
	d.Set("CMAKE_ANDROID_ARCH_ABI", c.ABI)
	d.Set("CMAKE_ANDROID_NDK", ndk)
	d.Set("CMAKE_EXPORT_COMPILE_COMMANDS", onOff(c.ExportCompileCommands))
	if c.MakeProgram != "" {
		d.Set("CMAKE_MAKE_PROGRAM", c.MakeProgram)
	}
	d.Set("CMAKE_SYSTEM_NAME", "Android")
	d.Set("CMAKE_SYSTEM_VERSION", api)
	d.Merge(c.Extra)

	return d
}

// Artifacts are the files produced by a build.
type Artifacts struct {
	// Library is the unstripped shared library.
	Library string
	// Stripped is the stripped copy. It may be missing, as stripping is best effort.
	Stripped string
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
