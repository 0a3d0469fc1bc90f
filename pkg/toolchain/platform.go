package toolchain

import (
	"fmt"
	"runtime"
)

// Platform is the host platform family the NDK is downloaded for.
type Platform int

const (
	// Posix covers every non-Windows host. The NDK ships Linux binaries for it.
	Posix Platform = iota
	// Windows hosts use the windows NDK archive and .exe tools.
	Windows
)

type platformInfo struct {
	name string
	// archiveTag is the suffix used by the NDK archive names and download URLs.
	archiveTag string
	// prebuiltHost is the directory under toolchains/llvm/prebuilt holding host binaries.
	prebuiltHost string
	exeSuffix    string
	// defaultMakeProgram is the Ninja executable shipped with the Android SDK's CMake.
	defaultMakeProgram string
}

var platforms = [...]platformInfo{
	Posix: {
		name:               "posix",
		archiveTag:         "linux",
		prebuiltHost:       "linux-x86_64",
		exeSuffix:          "",
		defaultMakeProgram: "/opt/android-sdk/cmake/3.22.1/bin/ninja",
	},
	Windows: {
		name:               "windows",
		archiveTag:         "windows",
		prebuiltHost:       "windows-x86_64",
		exeSuffix:          ".exe",
		defaultMakeProgram: "D:/AS/sdk/cmake/3.22.1/bin/ninja.exe",
	},
}

// DetectPlatform returns the platform of the running process.
func DetectPlatform() Platform {
	return PlatformFromGOOS(runtime.GOOS)
}

// PlatformFromGOOS maps a GOOS value to a Platform. Anything that isn't
// "windows" is treated as Posix.
func PlatformFromGOOS(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Posix
}

func (p Platform) info() platformInfo {
	if p < 0 || int(p) >= len(platforms) {
		panic(fmt.Sprintf("toolchain: invalid platform %d", int(p)))
	}
	return platforms[p]
}

// ArchiveTag is the platform token used in NDK archive names and URLs.
func (p Platform) ArchiveTag() string { return p.info().archiveTag }

// PrebuiltHost is the name of the prebuilt host directory inside the NDK.
func (p Platform) PrebuiltHost() string { return p.info().prebuiltHost }

// Executable appends the platform's executable suffix to name.
func (p Platform) Executable(name string) string { return name + p.info().exeSuffix }

// DefaultMakeProgram is the Ninja path used when none is configured.
func (p Platform) DefaultMakeProgram() string { return p.info().defaultMakeProgram }

func (p Platform) String() string { return p.info().name }
