package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultVersion is the NDK release used when none is configured.
const DefaultVersion = "r29"

// DefaultMirror is the base URL NDK archives are downloaded from.
const DefaultMirror = "https://googledownloads.cn/android/repository"

// A Release identifies one NDK release for one host platform, installed under Root.
// The existence of InstallDir is the only signal that the release is provisioned:
// its contents are never inspected.
type Release struct {
	// Version of the NDK, for example "r29".
	Version string
	// Platform the release is downloaded for.
	Platform Platform
	// Root is the directory the archive is downloaded to and extracted in.
	Root string
}

// NewRelease creates a release for the given version and platform rooted at root.
// The version must be non-empty and must not contain path separators.
func NewRelease(version string, platform Platform, root string) (Release, error) {
	if !isValidVersion(version) {
		return Release{}, fmt.Errorf("toolchain: invalid NDK version %q", version)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Release{}, fmt.Errorf("toolchain: failed to resolve root %q: %w", root, err)
	}

	return Release{Version: version, Platform: platform, Root: abs}, nil
}

// DirName is the name of the NDK's top level directory, as found inside the archive.
func (r Release) DirName() string {
	return "android-ndk-" + r.Version
}

// ArchiveName is the file name of the platform-specific NDK archive.
func (r Release) ArchiveName() string {
	return fmt.Sprintf("android-ndk-%s-%s.zip", r.Version, r.Platform.ArchiveTag())
}

// URL returns the archive URL on the mirror with the given base URL.
func (r Release) URL(base string) string {
	return strings.TrimRight(base, "/") + "/" + r.ArchiveName()
}

// InstallDir is where the NDK lives once provisioned.
func (r Release) InstallDir() string {
	return filepath.Join(r.Root, r.DirName())
}

// ArchivePath is where the archive is downloaded to before extraction.
func (r Release) ArchivePath() string {
	return filepath.Join(r.Root, r.ArchiveName())
}

// ToolchainFile is the CMake toolchain file shipped with the NDK.
func (r Release) ToolchainFile() string {
	return filepath.Join(r.InstallDir(), "build", "cmake", "android.toolchain.cmake")
}

// PrebuiltBin is the directory holding the NDK's LLVM host binaries.
func (r Release) PrebuiltBin() string {
	return filepath.Join(r.InstallDir(), "toolchains", "llvm", "prebuilt", r.Platform.PrebuiltHost(), "bin")
}

// StripTool is the path of the NDK's llvm-strip executable.
func (r Release) StripTool() string {
	return filepath.Join(r.PrebuiltBin(), r.Platform.Executable("llvm-strip"))
}

func isValidVersion(version string) bool {
	return version != "" && !strings.ContainsAny(version, string([]rune{'/', '\\', os.PathSeparator, os.PathListSeparator}))
}
