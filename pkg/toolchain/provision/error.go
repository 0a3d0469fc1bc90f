package provision

import (
	"fmt"
	"strings"
)

// Error is returned by EnsureToolchain when the NDK could not be downloaded or extracted.
// It holds everything needed to install the NDK by hand.
type Error struct {
	// Cause is the underlying fetch or extraction failure.
	Cause error
	// URL the archive was downloaded from.
	URL string
	// Root is the directory the archive must be extracted into.
	Root string
	// TargetDir is the expected installation directory.
	TargetDir string
	// DirName is the name the extracted directory must have.
	DirName string
}

func (e *Error) Error() string {
	return fmt.Sprintf("provision: failed to download or extract NDK: %v", e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// RecoveryHint renders the manual installation instructions for the failed release.
func (e *Error) RecoveryHint() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Failed to download or extract NDK: %v\n", e.Cause)
	b.WriteString("\n--- Alternative Download Method ---\n")
	b.WriteString("1. Manually download Android NDK:\n")
	fmt.Fprintf(&b, "   %s\n", e.URL)
	fmt.Fprintf(&b, "2. Extract it to: %s\n", e.Root)
	fmt.Fprintf(&b, "3. Ensure the folder is named: %s\n", e.DirName)
	fmt.Fprintf(&b, "   (expected path: %s)\n", e.TargetDir)

	return b.String()
}
