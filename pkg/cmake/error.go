package cmake

import (
	"fmt"
	"strings"
)

// StageError is returned by Build when the configure or build stage fails.
type StageError struct {
	Stage      Stage
	Invocation Invocation
	// ExitCode is the process' exit status, -1 if it never ran to completion.
	ExitCode int
	// BuildDir is the CMake binary directory of the failed build.
	BuildDir string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("cmake: %s stage failed (exit code %d): %v", e.Stage, e.ExitCode, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// RecoveryHint renders a diagnostic for the failed stage.
func (e *StageError) RecoveryHint() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Failed to %s the Android core: %v\n", e.Stage, e.Err)
	b.WriteString("\n--- Failed Command ---\n")
	fmt.Fprintf(&b, "   %s\n", e.Invocation)
	if e.Invocation.Dir != "" {
		fmt.Fprintf(&b, "   (working directory: %s)\n", e.Invocation.Dir)
	}
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, "   (exit code: %d)\n", e.ExitCode)
	} else {
		b.WriteString("   (the process could not be started, check that the program exists)\n")
	}
	fmt.Fprintf(&b, "Inspect the output above, fix the issue and rerun. Build files are in: %s\n", e.BuildDir)

	return b.String()
}
