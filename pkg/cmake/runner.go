package cmake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

var execCommandContext = exec.CommandContext

// Stage is one step of a build.
type Stage int

const (
	StageConfigure Stage = iota
	StageBuild
	StageStrip
)

var stageNames = [...]string{
	StageConfigure: "configure",
	StageBuild:     "build",
	StageStrip:     "strip",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// An Invocation is an external command run by one stage.
type Invocation struct {
	Stage   Stage
	Program string
	Args    []string
	// Dir is the working directory. The current directory is used if empty.
	Dir string
}

// String renders the invocation as a shell command line, for diagnostics.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, quote(i.Program))
	for _, a := range i.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\"'") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

// A Runner runs an invocation to completion.
type Runner interface {
	// Run returns a non-nil error if the process could not be started or
	// exited with a non-zero status.
	Run(ctx context.Context, inv Invocation) error
}

// ExecRunner runs invocations as child processes. Their output is passed
// through, not parsed.
type ExecRunner struct {
	// Stdout defaults to os.Stdout.
	Stdout io.Writer
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

var _ Runner = ExecRunner{}

func (r ExecRunner) Run(ctx context.Context, inv Invocation) error {
	cmd := execCommandContext(ctx, inv.Program, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = orDefault(r.Stdout, os.Stdout)
	cmd.Stderr = orDefault(r.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cmake: %s failed: %w", inv.Stage, err)
	}

	return nil
}

func orDefault(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// ExitCode returns the exit status carried by err, or -1 if the process
// did not exit normally or was never started.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
