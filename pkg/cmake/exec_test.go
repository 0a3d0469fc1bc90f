package cmake

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeExecCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
	return cmd
}

// TestHelperProcess stands in for the external tools.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	args = args[1:]

	switch args[0] {
	case "cmake":
		if len(args) > 1 && args[1] == "--version" {
			fmt.Print("cmake version 3.22.1\n\nCMake suite maintained and supported by Kitware (kitware.com/cmake).\n")
		} else {
			fmt.Println("-- Configuring done")
		}
		os.Exit(0)
	case "ninja":
		fmt.Println("1.10.2")
		os.Exit(0)
	case "llvm-strip":
		fmt.Print("LLVM (http://llvm.org/):\n  LLVM version 17.0.2\n  Optimized build.\n")
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "CMake Error: something went wrong")
		os.Exit(3)
	}

	os.Exit(2)
}

func useFakeExec(tb testing.TB) {
	tb.Helper()

	execCommandContext = fakeExecCommand
	tb.Cleanup(func() { execCommandContext = exec.CommandContext })
}

func TestExecRunner_Run(t *testing.T) {
	useFakeExec(t)

	var stdout, stderr bytes.Buffer
	r := ExecRunner{Stdout: &stdout, Stderr: &stderr}

	err := r.Run(context.Background(), Invocation{Stage: StageConfigure, Program: "cmake", Args: []string{"-S", "."}})
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "Configuring done")

	err = r.Run(context.Background(), Invocation{Stage: StageBuild, Program: "fail"})
	require.Error(t, err)
	require.Equal(t, 3, ExitCode(err))
	require.Contains(t, stderr.String(), "CMake Error")
}

func TestBuilder_ExitCode(t *testing.T) {
	useFakeExec(t)

	b := &Builder{Config: BuildConfig{CMake: "fail", BuildDir: "build"}}

	_, err := b.Build(context.Background())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, StageConfigure, stageErr.Stage)
	require.Equal(t, 3, stageErr.ExitCode)
	require.Contains(t, stageErr.RecoveryHint(), "exit code: 3")
}

func TestExitCode_NotStarted(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), Invocation{Stage: StageStrip, Program: "/nonexistent/llvm-strip"})
	require.Error(t, err)
	require.Equal(t, -1, ExitCode(err))
}

func TestProbeTool(t *testing.T) {
	useFakeExec(t)

	type test struct {
		tool   string
		expect string
	}

	tests := []test{
		{"cmake", "3.22.1"},
		{"ninja", "1.10.2"},
		{"llvm-strip", "17.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			info, err := ProbeTool(context.Background(), tt.tool)
			require.NoError(t, err)
			require.Equal(t, tt.tool, info.Name)
			require.Equal(t, tt.expect, info.Version)
			require.NotEmpty(t, info.Path)
		})
	}

	_, err := ProbeTool(context.Background(), "fail")
	require.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	require.Equal(t, "3.22.1", parseVersion([]byte("cmake version 3.22.1\r\n")))
	require.Equal(t, "1.10.2", parseVersion([]byte("1.10.2")))
	require.Equal(t, "", parseVersion(nil))
}
