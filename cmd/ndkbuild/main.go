package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tmaxmax/ndkbuild/pkg/cmake"
	"github.com/tmaxmax/ndkbuild/pkg/toolchain/provision"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints the recovery instructions of provisioning and build failures,
// or the bare error otherwise.
func report(w io.Writer, err error) {
	var provErr *provision.Error
	var stageErr *cmake.StageError

	switch {
	case errors.As(err, &provErr):
		fmt.Fprint(w, provErr.RecoveryHint())
	case errors.As(err, &stageErr):
		fmt.Fprint(w, stageErr.RecoveryHint())
	default:
		fmt.Fprintln(w, err)
	}
}
