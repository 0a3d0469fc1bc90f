package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmaxmax/ndkbuild/pkg/cmake"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the build tools that would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		bc := e.config.BuildConfig(e.release)
		out := cmd.OutOrStdout()

		for _, tool := range []string{bc.CMake, bc.MakeProgram, e.release.StripTool()} {
			info, err := cmake.ProbeTool(commandContext(), tool)
			if err != nil {
				fmt.Fprintf(out, "%s: not available (%v)\n\n", tool, err)
				continue
			}
			fmt.Fprintf(out, "Tool: %s\nPath: %s\nVersion: %s\n\n", info.Name, info.Path, info.Version)
		}

		return nil
	},
}
