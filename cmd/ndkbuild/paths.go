package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the resolved NDK and build paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		bc := e.config.BuildConfig(e.release)
		artifacts := bc.Artifacts()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Platform: %s\n", e.release.Platform)
		fmt.Fprintf(out, "NDK: %s\n", e.release.InstallDir())
		for _, m := range e.config.NDK.Mirrors {
			fmt.Fprintf(out, "URL: %s\n", e.release.URL(m))
		}
		fmt.Fprintf(out, "Archive: %s\n", e.release.ArchivePath())
		fmt.Fprintf(out, "Toolchain file: %s\n", e.release.ToolchainFile())
		fmt.Fprintf(out, "Strip: %s\n", e.release.StripTool())
		fmt.Fprintf(out, "Library: %s\n", artifacts.Library)
		fmt.Fprintf(out, "Stripped: %s\n", artifacts.Stripped)

		return nil
	},
}
