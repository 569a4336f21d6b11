// Package main provides the barista CLI: inspection tools for serialized
// computation graphs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

// NewCLI builds the root command with all subcommands attached.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "barista",
		Short:         "Inspect Caffe2-style computation graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Printf("barista %s\n", version)
				return
			}
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.AddCommand(
		newSummaryCmd(),
		newDumpCmd(),
	)
	return rootCmd
}

func main() {
	if err := NewCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
