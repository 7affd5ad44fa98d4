package main

import (
	"fmt"
	"os"

	"github.com/biocore/biocore-cli/cmd"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "biocore",
		Short: "Drive BioCore compound/target analyses from the terminal",
		Long: `biocore submits a compound + protein target payload to a BioCore analysis
webhook, tracks the run while the remote pipeline works, and renders the
returned markdown report.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewRunCmd(),
		cmd.NewConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("biocore version %s\n", version)
		},
	}
}
