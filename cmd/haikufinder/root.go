// Package main provides the entry point for the haikufinder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for haikufinder.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "haikufinder",
		Short: "Find accidental haikus hiding in song lyrics",
		Long: `Haikufinder scans song lyric corpora (CSV files) for accidental haikus:
three consecutive lines whose estimated syllable counts form the 5-7-5
pattern.

Detected haikus are cached in a local SQLite database. The post command
picks a random unposted haiku and publishes it to X; set DRY_RUN=false in
the environment to post for real.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewPostCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
