// Package main provides the entry point for the SenderPlus CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/senderplus/internal/log"
)

// NewRootCmd creates the root command for SenderPlus.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "senderplus",
		Short: "Submit and track parcels on the campus delivery service",
		Long: `SenderPlus submits parcels to the campus delivery service and tracks
them through the delivery stages, from the bus station to the recipient.

A local demo service is included: run 'senderplus serve' and the submit,
track, and advance commands work against it with no extra configuration.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSubmitCmd())
	cmd.AddCommand(NewTrackCmd())
	cmd.AddCommand(NewAdvanceCmd())
	cmd.AddCommand(NewServeCmd())
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

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the sanitizing structured logger.
// Contact details routinely flow through submission diagnostics, so the
// secure handler masks them even in verbose mode.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}
