package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/senderplus/internal/model"
)

// NewAdvanceCmd creates the advance command.
func NewAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <tracking-id>",
		Short: "Move a package to its next delivery stage",
		Long: `Advance asks the delivery service to move a package to the next stage
and prints the refreshed status.

A package that has already been delivered stays delivered; the service
reports the unchanged status rather than an error.

Examples:
  # Advance a package one stage
  senderplus advance dbd92eb6

  # Show the full report after advancing
  senderplus advance --json dbd92eb6`,
		Args: cobra.ExactArgs(1),
		RunE: runAdvanceCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output the refreshed record as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")

	addClientFlags(cmd)

	return cmd
}

// runAdvanceCmd executes the advance command.
func runAdvanceCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildClientConfig(cmd)
	if err != nil {
		return err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	id, err := model.NewTrackingID(args[0])
	if err != nil {
		return err
	}

	c, err := newServiceClient(cfg, logger)
	if err != nil {
		return err
	}

	pkg, err := c.Advance(context.Background(), id)
	if err != nil {
		return err
	}

	// Plain mode prints a one-line confirmation before the report so the
	// new stage is visible at a glance.
	if !cfg.JSONReport && !cfg.MarkdownReport && cfg.ReportFile == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Package %s is now: %s\n",
			pkg.TrackingID, pkg.DisplayStatus())
	}

	return outputReport(cmd, cfg, pkg)
}
