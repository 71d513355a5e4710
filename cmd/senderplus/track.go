package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/senderplus/internal/config"
	"github.com/nao1215/senderplus/internal/model"
	"github.com/nao1215/senderplus/internal/report"
)

// NewTrackCmd creates the track command.
func NewTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track <tracking-id>",
		Short: "Look up a package by its tracking ID",
		Long: `Track fetches the current state of a package and prints a delivery
report with a progress checklist.

Examples:
  # Human-readable report
  senderplus track dbd92eb6

  # Raw record as JSON
  senderplus track --json dbd92eb6

  # Markdown report written to a file
  senderplus track --markdown -o report.md dbd92eb6`,
		Args: cobra.ExactArgs(1),
		RunE: runTrackCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output the raw record as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")

	addClientFlags(cmd)

	return cmd
}

// runTrackCmd executes the track command.
func runTrackCmd(cmd *cobra.Command, args []string) error {
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

	c, err := newServiceClient(cfg, logger)
	if err != nil {
		return err
	}

	pkg, err := c.Track(context.Background(), args[0])
	if err != nil {
		return err
	}

	return outputReport(cmd, cfg, pkg)
}

// outputReport writes the package record in the configured format and
// destination. Used by both track and advance.
func outputReport(cmd *cobra.Command, cfg *config.Config, pkg *model.Package) error {
	// Determine output destination
	var output io.Writer = cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600)
		// Reports contain contact details that should only be readable by the owner
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(pkg)
	return err
}
