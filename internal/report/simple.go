package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/senderplus/internal/model"
)

// SimpleWriter outputs human-readable tracking reports.
// This format is designed for terminal display with a progress checklist
// and clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables the contact detail sections in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output including sender and recipient
// contact details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the package record in human-readable format.
func (w *SimpleWriter) Write(pkg *model.Package) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, pkg)
	w.writeProgress(&sb, pkg)
	w.writeDetails(&sb, pkg)
	if w.verbose {
		w.writeContacts(&sb, pkg)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with tracking information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, pkg *model.Package) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       SENDERPLUS TRACKING REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Tracking ID: %s\n", pkg.TrackingID))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", pkg.DisplayStatus()))
	if pkg.UpdatedAt != "" {
		sb.WriteString(fmt.Sprintf("Updated:     %s\n", pkg.UpdatedAt))
	}
	sb.WriteString("\n")
}

// writeProgress writes the delivery progress checklist.
// Every stage up to and including the current one is checked; an
// unrecognized status leaves the whole checklist unchecked.
func (w *SimpleWriter) writeProgress(sb *strings.Builder, pkg *model.Package) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("DELIVERY PROGRESS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	prog := pkg.Progression()
	for i, stage := range model.Stages() {
		mark := " "
		if prog.Reached(i) {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", mark, stage.String()))
	}
	sb.WriteString("\n")

	if prog.Index() < 0 {
		sb.WriteString(fmt.Sprintf("  Note: unrecognized status %q\n\n", pkg.DisplayStatus()))
	}
}

// writeDetails writes the package detail section.
func (w *SimpleWriter) writeDetails(sb *strings.Builder, pkg *model.Package) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PACKAGE DETAILS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Name:   %s\n", pkg.PackageName))
	sb.WriteString(fmt.Sprintf("  Type:   %s\n", pkg.PackageType))
	sb.WriteString(fmt.Sprintf("  Weight: %s kg\n", pkg.Weight))
	if !pkg.Value.IsZero() {
		sb.WriteString(fmt.Sprintf("  Value:  GHS %s\n", pkg.Value))
	}
	if pkg.Description != "" {
		sb.WriteString(fmt.Sprintf("  Notes:  %s\n", pkg.Description))
	}
	if pkg.PhotoURL != "" {
		sb.WriteString(fmt.Sprintf("  Photo:  %s\n", pkg.PhotoURL))
	}
	sb.WriteString("\n")
}

// writeContacts writes the sender and recipient sections.
// Only emitted in verbose mode because contact details are personal data.
func (w *SimpleWriter) writeContacts(sb *strings.Builder, pkg *model.Package) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CONTACTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  From: %s, %s (%s)\n", pkg.SenderName, pkg.SenderAddress, pkg.SenderPhone))
	sb.WriteString(fmt.Sprintf("  To:   %s, %s (%s)\n", pkg.RecipientName, pkg.RecipientAddress, pkg.RecipientPhone))
	sb.WriteString("\n")
}
