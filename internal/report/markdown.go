package report

import (
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/senderplus/internal/model"
)

// MarkdownWriter outputs tracking reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and checkboxes
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the package record in Markdown format.
func (w *MarkdownWriter) Write(pkg *model.Package) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, pkg)
	w.writeProgress(md, pkg)
	w.writeDetails(md, pkg)
	w.writeAlert(md, pkg)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with tracking information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, pkg *model.Package) {
	md.H1("Tracking Report")
	md.PlainText("")

	rows := [][]string{
		{"Tracking ID", "`" + pkg.TrackingID + "`"},
		{"Status", pkg.DisplayStatus()},
	}
	if pkg.CreatedAt != "" {
		rows = append(rows, []string{"Submitted", pkg.CreatedAt})
	}
	if pkg.UpdatedAt != "" {
		rows = append(rows, []string{"Updated", pkg.UpdatedAt})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeProgress writes the delivery progress checklist.
func (w *MarkdownWriter) writeProgress(md *markdown.Markdown, pkg *model.Package) {
	md.H2("Delivery Progress")
	md.PlainText("")

	prog := pkg.Progression()
	items := make([]markdown.CheckBoxSet, 0, model.StageCount)
	for i, stage := range model.Stages() {
		items = append(items, markdown.CheckBoxSet{
			Checked: prog.Reached(i),
			Text:    stage.String(),
		})
	}
	md.CheckBox(items)
	md.PlainText("")
}

// writeDetails writes the package detail section.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, pkg *model.Package) {
	md.H2("Package Details")
	md.PlainText("")

	rows := [][]string{
		{"Name", pkg.PackageName},
		{"Type", pkg.PackageType},
		{"Weight", pkg.Weight.String() + " kg"},
	}
	if !pkg.Value.IsZero() {
		rows = append(rows, []string{"Declared Value", "GHS " + pkg.Value.String()})
	}
	if pkg.Description != "" {
		rows = append(rows, []string{"Description", pkg.Description})
	}
	if pkg.PhotoURL != "" {
		rows = append(rows, []string{"Photo", pkg.PhotoURL})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert writes a status alert matching the delivery progress.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, pkg *model.Package) {
	prog := pkg.Progression()
	switch {
	case prog.Current == model.StageDelivered:
		md.Tip("This package has been delivered.")
	case prog.Index() < 0:
		md.Warningf("The service reported an unrecognized status: %s", pkg.DisplayStatus())
	default:
		md.Notef("This package is in transit: %s", pkg.DisplayStatus())
	}
	md.PlainText("")
}
