package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/senderplus/internal/model"
)

// testPackage returns a package record mid-delivery for writer tests.
func testPackage() *model.Package {
	return &model.Package{
		TrackingID:       "dbd92eb6",
		Status:           "en_route_campus",
		StatusDisplay:    "Package in our van en route to campus",
		SenderName:       "Ama Boateng",
		SenderPhone:      "(024) 123-4567",
		SenderAddress:    "Accra",
		RecipientName:    "Kofi Mensah",
		RecipientPhone:   "(020) 765-4321",
		RecipientAddress: "Legon Hall",
		PackageName:      "Textbooks",
		PackageType:      "Box",
		Weight:           "2.5",
		Value:            "120.00",
		Description:      "Three chemistry textbooks",
	}
}

// TestSimpleWriter tests the human-readable writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders header, checklist and details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(testPackage())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		output := buf.String()
		for _, want := range []string{
			"dbd92eb6",
			"Package in our van en route to campus",
			"Textbooks",
			"2.5 kg",
			"GHS 120.00",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("checklist reflects reached stages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		if _, err := w.Write(testPackage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		// Stage index 1 is current: first two checked, last two not.
		checked := strings.Count(output, "[x]")
		unchecked := strings.Count(output, "[ ]")
		if checked != 2 || unchecked != 2 {
			t.Errorf("checked = %d, unchecked = %d, expected 2 and 2:\n%s", checked, unchecked, output)
		}
	})

	t.Run("unrecognized status leaves checklist empty with a note", func(t *testing.T) {
		t.Parallel()

		pkg := testPackage()
		pkg.Status = "lost_in_space"
		pkg.StatusDisplay = ""

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		if _, err := w.Write(pkg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "[x]") {
			t.Errorf("expected no checked stages:\n%s", output)
		}
		if !strings.Contains(output, "unrecognized status") {
			t.Errorf("expected unrecognized status note:\n%s", output)
		}
	})

	t.Run("contacts hidden by default and shown in verbose mode", func(t *testing.T) {
		t.Parallel()

		var quiet bytes.Buffer
		if _, err := NewSimpleWriter(&quiet).Write(testPackage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(quiet.String(), "Kofi Mensah") {
			t.Errorf("contacts leaked in default mode:\n%s", quiet.String())
		}

		var verbose bytes.Buffer
		if _, err := NewSimpleWriter(&verbose, WithVerbose(true)).Write(testPackage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(verbose.String(), "Kofi Mensah") {
			t.Errorf("contacts missing in verbose mode:\n%s", verbose.String())
		}
	})

	t.Run("optional fields omitted when empty", func(t *testing.T) {
		t.Parallel()

		pkg := testPackage()
		pkg.Value = ""
		pkg.Description = ""

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(pkg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if strings.Contains(output, "Value:") || strings.Contains(output, "Notes:") {
			t.Errorf("expected empty optional sections to be omitted:\n%s", output)
		}
	})
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(testPackage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got model.Package
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if got.TrackingID != "dbd92eb6" {
			t.Errorf("tracking_id = %q", got.TrackingID)
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(testPackage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Errorf("expected indented output:\n%s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders tables and checklist", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(testPackage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Tracking Report",
			"## Delivery Progress",
			"`dbd92eb6`",
			"- [x]",
			"- [ ]",
			"## Package Details",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("delivered package gets a tip alert", func(t *testing.T) {
		t.Parallel()

		pkg := testPackage()
		pkg.Status = "delivered"
		pkg.StatusDisplay = "Package delivered to recipient"

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(pkg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Errorf("expected TIP alert:\n%s", buf.String())
		}
	})
}

// errWriter always fails, for MultiWriter error propagation tests.
type errWriter struct{}

func (errWriter) Write(_ *model.Package) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

		if _, err := mw.Write(testPackage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Error("expected output in both writers")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(errWriter{}, NewSimpleWriter(&after))

		if _, err := mw.Write(testPackage()); err == nil {
			t.Fatal("expected an error")
		}
		if after.Len() != 0 {
			t.Error("expected no output after failed writer")
		}
	})
}
