package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestNewAdvanceCmd tests the advance command creation.
func TestNewAdvanceCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAdvanceCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "advance <tracking-id>" {
			t.Errorf("expected use 'advance <tracking-id>', got %q", cmd.Use)
		}
	})

	t.Run("has format flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "markdown", "output"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})
}

// TestRunAdvanceCmd tests advance command execution against a scripted service.
func TestRunAdvanceCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints the refreshed status", func(t *testing.T) {
		t.Parallel()

		advanced := strings.Replace(trackResponse,
			"Package in our van en route to campus",
			"Package at our campus hub", 2)

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, expected POST", r.Method)
			}
			if r.URL.Path != "/advance-status/dbd92eb6" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(advanced))
		}))
		defer ts.Close()

		var out bytes.Buffer
		cmd := NewAdvanceCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--base-url", ts.URL, "dbd92eb6"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Package dbd92eb6 is now: Package at our campus hub") {
			t.Errorf("output missing confirmation line:\n%s", out.String())
		}
		// The full report follows the confirmation.
		if !strings.Contains(out.String(), "SENDERPLUS TRACKING REPORT") {
			t.Errorf("output missing report:\n%s", out.String())
		}
	})

	t.Run("blank tracking ID fails before any request", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("unexpected network call")
		}))
		defer ts.Close()

		cmd := NewAdvanceCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--base-url", ts.URL, "   "})

		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for a blank tracking ID")
		}
	})

	t.Run("json flag suppresses the confirmation line", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(trackResponse))
		}))
		defer ts.Close()

		var out bytes.Buffer
		cmd := NewAdvanceCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--base-url", ts.URL, "--json", "dbd92eb6"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.String(), "is now:") {
			t.Errorf("confirmation line should be suppressed in JSON mode:\n%s", out.String())
		}
		if !strings.Contains(out.String(), `"tracking_id": "dbd92eb6"`) {
			t.Errorf("output is not the raw record:\n%s", out.String())
		}
	})
}
