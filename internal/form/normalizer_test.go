package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/senderplus/internal/model"
)

// fullSubmission returns a submission with every required field populated
// and every optional field empty.
func fullSubmission() model.PackageSubmission {
	return model.PackageSubmission{
		SenderName:       "Ama Boateng",
		SenderPhone:      "0241234567",
		SenderEmail:      "ama@example.com",
		SenderAddress:    "Accra",
		RecipientName:    "Kofi Mensah",
		RecipientPhone:   "0207654321",
		RecipientAddress: "Legon Hall",
		PackageName:      "Textbooks",
		PackageType:      "Box",
		Weight:           "2.5",
	}
}

// TestNormalize tests trimming, phone masking, and the weight default.
func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("phones masked and fields trimmed", func(t *testing.T) {
		t.Parallel()

		s := fullSubmission()
		s.SenderName = "  Ama Boateng  "
		s.SenderPhone = "024-123-4567"
		s.RecipientPhone = "(020) 765-4321"
		s.Description = "  fragile  "

		got := Normalize(s)

		if got.SenderName != "Ama Boateng" {
			t.Errorf("sender name = %q", got.SenderName)
		}
		if got.SenderPhone != "(024) 123-4567" {
			t.Errorf("sender phone = %q", got.SenderPhone)
		}
		if got.RecipientPhone != "(020) 765-4321" {
			t.Errorf("recipient phone = %q", got.RecipientPhone)
		}
		if got.Description != "fragile" {
			t.Errorf("description = %q", got.Description)
		}
	})

	t.Run("blank weight defaults to zero", func(t *testing.T) {
		t.Parallel()

		s := fullSubmission()
		s.Weight = "   "

		if got := Normalize(s); got.Weight != "0" {
			t.Errorf("weight = %q, expected \"0\"", got.Weight)
		}
	})

	t.Run("value and description never defaulted", func(t *testing.T) {
		t.Parallel()

		s := fullSubmission()
		s.Value = ""
		s.Description = ""

		got := Normalize(s)
		if got.Value != "" || got.Description != "" {
			t.Errorf("optional fields defaulted: value=%q description=%q", got.Value, got.Description)
		}
	})

	t.Run("pure: input not mutated", func(t *testing.T) {
		t.Parallel()

		s := fullSubmission()
		s.SenderPhone = "0241234567"
		_ = Normalize(s)
		if s.SenderPhone != "0241234567" {
			t.Errorf("input mutated: %q", s.SenderPhone)
		}
	})
}

// TestValidate tests the required-field check.
func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("complete submission passes", func(t *testing.T) {
		t.Parallel()

		s := fullSubmission()
		if err := Validate(&s); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing photo is valid", func(t *testing.T) {
		t.Parallel()

		s := fullSubmission()
		s.Photo = nil
		if err := Validate(&s); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing fields reported by wire name", func(t *testing.T) {
		t.Parallel()

		s := fullSubmission()
		s.SenderName = ""
		s.RecipientAddress = "   "

		err := Validate(&s)
		if !errors.Is(err, ErrMissingRequiredFields) {
			t.Fatalf("error = %v, expected ErrMissingRequiredFields", err)
		}
		msg := err.Error()
		if !strings.Contains(msg, "sender_name") || !strings.Contains(msg, "recipient_address") {
			t.Errorf("missing field names not reported: %q", msg)
		}
	})

	t.Run("blank weight is not a validation error", func(t *testing.T) {
		t.Parallel()

		s := Normalize(model.PackageSubmission{
			SenderName:       "Ama Boateng",
			SenderPhone:      "0241234567",
			SenderEmail:      "ama@example.com",
			SenderAddress:    "Accra",
			RecipientName:    "Kofi Mensah",
			RecipientPhone:   "0207654321",
			RecipientAddress: "Legon Hall",
			PackageName:      "Charger",
			PackageType:      "Envelope",
			Weight:           "",
		})
		if err := Validate(&s); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if s.Weight != "0" {
			t.Errorf("weight = %q, expected \"0\"", s.Weight)
		}
	})
}
