package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/senderplus/internal/model"
)

// Validation errors.
var (
	// ErrMissingRequiredFields is returned when one or more required fields
	// are empty. The wrapped message names the missing wire fields so the
	// caller can show which ones to fill in; no network call is made.
	ErrMissingRequiredFields = errors.New("missing required fields")
)

// requiredField pairs a wire field name with an accessor so the check
// reports missing fields in a stable, wire-schema order.
type requiredField struct {
	name  string
	value func(*model.PackageSubmission) string
}

// requiredFields lists every field a submission must populate, in the
// order the wire schema defines them. Sender email is required by the
// submission form; recipient email, value, description, and photo are not.
var requiredFields = []requiredField{
	{"sender_name", func(s *model.PackageSubmission) string { return s.SenderName }},
	{"sender_phone", func(s *model.PackageSubmission) string { return s.SenderPhone }},
	{"sender_email", func(s *model.PackageSubmission) string { return s.SenderEmail }},
	{"sender_address", func(s *model.PackageSubmission) string { return s.SenderAddress }},
	{"recipient_name", func(s *model.PackageSubmission) string { return s.RecipientName }},
	{"recipient_phone", func(s *model.PackageSubmission) string { return s.RecipientPhone }},
	{"recipient_address", func(s *model.PackageSubmission) string { return s.RecipientAddress }},
	{"package_name", func(s *model.PackageSubmission) string { return s.PackageName }},
	{"package_type", func(s *model.PackageSubmission) string { return s.PackageType }},
}

// Normalize returns a normalized copy of the submission.
// Phone fields are rendered through the progressive mask, every text field
// is trimmed, and a blank weight defaults to the literal "0". Value and
// description are never defaulted; empty means omitted on the wire.
func Normalize(s model.PackageSubmission) model.PackageSubmission {
	s.SenderName = strings.TrimSpace(s.SenderName)
	s.SenderPhone = FormatPhone(s.SenderPhone)
	s.SenderEmail = strings.TrimSpace(s.SenderEmail)
	s.SenderAddress = strings.TrimSpace(s.SenderAddress)

	s.RecipientName = strings.TrimSpace(s.RecipientName)
	s.RecipientPhone = FormatPhone(s.RecipientPhone)
	s.RecipientEmail = strings.TrimSpace(s.RecipientEmail)
	s.RecipientAddress = strings.TrimSpace(s.RecipientAddress)

	s.PackageName = strings.TrimSpace(s.PackageName)
	s.PackageType = strings.TrimSpace(s.PackageType)
	s.Weight = strings.TrimSpace(s.Weight)
	if s.Weight == "" {
		s.Weight = "0"
	}
	s.Value = strings.TrimSpace(s.Value)
	s.Description = strings.TrimSpace(s.Description)

	return s
}

// MissingFields returns the wire names of every required field the
// submission leaves empty, in wire-schema order. An empty slice means the
// submission is complete.
func MissingFields(s *model.PackageSubmission) []string {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(s)) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Validate checks that every required field is populated.
// The submission should be normalized first so whitespace-only input does
// not pass. A missing photo is always valid. Weight is not checked here:
// Normalize defaults a blank weight to "0" rather than rejecting it.
func Validate(s *model.PackageSubmission) error {
	if missing := MissingFields(s); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredFields, strings.Join(missing, ", "))
	}
	return nil
}
