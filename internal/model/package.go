package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decimal is a decimal value carried as text.
// The delivery service has serialized weights and values both as JSON
// strings ("2.50") and as bare numbers (2.5) across deployments, so the
// unmarshaller accepts either form. The client never does arithmetic on
// these values; they are opaque display text.
type Decimal string

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*d = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("invalid decimal string: %w", err)
		}
		*d = Decimal(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid decimal number: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}

// MarshalJSON emits the decimal as a JSON string, or null when empty.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// String returns the decimal text.
func (d Decimal) String() string { return string(d) }

// IsZero returns true when no value is present.
func (d Decimal) IsZero() bool { return d == "" }

// Package is the server-owned record for a registered parcel.
// It is created once by a successful submission, refreshed by tracking
// queries, and mutated only by the advance-status operation. The client
// never deletes or locally modifies a Package; every fetched record fully
// replaces the previous one.
type Package struct {
	// TrackingID is the opaque identifier issued by the service at
	// creation. Immutable and unique.
	TrackingID string `json:"tracking_id"`

	// Status is the server-reported delivery status. Depending on the
	// service deployment this may be the wire code or the display label.
	Status string `json:"status"`

	// StatusDisplay is the human-readable status label. Optional; when
	// present it is preferred over Status for display.
	StatusDisplay string `json:"status_display,omitempty"`

	SenderName    string `json:"sender_name"`
	SenderPhone   string `json:"sender_phone"`
	SenderEmail   string `json:"sender_email,omitempty"`
	SenderAddress string `json:"sender_address"`

	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientEmail   string `json:"recipient_email,omitempty"`
	RecipientAddress string `json:"recipient_address"`

	PackageName string  `json:"package_name"`
	PackageType string  `json:"package_type"`
	Weight      Decimal `json:"weight"`

	// Value is the declared value of the package. Optional; absent or
	// null when the sender did not declare one.
	Value Decimal `json:"value,omitempty"`

	// Description is free-form text describing the contents. Optional.
	Description string `json:"description,omitempty"`

	// PhotoURL is a relative resource path to the uploaded photo,
	// resolved against the service base URL. Optional.
	PhotoURL string `json:"photo_url,omitempty"`

	// CreatedAt and UpdatedAt are maintained by the service. Optional;
	// older deployments omit them from the track response.
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DisplayStatus returns the label to show for this package.
// StatusDisplay is preferred when the service provides it; otherwise the
// raw Status field is used as-is.
func (p *Package) DisplayStatus() string {
	if p.StatusDisplay != "" {
		return p.StatusDisplay
	}
	return p.Status
}

// Progression derives the stage-progression rendering state for this
// package. StatusDisplay is tried first; when it carries a label outside
// the known set, Status is tried before degrading to the unknown stage,
// so a reworded display label next to a canonical status code still
// resolves. It is recomputed on every call; the Package itself holds no
// progression state.
func (p *Package) Progression() Progression {
	prog := NewProgression(p.DisplayStatus())
	if prog.Index() >= 0 || p.StatusDisplay == "" || p.Status == p.StatusDisplay {
		return prog
	}
	if fallback := NewProgression(p.Status); fallback.Index() >= 0 {
		return fallback
	}
	return prog
}

// ParsePackage decodes a Package from a service response body.
// Missing optional fields (value, description, photo_url, status_display)
// never cause an error; a body that is not a JSON object does.
func ParsePackage(data []byte) (*Package, error) {
	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("malformed package record: %w", err)
	}
	return &pkg, nil
}
