package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/nao1215/senderplus/internal/form"
	"github.com/nao1215/senderplus/internal/model"
)

// Receipt is the outcome of a successful submission: the server-issued
// tracking ID plus the sender's display name, handed forward to the caller
// for the confirmation screen. The coordinator itself renders nothing.
type Receipt struct {
	// TrackingID is the identifier issued by the service for this package.
	TrackingID string

	// SenderName is the normalized sender name from the submission.
	SenderName string
}

// submitResponse is the JSON body of a successful create-package call.
// Only tracking_id is required; the message is informational.
type submitResponse struct {
	Message    string `json:"message"`
	TrackingID string `json:"tracking_id"`
}

// Submit registers a package with the delivery service and returns the
// tracking receipt.
//
// The submission is normalized and validated locally first: an incomplete
// submission is rejected with form.ErrMissingRequiredFields before any
// network call. Exactly one attempt is made, with no retry; every failure
// mode after validation (non-2xx, transport error, malformed success body,
// missing tracking_id) collapses to ErrSubmitFailed with diagnostic detail
// logged.
//
// At most one submission may be in flight per Client; a concurrent attempt
// returns ErrSubmissionInFlight without touching the network.
func (c *Client) Submit(ctx context.Context, sub model.PackageSubmission) (*Receipt, error) {
	normalized := form.Normalize(sub)
	if err := form.Validate(&normalized); err != nil {
		return nil, err
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.submitting.Store(false)

	body, contentType, err := encodeSubmission(&normalized)
	if err != nil {
		c.logger.Error("failed to encode submission", "error", err)
		return nil, ErrSubmitFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit-package", body)
	if err != nil {
		c.logger.Error("failed to create submit request", "error", err)
		return nil, ErrSubmitFailed
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("submit request failed", "error", err)
		return nil, ErrSubmitFailed
	}
	defer resp.Body.Close()

	data := c.readBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 404 vs 500 is not distinguished for submission; the body is
		// logged for operators and never shown to the user.
		c.logger.Error("submit rejected by service",
			"status", resp.StatusCode,
			"body", bodyExcerpt(data),
		)
		return nil, ErrSubmitFailed
	}

	var sr submitResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		c.logger.Error("malformed submit response",
			"error", err,
			"body", bodyExcerpt(data),
		)
		return nil, ErrSubmitFailed
	}
	if sr.TrackingID == "" {
		c.logger.Error("submit response missing tracking_id", "body", bodyExcerpt(data))
		return nil, ErrSubmitFailed
	}

	c.logger.Debug("package submitted", "tracking_id", sr.TrackingID)

	return &Receipt{
		TrackingID: sr.TrackingID,
		SenderName: normalized.SenderName,
	}, nil
}

// encodeSubmission maps a normalized submission to the multipart wire
// schema. The mapping is fixed and total: every client field maps to exactly
// one wire field. Optional fields (recipient_email, value, description,
// photo) are written only when non-empty; omission, not an empty part, is
// the contract. Weight is always written because Normalize defaults it.
func encodeSubmission(sub *model.PackageSubmission) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name     string
		value    string
		optional bool
	}{
		{"sender_name", sub.SenderName, false},
		{"sender_phone", sub.SenderPhone, false},
		{"sender_email", sub.SenderEmail, false},
		{"sender_address", sub.SenderAddress, false},
		{"recipient_name", sub.RecipientName, false},
		{"recipient_phone", sub.RecipientPhone, false},
		{"recipient_email", sub.RecipientEmail, true},
		{"recipient_address", sub.RecipientAddress, false},
		{"package_name", sub.PackageName, false},
		{"package_type", sub.PackageType, false},
		{"weight", sub.Weight, false},
		{"value", sub.Value, true},
		{"description", sub.Description, true},
	}

	for _, f := range fields {
		if f.optional && f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	if sub.HasPhoto() {
		filename := sub.PhotoFilename
		if filename == "" {
			filename = "photo"
		}
		part, err := w.CreateFormFile("photo", filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create photo part: %w", err)
		}
		if _, err := part.Write(sub.Photo); err != nil {
			return nil, "", fmt.Errorf("failed to write photo: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
