package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nao1215/senderplus/internal/model"
)

// Track resolves a tracking identifier into the current package record.
//
// An empty or whitespace-only identifier is rejected locally with
// model.ErrEmptyTrackingID before any network call. A 404 response maps to
// ErrPackageNotFound; every other failure, including a malformed success
// body, maps to ErrFetchFailed with the diagnostic body logged.
//
// Track holds no state between calls: each invocation returns a fresh
// record that fully replaces whatever the caller held before.
func (c *Client) Track(ctx context.Context, rawID string) (*model.Package, error) {
	id, err := model.NewTrackingID(rawID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/track/"+url.PathEscape(id.String()), nil)
	if err != nil {
		c.logger.Error("failed to create track request", "error", err)
		return nil, ErrFetchFailed
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("track request failed", "tracking_id", id.String(), "error", err)
		return nil, ErrFetchFailed
	}
	defer resp.Body.Close()

	data := c.readBody(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Confirmed absence, classified apart from transport failure.
		c.logger.Debug("package not found", "tracking_id", id.String())
		return nil, ErrPackageNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("track rejected by service",
			"tracking_id", id.String(),
			"status", resp.StatusCode,
			"body", bodyExcerpt(data),
		)
		return nil, ErrFetchFailed
	}

	pkg, err := model.ParsePackage(data)
	if err != nil {
		// Malformed success bodies classify the same as transport failure.
		c.logger.Error("malformed track response",
			"tracking_id", id.String(),
			"error", err,
			"body", bodyExcerpt(data),
		)
		return nil, ErrFetchFailed
	}

	return pkg, nil
}
