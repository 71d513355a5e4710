package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nao1215/senderplus/internal/model"
)

// Advance asks the service to move the package to its next delivery stage
// and returns the refreshed record.
//
// The terminal behavior is owned by the service: whatever status comes
// back, including an unchanged one, is authoritative and must simply be
// re-rendered. While an advance for a given package is outstanding, a
// second invocation for the same package returns ErrAdvanceInFlight
// locally and never produces a duplicate network call. On failure no local
// state changes; the previously fetched record remains authoritative.
func (c *Client) Advance(ctx context.Context, id model.TrackingID) (*model.Package, error) {
	if id.IsZero() {
		return nil, model.ErrEmptyTrackingID
	}

	if _, loaded := c.advancing.LoadOrStore(id.String(), struct{}{}); loaded {
		return nil, ErrAdvanceInFlight
	}
	defer c.advancing.Delete(id.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/advance-status/"+url.PathEscape(id.String()), nil)
	if err != nil {
		c.logger.Error("failed to create advance request", "error", err)
		return nil, ErrAdvanceFailed
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("advance request failed", "tracking_id", id.String(), "error", err)
		return nil, ErrAdvanceFailed
	}
	defer resp.Body.Close()

	data := c.readBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("advance rejected by service",
			"tracking_id", id.String(),
			"status", resp.StatusCode,
			"body", bodyExcerpt(data),
		)
		return nil, ErrAdvanceFailed
	}

	pkg, err := model.ParsePackage(data)
	if err != nil {
		c.logger.Error("malformed advance response",
			"tracking_id", id.String(),
			"error", err,
			"body", bodyExcerpt(data),
		)
		return nil, ErrAdvanceFailed
	}

	return pkg, nil
}
