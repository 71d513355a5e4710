package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/senderplus/internal/model"
)

// BatchResult is the outcome of one submission in a batch.
// Either Receipt or Err is set, never both.
type BatchResult struct {
	// Index is the position of the submission in the input slice.
	Index int

	// Receipt is the tracking receipt on success.
	Receipt *Receipt

	// Err is the classified submission error on failure.
	Err error
}

// BatchSubmitter submits multiple packages concurrently.
// Each submission runs on its own Client instance so the per-coordinator
// in-flight latch still holds: no two requests share a latch, and a failure
// in one submission never blocks the others.
//
// Design decision: We take a client factory rather than a shared *Client
// because the single-submission latch is part of the Client's contract;
// reusing one Client across the batch would serialize it to a single
// in-flight request.
type BatchSubmitter struct {
	// clientFactory creates a fresh Client for each submission.
	clientFactory func() (*Client, error)

	// concurrency is the maximum number of concurrent submissions.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchSubmitter.
type BatchOption func(*BatchSubmitter)

// WithBatchLogger sets a custom logger for batch submission.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchSubmitter) {
		b.logger = logger
	}
}

// WithBatchConcurrency sets the maximum number of concurrent submissions.
// Default is 5 if not specified.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchSubmitter) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchSubmitter creates a BatchSubmitter.
// The clientFactory is called once per submission to create a fresh
// coordinator instance.
func NewBatchSubmitter(clientFactory func() (*Client, error), opts ...BatchOption) *BatchSubmitter {
	b := &BatchSubmitter{
		clientFactory: clientFactory,
		concurrency:   5,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// SubmitAll submits every package concurrently, respecting the concurrency
// limit and context cancellation.
//
// Per-submission failures are recorded in the corresponding BatchResult and
// do not stop the batch; the error return is non-nil only when the batch
// itself was cancelled. Results are returned in input order.
func (b *BatchSubmitter) SubmitAll(ctx context.Context, subs []model.PackageSubmission) ([]BatchResult, error) {
	b.logger.Info("starting batch submission",
		"total", len(subs),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	results := make([]BatchResult, len(subs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, sub := range subs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := BatchResult{Index: i}

			c, err := b.clientFactory()
			if err != nil {
				result.Err = err
			} else {
				result.Receipt, result.Err = c.Submit(ctx, sub)
			}

			mu.Lock()
			results[i] = result
			mu.Unlock()

			if result.Err != nil {
				// Recorded in the result; keep the rest of the batch going.
				b.logger.Warn("submission failed",
					"index", i,
					"error", result.Err,
				)
				return nil
			}

			b.logger.Info("submission completed",
				"index", i,
				"tracking_id", result.Receipt.TrackingID,
			)
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch submission complete",
		"total", len(subs),
		"elapsed", time.Since(startTime),
	)

	return results, err
}
