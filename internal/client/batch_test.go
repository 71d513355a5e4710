package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nao1215/senderplus/internal/model"
)

// TestBatchSubmitter tests concurrent multi-package submission.
func TestBatchSubmitter(t *testing.T) {
	t.Parallel()

	t.Run("submits every package and keeps input order", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			if err := r.ParseMultipartForm(10 << 20); err != nil {
				t.Fatalf("failed to parse multipart form: %v", err)
			}
			// Echo a tracking ID derived from the package name so order
			// can be verified on the result slice.
			name := r.MultipartForm.Value["package_name"][0]
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(fmt.Sprintf(`{"tracking_id": "id-%s"}`, strings.ToLower(name))))
		}))
		defer ts.Close()

		factory := func() (*Client, error) {
			return NewClient(ts.URL, WithLogger(testLogger()))
		}
		b := NewBatchSubmitter(factory,
			WithBatchLogger(testLogger()),
			WithBatchConcurrency(3),
		)

		subs := make([]model.PackageSubmission, 10)
		for i := range subs {
			subs[i] = testSubmission()
			subs[i].PackageName = fmt.Sprintf("P%d", i)
		}

		results, err := b.SubmitAll(context.Background(), subs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(subs) {
			t.Fatalf("results = %d, expected %d", len(results), len(subs))
		}
		if requests.Load() != int32(len(subs)) {
			t.Errorf("network calls = %d, expected %d", requests.Load(), len(subs))
		}
		for i, r := range results {
			if r.Index != i {
				t.Errorf("results[%d].Index = %d", i, r.Index)
			}
			if r.Err != nil {
				t.Errorf("results[%d] failed: %v", i, r.Err)
				continue
			}
			expected := fmt.Sprintf("id-p%d", i)
			if r.Receipt.TrackingID != expected {
				t.Errorf("results[%d].TrackingID = %q, expected %q", i, r.Receipt.TrackingID, expected)
			}
		}
	})

	t.Run("one failure does not stop the batch", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(10 << 20); err != nil {
				t.Fatalf("failed to parse multipart form: %v", err)
			}
			if r.MultipartForm.Value["package_name"][0] == "Broken" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"tracking_id": "dbd92eb6"}`))
		}))
		defer ts.Close()

		factory := func() (*Client, error) {
			return NewClient(ts.URL, WithLogger(testLogger()))
		}
		b := NewBatchSubmitter(factory, WithBatchLogger(testLogger()))

		subs := []model.PackageSubmission{testSubmission(), testSubmission(), testSubmission()}
		subs[1].PackageName = "Broken"

		results, err := b.SubmitAll(context.Background(), subs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Err != nil || results[2].Err != nil {
			t.Errorf("healthy submissions failed: %v, %v", results[0].Err, results[2].Err)
		}
		if !errors.Is(results[1].Err, ErrSubmitFailed) {
			t.Errorf("results[1].Err = %v, expected ErrSubmitFailed", results[1].Err)
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"tracking_id": "dbd92eb6"}`))
		}))
		defer ts.Close()

		factory := func() (*Client, error) {
			return NewClient(ts.URL, WithLogger(testLogger()))
		}
		b := NewBatchSubmitter(factory, WithBatchLogger(testLogger()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		subs := []model.PackageSubmission{testSubmission(), testSubmission()}
		if _, err := b.SubmitAll(ctx, subs); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, expected context.Canceled", err)
		}
	})
}
