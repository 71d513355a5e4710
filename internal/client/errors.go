package client

import "errors"

// Client operation errors.
// Each network operation collapses its failure modes into one generic
// sentinel so backend detail never leaks to the end user; the diagnostic
// response body is logged, not wrapped. Callers classify with errors.Is.
//
// Design decision: We define one sentinel per operation rather than one
// shared "request failed" error because the user-facing message differs per
// operation, and because tests must be able to assert that a 404 on fetch
// produces the not-found classification and never the generic one.
var (
	// ErrInvalidBaseURL is returned by NewClient when the service base URL
	// cannot be parsed or uses a scheme other than http/https.
	ErrInvalidBaseURL = errors.New("invalid service base URL")

	// ErrSubmissionInFlight is returned when a submission is attempted while
	// another one is still outstanding on the same coordinator. The second
	// attempt is rejected locally; it is neither queued nor does it cancel
	// the first.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrSubmitFailed is returned for any non-success submission response,
	// network failure, or malformed success body. The status code is not
	// distinguished at this stage.
	ErrSubmitFailed = errors.New("failed to submit package, please try again")

	// ErrPackageNotFound is returned when the service reports 404 for a
	// tracking query. This is a confirmed absence, distinct from transport
	// failure.
	ErrPackageNotFound = errors.New("no package found with that tracking ID")

	// ErrFetchFailed is returned for any non-404 tracking failure,
	// including malformed success bodies.
	ErrFetchFailed = errors.New("failed to fetch package, please try again")

	// ErrAdvanceInFlight is returned when an advance is attempted for a
	// package whose previous advance request is still outstanding.
	ErrAdvanceInFlight = errors.New("a status update is already in progress for this package")

	// ErrAdvanceFailed is returned for any failed advance request. No local
	// state changes; the previously fetched record remains authoritative.
	ErrAdvanceFailed = errors.New("failed to advance status")
)
