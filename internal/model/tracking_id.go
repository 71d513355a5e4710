package model

import (
	"errors"
	"strings"
)

// TrackingID errors.
var (
	// ErrEmptyTrackingID is returned when the identifier is empty or
	// whitespace only. This is detected locally before any network call.
	ErrEmptyTrackingID = errors.New("tracking ID cannot be empty")
)

// TrackingID is an immutable value object wrapping a server-issued tracking
// identifier. The identifier is opaque: the service assigns it exactly once
// at creation and the client never generates or mutates one.
//
// Design decision: We validate only non-emptiness, not length or alphabet.
// The format (currently the first eight hex characters of a UUIDv4) is a
// service implementation detail that has changed before and may change again.
type TrackingID struct {
	value string
}

// NewTrackingID creates a TrackingID from user input.
// Leading and trailing whitespace is trimmed. Returns ErrEmptyTrackingID if
// nothing remains after trimming.
func NewTrackingID(raw string) (TrackingID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TrackingID{}, ErrEmptyTrackingID
	}
	return TrackingID{value: trimmed}, nil
}

// MustNewTrackingID creates a TrackingID or panics if invalid.
// Use only for known-valid identifiers in tests.
func MustNewTrackingID(raw string) TrackingID {
	id, err := NewTrackingID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the tracking identifier.
func (t TrackingID) String() string {
	return t.value
}

// IsZero returns true if this is a zero value (empty) TrackingID.
func (t TrackingID) IsZero() bool {
	return t.value == ""
}

// Equals returns true if two TrackingID values are equal.
func (t TrackingID) Equals(other TrackingID) bool {
	return t.value == other.value
}
