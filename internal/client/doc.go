// Package client implements the request/response pipeline against the
// remote delivery service: package submission, tracking queries, and the
// manual stage-advance operation.
//
// Every operation makes a single attempt with no automatic retry, classifies
// failures into a small set of sentinel errors, and logs diagnostic detail
// (HTTP status, response body excerpts) instead of surfacing it to callers.
// Submission and advance each hold an in-flight latch so a second invocation
// is rejected locally while the first is still outstanding.
package client
