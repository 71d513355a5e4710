// Package form validates and normalizes raw submission input before it
// leaves the client. It provides the progressive phone mask applied on every
// keystroke, field trimming, the weight default, and the required-field
// check that rejects incomplete submissions without a network call.
//
// All functions in this package are pure: they hold no state and the same
// input always produces the same output.
package form
