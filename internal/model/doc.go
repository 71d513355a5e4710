// Package model defines the domain entities for package delivery tracking.
// It contains the Package record returned by the delivery service, the
// TrackingID value object, the PackageSubmission form data, and the Stage
// enumeration that represents the fixed delivery lifecycle.
package model
