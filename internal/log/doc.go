// Package log provides secure logging functionality with automatic sanitization
// of personal contact information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of contact details (phone numbers, emails, addresses)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Privacy Features
//
// The SecureHandler automatically sanitizes personal information in log output:
//   - Sender and recipient phone numbers (raw digits or display-masked)
//   - Email addresses detected by pattern matching
//   - Pickup and delivery addresses
//
// Submission diagnostics routinely carry the full contact form, so even in
// verbose mode contact values are masked to prevent accidental exposure of
// personal data in logs that may be shared or stored.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("submission accepted",
//	    "sender_phone", "(024) 123-4567",  // Will be sanitized
//	    "tracking_id", "dbd92eb6",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
