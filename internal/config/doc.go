// Package config provides configuration structures and utilities for SenderPlus.
// It defines the main configuration options for the submission service endpoint,
// sender profiles, and report generation preferences.
package config
