// Package main provides the entry point for the SenderPlus CLI.
//
// SenderPlus submits parcels to the campus delivery service and tracks
// them through the delivery stages.
//
// Usage:
//
//	senderplus submit --package-name "Textbooks" ...
//	senderplus track <tracking-id>
//	senderplus advance <tracking-id>
//	senderplus serve
//
// See --help for all available options.
package main

// main is the entry point for SenderPlus.
func main() {
	Execute()
}
