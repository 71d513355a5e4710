// Package server provides a self-contained SenderPlus submission service.
//
// The service implements the same HTTP surface the client talks to:
//   - POST /submit-package accepts a multipart submission form
//   - GET  /track/{id} returns the package record as JSON
//   - POST /advance-status/{id} moves the package to the next stage
//
// This package exists so the CLI can be exercised end to end without a
// hosted deployment: `senderplus serve` starts the service locally and the
// submit, track, and advance subcommands work against it unchanged.
//
// Design decision: We store packages in SQLite (via modernc.org/sqlite)
// because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for a demo-scale service
// 4. WAL mode provides good concurrent read performance
package server
