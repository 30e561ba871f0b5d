// Package cli implements the technotes command-line client.
//
// Commands
//
//	technotes ping
//	technotes users list|get|create|update|delete
//	technotes notes list|get|create|update|delete
//
// Global flags --config, --server and --timeout are resolved through
// internal/client/config. Results are printed as indented JSON, mutation
// messages as plain lines. Passwords are always read without echo.
package cli
