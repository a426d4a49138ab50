// Package journal provides operation logging for joesrsa commands.
//
// Every key-affecting operation (keygen, encrypt, decrypt) is recorded in
// a per-user journal, so past generation parameters and file locations can
// be reconstructed later.
//
// # Log Format
//
// The journal is stored as JSON Lines (one JSON object per line) at:
//
//	$XDG_DATA_HOME/joesrsa/journal.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Install UUID
//   - Operation name
//   - Operation-specific details (bit size, exponent, paths, mode)
//
// # Usage
//
// Create an entry with the install UUID pre-populated:
//
//	entry := journal.LogWithInstall("keygen")
//	entry.Bits = 2048
//	journal.Log(entry)
//
// # Failure Handling
//
// Journaling is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the journal for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package journal
