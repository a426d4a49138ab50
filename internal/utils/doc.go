// Package utils provides shared utility functions for the joesrsa application.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Number Utilities
//
// Functions for parsing and formatting big integers on the command line:
//   - ParseBigInt: parses decimal or 0x-prefixed hex into a big.Int
//   - FormatHex: renders a big.Int as 0x-prefixed lowercase hex
//
// # System Utilities
//
// Functions for interacting with the operating system:
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//   - DefaultKeyComment: builds the username@hostname SSH key comment
//
// # String Utilities
//
// Functions for string formatting:
//   - FormatPaths: formats file paths for human-readable output
//
// # I/O Utilities
//
// Functions for reading from stdin and other I/O operations:
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection:
//   - IsTerminal: checks if stdin is a terminal
package utils
