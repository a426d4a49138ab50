// Package workflows provides high-level orchestration for joesrsa commands.
//
// Workflows coordinate multiple operations across packages (configs,
// keypair, keyfmt, joesrsa, journal) to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving defaults from the user config
//   - Validating prerequisites
//   - Performing the core operation
//   - Recording journal entries
//
// # Available Workflows
//
// Each command has a corresponding workflow:
//
//   - Keygen: Generates an RSA key pair and writes the three key files
//   - Encrypt: Encrypts data under a public key in the joes-rsa format
//   - Decrypt: Decrypts joes-rsa data with a private key
//   - Inspect: Classifies key and ciphertext files and reports their fields
//   - Gendata: Generates filler plaintext for trying the pipeline
//   - Log: Reads and filters the operation journal
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, jerrors.ErrUnknownFormat) {
//	    // Show user-friendly message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// This enables cancellation, timeouts, and passing request-scoped values.
package workflows
