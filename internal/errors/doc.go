// Package errors provides typed error values for the joesrsa toolkit.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Arithmetic errors: bad inputs to the math core (ErrInvalidModulus, ErrNoInverse)
//   - Encoding errors: malformed key material (ErrMalformedDER, ErrUnsupportedVersion)
//   - Ciphertext errors: damaged encrypted data (ErrUnknownFormat, ErrChunkSizeMismatch)
//   - File errors: refusals around files and command input (ErrKeyFileExists, ErrInvalidDate)
//
// # Usage
//
// Return errors from internal packages:
//
//	if mod.Sign() <= 0 {
//	    return nil, errors.ErrInvalidModulus
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, jerrors.ErrChunkSizeMismatch) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("parsing %s: %w", path, errors.ErrMalformedDER)
package errors
