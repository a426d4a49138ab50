package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/joesrsa/internal/joesrsa"
	"github.com/PolarWolf314/joesrsa/internal/journal"
	"github.com/PolarWolf314/joesrsa/internal/keyfmt"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// KeyPath names the key file. SSH public, PKCS#1 public PEM, and
	// private PEM files are all accepted; a private key contributes its
	// public half.
	KeyPath string

	// InputPath is the plaintext file. Empty or "-" reads stdin.
	InputPath string

	// OutputPath is the ciphertext file. Empty leaves the ciphertext in
	// the result for the caller to stream to stdout.
	OutputPath string

	// Binary skips the PEM armor and emits the raw frame.
	Binary bool
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Data is the complete ciphertext, armored unless Binary was set.
	Data []byte

	// OutputPath is the file written, empty when the caller should write
	// Data itself.
	OutputPath string

	// PlaintextBytes is the size of the input.
	PlaintextBytes int

	// Fingerprint is the SHA256 fingerprint of the key used.
	Fingerprint string

	// Mode is "binary" or "armored".
	Mode string
}

// Encrypt encrypts data under a public key in the joes-rsa format.
//
// Returns ErrSameFile when the output would clobber the input,
// ErrUnknownKeyType when the key file cannot be classified, and
// ErrInvalidBits when the modulus is too small to carry even one byte.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	if opts.KeyPath == "" {
		return nil, fmt.Errorf("no key file given")
	}

	if err := checkDistinctFiles(opts.InputPath, opts.OutputPath); err != nil {
		return nil, err
	}

	pub, _, err := keyfmt.LoadPublicKey(opts.KeyPath)
	if err != nil {
		return nil, err
	}

	plaintext, err := readInput(opts.InputPath)
	if err != nil {
		return nil, err
	}

	data, err := joesrsa.Encrypt(plaintext, pub, opts.Binary)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(opts.OutputPath, data); err != nil {
		return nil, err
	}

	mode := "armored"
	if opts.Binary {
		mode = "binary"
	}
	fingerprint := keyfmt.Fingerprint(pub)

	entry := journal.LogWithInstall("encrypt")
	entry.KeyPath = opts.KeyPath
	entry.InputPath = journalPath(opts.InputPath)
	entry.OutputPath = journalPath(opts.OutputPath)
	entry.Mode = mode
	entry.Bytes = len(plaintext)
	entry.Fingerprint = fingerprint
	journal.Log(entry)

	return &EncryptResult{
		Data:           data,
		OutputPath:     opts.OutputPath,
		PlaintextBytes: len(plaintext),
		Fingerprint:    fingerprint,
		Mode:           mode,
	}, nil
}
