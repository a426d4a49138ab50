package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/joesrsa/internal/joesrsa"
	"github.com/PolarWolf314/joesrsa/internal/journal"
	"github.com/PolarWolf314/joesrsa/internal/keyfmt"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// KeyPath names the private key PEM file.
	KeyPath string

	// InputPath is the ciphertext file, armored or raw. Empty or "-"
	// reads stdin.
	InputPath string

	// OutputPath is the plaintext file. Empty leaves the plaintext in
	// the result for the caller to stream to stdout.
	OutputPath string

	// NoCRT forces the plain m = c^d mod n path instead of the CRT
	// shortcut. Both produce identical plaintext.
	NoCRT bool
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Data is the recovered plaintext.
	Data []byte

	// OutputPath is the file written, empty when the caller should write
	// Data itself.
	OutputPath string

	// PlaintextBytes is the size of the recovered plaintext.
	PlaintextBytes int

	// Mode is "crt" or "direct".
	Mode string
}

// Decrypt decrypts joes-rsa data with a private key.
//
// Returns ErrSameFile when the output would clobber the input,
// ErrUnknownFormat for data without the joes-rsa magic,
// ErrUnsupportedVersion for frames from a newer format, and
// ErrChunkSizeMismatch when the body does not divide into whole blocks.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	if opts.KeyPath == "" {
		return nil, fmt.Errorf("no key file given")
	}

	if err := checkDistinctFiles(opts.InputPath, opts.OutputPath); err != nil {
		return nil, err
	}

	kp, err := keyfmt.LoadPrivateKey(opts.KeyPath)
	if err != nil {
		return nil, err
	}

	ciphertext, err := readInput(opts.InputPath)
	if err != nil {
		return nil, err
	}

	plaintext, err := joesrsa.Decrypt(ciphertext, kp, &joesrsa.DecryptOptions{DisableCRT: opts.NoCRT})
	if err != nil {
		return nil, err
	}

	if err := writeOutput(opts.OutputPath, plaintext); err != nil {
		return nil, err
	}

	mode := "crt"
	if opts.NoCRT {
		mode = "direct"
	}

	entry := journal.LogWithInstall("decrypt")
	entry.KeyPath = opts.KeyPath
	entry.InputPath = journalPath(opts.InputPath)
	entry.OutputPath = journalPath(opts.OutputPath)
	entry.Mode = mode
	entry.Bytes = len(plaintext)
	journal.Log(entry)

	return &DecryptResult{
		Data:           plaintext,
		OutputPath:     opts.OutputPath,
		PlaintextBytes: len(plaintext),
		Mode:           mode,
	}, nil
}
