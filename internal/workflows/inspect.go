package workflows

import (
	"context"
	"fmt"
	"math/big"
	"os"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/joesrsa"
	"github.com/PolarWolf314/joesrsa/internal/keyfmt"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// Paths are the files to classify and report on.
	Paths []string
}

// Report describes one inspected file. Key fields are set for key files,
// Frame for ciphertext files.
type Report struct {
	// Path is the file that was inspected.
	Path string

	// Kind is a human-readable classification.
	Kind string

	// Bits is the modulus bit length, for key files.
	Bits int

	// Modulus and Exponent are the public parameters, for key files.
	Modulus  *big.Int
	Exponent *big.Int

	// PrivateExponent, PrimeP, and PrimeQ are set for private keys only.
	PrivateExponent *big.Int
	PrimeP          *big.Int
	PrimeQ          *big.Int

	// Fingerprint is the SHA256 fingerprint, for key files.
	Fingerprint string

	// Comment is the trailing comment, for SSH public keys.
	Comment string

	// Frame describes the ciphertext envelope, for joes-rsa data files.
	Frame *joesrsa.FrameInfo
}

// InspectResult contains the outcome of an inspect operation.
type InspectResult struct {
	// Reports holds one report per inspected path, in input order.
	Reports []Report
}

// Inspect classifies each file as a private key, a public key (PEM or
// SSH), or joes-rsa ciphertext, and extracts its fields.
//
// Returns ErrUnknownKeyType for files that are none of those, and the
// codec errors (ErrMalformedDER, ErrMalformedPEM, ErrMalformedSSHKey,
// ErrUnsupportedVersion) for files of a recognized kind that fail to
// parse.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	if len(opts.Paths) == 0 {
		return nil, fmt.Errorf("no files given")
	}

	result := &InspectResult{}

	for _, path := range opts.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		report, err := inspectData(path, data)
		if err != nil {
			return nil, err
		}
		result.Reports = append(result.Reports, *report)
	}

	return result, nil
}

func inspectData(path string, data []byte) (*Report, error) {
	report := &Report{Path: path}

	switch keyfmt.Classify(data) {
	case keyfmt.KindPrivatePEM:
		kp, err := keyfmt.DecodePrivatePEM(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		report.Kind = "private key (PKCS#1 PEM)"
		report.Bits = kp.N.BitLen()
		report.Modulus = kp.N
		report.Exponent = kp.E
		report.PrivateExponent = kp.D
		report.PrimeP = kp.P
		report.PrimeQ = kp.Q
		report.Fingerprint = keyfmt.Fingerprint(kp.Public())

	case keyfmt.KindPublicPEM:
		pub, err := keyfmt.DecodePublicPEM(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		report.Kind = "public key (PKCS#1 PEM)"
		report.Bits = pub.N.BitLen()
		report.Modulus = pub.N
		report.Exponent = pub.E
		report.Fingerprint = keyfmt.Fingerprint(pub)

	case keyfmt.KindSSHPublic:
		pub, comment, err := keyfmt.ParseSSHPublicKey(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		report.Kind = "public key (ssh-rsa)"
		report.Bits = pub.N.BitLen()
		report.Modulus = pub.N
		report.Exponent = pub.E
		report.Comment = comment
		report.Fingerprint = keyfmt.Fingerprint(pub)

	default:
		info, err := joesrsa.Inspect(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is neither a key nor joes-rsa data", jerrors.ErrUnknownKeyType, path)
		}
		report.Kind = "joes-rsa ciphertext"
		report.Frame = info
	}

	return report, nil
}
