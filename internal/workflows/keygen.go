package workflows

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"

	"github.com/PolarWolf314/joesrsa/internal/configs"
	"github.com/PolarWolf314/joesrsa/internal/journal"
	"github.com/PolarWolf314/joesrsa/internal/keyfmt"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
	"github.com/PolarWolf314/joesrsa/internal/random"
	"github.com/PolarWolf314/joesrsa/internal/utils"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Bits is the modulus bit length. 0 takes the config default.
	Bits int

	// Exponent is the public exponent. nil takes the config default.
	Exponent *big.Int

	// Rounds is the Miller-Rabin round count. 0 takes the config default.
	Rounds int

	// Primes injects the two primes directly instead of generating them.
	// Injected primes are validated before use.
	Primes []*big.Int

	// Seed, when set, makes generation deterministic. Never use a seeded
	// key for anything but demonstrations.
	Seed *int64

	// OutputPath is the private key path; the public files take .pub.pem
	// and .pub suffixes. Empty writes joesrsa_<bits> under the user key
	// directory.
	OutputPath string

	// Comment is the SSH public key comment. Empty takes the config
	// default, falling back to username@hostname.
	Comment string

	// Force overwrites existing key files.
	Force bool
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	// KeyPair is the generated key pair.
	KeyPair *keypair.KeyPair

	// Files lists the paths of the three written key files.
	Files *keyfmt.KeyFiles

	// Fingerprint is the SHA256 fingerprint of the public key.
	Fingerprint string

	// Bits is the actual modulus bit length.
	Bits int

	// Exponent is the public exponent used.
	Exponent *big.Int

	// Rounds is the Miller-Rabin round count used.
	Rounds int

	// Seeded reports whether a deterministic source was used.
	Seeded bool

	// Comment is the SSH key comment written to the .pub file.
	Comment string
}

// Keygen generates an RSA key pair and writes the private PEM, public PEM,
// and SSH public key files.
//
// Defaults for bits, exponent, rounds, and comment come from the user
// config. With Primes set, the supplied primes are validated and used
// instead of searching for new ones.
//
// Returns ErrInvalidBits for unusable key sizes, ErrInvalidExponent for a
// bad public exponent, and ErrKeyFileExists when files are present and
// Force is not set.
func Keygen(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	config, err := configs.EnsureUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	bits := opts.Bits
	if bits == 0 {
		bits = config.Defaults.Bits
	}

	e := opts.Exponent
	if e == nil {
		e, err = utils.ParseBigInt(config.Defaults.Exponent)
		if err != nil {
			return nil, fmt.Errorf("invalid exponent in config: %w", err)
		}
	}

	rounds := opts.Rounds
	if rounds == 0 {
		rounds = config.Defaults.Rounds
	}

	var src random.Source = random.CryptoSource{}
	if opts.Seed != nil {
		src = random.NewSeeded(*opts.Seed)
	}

	var kp *keypair.KeyPair
	if len(opts.Primes) > 0 {
		if len(opts.Primes) != 2 {
			return nil, fmt.Errorf("expected exactly two primes, got %d", len(opts.Primes))
		}
		kp, err = keypair.FromPrimes(opts.Primes[0], opts.Primes[1], e)
		if err != nil {
			return nil, err
		}
		if err := kp.Validate(rounds, src); err != nil {
			return nil, fmt.Errorf("injected primes failed validation: %w", err)
		}
	} else {
		kp, err = keypair.Generate(bits, e, rounds, src)
		if err != nil {
			return nil, err
		}
	}
	bits = kp.N.BitLen()

	comment := opts.Comment
	if comment == "" {
		comment = config.Defaults.Comment
	}
	if comment == "" {
		comment = utils.DefaultKeyComment()
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(configs.UserJoesRSASettings.UserKeysPath, fmt.Sprintf("joesrsa_%d", bits))
	}

	files, err := keyfmt.WriteKeyFiles(kp, outputPath, comment, opts.Force)
	if err != nil {
		return nil, err
	}

	fingerprint := keyfmt.Fingerprint(kp.Public())

	entry := journal.LogWithInstall("keygen")
	entry.Bits = bits
	entry.Exponent = utils.FormatHex(e)
	entry.Rounds = rounds
	entry.Seeded = opts.Seed != nil
	entry.Fingerprint = fingerprint
	entry.OutputPath = files.PrivatePath
	journal.Log(entry)

	return &KeygenResult{
		KeyPair:     kp,
		Files:       files,
		Fingerprint: fingerprint,
		Bits:        bits,
		Exponent:    e,
		Rounds:      rounds,
		Seeded:      opts.Seed != nil,
		Comment:     comment,
	}, nil
}
