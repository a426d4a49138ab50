package errors

import "errors"

// Arithmetic errors indicate invalid inputs to the number-theoretic core.
var (
	// ErrInvalidModulus indicates a modular operation was asked for with a modulus that is zero or negative.
	ErrInvalidModulus = errors.New("modulus must be positive")

	// ErrNoInverse indicates the inputs share a common factor, so no modular inverse exists.
	ErrNoInverse = errors.New("no modular inverse exists")

	// ErrInvalidExponent indicates the public exponent is unusable: even, below 3, or not coprime to the key's totient.
	ErrInvalidExponent = errors.New("invalid public exponent")

	// ErrInvalidBits indicates the requested key size is too small to hold even one message chunk.
	ErrInvalidBits = errors.New("key size too small")

	// ErrPrimesNotDistinct indicates the two supplied primes are equal, which RSA does not permit.
	ErrPrimesNotDistinct = errors.New("primes must be distinct")
)

// Encoding errors indicate malformed or unsupported key material on disk.
var (
	// ErrMalformedDER indicates the DER structure is truncated, has a length mismatch, or carries trailing bytes.
	ErrMalformedDER = errors.New("malformed DER structure")

	// ErrMalformedPEM indicates the expected PEM block is missing or of the wrong type.
	ErrMalformedPEM = errors.New("malformed PEM block")

	// ErrMalformedSSHKey indicates an SSH public key line or blob could not be parsed.
	ErrMalformedSSHKey = errors.New("malformed SSH public key")

	// ErrUnknownKeyType indicates the key algorithm is not ssh-rsa, or a key file could not be classified.
	ErrUnknownKeyType = errors.New("unknown key type")

	// ErrUnsupportedVersion indicates a PKCS#1 structure or ciphertext frame with a version other than zero.
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Ciphertext errors indicate damaged or foreign encrypted data.
var (
	// ErrUnknownFormat indicates data that does not carry the joes-rsa magic, or a block value no valid encryption could produce.
	ErrUnknownFormat = errors.New("not joes-rsa data")

	// ErrChunkSizeMismatch indicates the ciphertext body does not divide into whole modulus-sized blocks.
	ErrChunkSizeMismatch = errors.New("ciphertext length does not match key size")
)

// File errors indicate refusals around key files, data files, and command input.
var (
	// ErrKeyFileExists indicates a key file is already present and overwrite was not forced.
	ErrKeyFileExists = errors.New("key file already exists")

	// ErrSameFile indicates input and output resolve to the same path.
	ErrSameFile = errors.New("input and output are the same file")

	// ErrInvalidDate indicates a date filter that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date format")
)
