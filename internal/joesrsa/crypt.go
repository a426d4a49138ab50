package joesrsa

import (
	"fmt"
	"math"
	"math/big"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
	"github.com/PolarWolf314/joesrsa/internal/rsamath"
)

// DecryptOptions tunes the decryption path.
type DecryptOptions struct {
	// DisableCRT forces the plain m = c^d mod n computation instead of
	// the faster Chinese-remainder combination.
	DisableCRT bool
}

// Encrypt splits plaintext into chunks one byte shorter than the modulus,
// encrypts each with c = m^e mod n, and frames the blocks behind a joes-rsa
// header. With binary set the raw frame is returned; otherwise it is
// wrapped in PEM armor. Both decrypt to the same plaintext.
func Encrypt(plaintext []byte, pub *keypair.PublicKey, binary bool) ([]byte, error) {
	k := pub.Size()
	if k < 2 {
		return nil, fmt.Errorf("%w: modulus of %d bytes leaves no room for data", jerrors.ErrInvalidBits, k)
	}
	chunkSize := k - 1
	if chunkSize-1 > math.MaxUint16 {
		return nil, fmt.Errorf("%w: modulus too large for the frame's padding field", jerrors.ErrInvalidBits)
	}

	padded := plaintext
	pad := 0
	if rem := len(plaintext) % chunkSize; rem != 0 {
		pad = chunkSize - rem
		padded = make([]byte, len(plaintext)+pad)
		copy(padded, plaintext)
		for i := len(plaintext); i < len(padded); i++ {
			padded[i] = padByte
		}
	}

	frame := encodeHeader(header{version: FormatVersion, padCount: uint16(pad)})
	m := new(big.Int)
	for off := 0; off < len(padded); off += chunkSize {
		m.SetBytes(padded[off : off+chunkSize])
		c, err := rsamath.ModExp(m, pub.E, pub.N)
		if err != nil {
			return nil, fmt.Errorf("encrypting chunk at %d: %w", off, err)
		}
		frame = append(frame, c.FillBytes(make([]byte, k))...)
	}

	if binary {
		return frame, nil
	}
	return armor(frame), nil
}

// Decrypt recovers plaintext from armored or raw joes-rsa data. opts may be
// nil for the defaults (CRT enabled). Damaged input fails with
// ErrUnknownFormat, ErrUnsupportedVersion or ErrChunkSizeMismatch and never
// yields partial output.
func Decrypt(data []byte, kp *keypair.KeyPair, opts *DecryptOptions) ([]byte, error) {
	raw, err := unarmor(data)
	if err != nil {
		return nil, err
	}
	h, body, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	k := kp.Size()
	if k < 2 {
		return nil, fmt.Errorf("%w: modulus of %d bytes cannot carry data", jerrors.ErrInvalidBits, k)
	}
	if len(body)%k != 0 {
		return nil, fmt.Errorf("%w: body of %d bytes is not whole %d-byte blocks", jerrors.ErrChunkSizeMismatch, len(body), k)
	}

	useCRT := opts == nil || !opts.DisableCRT
	chunkSize := k - 1
	out := make([]byte, 0, len(body)/k*chunkSize)
	c := new(big.Int)
	for off := 0; off < len(body); off += k {
		c.SetBytes(body[off : off+k])
		if c.Cmp(kp.N) >= 0 {
			return nil, fmt.Errorf("%w: block at %d is not below the modulus", jerrors.ErrUnknownFormat, off)
		}

		var m *big.Int
		if useCRT {
			m, err = decryptCRT(c, kp)
		} else {
			m, err = rsamath.ModExp(c, kp.D, kp.N)
		}
		if err != nil {
			return nil, fmt.Errorf("decrypting block at %d: %w", off, err)
		}
		if m.BitLen() > 8*chunkSize {
			return nil, fmt.Errorf("%w: block at %d decrypts outside the chunk range", jerrors.ErrUnknownFormat, off)
		}
		out = append(out, m.FillBytes(make([]byte, chunkSize))...)
	}

	pad := int(h.padCount)
	if pad > 0 && (len(out) == 0 || pad >= chunkSize) {
		return nil, fmt.Errorf("%w: padding of %d bytes cannot come from a %d-byte chunk", jerrors.ErrUnknownFormat, pad, chunkSize)
	}
	return out[:len(out)-pad], nil
}

// decryptCRT computes c^d mod n from the residues modulo the two primes:
// m1 = c^dp mod p, m2 = c^dq mod q, then Garner's combination
// m = m2 + q * (qinv*(m1-m2) mod p).
func decryptCRT(c *big.Int, kp *keypair.KeyPair) (*big.Int, error) {
	m1, err := rsamath.ModExp(c, kp.Dp, kp.P)
	if err != nil {
		return nil, err
	}
	m2, err := rsamath.ModExp(c, kp.Dq, kp.Q)
	if err != nil {
		return nil, err
	}

	h := new(big.Int).Sub(m1, m2)
	h.Mul(h, kp.Qinv)
	h.Mod(h, kp.P)

	m := h.Mul(h, kp.Q)
	return m.Add(m, m2), nil
}
