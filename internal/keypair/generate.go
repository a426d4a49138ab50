package keypair

import (
	"fmt"
	"math/big"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/random"
	"github.com/PolarWolf314/joesrsa/internal/rsamath"
)

// GeneratePrime searches for a prime of exactly the given bit length. Each
// candidate is drawn from src with the top bit forced set (to guarantee the
// length) and the bottom bit forced set (to guarantee oddness), then tested
// with Miller-Rabin. Candidates where gcd(candidate-1, e) != 1 are rejected
// because the exponent would have no inverse later. Retries are unbounded;
// rounds only tunes how much work each candidate costs.
func GeneratePrime(bits int, e *big.Int, rounds int, src random.Source) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: a prime needs at least 2 bits, got %d", jerrors.ErrInvalidBits, bits)
	}
	if err := checkExponent(e); err != nil {
		return nil, err
	}

	pMinusOne := new(big.Int)
	for {
		candidate := src.Bits(bits)
		candidate.SetBit(candidate, bits-1, 1)
		candidate.SetBit(candidate, 0, 1)

		if !rsamath.IsProbablyPrime(candidate, rounds, src) {
			continue
		}
		pMinusOne.Sub(candidate, one)
		if rsamath.GCD(pMinusOne, e).Cmp(one) != 0 {
			continue
		}
		return candidate, nil
	}
}

// Generate produces a key pair whose modulus is exactly bits long, from two
// distinct primes of half that size. Prime pairs whose product falls a bit
// short are discarded and redrawn. bits must be even and at least 16.
func Generate(bits int, e *big.Int, rounds int, src random.Source) (*KeyPair, error) {
	if bits < 16 || bits%2 != 0 {
		return nil, fmt.Errorf("%w: modulus size must be an even bit count of at least 16, got %d", jerrors.ErrInvalidBits, bits)
	}
	if err := checkExponent(e); err != nil {
		return nil, err
	}

	half := bits / 2
	for {
		p, err := GeneratePrime(half, e, rounds, src)
		if err != nil {
			return nil, err
		}
		q, err := GeneratePrime(half, e, rounds, src)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		if n := new(big.Int).Mul(p, q); n.BitLen() != bits {
			continue
		}
		return FromPrimes(p, q, e)
	}
}
