// Package keypair builds complete RSA key pairs: prime search, parameter
// derivation, and the CRT auxiliary values carried by PKCS#1. Keys are
// plain structs of big integers; treat them as immutable once built.
package keypair

import (
	"fmt"
	"math/big"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/random"
	"github.com/PolarWolf314/joesrsa/internal/rsamath"
)

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
)

// KeyPair holds a full RSA private key. P is always the larger prime, so
// Qinv is the inverse of the smaller prime modulo the larger one, matching
// the PKCS#1 field order.
type KeyPair struct {
	N    *big.Int // modulus, p*q
	E    *big.Int // public exponent
	D    *big.Int // private exponent, e^-1 mod lcm(p-1, q-1)
	P    *big.Int // larger prime
	Q    *big.Int // smaller prime
	Dp   *big.Int // d mod p-1
	Dq   *big.Int // d mod q-1
	Qinv *big.Int // q^-1 mod p
}

// PublicKey is the shareable half of a key pair.
type PublicKey struct {
	N *big.Int // modulus
	E *big.Int // public exponent
}

// FromPrimes derives the full key pair from two distinct primes and a public
// exponent. It does not test p and q for primality; callers injecting raw
// primes can run Validate afterwards. The private exponent is computed
// modulo lcm(p-1, q-1), so it fails with ErrInvalidExponent when e shares a
// factor with that value.
func FromPrimes(p, q, e *big.Int) (*KeyPair, error) {
	if err := checkExponent(e); err != nil {
		return nil, err
	}
	if p.Cmp(q) == 0 {
		return nil, jerrors.ErrPrimesNotDistinct
	}
	if p.Cmp(q) < 0 {
		p, q = q, p
	}

	n := new(big.Int).Mul(p, q)
	pMinusOne := new(big.Int).Sub(p, one)
	qMinusOne := new(big.Int).Sub(q, one)
	lambda := rsamath.LCM(pMinusOne, qMinusOne)

	d, err := rsamath.ModInverse(e, lambda)
	if err != nil {
		return nil, fmt.Errorf("%w: e shares a factor with lcm(p-1, q-1)", jerrors.ErrInvalidExponent)
	}
	qinv, err := rsamath.ModInverse(q, p)
	if err != nil {
		return nil, fmt.Errorf("computing CRT coefficient: %w", err)
	}

	return &KeyPair{
		N:    n,
		E:    new(big.Int).Set(e),
		D:    d,
		P:    new(big.Int).Set(p),
		Q:    new(big.Int).Set(q),
		Dp:   new(big.Int).Mod(d, pMinusOne),
		Dq:   new(big.Int).Mod(d, qMinusOne),
		Qinv: qinv,
	}, nil
}

// Public returns the public half of the key pair.
func (kp *KeyPair) Public() *PublicKey {
	return &PublicKey{N: kp.N, E: kp.E}
}

// Size returns the modulus length in bytes, which is also the ciphertext
// block size.
func (kp *KeyPair) Size() int {
	return (kp.N.BitLen() + 7) / 8
}

// Equal reports whether two key pairs hold identical parameters.
func (kp *KeyPair) Equal(other *KeyPair) bool {
	if other == nil {
		return false
	}
	return kp.N.Cmp(other.N) == 0 &&
		kp.E.Cmp(other.E) == 0 &&
		kp.D.Cmp(other.D) == 0 &&
		kp.P.Cmp(other.P) == 0 &&
		kp.Q.Cmp(other.Q) == 0 &&
		kp.Dp.Cmp(other.Dp) == 0 &&
		kp.Dq.Cmp(other.Dq) == 0 &&
		kp.Qinv.Cmp(other.Qinv) == 0
}

// Validate recomputes every invariant of the key pair, testing the primes
// with the given Miller-Rabin round count. It is meant for keys built from
// injected primes or read from disk.
func (kp *KeyPair) Validate(rounds int, src random.Source) error {
	if !rsamath.IsProbablyPrime(kp.P, rounds, src) {
		return fmt.Errorf("p is not prime")
	}
	if !rsamath.IsProbablyPrime(kp.Q, rounds, src) {
		return fmt.Errorf("q is not prime")
	}
	if kp.P.Cmp(kp.Q) == 0 {
		return jerrors.ErrPrimesNotDistinct
	}
	if kp.P.Cmp(kp.Q) < 0 {
		return fmt.Errorf("p must be the larger prime")
	}
	if n := new(big.Int).Mul(kp.P, kp.Q); n.Cmp(kp.N) != 0 {
		return fmt.Errorf("n is not the product of p and q")
	}

	pMinusOne := new(big.Int).Sub(kp.P, one)
	qMinusOne := new(big.Int).Sub(kp.Q, one)
	lambda := rsamath.LCM(pMinusOne, qMinusOne)
	ed := new(big.Int).Mul(kp.E, kp.D)
	if ed.Mod(ed, lambda).Cmp(one) != 0 {
		return fmt.Errorf("e*d is not 1 modulo lcm(p-1, q-1)")
	}

	if dp := new(big.Int).Mod(kp.D, pMinusOne); dp.Cmp(kp.Dp) != 0 {
		return fmt.Errorf("dp does not match d mod p-1")
	}
	if dq := new(big.Int).Mod(kp.D, qMinusOne); dq.Cmp(kp.Dq) != 0 {
		return fmt.Errorf("dq does not match d mod q-1")
	}
	check := new(big.Int).Mul(kp.Q, kp.Qinv)
	if check.Mod(check, kp.P).Cmp(one) != 0 {
		return fmt.Errorf("qinv is not the inverse of q modulo p")
	}
	return nil
}

// Size returns the modulus length in bytes.
func (pub *PublicKey) Size() int {
	return (pub.N.BitLen() + 7) / 8
}

// Equal reports whether two public keys hold identical parameters.
func (pub *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pub.N.Cmp(other.N) == 0 && pub.E.Cmp(other.E) == 0
}

func checkExponent(e *big.Int) error {
	if e.Cmp(three) < 0 || e.Bit(0) == 0 {
		return fmt.Errorf("%w: must be an odd integer of at least 3", jerrors.ErrInvalidExponent)
	}
	return nil
}
