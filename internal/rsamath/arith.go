// Package rsamath implements the number-theoretic primitives behind RSA:
// modular exponentiation, the extended Euclidean algorithm, modular
// inverses, and Miller-Rabin primality testing. The routines are written
// out rather than delegated to math/big equivalents because showing the
// algorithms is the point; they are exact but make no timing guarantees.
package rsamath

import (
	"math/big"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// ModExp returns base^exp mod mod using binary square-and-multiply.
// mod must be positive and exp non-negative.
func ModExp(base, exp, mod *big.Int) (*big.Int, error) {
	if mod.Sign() <= 0 {
		return nil, jerrors.ErrInvalidModulus
	}
	if exp.Sign() < 0 {
		return nil, jerrors.ErrInvalidExponent
	}
	return modexp(base, exp, mod), nil
}

// modexp is ModExp without validation, for callers that have already
// established mod > 0 and exp >= 0.
func modexp(base, exp, mod *big.Int) *big.Int {
	result := big.NewInt(1)
	b := new(big.Int).Mod(base, mod)
	e := new(big.Int).Set(exp)
	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result.Mul(result, b).Mod(result, mod)
		}
		b.Mul(b, b).Mod(b, mod)
		e.Rsh(e, 1)
	}
	return result
}

// ExtendedGCD returns g, x, y satisfying a*x + b*y = g where g = gcd(a, b).
// Inputs must be non-negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	ra := new(big.Int).Set(a)
	rb := new(big.Int).Set(b)
	x0, x1 := big.NewInt(1), big.NewInt(0)
	y0, y1 := big.NewInt(0), big.NewInt(1)
	for rb.Sign() != 0 {
		q, r := new(big.Int).QuoRem(ra, rb, new(big.Int))
		ra, rb = rb, r
		x0, x1 = x1, new(big.Int).Sub(x0, new(big.Int).Mul(q, x1))
		y0, y1 = y1, new(big.Int).Sub(y0, new(big.Int).Mul(q, y1))
	}
	return ra, x0, y0
}

// ModInverse returns the multiplicative inverse of a modulo n, normalized
// into [0, n). It fails with ErrNoInverse when gcd(a, n) != 1.
func ModInverse(a, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, jerrors.ErrInvalidModulus
	}
	g, x, _ := ExtendedGCD(new(big.Int).Mod(a, n), n)
	if g.Cmp(one) != 0 {
		return nil, jerrors.ErrNoInverse
	}
	return x.Mod(x, n), nil
}

// GCD returns the greatest common divisor of two non-negative integers.
func GCD(a, b *big.Int) *big.Int {
	g, _, _ := ExtendedGCD(a, b)
	return g
}

// LCM returns the least common multiple of two non-negative integers.
// LCM(a, 0) and LCM(0, b) are zero.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	q := new(big.Int).Div(a, GCD(a, b))
	return q.Mul(q, b)
}
