// Package random provides the source of randomness consumed by prime
// generation and primality testing. Callers depend on the Source interface
// only, so swapping the OS generator for a seeded one never changes their
// logic.
package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// Source yields random integers for the key generation pipeline.
type Source interface {
	// Bits returns a uniformly random integer in [0, 2^n). n must be positive.
	Bits(n int) *big.Int
}

// CryptoSource draws from the operating system's CSPRNG via crypto/rand.
// The zero value is ready to use.
type CryptoSource struct{}

// Bits implements Source.
func (CryptoSource) Bits(n int) *big.Int {
	if n <= 0 {
		panic(fmt.Sprintf("random: bit count must be positive, got %d", n))
	}
	buf := make([]byte, (n+7)/8)
	if _, err := rand.Read(buf); err != nil {
		// The kernel generator does not fail on supported platforms.
		panic(fmt.Sprintf("random: reading crypto/rand: %v", err))
	}
	if rem := n % 8; rem != 0 {
		buf[0] &= byte(1<<rem) - 1
	}
	return new(big.Int).SetBytes(buf)
}

// SeededSource draws from a math/rand generator with a fixed seed, so the
// same seed reproduces the same primes and therefore the same keys. It is
// for demonstrations and tests only and is not cryptographically secure.
type SeededSource struct {
	rng *mrand.Rand
}

// NewSeeded returns a SeededSource for the given seed.
func NewSeeded(seed int64) *SeededSource {
	return &SeededSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Bits implements Source.
func (s *SeededSource) Bits(n int) *big.Int {
	if n <= 0 {
		panic(fmt.Sprintf("random: bit count must be positive, got %d", n))
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return new(big.Int).Rand(s.rng, limit)
}
