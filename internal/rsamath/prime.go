package rsamath

import (
	"math/big"

	"github.com/PolarWolf314/joesrsa/internal/random"
)

// IsProbablyPrime reports whether n passes rounds iterations of the
// Miller-Rabin test with witnesses drawn from src. A false result is
// definitive. A true result is wrong with probability at most 4^-rounds,
// so rounds trades speed against confidence.
func IsProbablyPrime(n *big.Int, rounds int, src random.Source) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(three) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	// Write n-1 as 2^s * d with d odd.
	nMinusOne := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinusOne)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	// Witnesses are drawn uniformly from [2, n-2].
	span := new(big.Int).Sub(n, three)
	for i := 0; i < rounds; i++ {
		a := randBelow(src, span)
		a.Add(a, two)

		x := modexp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}
		composite := true
		for j := 0; j < s-1; j++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// randBelow returns a uniform value in [0, limit) by rejection sampling.
func randBelow(src random.Source, limit *big.Int) *big.Int {
	for {
		v := src.Bits(limit.BitLen())
		if v.Cmp(limit) < 0 {
			return v
		}
	}
}
