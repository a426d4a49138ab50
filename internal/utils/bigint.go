package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseBigInt parses a non-negative integer written in decimal or in
// 0x-prefixed hex.
func ParseBigInt(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("empty number")
	}

	base := 10
	digits := trimmed
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		base = 16
		digits = trimmed[2:]
		if digits == "" {
			return nil, fmt.Errorf("%q is not a valid number", s)
		}
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%q is not a valid number", s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%q must not be negative", s)
	}

	return n, nil
}

// FormatHex renders n as 0x-prefixed lowercase hex, the notation the
// journal and inspect output use for exponents and moduli.
func FormatHex(n *big.Int) string {
	return "0x" + n.Text(16)
}
