package utils

import (
	"math/big"
	"testing"
)

func TestParseBigInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Decimal", "65537", "65537"},
		{"DecimalSmall", "3", "3"},
		{"HexLower", "0x10001", "65537"},
		{"HexUpper", "0X10001", "65537"},
		{"HexDigits", "0xdeadbeef", "3735928559"},
		{"LeadingWhitespace", "  65537  ", "65537"},
		{"Zero", "0", "0"},
		{"LargeDecimal", "162259276829213363391578010288127", "162259276829213363391578010288127"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBigInt(tc.input)
			if err != nil {
				t.Fatalf("ParseBigInt(%q) failed: %v", tc.input, err)
			}
			want, _ := new(big.Int).SetString(tc.want, 10)
			if got.Cmp(want) != 0 {
				t.Errorf("ParseBigInt(%q) = %s, expected %s", tc.input, got, want)
			}
		})
	}
}

func TestParseBigIntRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Whitespace", "   "},
		{"Negative", "-7"},
		{"BarePrefix", "0x"},
		{"NotANumber", "sixty-five"},
		{"HexInDecimal", "10ff"},
		{"TrailingGarbage", "65537x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseBigInt(tc.input); err == nil {
				t.Errorf("ParseBigInt(%q) should have failed", tc.input)
			}
		})
	}
}

func TestFormatHex(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"CommonExponent", 65537, "0x10001"},
		{"Zero", 0, "0x0"},
		{"Small", 3, "0x3"},
		{"Lowercase", 0xdeadbeef, "0xdeadbeef"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatHex(big.NewInt(tc.input))
			if got != tc.want {
				t.Errorf("FormatHex(%d) = %q, expected %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseBigIntRoundTripsFormatHex(t *testing.T) {
	original := big.NewInt(0x10001)
	parsed, err := ParseBigInt(FormatHex(original))
	if err != nil {
		t.Fatalf("ParseBigInt failed: %v", err)
	}
	if parsed.Cmp(original) != 0 {
		t.Errorf("Round trip changed value: %s vs %s", parsed, original)
	}
}
