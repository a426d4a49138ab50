package keyfmt

import (
	"crypto/x509"
	"encoding/asn1"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PolarWolf314/joesrsa/internal/der"
	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
	"github.com/PolarWolf314/joesrsa/internal/random"
)

// mustTestKey builds a small deterministic key pair from two Mersenne
// primes, large enough to exercise multi-byte DER lengths.
func mustTestKey(t *testing.T) *keypair.KeyPair {
	t.Helper()
	// The Mersenne primes 2^89-1 and 2^107-1.
	p, _ := new(big.Int).SetString("618970019642690137449562111", 10)
	q, _ := new(big.Int).SetString("162259276829213363391578010288127", 10)
	kp, err := keypair.FromPrimes(p, q, big.NewInt(65537))
	if err != nil {
		t.Fatalf("building test key: %v", err)
	}
	return kp
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	kp := mustTestKey(t)

	encoded := MarshalPKCS1PrivateKey(kp)
	back, err := ParsePKCS1PrivateKey(encoded)
	assert.NoError(t, err)
	assert.True(t, kp.Equal(back), "decoded key differs from original")

	// Re-encoding the decoded key must be byte-identical.
	assert.Equal(t, encoded, MarshalPKCS1PrivateKey(back))
}

func TestPublicKeyRoundTrip(t *testing.T) {
	pub := mustTestKey(t).Public()

	encoded := MarshalPKCS1PublicKey(pub)
	back, err := ParsePKCS1PublicKey(encoded)
	assert.NoError(t, err)
	assert.True(t, pub.Equal(back), "decoded key differs from original")
	assert.Equal(t, encoded, MarshalPKCS1PublicKey(back))
}

// A freshly generated 1024-bit key pair must parse with the standard
// library's PKCS#1 decoder and expose identical parameters, including the
// CRT values it precomputes.
func TestPrivateKeyReadableByStdlib(t *testing.T) {
	kp, err := keypair.Generate(1024, big.NewInt(65537), 8, random.NewSeeded(2024))
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	parsed, err := x509.ParsePKCS1PrivateKey(MarshalPKCS1PrivateKey(kp))
	assert.NoError(t, err)

	assert.Equal(t, 0, kp.N.Cmp(parsed.N), "modulus differs")
	assert.Equal(t, kp.E.Int64(), int64(parsed.E), "public exponent differs")
	assert.Equal(t, 0, kp.D.Cmp(parsed.D), "private exponent differs")
	assert.Equal(t, 0, kp.P.Cmp(parsed.Primes[0]), "first prime differs")
	assert.Equal(t, 0, kp.Q.Cmp(parsed.Primes[1]), "second prime differs")
	assert.Equal(t, 0, kp.Dp.Cmp(parsed.Precomputed.Dp), "dp differs")
	assert.Equal(t, 0, kp.Dq.Cmp(parsed.Precomputed.Dq), "dq differs")
	assert.Equal(t, 0, kp.Qinv.Cmp(parsed.Precomputed.Qinv), "qinv differs")
}

func TestPublicKeyReadableByStdlib(t *testing.T) {
	pub := mustTestKey(t).Public()

	var parsed struct {
		N *big.Int
		E *big.Int
	}
	rest, err := asn1.Unmarshal(MarshalPKCS1PublicKey(pub), &parsed)
	assert.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, 0, pub.N.Cmp(parsed.N))
	assert.Equal(t, 0, pub.E.Cmp(parsed.E))
}

// Keys produced by the standard library must decode here, and re-encode to
// the exact bytes the standard library produced.
func TestStdlibKeyReadableHere(t *testing.T) {
	kp := mustTestKey(t)
	stdKey, err := x509.ParsePKCS1PrivateKey(MarshalPKCS1PrivateKey(kp))
	assert.NoError(t, err)

	stdBytes := x509.MarshalPKCS1PrivateKey(stdKey)
	back, err := ParsePKCS1PrivateKey(stdBytes)
	assert.NoError(t, err)
	assert.True(t, kp.Equal(back))
	assert.Equal(t, stdBytes, MarshalPKCS1PrivateKey(back))
}

func TestParsePrivateKeyRejectsVersionOne(t *testing.T) {
	kp := mustTestKey(t)
	blob := der.Marshal(der.Sequence(
		der.Integer(big.NewInt(1)), // multiprime version
		der.Integer(kp.N),
		der.Integer(kp.E),
		der.Integer(kp.D),
		der.Integer(kp.P),
		der.Integer(kp.Q),
		der.Integer(kp.Dp),
		der.Integer(kp.Dq),
		der.Integer(kp.Qinv),
	))

	_, err := ParsePKCS1PrivateKey(blob)
	assert.ErrorIs(t, err, jerrors.ErrUnsupportedVersion)
}

func TestParsePrivateKeyRejectsMalformed(t *testing.T) {
	kp := mustTestKey(t)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", []byte{}},
		{"not a sequence", der.Marshal(der.Integer(big.NewInt(0)))},
		{
			"too few fields",
			der.Marshal(der.Sequence(
				der.Integer(big.NewInt(0)),
				der.Integer(kp.N),
				der.Integer(kp.E),
			)),
		},
		{
			"non-integer field",
			der.Marshal(der.Sequence(
				der.Integer(big.NewInt(0)),
				der.OctetString([]byte{0x01}),
				der.Integer(kp.E),
				der.Integer(kp.D),
				der.Integer(kp.P),
				der.Integer(kp.Q),
				der.Integer(kp.Dp),
				der.Integer(kp.Dq),
				der.Integer(kp.Qinv),
			)),
		},
		{"trailing garbage", append(MarshalPKCS1PrivateKey(kp), 0x00)},
		{"truncated", MarshalPKCS1PrivateKey(kp)[:40]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePKCS1PrivateKey(tt.data)
			assert.ErrorIs(t, err, jerrors.ErrMalformedDER)
		})
	}
}

func TestParsePublicKeyRejectsMalformed(t *testing.T) {
	pub := mustTestKey(t).Public()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", []byte{}},
		{"not a sequence", der.Marshal(der.Null())},
		{"one field", der.Marshal(der.Sequence(der.Integer(pub.N)))},
		{
			"three fields",
			der.Marshal(der.Sequence(
				der.Integer(pub.N),
				der.Integer(pub.E),
				der.Integer(big.NewInt(3)),
			)),
		},
		{"trailing garbage", append(MarshalPKCS1PublicKey(pub), 0xff)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePKCS1PublicKey(tt.data)
			assert.ErrorIs(t, err, jerrors.ErrMalformedDER)
		})
	}
}
