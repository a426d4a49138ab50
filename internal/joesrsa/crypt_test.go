package joesrsa

import (
	"bytes"
	"encoding/binary"
	"encoding/pem"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
	"github.com/PolarWolf314/joesrsa/internal/random"
)

// mustTestKey builds a deterministic 196-bit key pair, giving 25-byte
// blocks and 24-byte chunks.
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

func appendBytes(b ...[]byte) []byte {
	var out []byte
	for _, bb := range b {
		out = append(out, bb...)
	}
	return out
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp := mustTestKey(t)
	chunkSize := kp.Size() - 1

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"hello world", []byte("hello world")},
		{"empty", []byte{}},
		{"single byte", []byte{0x42}},
		{"leading zeros", []byte{0x00, 0x00, 0x61}},
		{"exactly one chunk", bytes.Repeat([]byte{0xab}, chunkSize)},
		{"one chunk plus one byte", bytes.Repeat([]byte{0xab}, chunkSize+1)},
		{"exactly two chunks", bytes.Repeat([]byte{0xcd}, 2*chunkSize)},
		{"trailing pad characters", append(bytes.Repeat([]byte{0x11}, chunkSize-2), 'x', 'x')},
		{"several kilobytes", bytes.Repeat([]byte("joes rsa "), 400)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, binaryMode := range []bool{true, false} {
				data, err := Encrypt(tt.plaintext, kp.Public(), binaryMode)
				assert.NoError(t, err)

				back, err := Decrypt(data, kp, nil)
				assert.NoError(t, err)
				assert.Equal(t, tt.plaintext, back, "binary=%v", binaryMode)
			}
		})
	}
}

func TestCRTMatchesDirectPath(t *testing.T) {
	kp := mustTestKey(t)
	src := random.NewSeeded(99)

	for i := 0; i < 8; i++ {
		plaintext := src.Bits(512).Bytes()
		data, err := Encrypt(plaintext, kp.Public(), true)
		assert.NoError(t, err)

		viaCRT, err := Decrypt(data, kp, nil)
		assert.NoError(t, err)
		direct, err := Decrypt(data, kp, &DecryptOptions{DisableCRT: true})
		assert.NoError(t, err)

		assert.Equal(t, direct, viaCRT)
		assert.Equal(t, plaintext, viaCRT)
	}
}

// The full teaching scenario: a fresh 1024-bit key pair must carry
// "hello world" through both output modes and both decryption paths.
func TestEndToEndHelloWorld(t *testing.T) {
	kp, err := keypair.Generate(1024, big.NewInt(65537), 8, random.NewSeeded(314))
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	plaintext := []byte("hello world")

	for _, binaryMode := range []bool{true, false} {
		data, err := Encrypt(plaintext, kp.Public(), binaryMode)
		assert.NoError(t, err)

		viaCRT, err := Decrypt(data, kp, nil)
		assert.NoError(t, err)
		assert.Equal(t, plaintext, viaCRT)

		direct, err := Decrypt(data, kp, &DecryptOptions{DisableCRT: true})
		assert.NoError(t, err)
		assert.Equal(t, plaintext, direct)
	}
}

func TestFrameLayout(t *testing.T) {
	kp := mustTestKey(t)
	k := kp.Size()

	// "hi" occupies 2 bytes of a 24-byte chunk, so 22 bytes of padding.
	data, err := Encrypt([]byte("hi"), kp.Public(), true)
	assert.NoError(t, err)

	assert.Len(t, data, headerLen+k)
	assert.Equal(t, []byte(Magic), data[:8])
	assert.Equal(t, FormatVersion, binary.BigEndian.Uint16(data[8:10]))
	assert.Equal(t, uint16(22), binary.BigEndian.Uint16(data[10:12]))
}

func TestArmoredMode(t *testing.T) {
	kp := mustTestKey(t)

	raw, err := Encrypt([]byte("hello world"), kp.Public(), true)
	assert.NoError(t, err)
	armored, err := Encrypt([]byte("hello world"), kp.Public(), false)
	assert.NoError(t, err)

	text := string(armored)
	assert.True(t, strings.HasPrefix(text, "-----BEGIN JOES RSA ENCRYPTED DATA-----\n"))
	assert.True(t, strings.HasSuffix(text, "-----END JOES RSA ENCRYPTED DATA-----\n"))
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		assert.LessOrEqual(t, len(line), 64)
	}

	// The armor carries the raw frame bytes: same header, same blocks.
	block, rest := pem.Decode(armored)
	assert.NotNil(t, block)
	assert.Empty(t, rest)
	assert.Equal(t, raw, block.Bytes)
}

func TestDecryptRejects(t *testing.T) {
	kp := mustTestKey(t)
	k := kp.Size()

	valid, err := Encrypt([]byte("hello world"), kp.Public(), true)
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}

	corruptMagic := append([]byte{}, valid...)
	corruptMagic[7] = 'b'

	versionOne := append([]byte{}, valid...)
	versionOne[9] = 0x01

	hugePad := append([]byte{}, valid...)
	binary.BigEndian.PutUint16(hugePad[10:12], uint16(k-1))

	padWithoutBody := encodeHeader(header{version: FormatVersion, padCount: 3})

	oversizedBlock := appendBytes(
		encodeHeader(header{version: FormatVersion}),
		bytes.Repeat([]byte{0xff}, k), // every bit set, necessarily >= n
	)

	wrongArmor := pem.EncodeToMemory(&pem.Block{Type: "WRONG TYPE", Bytes: valid})

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty input", []byte{}, jerrors.ErrUnknownFormat},
		{"short header", []byte("joes-rsa"), jerrors.ErrUnknownFormat},
		{"corrupted magic", corruptMagic, jerrors.ErrUnknownFormat},
		{"foreign data", bytes.Repeat([]byte{0x55}, 64), jerrors.ErrUnknownFormat},
		{"version one", versionOne, jerrors.ErrUnsupportedVersion},
		{"truncated final block", valid[:len(valid)-1], jerrors.ErrChunkSizeMismatch},
		{"trailing byte", append(append([]byte{}, valid...), 0x00), jerrors.ErrChunkSizeMismatch},
		{"block not below modulus", oversizedBlock, jerrors.ErrUnknownFormat},
		{"padding exceeds chunk", hugePad, jerrors.ErrUnknownFormat},
		{"padding without body", padWithoutBody, jerrors.ErrUnknownFormat},
		{"wrong armor type", wrongArmor, jerrors.ErrUnknownFormat},
		{"broken armor", []byte("-----BEGIN JOES RSA ENCRYPTED DATA-----\nnot base64!\n"), jerrors.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.data, kp, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncryptRejectsTinyModulus(t *testing.T) {
	// An 8-bit modulus encodes to a single byte, leaving no chunk room.
	pub := &keypair.PublicKey{N: big.NewInt(251), E: big.NewInt(3)}
	_, err := Encrypt([]byte("x"), pub, true)
	assert.ErrorIs(t, err, jerrors.ErrInvalidBits)
}

func TestInspect(t *testing.T) {
	kp := mustTestKey(t)
	k := kp.Size()

	raw, err := Encrypt([]byte("hi"), kp.Public(), true)
	assert.NoError(t, err)
	armored, err := Encrypt([]byte("hi"), kp.Public(), false)
	assert.NoError(t, err)

	info, err := Inspect(raw)
	assert.NoError(t, err)
	assert.Equal(t, &FrameInfo{Armored: false, Version: 0, PadCount: 22, BodyBytes: k}, info)

	info, err = Inspect(armored)
	assert.NoError(t, err)
	assert.Equal(t, &FrameInfo{Armored: true, Version: 0, PadCount: 22, BodyBytes: k}, info)

	_, err = Inspect([]byte("not a frame"))
	assert.ErrorIs(t, err, jerrors.ErrUnknownFormat)
}
