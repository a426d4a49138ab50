// Package joesrsa implements the joes-rsa ciphertext format: a 12-byte
// header (magic, version, padding count) followed by RSA-encrypted blocks,
// each exactly one modulus length. Plaintext is chunked one byte short of
// the modulus length so every chunk value stays below the modulus. The
// frame travels either raw or wrapped in PEM armor for text-safe transport;
// both carry identical bytes and decrypt identically.
package joesrsa

import (
	"bytes"
	"encoding/binary"
	"encoding/pem"
	"fmt"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
)

// Magic identifies joes-rsa ciphertext. It opens every frame.
const Magic = "joes-rsa"

// FormatVersion is the only frame version this toolkit reads or writes.
const FormatVersion uint16 = 0

// ArmorType is the PEM block type used for the text-safe encoding.
const ArmorType = "JOES RSA ENCRYPTED DATA"

// padByte fills out the final plaintext chunk; the header records how many
// to strip after decryption.
const padByte = 'x'

const headerLen = len(Magic) + 4

// header carries the frame bookkeeping that precedes the ciphertext blocks.
type header struct {
	version  uint16
	padCount uint16
}

func encodeHeader(h header) []byte {
	out := make([]byte, headerLen)
	copy(out, Magic)
	binary.BigEndian.PutUint16(out[len(Magic):], h.version)
	binary.BigEndian.PutUint16(out[len(Magic)+2:], h.padCount)
	return out
}

// parseHeader validates the magic and version and returns the header and
// the ciphertext body.
func parseHeader(data []byte) (header, []byte, error) {
	if len(data) < headerLen {
		return header{}, nil, fmt.Errorf("%w: %d bytes is too short for a frame header", jerrors.ErrUnknownFormat, len(data))
	}
	if !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return header{}, nil, fmt.Errorf("%w: bad magic", jerrors.ErrUnknownFormat)
	}
	h := header{
		version:  binary.BigEndian.Uint16(data[len(Magic):]),
		padCount: binary.BigEndian.Uint16(data[len(Magic)+2:]),
	}
	if h.version != FormatVersion {
		return header{}, nil, fmt.Errorf("%w: frame version %d", jerrors.ErrUnsupportedVersion, h.version)
	}
	return h, data[headerLen:], nil
}

// armor wraps a raw frame in the PEM block used for text-safe output.
func armor(frame []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: ArmorType, Bytes: frame})
}

// unarmor recovers the raw frame from text-safe input. Input that does not
// look armored is returned unchanged, so callers can feed either mode.
func unarmor(data []byte) ([]byte, error) {
	if !looksArmored(data) {
		return data, nil
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: broken armor", jerrors.ErrUnknownFormat)
	}
	if block.Type != ArmorType {
		return nil, fmt.Errorf("%w: armor of type %q", jerrors.ErrUnknownFormat, block.Type)
	}
	return block.Bytes, nil
}

func looksArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN "))
}

// FrameInfo summarizes a ciphertext frame without decrypting it.
type FrameInfo struct {
	Armored   bool
	Version   uint16
	PadCount  int
	BodyBytes int
}

// Inspect reports the frame bookkeeping of armored or raw ciphertext.
func Inspect(data []byte) (*FrameInfo, error) {
	armored := looksArmored(data)
	raw, err := unarmor(data)
	if err != nil {
		return nil, err
	}
	h, body, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}
	return &FrameInfo{
		Armored:   armored,
		Version:   h.version,
		PadCount:  int(h.padCount),
		BodyBytes: len(body),
	}, nil
}
