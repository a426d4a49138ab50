package keyfmt

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
)

// SSHKeyType is the only algorithm identifier this toolkit understands.
const SSHKeyType = "ssh-rsa"

// SSHPublicKeyBlob builds the SSH wire-format blob: the algorithm name, e,
// then n, each as a length-prefixed byte string. The integers follow the
// same leading-zero rule as DER so they always read back non-negative.
func SSHPublicKeyBlob(pub *keypair.PublicKey) []byte {
	var buf bytes.Buffer
	writeSSHString(&buf, []byte(SSHKeyType))
	writeSSHString(&buf, sshMpint(pub.E))
	writeSSHString(&buf, sshMpint(pub.N))
	return buf.Bytes()
}

// MarshalSSHPublicKey renders the conventional one-line text form:
// "ssh-rsa <base64 blob> <comment>", newline terminated.
func MarshalSSHPublicKey(pub *keypair.PublicKey, comment string) []byte {
	line := SSHKeyType + " " + base64.StdEncoding.EncodeToString(SSHPublicKeyBlob(pub))
	if comment != "" {
		line += " " + comment
	}
	return []byte(line + "\n")
}

// ParseSSHPublicKey reverses MarshalSSHPublicKey, returning the key and its
// comment.
func ParseSSHPublicKey(data []byte) (*keypair.PublicKey, string, error) {
	fields := strings.Fields(strings.TrimSpace(string(data)))
	if len(fields) < 2 {
		return nil, "", fmt.Errorf("%w: want %q", jerrors.ErrMalformedSSHKey, "ssh-rsa <base64> [comment]")
	}
	if fields[0] != SSHKeyType {
		return nil, "", fmt.Errorf("%w: %q", jerrors.ErrUnknownKeyType, fields[0])
	}

	blob, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding base64: %v", jerrors.ErrMalformedSSHKey, err)
	}
	pub, err := ParseSSHPublicKeyBlob(blob)
	if err != nil {
		return nil, "", err
	}
	return pub, strings.Join(fields[2:], " "), nil
}

// ParseSSHPublicKeyBlob decodes the binary blob inside the base64 text.
func ParseSSHPublicKeyBlob(blob []byte) (*keypair.PublicKey, error) {
	algo, rest, err := readSSHString(blob)
	if err != nil {
		return nil, err
	}
	if string(algo) != SSHKeyType {
		return nil, fmt.Errorf("%w: %q", jerrors.ErrUnknownKeyType, algo)
	}

	eBytes, rest, err := readSSHString(rest)
	if err != nil {
		return nil, err
	}
	e, err := sshMpintValue(eBytes)
	if err != nil {
		return nil, err
	}

	nBytes, rest, err := readSSHString(rest)
	if err != nil {
		return nil, err
	}
	n, err := sshMpintValue(nBytes)
	if err != nil {
		return nil, err
	}

	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after modulus", jerrors.ErrMalformedSSHKey, len(rest))
	}
	return &keypair.PublicKey{N: n, E: e}, nil
}

// Fingerprint returns the ssh-keygen style SHA256 fingerprint of the
// public key.
func Fingerprint(pub *keypair.PublicKey) string {
	sum := sha256.Sum256(SSHPublicKeyBlob(pub))
	return "SHA256:" + base64.RawStdEncoding.EncodeToString(sum[:])
}

func writeSSHString(buf *bytes.Buffer, b []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(b)))
	buf.Write(length[:])
	buf.Write(b)
}

func readSSHString(data []byte) (field, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("%w: field length truncated", jerrors.ErrMalformedSSHKey)
	}
	length := int(binary.BigEndian.Uint32(data))
	if length > len(data)-4 {
		return nil, nil, fmt.Errorf("%w: field of %d bytes overruns blob", jerrors.ErrMalformedSSHKey, length)
	}
	return data[4 : 4+length], data[4+length:], nil
}

// sshMpint renders a non-negative value as minimal big-endian bytes with a
// zero byte prepended when the high bit is set.
func sshMpint(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) > 0 && b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return b
}

func sshMpintValue(b []byte) (*big.Int, error) {
	if len(b) > 0 && b[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: negative integer field", jerrors.ErrMalformedSSHKey)
	}
	if len(b) > 1 && b[0] == 0x00 && b[1]&0x80 == 0 {
		return nil, fmt.Errorf("%w: integer field not minimally encoded", jerrors.ErrMalformedSSHKey)
	}
	return new(big.Int).SetBytes(b), nil
}
