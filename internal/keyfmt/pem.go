package keyfmt

import (
	"encoding/pem"
	"fmt"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
)

// PEM block types, matching what openssl and ssh-keygen -m PEM emit.
const (
	PEMTypePrivate = "RSA PRIVATE KEY"
	PEMTypePublic  = "RSA PUBLIC KEY"
)

// EncodePrivatePEM wraps the PKCS#1 private key encoding in a PEM block.
func EncodePrivatePEM(kp *keypair.KeyPair) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  PEMTypePrivate,
		Bytes: MarshalPKCS1PrivateKey(kp),
	})
}

// DecodePrivatePEM parses a PEM-armored PKCS#1 private key.
func DecodePrivatePEM(data []byte) (*keypair.KeyPair, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", jerrors.ErrMalformedPEM)
	}
	if block.Type != PEMTypePrivate {
		return nil, fmt.Errorf("%w: expected %q, found %q", jerrors.ErrMalformedPEM, PEMTypePrivate, block.Type)
	}
	return ParsePKCS1PrivateKey(block.Bytes)
}

// EncodePublicPEM wraps the PKCS#1 public key encoding in a PEM block.
func EncodePublicPEM(pub *keypair.PublicKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  PEMTypePublic,
		Bytes: MarshalPKCS1PublicKey(pub),
	})
}

// DecodePublicPEM parses a PEM-armored PKCS#1 public key.
func DecodePublicPEM(data []byte) (*keypair.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", jerrors.ErrMalformedPEM)
	}
	if block.Type != PEMTypePublic {
		return nil, fmt.Errorf("%w: expected %q, found %q", jerrors.ErrMalformedPEM, PEMTypePublic, block.Type)
	}
	return ParsePKCS1PublicKey(block.Bytes)
}
