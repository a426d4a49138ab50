// Package keyfmt converts key pairs to and from their on-disk encodings:
// PKCS#1 DER structures wrapped in PEM, and the SSH public key line format.
// Both directions are byte-exact, so a parsed key re-encodes to identical
// output, which is how the toolkit cross-validates itself against openssl
// and ssh-keygen.
package keyfmt

import (
	"fmt"
	"math/big"

	"github.com/PolarWolf314/joesrsa/internal/der"
	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
)

// MarshalPKCS1PrivateKey encodes the key pair as a PKCS#1 RSAPrivateKey
// structure: a SEQUENCE of version 0 followed by n, e, d, p, q, dp, dq and
// qinv, in that fixed order.
func MarshalPKCS1PrivateKey(kp *keypair.KeyPair) []byte {
	return der.Marshal(der.Sequence(
		der.Integer(big.NewInt(0)),
		der.Integer(kp.N),
		der.Integer(kp.E),
		der.Integer(kp.D),
		der.Integer(kp.P),
		der.Integer(kp.Q),
		der.Integer(kp.Dp),
		der.Integer(kp.Dq),
		der.Integer(kp.Qinv),
	))
}

// ParsePKCS1PrivateKey decodes a PKCS#1 RSAPrivateKey structure. Version
// fields other than 0 (the multiprime variant) fail with
// ErrUnsupportedVersion.
func ParsePKCS1PrivateKey(data []byte) (*keypair.KeyPair, error) {
	node, err := der.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if node.Tag != der.TagSequence {
		return nil, fmt.Errorf("%w: private key must be a SEQUENCE, found tag 0x%02x", jerrors.ErrMalformedDER, node.Tag)
	}
	if len(node.Children) != 9 {
		return nil, fmt.Errorf("%w: private key needs 9 fields, found %d", jerrors.ErrMalformedDER, len(node.Children))
	}

	version, err := node.Children[0].Int()
	if err != nil {
		return nil, err
	}
	if version.Sign() != 0 {
		return nil, fmt.Errorf("%w: private key version %v", jerrors.ErrUnsupportedVersion, version)
	}

	fields := make([]*big.Int, 8)
	for i := range fields {
		v, err := node.Children[i+1].Int()
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	return &keypair.KeyPair{
		N:    fields[0],
		E:    fields[1],
		D:    fields[2],
		P:    fields[3],
		Q:    fields[4],
		Dp:   fields[5],
		Dq:   fields[6],
		Qinv: fields[7],
	}, nil
}

// MarshalPKCS1PublicKey encodes the public key as a PKCS#1 RSAPublicKey
// structure: a SEQUENCE of n and e.
func MarshalPKCS1PublicKey(pub *keypair.PublicKey) []byte {
	return der.Marshal(der.Sequence(
		der.Integer(pub.N),
		der.Integer(pub.E),
	))
}

// ParsePKCS1PublicKey decodes a PKCS#1 RSAPublicKey structure.
func ParsePKCS1PublicKey(data []byte) (*keypair.PublicKey, error) {
	node, err := der.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if node.Tag != der.TagSequence {
		return nil, fmt.Errorf("%w: public key must be a SEQUENCE, found tag 0x%02x", jerrors.ErrMalformedDER, node.Tag)
	}
	if len(node.Children) != 2 {
		return nil, fmt.Errorf("%w: public key needs 2 fields, found %d", jerrors.ErrMalformedDER, len(node.Children))
	}

	n, err := node.Children[0].Int()
	if err != nil {
		return nil, err
	}
	e, err := node.Children[1].Int()
	if err != nil {
		return nil, err
	}
	return &keypair.PublicKey{N: n, E: e}, nil
}
