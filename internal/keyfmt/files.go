package keyfmt

import (
	"bytes"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/keypair"
)

// Kind classifies key material read from disk.
type Kind int

const (
	KindUnknown Kind = iota
	KindPrivatePEM
	KindPublicPEM
	KindSSHPublic
)

func (k Kind) String() string {
	switch k {
	case KindPrivatePEM:
		return "PKCS#1 private key (PEM)"
	case KindPublicPEM:
		return "PKCS#1 public key (PEM)"
	case KindSSHPublic:
		return "SSH public key"
	default:
		return "unknown"
	}
}

// Classify reports which key encoding the raw file content carries.
func Classify(data []byte) Kind {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(SSHKeyType+" ")) {
		return KindSSHPublic
	}
	if block, _ := pem.Decode(data); block != nil {
		switch block.Type {
		case PEMTypePrivate:
			return KindPrivatePEM
		case PEMTypePublic:
			return KindPublicPEM
		}
	}
	return KindUnknown
}

// KeyFiles lists where the three encodings of a key pair were written.
type KeyFiles struct {
	PrivatePath   string
	PublicPEMPath string
	SSHPath       string
}

// WriteKeyFiles saves a key pair in its three on-disk forms: the private
// key PEM at basePath (mode 0600), the public key PEM at basePath+".pub.pem"
// and the SSH line at basePath+".pub" (both 0644). An existing private key
// is never overwritten unless force is set.
func WriteKeyFiles(kp *keypair.KeyPair, basePath, comment string, force bool) (*KeyFiles, error) {
	files := &KeyFiles{
		PrivatePath:   basePath,
		PublicPEMPath: basePath + ".pub.pem",
		SSHPath:       basePath + ".pub",
	}

	if !force {
		if _, err := os.Stat(files.PrivatePath); err == nil {
			return nil, fmt.Errorf("%w: %s", jerrors.ErrKeyFileExists, files.PrivatePath)
		}
	}

	dir := filepath.Dir(basePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory at %s: %w", dir, err)
	}

	if err := os.WriteFile(files.PrivatePath, EncodePrivatePEM(kp), 0600); err != nil {
		return nil, fmt.Errorf("failed to write private key to %s: %w", files.PrivatePath, err)
	}
	pub := kp.Public()
	// #nosec G306 -- Public keys are meant to be world-readable.
	if err := os.WriteFile(files.PublicPEMPath, EncodePublicPEM(pub), 0644); err != nil {
		return nil, fmt.Errorf("failed to write public key to %s: %w", files.PublicPEMPath, err)
	}
	// #nosec G306 -- Public keys are meant to be world-readable.
	if err := os.WriteFile(files.SSHPath, MarshalSSHPublicKey(pub, comment), 0644); err != nil {
		return nil, fmt.Errorf("failed to write SSH public key to %s: %w", files.SSHPath, err)
	}
	return files, nil
}

// LoadPrivateKey reads a PEM-armored PKCS#1 private key from disk.
func LoadPrivateKey(path string) (*keypair.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}
	kp, err := DecodePrivatePEM(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return kp, nil
}

// LoadPublicKey reads a public key from disk in any encoding this package
// knows: an SSH line, a public key PEM, or a private key PEM (in which case
// the public half is returned). The second return value is the SSH comment
// when one is present.
func LoadPublicKey(path string) (*keypair.PublicKey, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read public key file: %w", err)
	}

	switch Classify(data) {
	case KindSSHPublic:
		pub, comment, err := ParseSSHPublicKey(data)
		if err != nil {
			return nil, "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return pub, comment, nil
	case KindPublicPEM:
		pub, err := DecodePublicPEM(data)
		if err != nil {
			return nil, "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return pub, "", nil
	case KindPrivatePEM:
		kp, err := DecodePrivatePEM(data)
		if err != nil {
			return nil, "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return kp.Public(), "", nil
	default:
		return nil, "", fmt.Errorf("%w: %s is not a key file this tool understands", jerrors.ErrUnknownKeyType, path)
	}
}
