package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

// MinRSABits is the smallest RSA modulus GenerateRSAKeyPair accepts.
const MinRSABits = 2048

// Key generation errors.
var (
	ErrKeyTooSmall = fmt.Errorf("RSA keys must be at least %d bits", MinRSABits)
	ErrKeyExists   = errors.New("key file already exists")
)

// KeyPair holds an RSA key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the RSA private key in PEM-encoded PKCS#1 format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// AuthorizedKey returns the public key as a single trimmed line.
func (kp *KeyPair) AuthorizedKey() string {
	return strings.TrimSpace(string(kp.PublicKey))
}

// GenerateRSAKeyPair generates a new RSA key pair with the specified bit size.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	if bits < MinRSABits {
		return nil, fmt.Errorf("%w: got %d", ErrKeyTooSmall, bits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}
	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  ssh.MarshalAuthorizedKey(publicKey),
	}, nil
}

// Save writes the private key to path (mode 0600) and the public key to
// path + ".pub". Existing files are never overwritten, and a failed save
// leaves no new file behind.
func (kp *KeyPair) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := writeNew(path, kp.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := writeNew(path+".pub", kp.PublicKey, 0o644); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}

// Remove deletes the key pair at path written by Save. Missing files are
// not an error.
func Remove(path string) error {
	var errs []error
	for _, p := range []string{path, path + ".pub"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// writeNew creates path exclusively and writes data to it. A partial write
// removes the file again.
func writeNew(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrKeyExists, path)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
