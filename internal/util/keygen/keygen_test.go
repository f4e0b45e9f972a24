package keygen

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestGenerateRSAKeyPair_RejectsSmallKeys(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		bits int
	}{
		{"zero bits", 0},
		{"negative bits", -1},
		{"1024 bits", 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := GenerateRSAKeyPair(tt.bits)
			if !errors.Is(err, ErrKeyTooSmall) {
				t.Errorf("GenerateRSAKeyPair(%d) error = %v, want %v", tt.bits, err, ErrKeyTooSmall)
			}
		})
	}
}

func TestGenerateRSAKeyPair_Formats(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	block, _ := pem.Decode(keyPair.PrivateKey)
	if block == nil {
		t.Fatal("failed to decode private key PEM")
	}
	if block.Type != "RSA PRIVATE KEY" {
		t.Errorf("expected PEM type 'RSA PRIVATE KEY', got %q", block.Type)
	}
	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		t.Fatalf("failed to parse private key: %v", err)
	}

	if !strings.HasPrefix(keyPair.AuthorizedKey(), "ssh-rsa ") {
		t.Errorf("public key should start with 'ssh-rsa ', got %q", keyPair.AuthorizedKey())
	}
	parsed, _, _, _, err := ssh.ParseAuthorizedKey(keyPair.PublicKey)
	if err != nil {
		t.Fatalf("failed to parse public key: %v", err)
	}

	expected, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("failed to derive public key: %v", err)
	}
	if !bytes.Equal(parsed.Marshal(), expected.Marshal()) {
		t.Error("public key does not correspond to private key")
	}
}

func TestKeyPair_Save(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ssh", "vmportal_rsa")
	if err := keyPair.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("private key not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("private key mode = %v, want 0600", info.Mode().Perm())
	}

	pub, err := os.ReadFile(path + ".pub")
	if err != nil {
		t.Fatalf("public key not written: %v", err)
	}
	if !bytes.Equal(pub, keyPair.PublicKey) {
		t.Error("public key file does not match key pair")
	}

	if err := keyPair.Save(path); !errors.Is(err, ErrKeyExists) {
		t.Errorf("second Save error = %v, want %v", err, ErrKeyExists)
	}
}

func TestKeyPair_SaveExistingPublicKeyLeavesNoPrivateKey(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "vmportal_rsa")
	if err := os.WriteFile(path+".pub", []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := keyPair.Save(path); !errors.Is(err, ErrKeyExists) {
		t.Fatalf("Save error = %v, want %v", err, ErrKeyExists)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("private key must not be left behind, stat error = %v", err)
	}
	pub, err := os.ReadFile(path + ".pub")
	if err != nil || string(pub) != "existing" {
		t.Errorf("existing public key changed: %q, %v", pub, err)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "vmportal_rsa")
	if err := keyPair.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	for _, p := range []string{path, path + ".pub"} {
		if _, err := os.Stat(p); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s still exists after Remove", p)
		}
	}

	if err := Remove(path); err != nil {
		t.Errorf("Remove of a missing pair = %v, want nil", err)
	}
	if err := keyPair.Save(path); err != nil {
		t.Errorf("Save after Remove failed: %v", err)
	}
}
