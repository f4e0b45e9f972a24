package gate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/imamik/vmportal/internal/util/keygen"
)

// Method selects how a key is provided during setup.
type Method int

const (
	// MethodPaste registers a public key the user already has.
	MethodPaste Method = iota
	// MethodGenerate creates a new RSA key pair locally.
	MethodGenerate
)

// String returns the method name used in forms and logs.
func (m Method) String() string {
	if m == MethodGenerate {
		return "generate"
	}
	return "paste"
}

// SetupRequest is the user's choice in the key-setup sub-dialog.
type SetupRequest struct {
	Method Method
	// PublicKey is the pasted key for MethodPaste.
	PublicKey string
	// PrivateKeyPath is where MethodGenerate writes the private key.
	PrivateKeyPath string
}

// SetupResult describes the key that was registered.
type SetupResult struct {
	KeyID          string
	PublicKey      string
	PrivateKeyPath string
}

// KeyUpdater registers a public key for the current user and returns the
// id it was stored under.
type KeyUpdater interface {
	UpdateKey(ctx context.Context, publicKey string) (string, error)
}

// generateKeyPair is swapped in tests.
var generateKeyPair = keygen.GenerateRSAKeyPair

// RunSetup registers a key according to req. Generated private keys are
// written before anything is uploaded and are never overwritten. When the
// upload fails the generated pair is removed so the same path can be
// retried.
func RunSetup(ctx context.Context, updater KeyUpdater, key KeyState, req SetupRequest) (*SetupResult, error) {
	if !key.CanUpdate {
		return nil, ErrKeyUpdateUnsupported
	}

	var (
		publicKey string
		keyPath   string
	)
	switch req.Method {
	case MethodPaste:
		publicKey = strings.TrimSpace(req.PublicKey)
		if err := ValidatePublicKey(publicKey, key.AllowedKeyTypes, key.RSAMinBits); err != nil {
			return nil, err
		}
	case MethodGenerate:
		if len(key.AllowedKeyTypes) > 0 && !slices.Contains(key.AllowedKeyTypes, ssh.KeyAlgoRSA) {
			return nil, fmt.Errorf("%w: %s", ErrKeyTypeNotAllowed, ssh.KeyAlgoRSA)
		}
		if req.PrivateKeyPath == "" {
			return nil, fmt.Errorf("private key path is required to generate a key")
		}
		kp, err := generateKeyPair(max(key.RSAMinBits, keygen.MinRSABits))
		if err != nil {
			return nil, err
		}
		if err := kp.Save(req.PrivateKeyPath); err != nil {
			return nil, fmt.Errorf("failed to save generated key: %w", err)
		}
		publicKey = kp.AuthorizedKey()
		keyPath = req.PrivateKeyPath
	default:
		return nil, fmt.Errorf("unknown key setup method %d", req.Method)
	}

	id, err := updater.UpdateKey(ctx, publicKey)
	if err != nil {
		err = fmt.Errorf("failed to register SSH key: %w", err)
		if keyPath != "" {
			if rmErr := keygen.Remove(keyPath); rmErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to remove generated key: %w", rmErr))
			}
		}
		return nil, err
	}
	return &SetupResult{KeyID: id, PublicKey: publicKey, PrivateKeyPath: keyPath}, nil
}
