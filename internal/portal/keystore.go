package portal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-logr/logr"

	"github.com/imamik/vmportal/internal/gate"
	hcloud_internal "github.com/imamik/vmportal/internal/platform/hcloud"
	"github.com/imamik/vmportal/internal/util/labels"
)

var invalidKeyNameChars = regexp.MustCompile(`[^a-z0-9._-]`)

// KeyName derives the SSH key name for a user.
func KeyName(username string) string {
	name := invalidKeyNameChars.ReplaceAllString(strings.ToLower(username), "-")
	if name == "" {
		return "vmportal"
	}
	return name
}

// KeyStore keeps one SSH key per user in the tenancy.
type KeyStore struct {
	client    hcloud_internal.SSHKeyManager
	name      string
	labels    map[string]string
	canUpdate bool
}

// compile-time interface check
var _ gate.KeyUpdater = (*KeyStore)(nil)

// NewKeyStore returns a key store for username.
func NewKeyStore(client hcloud_internal.SSHKeyManager, tenancy, username string, canUpdate bool) *KeyStore {
	return &KeyStore{
		client:    client,
		name:      KeyName(username),
		labels:    labels.NewLabelBuilder(tenancy).WithUser(username).Build(),
		canUpdate: canUpdate,
	}
}

// Name returns the key name in the tenancy.
func (s *KeyStore) Name() string { return s.name }

// SupportsKeyUpdate reports whether users may register keys themselves.
func (s *KeyStore) SupportsKeyUpdate() bool { return s.canUpdate }

// Get returns the user's public key, or ErrKeyNotFound.
func (s *KeyStore) Get(ctx context.Context) (string, error) {
	key, err := s.client.GetSSHKey(ctx, s.name)
	if err != nil {
		return "", err
	}
	if key == nil {
		return "", ErrKeyNotFound
	}
	return key.PublicKey, nil
}

// UpdateKey replaces the user's key with publicKey and returns the new
// key id. Hetzner keys are immutable, so the old key is deleted first.
func (s *KeyStore) UpdateKey(ctx context.Context, publicKey string) (string, error) {
	if !s.canUpdate {
		return "", gate.ErrKeyUpdateUnsupported
	}
	log := logr.FromContextOrDiscard(ctx).WithValues("key", s.name)

	if err := s.client.DeleteSSHKey(ctx, s.name); err != nil {
		return "", fmt.Errorf("failed to remove previous key: %w", err)
	}
	id, err := s.client.CreateSSHKey(ctx, s.name, strings.TrimSpace(publicKey), s.labels)
	if err != nil {
		if hcloud_internal.IsUniquenessError(err) {
			return "", fmt.Errorf("%w: %w", ErrKeyInUse, err)
		}
		return "", err
	}
	log.Info("ssh key registered", "id", id)
	return id, nil
}

// keyState loads the key state the gate reads. A missing key is not an
// error.
func (s *KeyStore) keyState(ctx context.Context, allowedTypes []string, rsaMinBits int) (gate.KeyState, error) {
	state := gate.KeyState{
		CanUpdate:       s.canUpdate,
		AllowedKeyTypes: allowedTypes,
		RSAMinBits:      rsaMinBits,
	}
	key, err := s.Get(ctx)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		return state, nil
	case err != nil:
		return state, err
	}
	state.PublicKey = key
	return state, nil
}
