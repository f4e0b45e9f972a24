package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// GetSSHKey returns the SSH key with the given name, or nil if it does not exist.
func (c *RealClient) GetSSHKey(ctx context.Context, name string) (*hcloud.SSHKey, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Catalog)
	defer cancel()

	var key *hcloud.SSHKey
	err := c.withRetry(ctx, "get ssh key", func() error {
		var err error
		key, _, err = c.client.SSHKey.GetByName(ctx, name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ssh key %s: %w", name, err)
	}
	return key, nil
}

// CreateSSHKey creates a new SSH key and returns its id.
func (c *RealClient) CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Catalog)
	defer cancel()

	opts := hcloud.SSHKeyCreateOpts{
		Name:      name,
		PublicKey: publicKey,
		Labels:    labels,
	}

	var key *hcloud.SSHKey
	err := c.withRetry(ctx, "create ssh key", func() error {
		var err error
		key, _, err = c.client.SSHKey.Create(ctx, opts)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to create ssh key: %w", err)
	}
	return strconv.FormatInt(key.ID, 10), nil
}

// DeleteSSHKey deletes the SSH key with the given name.
func (c *RealClient) DeleteSSHKey(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.SSHKey]{
		Name:         name,
		ResourceType: "ssh key",
		Get:          c.client.SSHKey.Get,
		Delete:       c.client.SSHKey.Delete,
	}).Execute(ctx, c)
}
