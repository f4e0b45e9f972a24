package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// MockClient is a mock implementation of Client. Unset funcs return
// empty, successful results.
type MockClient struct {
	ListImagesFunc      func(ctx context.Context) ([]*hcloud.Image, error)
	ListServerTypesFunc func(ctx context.Context) ([]*hcloud.ServerType, error)

	GetSSHKeyFunc    func(ctx context.Context, name string) (*hcloud.SSHKey, error)
	CreateSSHKeyFunc func(ctx context.Context, name, publicKey string, labels map[string]string) (string, error)
	DeleteSSHKeyFunc func(ctx context.Context, name string) error

	CreateServerFunc func(ctx context.Context, opts ServerCreateOpts) (string, error)
}

// Ensure interface compliance
var _ Client = (*MockClient)(nil)

// ListImages mocks image listing.
func (m *MockClient) ListImages(ctx context.Context) ([]*hcloud.Image, error) {
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx)
	}
	return nil, nil
}

// ListServerTypes mocks server type listing.
func (m *MockClient) ListServerTypes(ctx context.Context) ([]*hcloud.ServerType, error) {
	if m.ListServerTypesFunc != nil {
		return m.ListServerTypesFunc(ctx)
	}
	return nil, nil
}

// GetSSHKey mocks SSH key lookup.
func (m *MockClient) GetSSHKey(ctx context.Context, name string) (*hcloud.SSHKey, error) {
	if m.GetSSHKeyFunc != nil {
		return m.GetSSHKeyFunc(ctx, name)
	}
	return nil, nil
}

// CreateSSHKey mocks SSH key creation.
func (m *MockClient) CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (string, error) {
	if m.CreateSSHKeyFunc != nil {
		return m.CreateSSHKeyFunc(ctx, name, publicKey, labels)
	}
	return "mock-key-id", nil
}

// DeleteSSHKey mocks SSH key deletion.
func (m *MockClient) DeleteSSHKey(ctx context.Context, name string) error {
	if m.DeleteSSHKeyFunc != nil {
		return m.DeleteSSHKeyFunc(ctx, name)
	}
	return nil
}

// CreateServer mocks server creation.
func (m *MockClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (string, error) {
	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, opts)
	}
	return "mock-id", nil
}
