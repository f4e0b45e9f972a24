package testing

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	hcloud_internal "github.com/imamik/vmportal/internal/platform/hcloud"
)

// SamplePublicKey is a syntactically valid ed25519 public key.
const SamplePublicKey = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8g alice@example"

// SampleImages returns a small image catalog.
func SampleImages() []*hcloud.Image {
	return []*hcloud.Image{
		{ID: 42, Name: "debian-12", Description: "Debian 12", Type: hcloud.ImageTypeSystem, Architecture: hcloud.ArchitectureX86},
		{ID: 43, Name: "ubuntu-24.04", Description: "Ubuntu 24.04", Type: hcloud.ImageTypeSystem, Architecture: hcloud.ArchitectureX86},
	}
}

// SampleServerTypes returns a small size catalog.
func SampleServerTypes() []*hcloud.ServerType {
	return []*hcloud.ServerType{
		{ID: 2, Name: "cx22", Cores: 2, Memory: 4, Disk: 40, Architecture: hcloud.ArchitectureX86},
		{ID: 3, Name: "cx32", Cores: 4, Memory: 8, Disk: 80, Architecture: hcloud.ArchitectureX86},
	}
}

// PortalFixture provides a pre-configured mock client for common test scenarios.
type PortalFixture struct {
	mock *hcloud_internal.MockClient
}

// NewPortalFixture creates a new fixture with sample catalogs and no SSH key.
func NewPortalFixture() *PortalFixture {
	f := &PortalFixture{mock: &hcloud_internal.MockClient{}}
	f.mock.ListImagesFunc = func(context.Context) ([]*hcloud.Image, error) {
		return SampleImages(), nil
	}
	f.mock.ListServerTypesFunc = func(context.Context) ([]*hcloud.ServerType, error) {
		return SampleServerTypes(), nil
	}
	return f
}

// Mock returns the underlying MockClient for custom configuration.
func (f *PortalFixture) Mock() *hcloud_internal.MockClient {
	return f.mock
}

// WithKey registers publicKey for every user.
func (f *PortalFixture) WithKey(publicKey string) *PortalFixture {
	f.mock.GetSSHKeyFunc = func(_ context.Context, name string) (*hcloud.SSHKey, error) {
		return &hcloud.SSHKey{ID: 7, Name: name, PublicKey: publicKey}, nil
	}
	return f
}

// WithCatalogError makes both catalog fetches fail with err.
func (f *PortalFixture) WithCatalogError(err error) *PortalFixture {
	f.mock.ListImagesFunc = func(context.Context) ([]*hcloud.Image, error) { return nil, err }
	f.mock.ListServerTypesFunc = func(context.Context) ([]*hcloud.ServerType, error) { return nil, err }
	return f
}

// WithCreateError makes server creation fail with err.
func (f *PortalFixture) WithCreateError(err error) *PortalFixture {
	f.mock.CreateServerFunc = func(context.Context, hcloud_internal.ServerCreateOpts) (string, error) {
		return "", err
	}
	return f
}

// Ready returns the configured mock.
func (f *PortalFixture) Ready() *hcloud_internal.MockClient {
	return f.mock
}
