package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ServerCreateOpts holds all parameters for creating a portal machine.
type ServerCreateOpts struct {
	Name string
	// ImageID is the numeric image id.
	ImageID string
	// ServerType is a server type name or numeric id.
	ServerType string
	// Location is optional; empty lets Hetzner choose.
	Location string
	// SSHKeys are key names or ids injected into the server.
	SSHKeys  []string
	Labels   map[string]string
	UserData string
}

// CatalogReader lists the resources machines are built from.
type CatalogReader interface {
	// ListImages returns every available, non-deprecated system, app and
	// snapshot image.
	ListImages(ctx context.Context) ([]*hcloud.Image, error)
	// ListServerTypes returns every server type.
	ListServerTypes(ctx context.Context) ([]*hcloud.ServerType, error)
}

// SSHKeyManager defines the interface for managing SSH keys.
type SSHKeyManager interface {
	// GetSSHKey returns the key with the given name, or nil if none exists.
	GetSSHKey(ctx context.Context, name string) (*hcloud.SSHKey, error)
	CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (string, error)
	DeleteSSHKey(ctx context.Context, name string) error
}

// ServerProvisioner creates servers.
type ServerProvisioner interface {
	// CreateServer creates a server and waits for its create action.
	// It returns the server id.
	CreateServer(ctx context.Context, opts ServerCreateOpts) (string, error)
}

// Client combines everything the portal uses.
type Client interface {
	CatalogReader
	SSHKeyManager
	ServerProvisioner
}
