package hcloud

import (
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/vmportal/internal/config"
)

// compile-time interface check
var _ Client = (*RealClient)(nil)

// RealClient implements Client using the Hetzner Cloud API.
type RealClient struct {
	client   *hcloud.Client
	timeouts *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *RealClient) {
		c.client = hc
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = hcloud.NewClient(
			hcloud.WithToken(token),
			hcloud.WithApplication("vmportal", ""),
		)
	}
	return c
}

// HCloudClient returns the underlying hcloud.Client.
func (c *RealClient) HCloudClient() *hcloud.Client {
	return c.client
}
