package testing

import (
	"github.com/imamik/vmportal/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Tenancy:     "test-tenancy",
			Username:    "alice",
			Location:    "nbg1",
			HCloudToken: "test-token",
		},
	}
}

// WithTenancy sets the tenancy name.
func (b *ConfigBuilder) WithTenancy(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Tenancy = name
	return newBuilder
}

// WithUsername sets the user owning the SSH key.
func (b *ConfigBuilder) WithUsername(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Username = name
	return newBuilder
}

// WithLocation sets the datacenter location.
func (b *ConfigBuilder) WithLocation(location string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Location = location
	return newBuilder
}

// WithApps enables the web console.
func (b *ConfigBuilder) WithApps(proxyHost string, proxyPort int, scriptURL string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Apps = config.AppsConfig{
		Enabled:             true,
		ProxySSHDHost:       proxyHost,
		ProxySSHDPort:       proxyPort,
		PostDeployScriptURL: scriptURL,
	}
	return newBuilder
}

// WithKeyUpdates controls whether users may register SSH keys.
func (b *ConfigBuilder) WithKeyUpdates(allowed bool) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.SSH.CanUpdate = &allowed
	return newBuilder
}

// WithPrivateKeyPath sets where generated keys are written.
func (b *ConfigBuilder) WithPrivateKeyPath(path string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.SSH.PrivateKeyPath = path
	return newBuilder
}

// WithToken sets the API token.
func (b *ConfigBuilder) WithToken(token string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.HCloudToken = token
	return newBuilder
}

// Build returns the configuration with defaults applied.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	cfg.ApplyDefaults()
	return &cfg
}

// clone creates a deep copy of the builder.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	if b.cfg.SSH.AllowedKeyTypes != nil {
		cfg.SSH.AllowedKeyTypes = append([]string(nil), b.cfg.SSH.AllowedKeyTypes...)
	}
	if b.cfg.SSH.CanUpdate != nil {
		v := *b.cfg.SSH.CanUpdate
		cfg.SSH.CanUpdate = &v
	}
	return &ConfigBuilder{cfg: cfg}
}
