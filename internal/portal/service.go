package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/imamik/vmportal/internal/config"
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/machine"
	"github.com/imamik/vmportal/internal/metrics"
	hcloud_internal "github.com/imamik/vmportal/internal/platform/hcloud"
	"github.com/imamik/vmportal/internal/util/labels"
)

// compile-time interface check
var _ gate.KeyUpdater = (*Service)(nil)

// Service serves one tenancy.
type Service struct {
	cfg    *config.Config
	client hcloud_internal.Client
	keys   *KeyStore

	newRequestID func() string
}

// NewService returns a service for cfg backed by client.
func NewService(cfg *config.Config, client hcloud_internal.Client) *Service {
	return &Service{
		cfg:          cfg,
		client:       client,
		keys:         NewKeyStore(client, cfg.Tenancy, cfg.Username, cfg.KeyUpdatesAllowed()),
		newRequestID: uuid.NewString,
	}
}

// Capabilities returns the tenancy's feature flags.
func (s *Service) Capabilities() machine.Capabilities {
	return s.cfg.Capabilities()
}

// Keys returns the user's key store.
func (s *Service) Keys() *KeyStore { return s.keys }

// KeyState loads the SSH key state for the gate. A missing key yields an
// empty PublicKey and no error.
func (s *Service) KeyState(ctx context.Context) (gate.KeyState, error) {
	state, err := s.keys.keyState(ctx, s.cfg.SSH.AllowedKeyTypes, s.cfg.SSH.RSAMinBits)
	if err != nil {
		return state, fmt.Errorf("failed to load ssh key: %w", err)
	}
	return state, nil
}

// UpdateKey registers publicKey as the user's SSH key.
func (s *Service) UpdateKey(ctx context.Context, publicKey string) (string, error) {
	return s.keys.UpdateKey(ctx, publicKey)
}

// CreateMachine creates a server for p and returns its id. The user's SSH
// key is injected. A web console request also installs the console
// through the post-deploy script.
func (s *Service) CreateMachine(ctx context.Context, p machine.Payload) (string, error) {
	caps := s.Capabilities()
	if (p.WebConsoleEnabled || p.DesktopEnabled) && !caps.SupportsApps {
		return "", ErrWebConsoleUnavailable
	}

	requestID := s.newRequestID()
	log := logr.FromContextOrDiscard(ctx).WithValues("request_id", requestID, "machine", p.Name)
	ctx = logr.NewContext(ctx, log)

	lb := labels.NewLabelBuilder(s.cfg.Tenancy).
		WithUser(s.cfg.Username).
		WithRequestID(requestID)
	var userData string
	if p.WebConsoleEnabled {
		lb.WithWebConsole(p.DesktopEnabled).
			WithProxy(s.cfg.Apps.ProxySSHDHost, s.cfg.Apps.ProxySSHDPort)
		userData = postDeployScript(s.cfg.Apps.PostDeployScriptURL)
	}

	opts := hcloud_internal.ServerCreateOpts{
		Name:       p.Name,
		ImageID:    p.ImageID,
		ServerType: p.SizeID,
		Location:   s.cfg.Location,
		SSHKeys:    []string{s.keys.Name()},
		Labels:     lb.Build(),
		UserData:   userData,
	}

	log.Info("creating machine", "image", p.ImageID, "size", p.SizeID, "web_console", p.WebConsoleEnabled, "desktop", p.DesktopEnabled)
	start := time.Now()
	id, err := s.client.CreateServer(ctx, opts)
	metrics.RecordMachineCreate(time.Since(start), err)
	if err != nil {
		log.Error(err, "machine creation failed")
		return "", fmt.Errorf("failed to create machine %s: %w", p.Name, err)
	}
	log.Info("machine created", "id", id)
	return id, nil
}

// postDeployScript returns cloud-init user data that installs the web
// console from url.
func postDeployScript(url string) string {
	return "#!/usr/bin/env bash\n" +
		"set -eo pipefail\n" +
		fmt.Sprintf("curl -fsSL %s | bash -s guacamole\n", url)
}
