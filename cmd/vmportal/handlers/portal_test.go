package handlers

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vmportal/internal/config"
	"github.com/imamik/vmportal/internal/portal"
	testutil "github.com/imamik/vmportal/internal/testing"
	"github.com/imamik/vmportal/internal/ui/tui"
)

func TestPortal_RequiresTerminal(t *testing.T) {
	useTenancy(t, testutil.NewConfigBuilder().Build(), testutil.NewPortalFixture().Ready())
	runTUI = func(context.Context, tui.Backend, tui.Options) error {
		t.Fatal("TUI must not start without a terminal")
		return nil
	}

	err := Portal(context.Background(), "")
	require.ErrorIs(t, err, errNotInteractive)
}

func TestPortal_RunsTUI(t *testing.T) {
	cfg := testutil.NewConfigBuilder().WithTenancy("acme").Build()
	useTenancy(t, cfg, testutil.NewPortalFixture().Ready())
	isInteractiveTTY = func() bool { return true }

	var (
		gotBackend tui.Backend
		gotOpts    tui.Options
	)
	runTUI = func(_ context.Context, backend tui.Backend, opts tui.Options) error {
		gotBackend = backend
		gotOpts = opts
		return nil
	}
	serveMetrics = func(context.Context, string) error {
		t.Fatal("metrics listener must not start without an address")
		return nil
	}

	require.NoError(t, Portal(context.Background(), ""))
	assert.IsType(t, &portal.Service{}, gotBackend)
	assert.Equal(t, tui.Options{Tenancy: "acme", Username: "alice", PrivateKeyPath: "~/.ssh/vmportal_rsa"}, gotOpts)
}

func TestPortal_ServesMetrics(t *testing.T) {
	cfg := testutil.NewConfigBuilder().Build()
	cfg.Metrics.ListenAddress = "127.0.0.1:9464"
	useTenancy(t, cfg, testutil.NewPortalFixture().Ready())
	isInteractiveTTY = func() bool { return true }

	started := make(chan string, 1)
	stopped := make(chan struct{})
	serveMetrics = func(ctx context.Context, addr string) error {
		started <- addr
		<-ctx.Done()
		close(stopped)
		return nil
	}
	runTUI = func(context.Context, tui.Backend, tui.Options) error {
		assert.Equal(t, "127.0.0.1:9464", <-started)
		return nil
	}

	require.NoError(t, Portal(context.Background(), ""))
	<-stopped
}

func TestPortal_LogsToConfiguredFile(t *testing.T) {
	cfg := testutil.NewConfigBuilder().Build()
	cfg.Log.File = "/var/log/vmportal.log"
	useTenancy(t, cfg, testutil.NewPortalFixture().Ready())
	isInteractiveTTY = func() bool { return true }

	var openedPath string
	openLogFile = func(path string) (io.WriteCloser, error) {
		openedPath = path
		return nopWriteCloser{io.Discard}, nil
	}
	runTUI = func(context.Context, tui.Backend, tui.Options) error { return nil }

	require.NoError(t, Portal(context.Background(), ""))
	assert.Equal(t, "/var/log/vmportal.log", openedPath)
}

func TestPortal_ConfigError(t *testing.T) {
	saveAndRestoreFactories(t)
	isInteractiveTTY = func() bool { return true }
	resolveConfigPath = func(path string) (string, error) { return path, nil }
	loadConfigFile = func(string) (*config.Config, error) { return nil, config.ErrTokenRequired }

	err := Portal(context.Background(), "vmportal.yaml")
	require.ErrorIs(t, err, config.ErrTokenRequired)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
