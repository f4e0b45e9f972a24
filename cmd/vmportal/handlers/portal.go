package handlers

import (
	"context"
	"errors"

	"github.com/imamik/vmportal/internal/logging"
	"github.com/imamik/vmportal/internal/metrics"
	"github.com/imamik/vmportal/internal/ui/tui"
)

var errNotInteractive = errors.New("the portal needs an interactive terminal; use 'vmportal create' for scripted requests")

// Factory function variables for the portal - can be replaced in tests.
var (
	// runTUI runs the interactive portal until the user quits.
	runTUI = tui.Run

	// serveMetrics serves /metrics until ctx is done.
	serveMetrics = metrics.Serve

	// openLogFile opens the portal's log file.
	openLogFile = logging.OpenFile
)

// Portal runs the interactive portal for the configured tenancy.
//
// The TUI owns the terminal, so logs go to the configured log file (or
// nowhere). When metrics.listen_address is set, Prometheus metrics are
// served for the lifetime of the session.
func Portal(ctx context.Context, configPath string) error {
	if !isInteractiveTTY() {
		return errNotInteractive
	}

	cfg, svc, err := newPortalService(configPath)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log := logging.New(logFile, cfg.Log.Verbosity)
	ctx, cancel := context.WithCancel(logging.IntoContext(ctx, log))
	defer cancel()

	if addr := cfg.Metrics.ListenAddress; addr != "" {
		go func() {
			if err := serveMetrics(ctx, addr); err != nil {
				log.Error(err, "metrics listener stopped", "address", addr)
			}
		}()
	}

	log.Info("starting portal", "tenancy", cfg.Tenancy, "user", cfg.Username, "supports_apps", svc.Capabilities().SupportsApps)
	return runTUI(ctx, svc, tui.Options{
		Tenancy:        cfg.Tenancy,
		Username:       cfg.Username,
		PrivateKeyPath: cfg.SSH.PrivateKeyPath,
	})
}
