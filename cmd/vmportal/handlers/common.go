package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/vmportal/internal/config"
	"github.com/imamik/vmportal/internal/logging"
	hcloud_internal "github.com/imamik/vmportal/internal/platform/hcloud"
	"github.com/imamik/vmportal/internal/portal"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// resolveConfigPath turns an empty --config into the nearest vmportal.yaml.
	resolveConfigPath = config.Resolve

	// loadConfigFile loads and validates the config at path.
	loadConfigFile = config.Load

	// newClient creates the Hetzner Cloud client for a tenancy.
	newClient = func(cfg *config.Config) hcloud_internal.Client {
		return hcloud_internal.NewRealClient(cfg.HCloudToken, hcloud_internal.WithTimeouts(config.LoadTimeouts()))
	}

	// isInteractiveTTY reports whether the user can answer prompts.
	isInteractiveTTY = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	// logOutput receives the log lines of non-interactive commands.
	logOutput io.Writer = os.Stderr
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadConfig resolves and loads the tenancy configuration.
// If configPath is empty, it looks for vmportal.yaml in the current
// directory and its parents, and falls back to defaults.
func loadConfig(configPath string) (*config.Config, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		if path == "" {
			return nil, fmt.Errorf("%w\nRun 'vmportal init' to create a config file", err)
		}
		return nil, err
	}
	return cfg, nil
}

// newPortalService loads the config and wires a portal service over the
// tenancy's client.
func newPortalService(configPath string) (*config.Config, *portal.Service, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, portal.NewService(cfg, newClient(cfg)), nil
}

// withCLILogger attaches the stderr logger used by non-interactive commands.
func withCLILogger(ctx context.Context, cfg *config.Config) context.Context {
	return logging.IntoContext(ctx, logging.New(logOutput, cfg.Log.Verbosity))
}
