package handlers

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/imamik/vmportal/internal/config"
	hcloud_internal "github.com/imamik/vmportal/internal/platform/hcloud"
)

// saveAndRestoreFactories saves the current factory functions and restores
// them when the test ends.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origResolveConfigPath := resolveConfigPath
	origLoadConfigFile := loadConfigFile
	origNewClient := newClient
	origIsInteractiveTTY := isInteractiveTTY
	origLogOutput := logOutput
	origRunTUI := runTUI
	origServeMetrics := serveMetrics
	origOpenLogFile := openLogFile
	origReadFile := readFile
	origPromptKeySetup := promptKeySetup

	t.Cleanup(func() {
		resolveConfigPath = origResolveConfigPath
		loadConfigFile = origLoadConfigFile
		newClient = origNewClient
		isInteractiveTTY = origIsInteractiveTTY
		logOutput = origLogOutput
		runTUI = origRunTUI
		serveMetrics = origServeMetrics
		openLogFile = origOpenLogFile
		readFile = origReadFile
		promptKeySetup = origPromptKeySetup
	})
}

// useTenancy routes every handler to cfg and mock.
func useTenancy(t *testing.T, cfg *config.Config, mock *hcloud_internal.MockClient) {
	t.Helper()
	saveAndRestoreFactories(t)

	resolveConfigPath = func(path string) (string, error) { return path, nil }
	loadConfigFile = func(string) (*config.Config, error) { return cfg, nil }
	newClient = func(*config.Config) hcloud_internal.Client { return mock }
	isInteractiveTTY = func() bool { return false }
	logOutput = io.Discard
}

// captureOutput captures stdout during function execution.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}
