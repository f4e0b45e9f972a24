package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/vmportal/internal/config"
	"github.com/imamik/vmportal/internal/gate"
)

// Factory function variables for ssh-key - can be replaced in tests.
var (
	// readFile reads a public key file.
	readFile = os.ReadFile

	// promptKeySetup asks the user for a key and registers it.
	promptKeySetup = defaultPromptKeySetup
)

// SSHKeyShow prints the user's registered SSH key.
func SSHKeyShow(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, svc, err := newPortalService(configPath)
	if err != nil {
		return err
	}
	ctx = withCLILogger(ctx, cfg)

	key, err := svc.KeyState(ctx)
	if err != nil {
		return err
	}
	name := svc.Keys().Name()

	if jsonOutput {
		return printJSON(keyJSON{
			Name:       name,
			Registered: key.Present(),
			PublicKey:  key.PublicKey,
			CanUpdate:  key.CanUpdate,
		})
	}

	if !key.Present() {
		fmt.Printf("No SSH key is registered as %s.\n", name)
		if key.CanUpdate {
			fmt.Println("Run 'vmportal ssh-key set <file>' or 'vmportal ssh-key generate' to add one.")
		} else {
			fmt.Println("Ask an administrator of the tenancy to register your public key.")
		}
		return nil
	}

	fmt.Printf("SSH key %s:\n", name)
	fmt.Printf("  %s\n", key.PublicKey)
	return nil
}

// SSHKeySet registers the public key stored in file, replacing any
// existing key.
func SSHKeySet(ctx context.Context, configPath, file string) error {
	data, err := readFile(config.ExpandHome(file))
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	return runKeySetup(ctx, configPath, gate.SetupRequest{
		Method:    gate.MethodPaste,
		PublicKey: string(data),
	})
}

// SSHKeyGenerate creates a new RSA key pair, writes the private key to
// outPath (default ssh.private_key_path) and registers the public key.
// An existing private key file is never overwritten.
func SSHKeyGenerate(ctx context.Context, configPath, outPath string) error {
	return runKeySetup(ctx, configPath, gate.SetupRequest{
		Method:         gate.MethodGenerate,
		PrivateKeyPath: outPath,
	})
}

func runKeySetup(ctx context.Context, configPath string, req gate.SetupRequest) error {
	cfg, svc, err := newPortalService(configPath)
	if err != nil {
		return err
	}
	ctx = withCLILogger(ctx, cfg)

	if req.Method == gate.MethodGenerate {
		if req.PrivateKeyPath == "" {
			req.PrivateKeyPath = cfg.SSH.PrivateKeyPath
		}
		req.PrivateKeyPath = config.ExpandHome(req.PrivateKeyPath)
	}

	key, err := svc.KeyState(ctx)
	if err != nil {
		return err
	}
	res, err := gate.RunSetup(ctx, svc, key, req)
	if err != nil {
		return err
	}
	printKeyRegistered(svc.Keys().Name(), res)
	return nil
}

// defaultPromptKeySetup asks whether to paste or generate a key, then
// registers it.
func defaultPromptKeySetup(ctx context.Context, updater gate.KeyUpdater, key gate.KeyState, defaultPath string) (*gate.SetupResult, error) {
	req := gate.SetupRequest{PrivateKeyPath: defaultPath}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[gate.Method]().
				Title("SSH key required").
				Description("No SSH key is registered for your account. Machines are accessed with it.").
				Options(
					huh.NewOption("Paste an existing public key", gate.MethodPaste),
					huh.NewOption("Generate a new RSA key pair", gate.MethodGenerate),
				).
				Value(&req.Method),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Public key").
				Value(&req.PublicKey).
				Validate(func(s string) error {
					return gate.ValidatePublicKey(s, key.AllowedKeyTypes, key.RSAMinBits)
				}),
		).WithHideFunc(func() bool { return req.Method != gate.MethodPaste }),
		huh.NewGroup(
			huh.NewInput().
				Title("Private key path").
				Description("Existing files are never overwritten").
				Value(&req.PrivateKeyPath),
		).WithHideFunc(func() bool { return req.Method != gate.MethodGenerate }),
	).RunWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("key setup canceled: %w", err)
	}

	req.PrivateKeyPath = config.ExpandHome(strings.TrimSpace(req.PrivateKeyPath))
	return gate.RunSetup(ctx, updater, key, req)
}

func printKeyRegistered(name string, res *gate.SetupResult) {
	fmt.Printf("SSH key %s registered.\n", name)
	if res != nil && res.PrivateKeyPath != "" {
		fmt.Printf("  Private key: %s\n", res.PrivateKeyPath)
	}
}
