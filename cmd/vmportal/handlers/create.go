package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/vmportal/internal/catalog"
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/machine"
	"github.com/imamik/vmportal/internal/portal"
	"github.com/imamik/vmportal/internal/util/async"
	"github.com/imamik/vmportal/internal/workflow"
)

var (
	errNoSSHKey            = errors.New("no SSH key is registered for your account; run 'vmportal ssh-key set <file>' or 'vmportal ssh-key generate'")
	errDesktopNeedsConsole = errors.New("--desktop requires --web-console")
)

// CreateOptions are the machine fields given on the command line.
type CreateOptions struct {
	Name       string
	ImageID    string
	SizeID     string
	WebConsole bool
	Desktop    bool
	JSON       bool
}

// Create requests one machine without the TUI.
//
// It runs the same workflow as the portal: catalogs and the key state are
// loaded in parallel, the SSH key gate is consulted, and the request is
// validated and dispatched by the submission protocol. Unlike the portal
// this caller waits for the create action and reports its result.
func Create(ctx context.Context, configPath string, opts CreateOptions) error {
	cfg, svc, err := newPortalService(configPath)
	if err != nil {
		return err
	}
	ctx = withCLILogger(ctx, cfg)

	images, sizes, key, err := loadWorkflowInputs(ctx, svc)
	if err != nil {
		return err
	}

	var (
		id        string
		createErr error
	)
	ctrl := workflow.NewController(svc.Capabilities(), workflow.Callbacks{
		Create: func(p machine.Payload) {
			id, createErr = svc.CreateMachine(ctx, p)
		},
	})

	ctrl.Open(workflow.Signals{}, key)
	if ctrl.KeySetupVisible() {
		if err := resolveMissingKey(ctx, svc, ctrl, key, cfg.SSH.PrivateKeyPath); err != nil {
			return err
		}
		if key, err = svc.KeyState(ctx); err != nil {
			return err
		}
		ctrl.Open(workflow.Signals{}, key)
	}

	form := ctrl.Form()
	if form == nil {
		ctrl.Close()
		return errNoSSHKey
	}
	if opts.WebConsole && !form.Visibility().WebConsole {
		ctrl.Close()
		return portal.ErrWebConsoleUnavailable
	}
	if opts.Desktop && !opts.WebConsole {
		ctrl.Close()
		return errDesktopNeedsConsole
	}

	form.SetName(opts.Name)
	form.SetImage(opts.ImageID)
	form.SetSize(opts.SizeID)
	form.SetWebConsoleEnabled(opts.WebConsole)
	form.SetDesktopEnabled(opts.Desktop)

	if !ctrl.Submit(workflow.NoEvent, images, sizes) {
		err := form.Validate(images, sizes)
		ctrl.Close()
		return fmt.Errorf("invalid machine request: %w", err)
	}
	if createErr != nil {
		return createErr
	}
	return printCreated(opts.Name, id, opts.JSON)
}

// loadWorkflowInputs fetches both catalogs and the key state concurrently.
func loadWorkflowInputs(ctx context.Context, svc *portal.Service) (*catalog.Catalog, *catalog.Catalog, gate.KeyState, error) {
	images := catalog.New(catalog.KindImages)
	sizes := catalog.New(catalog.KindSizes)
	var key gate.KeyState

	tasks := []async.Task{
		{Name: string(catalog.KindImages), Func: func(ctx context.Context) error {
			return images.Load(ctx, svc.ImagesFetcher())
		}},
		{Name: string(catalog.KindSizes), Func: func(ctx context.Context) error {
			return sizes.Load(ctx, svc.SizesFetcher())
		}},
		{Name: "ssh key", Func: func(ctx context.Context) error {
			var err error
			key, err = svc.KeyState(ctx)
			return err
		}},
	}
	if err := async.RunParallel(ctx, tasks, true); err != nil {
		return nil, nil, gate.KeyState{}, err
	}
	return images, sizes, key, nil
}

// resolveMissingKey ends the key-setup step of the gate. In a terminal, and
// when the tenancy allows it, the user is asked for a key; otherwise the
// request fails with errNoSSHKey.
func resolveMissingKey(ctx context.Context, svc *portal.Service, ctrl *workflow.Controller, key gate.KeyState, defaultPath string) error {
	if !key.CanUpdate || !isInteractiveTTY() {
		ctrl.ResolveKeySetup(gate.KeySetupCancelled)
		return errNoSSHKey
	}

	res, err := promptKeySetup(ctx, svc, key, defaultPath)
	if err != nil {
		ctrl.ResolveKeySetup(gate.KeySetupCancelled)
		return err
	}
	ctrl.ResolveKeySetup(gate.KeySetupSucceeded)
	printKeyRegistered(svc.Keys().Name(), res)
	return nil
}
