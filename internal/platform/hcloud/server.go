package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/vmportal/internal/util/retry"
)

// CreateServer creates a new server and waits for the create action.
func (c *RealClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (string, error) {
	if opts.Name == "" {
		return "", fmt.Errorf("server name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Create)
	defer cancel()

	createOpts, err := c.buildServerCreateOpts(ctx, opts)
	if err != nil {
		return "", err
	}

	result, err := c.createServerWithRetry(ctx, createOpts)
	if err != nil {
		return "", err
	}

	logr.FromContextOrDiscard(ctx).Info("server created",
		"name", result.Server.Name, "id", result.Server.ID,
		"type", createOpts.ServerType.Name, "image", createOpts.Image.ID)
	return strconv.FormatInt(result.Server.ID, 10), nil
}

// buildServerCreateOpts resolves all dependencies and builds server creation options.
func (c *RealClient) buildServerCreateOpts(ctx context.Context, opts ServerCreateOpts) (hcloud.ServerCreateOpts, error) {
	serverTypeObj, _, err := c.client.ServerType.Get(ctx, opts.ServerType)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get server type: %w", err)
	}
	if serverTypeObj == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("%w: %s", ErrServerTypeNotFound, opts.ServerType)
	}

	imageObj, err := c.resolveImage(ctx, opts.ImageID, serverTypeObj)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	sshKeyObjs, err := c.resolveSSHKeys(ctx, opts.SSHKeys)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	locObj, err := c.resolveLocation(ctx, opts.Location)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	return hcloud.ServerCreateOpts{
		Name:       opts.Name,
		ServerType: serverTypeObj,
		Image:      imageObj,
		SSHKeys:    sshKeyObjs,
		Labels:     opts.Labels,
		UserData:   opts.UserData,
		Location:   locObj,
	}, nil
}

// createServerWithRetry creates a server with exponential backoff retry logic.
func (c *RealClient) createServerWithRetry(ctx context.Context, opts hcloud.ServerCreateOpts) (hcloud.ServerCreateResult, error) {
	var result hcloud.ServerCreateResult

	err := retry.WithExponentialBackoff(ctx, func() error {
		res, _, err := c.client.Server.Create(ctx, opts)
		if err != nil {
			if isInvalidParameter(err) {
				return retry.Fatal(err)
			}
			return err
		}
		result = res
		return nil
	},
		retry.WithOperation("create server"),
		retry.WithRetryIf(isRetryable),
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return result, fmt.Errorf("failed to create server: %w", err)
	}

	if result.Action != nil {
		if err := c.client.Action.WaitFor(ctx, result.Action); err != nil {
			return result, fmt.Errorf("failed to wait for server creation: %w", err)
		}
	}
	return result, nil
}
