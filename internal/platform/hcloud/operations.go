package hcloud

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/vmportal/internal/util/retry"
)

// withRetry runs fn with the client's retry settings. Only rate-limited
// and locked errors are retried; invalid input is fatal.
func (c *RealClient) withRetry(ctx context.Context, operation string, fn func() error) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		err := fn()
		if err != nil && isInvalidParameter(err) {
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithOperation(operation),
		retry.WithRetryIf(isRetryable),
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// DeleteOperation encapsulates deletion logic for any hcloud resource.
// It provides consistent retry, timeout, and error handling across resource types.
//
// Usage example:
//
//	func (c *RealClient) DeleteSSHKey(ctx context.Context, name string) error {
//	    return (&DeleteOperation[*hcloud.SSHKey]{
//	        Name:         name,
//	        ResourceType: "ssh key",
//	        Get:          c.client.SSHKey.Get,
//	        Delete:       c.client.SSHKey.Delete,
//	    }).Execute(ctx, c)
//	}
type DeleteOperation[T any] struct {
	Name         string
	ResourceType string

	// Get retrieves the resource by name
	Get func(ctx context.Context, name string) (T, *hcloud.Response, error)

	// Delete removes the resource
	Delete func(ctx context.Context, resource T) (*hcloud.Response, error)
}

// Execute performs the delete operation with retry logic and timeout handling.
// The operation is idempotent: it succeeds if the resource doesn't exist.
// Locked resources are retried with exponential backoff.
func (op *DeleteOperation[T]) Execute(ctx context.Context, client *RealClient) error {
	ctx, cancel := context.WithTimeout(ctx, client.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		resource, _, err := op.Get(ctx, op.Name)
		if err != nil {
			return retry.Fatal(fmt.Errorf("failed to get %s: %w", op.ResourceType, err))
		}

		// already deleted
		if reflect.ValueOf(resource).IsNil() {
			return nil
		}

		_, err = op.Delete(ctx, resource)
		if err != nil {
			if isResourceLocked(err) || IsRateLimited(err) {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete %s: %w", op.ResourceType, err))
		}
		return nil
	},
		retry.WithOperation("delete "+op.ResourceType),
		retry.WithMaxRetries(client.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(client.timeouts.RetryInitialDelay))
}
