// Package hcloud wraps the Hetzner Cloud API for the portal.
//
// RealClient exposes the four things the portal needs from a tenancy:
// the image and server type lists behind the catalogs, the user's SSH key,
// and server creation. Calls that hit rate limits or locked resources are
// retried with exponential backoff; invalid input fails immediately.
//
// Timeouts and retry parameters come from config.LoadTimeouts:
//
//   - VMPORTAL_TIMEOUT_CATALOG: image, server type and key lookups (default: 30s)
//   - VMPORTAL_TIMEOUT_CREATE: server creation including its action (default: 5m)
//   - VMPORTAL_TIMEOUT_DELETE: key deletion (default: 1m)
//   - VMPORTAL_RETRY_MAX_ATTEMPTS: retries after the first attempt (default: 3)
//   - VMPORTAL_RETRY_INITIAL_DELAY: first retry delay (default: 1s)
//
// Example:
//
//	client := hcloud.NewRealClient(token)
//	id, err := client.CreateServer(ctx, hcloud.ServerCreateOpts{
//	    Name:       "vm-01",
//	    ImageID:    "114690387",
//	    ServerType: "cx22",
//	    SSHKeys:    []string{"alice"},
//	})
package hcloud
