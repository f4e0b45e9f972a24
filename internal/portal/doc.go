// Package portal binds the creation workflow to a Hetzner Cloud tenancy.
//
// A Service supplies everything the workflow treats as external: the
// tenancy's capabilities, the user's SSH key state, the image and size
// catalog fetchers, and the creation action itself.
package portal
