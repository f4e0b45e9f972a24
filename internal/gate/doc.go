// Package gate routes the machine creation dialog on the user's SSH key.
//
// A Gate is Blocked while no public key is registered. Opening a blocked
// gate shows the key-setup sub-dialog instead of the creation form, and
// every outcome of that sub-dialog closes the whole dialog. The gate keeps
// no request state between openings.
//
// Key setup itself lives in RunSetup: a pasted key is validated against the
// tenancy's key policy, or a new RSA pair is generated locally and its public
// half uploaded through a KeyUpdater.
package gate
