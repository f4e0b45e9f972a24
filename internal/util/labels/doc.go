// Package labels builds the Hetzner Cloud labels the portal puts on the
// servers it creates.
//
// Keys use the vmportal.io prefix. The web console agent on a machine reads
// the console, desktop and proxy labels to decide what to start.
package labels
