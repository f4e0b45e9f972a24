// Package handlers implements the business logic behind each CLI command.
//
// Handlers load the tenancy configuration, wire a portal service over the
// Hetzner Cloud client and drive it. Collaborators are reached through
// package-level factory variables so tests can replace them.
package handlers
