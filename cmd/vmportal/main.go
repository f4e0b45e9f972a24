// Package main is the entry point for the vmportal CLI.
//
// vmportal lets the members of a Hetzner Cloud tenancy create virtual
// machines from a terminal. The interactive portal gates creation on a
// registered SSH key and validates requests against the live image and
// server type catalogs.
//
// Commands: portal, create, images, sizes, ssh-key, init, version.
//
// For detailed usage information, run:
//
//	vmportal --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/vmportal/cmd/vmportal/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
