package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/vmportal/internal/catalog"
)

// Images prints the image catalog of the tenancy.
func Images(ctx context.Context, configPath string, jsonOutput bool) error {
	return listCatalog(ctx, configPath, catalog.KindImages, jsonOutput)
}

// Sizes prints the size catalog of the tenancy.
func Sizes(ctx context.Context, configPath string, jsonOutput bool) error {
	return listCatalog(ctx, configPath, catalog.KindSizes, jsonOutput)
}

func listCatalog(ctx context.Context, configPath string, kind catalog.Kind, jsonOutput bool) error {
	cfg, svc, err := newPortalService(configPath)
	if err != nil {
		return err
	}
	ctx = withCLILogger(ctx, cfg)

	fetch := svc.ImagesFetcher()
	if kind == catalog.KindSizes {
		fetch = svc.SizesFetcher()
	}

	c := catalog.New(kind)
	if err := c.Load(ctx, fetch); err != nil {
		return fmt.Errorf("failed to load %s: %w", kind, err)
	}
	return printEntries(kind, c.Items(), jsonOutput)
}
