package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// selectableImageTypes are the image types users may build machines from.
var selectableImageTypes = []hcloud.ImageType{
	hcloud.ImageTypeSystem,
	hcloud.ImageTypeApp,
	hcloud.ImageTypeSnapshot,
}

// ListImages returns every available, non-deprecated image users may select.
func (c *RealClient) ListImages(ctx context.Context) ([]*hcloud.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Catalog)
	defer cancel()

	var images []*hcloud.Image
	err := c.withRetry(ctx, "list images", func() error {
		var err error
		images, err = c.client.Image.AllWithOpts(ctx, hcloud.ImageListOpts{
			Type:   selectableImageTypes,
			Status: []hcloud.ImageStatus{hcloud.ImageStatusAvailable},
			Sort:   []string{"name:asc"},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// ListServerTypes returns every server type.
func (c *RealClient) ListServerTypes(ctx context.Context) ([]*hcloud.ServerType, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Catalog)
	defer cancel()

	var types []*hcloud.ServerType
	err := c.withRetry(ctx, "list server types", func() error {
		var err error
		types, err = c.client.ServerType.All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list server types: %w", err)
	}
	return types, nil
}
