package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// resolveImage looks an image up by id and checks it can boot the server type.
func (c *RealClient) resolveImage(ctx context.Context, imageID string, serverTypeObj *hcloud.ServerType) (*hcloud.Image, error) {
	id, err := strconv.ParseInt(imageID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image id %q", ErrImageNotFound, imageID)
	}

	imageObj, _, err := c.client.Image.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	if imageObj == nil {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, imageID)
	}
	if imageObj.Status != hcloud.ImageStatusAvailable {
		return nil, fmt.Errorf("%w: image %d is %s", ErrImageNotFound, imageObj.ID, imageObj.Status)
	}

	if imageObj.Architecture != "" && serverTypeObj.Architecture != "" && imageObj.Architecture != serverTypeObj.Architecture {
		return nil, fmt.Errorf("%w: image is %s, %s is %s",
			ErrArchitectureMismatch, imageObj.Architecture, serverTypeObj.Name, serverTypeObj.Architecture)
	}
	return imageObj, nil
}

// resolveSSHKeys resolves SSH key names/IDs to SSH key objects.
func (c *RealClient) resolveSSHKeys(ctx context.Context, sshKeys []string) ([]*hcloud.SSHKey, error) {
	var sshKeyObjs []*hcloud.SSHKey
	for _, key := range sshKeys {
		keyObj, _, err := c.client.SSHKey.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to get ssh key %s: %w", key, err)
		}
		if keyObj == nil {
			return nil, fmt.Errorf("%w: %s", ErrSSHKeyNotFound, key)
		}
		sshKeyObjs = append(sshKeyObjs, keyObj)
	}
	return sshKeyObjs, nil
}

// resolveLocation resolves a location name to a location object.
func (c *RealClient) resolveLocation(ctx context.Context, location string) (*hcloud.Location, error) {
	if location == "" {
		return nil, nil
	}

	locObj, _, err := c.client.Location.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to get location %s: %w", location, err)
	}
	if locObj == nil {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}
	return locObj, nil
}
