package portal

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/vmportal/internal/catalog"
	"github.com/imamik/vmportal/internal/metrics"
)

// ImagesFetcher returns the fetcher bound to the image selector.
func (s *Service) ImagesFetcher() catalog.Fetcher {
	return func(ctx context.Context) ([]catalog.Entry, error) {
		start := time.Now()
		images, err := s.client.ListImages(ctx)
		metrics.RecordCatalogFetch(string(catalog.KindImages), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		return imageEntries(images), nil
	}
}

// SizesFetcher returns the fetcher bound to the size selector.
func (s *Service) SizesFetcher() catalog.Fetcher {
	return func(ctx context.Context) ([]catalog.Entry, error) {
		start := time.Now()
		types, err := s.client.ListServerTypes(ctx)
		metrics.RecordCatalogFetch(string(catalog.KindSizes), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		return sizeEntries(types), nil
	}
}

func imageEntries(images []*hcloud.Image) []catalog.Entry {
	entries := make([]catalog.Entry, 0, len(images))
	for _, img := range images {
		if img == nil || img.IsDeprecated() {
			continue
		}
		name := img.Description
		if name == "" {
			name = img.Name
		}
		entries = append(entries, catalog.Entry{
			ID:          strconv.FormatInt(img.ID, 10),
			Name:        name,
			Description: imageDescription(img),
		})
	}
	return entries
}

func imageDescription(img *hcloud.Image) string {
	parts := []string{string(img.Type)}
	if img.Architecture != "" {
		parts = append(parts, string(img.Architecture))
	}
	return strings.Join(parts, ", ")
}

func sizeEntries(types []*hcloud.ServerType) []catalog.Entry {
	active := make([]*hcloud.ServerType, 0, len(types))
	for _, st := range types {
		if st != nil && !st.IsDeprecated() {
			active = append(active, st)
		}
	}
	slices.SortStableFunc(active, func(a, b *hcloud.ServerType) int {
		if a.Cores != b.Cores {
			return a.Cores - b.Cores
		}
		if a.Memory != b.Memory {
			if a.Memory < b.Memory {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	entries := make([]catalog.Entry, 0, len(active))
	for _, st := range active {
		entries = append(entries, catalog.Entry{
			ID:          st.Name,
			Name:        st.Name,
			Description: fmt.Sprintf("%d vCPU, %g GB RAM, %d GB disk", st.Cores, st.Memory, st.Disk),
		})
	}
	return entries
}
