package addon

import (
	"context"
	"net/url"

	stremio "github.com/xybydy/pmcloud-addon"
	"github.com/xybydy/pmcloud-addon/types"
)

var mediaTypes = []string{"movie", "series"}

// CatalogHandlers returns the Stremio catalog handlers for every media type of the manifest.
func (a *Addon) CatalogHandlers() map[string]stremio.CatalogHandler {
	handlers := make(map[string]stremio.CatalogHandler, len(mediaTypes))
	for _, typ := range mediaTypes {
		handlers[typ] = func(ctx context.Context, id string, extra url.Values) ([]types.MetaPreviewItem, error) {
			return a.Catalog(ctx, typ, id, extra.Get("search")), nil
		}
	}
	return handlers
}

// MetaHandlers returns the Stremio meta handlers for every media type of the manifest.
func (a *Addon) MetaHandlers() map[string]stremio.MetaHandler {
	handlers := make(map[string]stremio.MetaHandler, len(mediaTypes))
	for _, typ := range mediaTypes {
		handlers[typ] = func(ctx context.Context, id string) (types.MetaItem, error) {
			return a.Meta(ctx, id), nil
		}
	}
	return handlers
}

// StreamHandlers returns the Stremio stream handlers for every media type of the manifest.
func (a *Addon) StreamHandlers() map[string]stremio.StreamHandler {
	handlers := make(map[string]stremio.StreamHandler, len(mediaTypes))
	for _, typ := range mediaTypes {
		handlers[typ] = func(ctx context.Context, id string) ([]types.StreamItem, error) {
			return a.Stream(ctx, id), nil
		}
	}
	return handlers
}

// NewServer wraps the addon into a Stremio server with its manifest and all handlers.
func (a *Addon) NewServer(opts stremio.Options) (*stremio.Addon, error) {
	return stremio.NewAddon(a.Manifest(), a.CatalogHandlers(), a.StreamHandlers(), a.MetaHandlers(), opts)
}
