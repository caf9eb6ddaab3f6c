// Package addon implements the catalog, meta and stream handlers of the Premiumize cloud library addon.
//
// Handlers never fail: upstream errors, missing configuration and unusable IDs
// all lead to an empty result, and the cause is logged.
package addon

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/xybydy/pmcloud-addon/pkg/config"
	"github.com/xybydy/pmcloud-addon/pkg/omdb"
	"github.com/xybydy/pmcloud-addon/pkg/premiumize"
	"github.com/xybydy/pmcloud-addon/pkg/resultcache"
	"github.com/xybydy/pmcloud-addon/types"
	"go.uber.org/zap"
)

const (
	// CatalogLibrary lists the files of the configured Premiumize folder.
	CatalogLibrary = "pm-library"
	// CatalogSearchMovie and CatalogSearchSeries search OMDb.
	CatalogSearchMovie  = "search-movie"
	CatalogSearchSeries = "search-series"

	searchCatalogPrefix = "search-"
	libraryIDPrefix     = "pm:"

	StreamTitleDirect     = "Direct"
	StreamTitlePremiumize = "Premiumize Cloud"
)

// imdbIDre finds an IMDb ID embedded in a file name, like in "The.Matrix.1999.tt0133093.mkv".
// Any "tt" followed by 7 or 8 digits matches, so unrelated substrings can produce false positives.
var imdbIDre = regexp.MustCompile(`tt\d{7,8}`)

// MetaProvider searches titles and fetches their metadata. *omdb.Client implements it.
type MetaProvider interface {
	Search(ctx context.Context, query string, mediaType omdb.MediaType) ([]types.MetaPreviewItem, error)
	GetMeta(ctx context.Context, id string) (types.MetaItem, error)
}

// CloudLibrary lists cloud files and resolves their links. *premiumize.Client implements it.
type CloudLibrary interface {
	ListFolder(ctx context.Context, folderID string) ([]premiumize.File, error)
	GetFileLink(ctx context.Context, fileID string) (string, error)
}

// Addon holds the read-only configuration and the upstream clients the handlers work with.
// It's safe for concurrent use.
type Addon struct {
	cfg    config.Config
	meta   MetaProvider
	cloud  CloudLibrary
	files  *resultcache.Cache[[]premiumize.File]
	logger *zap.Logger
}

// New creates an Addon. The meta provider and cloud library are only used when cfg has the respective credentials.
func New(cfg config.Config, meta MetaProvider, cloud CloudLibrary, logger *zap.Logger) *Addon {
	return &Addon{
		cfg:    cfg,
		meta:   meta,
		cloud:  cloud,
		files:  resultcache.New[[]premiumize.File](resultcache.DefaultCleanupInterval),
		logger: logger.Named("addon"),
	}
}

// NewFromConfig creates an Addon with OMDb and Premiumize clients built from cfg.
func NewFromConfig(cfg config.Config, logger *zap.Logger) *Addon {
	omdbClient := omdb.NewClient(cfg.OMDbKey, omdb.ClientOptions{
		BaseURL: cfg.OMDbBaseURL,
		Timeout: cfg.UpstreamTimeout,
	}, logger)
	pmClient := premiumize.NewClient(cfg.PremiumizeAPIKey, premiumize.ClientOptions{
		BaseURL: cfg.PremiumizeBaseURL,
		Timeout: cfg.UpstreamTimeout,
	}, logger)
	return New(cfg, omdbClient, pmClient, logger)
}

// Catalog returns the entries of the catalog with the given ID.
// typ is the Stremio type of the request and search the optional search term.
func (a *Addon) Catalog(ctx context.Context, typ, catalogID, search string) []types.MetaPreviewItem {
	logger := a.logger.With(zap.String("catalog", catalogID), zap.String("type", typ))

	switch {
	case catalogID == CatalogLibrary:
		if !a.cfg.HasPremiumize() {
			logger.Debug("Premiumize isn't configured")
			return []types.MetaPreviewItem{}
		}
		files, err := a.libraryFiles(ctx)
		if err != nil {
			logger.Error("Couldn't list library", zap.Error(err))
			return []types.MetaPreviewItem{}
		}
		return libraryItems(files)
	case strings.HasPrefix(catalogID, searchCatalogPrefix):
		search = strings.TrimSpace(search)
		if search == "" || !a.cfg.HasOMDb() {
			logger.Debug("Search term or OMDb key missing")
			return []types.MetaPreviewItem{}
		}
		mediaType, ok := omdb.ParseMediaType(typ)
		if !ok {
			logger.Debug("Unsupported type for search")
			return []types.MetaPreviewItem{}
		}
		items, err := a.meta.Search(ctx, search, mediaType)
		if err != nil {
			logger.Error("Couldn't search OMDb", zap.String("search", search), zap.Error(err))
			return []types.MetaPreviewItem{}
		}
		if items == nil {
			items = []types.MetaPreviewItem{}
		}
		return items
	default:
		logger.Debug("Unknown catalog")
		return []types.MetaPreviewItem{}
	}
}

// Meta returns the metadata of the title with the given ID, or an empty MetaItem.
func (a *Addon) Meta(ctx context.Context, id string) types.MetaItem {
	if !a.cfg.HasOMDb() {
		a.logger.Debug("OMDb isn't configured", zap.String("id", id))
		return types.MetaItem{}
	}
	meta, err := a.meta.GetMeta(ctx, id)
	if err != nil {
		a.logger.Error("Couldn't get meta", zap.String("id", id), zap.Error(err))
		return types.MetaItem{}
	}
	return meta
}

// Stream resolves a playable URL for the given ID.
// The static identifier map wins over the cloud library, which isn't consulted at all in that case.
func (a *Addon) Stream(ctx context.Context, id string) []types.StreamItem {
	if url, ok := a.cfg.IDMap.Lookup(id); ok {
		return []types.StreamItem{{Title: StreamTitleDirect, URL: url}}
	}
	if !a.cfg.HasPremiumize() || id == "" {
		return []types.StreamItem{}
	}

	logger := a.logger.With(zap.String("id", id))
	files, err := a.libraryFiles(ctx)
	if err != nil {
		logger.Error("Couldn't list library", zap.Error(err))
		return []types.StreamItem{}
	}

	var match *premiumize.File
	for i := range files {
		if strings.Contains(files[i].Name, id) {
			match = &files[i]
			break
		}
	}
	if match == nil {
		logger.Debug("No library file matches")
		return []types.StreamItem{}
	}

	link, err := a.cloud.GetFileLink(ctx, match.ID)
	if err != nil {
		logger.Error("Couldn't get file link", zap.String("fileID", match.ID), zap.Error(err))
		return []types.StreamItem{}
	}
	if link == "" {
		logger.Debug("File has no link", zap.String("fileID", match.ID))
		return []types.StreamItem{}
	}
	return []types.StreamItem{{Title: StreamTitlePremiumize, URL: link}}
}

// libraryFiles returns the configured folder's files, from the cache if they were listed within the TTL.
// Failed listings aren't cached.
func (a *Addon) libraryFiles(ctx context.Context) ([]premiumize.File, error) {
	key := "pm-list:" + a.cfg.PremiumizeFolderID
	if files, ok := a.files.Get(key); ok {
		metrics.GetOrCreateCounter(`library_cache_requests_total{result="hit"}`).Inc()
		return files, nil
	}
	metrics.GetOrCreateCounter(`library_cache_requests_total{result="miss"}`).Inc()

	start := time.Now()
	files, err := a.cloud.ListFolder(ctx, a.cfg.PremiumizeFolderID)
	if err != nil {
		return nil, fmt.Errorf("couldn't list folder %q: %w", a.cfg.PremiumizeFolderID, err)
	}
	a.logger.Debug("Refreshed library", zap.Int("files", len(files)), zap.Duration("took", time.Since(start)))
	a.files.Set(key, files, a.cfg.LibraryCacheTTL)
	return files, nil
}

func libraryItems(files []premiumize.File) []types.MetaPreviewItem {
	items := make([]types.MetaPreviewItem, 0, len(files))
	for _, f := range files {
		if f.ID == "" {
			continue
		}
		id := imdbIDre.FindString(f.Name)
		if id == "" {
			id = libraryIDPrefix + f.ID
		}
		items = append(items, types.MetaPreviewItem{
			ID:   id,
			Type: "movie",
			Name: f.Name,
		})
	}
	return items
}
