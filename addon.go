// Package stremio serves a Stremio addon over HTTP.
// It takes care of the manifest, routing, response shapes, caching headers, logging and metrics,
// while the addon's functionality lives in the catalog, meta and stream handlers passed to NewAddon.
package stremio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/xybydy/pmcloud-addon/types"
	"go.uber.org/zap"
)

// CatalogHandler is the callback for catalog requests for a specific type (like "movie").
// The id parameter is the catalog ID that you specified yourself in the CatalogItem objects in the Manifest.
// Extra Parameters is optional
// search - set in the extra object; string to search for in the catalog
// genre - set in the extra object; a string to filter the feed or search results by genres
// skip - set in the extra object; used for catalog pagination, refers to the number of items skipped from the beginning of the catalog;
// the standard page size in Stremio is 100, so the skip value will be a multiple of 100; if you return less than 100 items,
// Stremio will consider this to be the end of the catalog.
type CatalogHandler func(ctx context.Context, id string, extra url.Values) ([]types.MetaPreviewItem, error)

// StreamHandler is the callback for stream requests for a specific type (like "movie").
// The id parameter can be for example an IMDb ID if your addon handles the "movie" type.
type StreamHandler func(ctx context.Context, id string) ([]types.StreamItem, error)

// MetaHandler is the callback for metadata requests for a specific type (like "movie").
// Returning the zero MetaItem leads to an empty meta object in the response.
type MetaHandler func(ctx context.Context, id string) (types.MetaItem, error)

// Addon represents a remote addon.
// You can create one with NewAddon() and then run it with Run().
type Addon struct {
	manifest        types.Manifest
	catalogHandlers map[string]CatalogHandler
	streamHandlers  map[string]StreamHandler
	metaHandlers    map[string]MetaHandler
	opts            Options
	logger          *zap.Logger
}

// NewAddon creates a new Addon object that can be started with Run().
// A proper manifest must be supplied, but all but one handler can be nil in case you only want to handle specific requests and opts can be the zero value of Options.
func NewAddon(manifest types.Manifest, catalogHandlers map[string]CatalogHandler, streamHandlers map[string]StreamHandler, metaHandlers map[string]MetaHandler, opts Options) (*Addon, error) {
	// Precondition checks
	switch {
	case manifest.ID == "" || manifest.Name == "" || manifest.Description == "" || manifest.Version == "":
		return nil, errors.New("an empty manifest was passed")
	case catalogHandlers == nil && streamHandlers == nil && metaHandlers == nil:
		return nil, errors.New("no handler was passed")
	case (opts.CachePublicCatalogs && opts.CacheAgeCatalogs == 0) ||
		(opts.CachePublicStreams && opts.CacheAgeStreams == 0) ||
		(opts.CachePublicMeta && opts.CacheAgeMeta == 0):
		return nil, errors.New("enabling public caching only makes sense when also setting a cache age")
	case (opts.HandleEtagCatalogs && opts.CacheAgeCatalogs == 0) ||
		(opts.HandleEtagStreams && opts.CacheAgeStreams == 0) ||
		(opts.HandleEtagMeta && opts.CacheAgeMeta == 0):
		return nil, errors.New(`ETag handling only makes sense when also setting a cache age`)
	case opts.DisableRequestLogging && (opts.LogIPs || opts.LogUserAgent):
		return nil, errors.New("enabling IP or user agent logging doesn't make sense when disabling request logging")
	case opts.Logger != nil && opts.LoggingLevel != "":
		return nil, errors.New("setting a logging level in the options doesn't make sense when you already set a custom logger")
	}

	// Set default values
	if opts.BindAddr == "" {
		opts.BindAddr = DefaultOptions.BindAddr
	}
	if opts.Port == 0 {
		opts.Port = DefaultOptions.Port
	}
	if opts.LoggingLevel == "" {
		opts.LoggingLevel = DefaultOptions.LoggingLevel
	}
	if opts.LogEncoding == "" {
		opts.LogEncoding = DefaultOptions.LogEncoding
	}

	// Configure logger if no custom one is set
	if opts.Logger == nil {
		var err error
		if opts.Logger, err = NewLogger(opts.LoggingLevel, opts.LogEncoding); err != nil {
			return nil, fmt.Errorf("couldn't create new logger: %w", err)
		}
	}

	// Create and return addon
	return &Addon{
		manifest:        manifest.Clone(),
		catalogHandlers: catalogHandlers,
		streamHandlers:  streamHandlers,
		metaHandlers:    metaHandlers,
		opts:            opts,
		logger:          opts.Logger,
	}, nil
}

// Build sets up the Fiber app with all middlewares and routes, without starting to listen.
// Run calls it, but it's also useful for testing the addon with app.Test().
// fiberConf can be nil to use a config with an error handler that logs and hides errors.
func (a *Addon) Build(fiberConf *fiber.Config) (*fiber.App, error) {
	logger := a.logger

	if fiberConf == nil {
		fiberConf = &fiber.Config{
			ErrorHandler: func(c fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				var e *fiber.Error
				if errors.As(err, &e) {
					code = e.Code
				}
				if code >= fiber.StatusInternalServerError {
					logger.Error("Fiber's error handler was called", zap.Error(err), zap.String("url", c.OriginalURL()))
				}
				c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
				return c.Status(code).SendString(http.StatusText(code))
			},
		}
	}

	// Fiber app

	logger.Info("Setting up server...")
	app := fiber.New(*fiberConf)

	// Middlewares

	app.Use(recover.New())
	if !a.opts.DisableRequestLogging {
		app.Use(createLoggingMiddleware(logger, a.opts.LogIPs, a.opts.LogUserAgent))
	}
	if a.opts.Metrics {
		app.Use(createMetricsMiddleware())
	}
	app.Use(corsMiddleware())

	// Extra endpoints

	healthHandler := createHealthHandler(logger)
	app.Get("/health", healthHandler)
	// Optional metrics
	if a.opts.Metrics {
		app.Get("/metrics", adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			metrics.WritePrometheus(w, true)
		}))
	}

	// Stremio endpoints

	manifestHandler, err := createManifestHandler(a.manifest, logger)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal manifest: %w", err)
	}
	app.Get("/manifest.json", manifestHandler)

	if a.catalogHandlers != nil {
		catalogHandler := createCatalogHandler(a.catalogHandlers, a.opts.catalogCachePolicy(), logger)
		app.Get("/catalog/:type/:id.json", catalogHandler)
		app.Get("/catalog/:type/:id/:extras", catalogHandler)
	}

	if a.metaHandlers != nil {
		app.Get("/meta/:type/:id.json", createMetaHandler(a.metaHandlers, a.opts.metaCachePolicy(), logger))
	}

	if a.streamHandlers != nil {
		app.Get("/stream/:type/:id.json", createStreamHandler(a.streamHandlers, a.opts.streamCachePolicy(), logger))
	}

	// Root redirects to website, or acts as a second health endpoint
	if a.opts.RedirectURL != "" {
		app.Get("/", createRootHandler(a.opts.RedirectURL, logger))
	} else {
		app.Get("/", healthHandler)
	}

	logger.Info("Finished setting up server")
	return app, nil
}

// Run starts the remote addon. It sets up an HTTP server that handles requests to "/manifest.json" etc. and gracefully handles shutdowns.
// The call is *blocking*, so use the stoppingChan param if you want to be notified when the addon is about to shut down
// because of a system signal like Ctrl+C or `docker stop`. It should be a buffered channel with a capacity of 1.
func (a *Addon) Run(stoppingChan chan bool, fiberConf *fiber.Config) error {
	logger := a.logger

	defer func() { _ = logger.Sync() }()

	// Make sure the passed channel is buffered, so we can send a message before shutting down and not be blocked by the channel.
	if stoppingChan != nil && cap(stoppingChan) < 1 {
		return errors.New("the passed stopping channel isn't buffered")
	}

	app, err := a.Build(fiberConf)
	if err != nil {
		return err
	}

	addr := a.opts.BindAddr + ":" + strconv.Itoa(a.opts.Port)
	logger.Info("Starting server", zap.String("address", addr))
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	// Graceful shutdown

	c := make(chan os.Signal, 1)
	// Accept SIGINT (Ctrl+C) and SIGTERM (`docker stop`)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("couldn't start server: %w", err)
	case sig := <-c:
		logger.Info("Received signal, shutting down server...", zap.Stringer("signal", sig))
	}
	if stoppingChan != nil {
		stoppingChan <- true
	}
	// Graceful shutdown, waiting for all current requests to finish without accepting new ones.
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	logger.Info("Finished shutting down server")
	return nil
}
