package stremio

import (
	"time"

	"go.uber.org/zap"
)

// Options are the options that can be used to configure the addon.
type Options struct {
	// The interface to bind to.
	// "0.0.0.0" to bind to all interfaces. "localhost" to *exclude* requests from other machines.
	// Default "localhost".
	BindAddr string
	// The port to listen on.
	// Default 8080.
	Port int
	// You can set a custom logger, or leave this empty to create a new one
	// with the configured LoggingLevel and LogEncoding.
	Logger *zap.Logger
	// The logging level.
	// Only logs with the same or a higher log level will be shown.
	// For example when you set it to "info", info, warn and error logs will be shown, but no debug logs.
	// Accepts "debug", "info", "warn", "error", "dpanic", "panic" and "fatal".
	// Default "info".
	LoggingLevel string
	// Configures zap's log encoding.
	// "console" will format a log line console-friendly.
	// "json" is better suited when using a centralized log solution like ELK, Graylog or Loki.
	// Default "console".
	LogEncoding string
	// Flag for indicating whether requests should be logged.
	// Default false (meaning requests will be logged by default).
	DisableRequestLogging bool
	// Flag for indicating whether IP addresses should be logged.
	// Default false.
	LogIPs bool
	// Flag for indicating whether the user agent header should be logged.
	// Default false.
	LogUserAgent bool
	// URL to redirect to when someone requests the root of the handler instead of the manifest, catalog, stream etc.
	// When no value is set, the root answers like the health endpoint.
	// Default "".
	RedirectURL string
	// Flag for indicating whether you want to collect and expose Prometheus metrics.
	// The URL is the same as usual for Prometheus exporters: "/metrics".
	// Default false.
	Metrics bool
	// Duration of client/proxy-side cache for responses from the catalog endpoint.
	// Helps reducing number of requests and transferred data volume to/from the server.
	// The result is not cached by the SDK on the server side, so if two *separate* users make a request,
	// and no proxy cached the response, your CatalogHandler will be called twice.
	// Default 0.
	CacheAgeCatalogs time.Duration
	// Same as CacheAgeCatalogs, but for metas.
	// Default 0.
	CacheAgeMeta time.Duration
	// Same as CacheAgeCatalogs, but for streams.
	// Default 0.
	CacheAgeStreams time.Duration
	// Flag for indicating to proxies whether they are allowed to cache responses from the catalog endpoint.
	// Default false.
	CachePublicCatalogs bool
	// Same as CachePublicCatalogs, but for metas.
	// Default false.
	CachePublicMeta bool
	// Same as CachePublicCatalogs, but for streams.
	// Default false.
	CachePublicStreams bool
	// Flag for indicating whether the "ETag" header should be set and the "If-None-Match" header checked.
	// Helps reducing the transferred data volume from the server even further.
	// Only makes a difference when setting a non-zero value for CacheAgeCatalogs.
	// Leads to a slight computational overhead due to every CatalogHandler result being hashed.
	// Default false.
	HandleEtagCatalogs bool
	// Same as HandleEtagCatalogs, but for metas.
	// Default false.
	HandleEtagMeta bool
	// Same as HandleEtagCatalogs, but for streams.
	// Default false.
	HandleEtagStreams bool
}

// DefaultOptions is an Options object with default values.
// For fields that aren't set here the zero value is the default value.
var DefaultOptions = Options{
	BindAddr:     "localhost",
	Port:         8080,
	LoggingLevel: "info",
	LogEncoding:  "console",
}

// cachePolicy bundles the caching related options of one resource.
type cachePolicy struct {
	maxAge     time.Duration
	public     bool
	handleEtag bool
}

func (o Options) catalogCachePolicy() cachePolicy {
	return cachePolicy{maxAge: o.CacheAgeCatalogs, public: o.CachePublicCatalogs, handleEtag: o.HandleEtagCatalogs}
}

func (o Options) metaCachePolicy() cachePolicy {
	return cachePolicy{maxAge: o.CacheAgeMeta, public: o.CachePublicMeta, handleEtag: o.HandleEtagMeta}
}

func (o Options) streamCachePolicy() cachePolicy {
	return cachePolicy{maxAge: o.CacheAgeStreams, public: o.CachePublicStreams, handleEtag: o.HandleEtagStreams}
}
