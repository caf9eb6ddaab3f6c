// Package config loads the addon configuration from environment variables.
// The configuration is read once at startup and must be treated as read-only afterwards.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xybydy/pmcloud-addon/pkg/omdb"
	"github.com/xybydy/pmcloud-addon/pkg/premiumize"
	"github.com/xybydy/pmcloud-addon/pkg/upstream"
)

// Config holds all addon configuration.
type Config struct {
	// Server settings
	BindAddr string
	Port     int
	Metrics  bool

	// Logging
	LogLevel    string
	LogEncoding string

	// OMDb
	OMDbKey     string
	OMDbBaseURL string

	// Premiumize
	PremiumizeAPIKey   string
	PremiumizeFolderID string
	PremiumizeBaseURL  string

	// Upstream behavior
	UpstreamTimeout time.Duration
	LibraryCacheTTL time.Duration

	// Static identifier to URL mapping
	IDMapPath string
	IDMap     IDMap
}

// Default returns the configuration used when no environment variables are set.
func Default() Config {
	return Config{
		BindAddr:          "0.0.0.0",
		Port:              7000,
		LogLevel:          "info",
		LogEncoding:       "console",
		OMDbBaseURL:       omdb.DefaultBaseURL,
		PremiumizeBaseURL: premiumize.DefaultBaseURL,
		UpstreamTimeout:   upstream.DefaultTimeout,
		LibraryCacheTTL:   300 * time.Second,
		IDMapPath:         "./imdb_map.json",
		IDMap:             IDMap{},
	}
}

// Load reads configuration from environment variables, falling back to Default for unset ones.
// The identifier map isn't loaded here, see LoadIDMap.
func Load() Config {
	def := Default()
	return Config{
		BindAddr:           getEnvString("BIND_ADDR", def.BindAddr),
		Port:               getEnvInt("PORT", def.Port),
		Metrics:            getEnvBool("METRICS", def.Metrics),
		LogLevel:           getEnvString("LOG_LEVEL", def.LogLevel),
		LogEncoding:        getEnvString("LOG_ENCODING", def.LogEncoding),
		OMDbKey:            strings.TrimSpace(os.Getenv("OMDB_KEY")),
		OMDbBaseURL:        getEnvString("OMDB_BASE_URL", def.OMDbBaseURL),
		PremiumizeAPIKey:   strings.TrimSpace(os.Getenv("PREMIUMIZE_API_KEY")),
		PremiumizeFolderID: strings.TrimSpace(os.Getenv("PREMIUMIZE_FOLDER_ID")),
		PremiumizeBaseURL:  getEnvString("PREMIUMIZE_BASE_URL", def.PremiumizeBaseURL),
		UpstreamTimeout:    getEnvDuration("UPSTREAM_TIMEOUT", def.UpstreamTimeout),
		LibraryCacheTTL:    getEnvDuration("LIBRARY_CACHE_TTL", def.LibraryCacheTTL),
		IDMapPath:          getEnvString("ID_MAP_PATH", def.IDMapPath),
		IDMap:              IDMap{},
	}
}

// HasOMDb reports whether searches and meta lookups can be made.
func (c Config) HasOMDb() bool {
	return c.OMDbKey != ""
}

// HasPremiumize reports whether the cloud library is usable.
func (c Config) HasPremiumize() bool {
	return c.PremiumizeAPIKey != "" && c.PremiumizeFolderID != ""
}

func getEnvString(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("300s", "5m") as well as plain seconds ("300").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
