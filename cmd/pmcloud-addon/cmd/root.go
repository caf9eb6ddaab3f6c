// Package cmd is the command line interface of the addon.
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	stremio "github.com/xybydy/pmcloud-addon"
	"github.com/xybydy/pmcloud-addon/pkg/addon"
	"github.com/xybydy/pmcloud-addon/pkg/config"
	"go.uber.org/zap"
)

// Cache ages announced to Stremio and proxies.
const (
	catalogCacheAge = 5 * time.Minute
	metaCacheAge    = 24 * time.Hour
)

// NewRootCommand returns the command that runs the addon.
// Flags override the corresponding environment variables.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "pmcloud-addon",
		Short: "Stremio addon for OMDb search and Premiumize cloud streams",
		Long: `pmcloud-addon is a Stremio addon that searches movies and series via OMDb
and serves streams from a static identifier map or from files in your Premiumize cloud folder.

Configuration is read from the environment (OMDB_KEY, PREMIUMIZE_API_KEY,
PREMIUMIZE_FOLDER_ID, PORT, ...) and can be overridden with flags.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.BindAddr, "bind", cfg.BindAddr, "Interface to bind to")
	flags.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")
	flags.StringVar(&cfg.IDMapPath, "id-map", cfg.IDMapPath, "Path to the JSON identifier to URL map")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogEncoding, "log-encoding", cfg.LogEncoding, "Log encoding (console, json)")
	flags.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "Expose Prometheus metrics on /metrics")
	flags.DurationVar(&cfg.LibraryCacheTTL, "library-ttl", cfg.LibraryCacheTTL, "How long a Premiumize folder listing is reused")

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func run(cfg config.Config) error {
	logger, err := stremio.NewLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return fmt.Errorf("couldn't create logger: %w", err)
	}

	idMap, err := config.LoadIDMap(cfg.IDMapPath)
	if err != nil {
		logger.Error("Couldn't load identifier map", zap.Error(err))
		return err
	}
	cfg.IDMap = idMap

	logger.Info("Loaded configuration",
		zap.Bool("omdb", cfg.HasOMDb()),
		zap.Bool("premiumize", cfg.HasPremiumize()),
		zap.Int("staticIDs", len(cfg.IDMap)),
		zap.Duration("libraryTTL", cfg.LibraryCacheTTL),
	)
	if !cfg.HasOMDb() {
		logger.Warn("OMDB_KEY isn't set, search and meta will return empty results")
	}

	server, err := addon.NewFromConfig(cfg, logger).NewServer(serverOptions(cfg, logger))
	if err != nil {
		return fmt.Errorf("couldn't create addon: %w", err)
	}
	return server.Run(nil, nil)
}

func serverOptions(cfg config.Config, logger *zap.Logger) stremio.Options {
	return stremio.Options{
		BindAddr:           cfg.BindAddr,
		Port:               cfg.Port,
		Logger:             logger,
		Metrics:            cfg.Metrics,
		CacheAgeCatalogs:   catalogCacheAge,
		HandleEtagCatalogs: true,
		CacheAgeMeta:       metaCacheAge,
		CachePublicMeta:    true,
		HandleEtagMeta:     true,
	}
}
