package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	stremio "github.com/xybydy/pmcloud-addon"
	"github.com/xybydy/pmcloud-addon/pkg/config"
	"github.com/xybydy/pmcloud-addon/types"
	"go.uber.org/zap"
)

func TestFlagDefaultsFromEnv(t *testing.T) {
	t.Setenv("PORT", "7123")
	t.Setenv("LIBRARY_CACHE_TTL", "45s")

	rootCmd := NewRootCommand()
	require.Equal(t, "7123", rootCmd.Flags().Lookup("port").DefValue)
	require.Equal(t, (45 * time.Second).String(), rootCmd.Flags().Lookup("library-ttl").DefValue)
	require.Equal(t, "./imdb_map.json", rootCmd.Flags().Lookup("id-map").DefValue)
}

func TestFlagsParse(t *testing.T) {
	rootCmd := NewRootCommand()
	require.NoError(t, rootCmd.ParseFlags([]string{"-p", "9000", "--metrics", "--log-level", "debug"}))

	port, err := rootCmd.Flags().GetInt("port")
	require.NoError(t, err)
	require.Equal(t, 9000, port)
	metrics, err := rootCmd.Flags().GetBool("metrics")
	require.NoError(t, err)
	require.True(t, metrics)
}

func TestServerOptionsAreValid(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 7001
	cfg.Metrics = true

	opts := serverOptions(cfg, zap.NewNop())
	require.Equal(t, 7001, opts.Port)
	require.True(t, opts.Metrics)
	require.True(t, opts.HandleEtagMeta)
	require.False(t, opts.CachePublicCatalogs)

	_, err := stremio.NewAddon(types.Manifest{ID: "org.example.test", Name: "Test", Description: "Test", Version: "0.0.1"}, nil, nil, map[string]stremio.MetaHandler{}, opts)
	require.NoError(t, err)
}

func TestRunRejectsInvalidLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"
	require.Error(t, run(cfg))
}
