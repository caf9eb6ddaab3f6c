// Package omdb is a minimal client for the OMDb API, mapping its responses to Stremio meta objects.
package omdb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xybydy/pmcloud-addon/pkg/upstream"
	"github.com/xybydy/pmcloud-addon/types"
	"go.uber.org/zap"
)

const service = "omdb"

// DefaultBaseURL is the public OMDb API endpoint.
const DefaultBaseURL = "https://www.omdbapi.com"

// ClientOptions are the options for the OMDb client.
type ClientOptions struct {
	// The base URL of the OMDb API.
	// Default "https://www.omdbapi.com".
	BaseURL string
	// Timeout for each HTTP request.
	// Default 10 seconds.
	Timeout time.Duration
	// HTTPClient replaces the client that would be created from Timeout.
	HTTPClient *http.Client
}

// DefaultClientOpts is a ClientOptions object with sensible defaults.
var DefaultClientOpts = ClientOptions{
	BaseURL: DefaultBaseURL,
	Timeout: upstream.DefaultTimeout,
}

// Client is the OMDb client.
// It's safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a new OMDb client.
func NewClient(apiKey string, opts ClientOptions, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultClientOpts.BaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = upstream.NewHTTPClient(opts.Timeout)
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/") + "/",
		httpClient: opts.HTTPClient,
		logger:     logger.Named(service),
	}
}

// Search looks up titles of the given media type.
// An empty query, an unknown media type or a negative OMDb answer yield an empty result and no error.
// Errors are only returned for transport failures and unexpected responses.
func (c *Client) Search(ctx context.Context, query string, mediaType MediaType) ([]types.MetaPreviewItem, error) {
	query = strings.TrimSpace(query)
	if query == "" || mediaType.String() == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("type", mediaType.String())

	var res searchResponse
	if err := upstream.GetJSON(ctx, c.httpClient, service, c.baseURL, params, &res); err != nil {
		return nil, err
	}
	if res.Response != "True" || len(res.Search) == 0 {
		c.logger.Debug("No search results", zap.String("query", query), zap.Stringer("type", mediaType), zap.String("reason", res.Error))
		return nil, nil
	}

	items := make([]types.MetaPreviewItem, 0, len(res.Search))
	for _, item := range res.Search {
		if item.IMDbID == "" {
			continue
		}
		items = append(items, types.MetaPreviewItem{
			ID:     item.IMDbID,
			Type:   mediaType.String(),
			Name:   item.Title,
			Year:   parseYear(item.Year),
			Poster: valueOrEmpty(item.Poster),
		})
	}
	return items, nil
}

// GetMeta fetches the details of a title by its IMDb ID.
// IDs that don't start with "tt" and negative OMDb answers yield an empty MetaItem and no error,
// without sending a request in the former case.
func (c *Client) GetMeta(ctx context.Context, id string) (types.MetaItem, error) {
	if !strings.HasPrefix(id, "tt") {
		return types.MetaItem{}, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", id)
	params.Set("plot", "short")

	var res detailResponse
	if err := upstream.GetJSON(ctx, c.httpClient, service, c.baseURL, params, &res); err != nil {
		return types.MetaItem{}, err
	}
	if res.Response != "True" {
		c.logger.Debug("No meta", zap.String("id", id), zap.String("reason", res.Error))
		return types.MetaItem{}, nil
	}
	if res.IMDbID == "" || res.Type == "" {
		c.logger.Warn("Dropping meta without ID or type", zap.String("id", id))
		return types.MetaItem{}, nil
	}

	return types.MetaItem{
		ID:          res.IMDbID,
		Type:        res.Type,
		Name:        res.Title,
		Year:        parseYear(res.Year),
		Poster:      valueOrEmpty(res.Poster),
		Genres:      splitGenres(res.Genre),
		Description: valueOrEmpty(res.Plot),
	}, nil
}

// parseYear converts the leading four characters of an OMDb year to an int.
// Ranges like "2014–2016" or "2014–" result in their first year. 0 means unknown.
func parseYear(s string) int {
	if len(s) > 4 {
		s = s[:4]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return year
}

func valueOrEmpty(s string) string {
	if s == noData {
		return ""
	}
	return s
}

func splitGenres(s string) []string {
	var genres []string
	for _, g := range strings.Split(s, ", ") {
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
