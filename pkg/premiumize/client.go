// Package premiumize lists files in a Premiumize cloud folder and resolves their download links.
package premiumize

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xybydy/pmcloud-addon/pkg/upstream"
	"go.uber.org/zap"
)

const service = "premiumize"

// DefaultBaseURL is the Premiumize API root.
const DefaultBaseURL = "https://www.premiumize.me/api"

const statusSuccess = "success"

// Kind is the type of an item in a cloud folder.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// File is an item of a cloud folder listing.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

type folderListResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Content []File `json:"content"`
}

type itemDetailsResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Location   string `json:"location"`
	StreamLink string `json:"stream_link"`
}

// ClientOptions are the options for the Premiumize client.
type ClientOptions struct {
	// The API root.
	// Default "https://www.premiumize.me/api".
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

// Client talks to the Premiumize API on behalf of a single customer.
// It's safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a new Premiumize client for the given API key.
func NewClient(apiKey string, opts ClientOptions, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultClientOpts.BaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = upstream.NewHTTPClient(opts.Timeout)
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		logger:     logger.Named(service),
	}
}

// ListFolder returns the files (not sub folders) of the given folder.
// A non-success API status yields an empty result and no error.
func (c *Client) ListFolder(ctx context.Context, folderID string) ([]File, error) {
	var res folderListResponse
	if err := upstream.GetJSON(ctx, c.httpClient, service, c.baseURL+"/folder/list", c.params(folderID), &res); err != nil {
		return nil, err
	}
	if res.Status != statusSuccess {
		c.logger.Warn("Folder listing failed", zap.String("folderID", folderID), zap.String("status", res.Status), zap.String("message", res.Message))
		return nil, nil
	}

	files := make([]File, 0, len(res.Content))
	for _, item := range res.Content {
		if item.Kind == KindFile {
			files = append(files, item)
		}
	}
	return files, nil
}

// GetFileLink returns the direct download link of a file, or an empty string if there's none.
// The "location" field is preferred over "stream_link".
func (c *Client) GetFileLink(ctx context.Context, fileID string) (string, error) {
	var res itemDetailsResponse
	if err := upstream.GetJSON(ctx, c.httpClient, service, c.baseURL+"/item/details", c.params(fileID), &res); err != nil {
		return "", err
	}
	if res.Status != statusSuccess {
		c.logger.Warn("Item details failed", zap.String("fileID", fileID), zap.String("status", res.Status), zap.String("message", res.Message))
		return "", nil
	}
	if res.Location != "" {
		return res.Location, nil
	}
	return res.StreamLink, nil
}

func (c *Client) params(id string) url.Values {
	params := url.Values{}
	params.Set("customer_id", c.apiKey)
	params.Set("id", id)
	return params
}
