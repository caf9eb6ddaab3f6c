// Package upstream contains the HTTP plumbing shared by the OMDb and Premiumize clients.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// DefaultTimeout bounds every outbound request, including reading the response body.
const DefaultTimeout = 10 * time.Second

// StatusError is returned when an upstream service answers with a non-2xx status code.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d %s", e.Service, e.StatusCode, http.StatusText(e.StatusCode))
}

// NewHTTPClient returns an HTTP client whose requests time out after timeout.
// A timeout <= 0 falls back to DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// GetJSON sends a single GET request to endpoint with the given query parameters
// and decodes the JSON response body into v.
// There are no retries. Errors never contain the query string, because it carries API keys.
func GetJSON(ctx context.Context, client *http.Client, service, endpoint string, params url.Values, v any) error {
	metrics.GetOrCreateCounter(fmt.Sprintf(`upstream_requests_total{service=%q}`, service)).Inc()
	start := time.Now()
	err := getJSON(ctx, client, service, endpoint, params, v)
	metrics.GetOrCreateHistogram(fmt.Sprintf(`upstream_request_duration_seconds{service=%q}`, service)).UpdateDuration(start)
	if err != nil {
		metrics.GetOrCreateCounter(fmt.Sprintf(`upstream_errors_total{service=%q}`, service)).Inc()
	}
	return err
}

func getJSON(ctx context.Context, client *http.Client, service, endpoint string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("couldn't create %s request: %w", service, err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("couldn't GET %s: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Service: service, StatusCode: res.StatusCode}
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("couldn't decode %s response: %w", service, err)
	}
	return nil
}
