package stremio

import (
	"net/url"
	"strings"
)

// parseExtras parses the "extra" path segment of a catalog request, like "search=The%20Matrix.json"
// or "genre=Action&skip=100.json".
func parseExtras(s string) (url.Values, error) {
	s = strings.TrimSuffix(s, ".json")
	if s == "" {
		return url.Values{}, nil
	}
	return url.ParseQuery(s)
}

// unescapeParam undoes percent-encoding of a route parameter, returning it unchanged if it isn't valid.
func unescapeParam(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
