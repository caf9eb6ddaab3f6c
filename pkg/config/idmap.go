package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirectLink is the target of a static identifier mapping.
type DirectLink struct {
	URL string `json:"url"`
}

// IDMap maps external identifiers like "tt0133093" to direct stream URLs.
// It's loaded once and only read afterwards, so concurrent lookups are safe.
type IDMap map[string]DirectLink

// Lookup returns the URL mapped to id. Entries without a URL count as missing.
func (m IDMap) Lookup(id string) (string, bool) {
	link, ok := m[id]
	if !ok || link.URL == "" {
		return "", false
	}
	return link.URL, true
}

// LoadIDMap reads a JSON object of the form {"tt0133093": {"url": "https://..."}}.
// A missing file results in an empty map.
func LoadIDMap(path string) (IDMap, error) {
	if path == "" {
		return IDMap{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return IDMap{}, nil
		}
		return nil, fmt.Errorf("failed to read identifier map: %w", err)
	}

	m := IDMap{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse identifier map %q: %w", path, err)
	}
	return m, nil
}
