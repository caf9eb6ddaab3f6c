package types

// MetaPreviewItem represents a meta preview item and is meant to be used within catalog responses.
// See https://github.com/Stremio/stremio-addon-sdk/blob/f6f1f2a8b627b9d4f2c62b003b251d98adadbebe/docs/api/responses/meta.md#meta-preview-object
type MetaPreviewItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	// Optional
	Year   int    `json:"year,omitempty"`
	Poster string `json:"poster,omitempty"` // URL
}

// MetaItem represents a meta item and is meant to be used when info for a specific item was requested.
// The zero value is the "no meta" answer and gets serialized as an empty JSON object.
// See https://github.com/Stremio/stremio-addon-sdk/blob/f6f1f2a8b627b9d4f2c62b003b251d98adadbebe/docs/api/responses/meta.md
type MetaItem struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`

	// Optional
	Year        int      `json:"year,omitempty"`
	Poster      string   `json:"poster,omitempty"` // URL
	Genres      []string `json:"genres,omitempty"`
	Description string   `json:"description,omitempty"`
}

// IsEmpty reports whether m carries no data at all.
func (m MetaItem) IsEmpty() bool {
	return m.ID == "" && m.Type == "" && m.Name == "" && m.Year == 0 &&
		m.Poster == "" && len(m.Genres) == 0 && m.Description == ""
}
