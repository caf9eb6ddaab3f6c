package types

// StreamItem represents a stream for a MetaItem.
// See https://github.com/Stremio/stremio-addon-sdk/blob/f6f1f2a8b627b9d4f2c62b003b251d98adadbebe/docs/api/responses/stream.md
type StreamItem struct {
	URL string `json:"url"` // URL

	// Optional
	Title string `json:"title,omitempty"` // Usually used for the stream source
}
