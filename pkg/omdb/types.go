package omdb

import "strings"

// MediaType is the kind of title OMDb can filter searches by.
type MediaType int

const (
	Movie MediaType = iota + 1
	Series
)

func (mt MediaType) String() string {
	switch mt {
	case Movie:
		return "movie"
	case Series:
		return "series"
	}
	return ""
}

// ParseMediaType turns a Stremio type like "movie" into a MediaType.
func ParseMediaType(s string) (MediaType, bool) {
	switch strings.ToLower(s) {
	case "movie":
		return Movie, true
	case "series":
		return Series, true
	}
	return 0, false
}

// noData is what OMDb puts into fields it has no value for.
const noData = "N/A"

type searchResponse struct {
	Search   []searchItem `json:"Search"`
	Response string       `json:"Response"`
	Error    string       `json:"Error"`
}

type searchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type detailResponse struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	IMDbID   string `json:"imdbID"`
	Type     string `json:"Type"`
	Poster   string `json:"Poster"`
	Genre    string `json:"Genre"`
	Plot     string `json:"Plot"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}
