package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xybydy/pmcloud-addon/types"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, body string) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient("testing", ClientOptions{BaseURL: srv.URL}, zaptest.NewLogger(t)), &calls
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{"apikey": q.Get("apikey"), "s": q.Get("s"), "type": q.Get("type")}
		_, _ = w.Write([]byte(`{
			"Search": [{"Title": "The Matrix", "Year": "1999", "imdbID": "tt0133093", "Type": "movie", "Poster": "http://x/p.jpg"}],
			"totalResults": "1",
			"Response": "True"
		}`))
	}))
	defer srv.Close()
	c := NewClient("testing", ClientOptions{BaseURL: srv.URL}, zaptest.NewLogger(t))

	got, err := c.Search(context.Background(), "Matrix", Movie)
	require.NoError(t, err)
	require.Equal(t, []types.MetaPreviewItem{
		{ID: "tt0133093", Type: "movie", Name: "The Matrix", Year: 1999, Poster: "http://x/p.jpg"},
	}, got)
	require.Equal(t, map[string]string{"apikey": "testing", "s": "Matrix", "type": "movie"}, gotQuery)
}

func TestSearchMapping(t *testing.T) {
	c, _ := newTestClient(t, `{
		"Search": [
			{"Title": "Show", "Year": "2014–2016", "imdbID": "tt1000001", "Type": "series", "Poster": "N/A"},
			{"Title": "No ID", "Year": "2001", "imdbID": "", "Type": "series", "Poster": "N/A"},
			{"Title": "No year", "Year": "", "imdbID": "tt1000002", "Type": "series", "Poster": ""}
		],
		"Response": "True"
	}`)

	got, err := c.Search(context.Background(), "show", Series)
	require.NoError(t, err)
	require.Equal(t, []types.MetaPreviewItem{
		{ID: "tt1000001", Type: "series", Name: "Show", Year: 2014},
		{ID: "tt1000002", Type: "series", Name: "No year"},
	}, got)
}

func TestSearchNegativeResponse(t *testing.T) {
	c, calls := newTestClient(t, `{"Response": "False", "Error": "Movie not found!"}`)

	got, err := c.Search(context.Background(), "asdfgh", Movie)
	require.NoError(t, err)
	require.Empty(t, got)
	require.EqualValues(t, 1, *calls)
}

func TestSearchSkipsRequest(t *testing.T) {
	c, calls := newTestClient(t, `{}`)

	tests := map[string]struct {
		query     string
		mediaType MediaType
	}{
		"empty query":   {query: "", mediaType: Movie},
		"blank query":   {query: "   ", mediaType: Series},
		"unknown type":  {query: "Matrix", mediaType: MediaType(0)},
		"channel value": {query: "Matrix", mediaType: MediaType(7)},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := c.Search(context.Background(), tc.query, tc.mediaType)
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
	require.EqualValues(t, 0, *calls)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	c := NewClient("testing", ClientOptions{BaseURL: srv.URL}, zaptest.NewLogger(t))

	got, err := c.Search(context.Background(), "Matrix", Movie)
	require.Error(t, err)
	require.Empty(t, got)
}

func TestGetMeta(t *testing.T) {
	var gotPlot, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlot = r.URL.Query().Get("plot")
		gotID = r.URL.Query().Get("i")
		_, _ = w.Write([]byte(`{
			"Title": "Interstellar",
			"Year": "2014",
			"Genre": "Adventure, Drama, Sci-Fi",
			"Plot": "A team of explorers travel through a wormhole in space.",
			"Poster": "https://img/p.jpg",
			"imdbID": "tt0816692",
			"Type": "movie",
			"Response": "True"
		}`))
	}))
	defer srv.Close()
	c := NewClient("testing", ClientOptions{BaseURL: srv.URL}, zaptest.NewLogger(t))

	got, err := c.GetMeta(context.Background(), "tt0816692")
	require.NoError(t, err)
	require.Equal(t, types.MetaItem{
		ID:          "tt0816692",
		Type:        "movie",
		Name:        "Interstellar",
		Year:        2014,
		Poster:      "https://img/p.jpg",
		Genres:      []string{"Adventure", "Drama", "Sci-Fi"},
		Description: "A team of explorers travel through a wormhole in space.",
	}, got)
	require.Equal(t, "short", gotPlot)
	require.Equal(t, "tt0816692", gotID)
}

func TestGetMetaNoData(t *testing.T) {
	c, _ := newTestClient(t, `{
		"Title": "Obscure",
		"Year": "2003–",
		"Genre": "",
		"Plot": "N/A",
		"Poster": "N/A",
		"imdbID": "tt0000002",
		"Type": "series",
		"Response": "True"
	}`)

	got, err := c.GetMeta(context.Background(), "tt0000002")
	require.NoError(t, err)
	require.Equal(t, types.MetaItem{ID: "tt0000002", Type: "series", Name: "Obscure", Year: 2003}, got)
}

func TestGetMetaNegativeResponse(t *testing.T) {
	c, _ := newTestClient(t, `{"Response": "False", "Error": "Incorrect IMDb ID."}`)

	got, err := c.GetMeta(context.Background(), "tt0000001")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestGetMetaMissingIdentity(t *testing.T) {
	c, _ := newTestClient(t, `{"Title": "Broken", "Response": "True"}`)

	got, err := c.GetMeta(context.Background(), "tt0000003")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestGetMetaRejectsForeignID(t *testing.T) {
	c, calls := newTestClient(t, `{}`)

	got, err := c.GetMeta(context.Background(), "pm:abc123")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
	require.EqualValues(t, 0, *calls)
}

func TestParseYear(t *testing.T) {
	tests := map[string]int{
		"2014":      2014,
		"2014–2016": 2014,
		"2014–":     2014,
		"":          0,
		"N/A":       0,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, parseYear(in))
		})
	}
}

func TestParseMediaType(t *testing.T) {
	mt, ok := ParseMediaType("movie")
	require.True(t, ok)
	require.Equal(t, Movie, mt)

	mt, ok = ParseMediaType("series")
	require.True(t, ok)
	require.Equal(t, Series, mt)

	_, ok = ParseMediaType("channel")
	require.False(t, ok)
}
