package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xybydy/pmcloud-addon/types"
)

func TestManifestClone(t *testing.T) {
	// Test empty struct to make sure empty slices are nil and not slices with 0 elements.
	m := types.Manifest{}
	require.Equal(t, m, m.Clone())

	// Fill every field to ensure initial equality after the clone.
	m = types.Manifest{
		ID:          "org.example.premiumize.legal",
		Name:        "Premiumize (Legal)",
		Description: "Some addon",
		Version:     "1.1.0",

		ResourceItems: []types.ResourceItem{
			{
				Name:  "stream",
				Types: []string{"movie"},

				IDprefixes: []string{"tt"},
			},
		},

		Types: []string{"movie", "series"},
		Catalogs: []types.CatalogItem{
			{
				Type: "movie",
				ID:   "search-movie",
				Name: "Search Movies",

				Extra: []types.ExtraItem{
					{
						Name: "search",

						IsRequired:   true,
						Options:      []string{"foo"},
						OptionsLimit: 123,
					},
				},
			},
		},

		IDprefixes: []string{"tt"},
		Logo:       "https://example.com/logo.png",
		BehaviorHints: types.ManifestBehaviorHints{
			Adult: true,
			P2P:   true,
		},
	}
	require.Equal(t, m, m.Clone())

	// Each scenario alters a single non-simple field of the clone.
	tests := []struct {
		name string
		f    func(m *types.Manifest)
	}{
		{
			name: "ID",
			f:    func(m *types.Manifest) { m.ID = "changed" },
		},
		{
			name: "ResourceItems.Name",
			f:    func(m *types.Manifest) { m.ResourceItems[0].Name = "changed" },
		},
		{
			name: "ResourceItems.Types",
			f:    func(m *types.Manifest) { m.ResourceItems[0].Types[0] = "changed" },
		},
		{
			name: "ResourceItems.IDprefixes",
			f:    func(m *types.Manifest) { m.ResourceItems[0].IDprefixes[0] = "changed" },
		},
		{
			name: "Types",
			f:    func(m *types.Manifest) { m.Types[0] = "changed" },
		},
		{
			name: "Catalogs.Type",
			f:    func(m *types.Manifest) { m.Catalogs[0].Type = "changed" },
		},
		{
			name: "Catalogs.Extra.Name",
			f:    func(m *types.Manifest) { m.Catalogs[0].Extra[0].Name = "changed" },
		},
		{
			name: "Catalogs.Extra.Options",
			f:    func(m *types.Manifest) { m.Catalogs[0].Extra[0].Options[0] = "changed" },
		},
		{
			name: "IDprefixes",
			f:    func(m *types.Manifest) { m.IDprefixes[0] = "changed" },
		},
		{
			name: "BehaviorHints",
			f:    func(m *types.Manifest) { m.BehaviorHints.Adult = false },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m2 := m.Clone()
			test.f(&m2)
			require.NotEqual(t, m, m2)
		})
	}
}

func TestManifestHasCatalog(t *testing.T) {
	m := types.Manifest{
		Catalogs: []types.CatalogItem{
			{Type: "movie", ID: "search-movie"},
			{Type: "series", ID: "search-series"},
		},
	}
	require.True(t, m.HasCatalog("movie", "search-movie"))
	require.True(t, m.HasCatalog("series", "search-series"))
	require.False(t, m.HasCatalog("series", "search-movie"))
	require.False(t, m.HasCatalog("movie", "pm-library"))
}
