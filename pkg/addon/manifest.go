package addon

import (
	"github.com/xybydy/pmcloud-addon/types"
)

// Version is the addon version announced in the manifest.
var Version = "1.1.0"

// Manifest returns the addon manifest.
// The library catalog is only announced when Premiumize is configured.
func (a *Addon) Manifest() types.Manifest {
	catalogs := []types.CatalogItem{
		{
			Type:  "movie",
			ID:    CatalogSearchMovie,
			Name:  "Search Movies",
			Extra: []types.ExtraItem{{Name: "search", IsRequired: true}},
		},
		{
			Type:  "series",
			ID:    CatalogSearchSeries,
			Name:  "Search Series",
			Extra: []types.ExtraItem{{Name: "search", IsRequired: true}},
		},
	}
	if a.cfg.HasPremiumize() {
		catalogs = append(catalogs, types.CatalogItem{
			Type: "movie",
			ID:   CatalogLibrary,
			Name: "My Library (PM Cloud)",
		})
	}

	m := types.Manifest{
		ID:          "org.example.premiumize.legal",
		Name:        "Premiumize (Legal)",
		Description: "IMDb posters via OMDb + YOUR licensed streams (direct URLs or Premiumize Cloud files).",
		Version:     Version,

		ResourceItems: []types.ResourceItem{
			{Name: "catalog", Types: mediaTypes},
			{Name: "meta", Types: mediaTypes, IDprefixes: []string{"tt"}},
			{Name: "stream", Types: mediaTypes, IDprefixes: []string{"tt"}},
		},
		Types:    mediaTypes,
		Catalogs: catalogs,

		IDprefixes: []string{"tt"},
	}
	return m.Clone()
}
