package artists

import (
	"net/url"

	"github.com/JaimeStill/promptchain/pkg/query"
	"github.com/JaimeStill/promptchain/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "artists", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("image_url", "ImageURL")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional search and ordering criteria for artist queries.
// Search matches name case-insensitively.
type Filters struct {
	Search *string           `json:"search,omitempty"`
	Sort   []query.SortField `json:"sort,omitempty"`
}

// Apply adds filter conditions and ordering to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereSearch(f.Search, "Name")
	if len(f.Sort) > 0 {
		b.OrderByFields(f.Sort)
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("search"); s != "" {
		f.Search = &s
	}
	f.Sort = query.ParseSortFields(values.Get("sort"))

	return f
}

func scanArtist(s repository.Scanner) (Artist, error) {
	var a Artist
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.ImageURL,
	)
	return a, err
}
