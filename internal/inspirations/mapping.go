package inspirations

import (
	"net/url"

	"github.com/JaimeStill/promptchain/pkg/query"
	"github.com/JaimeStill/promptchain/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "inspirations", "i").
	Project("id", "ID").
	Project("title", "Title").
	Project("image_url", "ImageURL").
	Project("prompt", "Prompt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional search and ordering criteria for inspiration queries.
// Search matches title and prompt case-insensitively.
type Filters struct {
	Search *string           `json:"search,omitempty"`
	Sort   []query.SortField `json:"sort,omitempty"`
}

// Apply adds filter conditions and ordering to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereSearch(f.Search, "Title", "Prompt")
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

func scanInspiration(s repository.Scanner) (Inspiration, error) {
	var i Inspiration
	err := s.Scan(
		&i.ID,
		&i.Title,
		&i.ImageURL,
		&i.Prompt,
		&i.CreatedAt,
	)
	return i, err
}
