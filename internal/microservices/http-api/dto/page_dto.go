package dto

import (
	"moviehub/internal/microservices/http-api/filter"
)

// ListPage is the common shape of every paginated listing.
type ListPage[T any] struct {
	Title      string      `json:"title,omitempty"`
	Results    []T         `json:"results"`
	Pagination filter.Page `json:"pagination"`
	Filters    Filters     `json:"filters"`
}

// Filters echoes the active query so clients can render the current state.
type Filters struct {
	Genres    []int64  `json:"genres,omitempty"`
	Countries []int64  `json:"countries,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	StartYear *int     `json:"start_year,omitempty"`
	EndYear   *int     `json:"end_year,omitempty"`
	Profile   string   `json:"profile,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Search    string   `json:"search,omitempty"`
	Sort      []string `json:"sort,omitempty"`
	Category  string   `json:"category,omitempty"`
}

func FiltersFromParams(p filter.Params) Filters {
	f := Filters{
		Genres:    p.Genres,
		Countries: p.Countries,
		Rating:    p.MinRating,
		StartYear: p.StartYear,
		EndYear:   p.EndYear,
		Profile:   p.Profile,
		Gender:    string(p.Gender),
		Search:    p.Search,
		Category:  p.CategorySlug,
	}
	for _, s := range p.Sort {
		f.Sort = append(f.Sort, s.String())
	}
	return f
}

// ErrorResponse documents the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
