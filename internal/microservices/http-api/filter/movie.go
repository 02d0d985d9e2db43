package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// Movies filters by genres, countries, minimum rating, release year range and name.
var Movies Strategy = movieStrategy{}

type movieStrategy struct{}

func (movieStrategy) Kind() models.TargetKind { return models.KindMovie }

func (movieStrategy) Table() string { return "movies" }

func (movieStrategy) SortColumns() map[string]string {
	return map[string]string{
		"id":           "id",
		"name":         "name",
		"release_year": "release_year",
		"rating":       "rating",
		"pub_date":     "pub_date",
	}
}

func (movieStrategy) DefaultOrder() []SortField {
	return []SortField{{Field: "name"}, {Field: "release_year"}}
}

func (movieStrategy) parse(q url.Values, p *Params, errs fieldErrors) {
	p.Genres = parseIDs(q, "genres", errs)
	p.Countries = parseIDs(q, "countries", errs)

	if raw := strings.TrimSpace(q.Get("rating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 10 {
			errs.add("rating", "must be a number between 0 and 10")
		} else {
			p.MinRating = &v
		}
	}

	p.StartYear = parseInt(q, "start_year", errs)
	p.EndYear = parseInt(q, "end_year", errs)
	if p.StartYear != nil && p.EndYear != nil && *p.StartYear > *p.EndYear {
		errs.add("start_year", "must not be after end_year")
	}
}

func (movieStrategy) where(db *gorm.DB, p Params) *gorm.DB {
	if len(p.Genres) > 0 {
		db = db.Where("movies.id IN (SELECT movie_id FROM movie_genres WHERE genre_id IN ?)", p.Genres)
	}
	if len(p.Countries) > 0 {
		db = db.Where("movies.id IN (SELECT movie_id FROM movie_countries WHERE country_id IN ?)", p.Countries)
	}
	if p.MinRating != nil {
		db = db.Where("movies.rating >= ?", *p.MinRating)
	}
	if p.StartYear != nil {
		db = db.Where("movies.release_year >= ?", *p.StartYear)
	}
	if p.EndYear != nil {
		db = db.Where("movies.release_year <= ?", *p.EndYear)
	}
	if p.Search != "" {
		db = db.Where(`LOWER(movies.name) LIKE ? ESCAPE '\'`, likePattern(p.Search))
	}
	if p.CategorySlug != "" {
		db = db.Where("movies.category_id IN (SELECT id FROM categories WHERE slug = ?)", p.CategorySlug)
	}
	return db
}
