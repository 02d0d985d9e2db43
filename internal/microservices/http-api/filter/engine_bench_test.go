package filter_test

import (
	"fmt"
	"net/url"
	"testing"

	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/testutil"
)

func BenchmarkParseMovies(b *testing.B) {
	q := url.Values{
		"genres":     {"1,2,3"},
		"countries":  {"4"},
		"rating":     {"7.5"},
		"start_year": {"1970"},
		"end_year":   {"1999"},
		"sort":       {"-rating", "name"},
		"page":       {"2"},
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := filter.Parse(filter.Movies, q); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMovieQuery runs a filtered, sorted page over a few hundred movies.
func BenchmarkMovieQuery(b *testing.B) {
	db := testutil.NewDB(b)
	genres := []*models.Genre{
		testutil.Genre(b, db, "Drama"),
		testutil.Genre(b, db, "Sci-Fi"),
		testutil.Genre(b, db, "Comedy"),
	}
	for i := range 300 {
		testutil.Movie(b, db, models.Movie{
			Name:        fmt.Sprintf("Movie %03d", i),
			ReleaseYear: 1950 + i%70,
			Rating:      float64(i%100) / 10,
			Genres:      []models.Genre{*genres[i%3], *genres[(i+1)%3]},
		})
	}

	p, err := filter.Parse(filter.Movies, url.Values{
		"genres": {fmt.Sprint(genres[0].ID)},
		"rating": {"5"},
		"sort":   {"-rating"},
	})
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		var out []models.Movie
		err := db.Model(&models.Movie{}).
			Scopes(filter.Where(filter.Movies, p), filter.OrderBy(filter.Movies, p), filter.Paginate(1, filter.DefaultPageSize)).
			Find(&out).Error
		if err != nil {
			b.Fatal(err)
		}
	}
}
