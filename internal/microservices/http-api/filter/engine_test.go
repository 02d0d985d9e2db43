package filter_test

import (
	"net/url"
	"strconv"
	"testing"

	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalog struct {
	db                   *gorm.DB
	drama, scifi, comedy *models.Genre
	usa, uk              *models.Country
	bladeRunner, alien   *models.Movie
	annieHall, arrival   *models.Movie
}

func seedCatalog(t *testing.T) catalog {
	db := testutil.NewDB(t)
	c := catalog{db: db}

	c.drama = testutil.Genre(t, db, "Drama")
	c.scifi = testutil.Genre(t, db, "Sci-Fi")
	c.comedy = testutil.Genre(t, db, "Comedy")
	c.usa = testutil.Country(t, db, "USA")
	c.uk = testutil.Country(t, db, "UK")

	c.bladeRunner = testutil.Movie(t, db, models.Movie{
		Name: "Blade Runner", ReleaseYear: 1982, Rating: 8.5,
		Genres: []models.Genre{*c.drama, *c.scifi}, Countries: []models.Country{*c.usa},
	})
	c.alien = testutil.Movie(t, db, models.Movie{
		Name: "Alien", ReleaseYear: 1979, Rating: 8.0,
		Genres: []models.Genre{*c.scifi}, Countries: []models.Country{*c.uk, *c.usa},
	})
	c.annieHall = testutil.Movie(t, db, models.Movie{
		Name: "Annie Hall", ReleaseYear: 1977, Rating: 7.9,
		Genres: []models.Genre{*c.comedy, *c.drama}, Countries: []models.Country{*c.usa},
	})
	c.arrival = testutil.Movie(t, db, models.Movie{
		Name: "Arrival", ReleaseYear: 2016, Rating: 7.5,
		Genres: []models.Genre{*c.drama, *c.scifi},
	})
	return c
}

func listMovies(t *testing.T, db *gorm.DB, q url.Values) []string {
	t.Helper()
	p, err := filter.Parse(filter.Movies, q)
	require.NoError(t, err)

	var movies []models.Movie
	require.NoError(t, db.Model(&models.Movie{}).
		Scopes(filter.Where(filter.Movies, p), filter.OrderBy(filter.Movies, p)).
		Find(&movies).Error)

	names := make([]string, len(movies))
	for i, m := range movies {
		names[i] = m.Name
	}
	return names
}

func TestMovies_DefaultOrder(t *testing.T) {
	c := seedCatalog(t)
	assert.Equal(t, []string{"Alien", "Annie Hall", "Arrival", "Blade Runner"}, listMovies(t, c.db, nil))
}

func TestMovies_GenresWithinDimensionIsOr(t *testing.T) {
	c := seedCatalog(t)
	q := url.Values{"genres": {itoa(c.comedy.ID), itoa(c.scifi.ID)}}
	assert.Equal(t, []string{"Alien", "Annie Hall", "Arrival", "Blade Runner"}, listMovies(t, c.db, q))

	q = url.Values{"genres": {itoa(c.comedy.ID)}}
	assert.Equal(t, []string{"Annie Hall"}, listMovies(t, c.db, q))
}

func TestMovies_DimensionsCombineWithAnd(t *testing.T) {
	c := seedCatalog(t)

	q := url.Values{
		"genres":    {itoa(c.drama.ID)},
		"countries": {itoa(c.usa.ID)},
		"rating":    {"8"},
	}
	assert.Equal(t, []string{"Blade Runner"}, listMovies(t, c.db, q))
}

func TestMovies_NoDuplicatesAcrossMultipleMatches(t *testing.T) {
	c := seedCatalog(t)
	q := url.Values{"genres": {itoa(c.drama.ID), itoa(c.scifi.ID)}, "countries": {itoa(c.uk.ID), itoa(c.usa.ID)}}
	assert.Equal(t, []string{"Alien", "Annie Hall", "Blade Runner"}, listMovies(t, c.db, q))
}

func TestMovies_YearRange(t *testing.T) {
	c := seedCatalog(t)

	q := url.Values{"start_year": {"1979"}, "end_year": {"1982"}}
	assert.Equal(t, []string{"Alien", "Blade Runner"}, listMovies(t, c.db, q))

	q = url.Values{"start_year": {"2000"}}
	assert.Equal(t, []string{"Arrival"}, listMovies(t, c.db, q))
}

func TestMovies_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	c := seedCatalog(t)
	assert.Equal(t, []string{"Blade Runner"}, listMovies(t, c.db, url.Values{"search": {"RUNN"}}))
	assert.Empty(t, listMovies(t, c.db, url.Values{"search": {"%"}}))
}

func TestMovies_SortDescending(t *testing.T) {
	c := seedCatalog(t)
	q := url.Values{"sort": {"-rating"}}
	assert.Equal(t, []string{"Blade Runner", "Alien", "Annie Hall", "Arrival"}, listMovies(t, c.db, q))

	q = url.Values{"sort": {"release_year"}}
	assert.Equal(t, []string{"Annie Hall", "Alien", "Blade Runner", "Arrival"}, listMovies(t, c.db, q))
}

func TestMovies_CategoryAndBookmarkScopes(t *testing.T) {
	c := seedCatalog(t)
	cat := testutil.Category(t, c.db, "Classics")
	require.NoError(t, c.db.Model(c.annieHall).Update("category_id", cat.ID).Error)

	p := filter.Params{CategorySlug: cat.Slug}
	var movies []models.Movie
	require.NoError(t, c.db.Scopes(filter.Where(filter.Movies, p)).Find(&movies).Error)
	require.Len(t, movies, 1)
	assert.Equal(t, c.annieHall.ID, movies[0].ID)

	user := testutil.User(t, c.db, "alice")
	require.NoError(t, c.db.Create(&models.Bookmark{UserID: user.ID, TargetKind: models.KindMovie, TargetID: c.alien.ID}).Error)
	require.NoError(t, c.db.Create(&models.Bookmark{UserID: user.ID, TargetKind: models.KindPerson, TargetID: c.arrival.ID}).Error)

	p = filter.Params{BookmarkedBy: user.ID}
	movies = nil
	require.NoError(t, c.db.Scopes(filter.Where(filter.Movies, p)).Find(&movies).Error)
	require.Len(t, movies, 1)
	assert.Equal(t, c.alien.ID, movies[0].ID)
}

func TestPaginate(t *testing.T) {
	c := seedCatalog(t)

	var movies []models.Movie
	require.NoError(t, c.db.Scopes(filter.OrderBy(filter.Movies, filter.Params{}), filter.Paginate(2, 3)).
		Find(&movies).Error)
	require.Len(t, movies, 1)
	assert.Equal(t, "Blade Runner", movies[0].Name)
}

func TestPersons_ProfileGenderSearch(t *testing.T) {
	db := testutil.NewDB(t)
	ford := testutil.Person(t, db, "Harrison", "Ford", models.GenderMale)
	weaver := testutil.Person(t, db, "Sigourney", "Weaver", models.GenderFemale)
	testutil.Person(t, db, "Ridley", "Scott", models.GenderMale)
	testutil.Person(t, db, "Kathryn", "Bigelow", models.GenderFemale)

	movie := testutil.Movie(t, db, models.Movie{Name: "Alien"})
	testutil.Cast(t, db, movie, weaver, "Ripley")
	otherMovie := testutil.Movie(t, db, models.Movie{Name: "Blade Runner"})
	testutil.Cast(t, db, otherMovie, ford, "Deckard")

	list := func(q url.Values) []string {
		p, err := filter.Parse(filter.Persons, q)
		require.NoError(t, err)
		var persons []models.Person
		require.NoError(t, db.Scopes(filter.Where(filter.Persons, p), filter.OrderBy(filter.Persons, p)).
			Find(&persons).Error)
		out := make([]string, len(persons))
		for i, p := range persons {
			out[i] = p.LastName
		}
		return out
	}

	assert.Equal(t, []string{"Bigelow", "Ford", "Scott", "Weaver"}, list(nil))
	assert.Equal(t, []string{"Ford", "Weaver"}, list(url.Values{"profile": {"actors"}}))
	assert.Equal(t, []string{"Bigelow", "Scott"}, list(url.Values{"profile": {"directors"}}))
	assert.Equal(t, []string{"Bigelow"}, list(url.Values{"profile": {"directors"}, "gender": {"F"}}))
	assert.Equal(t, []string{"Weaver"}, list(url.Values{"search": {"sigour"}}))
	assert.Equal(t, []string{"Scott"}, list(url.Values{"search": {"SCOTT"}}))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
