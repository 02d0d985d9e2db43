package testutil

import (
	"testing"
	"time"

	"moviehub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// User inserts a user with a unique name derived from username.
func User(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Genre(t testing.TB, db *gorm.DB, name string) *models.Genre {
	t.Helper()
	g := &models.Genre{Name: name, Slug: slug(name)}
	require.NoError(t, db.Create(g).Error)
	return g
}

func Country(t testing.TB, db *gorm.DB, name string) *models.Country {
	t.Helper()
	c := &models.Country{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Category(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slug(name)}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Movie inserts m, creating its many-to-many associations.
func Movie(t testing.TB, db *gorm.DB, m models.Movie) *models.Movie {
	t.Helper()
	if m.ReleaseYear == 0 {
		m.ReleaseYear = 2000
	}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func Person(t testing.TB, db *gorm.DB, first, last string, gender models.Gender) *models.Person {
	t.Helper()
	p := &models.Person{
		FirstName: first,
		LastName:  last,
		Birthdate: time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		Gender:    gender,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Cast adds person to movie's actors.
func Cast(t testing.TB, db *gorm.DB, movie *models.Movie, person *models.Person, role string) {
	t.Helper()
	require.NoError(t, db.Create(&models.MovieActor{MovieID: movie.ID, PersonID: person.ID, Role: &role}).Error)
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
