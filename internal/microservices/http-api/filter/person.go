package filter

import (
	"net/url"
	"strings"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

const (
	ProfileActors    = "actors"
	ProfileDirectors = "directors"
)

// Persons filters by profile, gender and first/last name.
var Persons Strategy = personStrategy{}

type personStrategy struct{}

func (personStrategy) Kind() models.TargetKind { return models.KindPerson }

func (personStrategy) Table() string { return "persons" }

func (personStrategy) SortColumns() map[string]string {
	return map[string]string{
		"id":         "id",
		"first_name": "first_name",
		"last_name":  "last_name",
		"birthdate":  "birthdate",
	}
}

func (personStrategy) DefaultOrder() []SortField {
	return []SortField{{Field: "last_name"}, {Field: "first_name"}}
}

func (personStrategy) parse(q url.Values, p *Params, errs fieldErrors) {
	switch profile := strings.TrimSpace(q.Get("profile")); profile {
	case "":
	case ProfileActors, ProfileDirectors:
		p.Profile = profile
	default:
		errs.add("profile", "must be actors or directors")
	}

	if raw := strings.TrimSpace(q.Get("gender")); raw != "" {
		g := models.Gender(strings.ToUpper(raw))
		if !g.Valid() {
			errs.add("gender", "must be one of M, F, U")
		} else {
			p.Gender = g
		}
	}
}

// Actors are persons cast in at least one movie; everyone else counts as a director.
func (personStrategy) where(db *gorm.DB, p Params) *gorm.DB {
	if p.Search != "" {
		pattern := likePattern(p.Search)
		db = db.Where(`(LOWER(persons.first_name) LIKE ? ESCAPE '\' OR LOWER(persons.last_name) LIKE ? ESCAPE '\')`,
			pattern, pattern)
	}
	switch p.Profile {
	case ProfileActors:
		db = db.Where("persons.id IN (SELECT person_id FROM movie_actors)")
	case ProfileDirectors:
		db = db.Where("persons.id NOT IN (SELECT person_id FROM movie_actors)")
	}
	if p.Gender != "" {
		db = db.Where("persons.gender = ?", p.Gender)
	}
	return db
}
