package dto

import (
	"time"

	"moviehub/internal/microservices/http-api/models"
)

// ActorInput is one cast entry of a movie being created.
type ActorInput struct {
	PersonID int64   `json:"person_id" binding:"required,gt=0"`
	Role     *string `json:"role,omitempty" binding:"omitempty,max=100"`
}

// CreateMovieDTO used for POST /movie/create/. Form posts send cast members
// as repeated `actors` ids; JSON bodies may carry roles in `actors`.
type CreateMovieDTO struct {
	Name        string       `json:"name" form:"name" binding:"required,max=100"`
	Description *string      `json:"description,omitempty" form:"description"`
	ReleaseYear int          `json:"release_year" form:"release_year" binding:"required,min=1888,notfuture"`
	CategoryID  *int64       `json:"category,omitempty" form:"category" binding:"omitempty,gt=0"`
	GenreIDs    []int64      `json:"genres" form:"genres" binding:"dive,gt=0"`
	CountryIDs  []int64      `json:"countries" form:"countries" binding:"dive,gt=0"`
	DirectorIDs []int64      `json:"directors" form:"directors" binding:"dive,gt=0"`
	Actors      []ActorInput `json:"actors" form:"-" binding:"dive"`
	ActorIDs    []int64      `json:"-" form:"actors" binding:"dive,gt=0"`
}

// ToModel builds the movie with ID-only references to its links.
func (d CreateMovieDTO) ToModel() models.Movie {
	m := models.Movie{
		Name:        d.Name,
		Description: d.Description,
		ReleaseYear: d.ReleaseYear,
		CategoryID:  d.CategoryID,
	}
	for _, id := range d.GenreIDs {
		m.Genres = append(m.Genres, models.Genre{ID: id})
	}
	for _, id := range d.CountryIDs {
		m.Countries = append(m.Countries, models.Country{ID: id})
	}
	for _, id := range d.DirectorIDs {
		m.Directors = append(m.Directors, models.Person{ID: id})
	}
	for _, a := range d.Actors {
		m.Actors = append(m.Actors, models.MovieActor{PersonID: a.PersonID, Role: a.Role})
	}
	for _, id := range d.ActorIDs {
		m.Actors = append(m.Actors, models.MovieActor{PersonID: id})
	}
	return m
}

// MovieBrief is the smallest movie reference, used in sidebars and filmographies.
type MovieBrief struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ReleaseYear int     `json:"release_year"`
	Poster      *string `json:"poster,omitempty"`
}

// MovieListItem is one row of a movie listing.
type MovieListItem struct {
	MovieBrief
	Rating        float64  `json:"rating"`
	Category      *string  `json:"category,omitempty"`
	Genres        []string `json:"genres"`
	IsInBookmarks bool     `json:"is_in_bookmarks"`
}

// ActorCredit is a cast member and the role played.
type ActorCredit struct {
	Person PersonBrief `json:"person"`
	Role   *string     `json:"role,omitempty"`
}

// VoteSummary is what a detail view shows about reactions on one target.
type VoteSummary struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	Score    int64 `json:"score"`
	MyVote   *int  `json:"my_vote"`
}

// MovieDetail is the movie page.
type MovieDetail struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	ReleaseYear   int               `json:"release_year"`
	Poster        *string           `json:"poster,omitempty"`
	Rating        float64           `json:"rating"`
	PubDate       time.Time         `json:"pub_date"`
	Category      *CategoryResponse `json:"category,omitempty"`
	Genres        []GenreResponse   `json:"genres"`
	Countries     []CountryResponse `json:"countries"`
	Directors     []PersonBrief     `json:"directors"`
	Actors        []ActorCredit     `json:"actors"`
	Votes         VoteSummary       `json:"votes"`
	IsInBookmarks bool              `json:"is_in_bookmarks"`
	MyRating      *int              `json:"my_rating"`
	CommentsCount int               `json:"comments_count"`
	Comments      []CommentNode     `json:"comments"`
}

func MovieBriefFromModel(m models.Movie) MovieBrief {
	return MovieBrief{ID: m.ID, Name: m.Name, ReleaseYear: m.ReleaseYear, Poster: m.Poster}
}

func MovieBriefsFromModels(list []models.Movie) []MovieBrief {
	out := make([]MovieBrief, len(list))
	for i, m := range list {
		out[i] = MovieBriefFromModel(m)
	}
	return out
}

func MovieListItemFromModel(m models.Movie) MovieListItem {
	item := MovieListItem{
		MovieBrief: MovieBriefFromModel(m),
		Rating:     m.Rating,
		Genres:     make([]string, 0, len(m.Genres)),
	}
	if m.Category != nil {
		item.Category = &m.Category.Name
	}
	for _, g := range m.Genres {
		item.Genres = append(item.Genres, g.Name)
	}
	return item
}

// MovieDetailFromModel fills everything stored on the movie itself; the
// caller adds viewer-specific fields and the comment thread.
func MovieDetailFromModel(m models.Movie) MovieDetail {
	d := MovieDetail{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Poster:      m.Poster,
		Rating:      m.Rating,
		PubDate:     m.PubDate,
		Genres:      GenresFromModels(m.Genres),
		Countries:   CountriesFromModels(m.Countries),
		Directors:   make([]PersonBrief, len(m.Directors)),
		Actors:      make([]ActorCredit, 0, len(m.Actors)),
		Comments:    []CommentNode{},
	}
	if m.Category != nil {
		c := CategoryFromModel(*m.Category)
		d.Category = &c
	}
	for i, p := range m.Directors {
		d.Directors[i] = PersonBriefFromModel(p)
	}
	for _, a := range m.Actors {
		if a.Person == nil {
			continue
		}
		d.Actors = append(d.Actors, ActorCredit{Person: PersonBriefFromModel(*a.Person), Role: a.Role})
	}
	return d
}
