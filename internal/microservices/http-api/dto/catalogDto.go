package dto

import "moviehub/internal/microservices/http-api/models"

// CreateGenreDTO for POST /genre/create/
type CreateGenreDTO struct {
	Name string `json:"name" form:"name" binding:"required,max=100"`
	Slug string `json:"slug" form:"slug" binding:"omitempty,max=100"`
}

// CreateCategoryDTO for POST /category/create/
type CreateCategoryDTO struct {
	Name string `json:"name" form:"name" binding:"required,max=100"`
	Slug string `json:"slug" form:"slug" binding:"omitempty,max=100"`
}

// CreateCountryDTO for POST /country/create/
type CreateCountryDTO struct {
	Name string `json:"name" form:"name" binding:"required,max=100"`
}

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CountryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name, Slug: g.Slug}
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func CountryFromModel(c models.Country) CountryResponse {
	return CountryResponse{ID: c.ID, Name: c.Name}
}

func GenresFromModels(list []models.Genre) []GenreResponse {
	out := make([]GenreResponse, len(list))
	for i, g := range list {
		out[i] = GenreFromModel(g)
	}
	return out
}

func CategoriesFromModels(list []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(list))
	for i, c := range list {
		out[i] = CategoryFromModel(c)
	}
	return out
}

func CountriesFromModels(list []models.Country) []CountryResponse {
	out := make([]CountryResponse, len(list))
	for i, c := range list {
		out[i] = CountryFromModel(c)
	}
	return out
}

// Sidebar lists the lookup values a listing page offers as filters.
type Sidebar struct {
	Genres     []GenreResponse    `json:"genres"`
	Countries  []CountryResponse  `json:"countries"`
	Categories []CategoryResponse `json:"categories"`
	LastMovies []MovieBrief       `json:"last_movies"`
}
