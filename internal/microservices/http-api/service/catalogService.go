package service

import (
	"context"
	"strings"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

// SidebarLatest is how many recent movies the sidebar shows.
const SidebarLatest = 5

type CatalogService interface {
	Genres(ctx context.Context) ([]dto.GenreResponse, error)
	Countries(ctx context.Context) ([]dto.CountryResponse, error)
	Categories(ctx context.Context) ([]dto.CategoryResponse, error)
	Sidebar(ctx context.Context) (*dto.Sidebar, error)

	Genre(ctx context.Context, id int64) (*dto.GenreResponse, error)
	Country(ctx context.Context, id int64) (*dto.CountryResponse, error)
	Category(ctx context.Context, slug string) (*dto.CategoryResponse, error)

	CreateGenre(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	CreateCountry(ctx context.Context, req dto.CreateCountryDTO) (*dto.CountryResponse, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type catalogService struct {
	repo      *repository.CatalogRepo
	movieRepo *repository.MovieRepo
}

func NewCatalogService(repo *repository.CatalogRepo, movieRepo *repository.MovieRepo) CatalogService {
	return &catalogService{repo: repo, movieRepo: movieRepo}
}

func (s *catalogService) Genres(ctx context.Context) ([]dto.GenreResponse, error) {
	list, err := s.repo.Genres(ctx)
	if err != nil {
		return nil, err
	}
	return dto.GenresFromModels(list), nil
}

func (s *catalogService) Countries(ctx context.Context) ([]dto.CountryResponse, error) {
	list, err := s.repo.Countries(ctx)
	if err != nil {
		return nil, err
	}
	return dto.CountriesFromModels(list), nil
}

func (s *catalogService) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return dto.CategoriesFromModels(list), nil
}

// Sidebar collects the filter options and latest movies shown next to listings.
func (s *catalogService) Sidebar(ctx context.Context) (*dto.Sidebar, error) {
	genres, err := s.Genres(ctx)
	if err != nil {
		return nil, err
	}
	countries, err := s.Countries(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.movieRepo.Latest(ctx, SidebarLatest)
	if err != nil {
		return nil, err
	}
	return &dto.Sidebar{
		Genres:     genres,
		Countries:  countries,
		Categories: categories,
		LastMovies: dto.MovieBriefsFromModels(latest),
	}, nil
}

func (s *catalogService) Genre(ctx context.Context, id int64) (*dto.GenreResponse, error) {
	g, err := s.repo.GenreByID(ctx, id)
	if err != nil {
		return nil, translate(err, "genre")
	}
	resp := dto.GenreFromModel(*g)
	return &resp, nil
}

func (s *catalogService) Country(ctx context.Context, id int64) (*dto.CountryResponse, error) {
	c, err := s.repo.CountryByID(ctx, id)
	if err != nil {
		return nil, translate(err, "country")
	}
	resp := dto.CountryFromModel(*c)
	return &resp, nil
}

func (s *catalogService) Category(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	c, err := s.repo.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, "category")
	}
	resp := dto.CategoryFromModel(*c)
	return &resp, nil
}

func (s *catalogService) CreateGenre(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	g := &models.Genre{Name: strings.TrimSpace(req.Name), Slug: slugOrName(req.Slug, req.Name)}
	if err := s.repo.CreateGenre(ctx, g); err != nil {
		return nil, translate(err, "genre")
	}
	resp := dto.GenreFromModel(*g)
	return &resp, nil
}

func (s *catalogService) CreateCountry(ctx context.Context, req dto.CreateCountryDTO) (*dto.CountryResponse, error) {
	c := &models.Country{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.CreateCountry(ctx, c); err != nil {
		return nil, translate(err, "country")
	}
	resp := dto.CountryFromModel(*c)
	return &resp, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	c := &models.Category{Name: strings.TrimSpace(req.Name), Slug: slugOrName(req.Slug, req.Name)}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, translate(err, "category")
	}
	resp := dto.CategoryFromModel(*c)
	return &resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	return translate(s.repo.DeleteCategory(ctx, slug), "category")
}

func slugOrName(slug, name string) string {
	if slug = strings.TrimSpace(slug); slug != "" {
		return slugify(slug)
	}
	return slugify(name)
}
