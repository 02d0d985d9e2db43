package service

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

// OverviewSize is how many bookmarks of each kind the overview shows.
const OverviewSize = 5

type BookmarkService interface {
	ToggleBookmark(ctx context.Context, userID string, target models.Target) (*dto.BookmarkResponse, error)
	IsBookmarked(ctx context.Context, userID string, target models.Target) (bool, error)
	Overview(ctx context.Context, userID string) (*dto.BookmarkOverview, error)
	Movies(ctx context.Context, userID string, p filter.Params) (*dto.ListPage[dto.MovieListItem], error)
	Persons(ctx context.Context, userID string, p filter.Params) (*dto.ListPage[dto.PersonListItem], error)
}

type bookmarkService struct {
	repo    repository.BookmarkRepository
	targets targetLookup
	movies  MovieService
	persons PersonService
	// overview lists use their own small page size
	overviewMovies  MovieService
	overviewPersons PersonService
}

// NewBookmarkService takes the list services twice: once at the regular
// page size and once at OverviewSize.
func NewBookmarkService(
	repo repository.BookmarkRepository,
	targets targetLookup,
	movies, overviewMovies MovieService,
	persons, overviewPersons PersonService,
) BookmarkService {
	return &bookmarkService{
		repo:            repo,
		targets:         targets,
		movies:          movies,
		persons:         persons,
		overviewMovies:  overviewMovies,
		overviewPersons: overviewPersons,
	}
}

func (s *bookmarkService) ToggleBookmark(ctx context.Context, userID string, target models.Target) (*dto.BookmarkResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !target.Kind.Bookmarkable() {
		return nil, ErrInvalidTarget
	}
	ok, err := s.targets.Exists(ctx, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", target, ErrNotFound)
	}

	present, err := s.repo.Toggle(ctx, userID, target)
	if err != nil {
		return nil, translate(err, "bookmark")
	}
	return &dto.BookmarkResponse{Kind: target.Kind, ID: target.ID, Bookmarked: present}, nil
}

func (s *bookmarkService) IsBookmarked(ctx context.Context, userID string, target models.Target) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, target)
}

func (s *bookmarkService) Overview(ctx context.Context, userID string) (*dto.BookmarkOverview, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	p := filter.Params{Page: 1, BookmarkedBy: userID}

	movies, err := s.overviewMovies.List(ctx, p, userID)
	if err != nil {
		return nil, err
	}
	persons, err := s.overviewPersons.List(ctx, p, userID)
	if err != nil {
		return nil, err
	}
	return &dto.BookmarkOverview{
		Movies:       movies.Results,
		MoviesTotal:  movies.Pagination.Total,
		Persons:      persons.Results,
		PersonsTotal: persons.Pagination.Total,
	}, nil
}

func (s *bookmarkService) Movies(ctx context.Context, userID string, p filter.Params) (*dto.ListPage[dto.MovieListItem], error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	p.BookmarkedBy = userID
	return s.movies.List(ctx, p, userID)
}

func (s *bookmarkService) Persons(ctx context.Context, userID string, p filter.Params) (*dto.ListPage[dto.PersonListItem], error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	p.BookmarkedBy = userID
	return s.persons.List(ctx, p, userID)
}
