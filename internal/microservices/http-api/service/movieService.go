package service

import (
	"context"
	"errors"
	"fmt"

	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

type MovieService interface {
	List(ctx context.Context, p filter.Params, viewerID string) (*dto.ListPage[dto.MovieListItem], error)
	Detail(ctx context.Context, id int64, viewer Viewer) (*dto.MovieDetail, error)
	Create(ctx context.Context, req dto.CreateMovieDTO, poster *string) (*dto.MovieDetail, error)
	Delete(ctx context.Context, id int64) error
	Latest(ctx context.Context, n int) ([]dto.MovieBrief, error)
}

type movieService struct {
	movieRepo   *repository.MovieRepo
	catalogRepo *repository.CatalogRepo
	bookmarks   repository.BookmarkRepository
	ratings     RatingService
	reactions   ReactionService
	comments    CommentService
	pageSize    int
}

func NewMovieService(
	movieRepo *repository.MovieRepo,
	catalogRepo *repository.CatalogRepo,
	bookmarks repository.BookmarkRepository,
	ratings RatingService,
	reactions ReactionService,
	comments CommentService,
	pageSize int,
) MovieService {
	if pageSize <= 0 {
		pageSize = filter.DefaultPageSize
	}
	return &movieService{
		movieRepo:   movieRepo,
		catalogRepo: catalogRepo,
		bookmarks:   bookmarks,
		ratings:     ratings,
		reactions:   reactions,
		comments:    comments,
		pageSize:    pageSize,
	}
}

func (s *movieService) List(ctx context.Context, p filter.Params, viewerID string) (*dto.ListPage[dto.MovieListItem], error) {
	list, total, err := s.movieRepo.List(ctx, p, s.pageSize)
	if err != nil {
		return nil, err
	}
	page, err := filter.NewPage(p.Page, s.pageSize, total)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", p.Page, ErrNotFound)
	}

	ids := make([]int64, len(list))
	for i, m := range list {
		ids[i] = m.ID
	}
	marked, err := s.bookmarks.Marked(ctx, viewerID, models.KindMovie, ids)
	if err != nil {
		return nil, err
	}

	results := make([]dto.MovieListItem, len(list))
	for i, m := range list {
		results[i] = dto.MovieListItemFromModel(m)
		results[i].IsInBookmarks = marked[m.ID]
	}
	return &dto.ListPage[dto.MovieListItem]{
		Results:    results,
		Pagination: page,
		Filters:    dto.FiltersFromParams(p),
	}, nil
}

// Detail assembles the movie page: the movie, its votes, the viewer's
// bookmark and rating, and the comment thread.
func (s *movieService) Detail(ctx context.Context, id int64, viewer Viewer) (*dto.MovieDetail, error) {
	m, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "movie")
	}
	d := dto.MovieDetailFromModel(*m)

	if d.Votes, err = s.reactions.Summary(ctx, m.ReactionTarget(), viewer.UserID); err != nil {
		return nil, err
	}
	if viewer.UserID != "" {
		if d.IsInBookmarks, err = s.bookmarks.Exists(ctx, viewer.UserID, m.ReactionTarget()); err != nil {
			return nil, err
		}
	}
	if d.MyRating, err = s.ratings.GetRatingByIP(ctx, id, viewer.IP); err != nil {
		return nil, err
	}
	if d.Comments, d.CommentsCount, err = s.comments.ListThread(ctx, id, viewer.UserID); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *movieService) Create(ctx context.Context, req dto.CreateMovieDTO, poster *string) (*dto.MovieDetail, error) {
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	m := req.ToModel()
	m.Poster = poster
	if err := s.movieRepo.Create(ctx, &m); err != nil {
		return nil, translate(err, "movie")
	}

	logging.Ctx(ctx).Info().Int64("movie_id", m.ID).Str("name", m.Name).Msg("movie created")
	return s.Detail(ctx, m.ID, Viewer{})
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		return translate(err, "movie")
	}
	logging.Ctx(ctx).Info().Int64("movie_id", id).Msg("movie deleted")
	return nil
}

func (s *movieService) Latest(ctx context.Context, n int) ([]dto.MovieBrief, error) {
	list, err := s.movieRepo.Latest(ctx, n)
	if err != nil {
		return nil, err
	}
	return dto.MovieBriefsFromModels(list), nil
}

func (s *movieService) checkReferences(ctx context.Context, req dto.CreateMovieDTO) error {
	actorIDs := append([]int64(nil), req.ActorIDs...)
	for _, a := range req.Actors {
		actorIDs = append(actorIDs, a.PersonID)
	}
	var categories []int64
	if req.CategoryID != nil {
		categories = []int64{*req.CategoryID}
	}

	checks := []struct {
		field string
		model any
		ids   []int64
	}{
		{"category", &models.Category{}, categories},
		{"genres", &models.Genre{}, req.GenreIDs},
		{"countries", &models.Country{}, req.CountryIDs},
		{"directors", &models.Person{}, req.DirectorIDs},
		{"actors", &models.Person{}, actorIDs},
	}
	var errs []error
	for _, c := range checks {
		missing, err := s.catalogRepo.MissingIDs(ctx, c.model, c.ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Errorf("%w: %s %v", ErrInvalidReference, c.field, missing))
		}
	}
	return errors.Join(errs...)
}
