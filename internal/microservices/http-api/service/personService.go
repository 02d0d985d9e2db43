package service

import (
	"context"
	"fmt"
	"time"

	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

type PersonService interface {
	List(ctx context.Context, p filter.Params, viewerID string) (*dto.ListPage[dto.PersonListItem], error)
	Detail(ctx context.Context, id int64, viewerID string) (*dto.PersonDetail, error)
	Create(ctx context.Context, req dto.CreatePersonDTO, picture *string) (*dto.PersonDetail, error)
	Delete(ctx context.Context, id int64) error
}

type personService struct {
	personRepo  *repository.PersonRepo
	catalogRepo *repository.CatalogRepo
	bookmarks   repository.BookmarkRepository
	reactions   ReactionService
	pageSize    int
	now         func() time.Time
}

func NewPersonService(
	personRepo *repository.PersonRepo,
	catalogRepo *repository.CatalogRepo,
	bookmarks repository.BookmarkRepository,
	reactions ReactionService,
	pageSize int,
) PersonService {
	if pageSize <= 0 {
		pageSize = filter.DefaultPageSize
	}
	return &personService{
		personRepo:  personRepo,
		catalogRepo: catalogRepo,
		bookmarks:   bookmarks,
		reactions:   reactions,
		pageSize:    pageSize,
		now:         time.Now,
	}
}

func (s *personService) List(ctx context.Context, p filter.Params, viewerID string) (*dto.ListPage[dto.PersonListItem], error) {
	list, total, err := s.personRepo.List(ctx, p, s.pageSize)
	if err != nil {
		return nil, err
	}
	page, err := filter.NewPage(p.Page, s.pageSize, total)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", p.Page, ErrNotFound)
	}

	ids := make([]int64, len(list))
	for i, person := range list {
		ids[i] = person.ID
	}
	marked, err := s.bookmarks.Marked(ctx, viewerID, models.KindPerson, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	results := make([]dto.PersonListItem, len(list))
	for i, person := range list {
		results[i] = dto.PersonListItemFromModel(person, now)
		results[i].IsInBookmarks = marked[person.ID]
	}
	return &dto.ListPage[dto.PersonListItem]{
		Results:    results,
		Pagination: page,
		Filters:    dto.FiltersFromParams(p),
	}, nil
}

func (s *personService) Detail(ctx context.Context, id int64, viewerID string) (*dto.PersonDetail, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "person")
	}
	d := dto.PersonDetailFromModel(*person, s.now())

	if d.Votes, err = s.reactions.Summary(ctx, person.ReactionTarget(), viewerID); err != nil {
		return nil, err
	}
	if viewerID != "" {
		if d.IsInBookmarks, err = s.bookmarks.Exists(ctx, viewerID, person.ReactionTarget()); err != nil {
			return nil, err
		}
	}

	acted, directed, err := s.personRepo.Filmography(ctx, id)
	if err != nil {
		return nil, err
	}
	d.ActedIn = dto.MovieBriefsFromModels(acted)
	d.Directed = dto.MovieBriefsFromModels(directed)
	return &d, nil
}

func (s *personService) Create(ctx context.Context, req dto.CreatePersonDTO, picture *string) (*dto.PersonDetail, error) {
	if req.CountryID != nil {
		missing, err := s.catalogRepo.MissingIDs(ctx, &models.Country{}, []int64{*req.CountryID})
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: country %v", ErrInvalidReference, missing)
		}
	}

	person := req.ToModel()
	person.Picture = picture
	if err := s.personRepo.Create(ctx, &person); err != nil {
		return nil, translate(err, "person")
	}

	logging.Ctx(ctx).Info().Int64("person_id", person.ID).Str("name", person.FullName()).Msg("person created")
	return s.Detail(ctx, person.ID, "")
}

func (s *personService) Delete(ctx context.Context, id int64) error {
	if err := s.personRepo.Delete(ctx, id); err != nil {
		return translate(err, "person")
	}
	logging.Ctx(ctx).Info().Int64("person_id", id).Msg("person deleted")
	return nil
}
