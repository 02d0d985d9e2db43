package service

import (
	"moviehub/internal/config"
	"moviehub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// Services is every service the HTTP layer uses, wired over one database.
type Services struct {
	Auth      AuthService
	Catalog   CatalogService
	Movies    MovieService
	Persons   PersonService
	Ratings   RatingService
	Reactions ReactionService
	Comments  CommentService
	Bookmarks BookmarkService
}

func New(db *gorm.DB, cfg *config.Config) *Services {
	movieRepo := repository.NewMovieRepo(db)
	personRepo := repository.NewPersonRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	targets := repository.NewTargetRepo(db)

	reactions := NewReactionService(repository.NewReactionRepository(db), targets)
	ratings := NewRatingService(repository.NewRatingRepository(db))
	comments := NewCommentService(repository.NewCommentRepository(db), movieRepo, reactions)
	movies := NewMovieService(movieRepo, catalogRepo, bookmarkRepo, ratings, reactions, comments, cfg.PageSize)
	persons := NewPersonService(personRepo, catalogRepo, bookmarkRepo, reactions, cfg.PageSize)

	return &Services{
		Auth:      NewAuthService(repository.NewUserRepository(db), repository.NewRefreshTokenRepository(db), cfg),
		Catalog:   NewCatalogService(catalogRepo, movieRepo),
		Movies:    movies,
		Persons:   persons,
		Ratings:   ratings,
		Reactions: reactions,
		Comments:  comments,
		Bookmarks: NewBookmarkService(
			bookmarkRepo, targets,
			movies, NewMovieService(movieRepo, catalogRepo, bookmarkRepo, ratings, reactions, comments, OverviewSize),
			persons, NewPersonService(personRepo, catalogRepo, bookmarkRepo, reactions, OverviewSize),
		),
	}
}
