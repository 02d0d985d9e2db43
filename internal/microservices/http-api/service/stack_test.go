package service

import (
	"testing"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/testutil"

	"gorm.io/gorm"
)

// stack wires every service over one fresh database.
type stack struct {
	db        *gorm.DB
	catalog   CatalogService
	movies    MovieService
	persons   PersonService
	ratings   RatingService
	reactions ReactionService
	comments  CommentService
	bookmarks BookmarkService
}

func newStack(t *testing.T, pageSize int) *stack {
	t.Helper()
	db := testutil.NewDB(t)
	svc := New(db, &config.Config{
		JWTSecret:       testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		PageSize:        pageSize,
	})
	return &stack{
		db:        db,
		catalog:   svc.Catalog,
		movies:    svc.Movies,
		persons:   svc.Persons,
		ratings:   svc.Ratings,
		reactions: svc.Reactions,
		comments:  svc.Comments,
		bookmarks: svc.Bookmarks,
	}
}
