package handler

import (
	"context"
	"net/http"
	"time"

	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// Options carries what the router needs besides the services.
type Options struct {
	Media          *media.Storage
	Limiter        ratelimit.Limiter // nil disables rate limiting
	TrustedProxies []string
	AccessTokenTTL time.Duration
	SecureCookies  bool
	// Health reports whether the database answers; nil means always healthy.
	Health func(ctx context.Context) error
}

// guards are the per-route middlewares handlers pick from when registering.
type guards struct {
	auth  gin.HandlerFunc
	admin gin.HandlerFunc
	limit gin.HandlerFunc
}

// NewRouter builds the gin engine serving the site, the REST API and media.
func NewRouter(svc *service.Services, opts Options) (*gin.Engine, error) {
	dto.RegisterValidators()

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery())
	r.Use(middleware.OptionalAuth(svc.Auth))

	g := guards{
		auth:  middleware.RequireAuth(),
		admin: middleware.RequireAdmin(),
		limit: func(c *gin.Context) { c.Next() },
	}
	if opts.Limiter != nil {
		g.limit = ratelimit.Middleware(opts.Limiter)
	}

	movies := NewMovieHandler(svc.Movies, svc.Catalog, opts.Media)
	persons := NewPersonHandler(svc.Persons, svc.Catalog, opts.Media)
	catalog := NewCatalogHandler(svc.Catalog)
	comments := NewCommentHandler(svc.Comments)
	ratings := NewRatingHandler(svc.Ratings)
	reactions := NewReactionHandler(svc.Reactions, svc.Bookmarks)
	bookmarks := NewBookmarkHandler(svc.Bookmarks)
	authH := NewAuthHandler(svc.Auth, opts.AccessTokenTTL, opts.SecureCookies)

	site := r.Group("/")
	movies.RegisterRoutes(site, g)
	persons.RegisterRoutes(site, g)
	catalog.RegisterRoutes(site, g)
	comments.RegisterRoutes(site, g)
	ratings.RegisterRoutes(site, g)
	reactions.RegisterRoutes(site)
	bookmarks.RegisterRoutes(site.Group("/bookmark"), g)
	authH.RegisterRoutes(site.Group("/auth"))

	api := r.Group("/api/v1")
	movies.RegisterAPIRoutes(api.Group("/movies"))
	persons.RegisterAPIRoutes(api.Group("/persons"))
	authH.RegisterAPIRoutes(api.Group("/auth"))

	if opts.Media != nil {
		r.Static("/media", opts.Media.Root())
	}
	r.GET("/healthz", healthz(opts.Health))

	return r, nil
}

func healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := withTimeout(c)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup, g guards) {
	rg.GET("/", h.List)
	rg.GET("/search/", h.Search)
	rg.POST("/movie/create/", g.auth, h.Create)
	rg.GET("/movie/:id/", h.Detail)
	rg.POST("/movie/:id/delete/", g.admin, h.Delete)

	rg.GET("/category/:slug", h.Category)
	rg.GET("/genre/:id/", h.Genre)
	rg.GET("/country/:id/", h.Country)
}

func (h *MovieHandler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.APIList)
	rg.GET("/:id/", h.APIDetail)
}

func (h *PersonHandler) RegisterRoutes(rg *gin.RouterGroup, g guards) {
	rg.GET("/persons/", h.List)
	rg.POST("/person/create/", g.auth, h.Create)
	rg.GET("/person/:id/", h.Detail)
	rg.POST("/person/:id/delete/", g.admin, h.Delete)
}

func (h *PersonHandler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.APIList)
	rg.GET("/:id/", h.APIDetail)
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup, g guards) {
	rg.GET("/categories/", h.Categories)
	rg.POST("/category/create/", g.auth, h.CreateCategory)
	rg.POST("/category/:slug/delete/", g.admin, h.DeleteCategory)

	rg.GET("/genres/", h.Genres)
	rg.POST("/genre/create/", g.auth, h.CreateGenre)

	rg.GET("/countries/", h.Countries)
	rg.POST("/country/create/", g.auth, h.CreateCountry)
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, g guards) {
	rg.POST("/comment/:id/", g.limit, h.Create)
	rg.POST("/comment/:id/delete/", g.admin, h.Delete)
}

func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, g guards) {
	rg.POST("/add_rating/", g.limit, h.Create)
}

// RegisterRoutes spells out each entity kind; a /:entity wildcard would
// clash with the static /movie and /person routes.
func (h *ReactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, kind := range []models.TargetKind{models.KindMovie, models.KindPerson, models.KindComment} {
		path := "/" + string(kind) + "/:id/like_dislike/:vote"
		rg.GET(path, h.LikeDislike(kind))
		rg.POST(path, h.LikeDislike(kind))
	}
	for _, kind := range []models.TargetKind{models.KindMovie, models.KindPerson} {
		path := "/" + string(kind) + "/:id/bookmark"
		rg.GET(path, h.Bookmark(kind))
		rg.POST(path, h.Bookmark(kind))
	}
}

func (h *BookmarkHandler) RegisterRoutes(rg *gin.RouterGroup, g guards) {
	rg.Use(g.auth)
	rg.GET("/", h.Overview)
	rg.GET("/movies", h.Movies)
	rg.GET("/persons", h.Persons)
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup/", h.Register)
	rg.POST("/login/", h.Login)
	rg.POST("/logout/", h.Logout)
}

func (h *AuthHandler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/", h.Register)
	rg.POST("/jwt/create/", h.CreateToken)
	rg.POST("/jwt/refresh/", h.RefreshToken)
}
