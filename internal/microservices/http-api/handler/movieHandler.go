package handler

import (
	"context"
	"fmt"
	"net/http"

	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movies  service.MovieService
	catalog service.CatalogService
	media   *media.Storage
}

func NewMovieHandler(movies service.MovieService, catalog service.CatalogService, storage *media.Storage) *MovieHandler {
	return &MovieHandler{movies: movies, catalog: catalog, media: storage}
}

// List is the home page: every movie, filtered and sorted by the query.
func (h *MovieHandler) List(c *gin.Context) {
	h.sitePage(c, fixedTitle("Movies"))
}

func (h *MovieHandler) Search(c *gin.Context) {
	h.sitePage(c, fixedTitle("Search results"))
}

// Category lists the movies of one category.
func (h *MovieHandler) Category(c *gin.Context) {
	h.sitePage(c, func(ctx context.Context, p *filter.Params) (string, error) {
		category, err := h.catalog.Category(ctx, c.Param("slug"))
		if err != nil {
			return "", err
		}
		p.CategorySlug = category.Slug
		return category.Name, nil
	})
}

// scopeFunc narrows a parsed listing query and names the page.
type scopeFunc func(ctx context.Context, p *filter.Params) (title string, err error)

func fixedTitle(title string) scopeFunc {
	return func(context.Context, *filter.Params) (string, error) { return title, nil }
}

// sitePage renders a movie listing with the sidebar.
func (h *MovieHandler) sitePage(c *gin.Context, scope scopeFunc) {
	p, ok := parseQuery(c, models.KindMovie)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	title, err := scope(ctx, &p)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.movies.List(ctx, p, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sidebar, err := h.catalog.Sidebar(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	page.Title = title
	c.JSON(http.StatusOK, gin.H{"page": page, "sidebar": sidebar})
}

func (h *MovieHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	movie, err := h.movies.Detail(ctx, id, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sidebar, err := h.catalog.Sidebar(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": movie.Name, "movie": movie, "sidebar": sidebar})
}

func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.CreateMovieDTO
	if !bind(c, &req) {
		return
	}

	poster, err := h.media.SaveUpload(c, "poster", "movies")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	movie, err := h.movies.Create(ctx, req, poster)
	if err != nil {
		if rmErr := h.media.Remove(poster); rmErr != nil {
			logging.Ctx(ctx).Warn().Err(rmErr).Msg("orphaned poster not removed")
		}
		respondError(c, err)
		return
	}

	created(c, movie, fmt.Sprintf("/movie/%d/", movie.ID))
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.movies.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	if wantsJSON(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// APIList is GET /api/v1/movies/.
func (h *MovieHandler) APIList(c *gin.Context) {
	p, ok := parseQuery(c, models.KindMovie)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	page, err := h.movies.List(ctx, p, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// APIDetail is GET /api/v1/movies/:id/.
func (h *MovieHandler) APIDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	movie, err := h.movies.Detail(ctx, id, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}
