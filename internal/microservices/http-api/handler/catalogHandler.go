package handler

import (
	"context"
	"net/http"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories, genres and countries. Their detail
// pages are movie listings and live on MovieHandler.
type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()

	list, err := h.catalog.Categories(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Categories", "results": list})
}

func (h *CatalogHandler) Genres(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()

	list, err := h.catalog.Genres(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Genres", "results": list})
}

func (h *CatalogHandler) Countries(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()

	list, err := h.catalog.Countries(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Countries", "results": list})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if !bind(c, &req) {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	category, err := h.catalog.CreateCategory(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, category, "/category/"+category.Slug)
}

func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var req dto.CreateGenreDTO
	if !bind(c, &req) {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	genre, err := h.catalog.CreateGenre(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, genre, "/genres/")
}

func (h *CatalogHandler) CreateCountry(c *gin.Context) {
	var req dto.CreateCountryDTO
	if !bind(c, &req) {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	country, err := h.catalog.CreateCountry(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, country, "/countries/")
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.catalog.DeleteCategory(ctx, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	if wantsJSON(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/categories/")
}

// Genre lists the movies of one genre.
func (h *MovieHandler) Genre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.sitePage(c, func(ctx context.Context, p *filter.Params) (string, error) {
		genre, err := h.catalog.Genre(ctx, id)
		if err != nil {
			return "", err
		}
		p.Genres = []int64{id}
		return genre.Name, nil
	})
}

// Country lists the movies made in one country.
func (h *MovieHandler) Country(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.sitePage(c, func(ctx context.Context, p *filter.Params) (string, error) {
		country, err := h.catalog.Country(ctx, id)
		if err != nil {
			return "", err
		}
		p.Countries = []int64{id}
		return country.Name, nil
	})
}

// created answers 201 with the new object, or redirects browsers to it.
func created(c *gin.Context, obj any, location string) {
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, obj)
		return
	}
	c.Redirect(http.StatusFound, location)
}
