package handler

import (
	"net/http"

	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	svc service.BookmarkService
}

func NewBookmarkHandler(svc service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

// Overview is GET /bookmark/: a few bookmarked movies and persons.
func (h *BookmarkHandler) Overview(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()

	overview, err := h.svc.Overview(ctx, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Bookmarks", "bookmarks": overview})
}

// Movies is GET /bookmark/movies, filterable like the home page.
func (h *BookmarkHandler) Movies(c *gin.Context) {
	p, ok := parseQuery(c, models.KindMovie)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	page, err := h.svc.Movies(ctx, middleware.UserID(c), p)
	if err != nil {
		respondError(c, err)
		return
	}
	page.Title = "Bookmarked movies"
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// Persons is GET /bookmark/persons.
func (h *BookmarkHandler) Persons(c *gin.Context) {
	p, ok := parseQuery(c, models.KindPerson)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	page, err := h.svc.Persons(ctx, middleware.UserID(c), p)
	if err != nil {
		respondError(c, err)
		return
	}
	page.Title = "Bookmarked persons"
	c.JSON(http.StatusOK, gin.H{"page": page})
}
