package handler

import (
	"fmt"
	"net/http"

	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	persons service.PersonService
	catalog service.CatalogService
	media   *media.Storage
}

func NewPersonHandler(persons service.PersonService, catalog service.CatalogService, storage *media.Storage) *PersonHandler {
	return &PersonHandler{persons: persons, catalog: catalog, media: storage}
}

func (h *PersonHandler) List(c *gin.Context) {
	p, ok := parseQuery(c, models.KindPerson)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	page, err := h.persons.List(ctx, p, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sidebar, err := h.catalog.Sidebar(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	page.Title = "Persons"
	c.JSON(http.StatusOK, gin.H{"page": page, "sidebar": sidebar})
}

func (h *PersonHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	person, err := h.persons.Detail(ctx, id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": person.FirstName + " " + person.LastName, "person": person})
}

func (h *PersonHandler) Create(c *gin.Context) {
	var req dto.CreatePersonDTO
	if !bind(c, &req) {
		return
	}

	picture, err := h.media.SaveUpload(c, "picture", "persons")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	person, err := h.persons.Create(ctx, req, picture)
	if err != nil {
		if rmErr := h.media.Remove(picture); rmErr != nil {
			logging.Ctx(ctx).Warn().Err(rmErr).Msg("orphaned picture not removed")
		}
		respondError(c, err)
		return
	}
	created(c, person, fmt.Sprintf("/person/%d/", person.ID))
}

func (h *PersonHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.persons.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	if wantsJSON(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/persons/")
}

// APIList is GET /api/v1/persons/.
func (h *PersonHandler) APIList(c *gin.Context) {
	p, ok := parseQuery(c, models.KindPerson)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	page, err := h.persons.List(ctx, p, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// APIDetail is GET /api/v1/persons/:id/.
func (h *PersonHandler) APIDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	person, err := h.persons.Detail(ctx, id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}
