package handler

import (
	"net/http"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Create records the caller's star rating; voters are identified by IP.
// POST /add_rating/
func (h *RatingHandler) Create(c *gin.Context) {
	var req dto.SubmitRatingDTO
	if !bind(c, &req) {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	resp, err := h.ratingService.SubmitRating(ctx, req.Movie, c.ClientIP(), req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
