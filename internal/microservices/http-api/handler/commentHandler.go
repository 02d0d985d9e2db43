package handler

import (
	"net/http"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create adds a comment, or a reply when the body names a parent.
// POST /comment/:id/ where id is the movie.
func (h *CommentHandler) Create(c *gin.Context) {
	movieID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentDTO
	if !bind(c, &req) {
		return
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	comment, err := h.commentService.AddComment(ctx, movieID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	redirectBack(c, http.StatusCreated, comment)
}

// Delete removes a comment; its replies move up to top level.
// POST /comment/:id/delete/ where id is the comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.commentService.DeleteComment(ctx, commentID); err != nil {
		respondError(c, err)
		return
	}
	redirectBack(c, http.StatusOK, gin.H{"deleted": commentID})
}
