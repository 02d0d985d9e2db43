package handler

import (
	"net/http"
	"strconv"

	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactions service.ReactionService
	bookmarks service.BookmarkService
}

func NewReactionHandler(reactions service.ReactionService, bookmarks service.BookmarkService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions, bookmarks: bookmarks}
}

// LikeDislike toggles the caller's vote on one kind of entity.
// GET|POST /<kind>/:id/like_dislike/:vote
func (h *ReactionHandler) LikeDislike(kind models.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		vote, err := strconv.Atoi(c.Param("vote"))
		if err != nil {
			respondError(c, service.ErrInvalidVote)
			return
		}

		ctx, cancel := withTimeout(c)
		defer cancel()

		resp, err := h.reactions.SetReaction(ctx, middleware.UserID(c), models.Target{Kind: kind, ID: id}, vote)
		if err != nil {
			respondError(c, err)
			return
		}
		redirectBack(c, http.StatusOK, resp)
	}
}

// Bookmark toggles the caller's bookmark on one kind of entity.
// GET|POST /<kind>/:id/bookmark
func (h *ReactionHandler) Bookmark(kind models.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := withTimeout(c)
		defer cancel()

		resp, err := h.bookmarks.ToggleBookmark(ctx, middleware.UserID(c), models.Target{Kind: kind, ID: id})
		if err != nil {
			respondError(c, err)
			return
		}
		redirectBack(c, http.StatusOK, resp)
	}
}
