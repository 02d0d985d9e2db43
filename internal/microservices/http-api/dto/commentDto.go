package dto

import (
	"time"

	"moviehub/internal/microservices/http-api/models"
)

// CreateCommentDTO for POST /comment/:id/. Major is the id of the comment
// being answered, if any.
type CreateCommentDTO struct {
	Name   string `json:"name" form:"name" binding:"required,max=100"`
	Email  string `json:"email" form:"email" binding:"required,email,max=254"`
	Text   string `json:"text" form:"text" binding:"required,max=5000"`
	Major  *int64 `json:"major,omitempty" form:"major" binding:"omitempty,gt=0"`
}

// CommentResponse is a stored comment without its thread context.
type CommentResponse struct {
	ID      int64     `json:"id"`
	MovieID int64     `json:"movie_id"`
	Major   *int64    `json:"major,omitempty"`
	Name    string    `json:"name"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// CommentNode is a comment in a thread, with the viewer's vote.
type CommentNode struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Text     string        `json:"text"`
	PubDate  time.Time     `json:"pub_date"`
	Votes    VoteSummary   `json:"votes"`
	Children []CommentNode `json:"children"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(c *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:      c.ID,
		MovieID: c.MovieID,
		Major:   c.MajorID,
		Name:    c.Name,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}
