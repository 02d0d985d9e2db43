package service

import (
	"context"
	"fmt"
	"strings"

	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

type CommentService interface {
	AddComment(ctx context.Context, movieID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	// ListThread returns top-level comments newest first, each with its replies.
	ListThread(ctx context.Context, movieID int64, viewerID string) ([]dto.CommentNode, int, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	movieRepo   *repository.MovieRepo
	reactions   ReactionService
}

func NewCommentService(commentRepo repository.CommentRepository, movieRepo *repository.MovieRepo, reactions ReactionService) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		movieRepo:   movieRepo,
		reactions:   reactions,
	}
}

func (s *commentService) AddComment(ctx context.Context, movieID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	exists, err := s.movieRepo.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}

	if req.Major != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.Major)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
		// threads are one level deep
		if parent.MovieID != movieID || parent.MajorID != nil {
			return nil, ErrInvalidParent
		}
	}

	comment := &models.Comment{
		MovieID: movieID,
		MajorID: req.Major,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Text:    strings.TrimSpace(req.Text),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("movie_id", movieID).Int64("comment_id", comment.ID).Msg("comment added")
	return dto.FromModelToCommentResponse(comment), nil
}

// ListThread groups replies under their parent. Replies whose parent is
// gone were re-parented to top level on delete, so nothing is orphaned.
func (s *commentService) ListThread(ctx context.Context, movieID int64, viewerID string) ([]dto.CommentNode, int, error) {
	comments, err := s.commentRepo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	votes, err := s.reactions.Summaries(ctx, models.KindComment, ids, viewerID)
	if err != nil {
		return nil, 0, err
	}

	children := make(map[int64][]dto.CommentNode)
	var roots []models.Comment
	for _, c := range comments {
		if c.MajorID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.MajorID] = append(children[*c.MajorID], commentNode(c, votes[c.ID], nil))
	}

	thread := make([]dto.CommentNode, 0, len(roots))
	for _, c := range roots {
		kids := children[c.ID]
		if kids == nil {
			kids = []dto.CommentNode{}
		}
		thread = append(thread, commentNode(c, votes[c.ID], kids))
	}
	return thread, len(comments), nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID int64) error {
	return translate(s.commentRepo.Delete(ctx, commentID), "comment")
}

func commentNode(c models.Comment, votes dto.VoteSummary, children []dto.CommentNode) dto.CommentNode {
	if children == nil {
		children = []dto.CommentNode{}
	}
	return dto.CommentNode{
		ID:       c.ID,
		Name:     c.Name,
		Text:     c.Text,
		PubDate:  c.PubDate,
		Votes:    votes,
		Children: children,
	}
}
