package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	// ListByMovie returns every comment on the movie, newest first, unthreaded.
	ListByMovie(ctx context.Context, movieID int64) ([]models.Comment, error)
	Delete(ctx context.Context, commentID int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Movie", "Children").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByMovie(ctx context.Context, movieID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("pub_date desc").
		Order("id desc").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Delete removes the comment and its reactions. Replies become top-level.
func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Comment
		if err := tx.Select("id").First(&c, commentID).Error; err != nil {
			return err
		}
		if err := deleteTargetRows(tx, models.KindComment, []int64{commentID}); err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).Where("major_id = ?", commentID).Update("major_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
