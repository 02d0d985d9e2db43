package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BookmarkRepository interface {
	// Toggle adds the bookmark when absent and removes it when present,
	// returning whether it is present afterwards.
	Toggle(ctx context.Context, userID string, target models.Target) (bool, error)
	Exists(ctx context.Context, userID string, target models.Target) (bool, error)
	// Marked returns the subset of ids the user has bookmarked.
	Marked(ctx context.Context, userID string, kind models.TargetKind, ids []int64) (map[int64]bool, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Toggle(ctx context.Context, userID string, target models.Target) (bool, error) {
	var present bool
	err := transactionWithRetry(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
			Delete(&models.Bookmark{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			present = false
			return nil
		}

		present = true
		return tx.Omit("User").Create(&models.Bookmark{
			UserID:     userID,
			TargetKind: target.Kind,
			TargetID:   target.ID,
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("toggle bookmark on %s: %w", target, err)
	}
	return present, nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID string, target models.Target) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookmarkRepository) Marked(ctx context.Context, userID string, kind models.TargetKind, ids []int64) (map[int64]bool, error) {
	marked := make(map[int64]bool)
	if userID == "" || len(ids) == 0 {
		return marked, nil
	}

	var found []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND target_kind = ? AND target_id IN ?", userID, kind, ids).
		Pluck("target_id", &found).Error; err != nil {
		return nil, fmt.Errorf("marked bookmarks: %w", err)
	}
	for _, id := range found {
		marked[id] = true
	}
	return marked, nil
}
