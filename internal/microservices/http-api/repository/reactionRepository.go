package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tally counts the votes on one target.
type Tally struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// Score is likes minus dislikes.
func (t Tally) Score() int64 {
	return t.Likes - t.Dislikes
}

type ReactionRepository interface {
	// Set applies vote for user on target: the same vote twice removes it,
	// the opposite vote replaces it.
	Set(ctx context.Context, userID string, target models.Target, vote int) (models.ReactionState, error)
	// Votes returns the user's vote per target id; ids without a vote are absent.
	Votes(ctx context.Context, userID string, kind models.TargetKind, ids []int64) (map[int64]int, error)
	Tally(ctx context.Context, target models.Target) (Tally, error)
	Tallies(ctx context.Context, kind models.TargetKind, ids []int64) (map[int64]Tally, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Set(ctx context.Context, userID string, target models.Target, vote int) (models.ReactionState, error) {
	var state models.ReactionState
	err := transactionWithRetry(ctx, r.db, func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
			First(&existing).Error

		switch {
		case IsNotFound(err):
			state = models.ReactionCreated
			return tx.Omit("User").Create(&models.Reaction{
				UserID:     userID,
				TargetKind: target.Kind,
				TargetID:   target.ID,
				Vote:       vote,
			}).Error
		case err != nil:
			return err
		case existing.Vote == vote:
			state = models.ReactionRemoved
			return tx.Delete(&existing).Error
		default:
			state = models.ReactionChanged
			return tx.Model(&existing).Update("vote", vote).Error
		}
	})
	if err != nil {
		return "", fmt.Errorf("set reaction on %s: %w", target, err)
	}
	return state, nil
}

func (r *reactionRepository) Votes(ctx context.Context, userID string, kind models.TargetKind, ids []int64) (map[int64]int, error) {
	votes := make(map[int64]int, len(ids))
	if userID == "" || len(ids) == 0 {
		return votes, nil
	}

	var rows []models.Reaction
	if err := r.db.WithContext(ctx).
		Select("target_id", "vote").
		Where("user_id = ? AND target_kind = ? AND target_id IN ?", userID, kind, ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("user votes: %w", err)
	}
	for _, row := range rows {
		votes[row.TargetID] = row.Vote
	}
	return votes, nil
}

func (r *reactionRepository) Tally(ctx context.Context, target models.Target) (Tally, error) {
	tallies, err := r.Tallies(ctx, target.Kind, []int64{target.ID})
	if err != nil {
		return Tally{}, err
	}
	return tallies[target.ID], nil
}

func (r *reactionRepository) Tallies(ctx context.Context, kind models.TargetKind, ids []int64) (map[int64]Tally, error) {
	tallies := make(map[int64]Tally, len(ids))
	if len(ids) == 0 {
		return tallies, nil
	}

	var rows []struct {
		TargetID int64
		Likes    int64
		Dislikes int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("target_id, "+
			"SUM(CASE WHEN vote = 1 THEN 1 ELSE 0 END) AS likes, "+
			"SUM(CASE WHEN vote = -1 THEN 1 ELSE 0 END) AS dislikes").
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("tally reactions: %w", err)
	}
	for _, row := range rows {
		tallies[row.TargetID] = Tally{Likes: row.Likes, Dislikes: row.Dislikes}
	}
	return tallies, nil
}

// transactionWithRetry runs fn once more when it loses an insert race on
// a unique index; the second run sees the winner's row.
func transactionWithRetry(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if IsDuplicateKey(err) {
		err = db.WithContext(ctx).Transaction(fn)
	}
	return err
}
