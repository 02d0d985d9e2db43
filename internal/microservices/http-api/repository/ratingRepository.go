package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	// Submit records score for (movie, ip), replacing an earlier score, and
	// returns the movie's new average.
	Submit(ctx context.Context, movieID int64, ip string, score int) (float64, error)
	GetByIP(ctx context.Context, movieID int64, ip string) (*models.Rating, error)
	Count(ctx context.Context, movieID int64) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Submit(ctx context.Context, movieID int64, ip string, score int) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the movie row lock serializes writers so the stored mean always
		// matches the rating rows
		var movie models.Movie
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&movie, movieID).Error; err != nil {
			return err
		}

		rating := models.Rating{MovieID: movieID, IP: ip, Score: score}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}, {Name: "ip"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).Create(&rating).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Rating{}).
			Select("COALESCE(AVG(score), 0)").
			Where("movie_id = ?", movieID).
			Scan(&avg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Movie{}).Where("id = ?", movieID).Update("rating", avg).Error
	})
	if err != nil {
		return 0, fmt.Errorf("submit rating: %w", err)
	}
	return avg, nil
}

func (r *ratingRepository) GetByIP(ctx context.Context, movieID int64, ip string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("movie_id = ? AND ip = ?", movieID, ip).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Count(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}
