package service

import (
	"context"

	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/repository"
)

const (
	MinScore = 1
	MaxScore = 10
)

type RatingService interface {
	// SubmitRating records the score from ip, replacing its earlier score,
	// and returns the movie's new aggregate.
	SubmitRating(ctx context.Context, movieID int64, ip string, score int) (*dto.RatingResponse, error)
	// GetRatingByIP returns the score ip gave movieID, or nil.
	GetRatingByIP(ctx context.Context, movieID int64, ip string) (*int, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
}

func NewRatingService(ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

func (s *ratingService) SubmitRating(ctx context.Context, movieID int64, ip string, score int) (*dto.RatingResponse, error) {
	if score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}

	avg, err := s.ratingRepo.Submit(ctx, movieID, ip, score)
	if err != nil {
		return nil, translate(err, "movie")
	}
	votes, err := s.ratingRepo.Count(ctx, movieID)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int64("movie_id", movieID).
		Int("score", score).
		Float64("rating", avg).
		Int64("votes", votes).
		Msg("rating submitted")

	return &dto.RatingResponse{MovieID: movieID, Score: score, Rating: avg, Votes: votes}, nil
}

func (s *ratingService) GetRatingByIP(ctx context.Context, movieID int64, ip string) (*int, error) {
	if ip == "" {
		return nil, nil
	}
	rating, err := s.ratingRepo.GetByIP(ctx, movieID, ip)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &rating.Score, nil
}
