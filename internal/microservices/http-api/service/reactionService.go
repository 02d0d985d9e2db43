package service

import (
	"context"
	"fmt"

	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

// Viewer identifies who is looking at a page. UserID is empty for
// anonymous visitors; IP is the rating identity.
type Viewer struct {
	UserID string
	IP     string
}

type ReactionService interface {
	SetReaction(ctx context.Context, userID string, target models.Target, vote int) (*dto.ReactionResponse, error)
	// GetReaction returns the user's vote on target; ok is false when there is none.
	GetReaction(ctx context.Context, userID string, target models.Target) (vote int, ok bool, err error)
	Summary(ctx context.Context, target models.Target, viewerID string) (dto.VoteSummary, error)
	Summaries(ctx context.Context, kind models.TargetKind, ids []int64, viewerID string) (map[int64]dto.VoteSummary, error)
}

type targetLookup interface {
	Exists(ctx context.Context, target models.Target) (bool, error)
}

type reactionService struct {
	repo    repository.ReactionRepository
	targets targetLookup
}

func NewReactionService(repo repository.ReactionRepository, targets targetLookup) ReactionService {
	return &reactionService{repo: repo, targets: targets}
}

func (s *reactionService) SetReaction(ctx context.Context, userID string, target models.Target, vote int) (*dto.ReactionResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if vote != models.VoteLike && vote != models.VoteDislike {
		return nil, ErrInvalidVote
	}
	if err := s.checkTarget(ctx, target); err != nil {
		return nil, err
	}

	state, err := s.repo.Set(ctx, userID, target, vote)
	if err != nil {
		return nil, translate(err, "reaction")
	}

	tally, err := s.repo.Tally(ctx, target)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("user_id", userID).
		Str("target", target.String()).
		Str("vote", models.VoteLabel(vote)).
		Str("state", string(state)).
		Msg("reaction applied")

	resp := &dto.ReactionResponse{
		Kind:     target.Kind,
		ID:       target.ID,
		State:    state,
		Likes:    tally.Likes,
		Dislikes: tally.Dislikes,
	}
	if state != models.ReactionRemoved {
		resp.Vote = &vote
	}
	return resp, nil
}

func (s *reactionService) GetReaction(ctx context.Context, userID string, target models.Target) (int, bool, error) {
	if userID == "" {
		return 0, false, nil
	}
	votes, err := s.repo.Votes(ctx, userID, target.Kind, []int64{target.ID})
	if err != nil {
		return 0, false, err
	}
	vote, ok := votes[target.ID]
	return vote, ok, nil
}

func (s *reactionService) Summary(ctx context.Context, target models.Target, viewerID string) (dto.VoteSummary, error) {
	summaries, err := s.Summaries(ctx, target.Kind, []int64{target.ID}, viewerID)
	if err != nil {
		return dto.VoteSummary{}, err
	}
	return summaries[target.ID], nil
}

// Summaries has an entry for every id, zero-valued when nobody voted.
func (s *reactionService) Summaries(ctx context.Context, kind models.TargetKind, ids []int64, viewerID string) (map[int64]dto.VoteSummary, error) {
	tallies, err := s.repo.Tallies(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	votes, err := s.repo.Votes(ctx, viewerID, kind, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]dto.VoteSummary, len(ids))
	for _, id := range ids {
		t := tallies[id]
		summary := dto.VoteSummary{Likes: t.Likes, Dislikes: t.Dislikes, Score: t.Score()}
		if v, ok := votes[id]; ok {
			summary.MyVote = &v
		}
		out[id] = summary
	}
	return out, nil
}

func (s *reactionService) checkTarget(ctx context.Context, target models.Target) error {
	if !target.Kind.Valid() {
		return ErrInvalidTarget
	}
	ok, err := s.targets.Exists(ctx, target)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", target, ErrNotFound)
	}
	return nil
}
