package models

import "time"

const (
	VoteLike    = 1
	VoteDislike = -1
)

// Reaction is a like (+1) or dislike (-1) by a user on any Target.
// The unique index keeps it at one row per (user, target).
type Reaction struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string     `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_user_target,priority:1"`
	TargetKind TargetKind `json:"target_kind" gorm:"size:16;not null;uniqueIndex:idx_reaction_user_target,priority:2;index:idx_reaction_target,priority:1"`
	TargetID   int64      `json:"target_id" gorm:"not null;uniqueIndex:idx_reaction_user_target,priority:3;index:idx_reaction_target,priority:2"`
	Vote       int        `json:"vote" gorm:"not null;check:vote = 1 OR vote = -1"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func VoteLabel(vote int) string {
	if vote == VoteLike {
		return "like"
	}
	return "dislike"
}

// ReactionState reports what SetReaction did.
type ReactionState string

const (
	ReactionCreated ReactionState = "created"
	ReactionChanged ReactionState = "changed"
	ReactionRemoved ReactionState = "removed"
)
