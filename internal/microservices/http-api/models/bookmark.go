package models

import "time"

// Bookmark marks a Target as saved by a user; presence is the state.
type Bookmark struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string     `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_target,priority:1" json:"user_id"`
	TargetKind TargetKind `gorm:"size:16;not null;uniqueIndex:idx_bookmark_user_target,priority:2" json:"target_kind"`
	TargetID   int64      `gorm:"not null;uniqueIndex:idx_bookmark_user_target,priority:3;index" json:"target_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
