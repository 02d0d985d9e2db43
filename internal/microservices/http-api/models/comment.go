package models

import "time"

type Comment struct {
	ID      int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID int64     `json:"movie_id" gorm:"not null;index"`
	MajorID *int64    `json:"major_id,omitempty" gorm:"index"` // parent comment; nil for top-level
	Name    string    `json:"name" gorm:"size:100;not null"`
	Email   string    `json:"email" gorm:"size:254;not null"`
	Text    string    `json:"text" gorm:"type:text;not null"`
	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime"`

	// Associations
	Movie    *Movie    `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
	Children []Comment `json:"children,omitempty" gorm:"foreignKey:MajorID;constraint:OnDelete:SET NULL;"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c Comment) ReactionTarget() Target {
	return Target{Kind: KindComment, ID: c.ID}
}
