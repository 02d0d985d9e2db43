package models

import "time"

// Rating is one score per (movie, voter ip).
type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID   int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_rating_movie_ip"`
	IP        string    `json:"ip" gorm:"size:45;not null;uniqueIndex:idx_rating_movie_ip"`
	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Movie *Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
