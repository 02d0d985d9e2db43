package models

import "time"

type Movie struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:100;not null;index"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	ReleaseYear int       `json:"release_year" gorm:"not null"`
	Poster      *string   `json:"poster,omitempty"`
	CategoryID  *int64    `json:"category_id,omitempty" gorm:"index"`
	Rating      float64   `json:"rating" gorm:"not null;default:0"` // mean of ratings.score, recomputed on every rating write
	PubDate     time.Time `json:"pub_date" gorm:"autoCreateTime"`

	// Associations
	Category  *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres    []Genre      `json:"genres,omitempty" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	Countries []Country    `json:"countries,omitempty" gorm:"many2many:movie_countries;constraint:OnDelete:CASCADE;"`
	Directors []Person     `json:"directors,omitempty" gorm:"many2many:movie_directors;constraint:OnDelete:CASCADE;"`
	Actors    []MovieActor `json:"actors,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}

func (m Movie) ReactionTarget() Target {
	return Target{Kind: KindMovie, ID: m.ID}
}
