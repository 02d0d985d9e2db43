package models

// MovieActor is the explicit movie <-> person join carrying the role played.
type MovieActor struct {
	ID       int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID  int64   `json:"movie_id" gorm:"index;not null"`
	PersonID int64   `json:"person_id" gorm:"index;not null"`
	Role     *string `json:"role,omitempty" gorm:"size:100"`

	Person *Person `json:"person,omitempty" gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE;"`
}

func (MovieActor) TableName() string {
	return "movie_actors"
}
