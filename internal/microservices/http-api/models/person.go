package models

import "time"

type Gender string

const (
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderUnknown Gender = "U"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnknown
}

func (g Gender) Display() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

type Person struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName   string    `json:"first_name" gorm:"size:100;not null;uniqueIndex:idx_person_full_name,priority:2"`
	LastName    string    `json:"last_name" gorm:"size:100;not null;index;uniqueIndex:idx_person_full_name,priority:1"`
	Birthdate   time.Time `json:"birthdate" gorm:"type:date;not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Picture     *string   `json:"picture,omitempty"`
	Gender      Gender    `json:"gender" gorm:"size:1;not null;default:U"`
	CountryID   *int64    `json:"country_id,omitempty" gorm:"index"`

	Country *Country `json:"country,omitempty" gorm:"foreignKey:CountryID;constraint:OnDelete:SET NULL;"`
}

func (Person) TableName() string {
	return "persons"
}

func (p Person) ReactionTarget() Target {
	return Target{Kind: KindPerson, ID: p.ID}
}

func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age in whole years at the given moment.
func (p Person) Age(now time.Time) int {
	years := now.Year() - p.Birthdate.Year()
	if now.Month() < p.Birthdate.Month() ||
		(now.Month() == p.Birthdate.Month() && now.Day() < p.Birthdate.Day()) {
		years--
	}
	return years
}
