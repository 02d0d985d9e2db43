package dto

import (
	"time"

	"moviehub/internal/microservices/http-api/models"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreatePersonDTO used for POST /person/create/
type CreatePersonDTO struct {
	FirstName   string  `json:"first_name" form:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" form:"last_name" binding:"required,max=100"`
	Birthdate   string  `json:"birthdate" form:"birthdate" binding:"required,datetime=2006-01-02,notfuture"`
	Description *string `json:"description,omitempty" form:"description"`
	Gender      string  `json:"gender" form:"gender" binding:"omitempty,oneof=M F U"`
	CountryID   *int64  `json:"country,omitempty" form:"country" binding:"omitempty,gt=0"`
}

// ToModel assumes the DTO passed binding, so Birthdate parses.
func (d CreatePersonDTO) ToModel() models.Person {
	birthdate, _ := time.Parse(DateLayout, d.Birthdate)
	gender := models.Gender(d.Gender)
	if gender == "" {
		gender = models.GenderUnknown
	}
	return models.Person{
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Birthdate:   birthdate,
		Description: d.Description,
		Gender:      gender,
		CountryID:   d.CountryID,
	}
}

// PersonBrief is the smallest person reference.
type PersonBrief struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Picture   *string `json:"picture,omitempty"`
}

// PersonListItem is one row of a person listing.
type PersonListItem struct {
	PersonBrief
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	IsInBookmarks bool   `json:"is_in_bookmarks"`
}

// PersonDetail is the person page.
type PersonDetail struct {
	PersonBrief
	Birthdate     string           `json:"birthdate"`
	Age           int              `json:"age"`
	Description   *string          `json:"description,omitempty"`
	Gender        string           `json:"gender"`
	Country       *CountryResponse `json:"country,omitempty"`
	Votes         VoteSummary      `json:"votes"`
	IsInBookmarks bool             `json:"is_in_bookmarks"`
	ActedIn       []MovieBrief     `json:"acted_in"`
	Directed      []MovieBrief     `json:"directed"`
}

func PersonBriefFromModel(p models.Person) PersonBrief {
	return PersonBrief{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Picture: p.Picture}
}

func PersonListItemFromModel(p models.Person, now time.Time) PersonListItem {
	return PersonListItem{
		PersonBrief: PersonBriefFromModel(p),
		Age:         p.Age(now),
		Gender:      p.Gender.Display(),
	}
}

func PersonDetailFromModel(p models.Person, now time.Time) PersonDetail {
	d := PersonDetail{
		PersonBrief: PersonBriefFromModel(p),
		Birthdate:   p.Birthdate.Format(DateLayout),
		Age:         p.Age(now),
		Description: p.Description,
		Gender:      p.Gender.Display(),
		ActedIn:     []MovieBrief{},
		Directed:    []MovieBrief{},
	}
	if p.Country != nil {
		c := CountryFromModel(*p.Country)
		d.Country = &c
	}
	return d
}
