package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex;not null"`
}

func (Genre) TableName() string {
	return "genres"
}

type Country struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

func (Country) TableName() string {
	return "countries"
}
