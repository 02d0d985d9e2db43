package models

// All lists every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Category{},
		&Genre{},
		&Country{},
		&Person{},
		&Movie{},
		&MovieActor{},
		&Rating{},
		&Comment{},
		&Reaction{},
		&Bookmark{},
	}
}
