package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepo struct {
	db *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// List returns one page of movies matching p and the total match count.
func (r *MovieRepo) List(ctx context.Context, p filter.Params, pageSize int) ([]models.Movie, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Movie{}).Scopes(filter.Where(filter.Movies, p))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	var list []models.Movie
	if err := base().
		Preload("Category").
		Preload("Genres").
		Scopes(filter.OrderBy(filter.Movies, p), filter.Paginate(p.Page, pageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	return list, total, nil
}

// GetByID loads a movie with everything the detail page shows.
func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		Preload("Countries", func(db *gorm.DB) *gorm.DB { return db.Order("countries.name") }).
		Preload("Directors").
		Preload("Actors", func(db *gorm.DB) *gorm.DB { return db.Order("movie_actors.id") }).
		Preload("Actors.Person").
		First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Latest returns the n most recently published movies.
func (r *MovieRepo) Latest(ctx context.Context, n int) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Order("pub_date desc").
		Order("id desc").
		Limit(n).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("latest movies: %w", err)
	}
	return list, nil
}

// Create inserts m and its links. Genres, Countries and Directors are
// referenced by ID only; the rows must already exist.
func (r *MovieRepo) Create(ctx context.Context, m *models.Movie) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		return saveMovieLinks(tx, m)
	})
	if err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

// Delete removes the movie along with its comments, ratings, links and
// every reaction or bookmark pointing at it or its comments.
func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Movie
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&m, id).Error; err != nil {
			return err
		}

		var commentIDs []int64
		if err := tx.Model(&models.Comment{}).Where("movie_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if err := deleteTargetRows(tx, models.KindComment, commentIDs); err != nil {
			return err
		}
		if err := deleteTargetRows(tx, models.KindMovie, []int64{id}); err != nil {
			return err
		}

		if err := tx.Model(&models.Comment{}).Where("movie_id = ?", id).Update("major_id", nil).Error; err != nil {
			return err
		}
		for _, model := range []any{&models.Comment{}, &models.Rating{}, &models.MovieActor{}} {
			if err := tx.Where("movie_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		for _, table := range []string{"movie_genres", "movie_countries", "movie_directors"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE movie_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Movie{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

func saveMovieLinks(tx *gorm.DB, m *models.Movie) error {
	links := []struct {
		table, column string
		ids           []int64
	}{
		{"movie_genres", "genre_id", pluckIDs(m.Genres, func(g models.Genre) int64 { return g.ID })},
		{"movie_countries", "country_id", pluckIDs(m.Countries, func(c models.Country) int64 { return c.ID })},
		{"movie_directors", "person_id", pluckIDs(m.Directors, func(p models.Person) int64 { return p.ID })},
	}
	for _, l := range links {
		if err := replaceJoinRows(tx, l.table, l.column, m.ID, l.ids); err != nil {
			return fmt.Errorf("link %s: %w", l.table, err)
		}
	}

	if err := tx.Where("movie_id = ?", m.ID).Delete(&models.MovieActor{}).Error; err != nil {
		return err
	}
	for i := range m.Actors {
		m.Actors[i].ID = 0
		m.Actors[i].MovieID = m.ID
	}
	if len(m.Actors) > 0 {
		if err := tx.Omit("Person").Create(&m.Actors).Error; err != nil {
			return fmt.Errorf("link actors: %w", err)
		}
	}
	return nil
}

func replaceJoinRows(tx *gorm.DB, table, column string, movieID int64, ids []int64) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE movie_id = ?", movieID).Error; err != nil {
		return err
	}
	seen := make(map[int64]bool, len(ids))
	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, map[string]any{"movie_id": movieID, column: id})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Table(table).Create(rows).Error
}
