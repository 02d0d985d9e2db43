package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PersonRepo struct {
	db *gorm.DB
}

func NewPersonRepo(db *gorm.DB) *PersonRepo {
	return &PersonRepo{db: db}
}

// List returns one page of persons matching p and the total match count.
func (r *PersonRepo) List(ctx context.Context, p filter.Params, pageSize int) ([]models.Person, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Person{}).Scopes(filter.Where(filter.Persons, p))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count persons: %w", err)
	}

	var list []models.Person
	if err := base().
		Preload("Country").
		Scopes(filter.OrderBy(filter.Persons, p), filter.Paginate(p.Page, pageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list persons: %w", err)
	}
	return list, total, nil
}

func (r *PersonRepo) GetByID(ctx context.Context, id int64) (*models.Person, error) {
	var p models.Person
	if err := r.db.WithContext(ctx).Preload("Country").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Person{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Filmography returns the movies a person acted in and directed, newest first.
func (r *PersonRepo) Filmography(ctx context.Context, id int64) (acted, directed []models.Movie, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Where("id IN (SELECT movie_id FROM movie_actors WHERE person_id = ?)", id).
		Order("release_year desc").Order("id").
		Find(&acted).Error; err != nil {
		return nil, nil, fmt.Errorf("acted in: %w", err)
	}
	if err = db.Where("id IN (SELECT movie_id FROM movie_directors WHERE person_id = ?)", id).
		Order("release_year desc").Order("id").
		Find(&directed).Error; err != nil {
		return nil, nil, fmt.Errorf("directed: %w", err)
	}
	return acted, directed, nil
}

func (r *PersonRepo) Create(ctx context.Context, p *models.Person) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

// Delete removes the person, their cast and director links, and every
// reaction or bookmark pointing at them.
func (r *PersonRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Person
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&p, id).Error; err != nil {
			return err
		}
		if err := deleteTargetRows(tx, models.KindPerson, []int64{id}); err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", id).Delete(&models.MovieActor{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM movie_directors WHERE person_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}
