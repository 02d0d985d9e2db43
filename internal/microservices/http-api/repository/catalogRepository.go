package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// CatalogRepo serves the lookup tables: categories, genres and countries.
type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Genres(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *CatalogRepo) Countries(ctx context.Context) ([]models.Country, error) {
	var list []models.Country
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get countries: %w", err)
	}
	return list, nil
}

func (r *CatalogRepo) Categories(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return list, nil
}

func (r *CatalogRepo) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepo) CreateGenre(ctx context.Context, g *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

func (r *CatalogRepo) CreateCountry(ctx context.Context, c *models.Country) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create country: %w", err)
	}
	return nil
}

func (r *CatalogRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// DeleteCategory removes the category; its movies become uncategorized.
func (r *CatalogRepo) DeleteCategory(ctx context.Context, slug string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Category
		if err := tx.Where("slug = ?", slug).First(&c).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Movie{}).Where("category_id = ?", c.ID).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&c).Error
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// MissingIDs returns the ids with no row in model's table.
func (r *CatalogRepo) MissingIDs(ctx context.Context, model any, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := r.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("check ids: %w", err)
	}
	present := make(map[int64]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	var missing []int64
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *CatalogRepo) GenreByID(ctx context.Context, id int64) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *CatalogRepo) CountryByID(ctx context.Context, id int64) (*models.Country, error) {
	var c models.Country
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
