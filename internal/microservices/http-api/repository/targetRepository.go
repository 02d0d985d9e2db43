package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// TargetRepo resolves a Target to its row.
type TargetRepo struct {
	db *gorm.DB
}

func NewTargetRepo(db *gorm.DB) *TargetRepo {
	return &TargetRepo{db: db}
}

func targetModel(kind models.TargetKind) (any, error) {
	switch kind {
	case models.KindMovie:
		return &models.Movie{}, nil
	case models.KindPerson:
		return &models.Person{}, nil
	case models.KindComment:
		return &models.Comment{}, nil
	}
	return nil, fmt.Errorf("unknown target kind %q", kind)
}

// Exists reports whether the target's row is present.
func (r *TargetRepo) Exists(ctx context.Context, target models.Target) (bool, error) {
	model, err := targetModel(target.Kind)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", target.ID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup %s: %w", target, err)
	}
	return count > 0, nil
}
