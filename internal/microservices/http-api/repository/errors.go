package repository

import (
	"errors"
	"strings"

	"moviehub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// gorm translates most of these already; raw driver errors still show up
// from Exec and from drivers opened without TranslateError.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// deleteTargetRows removes reactions and bookmarks pointing at the given rows.
func deleteTargetRows(tx *gorm.DB, kind models.TargetKind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&models.Reaction{}).Error; err != nil {
		return err
	}
	return tx.Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&models.Bookmark{}).Error
}

func pluckIDs[T any](rows []T, id func(T) int64) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = id(r)
	}
	return out
}
