package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"moviehub/internal/microservices/http-api/repository"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidVote      = errors.New("vote must be 1 or -1")
	ErrInvalidScore     = errors.New("score must be between 1 and 10")
	ErrInvalidTarget    = errors.New("unsupported target kind")
	ErrInvalidParent    = errors.New("parent must be a top-level comment on this movie")
	ErrInvalidReference = errors.New("unknown reference")
)

// translate maps repository errors onto the service sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case repository.IsDuplicateKey(err):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// slugify lowercases s and joins its alphanumeric runs with dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
