package filter

import (
	"errors"
	"net/url"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPageOutOfRange is returned for a page number past the last page.
var ErrPageOutOfRange = errors.New("page out of range")

// Strategy describes how one entity kind is filtered and sorted.
type Strategy interface {
	Kind() models.TargetKind
	Table() string
	// SortColumns maps public sort names to column names.
	SortColumns() map[string]string
	DefaultOrder() []SortField

	parse(q url.Values, p *Params, errs fieldErrors)
	where(db *gorm.DB, p Params) *gorm.DB
}

// For returns the strategy serving kind, or nil when the kind is not listable.
func For(kind models.TargetKind) Strategy {
	switch kind {
	case models.KindMovie:
		return Movies
	case models.KindPerson:
		return Persons
	}
	return nil
}

// Where applies every predicate in p. Dimensions combine with AND.
func Where(s Strategy, p Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = s.where(db, p)
		if p.BookmarkedBy != "" {
			db = db.Where(s.Table()+".id IN (SELECT target_id FROM bookmarks WHERE user_id = ? AND target_kind = ?)",
				p.BookmarkedBy, s.Kind())
		}
		return db
	}
}

// OrderBy applies p.Sort, or the default order when empty, then id as tie-breaker.
func OrderBy(s Strategy, p Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		fields := p.Sort
		if len(fields) == 0 {
			fields = s.DefaultOrder()
		}
		columns := s.SortColumns()
		for _, f := range fields {
			col, ok := columns[f.Field]
			if !ok {
				continue
			}
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Table: s.Table(), Name: col},
				Desc:   f.Desc,
			})
		}
		return db.Order(clause.OrderByColumn{Column: clause.Column{Table: s.Table(), Name: "id"}})
	}
}

// Paginate limits the query to one page.
func Paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}

// Page describes the slice of results returned.
type Page struct {
	Number      int   `json:"page"`
	Size        int   `json:"page_size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage validates number against total. The first page always exists,
// even when empty.
func NewPage(number, size int, total int64) (Page, error) {
	totalPages := int((total + int64(size) - 1) / int64(size))
	if number < 1 || (number > 1 && number > totalPages) {
		return Page{}, ErrPageOutOfRange
	}
	return Page{
		Number:      number,
		Size:        size,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}, nil
}
