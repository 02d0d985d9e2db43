// Package filter turns list query parameters into gorm scopes.
//
// One engine serves every listable kind; the per-kind differences (allowed
// filters, sortable columns, default ordering) live in a Strategy.
package filter

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"moviehub/internal/microservices/http-api/models"
)

// DefaultPageSize is the list page size.
const DefaultPageSize = 8

// SortField is one `sort` query value: a column name with optional "-" prefix.
type SortField struct {
	Field string
	Desc  bool
}

func (f SortField) String() string {
	if f.Desc {
		return "-" + f.Field
	}
	return f.Field
}

// Params is the parsed, validated form of a list request.
type Params struct {
	// movies
	Genres    []int64
	Countries []int64
	MinRating *float64
	StartYear *int
	EndYear   *int

	// persons
	Profile string
	Gender  models.Gender

	// shared
	Search string
	Sort   []SortField
	Page   int

	// fixed scopes set by handlers, never from the query string
	CategorySlug string
	BookmarkedBy string
}

// ValidationError maps query parameter names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid query: " + strings.Join(parts, "; ")
}

type fieldErrors map[string]string

func (fe fieldErrors) add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// Parse reads q according to the strategy. Empty values count as absent.
func Parse(s Strategy, q url.Values) (Params, error) {
	errs := fieldErrors{}
	p := Params{
		Search: strings.TrimSpace(q.Get("search")),
		Page:   1,
	}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs.add("page", "must be a positive integer")
		} else {
			p.Page = page
		}
	}

	columns := s.SortColumns()
	for _, raw := range q["sort"] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		f := SortField{Field: strings.TrimPrefix(raw, "-"), Desc: strings.HasPrefix(raw, "-")}
		if _, ok := columns[f.Field]; !ok {
			errs.add("sort", fmt.Sprintf("unknown field %q", f.Field))
			continue
		}
		p.Sort = append(p.Sort, f)
	}

	s.parse(q, &p, errs)
	return p, errs.err()
}

func parseIDs(q url.Values, key string, errs fieldErrors) []int64 {
	var ids []int64
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				errs.add(key, fmt.Sprintf("%q is not a valid id", part))
				continue
			}
			ids = append(ids, id)
		}
	}
	return ids
}

func parseInt(q url.Values, key string, errs fieldErrors) *int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errs.add(key, "must be an integer")
		return nil
	}
	return &v
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
