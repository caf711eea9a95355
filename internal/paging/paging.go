// Package paging holds the pagination and sorting parameters shared by list
// endpoints, and the page envelope returned to clients.
package paging

import "strings"

const (
	DefaultSize = 20
	// MaxSize bounds the response size; a caller-supplied page size above
	// this is clamped, never an error.
	MaxSize = 100
)

// Params are zero-based page parameters plus an optional sort override.
type Params struct {
	Page int
	Size int
	// Sort is the requested sort field; empty or unknown fields fall back
	// to the endpoint's default ordering.
	Sort string
	Desc bool
}

// Normalize clamps the page index and size into range. maxSize <= 0 means
// use the package default cap.
func (p Params) Normalize(maxSize int) Params {
	if maxSize <= 0 {
		maxSize = MaxSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

// Limit and Offset translate the page parameters for SQL.
func (p Params) Limit() int  { return p.Size }
func (p Params) Offset() int { return p.Page * p.Size }

// OrderBy resolves the requested sort against a whitelist of column names.
// Unknown or empty fields silently use defaultExpr. The stable tiebreak
// column is always appended so repeated queries page deterministically.
func (p Params) OrderBy(allowed map[string]string, defaultExpr, tiebreak string) string {
	col, ok := allowed[strings.TrimSpace(p.Sort)]
	if !ok {
		return defaultExpr + ", " + tiebreak + " ASC"
	}
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", " + tiebreak + " ASC"
}

// Page is the standard list envelope.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage computes the page metadata for a result slice and total row count.
func NewPage[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Size > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Items:         items,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
