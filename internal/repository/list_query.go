package repository

import "strings"

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// MaxPerPage caps the page size a client can request
const MaxPerPage = 100

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Normalize clamps paging values into range
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 0 {
		q.PerPage = 0
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}
}

// orderClause builds an ORDER BY clause from an allowlist of sortable columns
func (q *ListQuery) orderClause(allowed map[string]bool, fallback string) string {
	column := strings.ToLower(strings.TrimSpace(q.SortBy))
	if !allowed[column] {
		return fallback
	}
	if strings.EqualFold(q.SortDir, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}
