package db

import (
	"fmt"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest is the caller-facing pagination window, always 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest reads page/limit query strings, falling back to defaults
// and coercing both to >= 1. Malformed numbers behave like absent ones.
func ParsePageRequest(pageRaw, limitRaw string) PageRequest {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// PageSuffix renders the ORDER BY + LIMIT/OFFSET tail of a page query. The
// order column is always a recency timestamp; tieCol (normally the primary
// key) keeps pagination deterministic when timestamps collide. next is the
// first free placeholder ordinal after the predicate's parameters; limit and
// offset bind to $next and $next+1.
func PageSuffix(orderCol, tieCol string, next int) string {
	return fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d", orderCol, tieCol, next, next+1)
}

// Pagination is the metadata block attached to every list response.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func NewPagination(total int, req PageRequest) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}
