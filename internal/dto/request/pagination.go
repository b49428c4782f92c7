package request

import (
	"net/url"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"perPage" validate:"min=1,max=100"`
}

// PaginationFromQuery reads page and perPage, falling back to defaults on
// missing or invalid values and capping perPage.
func PaginationFromQuery(q url.Values) PaginatedRequest {
	p := PaginatedRequest{Page: 1, PerPage: DefaultPerPage}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("perPage")); err == nil && v > 0 {
		p.PerPage = min(v, MaxPerPage)
	}
	return p
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}
