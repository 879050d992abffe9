package helpers

import (
	"net/http"
	"strconv"

	"filetags/internal/domain"
)

// Page size applied when page_size is missing or invalid, and its cap.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationMeta describes the page returned by a paginated listing.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ParsePageRequest reads page and page_size from the query string. Missing
// or non-positive values fall back to page 1 and DefaultPageSize.
func ParsePageRequest(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	p := domain.PageRequest{Page: 1, PageSize: DefaultPageSize}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v > 0 {
		p.PageSize = min(v, MaxPageSize)
	}
	return p
}

// Paginate copies the items on page p out of items. The page is never nil.
func Paginate[T any](items []T, p domain.PageRequest) ([]T, PaginationMeta) {
	start, end := p.Window(len(items))
	page := append(make([]T, 0, end-start), items[start:end]...)
	return page, PaginationMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      len(items),
		TotalPages: p.PageCount(len(items)),
	}
}
