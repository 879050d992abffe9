package domain

// PageRequest selects one page of an ordered listing. Page is 1-based.
type PageRequest struct {
	Page     int
	PageSize int
}

// Window returns the half-open range [start, end) of the requested page in
// a listing of total items. A page past the end yields the empty range
// [total, total).
func (p PageRequest) Window(total int) (start, end int) {
	if p.PageSize <= 0 {
		return 0, 0
	}
	if skip := p.Page - 1; skip > 0 {
		if skip > total/p.PageSize {
			return total, total
		}
		start = skip * p.PageSize
	}
	return start, min(start+p.PageSize, total)
}

// PageCount is the number of pages needed to list total items.
func (p PageRequest) PageCount(total int) int {
	if p.PageSize <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}
