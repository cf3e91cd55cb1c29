package panel

// PageSize is the number of rows shown per table page
const PageSize = 10

// Pagination describes one page of a fully fetched list
type Pagination struct {
	Page       int
	TotalPages int
	Total      int
	Start      int // zero-based, inclusive
	End        int // zero-based, exclusive
}

// Paginate clamps page into [1, TotalPages]. An empty list still has one page.
func Paginate(total, page, size int) Pagination {
	if size <= 0 {
		size = PageSize
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := min(start+size, total)

	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		Start:      start,
		End:        end,
	}
}

// Slice returns the items of the current page
func Slice[T any](items []T, p Pagination) []T {
	if p.Start >= len(items) {
		return nil
	}
	return items[p.Start:min(p.End, len(items))]
}

// HasPrev reports whether a previous page exists
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Prev is the previous page number
func (p Pagination) Prev() int { return max(p.Page-1, 1) }

// Next is the next page number
func (p Pagination) Next() int { return min(p.Page+1, p.TotalPages) }

// Pages lists page numbers for the pager
func (p Pagination) Pages() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// FirstItem is the one-based index of the first row shown
func (p Pagination) FirstItem() int {
	if p.Total == 0 {
		return 0
	}
	return p.Start + 1
}
