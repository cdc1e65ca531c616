package repository

// Page is a 1-based page window used by listing operations.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// PageMeta describes where a page sits in the full result set.
// PrevPage and NextPage are nil when the neighbouring page does not exist.
type PageMeta struct {
	Page        int
	Limit       int
	Total       int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    *int
	NextPage    *int
}

// NewPageMeta derives paging flags for page p over total matching rows.
// An empty result still counts as one page.
func NewPageMeta(p Page, total int) PageMeta {
	m := PageMeta{Page: p.Number, Limit: p.Limit, Total: total, TotalPages: 1}
	if p.Limit > 0 && total > 0 {
		m.TotalPages = (total + p.Limit - 1) / p.Limit
	}
	if m.Page > 1 {
		prev := m.Page - 1
		m.HasPrevPage = true
		m.PrevPage = &prev
	}
	if m.Page < m.TotalPages {
		next := m.Page + 1
		m.HasNextPage = true
		m.NextPage = &next
	}
	return m
}

// PageResult carries one page of items plus its paging metadata.
type PageResult[T any] struct {
	Items []T
	PageMeta
}
