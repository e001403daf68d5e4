package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page    int
	PerPage int
}

// Offset returns the row offset for the current page (0-based).
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// Pages returns the total page count for the given match total, computed as
// ceiling(total / PerPage); 0 when PerPage is 0.
func (p PaginationParams) Pages(total int) int {
	if p.PerPage <= 0 {
		return 0
	}
	return (total + p.PerPage - 1) / p.PerPage
}
