package domain

import "time"

// Sort directions accepted by the backend list endpoints.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams carries the query parameters for a paginated list request:
// search term, status filters, sort column/direction, and page/limit.
// Page is 1-indexed. Limit is capped at 100 by NewListParams.
type ListParams struct {
	// Search is a free-text term matched by the backend.
	Search string
	// Filters is the set of status values to include. Empty means all.
	Filters []string
	// SortBy is the column to sort on; empty lets the backend pick.
	SortBy string
	// SortOrder is SortAsc or SortDesc.
	SortOrder string
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items per page.
	Limit int

	// From and To optionally restrict date-ranged entities to a window.
	// Used by the schedules overview; nil means unbounded.
	From *time.Time
	To   *time.Time
}

// NewListParams builds a ListParams with sane paging defaults
// (page=1, limit=20). The limit is capped at 100 to prevent runaway requests.
func NewListParams() ListParams {
	return ListParams{Page: 1, Limit: 20, SortOrder: SortAsc}
}

// Normalize clamps page and limit into their valid ranges. Called by the API
// client before encoding so a bad caller can never produce a bad request.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.SortOrder != SortDesc {
		p.SortOrder = SortAsc
	}
	return p
}

// Page is one page of a backend list response. The pagination fields are
// echoed from the backend verbatim; the console does not recompute them.
type Page[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}
