package query

import "github.com/pkordes/fleet-console/internal/domain"

// State is the committed query of one list page: search term, status filter
// set, sort column/direction, and paging. It is a value type; the machine
// hands out copies so callers can never mutate committed state.
type State struct {
	Search    string   `json:"search"`
	Filters   []string `json:"filters"`
	SortBy    string   `json:"sortBy"`
	SortOrder string   `json:"sortOrder"`
	Page      int      `json:"page"`
	PageSize  int      `json:"pageSize"`
}

// Defaults are the per-entity reset targets for ClearAll. The filter default
// is deliberately not always empty: the vehicle-schedules page resets to
// {active, scheduled} while the other pages reset to no filters.
type Defaults struct {
	Filters   []string
	SortBy    string
	SortOrder string
	PageSize  int
}

// Params converts the state into backend list parameters.
func (s State) Params() domain.ListParams {
	return domain.ListParams{
		Search:    s.Search,
		Filters:   append([]string(nil), s.Filters...),
		SortBy:    s.SortBy,
		SortOrder: s.SortOrder,
		Page:      s.Page,
		Limit:     s.PageSize,
	}.Normalize()
}

// HasFilter reports whether value is in the filter set.
func (s State) HasFilter(value string) bool {
	for _, f := range s.Filters {
		if f == value {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	s.Filters = append([]string(nil), s.Filters...)
	return s
}

func stateFromDefaults(d Defaults) State {
	st := State{
		Filters:   append([]string(nil), d.Filters...),
		SortBy:    d.SortBy,
		SortOrder: d.SortOrder,
		Page:      1,
		PageSize:  d.PageSize,
	}
	if st.SortOrder == "" {
		st.SortOrder = domain.SortAsc
	}
	if st.PageSize < 1 {
		st.PageSize = 20
	}
	return st
}
