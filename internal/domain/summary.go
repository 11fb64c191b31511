package domain

import "github.com/google/uuid"

// CostExtreme identifies the entity with the highest or lowest cost in a
// collection, for the dashboard's "most/least expensive" cards.
type CostExtreme struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Cost  float64   `json:"cost"`
}

// SummaryStats are the dashboard counts for one entity collection.
// The backend may supply them pre-aggregated; otherwise the summary package
// derives them client-side. Both paths produce this exact shape so rendering
// is agnostic to the source.
type SummaryStats struct {
	TotalItems  int            `json:"totalItems"`
	PerStatus   map[string]int `json:"perStatusCounts"`
	UrgentCount int            `json:"urgentCount"`
	ActiveCount int            `json:"activeCount"`
	// MaxCost and MinCost are nil when the collection is empty or costless.
	MaxCost *CostExtreme `json:"maxCost,omitempty"`
	MinCost *CostExtreme `json:"minCost,omitempty"`
}
