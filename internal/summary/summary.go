// Package summary derives dashboard counts from a fetched collection. The
// backend usually serves these pre-aggregated; when it does not, Reduce
// computes an equivalent record client-side so rendering never cares which
// path produced it.
package summary

import (
	"github.com/google/uuid"

	"github.com/pkordes/fleet-console/internal/domain"
)

// Entry is the flattened view of one collection item that aggregation needs.
// Adapters in this package build entries from each domain entity.
type Entry struct {
	ID     uuid.UUID
	Label  string
	Status string
	Urgent bool
	Active bool
	// Cost participates in the extremal reduction only when HasCost is set;
	// entities without a cost field never produce a zero-cost winner.
	Cost    float64
	HasCost bool
}

// Reduce aggregates entries into summary stats: per-status counts, urgent
// and active counts, and the max/min cost entries (ties broken by first
// encountered in input order). An empty input yields zero counts and no
// extremal entries rather than an error.
func Reduce(entries []Entry) domain.SummaryStats {
	stats := domain.SummaryStats{
		TotalItems: len(entries),
		PerStatus:  make(map[string]int),
	}

	var maxE, minE *Entry
	for i := range entries {
		e := &entries[i]
		if e.Status != "" {
			stats.PerStatus[e.Status]++
		}
		if e.Urgent {
			stats.UrgentCount++
		}
		if e.Active {
			stats.ActiveCount++
		}
		if !e.HasCost {
			continue
		}
		if maxE == nil || e.Cost > maxE.Cost {
			maxE = e
		}
		if minE == nil || e.Cost < minE.Cost {
			minE = e
		}
	}

	if maxE != nil {
		stats.MaxCost = &domain.CostExtreme{ID: maxE.ID, Label: maxE.Label, Cost: maxE.Cost}
		stats.MinCost = &domain.CostExtreme{ID: minE.ID, Label: minE.Label, Cost: minE.Cost}
	}
	return stats
}

// Resolve prefers a backend-supplied summary and falls back to reducing the
// collection when the backend has none.
func Resolve(backend *domain.SummaryStats, entries []Entry) domain.SummaryStats {
	if backend != nil {
		return *backend
	}
	return Reduce(entries)
}

// FromVehicles adapts vehicles for aggregation. Vehicles carry no cost.
func FromVehicles(vehicles []domain.Vehicle) []Entry {
	entries := make([]Entry, len(vehicles))
	for i, v := range vehicles {
		entries[i] = Entry{
			ID:     v.ID,
			Label:  v.Name,
			Status: v.Status,
			Active: v.Status == domain.VehicleStatusActive,
		}
	}
	return entries
}

// FromDrivers adapts drivers for aggregation.
func FromDrivers(drivers []domain.Driver) []Entry {
	entries := make([]Entry, len(drivers))
	for i, d := range drivers {
		entries[i] = Entry{
			ID:     d.ID,
			Label:  d.Name,
			Status: d.Status,
			Active: d.Status == domain.DriverStatusActive,
		}
	}
	return entries
}

// FromOrders adapts maintenance orders for aggregation; the cost extremes on
// the maintenance dashboard come from this path.
func FromOrders(orders []domain.MaintenanceOrder) []Entry {
	entries := make([]Entry, len(orders))
	for i, o := range orders {
		entries[i] = Entry{
			ID:      o.ID,
			Label:   o.Title,
			Status:  o.Status,
			Urgent:  o.Urgent(),
			Active:  o.Status == domain.OrderStatusInProgress,
			Cost:    o.Cost,
			HasCost: true,
		}
	}
	return entries
}

// FromSchedules adapts vehicle schedules for aggregation.
func FromSchedules(schedules []domain.VehicleSchedule) []Entry {
	entries := make([]Entry, len(schedules))
	for i, s := range schedules {
		entries[i] = Entry{
			ID:     s.ID,
			Label:  s.Title,
			Status: s.Status,
			Active: s.Status == domain.ScheduleStatusActive,
		}
	}
	return entries
}
