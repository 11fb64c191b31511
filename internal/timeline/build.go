package timeline

import (
	"log/slog"

	"github.com/pkordes/fleet-console/internal/dateutil"
	"github.com/pkordes/fleet-console/internal/domain"
)

// Bar colors for the overview. Urgent maintenance overrides its kind color.
const (
	colorSchedule    = "#2563eb"
	colorMaintenance = "#d97706"
	colorUrgent      = "#dc2626"
)

// BuildItems merges fetched vehicle schedules and maintenance orders into
// timeline items, in that order. Records with missing or inverted date ranges
// are dropped with a debug log line; one bad record never blocks the rest.
func BuildItems(schedules []domain.VehicleSchedule, orders []domain.MaintenanceOrder, log *slog.Logger) []Item {
	items := make([]Item, 0, len(schedules)+len(orders))

	for _, s := range schedules {
		r, err := dateutil.NewRange(s.StartDate, s.EndDate)
		if err != nil {
			log.Debug("excluding schedule from timeline", "id", s.ID, "error", err)
			continue
		}
		items = append(items, Item{
			ID:        s.ID,
			VehicleID: s.VehicleID,
			Kind:      KindSchedule,
			Start:     r.Start,
			End:       r.End,
			Title:     s.Title,
			Color:     colorSchedule,
			Details: map[string]any{
				"status":    s.Status,
				"driver_id": s.DriverID,
				"notes":     s.Notes,
			},
		})
	}

	for _, o := range orders {
		r, err := dateutil.NewRange(o.StartDate, o.DueDate)
		if err != nil {
			log.Debug("excluding maintenance order from timeline", "id", o.ID, "error", err)
			continue
		}
		color := colorMaintenance
		if o.Urgent() {
			color = colorUrgent
		}
		items = append(items, Item{
			ID:        o.ID,
			VehicleID: o.VehicleID,
			Kind:      KindMaintenance,
			Start:     r.Start,
			End:       r.End,
			Title:     o.Title,
			Color:     color,
			Urgent:    o.Urgent(),
			Details: map[string]any{
				"status":   o.Status,
				"priority": o.Priority,
				"cost":     o.Cost,
			},
		})
	}

	return items
}
