// Package timeline converts date-ranged fleet items into pixel-positioned
// bars for the Gantt-style schedules overview. The layout is pure
// computation: given the same window and item order it always produces the
// same positions, so re-renders never shuffle bars.
package timeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-console/internal/dateutil"
)

// Item kinds shown on the overview.
const (
	KindSchedule    = "schedule"
	KindMaintenance = "maintenance"
)

// Window is the visible slice of the calendar: Days calendar days starting at
// Start (inclusive on both ends).
type Window struct {
	Start time.Time `json:"start"`
	Days  int       `json:"days"`
}

// NewWindow normalizes start to midnight and clamps days to at least 1.
func NewWindow(start time.Time, days int) Window {
	if days < 1 {
		days = 1
	}
	return Window{Start: dateutil.Midnight(start), Days: days}
}

// End returns the last calendar day of the window (inclusive).
func (w Window) End() time.Time {
	return dateutil.AddDays(w.Start, w.Days-1)
}

// Shift returns the window moved by n days; n may be negative.
func (w Window) Shift(n int) Window {
	return Window{Start: dateutil.AddDays(w.Start, n), Days: w.Days}
}

// WithStart returns the window repositioned to begin on the given day.
func (w Window) WithStart(start time.Time) Window {
	return NewWindow(start, w.Days)
}

// WithDays returns the window resized to the given duration.
func (w Window) WithDays(days int) Window {
	return NewWindow(w.Start, days)
}

// Metrics are the pixel constants of the rendered timeline.
type Metrics struct {
	// DayWidth is the horizontal width of one calendar day.
	DayWidth int `json:"dayWidth"`
	// Gap is the whitespace trimmed off the right edge of every bar.
	Gap int `json:"gap"`
	// MinWidth is the floor for bar widths so single-day items stay clickable.
	MinWidth int `json:"minWidth"`
}

// Item is one time-ranged entry on the overview, built from either a vehicle
// schedule or a maintenance order. Start/End carry the normalized inclusive
// range; Details is opaque to the layout.
type Item struct {
	ID        uuid.UUID      `json:"id"`
	VehicleID uuid.UUID      `json:"vehicleId"`
	Kind      string         `json:"kind"`
	Start     time.Time      `json:"start"`
	End       time.Time      `json:"end"`
	Title     string         `json:"title"`
	Color     string         `json:"color"`
	Urgent    bool           `json:"urgent"`
	Details   map[string]any `json:"details,omitempty"`
}

// Position is the computed placement of one visible item.
type Position struct {
	Left  int `json:"leftPx"`
	Width int `json:"widthPx"`
	Slot  int `json:"rowSlot"`
}

// Place maps each item to its position inside the window, or nil when the
// item does not overlap the window at all. The returned slice is parallel to
// items. Items sharing a vehicle row alternate between two slots, assigned by
// their index within the vehicle group, so overlapping bars never cover each
// other completely and the stacking is stable across re-renders.
func Place(w Window, m Metrics, items []Item) []*Position {
	positions := make([]*Position, len(items))
	windowStart := dateutil.Midnight(w.Start)
	windowEnd := w.End()
	slotCounts := make(map[uuid.UUID]int, len(items))

	for i, item := range items {
		start := dateutil.Midnight(item.Start)
		end := dateutil.Midnight(item.End)
		if end.Before(start) {
			continue // malformed range, skip rather than fail the render
		}
		if end.Before(windowStart) || start.After(windowEnd) {
			continue // entirely outside the window
		}

		clippedStart := start
		if clippedStart.Before(windowStart) {
			clippedStart = windowStart
		}
		clippedEnd := end
		if clippedEnd.After(windowEnd) {
			clippedEnd = windowEnd
		}

		left := (dateutil.DaysBetween(windowStart, clippedStart) - 1) * m.DayWidth
		if left < 0 {
			left = 0
		}
		width := dateutil.DaysBetween(clippedStart, clippedEnd)*m.DayWidth - m.Gap
		if width < m.MinWidth {
			width = m.MinWidth
		}

		slot := slotCounts[item.VehicleID] % 2
		slotCounts[item.VehicleID]++

		positions[i] = &Position{Left: left, Width: width, Slot: slot}
	}
	return positions
}
