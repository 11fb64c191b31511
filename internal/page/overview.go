package page

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/fleet-console/internal/dateutil"
	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/timeline"
)

// overviewFetchLimit bounds how many items one overview window loads. The
// backend caps limits at 100 anyway; a window holding more is unreadable.
const overviewFetchLimit = 100

// OverviewConfig wires the schedules overview controller.
type OverviewConfig struct {
	Schedules func(ctx context.Context, p domain.ListParams) (domain.Page[domain.VehicleSchedule], error)
	Orders    func(ctx context.Context, p domain.ListParams) (domain.Page[domain.MaintenanceOrder], error)
	Metrics   timeline.Metrics
	// DefaultDays is the initial window duration; zero means 7.
	DefaultDays int
	Log         *slog.Logger
	// Now supplies "today" for the initial window and the Today action;
	// nil uses time.Now.
	Now func() time.Time
}

// OverviewRow pairs one visible timeline item with its computed position.
type OverviewRow struct {
	Item     timeline.Item     `json:"item"`
	Position timeline.Position `json:"position"`
}

// OverviewView is the render state of the schedules overview.
type OverviewView struct {
	Window     timeline.Window  `json:"window"`
	Metrics    timeline.Metrics `json:"metrics"`
	TotalWidth int              `json:"totalWidthPx"`
	// Days holds one date-only label per visible column, for the header row.
	Days  []string      `json:"days"`
	Rows  []OverviewRow `json:"rows"`
	Error string        `json:"error,omitempty"`
}

// OverviewController owns the timeline window of the schedules overview and
// rebuilds the layout after every navigation. Fetches are synchronous under
// the caller's context; overlapping refreshes are resolved by generation:
// only the latest one may apply its result.
type OverviewController struct {
	mu        sync.Mutex
	schedules func(ctx context.Context, p domain.ListParams) (domain.Page[domain.VehicleSchedule], error)
	orders    func(ctx context.Context, p domain.ListParams) (domain.Page[domain.MaintenanceOrder], error)
	metrics   timeline.Metrics
	log       *slog.Logger
	now       func() time.Time

	window   timeline.Window
	gen      uint64
	items    []timeline.Item
	placed   []*timeline.Position
	loaded   bool
	fetchErr error
}

// NewOverview builds the overview controller with its window starting today.
func NewOverview(cfg OverviewConfig) *OverviewController {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	days := cfg.DefaultDays
	if days <= 0 {
		days = 7
	}
	return &OverviewController{
		schedules: cfg.Schedules,
		orders:    cfg.Orders,
		metrics:   cfg.Metrics,
		log:       cfg.Log,
		now:       now,
		window:    timeline.NewWindow(now(), days),
	}
}

// NextWeek advances the window by seven days and reloads.
func (c *OverviewController) NextWeek(ctx context.Context) error {
	return c.navigate(ctx, func(w timeline.Window) timeline.Window { return w.Shift(7) })
}

// PrevWeek moves the window back by seven days and reloads.
func (c *OverviewController) PrevWeek(ctx context.Context) error {
	return c.navigate(ctx, func(w timeline.Window) timeline.Window { return w.Shift(-7) })
}

// Today jumps the window start to the current day and reloads.
func (c *OverviewController) Today(ctx context.Context) error {
	return c.navigate(ctx, func(w timeline.Window) timeline.Window { return w.WithStart(c.now()) })
}

// JumpTo repositions the window to an explicitly entered date and reloads.
func (c *OverviewController) JumpTo(ctx context.Context, start time.Time) error {
	return c.navigate(ctx, func(w timeline.Window) timeline.Window { return w.WithStart(start) })
}

// SetDays resizes the window duration and reloads.
func (c *OverviewController) SetDays(ctx context.Context, days int) error {
	return c.navigate(ctx, func(w timeline.Window) timeline.Window { return w.WithDays(days) })
}

func (c *OverviewController) navigate(ctx context.Context, move func(timeline.Window) timeline.Window) error {
	c.mu.Lock()
	c.window = move(c.window)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh loads the window's schedules and maintenance orders and rebuilds
// the layout. A refresh superseded by a later one discards its result.
func (c *OverviewController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	w := c.window
	c.mu.Unlock()

	from := w.Start
	to := w.End()
	params := domain.ListParams{Page: 1, Limit: overviewFetchLimit, From: &from, To: &to}

	schedulePage, err := c.schedules(ctx, params)
	if err == nil {
		var orderPage domain.Page[domain.MaintenanceOrder]
		orderPage, err = c.orders(ctx, params)
		if err == nil {
			items := timeline.BuildItems(schedulePage.Items, orderPage.Items, c.log)
			c.apply(gen, w, items, nil)
			return nil
		}
	}
	c.apply(gen, w, nil, err)
	return err
}

func (c *OverviewController) apply(gen uint64, w timeline.Window, items []timeline.Item, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("dropping superseded overview refresh", "gen", gen)
		return
	}
	if err != nil {
		c.fetchErr = err
		return
	}
	c.fetchErr = nil
	c.loaded = true
	c.items = items
	c.placed = timeline.Place(w, c.metrics, items)
}

// Loaded reports whether a refresh has ever applied.
func (c *OverviewController) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// View returns the current render state; only visible items carry rows.
func (c *OverviewController) View() OverviewView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := OverviewView{
		Window:     c.window,
		Metrics:    c.metrics,
		TotalWidth: c.window.Days * c.metrics.DayWidth,
		Days:       make([]string, c.window.Days),
		Rows:       make([]OverviewRow, 0, len(c.items)),
	}
	for i := range v.Days {
		v.Days[i] = dateutil.AddDays(c.window.Start, i).Format(dateutil.DayLayout)
	}
	for i, pos := range c.placed {
		if pos == nil {
			continue
		}
		v.Rows = append(v.Rows, OverviewRow{Item: c.items[i], Position: *pos})
	}
	if c.fetchErr != nil {
		v.Error = c.fetchErr.Error()
	}
	return v
}
