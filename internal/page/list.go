// Package page contains the per-page controllers of the console. A list
// controller owns one query state machine and one backend fetcher; the
// schedules overview controller owns the timeline window. Controllers decide
// when to fetch and which responses may update visible state, expressing
// "effect on dependency change" as explicit transitions.
package page

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/query"
)

const defaultFetchTimeout = 10 * time.Second

// ListPage is the entity-agnostic surface the HTTP layer drives. Each method
// maps to one user interaction on a list screen.
type ListPage interface {
	Search(term string)
	ToggleFilter(value string)
	Sort(column string)
	SetPage(n int)
	SetPageSize(n int)
	ClearAll()
	Refresh()
	EnsureLoaded()
	View() ListView
}

// ListView is the render state of a list page: the committed query, the last
// applied result, and the loading/error indicators. Items keeps its concrete
// slice type under `any` so it marshals as the entity's JSON.
type ListView struct {
	Query           query.State `json:"query"`
	Items           any         `json:"items"`
	TotalCount      int         `json:"totalCount"`
	TotalPages      int         `json:"totalPages"`
	HasNextPage     bool        `json:"hasNextPage"`
	HasPreviousPage bool        `json:"hasPreviousPage"`
	Loading         bool        `json:"loading"`
	Error           string      `json:"error,omitempty"`
}

// ListConfig wires one list controller.
type ListConfig[T any] struct {
	// Defaults are the entity's ClearAll reset targets.
	Defaults query.Defaults
	// Debounce overrides the search quiet period; zero uses query.DefaultDebounce.
	Debounce time.Duration
	// Clock drives the debounce timer; nil uses the system clock.
	Clock query.Clock
	// Fetch loads one page from the backend.
	Fetch func(ctx context.Context, p domain.ListParams) (domain.Page[T], error)
	// Log receives stale-drop and fetch-failure debug lines; required.
	Log *slog.Logger
	// Runner executes fetches; nil runs them on a new goroutine. Tests pass
	// an inline runner to make fetch completion synchronous.
	Runner func(func())
	// Timeout bounds one fetch; zero uses defaultFetchTimeout.
	Timeout time.Duration
}

// ListController is the generic list page controller. All methods are safe
// for concurrent use.
type ListController[T any] struct {
	mu      sync.Mutex
	machine *query.Machine
	fetch   func(ctx context.Context, p domain.ListParams) (domain.Page[T], error)
	run     func(func())
	log     *slog.Logger
	timeout time.Duration

	items           []T
	totalCount      int
	totalPages      int
	hasNextPage     bool
	hasPreviousPage bool
	loading         bool
	loaded          bool
	fetchErr        error
}

// NewList builds a list controller. Nothing is fetched until the first
// transition or EnsureLoaded call.
func NewList[T any](cfg ListConfig[T]) *ListController[T] {
	c := &ListController[T]{
		fetch:   cfg.Fetch,
		run:     cfg.Runner,
		log:     cfg.Log,
		timeout: cfg.Timeout,
	}
	if c.run == nil {
		c.run = func(f func()) { go f() }
	}
	if c.timeout <= 0 {
		c.timeout = defaultFetchTimeout
	}
	c.machine = query.NewMachine(cfg.Defaults, cfg.Debounce, cfg.Clock, c.dispatch)
	return c
}

// Search feeds a keystroke into the debounced search term.
func (c *ListController[T]) Search(term string) { c.machine.SetSearchTerm(term) }

// ToggleFilter adds or removes a status filter.
func (c *ListController[T]) ToggleFilter(value string) { c.machine.ToggleFilter(value) }

// Sort sorts by column, flipping direction on a repeated column.
func (c *ListController[T]) Sort(column string) { c.machine.SetSort(column) }

// SetPage moves to page n; out-of-range values are ignored.
func (c *ListController[T]) SetPage(n int) { c.machine.SetPage(n) }

// SetPageSize changes the page size and returns to page 1.
func (c *ListController[T]) SetPageSize(n int) { c.machine.SetPageSize(n) }

// ClearAll resets the page to its defaults in one atomic transition.
func (c *ListController[T]) ClearAll() { c.machine.ClearAll() }

// Refresh re-fetches with the current query; the retry affordance for fetch
// errors.
func (c *ListController[T]) Refresh() { c.machine.Refresh() }

// EnsureLoaded triggers the initial fetch exactly once.
func (c *ListController[T]) EnsureLoaded() {
	c.mu.Lock()
	pending := c.loaded || c.loading
	c.mu.Unlock()
	if !pending {
		c.machine.Refresh()
	}
}

// View returns the current render state.
func (c *ListController[T]) View() ListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := ListView{
		Query:           c.machine.State(),
		Items:           append([]T(nil), c.items...),
		TotalCount:      c.totalCount,
		TotalPages:      c.totalPages,
		HasNextPage:     c.hasNextPage,
		HasPreviousPage: c.hasPreviousPage,
		Loading:         c.loading,
	}
	if c.fetchErr != nil {
		v.Error = c.fetchErr.Error()
	}
	return v
}

// dispatch runs on every machine commit: it marks the page loading and
// issues the fetch for that snapshot. Only the response whose sequence still
// matches the machine may update visible state; anything else is stale and
// dropped.
func (c *ListController[T]) dispatch(snap query.Snapshot) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	c.run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		result, err := c.fetch(ctx, snap.State.Params())

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.machine.Accept(snap.Seq) {
			c.log.Debug("dropping stale list response", "seq", snap.Seq)
			return
		}
		c.loading = false
		c.loaded = true
		if err != nil {
			// Keep the previous items on screen; the view carries the error
			// so the UI can offer a retry.
			c.fetchErr = err
			c.log.Warn("list fetch failed", "error", err)
			return
		}
		c.fetchErr = nil
		c.items = result.Items
		c.totalCount = result.TotalCount
		c.totalPages = result.TotalPages
		c.hasNextPage = result.HasNextPage
		c.hasPreviousPage = result.HasPreviousPage
		c.machine.ObserveTotalPages(result.TotalPages)
	})
}
