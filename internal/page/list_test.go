package page_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/page"
	"github.com/pkordes/fleet-console/internal/query"
	"github.com/pkordes/fleet-console/testutil"
)

const debounce = 300 * time.Millisecond

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// inlineRunner executes fetches synchronously so views are current as soon as
// a transition returns.
func inlineRunner(f func()) { f() }

// queueRunner defers fetches so tests can control completion order and
// exercise the stale-response contract.
type queueRunner struct {
	tasks []func()
}

func (q *queueRunner) run(f func()) { q.tasks = append(q.tasks, f) }

func vehiclePage(names []string, totalPages int) domain.Page[domain.Vehicle] {
	p := domain.Page[domain.Vehicle]{
		TotalCount: len(names),
		TotalPages: totalPages,
	}
	for _, n := range names {
		p.Items = append(p.Items, domain.Vehicle{ID: uuid.New(), Name: n, Status: domain.VehicleStatusActive})
	}
	return p
}

func newVehicleList(t *testing.T, clock query.Clock, runner func(func()),
	fetch func(ctx context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error),
) *page.ListController[domain.Vehicle] {
	t.Helper()
	return page.NewList(page.ListConfig[domain.Vehicle]{
		Defaults: query.Defaults{PageSize: 20},
		Debounce: debounce,
		Clock:    clock,
		Fetch:    fetch,
		Log:      discard(),
		Runner:   runner,
	})
}

func TestList_DebouncedSearchFetchesCommittedTerm(t *testing.T) {
	clock := testutil.NewFakeClock()
	var fetched []domain.ListParams
	c := newVehicleList(t, clock, inlineRunner, func(_ context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
		fetched = append(fetched, p)
		return vehiclePage([]string{"Truck 7"}, 1), nil
	})

	c.Search("t")
	c.Search("tr")
	c.Search("truck")
	assert.Empty(t, fetched, "no fetch inside the quiet period")

	clock.Advance(debounce)
	require.Len(t, fetched, 1)
	assert.Equal(t, "truck", fetched[0].Search)
	assert.Equal(t, 1, fetched[0].Page)

	v := c.View()
	assert.False(t, v.Loading)
	require.Len(t, v.Items.([]domain.Vehicle), 1)
	assert.Equal(t, 1, v.TotalCount)
}

func TestList_SearchTypedThenErasedNeverFetches(t *testing.T) {
	clock := testutil.NewFakeClock()
	fetches := 0
	c := newVehicleList(t, clock, inlineRunner, func(_ context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
		fetches++
		return vehiclePage(nil, 0), nil
	})

	c.Search("abc")
	clock.Advance(200 * time.Millisecond)
	c.Search("")
	clock.Advance(debounce)

	assert.Zero(t, fetches)
}

func TestList_StaleResponseIsDropped(t *testing.T) {
	clock := testutil.NewFakeClock()
	q := &queueRunner{}
	c := newVehicleList(t, clock, q.run, func(_ context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
		if p.Search == "old" {
			return vehiclePage([]string{"stale result"}, 1), nil
		}
		return vehiclePage([]string{"fresh result"}, 1), nil
	})

	c.Search("old")
	clock.Advance(debounce)
	c.Search("new")
	clock.Advance(debounce)
	require.Len(t, q.tasks, 2)

	// The fresh fetch completes first; the old one arrives late.
	q.tasks[1]()
	q.tasks[0]()

	v := c.View()
	items := v.Items.([]domain.Vehicle)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh result", items[0].Name, "the stale response must not overwrite the fresh one")
}

func TestList_FetchErrorKeepsPreviousItems(t *testing.T) {
	clock := testutil.NewFakeClock()
	fail := false
	c := newVehicleList(t, clock, inlineRunner, func(_ context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
		if fail {
			return domain.Page[domain.Vehicle]{}, domain.ErrFetch
		}
		return vehiclePage([]string{"Truck 7"}, 1), nil
	})

	c.Refresh()
	require.Empty(t, c.View().Error)

	fail = true
	c.ToggleFilter(domain.VehicleStatusActive)

	v := c.View()
	assert.NotEmpty(t, v.Error, "fetch failures surface as a retryable error")
	assert.Len(t, v.Items.([]domain.Vehicle), 1, "previous items stay visible")

	fail = false
	c.Refresh()
	v = c.View()
	assert.Empty(t, v.Error, "a successful retry clears the error")
}

func TestList_PageBoundsFollowResults(t *testing.T) {
	clock := testutil.NewFakeClock()
	var lastPage int
	c := newVehicleList(t, clock, inlineRunner, func(_ context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
		lastPage = p.Page
		return vehiclePage([]string{"a"}, 3), nil
	})

	c.Refresh()
	c.SetPage(3)
	assert.Equal(t, 3, lastPage)

	c.SetPage(4)
	assert.Equal(t, 3, lastPage, "page beyond the reported total is a no-op")
	assert.Equal(t, 3, c.View().Query.Page)
}

func TestList_EnsureLoadedFetchesOnce(t *testing.T) {
	clock := testutil.NewFakeClock()
	fetches := 0
	c := newVehicleList(t, clock, inlineRunner, func(_ context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
		fetches++
		return vehiclePage(nil, 0), nil
	})

	c.EnsureLoaded()
	c.EnsureLoaded()
	c.EnsureLoaded()
	assert.Equal(t, 1, fetches)
}

func TestList_ClearAllRestoresScheduleDefaults(t *testing.T) {
	clock := testutil.NewFakeClock()
	var fetched []domain.ListParams
	c := page.NewList(page.ListConfig[domain.VehicleSchedule]{
		Defaults: query.Defaults{
			Filters:  []string{domain.ScheduleStatusActive, domain.ScheduleStatusScheduled},
			SortBy:   "start_date",
			PageSize: 20,
		},
		Debounce: debounce,
		Clock:    clock,
		Fetch: func(_ context.Context, p domain.ListParams) (domain.Page[domain.VehicleSchedule], error) {
			fetched = append(fetched, p)
			return domain.Page[domain.VehicleSchedule]{}, nil
		},
		Log:    discard(),
		Runner: inlineRunner,
	})

	c.ToggleFilter(domain.ScheduleStatusActive)
	c.ToggleFilter(domain.ScheduleStatusCompleted)
	c.ClearAll()

	require.NotEmpty(t, fetched)
	last := fetched[len(fetched)-1]
	assert.Equal(t, []string{domain.ScheduleStatusActive, domain.ScheduleStatusScheduled}, last.Filters,
		"clear-all restores the schedules default filter set, not an empty one")

	v := c.View()
	assert.Equal(t, []string{domain.ScheduleStatusActive, domain.ScheduleStatusScheduled}, v.Query.Filters)
}
