package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/handler"
	"github.com/pkordes/fleet-console/internal/page"
	"github.com/pkordes/fleet-console/internal/query"
	"github.com/pkordes/fleet-console/internal/timeline"
)

// fakeBackend implements all four entity API interfaces over in-memory
// slices. Setting failWith makes every call fail with that error.
type fakeBackend struct {
	vehicles  []domain.Vehicle
	drivers   []domain.Driver
	orders    []domain.MaintenanceOrder
	schedules []domain.VehicleSchedule

	vehicleSummary *domain.SummaryStats
	orderSummary   *domain.SummaryStats

	failWith error
	deleted  []uuid.UUID

	// lastParams records the most recent list call, for asserting what the
	// controllers asked for.
	lastParams domain.ListParams
}

func pageOf[T any](items []T) domain.Page[T] {
	return domain.Page[T]{Items: items, TotalCount: len(items), TotalPages: 1}
}

func (f *fakeBackend) ListVehicles(_ context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
	f.lastParams = p
	if f.failWith != nil {
		return domain.Page[domain.Vehicle]{}, f.failWith
	}
	return pageOf(f.vehicles), nil
}

func (f *fakeBackend) GetVehicle(_ context.Context, id uuid.UUID) (domain.Vehicle, error) {
	if f.failWith != nil {
		return domain.Vehicle{}, f.failWith
	}
	for _, v := range f.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Vehicle{}, fmt.Errorf("%w: vehicle does not exist", domain.ErrNotFound)
}

func (f *fakeBackend) CreateVehicle(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if f.failWith != nil {
		return domain.Vehicle{}, f.failWith
	}
	v.ID = uuid.New()
	f.vehicles = append(f.vehicles, v)
	return v, nil
}

func (f *fakeBackend) UpdateVehicle(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if f.failWith != nil {
		return domain.Vehicle{}, f.failWith
	}
	return v, nil
}

func (f *fakeBackend) DeleteVehicle(_ context.Context, id uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) VehicleSummary(context.Context) (*domain.SummaryStats, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.vehicleSummary, nil
}

func (f *fakeBackend) ListDrivers(_ context.Context, p domain.ListParams) (domain.Page[domain.Driver], error) {
	f.lastParams = p
	if f.failWith != nil {
		return domain.Page[domain.Driver]{}, f.failWith
	}
	return pageOf(f.drivers), nil
}

func (f *fakeBackend) GetDriver(_ context.Context, id uuid.UUID) (domain.Driver, error) {
	for _, d := range f.drivers {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Driver{}, fmt.Errorf("%w: driver does not exist", domain.ErrNotFound)
}

func (f *fakeBackend) CreateDriver(_ context.Context, d domain.Driver) (domain.Driver, error) {
	d.ID = uuid.New()
	f.drivers = append(f.drivers, d)
	return d, nil
}

func (f *fakeBackend) UpdateDriver(_ context.Context, d domain.Driver) (domain.Driver, error) {
	return d, nil
}

func (f *fakeBackend) DeleteDriver(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) DriverSummary(context.Context) (*domain.SummaryStats, error) {
	return nil, nil
}

func (f *fakeBackend) ListOrders(_ context.Context, p domain.ListParams) (domain.Page[domain.MaintenanceOrder], error) {
	f.lastParams = p
	if f.failWith != nil {
		return domain.Page[domain.MaintenanceOrder]{}, f.failWith
	}
	return pageOf(f.orders), nil
}

func (f *fakeBackend) GetOrder(_ context.Context, id uuid.UUID) (domain.MaintenanceOrder, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.MaintenanceOrder{}, fmt.Errorf("%w: order does not exist", domain.ErrNotFound)
}

func (f *fakeBackend) CreateOrder(_ context.Context, o domain.MaintenanceOrder) (domain.MaintenanceOrder, error) {
	o.ID = uuid.New()
	f.orders = append(f.orders, o)
	return o, nil
}

func (f *fakeBackend) UpdateOrder(_ context.Context, o domain.MaintenanceOrder) (domain.MaintenanceOrder, error) {
	return o, nil
}

func (f *fakeBackend) DeleteOrder(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) OrderSummary(context.Context) (*domain.SummaryStats, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.orderSummary, nil
}

func (f *fakeBackend) ListSchedules(_ context.Context, p domain.ListParams) (domain.Page[domain.VehicleSchedule], error) {
	f.lastParams = p
	if f.failWith != nil {
		return domain.Page[domain.VehicleSchedule]{}, f.failWith
	}
	return pageOf(f.schedules), nil
}

func (f *fakeBackend) GetSchedule(_ context.Context, id uuid.UUID) (domain.VehicleSchedule, error) {
	for _, sched := range f.schedules {
		if sched.ID == id {
			return sched, nil
		}
	}
	return domain.VehicleSchedule{}, fmt.Errorf("%w: schedule does not exist", domain.ErrNotFound)
}

func (f *fakeBackend) CreateSchedule(_ context.Context, sched domain.VehicleSchedule) (domain.VehicleSchedule, error) {
	sched.ID = uuid.New()
	f.schedules = append(f.schedules, sched)
	return sched, nil
}

func (f *fakeBackend) UpdateSchedule(_ context.Context, sched domain.VehicleSchedule) (domain.VehicleSchedule, error) {
	return sched, nil
}

func (f *fakeBackend) DeleteSchedule(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ScheduleSummary(context.Context) (*domain.SummaryStats, error) {
	return nil, nil
}

// fixture bundles a routed server over a fake backend with synchronous list
// controllers (inline runner, zero debounce unless a clock is supplied).
type fixture struct {
	backend *fakeBackend
	router  http.Handler
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	admin    bool
	clock    query.Clock
	debounce time.Duration
	now      func() time.Time
}

func asAdmin() fixtureOption {
	return func(c *fixtureConfig) { c.admin = true }
}

func withClock(clock query.Clock, debounce time.Duration) fixtureOption {
	return func(c *fixtureConfig) {
		c.clock = clock
		c.debounce = debounce
	}
}

func newFixture(t *testing.T, backend *fakeBackend, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := fixtureConfig{
		debounce: time.Nanosecond,
		now:      func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	inline := func(f func()) { f() }

	lists := map[string]page.ListPage{
		handler.EntityVehicles: page.NewList(page.ListConfig[domain.Vehicle]{
			Fetch: backend.ListVehicles, Log: log, Runner: inline,
			Clock: cfg.clock, Debounce: cfg.debounce,
		}),
		handler.EntityDrivers: page.NewList(page.ListConfig[domain.Driver]{
			Fetch: backend.ListDrivers, Log: log, Runner: inline,
			Clock: cfg.clock, Debounce: cfg.debounce,
		}),
		handler.EntityOrders: page.NewList(page.ListConfig[domain.MaintenanceOrder]{
			Fetch: backend.ListOrders, Log: log, Runner: inline,
			Clock: cfg.clock, Debounce: cfg.debounce,
		}),
		handler.EntitySchedules: page.NewList(page.ListConfig[domain.VehicleSchedule]{
			Defaults: query.Defaults{Filters: []string{domain.ScheduleStatusActive, domain.ScheduleStatusScheduled}},
			Fetch:    backend.ListSchedules, Log: log, Runner: inline,
			Clock: cfg.clock, Debounce: cfg.debounce,
		}),
	}

	overview := page.NewOverview(page.OverviewConfig{
		Schedules:   backend.ListSchedules,
		Orders:      backend.ListOrders,
		Metrics:     timeline.Metrics{DayWidth: 40, Gap: 4, MinWidth: 20},
		DefaultDays: 7,
		Log:         log,
		Now:         cfg.now,
	})

	srv := handler.NewServer(handler.Config{
		Log:       log,
		Session:   domain.Session{User: "operator", Admin: cfg.admin},
		Vehicles:  backend,
		Drivers:   backend,
		Orders:    backend,
		Schedules: backend,
		Lists:     lists,
		Overview:  overview,
	})
	return &fixture{backend: backend, router: srv.Routes()}
}

// do runs one request through the router. A nil body sends no payload; any
// other value is JSON-encoded.
func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
