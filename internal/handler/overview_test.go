package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/page"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func overviewBackend() *fakeBackend {
	return &fakeBackend{
		schedules: []domain.VehicleSchedule{{
			ID:        uuid.New(),
			VehicleID: uuid.New(),
			Title:     "Delivery route",
			Status:    domain.ScheduleStatusActive,
			StartDate: day(2024, 6, 2),
			EndDate:   day(2024, 6, 4),
		}},
		orders: []domain.MaintenanceOrder{{
			ID:        uuid.New(),
			VehicleID: uuid.New(),
			Title:     "Brake check",
			Status:    domain.OrderStatusScheduled,
			Priority:  domain.PriorityHigh,
			StartDate: day(2024, 6, 3),
			DueDate:   day(2024, 6, 3),
		}},
	}
}

func TestOverviewView_LoadsWindowOnFirstRequest(t *testing.T) {
	backend := overviewBackend()
	f := newFixture(t, backend)

	rec := f.do(t, http.MethodGet, "/api/overview", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[page.OverviewView](t, rec)
	assert.Equal(t, day(2024, 6, 1), view.Window.Start.UTC())
	assert.Equal(t, 7, view.Window.Days)
	require.Len(t, view.Days, 7)
	assert.Equal(t, "2024-06-01", view.Days[0])
	assert.Len(t, view.Rows, 2)

	require.NotNil(t, backend.lastParams.From)
	require.NotNil(t, backend.lastParams.To)
	assert.Equal(t, day(2024, 6, 1), backend.lastParams.From.UTC())
	assert.Equal(t, day(2024, 6, 7), backend.lastParams.To.UTC())
}

func TestOverviewNav_NextPrevToday(t *testing.T) {
	f := newFixture(t, overviewBackend())

	rec := f.do(t, http.MethodPost, "/api/overview/next-week", nil)
	view := decodeBody[page.OverviewView](t, rec)
	assert.Equal(t, day(2024, 6, 8), view.Window.Start.UTC())

	rec = f.do(t, http.MethodPost, "/api/overview/prev-week", nil)
	view = decodeBody[page.OverviewView](t, rec)
	assert.Equal(t, day(2024, 6, 1), view.Window.Start.UTC())

	f.do(t, http.MethodPost, "/api/overview/next-week", nil)
	rec = f.do(t, http.MethodPost, "/api/overview/today", nil)
	view = decodeBody[page.OverviewView](t, rec)
	assert.Equal(t, day(2024, 6, 1), view.Window.Start.UTC())
}

func TestOverviewJump(t *testing.T) {
	f := newFixture(t, overviewBackend())

	rec := f.do(t, http.MethodPost, "/api/overview/jump", map[string]any{"start": "2024-07-15"})

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[page.OverviewView](t, rec)
	assert.Equal(t, day(2024, 7, 15), view.Window.Start.UTC())
}

func TestOverviewJump_RejectsMalformedDate(t *testing.T) {
	f := newFixture(t, overviewBackend())

	rec := f.do(t, http.MethodPost, "/api/overview/jump", map[string]any{"start": "15.07.2024"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverviewDays_BoundsChecked(t *testing.T) {
	f := newFixture(t, overviewBackend())

	rec := f.do(t, http.MethodPost, "/api/overview/days", map[string]any{"days": 14})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[page.OverviewView](t, rec)
	assert.Equal(t, 14, view.Window.Days)
	assert.Len(t, view.Days, 14)

	rec = f.do(t, http.MethodPost, "/api/overview/days", map[string]any{"days": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/overview/days", map[string]any{"days": 90})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverviewNav_BackendFailureKeepsView(t *testing.T) {
	backend := overviewBackend()
	f := newFixture(t, backend)

	f.do(t, http.MethodGet, "/api/overview", nil)

	backend.failWith = domain.ErrFetch
	rec := f.do(t, http.MethodPost, "/api/overview/next-week", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[page.OverviewView](t, rec)
	assert.NotEmpty(t, view.Error)
	assert.Len(t, view.Rows, 2, "stale rows beat a blank screen")
}

func TestOverviewLive_PushesInitialFrame(t *testing.T) {
	f := newFixture(t, overviewBackend())
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/overview/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var view page.OverviewView
	require.NoError(t, conn.ReadJSON(&view))
	assert.Equal(t, 7, view.Window.Days)
	assert.Len(t, view.Rows, 2)
}
