package summary_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/summary"
)

func TestReduce_EmptyCollection(t *testing.T) {
	got := summary.Reduce(nil)

	assert.Equal(t, 0, got.TotalItems)
	assert.Empty(t, got.PerStatus)
	assert.Zero(t, got.UrgentCount)
	assert.Zero(t, got.ActiveCount)
	assert.Nil(t, got.MaxCost)
	assert.Nil(t, got.MinCost)
}

func TestReduce_CountsAndExtremes(t *testing.T) {
	orders := []domain.MaintenanceOrder{
		{ID: uuid.New(), Title: "Oil change", Status: domain.OrderStatusCompleted,
			Priority: domain.PriorityLow, Cost: 120},
		{ID: uuid.New(), Title: "Engine rebuild", Status: domain.OrderStatusInProgress,
			Priority: domain.PriorityCritical, Cost: 4800},
		{ID: uuid.New(), Title: "Tire rotation", Status: domain.OrderStatusScheduled,
			Priority: domain.PriorityMedium, Cost: 80},
		{ID: uuid.New(), Title: "Brake pads", Status: domain.OrderStatusScheduled,
			Priority: domain.PriorityHigh, Cost: 340},
	}

	got := summary.Reduce(summary.FromOrders(orders))

	assert.Equal(t, 4, got.TotalItems)
	assert.Equal(t, map[string]int{
		domain.OrderStatusCompleted:  1,
		domain.OrderStatusInProgress: 1,
		domain.OrderStatusScheduled:  2,
	}, got.PerStatus)
	assert.Equal(t, 2, got.UrgentCount, "high and critical priorities are urgent")
	assert.Equal(t, 1, got.ActiveCount)

	require.NotNil(t, got.MaxCost)
	assert.Equal(t, "Engine rebuild", got.MaxCost.Label)
	assert.Equal(t, 4800.0, got.MaxCost.Cost)
	require.NotNil(t, got.MinCost)
	assert.Equal(t, "Tire rotation", got.MinCost.Label)
}

func TestReduce_CostTieBreaksToFirstEncountered(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	entries := []summary.Entry{
		{ID: first, Label: "first", Cost: 100, HasCost: true},
		{ID: second, Label: "second", Cost: 100, HasCost: true},
	}

	got := summary.Reduce(entries)

	require.NotNil(t, got.MaxCost)
	assert.Equal(t, first, got.MaxCost.ID)
	assert.Equal(t, first, got.MinCost.ID)
}

func TestReduce_CostlessEntriesProduceNoExtremes(t *testing.T) {
	vehicles := []domain.Vehicle{
		{ID: uuid.New(), Name: "Truck 7", Status: domain.VehicleStatusActive},
		{ID: uuid.New(), Name: "Van 2", Status: domain.VehicleStatusMaintenance},
	}

	got := summary.Reduce(summary.FromVehicles(vehicles))

	assert.Equal(t, 2, got.TotalItems)
	assert.Equal(t, 1, got.ActiveCount)
	assert.Nil(t, got.MaxCost)
	assert.Nil(t, got.MinCost)
}

func TestResolve_PrefersBackendSummary(t *testing.T) {
	backend := &domain.SummaryStats{TotalItems: 42, PerStatus: map[string]int{"active": 40}}
	entries := []summary.Entry{{ID: uuid.New(), Status: "active", Active: true}}

	got := summary.Resolve(backend, entries)
	assert.Equal(t, 42, got.TotalItems, "backend summary is used verbatim")

	fallback := summary.Resolve(nil, entries)
	assert.Equal(t, 1, fallback.TotalItems)
	assert.Equal(t, 1, fallback.ActiveCount)
}

func TestAdapters_StatusMapping(t *testing.T) {
	drivers := []domain.Driver{
		{ID: uuid.New(), Name: "Sam", Status: domain.DriverStatusActive},
		{ID: uuid.New(), Name: "Ada", Status: domain.DriverStatusOnLeave},
	}
	schedules := []domain.VehicleSchedule{
		{ID: uuid.New(), Title: "Route 4", Status: domain.ScheduleStatusActive},
		{ID: uuid.New(), Title: "Route 9", Status: domain.ScheduleStatusCancelled},
	}

	d := summary.Reduce(summary.FromDrivers(drivers))
	assert.Equal(t, 1, d.ActiveCount)

	s := summary.Reduce(summary.FromSchedules(schedules))
	assert.Equal(t, 1, s.ActiveCount)
	assert.Equal(t, 1, s.PerStatus[domain.ScheduleStatusCancelled])
}
