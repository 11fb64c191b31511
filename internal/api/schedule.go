package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/fleet-console/internal/domain"
)

// scheduleWire mirrors the backend's vehicle schedule JSON. The date fields
// are date-only on the wire; end_date is inclusive-of-day.
type scheduleWire struct {
	ID        uuid.UUID          `json:"id"`
	VehicleID uuid.UUID          `json:"vehicle_id"`
	DriverID  *uuid.UUID         `json:"driver_id,omitempty"`
	Title     string             `json:"title"`
	Status    string             `json:"status"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type scheduleRequest struct {
	VehicleID uuid.UUID          `json:"vehicle_id"`
	DriverID  *uuid.UUID         `json:"driver_id,omitempty"`
	Title     string             `json:"title"`
	Status    string             `json:"status,omitempty"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     string             `json:"notes,omitempty"`
}

func toSchedule(w scheduleWire) domain.VehicleSchedule {
	return domain.VehicleSchedule{
		ID:        w.ID,
		VehicleID: w.VehicleID,
		DriverID:  w.DriverID,
		Title:     w.Title,
		Status:    w.Status,
		StartDate: w.StartDate.Time,
		EndDate:   w.EndDate.Time,
		Notes:     w.Notes,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toScheduleRequest(s domain.VehicleSchedule) scheduleRequest {
	return scheduleRequest{
		VehicleID: s.VehicleID,
		DriverID:  s.DriverID,
		Title:     s.Title,
		Status:    s.Status,
		StartDate: openapi_types.Date{Time: s.StartDate},
		EndDate:   openapi_types.Date{Time: s.EndDate},
		Notes:     s.Notes,
	}
}

// ListSchedules fetches one page of vehicle schedules. From/To on the params
// restrict the page to schedules overlapping that date window, which is how
// the overview loads exactly the visible items.
func (c *Client) ListSchedules(ctx context.Context, p domain.ListParams) (domain.Page[domain.VehicleSchedule], error) {
	page, err := listPage[scheduleWire](ctx, c, "/vehicle-schedules", p, toSchedule)
	if err != nil {
		return domain.Page[domain.VehicleSchedule]{}, fmt.Errorf("api.Client.ListSchedules: %w", err)
	}
	return page, nil
}

// GetSchedule fetches a single schedule by ID.
func (c *Client) GetSchedule(ctx context.Context, id uuid.UUID) (domain.VehicleSchedule, error) {
	var w scheduleWire
	if err := c.get(ctx, "/vehicle-schedules/"+id.String(), nil, &w); err != nil {
		return domain.VehicleSchedule{}, fmt.Errorf("api.Client.GetSchedule: %w", err)
	}
	return toSchedule(w), nil
}

// CreateSchedule creates a schedule and returns the persisted record.
func (c *Client) CreateSchedule(ctx context.Context, s domain.VehicleSchedule) (domain.VehicleSchedule, error) {
	var w scheduleWire
	if err := c.do(ctx, "POST", "/vehicle-schedules", nil, toScheduleRequest(s), &w); err != nil {
		return domain.VehicleSchedule{}, fmt.Errorf("api.Client.CreateSchedule: %w", err)
	}
	return toSchedule(w), nil
}

// UpdateSchedule overwrites the mutable fields of a schedule.
func (c *Client) UpdateSchedule(ctx context.Context, s domain.VehicleSchedule) (domain.VehicleSchedule, error) {
	var w scheduleWire
	if err := c.do(ctx, "PUT", "/vehicle-schedules/"+s.ID.String(), nil, toScheduleRequest(s), &w); err != nil {
		return domain.VehicleSchedule{}, fmt.Errorf("api.Client.UpdateSchedule: %w", err)
	}
	return toSchedule(w), nil
}

// DeleteSchedule removes a schedule by ID.
func (c *Client) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, "DELETE", "/vehicle-schedules/"+id.String(), nil, nil, nil); err != nil {
		return fmt.Errorf("api.Client.DeleteSchedule: %w", err)
	}
	return nil
}

// ScheduleSummary fetches the backend's schedule summary; nil when absent.
func (c *Client) ScheduleSummary(ctx context.Context) (*domain.SummaryStats, error) {
	stats, err := c.getSummary(ctx, "/vehicle-schedules/summary")
	if err != nil {
		return nil, fmt.Errorf("api.Client.ScheduleSummary: %w", err)
	}
	return stats, nil
}
