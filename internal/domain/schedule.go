package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Vehicle schedule statuses as reported by the backend.
const (
	ScheduleStatusScheduled = "scheduled"
	ScheduleStatusActive    = "active"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

// VehicleSchedule is one planned assignment of a vehicle (optionally with a
// driver) over a date range. EndDate is inclusive-of-day.
type VehicleSchedule struct {
	ID        uuid.UUID  `json:"id"`
	VehicleID uuid.UUID  `json:"vehicle_id"`
	DriverID  *uuid.UUID `json:"driver_id,omitempty"` // nil when no driver assigned yet
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Validate checks the form-level rules for creating or updating a schedule.
func (s VehicleSchedule) Validate() error {
	if s.VehicleID == uuid.Nil {
		return fmt.Errorf("%w: vehicle is required", ErrValidation)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}
	return nil
}
