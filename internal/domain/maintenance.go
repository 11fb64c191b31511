package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Maintenance order statuses and priorities as reported by the backend.
const (
	OrderStatusScheduled  = "scheduled"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"

	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// MaintenanceOrder is one maintenance work order for a vehicle.
// StartDate and DueDate are date-only values; DueDate is inclusive-of-day
// (an order due "on" a day occupies that whole day on the timeline).
type MaintenanceOrder struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Cost        float64   `json:"cost"`
	StartDate   time.Time `json:"start_date"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Urgent reports whether the order should be flagged on dashboards and the
// timeline. High and critical priorities count as urgent.
func (o MaintenanceOrder) Urgent() bool {
	return o.Priority == PriorityHigh || o.Priority == PriorityCritical
}

// Validate checks the form-level rules for creating or updating an order.
func (o MaintenanceOrder) Validate() error {
	if o.VehicleID == uuid.Nil {
		return fmt.Errorf("%w: vehicle is required", ErrValidation)
	}
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if o.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	if !o.StartDate.IsZero() && !o.DueDate.IsZero() && o.DueDate.Before(o.StartDate) {
		return fmt.Errorf("%w: due date precedes start date", ErrValidation)
	}
	return nil
}
