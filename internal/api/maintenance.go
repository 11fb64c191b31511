package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/fleet-console/internal/domain"
)

// maintenanceWire mirrors the backend's maintenance order JSON. Start and due
// dates are date-only on the wire (YYYY-MM-DD).
type maintenanceWire struct {
	ID          uuid.UUID           `json:"id"`
	VehicleID   uuid.UUID           `json:"vehicle_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	Cost        float64             `json:"cost"`
	StartDate   openapi_types.Date  `json:"start_date"`
	DueDate     *openapi_types.Date `json:"due_date,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type maintenanceRequest struct {
	VehicleID   uuid.UUID           `json:"vehicle_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      string              `json:"status,omitempty"`
	Priority    string              `json:"priority,omitempty"`
	Cost        float64             `json:"cost"`
	StartDate   openapi_types.Date  `json:"start_date"`
	DueDate     *openapi_types.Date `json:"due_date,omitempty"`
}

func toOrder(w maintenanceWire) domain.MaintenanceOrder {
	o := domain.MaintenanceOrder{
		ID:          w.ID,
		VehicleID:   w.VehicleID,
		Title:       w.Title,
		Description: w.Description,
		Status:      w.Status,
		Priority:    w.Priority,
		Cost:        w.Cost,
		StartDate:   w.StartDate.Time,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if w.DueDate != nil {
		o.DueDate = w.DueDate.Time
	}
	return o
}

func toOrderRequest(o domain.MaintenanceOrder) maintenanceRequest {
	req := maintenanceRequest{
		VehicleID:   o.VehicleID,
		Title:       o.Title,
		Description: o.Description,
		Status:      o.Status,
		Priority:    o.Priority,
		Cost:        o.Cost,
		StartDate:   openapi_types.Date{Time: o.StartDate},
	}
	if !o.DueDate.IsZero() {
		d := openapi_types.Date{Time: o.DueDate}
		req.DueDate = &d
	}
	return req
}

// ListOrders fetches one page of maintenance orders. From/To on the params
// restrict the page to orders overlapping that date window.
func (c *Client) ListOrders(ctx context.Context, p domain.ListParams) (domain.Page[domain.MaintenanceOrder], error) {
	page, err := listPage[maintenanceWire](ctx, c, "/maintenance-orders", p, toOrder)
	if err != nil {
		return domain.Page[domain.MaintenanceOrder]{}, fmt.Errorf("api.Client.ListOrders: %w", err)
	}
	return page, nil
}

// GetOrder fetches a single maintenance order by ID.
func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (domain.MaintenanceOrder, error) {
	var w maintenanceWire
	if err := c.get(ctx, "/maintenance-orders/"+id.String(), nil, &w); err != nil {
		return domain.MaintenanceOrder{}, fmt.Errorf("api.Client.GetOrder: %w", err)
	}
	return toOrder(w), nil
}

// CreateOrder creates a maintenance order and returns the persisted record.
func (c *Client) CreateOrder(ctx context.Context, o domain.MaintenanceOrder) (domain.MaintenanceOrder, error) {
	var w maintenanceWire
	if err := c.do(ctx, "POST", "/maintenance-orders", nil, toOrderRequest(o), &w); err != nil {
		return domain.MaintenanceOrder{}, fmt.Errorf("api.Client.CreateOrder: %w", err)
	}
	return toOrder(w), nil
}

// UpdateOrder overwrites the mutable fields of a maintenance order.
func (c *Client) UpdateOrder(ctx context.Context, o domain.MaintenanceOrder) (domain.MaintenanceOrder, error) {
	var w maintenanceWire
	if err := c.do(ctx, "PUT", "/maintenance-orders/"+o.ID.String(), nil, toOrderRequest(o), &w); err != nil {
		return domain.MaintenanceOrder{}, fmt.Errorf("api.Client.UpdateOrder: %w", err)
	}
	return toOrder(w), nil
}

// DeleteOrder removes a maintenance order by ID.
func (c *Client) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, "DELETE", "/maintenance-orders/"+id.String(), nil, nil, nil); err != nil {
		return fmt.Errorf("api.Client.DeleteOrder: %w", err)
	}
	return nil
}

// OrderSummary fetches the backend's maintenance summary; nil when absent.
func (c *Client) OrderSummary(ctx context.Context) (*domain.SummaryStats, error) {
	stats, err := c.getSummary(ctx, "/maintenance-orders/summary")
	if err != nil {
		return nil, fmt.Errorf("api.Client.OrderSummary: %w", err)
	}
	return stats, nil
}
