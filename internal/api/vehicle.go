package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-console/internal/domain"
)

// vehicleWire mirrors the backend's vehicle JSON.
type vehicleWire struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Plate     string    `json:"plate"`
	Model     string    `json:"model,omitempty"`
	Year      int       `json:"year,omitempty"`
	Status    string    `json:"status"`
	Mileage   float64   `json:"mileage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// vehicleRequest is the create/update body; server-managed fields stay out.
type vehicleRequest struct {
	Name    string  `json:"name"`
	Plate   string  `json:"plate"`
	Model   string  `json:"model,omitempty"`
	Year    *int    `json:"year,omitempty"`
	Status  string  `json:"status,omitempty"`
	Mileage float64 `json:"mileage,omitempty"`
}

func toVehicle(w vehicleWire) domain.Vehicle {
	return domain.Vehicle{
		ID:        w.ID,
		Name:      w.Name,
		Plate:     w.Plate,
		Model:     w.Model,
		Year:      w.Year,
		Status:    w.Status,
		Mileage:   w.Mileage,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toVehicleRequest(v domain.Vehicle) vehicleRequest {
	req := vehicleRequest{
		Name:    v.Name,
		Plate:   v.Plate,
		Model:   v.Model,
		Status:  v.Status,
		Mileage: v.Mileage,
	}
	if v.Year != 0 {
		y := v.Year
		req.Year = &y
	}
	return req
}

// ListVehicles fetches one page of vehicles.
func (c *Client) ListVehicles(ctx context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error) {
	page, err := listPage[vehicleWire](ctx, c, "/vehicles", p, toVehicle)
	if err != nil {
		return domain.Page[domain.Vehicle]{}, fmt.Errorf("api.Client.ListVehicles: %w", err)
	}
	return page, nil
}

// GetVehicle fetches a single vehicle by ID.
func (c *Client) GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	var w vehicleWire
	if err := c.get(ctx, "/vehicles/"+id.String(), nil, &w); err != nil {
		return domain.Vehicle{}, fmt.Errorf("api.Client.GetVehicle: %w", err)
	}
	return toVehicle(w), nil
}

// CreateVehicle creates a vehicle and returns the persisted record.
func (c *Client) CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	var w vehicleWire
	if err := c.do(ctx, "POST", "/vehicles", nil, toVehicleRequest(v), &w); err != nil {
		return domain.Vehicle{}, fmt.Errorf("api.Client.CreateVehicle: %w", err)
	}
	return toVehicle(w), nil
}

// UpdateVehicle overwrites the mutable fields of a vehicle.
func (c *Client) UpdateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	var w vehicleWire
	if err := c.do(ctx, "PUT", "/vehicles/"+v.ID.String(), nil, toVehicleRequest(v), &w); err != nil {
		return domain.Vehicle{}, fmt.Errorf("api.Client.UpdateVehicle: %w", err)
	}
	return toVehicle(w), nil
}

// DeleteVehicle removes a vehicle by ID.
func (c *Client) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, "DELETE", "/vehicles/"+id.String(), nil, nil, nil); err != nil {
		return fmt.Errorf("api.Client.DeleteVehicle: %w", err)
	}
	return nil
}

// VehicleSummary fetches the backend's vehicle summary; nil when absent.
func (c *Client) VehicleSummary(ctx context.Context) (*domain.SummaryStats, error) {
	stats, err := c.getSummary(ctx, "/vehicles/summary")
	if err != nil {
		return nil, fmt.Errorf("api.Client.VehicleSummary: %w", err)
	}
	return stats, nil
}
