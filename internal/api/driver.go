package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-console/internal/domain"
)

type driverWire struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	LicenseNumber string     `json:"license_number"`
	Status        string     `json:"status"`
	VehicleID     *uuid.UUID `json:"vehicle_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type driverRequest struct {
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	LicenseNumber string     `json:"license_number"`
	Status        string     `json:"status,omitempty"`
	VehicleID     *uuid.UUID `json:"vehicle_id,omitempty"`
}

func toDriver(w driverWire) domain.Driver {
	return domain.Driver{
		ID:            w.ID,
		Name:          w.Name,
		Email:         w.Email,
		Phone:         w.Phone,
		LicenseNumber: w.LicenseNumber,
		Status:        w.Status,
		VehicleID:     w.VehicleID,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func toDriverRequest(d domain.Driver) driverRequest {
	return driverRequest{
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		LicenseNumber: d.LicenseNumber,
		Status:        d.Status,
		VehicleID:     d.VehicleID,
	}
}

// ListDrivers fetches one page of drivers.
func (c *Client) ListDrivers(ctx context.Context, p domain.ListParams) (domain.Page[domain.Driver], error) {
	page, err := listPage[driverWire](ctx, c, "/drivers", p, toDriver)
	if err != nil {
		return domain.Page[domain.Driver]{}, fmt.Errorf("api.Client.ListDrivers: %w", err)
	}
	return page, nil
}

// GetDriver fetches a single driver by ID.
func (c *Client) GetDriver(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	var w driverWire
	if err := c.get(ctx, "/drivers/"+id.String(), nil, &w); err != nil {
		return domain.Driver{}, fmt.Errorf("api.Client.GetDriver: %w", err)
	}
	return toDriver(w), nil
}

// CreateDriver creates a driver and returns the persisted record.
func (c *Client) CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	var w driverWire
	if err := c.do(ctx, "POST", "/drivers", nil, toDriverRequest(d), &w); err != nil {
		return domain.Driver{}, fmt.Errorf("api.Client.CreateDriver: %w", err)
	}
	return toDriver(w), nil
}

// UpdateDriver overwrites the mutable fields of a driver.
func (c *Client) UpdateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	var w driverWire
	if err := c.do(ctx, "PUT", "/drivers/"+d.ID.String(), nil, toDriverRequest(d), &w); err != nil {
		return domain.Driver{}, fmt.Errorf("api.Client.UpdateDriver: %w", err)
	}
	return toDriver(w), nil
}

// DeleteDriver removes a driver by ID.
func (c *Client) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, "DELETE", "/drivers/"+id.String(), nil, nil, nil); err != nil {
		return fmt.Errorf("api.Client.DeleteDriver: %w", err)
	}
	return nil
}

// DriverSummary fetches the backend's driver summary; nil when absent.
func (c *Client) DriverSummary(ctx context.Context) (*domain.SummaryStats, error) {
	stats, err := c.getSummary(ctx, "/drivers/summary")
	if err != nil {
		return nil, fmt.Errorf("api.Client.DriverSummary: %w", err)
	}
	return stats, nil
}
