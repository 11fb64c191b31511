// Package domain contains the core data types for the fleet console.
// This package has zero dependencies on the rest of the module and is
// imported by every other internal package (api, page, handler, ...).
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Vehicle statuses as reported by the backend. The console never invents
// statuses of its own; these constants exist for filter defaults and
// summary bucketing.
const (
	VehicleStatusActive      = "active"
	VehicleStatusMaintenance = "in_maintenance"
	VehicleStatusRetired     = "retired"
)

// Vehicle is one fleet vehicle as served by the backend.
type Vehicle struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Plate     string    `json:"plate"`
	Model     string    `json:"model"`
	Year      int       `json:"year,omitempty"`
	Status    string    `json:"status"`
	Mileage   float64   `json:"mileage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the form-level rules for creating or updating a vehicle.
// All failures wrap ErrValidation so handlers can map them to HTTP 422.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(v.Plate) == "" {
		return fmt.Errorf("%w: plate is required", ErrValidation)
	}
	if v.Year != 0 && (v.Year < 1950 || v.Year > time.Now().Year()+1) {
		return fmt.Errorf("%w: year %d is out of range", ErrValidation, v.Year)
	}
	if v.Mileage < 0 {
		return fmt.Errorf("%w: mileage must not be negative", ErrValidation)
	}
	return nil
}
