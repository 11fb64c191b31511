package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Driver statuses as reported by the backend.
const (
	DriverStatusActive   = "active"
	DriverStatusOnLeave  = "on_leave"
	DriverStatusInactive = "inactive"
)

// Driver is one fleet driver as served by the backend.
type Driver struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	LicenseNumber string     `json:"license_number"`
	Status        string     `json:"status"`
	VehicleID     *uuid.UUID `json:"vehicle_id,omitempty"` // nil when unassigned
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Validate checks the form-level rules for creating or updating a driver.
func (d Driver) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return fmt.Errorf("%w: license number is required", ErrValidation)
	}
	if d.Email != "" && !validEmail(d.Email) {
		return fmt.Errorf("%w: email %q is malformed", ErrValidation, d.Email)
	}
	return nil
}

// validEmail applies the same shallow shape check the backend does:
// one "@" with a dot somewhere after it. Full RFC validation is the
// backend's job; this only catches obvious typos before a round trip.
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domainPart := s[at+1:]
	if strings.Contains(domainPart, "@") {
		return false
	}
	dot := strings.LastIndex(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}
