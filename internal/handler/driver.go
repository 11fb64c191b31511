package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/summary"
)

// driverPayload is the create/update body accepted from the UI.
type driverPayload struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	LicenseNumber string     `json:"license_number"`
	Status        string     `json:"status"`
	VehicleID     *uuid.UUID `json:"vehicle_id"`
}

func (p driverPayload) toDomain() domain.Driver {
	return domain.Driver{
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		LicenseNumber: p.LicenseNumber,
		Status:        p.Status,
		VehicleID:     p.VehicleID,
	}
}

// handleCreateDriver handles POST /api/drivers.
func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var body driverPayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	d := body.toDomain()
	if err := d.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	created, err := s.drivers.CreateDriver(r.Context(), d)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityDrivers)
	writeJSON(w, http.StatusCreated, created)
}

// handleGetDriver handles GET /api/drivers/{id}.
func (s *Server) handleGetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed driver id")
		return
	}
	d, err := s.drivers.GetDriver(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleUpdateDriver handles PUT /api/drivers/{id}.
func (s *Server) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed driver id")
		return
	}
	var body driverPayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	d := body.toDomain()
	d.ID = id
	if err := d.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	updated, err := s.drivers.UpdateDriver(r.Context(), d)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityDrivers)
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteDriver handles DELETE /api/drivers/{id}; admin only.
func (s *Server) handleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	if !s.session.Admin {
		forbiddenError(w, "deleting drivers requires an administrator session")
		return
	}
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed driver id")
		return
	}
	if err := s.drivers.DeleteDriver(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityDrivers)
	w.WriteHeader(http.StatusNoContent)
}

// handleDriverSummary handles GET /api/drivers/summary.
func (s *Server) handleDriverSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := s.drivers.DriverSummary(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	var entries []summary.Entry
	if stats == nil {
		page, err := s.drivers.ListDrivers(r.Context(), summaryParams())
		if err != nil {
			s.respondError(w, err)
			return
		}
		entries = summary.FromDrivers(page.Items)
	}
	writeJSON(w, http.StatusOK, summary.Resolve(stats, entries))
}
