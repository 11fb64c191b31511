package handler

import (
	"net/http"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/summary"
)

// vehiclePayload is the create/update body accepted from the UI.
type vehiclePayload struct {
	Name    string  `json:"name"`
	Plate   string  `json:"plate"`
	Model   string  `json:"model"`
	Year    int     `json:"year"`
	Status  string  `json:"status"`
	Mileage float64 `json:"mileage"`
}

func (p vehiclePayload) toDomain() domain.Vehicle {
	return domain.Vehicle{
		Name:    p.Name,
		Plate:   p.Plate,
		Model:   p.Model,
		Year:    p.Year,
		Status:  p.Status,
		Mileage: p.Mileage,
	}
}

// handleCreateVehicle handles POST /api/vehicles. Validation runs before the
// backend round trip so obvious mistakes fail fast.
func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var body vehiclePayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	v := body.toDomain()
	if err := v.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	created, err := s.vehicles.CreateVehicle(r.Context(), v)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityVehicles)
	writeJSON(w, http.StatusCreated, created)
}

// handleGetVehicle handles GET /api/vehicles/{id}.
func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed vehicle id")
		return
	}
	v, err := s.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleUpdateVehicle handles PUT /api/vehicles/{id}.
func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed vehicle id")
		return
	}
	var body vehiclePayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	v := body.toDomain()
	v.ID = id
	if err := v.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	updated, err := s.vehicles.UpdateVehicle(r.Context(), v)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityVehicles)
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteVehicle handles DELETE /api/vehicles/{id}; admin only.
func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if !s.session.Admin {
		forbiddenError(w, "deleting vehicles requires an administrator session")
		return
	}
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed vehicle id")
		return
	}
	if err := s.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityVehicles)
	w.WriteHeader(http.StatusNoContent)
}

// handleVehicleSummary handles GET /api/vehicles/summary. The backend's
// pre-aggregated record wins; when it has none the console reduces the
// collection itself.
func (s *Server) handleVehicleSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := s.vehicles.VehicleSummary(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	var entries []summary.Entry
	if stats == nil {
		page, err := s.vehicles.ListVehicles(r.Context(), summaryParams())
		if err != nil {
			s.respondError(w, err)
			return
		}
		entries = summary.FromVehicles(page.Items)
	}
	writeJSON(w, http.StatusOK, summary.Resolve(stats, entries))
}

// summaryParams is the fallback fetch for client-side aggregation: one page
// at the backend's limit cap.
func summaryParams() domain.ListParams {
	return domain.ListParams{Page: 1, Limit: 100}
}
