package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/summary"
)

// schedulePayload is the create/update body accepted from the UI. The date
// fields are date-only strings; EndDate is inclusive-of-day.
type schedulePayload struct {
	VehicleID uuid.UUID          `json:"vehicle_id"`
	DriverID  *uuid.UUID         `json:"driver_id"`
	Title     string             `json:"title"`
	Status    string             `json:"status"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     string             `json:"notes"`
}

func (p schedulePayload) toDomain() domain.VehicleSchedule {
	return domain.VehicleSchedule{
		VehicleID: p.VehicleID,
		DriverID:  p.DriverID,
		Title:     p.Title,
		Status:    p.Status,
		StartDate: p.StartDate.Time,
		EndDate:   p.EndDate.Time,
		Notes:     p.Notes,
	}
}

// handleCreateSchedule handles POST /api/vehicle-schedules.
func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var body schedulePayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	sched := body.toDomain()
	if err := sched.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	created, err := s.schedules.CreateSchedule(r.Context(), sched)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntitySchedules)
	writeJSON(w, http.StatusCreated, created)
}

// handleGetSchedule handles GET /api/vehicle-schedules/{id}.
func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed schedule id")
		return
	}
	sched, err := s.schedules.GetSchedule(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

// handleUpdateSchedule handles PUT /api/vehicle-schedules/{id}.
func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed schedule id")
		return
	}
	var body schedulePayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	sched := body.toDomain()
	sched.ID = id
	if err := sched.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	updated, err := s.schedules.UpdateSchedule(r.Context(), sched)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntitySchedules)
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteSchedule handles DELETE /api/vehicle-schedules/{id}; admin
// only.
func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if !s.session.Admin {
		forbiddenError(w, "deleting schedules requires an administrator session")
		return
	}
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed schedule id")
		return
	}
	if err := s.schedules.DeleteSchedule(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntitySchedules)
	w.WriteHeader(http.StatusNoContent)
}

// handleScheduleSummary handles GET /api/vehicle-schedules/summary.
func (s *Server) handleScheduleSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := s.schedules.ScheduleSummary(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	var entries []summary.Entry
	if stats == nil {
		page, err := s.schedules.ListSchedules(r.Context(), summaryParams())
		if err != nil {
			s.respondError(w, err)
			return
		}
		entries = summary.FromSchedules(page.Items)
	}
	writeJSON(w, http.StatusOK, summary.Resolve(stats, entries))
}
