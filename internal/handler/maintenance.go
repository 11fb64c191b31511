package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/summary"
)

// orderPayload is the create/update body accepted from the UI. The date
// fields are date-only strings ("2006-01-02") on the wire.
type orderPayload struct {
	VehicleID   uuid.UUID          `json:"vehicle_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	Cost        float64            `json:"cost"`
	StartDate   openapi_types.Date `json:"start_date"`
	DueDate     openapi_types.Date `json:"due_date"`
}

func (p orderPayload) toDomain() domain.MaintenanceOrder {
	return domain.MaintenanceOrder{
		VehicleID:   p.VehicleID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		Cost:        p.Cost,
		StartDate:   p.StartDate.Time,
		DueDate:     p.DueDate.Time,
	}
}

// handleCreateOrder handles POST /api/maintenance-orders.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var body orderPayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	o := body.toDomain()
	if err := o.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	created, err := s.orders.CreateOrder(r.Context(), o)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityOrders)
	writeJSON(w, http.StatusCreated, created)
}

// handleGetOrder handles GET /api/maintenance-orders/{id}.
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed order id")
		return
	}
	o, err := s.orders.GetOrder(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// handleUpdateOrder handles PUT /api/maintenance-orders/{id}.
func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed order id")
		return
	}
	var body orderPayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed JSON body")
		return
	}
	o := body.toDomain()
	o.ID = id
	if err := o.Validate(); err != nil {
		s.respondError(w, err)
		return
	}
	updated, err := s.orders.UpdateOrder(r.Context(), o)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityOrders)
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteOrder handles DELETE /api/maintenance-orders/{id}; admin only.
func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if !s.session.Admin {
		forbiddenError(w, "deleting maintenance orders requires an administrator session")
		return
	}
	id, err := parseID(r)
	if err != nil {
		requestError(w, "malformed order id")
		return
	}
	if err := s.orders.DeleteOrder(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.refreshList(EntityOrders)
	w.WriteHeader(http.StatusNoContent)
}

// handleOrderSummary handles GET /api/maintenance-orders/summary. The cost
// extremes on the maintenance dashboard come from this endpoint.
func (s *Server) handleOrderSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := s.orders.OrderSummary(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	var entries []summary.Entry
	if stats == nil {
		page, err := s.orders.ListOrders(r.Context(), summaryParams())
		if err != nil {
			s.respondError(w, err)
			return
		}
		entries = summary.FromOrders(page.Items)
	}
	writeJSON(w, http.StatusOK, summary.Resolve(stats, entries))
}
