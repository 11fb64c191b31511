// Package handler implements the HTTP surface of the fleet console.
// All handlers are methods on Server, split into entity-specific files
// (vehicle.go, driver.go, ...) that share the same struct. The list and
// overview endpoints drive the page controllers; the CRUD endpoints pass
// validated records through to the fleet backend.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/page"
)

// Entity keys, used both as URL path segments and as list-controller map
// keys. They match the backend's collection names.
const (
	EntityVehicles  = "vehicles"
	EntityDrivers   = "drivers"
	EntityOrders    = "maintenance-orders"
	EntitySchedules = "vehicle-schedules"
)

// VehicleAPI defines the backend operations the vehicle handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a fake without standing up a backend.
type VehicleAPI interface {
	ListVehicles(ctx context.Context, p domain.ListParams) (domain.Page[domain.Vehicle], error)
	GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
	VehicleSummary(ctx context.Context) (*domain.SummaryStats, error)
}

// DriverAPI defines the backend operations the driver handlers depend on.
type DriverAPI interface {
	ListDrivers(ctx context.Context, p domain.ListParams) (domain.Page[domain.Driver], error)
	GetDriver(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error)
	UpdateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error)
	DeleteDriver(ctx context.Context, id uuid.UUID) error
	DriverSummary(ctx context.Context) (*domain.SummaryStats, error)
}

// OrderAPI defines the backend operations the maintenance-order handlers
// depend on.
type OrderAPI interface {
	ListOrders(ctx context.Context, p domain.ListParams) (domain.Page[domain.MaintenanceOrder], error)
	GetOrder(ctx context.Context, id uuid.UUID) (domain.MaintenanceOrder, error)
	CreateOrder(ctx context.Context, o domain.MaintenanceOrder) (domain.MaintenanceOrder, error)
	UpdateOrder(ctx context.Context, o domain.MaintenanceOrder) (domain.MaintenanceOrder, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	OrderSummary(ctx context.Context) (*domain.SummaryStats, error)
}

// ScheduleAPI defines the backend operations the schedule handlers depend on.
type ScheduleAPI interface {
	ListSchedules(ctx context.Context, p domain.ListParams) (domain.Page[domain.VehicleSchedule], error)
	GetSchedule(ctx context.Context, id uuid.UUID) (domain.VehicleSchedule, error)
	CreateSchedule(ctx context.Context, s domain.VehicleSchedule) (domain.VehicleSchedule, error)
	UpdateSchedule(ctx context.Context, s domain.VehicleSchedule) (domain.VehicleSchedule, error)
	DeleteSchedule(ctx context.Context, id uuid.UUID) error
	ScheduleSummary(ctx context.Context) (*domain.SummaryStats, error)
}

// Config wires a Server. All fields are required except Lists entries for
// entities the deployment does not expose.
type Config struct {
	Log     *slog.Logger
	Session domain.Session

	Vehicles  VehicleAPI
	Drivers   DriverAPI
	Orders    OrderAPI
	Schedules ScheduleAPI

	// Lists maps entity keys to their list controllers.
	Lists map[string]page.ListPage

	Overview *page.OverviewController
}

// Server holds the handler dependencies. Methods are in entity-specific
// files but all operate on this struct.
type Server struct {
	log     *slog.Logger
	session domain.Session

	vehicles  VehicleAPI
	drivers   DriverAPI
	orders    OrderAPI
	schedules ScheduleAPI

	lists    map[string]page.ListPage
	overview *page.OverviewController
}

// NewServer constructs the Server with all its dependencies.
func NewServer(cfg Config) *Server {
	return &Server{
		log:       cfg.Log,
		session:   cfg.Session,
		vehicles:  cfg.Vehicles,
		drivers:   cfg.Drivers,
		orders:    cfg.Orders,
		schedules: cfg.Schedules,
		lists:     cfg.Lists,
		overview:  cfg.Overview,
	}
}

// Routes builds the chi router for the whole console API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSession)

		r.Route("/overview", func(r chi.Router) {
			r.Get("/", s.handleOverviewView)
			r.Get("/live", s.handleOverviewLive)
			r.Post("/next-week", s.handleOverviewNav(s.overview.NextWeek))
			r.Post("/prev-week", s.handleOverviewNav(s.overview.PrevWeek))
			r.Post("/today", s.handleOverviewNav(s.overview.Today))
			r.Post("/jump", s.handleOverviewJump)
			r.Post("/days", s.handleOverviewDays)
		})

		r.Route("/"+EntityVehicles, func(r chi.Router) {
			s.mountListRoutes(r, EntityVehicles)
			r.Get("/summary", s.handleVehicleSummary)
			r.Post("/", s.handleCreateVehicle)
			r.Get("/{id}", s.handleGetVehicle)
			r.Put("/{id}", s.handleUpdateVehicle)
			r.Delete("/{id}", s.handleDeleteVehicle)
		})

		r.Route("/"+EntityDrivers, func(r chi.Router) {
			s.mountListRoutes(r, EntityDrivers)
			r.Get("/summary", s.handleDriverSummary)
			r.Post("/", s.handleCreateDriver)
			r.Get("/{id}", s.handleGetDriver)
			r.Put("/{id}", s.handleUpdateDriver)
			r.Delete("/{id}", s.handleDeleteDriver)
		})

		r.Route("/"+EntityOrders, func(r chi.Router) {
			s.mountListRoutes(r, EntityOrders)
			r.Get("/summary", s.handleOrderSummary)
			r.Post("/", s.handleCreateOrder)
			r.Get("/{id}", s.handleGetOrder)
			r.Put("/{id}", s.handleUpdateOrder)
			r.Delete("/{id}", s.handleDeleteOrder)
		})

		r.Route("/"+EntitySchedules, func(r chi.Router) {
			s.mountListRoutes(r, EntitySchedules)
			r.Get("/summary", s.handleScheduleSummary)
			r.Post("/", s.handleCreateSchedule)
			r.Get("/{id}", s.handleGetSchedule)
			r.Put("/{id}", s.handleUpdateSchedule)
			r.Delete("/{id}", s.handleDeleteSchedule)
		})
	})

	return r
}

// handleHealth reports liveness; it does not probe the backend.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSession exposes the operator identity so the UI can hide admin-only
// affordances. The actual gate stays server-side on the delete handlers.
func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session)
}

// refreshList re-fetches an entity's list after a successful mutation so the
// next view reflects the change. A nil controller (entity not exposed) is a
// no-op.
func (s *Server) refreshList(entity string) {
	if lp, ok := s.lists[entity]; ok && lp != nil {
		lp.Refresh()
	}
}

// parseID extracts and parses the {id} path parameter.
func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
