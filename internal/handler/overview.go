package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	// overviewPushInterval paces the websocket refresh loop. Schedules
	// change on the scale of minutes, not seconds.
	overviewPushInterval = 30 * time.Second
	overviewWriteTimeout = 5 * time.Second
	overviewFetchTimeout = 10 * time.Second

	// maxOverviewDays caps the window duration a client may request.
	maxOverviewDays = 60
)

// overviewUpgrader accepts same-host upgrades and browser clients whose
// Origin matches the request host. Cross-origin UIs go through the CORS'd
// JSON endpoints instead.
var overviewUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(u.Host), strings.TrimSpace(r.Host))
	},
}

// handleOverviewView serves GET /api/overview; the first request loads the
// initial window.
func (s *Server) handleOverviewView(w http.ResponseWriter, r *http.Request) {
	if !s.overview.Loaded() {
		if err := s.overview.Refresh(r.Context()); err != nil {
			s.log.Warn("overview load failed", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, s.overview.View())
}

// handleOverviewNav wraps the body-less window movements (next-week,
// prev-week, today). A failed reload still answers 200: the view carries
// the error and keeps the previous rows, which is the retryable state the
// UI wants.
func (s *Server) handleOverviewNav(nav func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := nav(r.Context()); err != nil {
			s.log.Warn("overview refresh failed", "error", err)
		}
		writeJSON(w, http.StatusOK, s.overview.View())
	}
}

// handleOverviewJump handles POST /api/overview/jump with a date-only start.
func (s *Server) handleOverviewJump(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Start openapi_types.Date `json:"start"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Start.IsZero() {
		requestError(w, "start must be a date (2006-01-02)")
		return
	}
	if err := s.overview.JumpTo(r.Context(), body.Start.Time); err != nil {
		s.log.Warn("overview refresh failed", "error", err)
	}
	writeJSON(w, http.StatusOK, s.overview.View())
}

// handleOverviewDays handles POST /api/overview/days.
func (s *Server) handleOverviewDays(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Days int `json:"days"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Days < 1 || body.Days > maxOverviewDays {
		requestError(w, "days must be between 1 and 60")
		return
	}
	if err := s.overview.SetDays(r.Context(), body.Days); err != nil {
		s.log.Warn("overview refresh failed", "error", err)
	}
	writeJSON(w, http.StatusOK, s.overview.View())
}

// handleOverviewLive serves GET /api/overview/live: a websocket that pushes
// the overview view immediately on connect and again on every interval tick.
func (s *Server) handleOverviewLive(w http.ResponseWriter, r *http.Request) {
	conn, err := overviewUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.serveOverviewLive(conn)
}

func (s *Server) serveOverviewLive(conn *websocket.Conn) {
	defer conn.Close()

	if err := s.pushOverview(conn); err != nil {
		return
	}

	ticker := time.NewTicker(overviewPushInterval)
	defer ticker.Stop()

	// Drain the client side so pings and close frames are processed; the
	// read error doubles as the disconnect signal.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			if err := s.pushOverview(conn); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) pushOverview(conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(context.Background(), overviewFetchTimeout)
	defer cancel()
	if err := s.overview.Refresh(ctx); err != nil {
		s.log.Warn("overview refresh failed", "error", err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(overviewWriteTimeout))
	return conn.WriteJSON(s.overview.View())
}
