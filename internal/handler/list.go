package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/fleet-console/internal/page"
)

// mountListRoutes registers the shared list surface for one entity: the view
// endpoint plus one POST per query transition. Every transition responds
// with the updated view so the UI never needs a follow-up GET.
func (s *Server) mountListRoutes(r chi.Router, entity string) {
	lp := s.lists[entity]
	if lp == nil {
		return
	}
	r.Get("/", s.handleListView(lp))
	r.Post("/search", s.handleListSearch(lp))
	r.Post("/filter", s.handleListFilter(lp))
	r.Post("/sort", s.handleListSort(lp))
	r.Post("/page", s.handleListPage(lp))
	r.Post("/page-size", s.handleListPageSize(lp))
	r.Post("/clear", s.handleListTransition(lp, page.ListPage.ClearAll))
	r.Post("/refresh", s.handleListTransition(lp, page.ListPage.Refresh))
}

// handleListView serves GET /{entity}: the first request triggers the
// initial fetch, later ones just read the current render state.
func (s *Server) handleListView(lp page.ListPage) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		lp.EnsureLoaded()
		writeJSON(w, http.StatusOK, lp.View())
	}
}

// handleListSearch feeds a keystroke into the debounced search term. An
// empty term is valid; it clears the search.
func (s *Server) handleListSearch(lp page.ListPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Term string `json:"term"`
		}
		if err := decodeJSON(r, &body); err != nil {
			requestError(w, "malformed JSON body")
			return
		}
		lp.Search(body.Term)
		writeJSON(w, http.StatusOK, lp.View())
	}
}

func (s *Server) handleListFilter(lp page.ListPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Value string `json:"value"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Value == "" {
			requestError(w, "filter value is required")
			return
		}
		lp.ToggleFilter(body.Value)
		writeJSON(w, http.StatusOK, lp.View())
	}
}

func (s *Server) handleListSort(lp page.ListPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Column string `json:"column"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Column == "" {
			requestError(w, "sort column is required")
			return
		}
		lp.Sort(body.Column)
		writeJSON(w, http.StatusOK, lp.View())
	}
}

func (s *Server) handleListPage(lp page.ListPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Page int `json:"page"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Page < 1 {
			requestError(w, "page must be a positive integer")
			return
		}
		lp.SetPage(body.Page)
		writeJSON(w, http.StatusOK, lp.View())
	}
}

func (s *Server) handleListPageSize(lp page.ListPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Size int `json:"size"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Size < 1 {
			requestError(w, "size must be a positive integer")
			return
		}
		lp.SetPageSize(body.Size)
		writeJSON(w, http.StatusOK, lp.View())
	}
}

// handleListTransition serves the body-less transitions (clear, refresh).
func (s *Server) handleListTransition(lp page.ListPage, transition func(page.ListPage)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		transition(lp)
		writeJSON(w, http.StatusOK, lp.View())
	}
}
