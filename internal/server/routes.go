package server

import (
	"net/http"

	"github.com/bobmcallan/vire-dash/internal/common"
)

// registerRoutes sets up all routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Dashboard
	mux.HandleFunc("/api/dashboard", s.handleDashboardJSON)
	mux.HandleFunc("/api/refresh", s.handleRefresh)
	mux.HandleFunc("/charts/", s.handleChartImage)
	mux.HandleFunc("/delete", s.routeDelete)
	mux.HandleFunc("/", s.handleDashboardPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	dashboard := "pending"
	if d := s.views.Latest(); d != nil {
		dashboard = "stale"
		if common.IsFresh(d.GeneratedAt, common.FreshnessDashboard) {
			dashboard = "fresh"
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "dashboard": dashboard})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) routeDelete(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleDeleteConfirm(w, r)
	case http.MethodPost:
		s.handleDelete(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}
