package server

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobmcallan/vire-dash/internal/charts"
	"github.com/bobmcallan/vire-dash/internal/common"
	"github.com/bobmcallan/vire-dash/internal/models"
)

type chartSlot struct {
	Kind      charts.Kind
	MountID   string
	Available bool
	Cycle     uint64
}

type dashboardPage struct {
	Dashboard      *models.Dashboard
	Currency       string
	RefreshSeconds int
	Version        string
	Charts         []chartSlot
}

type confirmPage struct {
	Symbol string
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	d := s.views.Latest()
	page := dashboardPage{
		Dashboard:      d,
		Currency:       s.config.DisplayCurrency,
		RefreshSeconds: int(common.RefreshInterval.Seconds()),
		Version:        common.GetVersion(),
	}
	for _, k := range charts.Kinds {
		_, _, ok := s.images.Image(k)
		slot := chartSlot{Kind: k, MountID: k.MountID(), Available: ok}
		if d != nil {
			slot.Cycle = d.Cycle
		}
		page.Charts = append(page.Charts, slot)
	}

	s.renderPage(w, "dashboard.html", page)
}

func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	d := s.views.Latest()
	if d == nil {
		WriteErrorWithCode(w, http.StatusServiceUnavailable, "No refresh cycle has completed yet", "not_ready")
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

func (s *Server) handleChartImage(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	kind, ok := charts.ParseKind(PathParam(r, "/charts/", ".png"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Unknown chart")
		return
	}
	img, contentType, ok := s.images.Image(kind)
	if !ok {
		WriteError(w, http.StatusNotFound, "Chart not rendered")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(img)
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	s.refresh.Trigger()
	WriteJSON(w, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}

// handleDeleteConfirm renders the confirmation step for GET /delete?symbol=X.
func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	symbol := common.Sanitize(r.URL.Query().Get("symbol"))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	s.renderPage(w, "confirm.html", confirmPage{Symbol: symbol})
}

// handleDelete forwards a confirmed delete upstream and schedules a refresh.
// Unconfirmed submissions are sent to the confirmation page.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	symbol := common.Sanitize(r.PostForm.Get("symbol"))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if r.PostForm.Get("confirm") != "yes" {
		http.Redirect(w, r, "/delete?symbol="+url.QueryEscape(symbol), http.StatusSeeOther)
		return
	}

	if err := s.source.DeleteHolding(r.Context(), symbol); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Upstream delete failed")
		msg := "Delete failed"
		if !s.config.IsProduction() {
			msg += ": " + err.Error()
		}
		WriteError(w, http.StatusBadGateway, msg)
		return
	}

	s.refresh.Trigger()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("Page render failed")
		WriteError(w, http.StatusInternalServerError, "Page render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
