package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/bobmcallan/vire-dash/internal/app"
	"github.com/bobmcallan/vire-dash/internal/common"
	"github.com/bobmcallan/vire-dash/internal/interfaces"
)

// Server wraps the HTTP server and the components its handlers read from.
type Server struct {
	config  *common.Config
	logger  *common.Logger
	source  interfaces.PortfolioSource
	views   interfaces.DashboardReader
	images  interfaces.ChartImages
	refresh interfaces.RefreshTrigger
	pages   *template.Template
	server  *http.Server
}

// NewServer creates the dashboard HTTP server for a.
func NewServer(a *app.App) *Server {
	return newServer(a.Config, a.Logger, a.Client, a.Store, a.Charts, a.Refresher)
}

func newServer(config *common.Config, logger *common.Logger, source interfaces.PortfolioSource, views interfaces.DashboardReader, images interfaces.ChartImages, refresh interfaces.RefreshTrigger) *Server {
	s := &Server{
		config:  config,
		logger:  logger,
		source:  source,
		views:   views,
		images:  images,
		refresh: refresh,
		pages:   parsePages(),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      applyMiddleware(mux, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting dashboard server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
