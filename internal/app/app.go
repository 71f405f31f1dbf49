package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/vire-dash/internal/charts"
	"github.com/bobmcallan/vire-dash/internal/clients/portfolioapi"
	"github.com/bobmcallan/vire-dash/internal/common"
	"github.com/bobmcallan/vire-dash/internal/services/trend"
)

// App holds the initialized client, chart manager, refresher and view store.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Client      *portfolioapi.Client
	Engine      *charts.GoChartEngine
	Charts      *charts.Manager
	Store       *DashboardStore
	Refresher   *Refresher
	StartupTime time.Time

	refreshCancel context.CancelFunc
	refreshDone   chan struct{}
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolveConfigPath checks the provided path, VIRE_DASH_CONFIG, the binary
// directory, then the development fallback.
func resolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("VIRE_DASH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "vire-dash.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/vire-dash.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and wires every component.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	config, err := common.LoadConfig(resolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)
	a := newApp(config, logger)
	a.StartupTime = startupStart

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

func newApp(config *common.Config, logger *common.Logger) *App {
	client := portfolioapi.NewClient(
		portfolioapi.WithBaseURL(config.Upstream.BaseURL),
		portfolioapi.WithPaths(config.Upstream.SummaryPath, config.Upstream.PortfolioPath, config.Upstream.DeletePath),
		portfolioapi.WithRateLimit(config.Upstream.RateLimit),
		portfolioapi.WithTimeout(config.Upstream.GetTimeout()),
		portfolioapi.WithLogger(logger),
	)

	engine := charts.NewGoChartEngine()
	engine.Register(charts.NewDoughnutLabels())
	manager := charts.NewManager(engine, config.Charts.Mounts, config.DisplayCurrency, logger)

	store := NewDashboardStore()
	refresher := NewRefresher(client, manager, trend.NewSyntheticGenerator(), store, logger,
		WithDiscardStale(config.Refresh.DiscardStale),
	)

	return &App{
		Config:      config,
		Logger:      logger,
		Client:      client,
		Engine:      engine,
		Charts:      manager,
		Store:       store,
		Refresher:   refresher,
		StartupTime: time.Now(),
	}
}

// StartRefresher launches the refresh scheduler goroutine.
func (a *App) StartRefresher() {
	ctx, cancel := context.WithCancel(context.Background())
	a.refreshCancel = cancel
	a.refreshDone = make(chan struct{})
	go func() {
		defer close(a.refreshDone)
		a.Refresher.Start(ctx)
	}()
}

// Close stops the scheduler, waits for in-flight cycles and releases the
// live charts.
func (a *App) Close() {
	if a.refreshCancel != nil {
		a.refreshCancel()
		a.refreshCancel = nil
		<-a.refreshDone
		a.Refresher.Wait()
	}
	if a.Charts != nil {
		a.Charts.Close()
	}
}
