package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okian/pitchmap/internal/adapters/http/api"
	"github.com/okian/pitchmap/internal/adapters/http/swagger"
	"github.com/okian/pitchmap/internal/adapters/provider"
	"github.com/okian/pitchmap/internal/adapters/render"
	service "github.com/okian/pitchmap/internal/app"
	"github.com/okian/pitchmap/internal/config"
	"github.com/okian/pitchmap/internal/domain/network"
	"github.com/okian/pitchmap/pkg/logger"
	"github.com/okian/pitchmap/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 60 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithOptions(logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Int("competition_id", cfg.CompetitionID),
			logger.Int("season_id", cfg.SeasonID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newSource picks the local checkout when data_dir is set and the remote
// provider otherwise.
func newSource(cfg *config.Config, log logger.Logger) provider.Source {
	if cfg.DataDir != "" {
		return provider.NewDirSource(cfg.DataDir, provider.WithDirLogger(log.Named("provider")))
	}
	return provider.NewHTTPSource(
		provider.WithBaseURL(cfg.ProviderBaseURL),
		provider.WithTimeout(cfg.HTTPTimeout()),
		provider.WithLogger(log.Named("provider")),
	)
}

// newMux wires the service, the renderer and every route.
func newMux(ctx context.Context, cfg *config.Config, log logger.Logger) *http.ServeMux {
	svc := service.New(newSource(cfg, log),
		service.WithCompetition(cfg.CompetitionID, cfg.SeasonID),
		service.WithAggregator(network.NewAggregator(
			network.WithMaxMarkerSize(cfg.MaxMarkerSize),
			network.WithMaxLineWidth(cfg.MaxLineWidth),
		)),
		service.WithPitch(cfg.PitchLength, cfg.PitchWidth),
		service.WithGrid(cfg.GridColumns, cfg.GridRows),
		service.WithLogger(log.Named("service")),
	)

	renderer := render.New(
		render.WithPitch(cfg.PitchLength, cfg.PitchWidth),
		render.WithScale(cfg.RenderScale),
		render.WithLogger(log.Named("render")),
	)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, renderer, log.Named("api")).Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater refreshes the system gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}
