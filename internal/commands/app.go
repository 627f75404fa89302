package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/toast"
	"github.com/colonyops/toast/pkg/promserver"
)

// app is the registry and store pair shared by the commands, plus the
// debug logging and metrics attached to the store.
type app struct {
	Registry *notify.Registry
	Store    *toast.Store
	Metrics  *prometheus.Registry

	closers []func()
}

func newApp(cfg *config.Config, clock toast.Clock) *app {
	registry := notify.NewRegistry(notify.RegistryOptions{
		Logger:    logging.Component("notify"),
		WarnRate:  cfg.Diagnostics.WarnPerSecond,
		WarnBurst: cfg.Diagnostics.WarnBurst,
	})

	store := toast.New(toast.Options{
		Clock:  clock,
		Logger: logging.Component("toast"),
	})
	store.SetDefaultTimeout(cfg.Toast.DefaultTimeout)

	reg := prometheus.NewRegistry()
	metrics := toast.NewMetrics(reg)

	a := &app{
		Registry: registry,
		Store:    store,
		Metrics:  reg,
	}
	a.closers = append(a.closers,
		toast.RegisterDebugLogger(store, logging.Component("toast.changes")),
		metrics.Attach(store),
		store.Close,
	)
	return a
}

// apply pushes a reloaded config into the live components.
func (a *app) apply(cfg *config.Config) {
	a.Store.SetDefaultTimeout(cfg.Toast.DefaultTimeout)
	a.Registry.SetWarnLimit(cfg.Diagnostics.WarnPerSecond, cfg.Diagnostics.WarnBurst)
}

// serveMetrics starts the metrics endpoint when port is non-zero.
func (a *app) serveMetrics(ctx context.Context, port int) error {
	if port <= 0 {
		return nil
	}

	srv := promserver.New(port, a.Metrics, logging.Component("metrics"))
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	a.closers = append(a.closers, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown metrics server")
		}
	})

	log.Info().
		Str("url", fmt.Sprintf("http://%s/metrics", srv.Addr())).
		Msg("metrics endpoint available")
	return nil
}

// Close releases everything in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
