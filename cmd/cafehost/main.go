// C.A.F.E. Host - panel registrar and static host for frontend bundles.
//
// This is the main entry point for the cafehost application. It serves a
// built frontend bundle, registers the configured panels so clients can
// show them in their sidebar, and pushes registry changes to connected
// WebSocket clients.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/cafe-host/internal/api"
	"github.com/nerrad567/cafe-host/internal/frontend"
	"github.com/nerrad567/cafe-host/internal/infrastructure/config"
	"github.com/nerrad567/cafe-host/internal/infrastructure/logging"
	"github.com/nerrad567/cafe-host/internal/registrar"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting C.A.F.E. Host",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Panel registry - the single source of truth for panels and
	// static paths. The API server reads from it; the registrar
	// writes to it.
	store := frontend.NewStore()
	store.SetLogger(log)

	// Start the API server (REST + WebSocket + static file serving)
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Panels:   store,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
	)

	// Register configured panels. A panel whose bundle assets are
	// missing is skipped (the registrar logs diagnostics); a broken
	// bundle must not take the whole host down.
	reg := registrar.New(store, cfg.Frontend.BundleDir)
	reg.SetLogger(log)

	registered := make([]string, 0, len(cfg.Frontend.Panels))
	for _, p := range cfg.Frontend.Panels {
		regErr := reg.Register(ctx, registrar.Registration{
			Domain: p.Domain,
			Kind:   frontend.PanelKind(p.Kind),
			Title:  p.Title,
			Icon:   p.Icon,
		})
		if regErr != nil {
			return fmt.Errorf("registering panel %q: %w", p.Domain, regErr)
		}
		registered = append(registered, p.Domain)
	}
	log.Info("panels registered",
		"configured", len(cfg.Frontend.Panels),
		"active", store.PanelCount(),
	)

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Unregister panels before the deferred server Close() runs, so
	// connected clients see the registry drain.
	for _, domain := range registered {
		if unregErr := reg.Unregister(context.Background(), domain); unregErr != nil {
			log.Error("error unregistering panel", "domain", domain, "error", unregErr)
		}
	}

	log.Info("C.A.F.E. Host stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses CAFE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("CAFE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
