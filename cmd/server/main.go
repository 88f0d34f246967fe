// Package main provides the drift prediction API HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oceandrift/drift-api/internal/adapter/store/currents"
	"github.com/oceandrift/drift-api/internal/config"
	"github.com/oceandrift/drift-api/internal/domain"
	httpHandler "github.com/oceandrift/drift-api/internal/http"
	"github.com/oceandrift/drift-api/internal/observability"
	"github.com/oceandrift/drift-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("drift-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting drift API server...")
	log.Printf("Address: %s", cfg.HTTPAddr)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Integration step: %v", cfg.Step)
	if cfg.ProfilePath != "" {
		log.Printf("Object profile overrides: %s (%d entries)", cfg.ProfilePath, len(cfg.ProfileOverrides))
	}

	// Initialize the currents store.
	store := currents.NewStore(cfg.DataDir)
	provider := usecase.FieldProviderFunc(func(lat, lon float64, start, end time.Time) (domain.Sampler, error) {
		return store.FieldForArea(lat, lon, start, end)
	})

	// Initialize the profile table and integrator.
	profiles := domain.NewProfileTableWith(cfg.ProfileOverrides)
	integrator := domain.NewIntegrator(profiles).
		WithStep(cfg.Step).
		WithMaxSteps(cfg.MaxSteps)

	// Initialize metrics and the use case.
	metrics := observability.NewMetrics()
	predictionUC := usecase.NewPredictionUseCase(
		provider,
		profiles,
		integrator,
		clockwork.NewRealClock(),
		metrics,
	)

	// Setup router.
	router := httpHandler.SetupRouter(predictionUC, cfg.AllowedOrigins)

	// Start server.
	log.Printf("Server listening on %s", cfg.HTTPAddr)
	log.Printf("API endpoints:")
	log.Printf("  - POST /v1/drift/predictions")
	log.Printf("  - GET /v1/objects")
	log.Printf("  - GET /health")
	log.Printf("  - GET /metrics")

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down (timeout %v)...", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Printf("Server stopped")
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Drift API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  drift-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  HTTP_ADDR          Listen address (default: :8080)")
	fmt.Println("  DATA_DIR           Current field cache directory (default: ./data/currents)")
	fmt.Println("  STEP_MINUTES       Integration step in minutes, must divide 60 (default: 15)")
	fmt.Println("  MAX_STEPS          Per-request step ceiling (default: 100000)")
	fmt.Println("  PROFILE_CONFIG     YAML file with object profile overrides (optional)")
	fmt.Println("  ALLOWED_ORIGINS    Comma-separated CORS origins (default: all origins)")
	fmt.Println("  SHUTDOWN_TIMEOUT   Graceful shutdown timeout (default: 10s)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  drift-api")
	fmt.Println()
	fmt.Println("  # Start server on a custom port with a coarser step")
	fmt.Println("  HTTP_ADDR=:3000 STEP_MINUTES=30 drift-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET  /health                  Health check")
	fmt.Println("  GET  /metrics                 Prometheus metrics")
	fmt.Println("  GET  /v1/objects              List drift object profiles")
	fmt.Println("  POST /v1/drift/predictions    Predict a drift trajectory")
	fmt.Println()
}
