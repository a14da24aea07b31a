package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightsearch-service/internal/domain/repository"
	"flightsearch-service/internal/infrastructure/config"
	"flightsearch-service/internal/infrastructure/persistence"
	"flightsearch-service/internal/interface/mcp"
	storeRepo "flightsearch-service/internal/interface/repository"
	"flightsearch-service/internal/usecase"
	"flightsearch-service/pkg/logger"
	"flightsearch-service/pkg/metrics"
	"flightsearch-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flight Search Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the search result store
	var resultRepo repository.SearchResultRepository
	var mongoClient *mongo.Client
	switch cfg.ResultStore {
	case config.StoreMongo:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		resultRepo = storeRepo.NewMongoSearchResultRepository(db, log)
	default:
		resultRepo, err = storeRepo.NewFileSearchResultRepository(cfg.StoreDir, log)
		if err != nil {
			log.Fatal("Failed to set up file store", "error", err)
		}
	}

	// Set up the optional airport reference repository
	var airportRepo repository.AirportRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airportRepo = storeRepo.NewGormAirportRepository(gormDB)
	} else {
		log.Info("POSTGRES_DSN not set, airport lookup disabled")
	}

	// Set up provider, transformer, metrics and the engine
	provider := storeRepo.NewSerpAPIFlightProvider(cfg.SerpAPIKey, cfg.SerpAPIGL, cfg.SerpAPIHL, cfg.ProviderTimeout, log)
	transformer := utils.NewFlightTransformer(utils.ParseMissingAirportPolicy(cfg.MissingAirportPolicy), log)
	appMetrics := metrics.NewMetrics("flightsearch")
	engine := usecase.NewSearchEngine(provider, resultRepo, airportRepo, transformer, appMetrics, log, cfg.SerpAPIKey)

	// Start the expiry sweeper in a goroutine
	go func() {
		sweepTicker := time.NewTicker(cfg.SweepInterval)
		defer sweepTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Sweeper stopped")
				return
			case <-sweepTicker.C:
				if _, err := engine.SweepExpired(ctx, cfg.RetentionAge()); err != nil {
					log.Error("Sweep failed", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Serve MCP over stdio in a goroutine; EOF means the host closed
	// the pipe and the process should exit.
	mcpServer := mcp.NewServer(engine, cfg.ToolCallTimeout, log)
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- mcpServer.Serve(ctx, os.Stdin, os.Stdout)
	}()

	// Wait for interrupt signal or stdio EOF
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		log.Info("Received signal", "signal", sig)
	case err := <-serveDone:
		if err != nil {
			log.Error("MCP server error", "error", err)
		} else {
			log.Info("MCP input closed")
		}
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Flight Search Service stopped")
}
