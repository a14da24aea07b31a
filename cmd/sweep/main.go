// Command sweep runs one expiry pass over the configured result store
// and exits. Useful when the long-running server is not deployed and
// cleanup happens from cron.
package main

import (
	"context"
	"time"

	"flightsearch-service/internal/domain/repository"
	"flightsearch-service/internal/infrastructure/config"
	"flightsearch-service/internal/infrastructure/persistence"
	storeRepo "flightsearch-service/internal/interface/repository"
	"flightsearch-service/pkg/logger"
)

func main() {
	log := logger.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var resultRepo repository.SearchResultRepository
	switch cfg.ResultStore {
	case config.StoreMongo:
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		defer client.Disconnect(ctx)
		resultRepo = storeRepo.NewMongoSearchResultRepository(db, log)
	default:
		resultRepo, err = storeRepo.NewFileSearchResultRepository(cfg.StoreDir, log)
		if err != nil {
			log.Fatal("Failed to set up file store", "error", err)
		}
	}

	deleted, err := resultRepo.Sweep(ctx, cfg.RetentionAge())
	if err != nil {
		log.Fatal("Sweep failed", "error", err)
	}
	log.Info("Sweep finished", "deleted", deleted, "retentionHours", cfg.RetentionHours)
}
