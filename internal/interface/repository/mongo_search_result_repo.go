package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/internal/domain/repository"
	"flightsearch-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSearchResultRepository implements SearchResultRepository on a
// MongoDB collection, one document per search identifier
type MongoSearchResultRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// storedSearchDoc is the collection document shape
type storedSearchDoc struct {
	SearchID  string              `bson:"searchId"`
	Timestamp time.Time           `bson:"timestamp"`
	Results   entity.SearchRecord `bson:"results"`
}

// NewMongoSearchResultRepository creates a new mongo-backed search
// result repository
func NewMongoSearchResultRepository(db *mongo.Database, logger logger.Logger) repository.SearchResultRepository {
	collection := db.Collection("search_results")

	// Create unique index on searchId
	ctx := context.Background()
	idIndex := mongo.IndexModel{
		Keys:    bson.M{"searchId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, idIndex)

	// Create index on timestamp for the sweep
	tsIndex := mongo.IndexModel{
		Keys: bson.M{"timestamp": 1},
	}
	collection.Indexes().CreateOne(ctx, tsIndex)

	return &MongoSearchResultRepository{
		collection: collection,
		logger:     logger,
	}
}

// Save upserts the record document under its search identifier
func (r *MongoSearchResultRepository) Save(ctx context.Context, searchID string, record *entity.SearchRecord) error {
	doc := storedSearchDoc{
		SearchID:  searchID,
		Timestamp: time.Now(),
		Results:   *record,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"searchId": searchID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to store search record: %w", err)
	}

	r.logger.Debug("Stored search record", "searchId", searchID, "flights", len(record.Flights))
	return nil
}

// Get finds the record by search identifier
func (r *MongoSearchResultRepository) Get(ctx context.Context, searchID string) (*entity.SearchRecord, bool, error) {
	var doc storedSearchDoc
	err := r.collection.FindOne(ctx, bson.M{"searchId": searchID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load search record: %w", err)
	}

	doc.Results.RecomputeEndpoints()
	return &doc.Results, true, nil
}

// Sweep deletes every document whose timestamp is past the cutoff
func (r *MongoSearchResultRepository) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	result, err := r.collection.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired records: %w", err)
	}
	return int(result.DeletedCount), nil
}
