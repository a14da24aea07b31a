package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/internal/domain/repository"
	"flightsearch-service/pkg/logger"
)

// FileSearchResultRepository stores one JSON document per search id
// under a directory, the way the original temp-file storage worked.
// Writes go through a temp file and rename so a concurrent reader sees
// either the complete document or nothing.
type FileSearchResultRepository struct {
	dir    string
	logger logger.Logger
}

// NewFileSearchResultRepository creates a new file-backed search result
// repository, creating the directory if needed
func NewFileSearchResultRepository(dir string, logger logger.Logger) (repository.SearchResultRepository, error) {
	if dir == "" {
		return nil, fmt.Errorf("search result directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create search result directory: %w", err)
	}
	return &FileSearchResultRepository{
		dir:    dir,
		logger: logger,
	}, nil
}

func (r *FileSearchResultRepository) path(searchID string) string {
	return filepath.Join(r.dir, "search_"+searchID+".json")
}

// Save writes the record wrapped with the storage timestamp, replacing
// any existing document for the same identifier
func (r *FileSearchResultRepository) Save(ctx context.Context, searchID string, record *entity.SearchRecord) error {
	doc := entity.StoredSearch{
		Timestamp: time.Now(),
		Results:   *record,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal search record: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, ".search_*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write search record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path(searchID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store search record: %w", err)
	}

	r.logger.Debug("Stored search record", "searchId", searchID, "flights", len(record.Flights))
	return nil
}

// Get loads the record for searchID. A missing document is reported
// via the found flag, not an error; a corrupt one is an error.
func (r *FileSearchResultRepository) Get(ctx context.Context, searchID string) (*entity.SearchRecord, bool, error) {
	data, err := os.ReadFile(r.path(searchID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read search record: %w", err)
	}

	var doc entity.StoredSearch
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("failed to parse search record: %w", err)
	}

	// The endpoint views are derived state; never trust the stored copy.
	doc.Results.RecomputeEndpoints()
	return &doc.Results, true, nil
}

// Sweep deletes documents older than maxAge. Each document is handled
// independently: a file that cannot be read, parsed or removed is
// logged and skipped so one bad entry never aborts the cleanup.
func (r *FileSearchResultRepository) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list search result directory: %w", err)
	}

	now := time.Now()
	deleted := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "search_") || !strings.HasSuffix(name, ".json") {
			continue
		}

		full := filepath.Join(r.dir, name)
		data, err := os.ReadFile(full)
		if err != nil {
			r.logger.Warn("Sweep skipping unreadable record", "file", name, "error", err)
			continue
		}
		var doc entity.StoredSearch
		if err := json.Unmarshal(data, &doc); err != nil {
			r.logger.Warn("Sweep skipping unparseable record", "file", name, "error", err)
			continue
		}
		if now.Sub(doc.Timestamp) <= maxAge {
			continue
		}
		if err := os.Remove(full); err != nil {
			r.logger.Warn("Sweep failed to delete record", "file", name, "error", err)
			continue
		}
		deleted++
	}

	return deleted, nil
}
