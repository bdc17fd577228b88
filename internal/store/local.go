package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/freedalab/ticketflow/internal/domain"
	apperrors "github.com/freedalab/ticketflow/pkg/util/errorutil"
)

// LocalStore is the flat-file fallback store: a single JSON array of
// ticket-shaped objects. Every write replaces the whole file, so the
// load-merge-write sequence runs under an exclusive lock on the handle.
// The handle is constructed once at startup and shared by reference.
type LocalStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewLocalStore builds a store handle for the given file path.
func NewLocalStore(path string, logger *zap.Logger) *LocalStore {
	return &LocalStore{path: path, logger: logger}
}

// Scan returns the full store contents. An absent or corrupt file is
// treated as an empty store: the condition is logged, never propagated.
func (s *LocalStore) Scan(ctx context.Context) ([]domain.LocalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Append merges records into the store, dropping any record whose id is
// already persisted or already admitted earlier in the same batch.
// Returns how many records were admitted.
func (s *LocalStore) Append(ctx context.Context, records []domain.LocalRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.load()
	seen := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		seen[rec.ID] = struct{}{}
	}

	admitted := 0
	for _, rec := range records {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		existing = append(existing, rec)
		admitted++
	}

	if admitted == 0 {
		return 0, nil
	}
	if err := s.persist(existing); err != nil {
		return 0, err
	}
	return admitted, nil
}

// UpdateStatus mutates the status field of one record. The only sanctioned
// mutation path for persisted tickets.
func (s *LocalStore) UpdateStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	for i := range records {
		if records[i].ID == id {
			records[i].Status = status
			return s.persist(records)
		}
	}
	return apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

func (s *LocalStore) load() []domain.LocalRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("local store unreadable, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return []domain.LocalRecord{}
	}

	var records []domain.LocalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("local store corrupt, treating as empty",
			zap.String("path", s.path),
			zap.Error(apperrors.NewStoreCorrupt(s.path, err)))
		return []domain.LocalRecord{}
	}
	return records
}

// persist writes the full array atomically: temp file in the same
// directory, then rename over the store file. Non-ASCII characters are
// written literally for dashboard consumers.
func (s *LocalStore) persist(records []domain.LocalRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tickets-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
