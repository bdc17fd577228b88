package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freedalab/ticketflow/internal/domain"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	return NewLocalStore(filepath.Join(t.TempDir(), "tickets.json"), zap.NewNop())
}

func TestLocalStoreAppendAndScan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admitted, err := s.Append(ctx, []domain.LocalRecord{
		{ID: "T-1", Client: "alice", Status: "Nouveau"},
		{ID: "T-2", Client: "bob", Status: "En cours"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, admitted)

	records, err := s.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "T-1", records[0].ID)
	assert.Equal(t, "T-2", records[1].ID)
}

func TestLocalStoreAppendDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, []domain.LocalRecord{{ID: "T-1", Client: "alice"}})
	require.NoError(t, err)

	// Persisted id is dropped, never overwritten.
	admitted, err := s.Append(ctx, []domain.LocalRecord{
		{ID: "T-1", Client: "mallory"},
		{ID: "T-2", Client: "bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, admitted)

	records, err := s.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0].Client)
}

func TestLocalStoreAppendDeduplicatesWithinBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admitted, err := s.Append(ctx, []domain.LocalRecord{
		{ID: "T-1", Client: "first"},
		{ID: "T-1", Client: "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, admitted)

	records, err := s.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first", records[0].Client)
}

func TestLocalStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewLocalStore(path, zap.NewNop())
	records, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	// Writing over a corrupt store starts from empty rather than failing.
	admitted, err := s.Append(context.Background(), []domain.LocalRecord{{ID: "T-1"}})
	require.NoError(t, err)
	assert.Equal(t, 1, admitted)
}

func TestLocalStoreUpdateStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, []domain.LocalRecord{{ID: "T-1", Status: "Nouveau"}})
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(ctx, "T-1", "Fermé"))

	records, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fermé", records[0].Status)
}

func TestLocalStoreUpdateStatusNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateStatus(context.Background(), "missing", "Fermé")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLocalStorePersistsLiteralNonASCII(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.json")
	s := NewLocalStore(path, zap.NewNop())

	_, err := s.Append(context.Background(), []domain.LocalRecord{
		{ID: "T-1", Client: "Aurélie", Status: "Résolu"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Aurélie")
	assert.Contains(t, string(data), "Résolu")
	assert.NotContains(t, string(data), `\u00e9`)
}

func TestLocalStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(filepath.Join(dir, "tickets.json"), zap.NewNop())

	_, err := s.Append(context.Background(), []domain.LocalRecord{{ID: "T-1"}})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tickets.json", entries[0].Name())
}
