package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freedalab/ticketflow/internal/config"
	"github.com/freedalab/ticketflow/internal/events"
	"github.com/freedalab/ticketflow/internal/observability"
	"github.com/freedalab/ticketflow/internal/store"
)

const sampleCSV = `TICKET,Client,Motif,Statut,Gravité,Canal,Date,Agent,Historique des échanges,Recommandation,Sentiment
T-2024-1000,Aurélie,Panne internet,Nouveau,Critique,chatbot,2024-03-01T10:00:00,Agent X,user: rien ne marche,Escalader,Négatif
T-2024-1001,Bob,Support,En cours,Moyen,email,2024-03-02T11:00:00,Agent X,user: question facture,Répondre,Neutre
`

func newTestIngestor(t *testing.T) (*Ingestor, *store.LocalStore, config.IngestConfig, *observability.Metrics) {
	t.Helper()
	base := t.TempDir()
	cfg := config.IngestConfig{
		InputDir:   filepath.Join(base, "inputs"),
		ArchiveDir: filepath.Join(base, "archive"),
		DataDir:    filepath.Join(base, "data"),
	}
	local := store.NewLocalStore(cfg.StoreFile(), zap.NewNop())
	metrics := observability.NewMetrics()
	ing := NewIngestor(local, cfg, events.NewInMemoryDispatcher(), metrics, zap.NewNop())
	require.NoError(t, ing.EnsureDirs())
	return ing, local, cfg, metrics
}

func writeInput(t *testing.T, cfg config.IngestConfig, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, name), data, 0o644))
}

func TestProcessDirectoryAdmitsAndArchives(t *testing.T) {
	ing, local, cfg, metrics := newTestIngestor(t)
	writeInput(t, cfg, "export.csv", []byte(sampleCSV))

	admitted, err := ing.ProcessDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, admitted)

	admittedTotal, rejectedTotal := metrics.IngestTotals()
	assert.Equal(t, int64(2), admittedTotal)
	assert.Zero(t, rejectedTotal)

	records, err := local.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Values stay raw at ingestion time; normalization happens on read.
	assert.Equal(t, "Nouveau", records[0].Status)
	assert.Equal(t, "Critique", records[0].Priority)
	assert.Equal(t, "chatbot", records[0].Channel)

	// Input directory is empty, archive holds the timestamped file.
	inputs, err := os.ReadDir(cfg.InputDir)
	require.NoError(t, err)
	assert.Empty(t, inputs)

	archived, err := os.ReadDir(cfg.ArchiveDir)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.True(t, strings.HasSuffix(archived[0].Name(), "_export.csv"))

	ts := strings.TrimSuffix(archived[0].Name(), "_export.csv")
	_, err = time.Parse("20060102_150405", ts)
	assert.NoError(t, err, "archive prefix is a YYYYMMDD_HHMMSS timestamp")
}

func TestProcessDirectoryIsIdempotentOnDuplicateIDs(t *testing.T) {
	ing, local, cfg, metrics := newTestIngestor(t)

	writeInput(t, cfg, "first.csv", []byte(sampleCSV))
	admitted, err := ing.ProcessDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, admitted)

	// Same rows dropped again (simulates re-ingesting without archiving).
	writeInput(t, cfg, "second.csv", []byte(sampleCSV))
	admitted, err = ing.ProcessDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, admitted)

	records, err := local.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// The second pass counts both rows as deduplicated rejects.
	admittedTotal, rejectedTotal := metrics.IngestTotals()
	assert.Equal(t, int64(2), admittedTotal)
	assert.Equal(t, int64(2), rejectedTotal)
}

func TestProcessDirectoryIsolatesMalformedFiles(t *testing.T) {
	ing, local, cfg, _ := newTestIngestor(t)

	writeInput(t, cfg, "good.csv", []byte(sampleCSV))
	// Unclosed quote makes the csv reader fail.
	writeInput(t, cfg, "bad.csv", []byte("TICKET,Client\n\"T-9,broken\n"))

	admitted, err := ing.ProcessDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, admitted)

	records, err := local.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, rec := range records {
		assert.NotEqual(t, "T-9", rec.ID)
	}

	// The malformed file stays in the input directory for the next pass.
	inputs, err := os.ReadDir(cfg.InputDir)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "bad.csv", inputs[0].Name())
}

func TestProcessDirectoryLatin1Fallback(t *testing.T) {
	ing, local, cfg, _ := newTestIngestor(t)

	// "Gravité" and "Aurélie" encoded as Latin-1: é is byte 0xE9, which is
	// invalid UTF-8.
	latin1 := []byte("TICKET,Client,Gravit\xe9\nT-1,Aur\xe9lie,\xc9lev\xe9\n")
	writeInput(t, cfg, "legacy.csv", latin1)

	admitted, err := ing.ProcessDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, admitted)

	records, err := local.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Aurélie", records[0].Client)
	assert.Equal(t, "Élevé", records[0].Priority)
}

func TestProcessDirectoryBOMHandling(t *testing.T) {
	ing, local, cfg, _ := newTestIngestor(t)

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("TICKET,Client\nT-1,Alice\n")...)
	writeInput(t, cfg, "bom.csv", withBOM)

	admitted, err := ing.ProcessDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, admitted)

	records, err := local.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "T-1", records[0].ID, "BOM must not corrupt the first header")
}

func TestParseRowsMissingColumnsAndIDs(t *testing.T) {
	rows, err := parseRows("Client,Motif\nAlice,Panne réseau\nBob,Facture double\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Missing id column yields synthetic sequential identifiers.
	assert.Equal(t, "T-0", rows[0].ID)
	assert.Equal(t, "T-1", rows[1].ID)

	// Absent columns are tolerated as empty strings, never an error.
	assert.Empty(t, rows[0].Status)
	assert.Empty(t, rows[0].Priority)
	assert.Equal(t, "Panne réseau", rows[0].Motif)
}

func TestParseRowsEmptyFile(t *testing.T) {
	rows, err := parseRows("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProcessDirectoryIgnoresNonCSV(t *testing.T) {
	ing, _, cfg, _ := newTestIngestor(t)
	writeInput(t, cfg, "readme.txt", []byte("not an export"))

	admitted, err := ing.ProcessDirectory(context.Background())
	require.NoError(t, err)
	assert.Zero(t, admitted)

	inputs, err := os.ReadDir(cfg.InputDir)
	require.NoError(t, err)
	assert.Len(t, inputs, 1, "non-csv files are left untouched")
}
