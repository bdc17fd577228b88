// Package ingest converts newly dropped tabular input files into canonical
// records and merges them into the local store.
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/freedalab/ticketflow/internal/config"
	"github.com/freedalab/ticketflow/internal/domain"
	"github.com/freedalab/ticketflow/internal/events"
	"github.com/freedalab/ticketflow/internal/observability"
	"github.com/freedalab/ticketflow/internal/store"
	apperrors "github.com/freedalab/ticketflow/pkg/util/errorutil"
)

const archiveTimestampLayout = "20060102_150405"

// Ingestor processes a directory of CSV drops into the local store.
type Ingestor struct {
	local      *store.LocalStore
	cfg        config.IngestConfig
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewIngestor constructs the batch ingestor.
func NewIngestor(local *store.LocalStore, cfg config.IngestConfig, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		local:      local,
		cfg:        cfg,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// EnsureDirs creates the input, archive and data directories.
func (i *Ingestor) EnsureDirs() error {
	for _, dir := range []string{i.cfg.InputDir, i.cfg.ArchiveDir, i.cfg.DataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ProcessDirectory ingests every CSV file in the input directory. Failures
// are isolated per file: a malformed file is logged and left in place for
// the next pass while the remaining files proceed. Returns the count of
// newly admitted records across all successfully processed files.
func (i *Ingestor) ProcessDirectory(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(i.cfg.InputDir)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		path := filepath.Join(i.cfg.InputDir, entry.Name())
		admitted, err := i.processFile(ctx, path)
		if err != nil {
			i.logger.Error("input file failed, keeping for retry",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		total += admitted
	}
	return total, nil
}

// processFile runs the full per-file sequence: decode, parse, merge,
// persist, archive. Any error aborts before the archive step so the file
// is retried on the next pass.
func (i *Ingestor) processFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, err := decode(data)
	if err != nil {
		return 0, apperrors.NewParseError(filepath.Base(path), err)
	}

	rows, err := parseRows(content)
	if err != nil {
		return 0, apperrors.NewParseError(filepath.Base(path), err)
	}

	records := make([]domain.LocalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toLocalRecord(row))
	}

	admitted, err := i.local.Append(ctx, records)
	if err != nil {
		return 0, err
	}

	if err := i.archive(path); err != nil {
		return 0, err
	}

	i.metrics.RecordIngest(admitted, len(records)-admitted)
	if i.dispatcher != nil {
		_ = i.dispatcher.Publish(ctx, events.EventTicketsIngested, events.TicketsIngestedPayload{
			File:     filepath.Base(path),
			Admitted: admitted,
		})
	}
	i.logger.Info("input file processed",
		zap.String("file", filepath.Base(path)),
		zap.Int("admitted", admitted),
		zap.Int("deduplicated", len(records)-admitted),
	)
	return admitted, nil
}

// archive moves a consumed input file out of the input directory under a
// timestamp-prefixed name.
func (i *Ingestor) archive(path string) error {
	name := i.now().Format(archiveTimestampLayout) + "_" + filepath.Base(path)
	return os.Rename(path, filepath.Join(i.cfg.ArchiveDir, name))
}
