// Package worker runs the background ingestion loop: startup pass,
// cron-scheduled passes, and manual refresh triggers, all serialized
// through a single goroutine so store writes never interleave.
package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/freedalab/ticketflow/internal/ingest"
)

// IngestWorker owns the ingestion schedule and trigger channel.
type IngestWorker struct {
	ingestor *ingest.Ingestor
	cron     *cron.Cron
	trigger  chan struct{}
	done     chan struct{}
	logger   *zap.Logger
}

// StartIngestWorker launches the worker. An empty schedule disables the
// cron; manual triggers still work.
func StartIngestWorker(ctx context.Context, ingestor *ingest.Ingestor, schedule string, logger *zap.Logger) (*IngestWorker, error) {
	w := &IngestWorker{
		ingestor: ingestor,
		trigger:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		logger:   logger,
	}

	if schedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		spec, err := parser.Parse(schedule)
		if err != nil {
			return nil, fmt.Errorf("invalid ingest cron schedule %q: %w", schedule, err)
		}
		w.cron = cron.New()
		w.cron.Schedule(spec, cron.FuncJob(w.Trigger))
		w.cron.Start()
		logger.Info("ingestion scheduled", zap.String("cron", schedule))
	}

	go w.run(ctx)
	return w, nil
}

// Trigger requests an ingestion pass. Requests arriving while a pass is
// already pending coalesce into one.
func (w *IngestWorker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// Stop halts the schedule and waits for the loop to exit. The context
// passed to StartIngestWorker must be cancelled first.
func (w *IngestWorker) Stop() {
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
	<-w.done
}

func (w *IngestWorker) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.trigger:
			admitted, err := w.ingestor.ProcessDirectory(ctx)
			if err != nil {
				w.logger.Error("ingestion pass failed", zap.Error(err))
				continue
			}
			w.logger.Info("ingestion pass complete", zap.Int("admitted", admitted))
		}
	}
}
