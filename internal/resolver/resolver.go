// Package resolver decides which ticket source is authoritative at read
// time and converts whatever it chose into canonical tickets.
package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/freedalab/ticketflow/internal/domain"
	"github.com/freedalab/ticketflow/internal/enrich"
	"github.com/freedalab/ticketflow/internal/events"
	"github.com/freedalab/ticketflow/internal/observability"
	"github.com/freedalab/ticketflow/internal/store"
)

// Resolver serves the full normalized ticket list. The primary store wins
// whenever it answers, even with zero items; the local store is a complete
// fallback, never a top-up. The two sources are never mixed.
type Resolver struct {
	primary    store.PrimaryStore // nil in local file mode
	local      store.FallbackStore
	cache      *store.ResultCache
	enricher   *enrich.Enricher
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	timeout    time.Duration
	production bool
}

// Dependencies bundles collaborators for the resolver.
type Dependencies struct {
	Primary    store.PrimaryStore
	Local      store.FallbackStore
	Cache      *store.ResultCache
	Enricher   *enrich.Enricher
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Timeout    time.Duration
	Production bool
}

// New constructs the resolver.
func New(deps Dependencies) *Resolver {
	if deps.Enricher == nil {
		deps.Enricher = enrich.NewEnricher(nil)
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 5 * time.Second
	}
	return &Resolver{
		primary:    deps.Primary,
		local:      deps.Local,
		cache:      deps.Cache,
		enricher:   deps.Enricher,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		timeout:    deps.Timeout,
		production: deps.Production,
	}
}

// Tickets returns the normalized ticket list for the dashboard.
func (r *Resolver) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	if cached, ok := r.cache.Get(ctx); ok {
		return cached, nil
	}

	if r.primary != nil {
		scanCtx, cancel := context.WithTimeout(ctx, r.timeout)
		items, err := r.primary.Scan(scanCtx)
		cancel()
		if err == nil {
			tickets := make([]domain.Ticket, 0, len(items))
			for _, item := range items {
				tickets = append(tickets, r.adaptRemote(item))
			}
			r.cache.Set(ctx, tickets)
			return tickets, nil
		}

		// Timeout and connection failures both mean "unreachable"; the
		// read is served from the local store instead of failing.
		r.logger.Warn("primary store unreachable, serving local store", zap.Error(err))
		r.metrics.RecordFallback()
		if r.dispatcher != nil {
			_ = r.dispatcher.Publish(ctx, events.EventSourceFallback, events.SourceFallbackPayload{
				Reason: err.Error(),
			})
		}
	}

	records, err := r.local.Scan(ctx)
	if err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(records))
	for _, rec := range records {
		tickets = append(tickets, r.adaptLocal(rec))
	}
	r.cache.Set(ctx, tickets)
	return tickets, nil
}

// UpdateStatus mutates one ticket's status against whichever store is
// authoritative for writes: the primary when configured, otherwise the
// local file.
func (r *Resolver) UpdateStatus(ctx context.Context, id, status string) error {
	var err error
	if r.primary != nil {
		updateCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err = r.primary.UpdateStatus(updateCtx, id, status)
		cancel()
	} else {
		err = r.local.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return err
	}

	r.cache.Invalidate(ctx)
	if r.dispatcher != nil {
		_ = r.dispatcher.Publish(ctx, events.EventTicketStatusChanged, events.TicketStatusChangedPayload{
			TicketID:  id,
			NewStatus: status,
		})
	}
	return nil
}
