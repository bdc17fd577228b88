// Package store holds the ticket store implementations: the primary
// managed table (postgres) and the local fallback file, plus the resolver
// result cache.
package store

import (
	"context"

	"github.com/freedalab/ticketflow/internal/domain"
)

// PrimaryStore is the authoritative remote table. Scan follows pagination
// to exhaustion; a partial page is never returned as the full result.
type PrimaryStore interface {
	Scan(ctx context.Context) ([]domain.RemoteItem, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// FallbackStore is the local flat-file store consulted when the primary
// store is unreachable, and the write target of batch ingestion.
type FallbackStore interface {
	Scan(ctx context.Context) ([]domain.LocalRecord, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
