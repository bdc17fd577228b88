package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freedalab/ticketflow/internal/domain"
	apperrors "github.com/freedalab/ticketflow/pkg/util/errorutil"
)

const defaultScanPageSize = 500

// PostgresStore reads and mutates the managed tickets table.
type PostgresStore struct {
	pool     *pgxpool.Pool
	pageSize int
}

// NewPostgresStore instantiates the primary store over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool, pageSize int) *PostgresStore {
	if pageSize <= 0 {
		pageSize = defaultScanPageSize
	}
	return &PostgresStore{pool: pool, pageSize: pageSize}
}

// Scan returns every row of the tickets table. Pages are fetched by keyset
// until a short page signals exhaustion.
func (s *PostgresStore) Scan(ctx context.Context) ([]domain.RemoteItem, error) {
	const query = `
        SELECT id, client, motif, category, status, priority, channel, date, agent, payload
        FROM tickets WHERE id > $1 ORDER BY id LIMIT $2`

	items := []domain.RemoteItem{}
	lastID := ""
	for {
		rows, err := s.pool.Query(ctx, query, lastID, s.pageSize)
		if err != nil {
			return nil, apperrors.NewStoreUnreachable(err)
		}

		pageLen := 0
		for rows.Next() {
			var item domain.RemoteItem
			var payload []byte
			if err := rows.Scan(
				&item.ID,
				&item.Client,
				&item.Motif,
				&item.Category,
				&item.Status,
				&item.Priority,
				&item.Channel,
				&item.Date,
				&item.Agent,
				&payload,
			); err != nil {
				rows.Close()
				return nil, apperrors.NewStoreUnreachable(err)
			}
			if len(payload) > 0 {
				var extra domain.RemotePayload
				if err := json.Unmarshal(payload, &extra); err == nil {
					item.Messages = extra.Messages
					item.Analytics = extra.Analytics
				}
			}
			items = append(items, item)
			lastID = item.ID
			pageLen++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, apperrors.NewStoreUnreachable(err)
		}

		if pageLen < s.pageSize {
			return items, nil
		}
	}
}

// UpdateStatus sets the status column of one ticket.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := s.pool.Exec(ctx, query, status, id)
	if err != nil {
		return apperrors.NewStoreUnreachable(err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return nil
}
