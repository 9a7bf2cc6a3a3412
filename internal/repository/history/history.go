package history

import (
	"context"
	"fmt"

	"orderflow/internal/entities"
	"orderflow/internal/repository"
	"orderflow/internal/service/order"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Append(ctx context.Context, entry entities.HistoryEntry) error {
	entryDB := FromDomain(entry)

	query := `
		INSERT INTO order_history (
			id, order_id, vendor_id, actor_role, actor_id,
			item_status, item_from_statuses, from_status, to_status,
			items_affected, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(
		ctx,
		query,
		entryDB.ID,
		entryDB.OrderID,
		entryDB.VendorID,
		entryDB.ActorRole,
		entryDB.ActorID,
		entryDB.ItemStatus,
		entryDB.ItemFromStatuses,
		entryDB.FromStatus,
		entryDB.ToStatus,
		entryDB.ItemsAffected,
		entryDB.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return order.ErrOrderNotFound
		}
		return fmt.Errorf("unexpected history repository append error: %w", err)
	}
	return nil
}

func (r *Repository) ListByOrderID(ctx context.Context, orderID string) ([]entities.HistoryEntry, error) {
	query := `
		SELECT id::text, order_id, vendor_id, actor_role, actor_id,
		       item_status, item_from_statuses, from_status, to_status,
		       items_affected, created_at
		FROM order_history
		WHERE order_id = $1
		ORDER BY seq
	`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected history repository list error: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.HistoryEntry, 0, 4)
	for rows.Next() {
		var entryDB EntryDB
		err := rows.Scan(
			&entryDB.ID,
			&entryDB.OrderID,
			&entryDB.VendorID,
			&entryDB.ActorRole,
			&entryDB.ActorID,
			&entryDB.ItemStatus,
			&entryDB.ItemFromStatuses,
			&entryDB.FromStatus,
			&entryDB.ToStatus,
			&entryDB.ItemsAffected,
			&entryDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected history repository list error: %w", err)
		}
		entries = append(entries, *ToDomain(&entryDB))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected history repository list error: %w", err)
	}
	return entries, nil
}
