package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"orderflow/internal/entities"
	"orderflow/internal/pkg/status_machine"
	"orderflow/internal/repository"
	"orderflow/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// derivedStatusSQL mirrors status_machine.Derive over order_items grouped by order_id.
const derivedStatusSQL = `CASE
		WHEN bool_and(vendor_status = 'Canceled') THEN 'Canceled'
		WHEN bool_and(vendor_status IN ('Delivered', 'Canceled')) THEN 'Delivered'
		WHEN bool_or(vendor_status = 'Delivered') THEN 'PartiallyDelivered'
		WHEN bool_or(vendor_status = 'VendorReady') THEN 'VendorReady'
		ELSE 'Processing'
	END`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func orderRowsQuery() sq.SelectBuilder {
	return qb.
		Select(
			"o.id", "o.shipping_address", "o.payment_method", "o.order_date", "o.total_amount_cents",
			"i.id", "i.order_id", "i.position", "i.product_name", "i.quantity", "i.vendor_id", "i.vendor_status",
		).
		From("orders o").
		Join("order_items i ON i.order_id = o.id").
		OrderBy("o.order_date DESC", "o.id", "i.position")
}

func (r *Repository) Create(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error) {
	orderModel, itemModels := FromDomainCreate(orderCreate)

	_, err := r.querier.Exec(ctx, `
		INSERT INTO orders (id, shipping_address, payment_method, order_date, total_amount_cents)
		VALUES ($1, $2, $3, $4, $5)`,
		orderModel.ID,
		orderModel.ShippingAddress,
		orderModel.PaymentMethod,
		orderModel.OrderDate,
		orderModel.TotalAmountCents,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrOrderAlreadyExists
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	builder := qb.
		Insert("order_items").
		Columns("order_id", "position", "product_name", "quantity", "vendor_id", "vendor_status")
	for _, item := range itemModels {
		builder = builder.Values(item.OrderID, item.Position, item.ProductName, item.Quantity, item.VendorID, item.VendorStatus)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}
	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("unexpected order repository create items error: %w", err)
	}

	return r.GetByID(ctx, orderModel.ID)
}

func (r *Repository) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	orders, err := r.list(ctx, orderRowsQuery().Where(sq.Eq{"o.id": orderID}))
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}
	if len(orders) == 0 {
		return nil, order.ErrOrderNotFound
	}
	return &orders[0], nil
}

// GetByIDForUpdate locks the order row until the surrounding transaction ends.
func (r *Repository) GetByIDForUpdate(ctx context.Context, orderID string) (*entities.Order, error) {
	var id string
	err := r.querier.QueryRow(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository lock error: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	builder := orderRowsQuery().Where(
		sq.Expr(`o.id IN (SELECT order_id FROM order_items GROUP BY order_id HAVING `+derivedStatusSQL+` = ?)`, status.String()),
	)

	orders, err := r.list(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list by status error: %w", err)
	}
	return orders, nil
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID string) ([]entities.Order, error) {
	builder := orderRowsQuery().Where(
		sq.Expr(`o.id IN (SELECT order_id FROM order_items WHERE vendor_id = ?)`, vendorID),
	)

	orders, err := r.list(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list by vendor error: %w", err)
	}
	return orders, nil
}

func (r *Repository) CountByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error) {
	query := `
		SELECT status, COUNT(*)
		FROM (
			SELECT order_id, ` + derivedStatusSQL + ` AS status
			FROM order_items
			GROUP BY order_id
		) derived
		GROUP BY status`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository count by status error: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.OrderStatus]int64, len(entities.OrderCategories))
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("unexpected order repository count by status error: %w", err)
		}
		counts[entities.OrderStatus(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository count by status error: %w", err)
	}
	return counts, nil
}

// ApplyItemStatusChange must run inside the transaction that locked
// change.Order. It writes the planned transitions with one statement and
// returns the order as the transitions leave it.
func (r *Repository) ApplyItemStatusChange(
	ctx context.Context,
	change entities.ItemStatusChange,
) (*entities.Order, error) {
	current := change.Order
	if current == nil {
		return nil, errors.New("item status change without locked order")
	}
	if len(change.Transitions) == 0 {
		return current, nil
	}

	to := change.Transitions[0].To
	ids := make([]int64, 0, len(change.Transitions))
	for _, tr := range change.Transitions {
		if tr.To != to {
			return nil, fmt.Errorf("item status change mixes target statuses %s and %s", to, tr.To)
		}
		ids = append(ids, tr.ItemID)
	}

	query, args, err := qb.
		Update("order_items").
		Set("vendor_status", to.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"order_id": current.ID, "id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update items error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update items error: %w", err)
	}
	if result.RowsAffected() != int64(len(ids)) {
		return nil, fmt.Errorf("%w: updated %d of %d items", order.ErrConflict, result.RowsAffected(), len(ids))
	}

	updated := *current
	updated.Items = status_machine.Apply(current.Items, change.Transitions)
	updated.Status = status_machine.Derive(updated.Items)

	return &updated, nil
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Order, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orderRows := make([]orderRowDB, 0, 16)
	for rows.Next() {
		var row orderRowDB
		err := rows.Scan(
			&row.Order.ID,
			&row.Order.ShippingAddress,
			&row.Order.PaymentMethod,
			&row.Order.OrderDate,
			&row.Order.TotalAmountCents,
			&row.Item.ID,
			&row.Item.OrderID,
			&row.Item.Position,
			&row.Item.ProductName,
			&row.Item.Quantity,
			&row.Item.VendorID,
			&row.Item.VendorStatus,
		)
		if err != nil {
			return nil, err
		}
		orderRows = append(orderRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groupRows(orderRows), nil
}
