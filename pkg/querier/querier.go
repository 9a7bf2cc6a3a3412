package querier

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database calls issued through the querier",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"op", "in_tx"},
)

// Querier выполняет запросы в транзакции из контекста, если она есть,
// иначе напрямую через пул.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	executor, inTx := q.get(ctx)
	defer observe("exec", inTx, time.Now())
	return executor.Exec(ctx, sql, args...)
}

// Query measures only the round trip until the first rows are available.
func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	executor, inTx := q.get(ctx)
	defer observe("query", inTx, time.Now())
	return executor.Query(ctx, sql, args...)
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	executor, inTx := q.get(ctx)
	defer observe("query_row", inTx, time.Now())
	return executor.QueryRow(ctx, sql, args...)
}

func (q *Querier) get(ctx context.Context) (pgxv5.Tr, bool) {
	if tr := q.getter.DefaultTrOrDB(ctx, nil); tr != nil {
		return tr, true
	}
	return q.pool, false
}

func observe(op string, inTx bool, start time.Time) {
	label := "false"
	if inTx {
		label = "true"
	}
	queryDuration.WithLabelValues(op, label).Observe(time.Since(start).Seconds())
}
