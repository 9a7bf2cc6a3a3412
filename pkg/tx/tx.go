package tx

import (
	"context"
	"errors"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"orderflow/pkg/retrier"
	"orderflow/pkg/retrier/backoff_adapter"
)

// https://www.postgresql.org/docs/current/mvcc-serialization-failure-handling.html
const pgErrSerializationFailure = "40001"

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	internal *manager.Manager
	retrier  retrier.Retrier
}

// New создаёт новый менеджер транзакций. Сериализационные конфликты
// повторяются с коротким backoff, остальные ошибки возвращаются сразу.
func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		retrier: backoff_adapter.New(retrier.Config{
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			MaxElapsedTime:  time.Second,
			Randomization:   0.5,
			Multiplier:      2,
			ShouldRetry:     IsSerializationFailure,
		}),
	}
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

// Do выполняет fn в Serializable транзакции. fn может быть вызвана
// повторно, поэтому не должна иметь побочных эффектов вне транзакции.
// Вложенные вызовы Do не поддерживаются.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
	})
}

func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrSerializationFailure
}
