//go:build integration

package integration_test

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"orderflow/internal/pkg/postgres"
	"orderflow/migrations"
	"orderflow/pkg/logger/zap_adapter"
	"orderflow/pkg/querier"
	"orderflow/pkg/tx"
)

// Suite поднимает postgres в контейнере, накатывает миграции
// и чистит таблицы после каждого теста.
type Suite struct {
	suite.Suite

	container *tcpostgres.PostgresContainer
	Pool      *pgxpool.Pool
	Querier   *querier.Querier
	TxManager *tx.Manager
}

func (s *Suite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	log := zap_adapter.NewNop()

	pool, err := postgres.Open(ctx, log, dsn)
	s.Require().NoError(err)
	s.Pool = pool

	s.Require().NoError(postgres.Migrate(ctx, log, pool, migrations.FS))

	s.Querier = querier.New(pool, pgxv5.DefaultCtxGetter)
	s.TxManager = tx.New(pool)
}

func (s *Suite) TearDownSuite() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *Suite) TearDownTest() {
	s.TeardownDB()
}

// SetupDB выполняет произвольный SQL для подготовки данных.
func (s *Suite) SetupDB(setupSQL string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Querier.Exec(ctx, setupSQL)
	s.Require().NoError(err)
}

func (s *Suite) TeardownDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Querier.Exec(ctx, `
		TRUNCATE TABLE order_history, order_items, orders RESTART IDENTITY CASCADE;
	`)
	s.Require().NoError(err)
}
