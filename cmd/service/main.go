package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "orderflow/internal/app"
	"orderflow/internal/handlers/rest/healthcheck_head"
	"orderflow/internal/handlers/rest/order_get"
	"orderflow/internal/handlers/rest/order_history_get"
	"orderflow/internal/handlers/rest/order_status_put"
	"orderflow/internal/handlers/rest/order_vendor_ready_put"
	"orderflow/internal/handlers/rest/order_vendor_status_put"
	"orderflow/internal/handlers/rest/orders_by_status_get"
	"orderflow/internal/handlers/rest/orders_by_vendor_get"
	"orderflow/internal/handlers/rest/orders_summary_get"
	"orderflow/internal/handlers/rest/ping_get"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/dotenv"
	"orderflow/internal/pkg/kafka"
	"orderflow/internal/pkg/middlewares/auth"
	"orderflow/internal/pkg/middlewares/graceful_shutdown"
	"orderflow/internal/pkg/middlewares/metrics"
	"orderflow/internal/pkg/middlewares/rate_limiter"
	"orderflow/internal/pkg/middlewares/timeout"
	"orderflow/internal/pkg/postgres"
	"orderflow/migrations"
	"orderflow/pkg/jwt_token"
	"orderflow/pkg/logger"
	"orderflow/pkg/logger/zap_adapter"
	"orderflow/pkg/token_bucket"
)

// tokenTTL only matters for tokens issued by this process, which it never does
// outside of tests.
const tokenTTL = time.Hour

func main() {
	loaded, err := dotenv.Load(".env")
	if err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}
	if err := dotenv.ApplyFlags(os.Args[1:]); err != nil {
		stdlog.Fatalf("flags: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(
		zap_adapter.WithLevel(cfg.Log.Level),
		zap_adapter.WithService("orderflow"),
	)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting orderflow application")
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.With(logger.NewField("error", err)).Error("application failed")
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно наследуются от context.Background()
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, log, pool, migrations.FS); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.With(logger.NewField("error", err)).Error("failed to close kafka producer")
		}
	}()

	tokens, err := jwt_token.New(cfg.Auth.JWTSecret, tokenTTL)
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	// фоновые задачи живут до сигнала остановки
	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(log, &isShuttingDown, businessApp, tokens, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.With(logger.NewField("port", cfg.Server.Port)).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.With(logger.NewField("port", cfg.Server.PprofPort)).Info("pprof server starting")
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал, если pprof выключен
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.With(logger.NewField("error", shutdownErr)).Error("pprof server shutdown error")
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	tokens auth.TokenParser,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(auth.Middleware(log, tokens))

	orders.Handle("/summary", orders_summary_get.New(log, app.ServiceOrder)).Methods(http.MethodGet)
	orders.Handle("", orders_by_vendor_get.New(log, app.ServiceOrder)).Methods(http.MethodGet).Queries("vendorId", "{vendorId}")
	orders.Handle("", orders_by_status_get.New(log, app.ServiceOrder)).Methods(http.MethodGet)
	orders.Handle("/{orderId}", order_get.New(log, app.ServiceOrder)).Methods(http.MethodGet)
	orders.Handle("/{orderId}/history", order_history_get.New(log, app.ServiceOrder)).Methods(http.MethodGet)
	orders.Handle("/{orderId}/status/{status}", order_status_put.New(log, app.ServiceOrder)).Methods(http.MethodPut)
	orders.Handle("/{orderId}/vendor/{vendorId}/status/{status}", order_vendor_status_put.New(log, app.ServiceOrder)).Methods(http.MethodPut)
	orders.Handle("/{orderId}/vendor/{vendorId}/ready", order_vendor_ready_put.New(log, app.ServiceOrder)).Methods(http.MethodPut)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
