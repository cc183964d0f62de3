package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/kevin07696/settlement-ledger/internal/adapters/database"
	"github.com/kevin07696/settlement-ledger/internal/adapters/kafka"
	"github.com/kevin07696/settlement-ledger/internal/adapters/secrets"
	"github.com/kevin07696/settlement-ledger/internal/config"
	cronHandler "github.com/kevin07696/settlement-ledger/internal/handlers/cron"
	"github.com/kevin07696/settlement-ledger/internal/services/ledger"
	"github.com/kevin07696/settlement-ledger/internal/services/outbox"
	"github.com/kevin07696/settlement-ledger/pkg/middleware"
	"github.com/kevin07696/settlement-ledger/pkg/observability"
	"github.com/kevin07696/settlement-ledger/pkg/shutdown"
)

const serviceName = "settlement-ledger"

func main() {
	// .env is optional; real deployments inject the environment
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting settlement ledger",
		zap.String("version", "0.1.0"),
		zap.String("environment", cfg.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownMgr := shutdown.NewManager(logger, cfg.Server.ShutdownTimeout)

	if err := resolveSecrets(ctx, cfg, logger); err != nil {
		logger.Fatal("Failed to resolve secrets", zap.Error(err))
	}

	dbAdapter, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	shutdownMgr.RegisterNoErr("database", dbAdapter.Close)
	dbAdapter.StartPoolMonitoring(ctx, 30*time.Second, observability.ObserveDBPool)

	ledgerSvc := ledger.NewLedgerService(
		dbAdapter.Queries(),
		dbAdapter,
		logger,
		ledger.WithDefaults(ledger.Defaults{
			FreezePeriodDays:  cfg.Ledger.DefaultFreezePeriodDays,
			CommissionPercent: cfg.Ledger.DefaultCommissionPercent,
		}),
	)

	// Events stay in the outbox until a broker is configured
	var dispatcher cronHandler.EventDispatcher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Kafka publisher", zap.Error(err))
		}
		shutdownMgr.RegisterCloser("kafka_publisher", publisher)
		dispatcher = outbox.NewDispatcher(dbAdapter, publisher, logger,
			outbox.WithMaxAttempts(cfg.Ledger.OutboxMaxAttempts),
		)
	} else {
		logger.Warn("KAFKA_BROKERS not set, ledger events will not be published")
	}

	healthChecker := observability.NewHealthChecker(2 * time.Second)
	healthChecker.Register("postgres", dbAdapter.HealthCheck)

	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
		middleware.WithLogger(logger),
	)
	shutdownMgr.RegisterNoErr("rate_limiter", rateLimiter.Shutdown)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(observability.HTTPMiddleware)
	observability.Mount(router, healthChecker)
	router.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware)
		cronHandler.NewSettlementHandler(ledgerSvc, dispatcher, logger, cfg.CronSecret).Register(r)
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// gRPC exposes the standard health service for orchestrators
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.UnaryRecoveryInterceptor(logger),
			observability.UnaryServerInterceptor(),
		),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	go watchHealth(ctx, healthChecker, healthServer, logger)

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		logger.Fatal("Failed to listen", zap.Error(err))
	}

	shutdownMgr.RegisterNoErr("grpc_server", func() {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	})
	shutdownMgr.Register("http_server", httpServer.Shutdown)

	go func() {
		logger.Info("gRPC health server listening", zap.String("address", listener.Addr().String()))
		if err := grpcServer.Serve(listener); err != nil {
			logger.Error("gRPC server stopped", zap.Error(err))
			stop()
		}
	}()

	go func() {
		logger.Info("HTTP server listening", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down servers...")

	if err := shutdownMgr.Shutdown(context.Background()); err != nil {
		logger.Error("Shutdown finished with errors", zap.Error(err))
	}
	logger.Info("Servers stopped")
}

// initLogger builds a production logger when ENVIRONMENT=production
func initLogger(cfg *config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Logger.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() && !cfg.Logger.Development {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("service", serviceName))
}

// resolveSecrets replaces the database password and cron secret with values
// from the configured secret manager when their paths are set
func resolveSecrets(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	mgr, err := secrets.NewFromConfig(ctx, cfg.Secrets, logger)
	if err != nil {
		return err
	}

	password, err := secrets.Resolve(ctx, mgr, cfg.Secrets.DBPasswordPath, cfg.Database.Password)
	if err != nil {
		return fmt.Errorf("database password: %w", err)
	}
	cfg.Database.Password = password

	cronSecret, err := secrets.Resolve(ctx, mgr, cfg.Secrets.CronSecretPath, cfg.CronSecret)
	if err != nil {
		return fmt.Errorf("cron secret: %w", err)
	}
	cfg.CronSecret = cronSecret

	if cfg.CronSecret == "" {
		logger.Warn("CRON_SECRET not set, cron endpoints will reject every request")
	}
	return nil
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.PostgreSQLAdapter, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	dbCfg := database.DefaultPostgreSQLConfig(cfg.Database.URL())
	dbCfg.MaxConns = cfg.Database.MaxConns
	dbCfg.MinConns = cfg.Database.MinConns
	dbCfg.TxTimeout = cfg.Database.TxTimeout
	dbCfg.MaxTxAttempts = cfg.Database.MaxTxAttempts

	adapter, err := database.NewPostgreSQLAdapter(connectCtx, dbCfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established", zap.String("database", cfg.Database.Database))
	return adapter, nil
}

// watchHealth mirrors the dependency checks into the gRPC health service
func watchHealth(ctx context.Context, checker *observability.HealthChecker, server *health.Server, logger *zap.Logger) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_UNKNOWN
	for {
		next := healthpb.HealthCheckResponse_SERVING
		if !checker.Healthy(ctx) {
			next = healthpb.HealthCheckResponse_NOT_SERVING
		}
		if next != last {
			logger.Info("Health status changed", zap.String("status", next.String()))
			server.SetServingStatus("", next)
			server.SetServingStatus(serviceName, next)
			last = next
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
