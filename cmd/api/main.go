package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shortlyhq/shortly/internal/config"
	"github.com/shortlyhq/shortly/internal/infrastructure/auth"
	"github.com/shortlyhq/shortly/internal/infrastructure/db"
	"github.com/shortlyhq/shortly/internal/infrastructure/logger"
	"github.com/shortlyhq/shortly/internal/infrastructure/telemetry"
	"github.com/shortlyhq/shortly/internal/messaging"
	"github.com/shortlyhq/shortly/internal/processing/billing"
	"github.com/shortlyhq/shortly/internal/processing/shortener"
	"github.com/shortlyhq/shortly/internal/processing/users"
	mongoStorage "github.com/shortlyhq/shortly/internal/storage/mongo"
	"github.com/shortlyhq/shortly/internal/storage/postgres"
	redisStorage "github.com/shortlyhq/shortly/internal/storage/redis"
	httpTransport "github.com/shortlyhq/shortly/internal/transport/http"
	"go.uber.org/zap"
)

// tierCatalog resolves subscription tiers for the shortening pipeline.
type tierCatalog struct {
	billing *billing.Service
}

func (c tierCatalog) MaxURLs(ctx context.Context, tierName string) (int, error) {
	max, err := c.billing.MaxURLs(ctx, tierName)
	if errors.Is(err, billing.ErrPackageNotFound) {
		return 0, shortener.ErrUnknownTier
	}
	return max, err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
	)

	var shutdownTracer func(context.Context) error
	if cfg.OTel.Enabled {
		var err error
		shutdownTracer, err = telemetry.InitTracer(cfg.OTel.Endpoint, cfg.App.Name, cfg.App.Version)
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			logger.Info("OpenTelemetry tracer initialized", zap.String("endpoint", cfg.OTel.Endpoint))
		}
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer startCancel()

	pg, err := db.ConnectPostgres(startCtx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := postgres.EnsureSchema(startCtx, pg); err != nil {
		logger.Fatal("Failed to apply database schema", zap.Error(err))
	}

	usersRepo, err := postgres.NewUsersRepository(pg)
	if err != nil {
		logger.Fatal("Failed to initialize users repository", zap.Error(err))
	}
	tiersRepo, err := postgres.NewTiersRepository(pg)
	if err != nil {
		logger.Fatal("Failed to initialize tiers repository", zap.Error(err))
	}

	var linkRepo shortener.LinkRepository
	switch cfg.Shortener.LinksBackend {
	case "mongo":
		mongoConn, err := db.ConnectMongo(cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() { _ = mongoConn.Disconnect() }()

		linkRepo, err = mongoStorage.NewLinksRepository(mongoConn)
		if err != nil {
			logger.Fatal("Failed to initialize links repository", zap.Error(err))
		}
	default:
		linkRepo, err = postgres.NewLinksRepository(pg)
		if err != nil {
			logger.Fatal("Failed to initialize links repository", zap.Error(err))
		}
	}

	redisClient, err := db.ConnectRedis(startCtx, db.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	quotaStore := redisStorage.NewQuotaStore(redisClient, cfg.Shortener.QuotaWindow)

	tokenService, err := auth.NewHS256Service(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	if err != nil {
		logger.Fatal("Failed to initialize token service", zap.Error(err))
	}

	billingSvc := billing.NewService(tiersRepo)
	usersSvc := users.NewService(usersRepo, tokenService, cfg.Shortener.DefaultTier)
	shortenerSvc := shortener.NewService(
		linkRepo,
		quotaStore,
		tierCatalog{billing: billingSvc},
		shortener.NewCryptoTokenGenerator(cfg.Shortener.TokenLength),
		cfg.Shortener.QuotaTimeout,
	)

	clickPublisher := messaging.NewClickPublisher(cfg.Kafka.Brokers, cfg.Kafka.ClickTopic)
	defer func() { _ = clickPublisher.Close() }()

	router := httpTransport.NewRouter(cfg, httpTransport.RouterDeps{
		Shortener: shortenerSvc,
		Users:     usersSvc,
		Billing:   billingSvc,
		Tokens:    tokenService,
		Clicks:    clickPublisher,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if shutdownTracer != nil {
			_ = shutdownTracer(shutdownCtx)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("env", cfg.App.Env),
		zap.String("address", fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
