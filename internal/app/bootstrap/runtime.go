// Package bootstrap wires the shared runtime pieces: database pool, Redis
// client, metrics, and the storage implementations picked from config.
package bootstrap

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/canback/pickup-platform/internal/accounts"
	appconfig "github.com/canback/pickup-platform/internal/config"
	"github.com/canback/pickup-platform/internal/intake"
	"github.com/canback/pickup-platform/internal/ledger"
	"github.com/canback/pickup-platform/internal/notify"
	"github.com/canback/pickup-platform/internal/observability/metrics"
	"github.com/canback/pickup-platform/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildPostgresPool connects a pgx pool, or returns nil when DATABASE_URL
// is empty or the database is unreachable. Callers fall back to in-memory
// storage on nil.
func BuildPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(databaseURL) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Warn("postgres pool setup failed", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("postgres not available", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// BuildLeadRepository picks lead storage: Postgres when a pool is
// available, in-memory otherwise.
func BuildLeadRepository(pool *pgxpool.Pool, logger *logging.Logger) intake.Repository {
	if pool != nil {
		return intake.NewPostgresRepository(pool)
	}
	if logger != nil {
		logger.Warn("no database configured, storing leads in memory")
	}
	return intake.NewInMemoryRepository()
}

// BuildAccountStore picks account storage: Postgres when a pool is
// available, in-memory otherwise.
func BuildAccountStore(pool *pgxpool.Pool, logger *logging.Logger) accounts.Store {
	if pool != nil {
		return accounts.NewPostgresStore(pool)
	}
	if logger != nil {
		logger.Warn("no database configured, storing accounts in memory")
	}
	return accounts.NewInMemoryStore()
}

// BuildLedger picks payment ledger storage: Postgres when a pool is
// available, in-memory otherwise.
func BuildLedger(pool *pgxpool.Pool) ledger.Ledger {
	if pool != nil {
		return ledger.NewPostgresLedger(pool)
	}
	return ledger.NewInMemoryLedger()
}

// BuildEmailSender returns SendGrid when configured, falling back to the
// console sender so email content is still visible in development.
func BuildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if cfg != nil {
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			return sender
		}
	}
	return notify.NewConsoleSender(logger)
}

// BuildMetrics creates a fresh registry with process collectors, the
// intake metrics, and the /metrics handler bound to it.
func BuildMetrics() (http.Handler, *metrics.IntakeMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	intakeMetrics := metrics.NewIntakeMetrics(registry)
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return handler, intakeMetrics
}
