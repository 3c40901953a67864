package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/canback/pickup-platform/internal/api/router"
	"github.com/canback/pickup-platform/internal/app/bootstrap"
	appconfig "github.com/canback/pickup-platform/internal/config"
	"github.com/canback/pickup-platform/internal/intake"
	"github.com/canback/pickup-platform/internal/notify"
	"github.com/canback/pickup-platform/internal/register"
	"github.com/canback/pickup-platform/internal/rewards"
	"github.com/canback/pickup-platform/internal/tokens"
	"github.com/canback/pickup-platform/pkg/logging"
)

func main() {
	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting pickup-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Shared runtime: database, redis, metrics
	pool := bootstrap.BuildPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient == nil {
		logger.Error("redis is required for access tokens")
		os.Exit(1)
	}
	metricsHandler, intakeMetrics := bootstrap.BuildMetrics()

	// Rewards calculator
	rewardsCfg, err := buildRewardsConfig(cfg)
	if err != nil {
		logger.Error("invalid appliance credits config", "error", err)
		os.Exit(1)
	}

	// Storage
	leadRepo := bootstrap.BuildLeadRepository(pool, logger)
	accountStore := bootstrap.BuildAccountStore(pool, logger)
	bonusLedger := bootstrap.BuildLedger(pool)
	tokenService := tokens.NewRedisStore(redisClient, cfg.TokenTTL)

	// Email notifications
	notifyService := notify.NewService(bootstrap.BuildEmailSender(cfg, logger), cfg.NotifyEmail, logger)

	// Handlers
	intakeHandler := intake.NewHandler(
		intake.NewValidator(cfg.HomeCity),
		leadRepo,
		rewardsCfg,
		notifyService,
		intakeMetrics,
		logger,
	)
	rewardsHandler := rewards.NewHandler(rewardsCfg, logger)
	registerService := register.NewService(
		register.NewValidator(cfg.HomeCity),
		accountStore,
		tokenService,
		bonusLedger,
		notifyService,
		register.BonusConfig{
			Dollars:  cfg.SignupBonusDollars,
			Status:   cfg.SignupBonusStatus,
			Currency: cfg.SignupBonusCurrency,
		},
		intakeMetrics,
		logger,
	)
	registerHandler := register.NewHandler(registerService, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		IntakeHandler:      intakeHandler,
		RewardsHandler:     rewardsHandler,
		RegisterHandler:    registerHandler,
		TokenService:       tokenService,
		MetricsHandler:     metricsHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PublicRateLimit:    cfg.RateLimitRPS,
		PublicRateBurst:    cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildRewardsConfig assembles the calculator from environment values,
// applying the default appliance credit table when none is configured.
func buildRewardsConfig(cfg *appconfig.Config) (rewards.Config, error) {
	credits, err := rewards.ParseApplianceCredits(cfg.ApplianceCreditsJSON)
	if err != nil {
		return rewards.Config{}, err
	}
	return rewards.Config{
		RewardDollars:    cfg.RewardDollars,
		CansPerReward:    cfg.CansPerReward,
		ApplianceCredits: credits,
		ProjectionRate:   cfg.ProjectionRate,
		ProjectionYears:  cfg.ProjectionYears,
	}, nil
}
