package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/config"
	dbpkg "github.com/BruksfildServices01/homeservices/internal/db"
	"github.com/BruksfildServices01/homeservices/internal/infra/razorpay"
	infraRepo "github.com/BruksfildServices01/homeservices/internal/infra/repository"
	"github.com/BruksfildServices01/homeservices/internal/infra/storage"
	"github.com/BruksfildServices01/homeservices/internal/jobs"
	"github.com/BruksfildServices01/homeservices/internal/logging"
	"github.com/BruksfildServices01/homeservices/internal/middleware"
	"github.com/BruksfildServices01/homeservices/internal/routes"
	"github.com/BruksfildServices01/homeservices/internal/timezone"
	ucPayment "github.com/BruksfildServices01/homeservices/internal/usecase/payment"
	"github.com/BruksfildServices01/homeservices/internal/validators"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv, cfg.LogLevel)

	validators.Register()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORE
	// ======================================================
	db := dbpkg.NewDB(cfg)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	if err := dbpkg.SeedCatalog(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalog")
	}
	if err := dbpkg.SeedAdmin(ctx, db, hasher, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}

	// ======================================================
	// OPTIONAL INFRA
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, rate limiting fails open")
		}
		cancel()
		defer rdb.Close()
	} else {
		log.Info().Msg("REDIS_ADDR not set, rate limiting disabled")
	}

	var store *storage.S3Store
	if cfg.S3.Enabled() {
		store = storage.NewS3Store(cfg.S3)
	} else {
		log.Info().Msg("S3 not configured, uploads disabled")
	}

	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		log.Warn().Msg("razorpay credentials missing, order creation will fail")
	}
	gateway := razorpay.New(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Timeout)

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn().Str("tz", cfg.Timezone).Str("fallback", timezone.DefaultTimezone).Msg("invalid APP_TIMEZONE")
	}
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	// ======================================================
	// JOBS
	// ======================================================
	scheduler := jobs.NewScheduler()
	sweeper := ucPayment.NewSweepStale(infraRepo.NewPaymentGormRepository(db), cfg.PaymentPendingTTL)
	if err := scheduler.AddPaymentSweep(cfg.PaymentSweepCron, sweeper); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.PaymentSweepCron).Msg("invalid PAYMENT_SWEEP_CRON")
	}
	scheduler.Start()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.AllowOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Hasher:   hasher,
		Gateway:  gateway,
		Redis:    rdb,
		Store:    store,
		Audit:    auditDispatcher,
		Location: timezone.Location(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.AppEnv).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	scheduler.Stop(shutdownCtx)
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
