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

	"moviehub/database"
	"moviehub/internal/config"
	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/handler"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("api server stopped")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	limiter, closeLimiter, err := ratelimit.New(ctx, ratelimit.Config{
		RPS:      cfg.RateLimitRPS,
		Burst:    cfg.RateLimitBurst,
		RedisURL: cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return err
	}
	defer closeLimiter()
	if mem, ok := limiter.(*ratelimit.Memory); ok {
		go mem.RunSweeper(ctx, time.Minute, 10*time.Minute)
	}

	router, err := handler.NewRouter(service.New(db, cfg), handler.Options{
		Media:          media.NewStorage(cfg.MediaRoot, cfg.UploadMaxSize),
		Limiter:        limiter,
		TrustedProxies: cfg.TrustedProxies,
		AccessTokenTTL: cfg.AccessTokenTTL,
		SecureCookies:  cfg.IsProduction(),
		Health:         pinger(db),
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	go purgeExpiredTokens(ctx, repository.NewRefreshTokenRepository(db), time.Hour)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Str("env", cfg.GoEnv).Msg("api server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Info().Msg("server stopped gracefully")
	return nil
}

func pinger(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// purgeExpiredTokens drops refresh tokens past their expiry every interval.
func purgeExpiredTokens(ctx context.Context, repo repository.RefreshTokenRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				logging.Warn().Err(err).Msg("refresh token cleanup failed")
				continue
			}
			if n > 0 {
				logging.Info().Int64("deleted", n).Msg("expired refresh tokens removed")
			}
		}
	}
}
