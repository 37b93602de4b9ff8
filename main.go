package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"invest-appraisal/config"
	"invest-appraisal/domain"
	httpLayer "invest-appraisal/http"
	"invest-appraisal/logger"
	"invest-appraisal/repository"
	"invest-appraisal/service"
)

func main() {
	// A missing .env is fine; the environment is used as is.
	_ = godotenv.Load()

	cfgPath := os.Getenv("APPRAISAL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if raw := os.Getenv("APPRAISAL_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var (
		cache  repository.CacheRepository
		pinger httpLayer.Pinger
	)
	switch cfg.Cache.Driver {
	case "redis":
		rc := repository.NewRedisCache(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		defer rc.Close()
		cache, pinger = rc, rc
	default:
		mc := repository.NewMemoryCache(log.Named("cache"))
		defer mc.Stop()
		cache = mc
	}
	sessionRepo := repository.NewCacheSessionRepository(cache, cfg.Cache.SessionTTL)

	settings := service.AppraisalSettings{
		Bounds:   appraisalBounds(cfg.Appraisal),
		IRR:      irrParams(cfg.Appraisal.IRR),
		Currency: cfg.Appraisal.Currency,
	}
	advisor := service.NewAdvisorService(service.AdvisorConfig{
		APIKey:   cfg.Advisor.APIKey,
		APIURL:   cfg.Advisor.APIURL,
		Model:    cfg.Advisor.Model,
		Currency: cfg.Appraisal.Currency,
		Timeout:  cfg.Advisor.Timeout,
	}, log.Named("advisor"))
	appraisalService := service.NewAppraisalService(settings, advisor, log.Named("appraisal"))
	sessionService := service.NewSessionService(sessionRepo, appraisalService, log.Named("session"))

	appraisalHandler := httpLayer.NewAppraisalHandler(appraisalService, log)
	sessionHandler := httpLayer.NewSessionHandler(sessionService, log)
	healthHandler := httpLayer.NewHealthHandler(pinger, log)

	limit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimit.Enabled {
		rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
		defer rateLimiter.Stop()
		limit = func(next http.Handler) http.Handler {
			return httpLayer.RateLimitMiddleware(rateLimiter, log, next)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/appraisal/calculate", limit(http.HandlerFunc(appraisalHandler.Calculate)))
	mux.Handle("/appraisal/defaults", http.HandlerFunc(appraisalHandler.Defaults))
	sessionHandler.Register(mux, limit)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)

	server := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("appraisal API listening",
			zap.String("addr", cfg.Server.HTTPAddr),
			zap.String("env", cfg.App.Env),
			zap.String("cache", cfg.Cache.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("server failed", zap.Error(err))
		return
	case <-quit:
		log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

func appraisalBounds(c config.AppraisalConfig) domain.SeriesBounds {
	return domain.SeriesBounds{
		MinYears:     c.MinYears,
		MaxYears:     c.MaxYears,
		DefaultYears: c.DefaultYears,
		ExampleFlows: c.ExampleFlows,
	}
}

func irrParams(c config.IRRConfig) service.IRRParams {
	return service.IRRParams{
		Low:           c.Low,
		High:          c.High,
		Tolerance:     c.Tolerance,
		MaxIterations: c.MaxIterations,
	}
}
