package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // bundle zone data so lookups work in scratch containers

	"telegram-weather-notify/internal/config"
	"telegram-weather-notify/internal/domain/ports/adapter"
	clk "telegram-weather-notify/internal/infra/adapters/clock"
	"telegram-weather-notify/internal/infra/adapters/render"
	tele "telegram-weather-notify/internal/infra/adapters/telegram"
	"telegram-weather-notify/internal/infra/adapters/weather"
	"telegram-weather-notify/internal/infra/db"
	"telegram-weather-notify/internal/infra/logging"
	"telegram-weather-notify/internal/infra/metrics"
	red "telegram-weather-notify/internal/infra/redis"
	"telegram-weather-notify/internal/infra/sched"
	"telegram-weather-notify/internal/infra/web"
	"telegram-weather-notify/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode (noop telegram sender, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := db.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = redisClient.Close() }()
	rateLimiter := red.NewRateLimiter(redisClient)
	sentMarker := red.NewSentMarker(redisClient, cfg.Redis.SentTTL)

	// ---- Repositories ----
	directory := db.NewProfileRepo(pool)
	deliveries := db.NewDeliveryLogRepo(pool)

	// ---- Adapters ----
	clock := clk.New()
	provider := weather.NewOpenMeteoProvider(cfg.Weather.BaseURL, cfg.Weather.Timeout)
	renderer := render.NewTextRenderer()

	var sender adapter.NotificationSender
	if cfg.Runtime.Dev {
		sender = tele.NewNoopSenderAdapter(logger)
	} else {
		sender, err = tele.NewRealSenderAdapter(&cfg.Bot, rateLimiter, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram init failed")
		}
	}

	// ---- Use cases ----
	matcher := usecase.NewMatcherUseCase(directory, logger)
	dispatcher := usecase.NewDispatcherUseCase(cfg.Scheduler.BatchSize, cfg.Scheduler.BatchPause, logger)
	notifUC := usecase.NewNotificationUseCase(
		matcher, dispatcher, directory, deliveries, sentMarker,
		sender, provider, renderer, clock, logger,
	)

	// ---- Workers ----
	notifyWorker := sched.NewNotifyWorker(notifUC, clock, logger)
	keepAlive := sched.NewKeepAliveWorker(cfg.Scheduler.KeepAliveInterval, cfg.Scheduler.HealthURL, logger)
	go func() { _ = notifyWorker.Run(ctx) }()
	go func() { _ = keepAlive.Run(ctx) }()

	// ---- Admin / ops HTTP ----
	jobs := []sched.StatusReporter{notifyWorker, keepAlive}
	adminSrv := web.NewServer(notifUC, clock, jobs, cfg.Admin.APIKey, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler: adminSrv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("admin http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin http server error")
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("admin http shutdown error")
	}
	logger.Info().Msg("bye")
}
