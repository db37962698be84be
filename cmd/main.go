package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
	"github.com/KasumiMercury/primind-day-planner/internal/handler"
	"github.com/KasumiMercury/primind-day-planner/internal/health"
	"github.com/KasumiMercury/primind-day-planner/internal/infra/planrecorder"
	"github.com/KasumiMercury/primind-day-planner/internal/infra/repository"
	"github.com/KasumiMercury/primind-day-planner/internal/observability/logging"
	"github.com/KasumiMercury/primind-day-planner/internal/observability/metrics"
	"github.com/KasumiMercury/primind-day-planner/internal/observability/middleware"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
	"github.com/KasumiMercury/primind-day-planner/internal/service/planner"
	"github.com/KasumiMercury/primind-day-planner/internal/service/queue"
	"github.com/KasumiMercury/primind-day-planner/internal/service/recommend"
	"github.com/KasumiMercury/primind-day-planner/internal/service/scoring"
	"github.com/KasumiMercury/primind-day-planner/internal/service/timeline"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	obs.SetLogLevel(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	plannerMetrics, err := metrics.NewPlannerMetrics()
	if err != nil {
		slog.Error("failed to initialize planner metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := planrecorder.NewRecorder(ctx, planrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize plan result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close plan result recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	dayPlanRepo := repository.NewDayPlanRepository(redisClient, cfg.Planner.SnapshotTTL)

	classifier := daycontext.NewKeywordClassifier()

	planService := planner.NewService(
		dayPlanRepo,
		resultRecorder,
		scoring.NewScorer(scoring.WeightsFromConfig(cfg.Scoring)),
		queue.NewBuilder(),
		daycontext.NewInferrer(classifier),
		recommend.NewEngine(classifier, recommend.OptionsFromConfig(cfg.Recommend)),
		timeline.NewSlotFinder(cfg.Planner),
		plannerMetrics,
		cfg.Planner,
	)
	planHandler := handler.NewPlanHandler(planService)
	timelineHandler := handler.NewTimelineHandler(planService)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("day-planner"),
		TracerName:  "github.com/KasumiMercury/primind-day-planner/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewRedisChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/plan", planHandler.HandlePlan)
		v1.GET("/plan/snapshot", planHandler.HandleSnapshot)
		v1.PUT("/plan/settings", planHandler.HandleUpdateSettings)

		v1.POST("/timeline/conflicts", timelineHandler.HandleConflicts)
		v1.POST("/timeline/next-slot", timelineHandler.HandleNextSlot)
		v1.POST("/timeline/move", timelineHandler.HandleMove)
		v1.POST("/timeline/meeting-slots", timelineHandler.HandleMeetingSlots)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("work_start", cfg.Planner.WorkingHours.Start.String()),
			slog.String("work_end", cfg.Planner.WorkingHours.End.String()),
			slog.String("timezone", cfg.Planner.Location.String()),
			slog.String("slot_strategy", string(cfg.Planner.SlotStrategy)),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		if err := resultRecorder.Flush(shutdownCtx); err != nil {
			slog.Warn("failed to flush plan result recorder", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
