package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmhodges/clock"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-medication-alarm/internal/config"
	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/handler"
	"github.com/KasumiMercury/primind-medication-alarm/internal/health"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/adherence"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/alerting"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/localtimer"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/repository"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/logging"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/metrics"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/middleware"
	"github.com/KasumiMercury/primind-medication-alarm/internal/service/alarm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

var errServe = errors.New("server exited with error")

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	if code := run(parent); code != 0 {
		return errServe
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation error: %w", err)
	}
	return cfg, nil
}

func newRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func adherenceConfig(cfg *config.AdherenceConfig) *adherence.Config {
	return &adherence.Config{
		Backend:           adherence.Backend(cfg.Backend),
		SQLitePath:        cfg.SQLitePath,
		InfluxDBURL:       cfg.InfluxDBURL,
		InfluxDBToken:     cfg.InfluxDBToken,
		InfluxDBOrg:       cfg.InfluxDBOrg,
		InfluxDBBucket:    cfg.InfluxDBBucket,
		BigQueryProjectID: cfg.BigQueryProjectID,
		BigQueryDataset:   cfg.BigQueryDataset,
		BigQueryTable:     cfg.BigQueryTable,
	}
}

// presenterSet is the configured alert surface plus the optional Telegram
// listener that has to be started once the dispatcher exists.
type presenterSet struct {
	presenter domain.AlertPresenter
	telegram  *alerting.TelegramPresenter
	bot       *tg.BotAPI
}

func initPresenter(cfg *config.Config, registry domain.TimerRegistryRepository) (*presenterSet, error) {
	switch cfg.Alert.Presenter {
	case config.PresenterGateway:
		slog.Info("alert presenter initialized",
			slog.String("type", "gateway"),
			slog.String("url", cfg.Alert.GatewayURL),
		)
		return &presenterSet{presenter: alerting.NewGatewayPresenter(cfg.Alert.GatewayURL)}, nil
	case config.PresenterTelegram:
		bot, err := alerting.NewTelegramBot(cfg.Alert.TelegramToken)
		if err != nil {
			return nil, err
		}
		p := alerting.NewTelegramPresenter(bot, cfg.Alert.TelegramChatID, cfg.Alarm.SettleDelay).WithRegistrations(registry)
		slog.Info("alert presenter initialized",
			slog.String("type", "telegram"),
			slog.String("bot", bot.Self.UserName),
		)
		return &presenterSet{presenter: p, telegram: p, bot: bot}, nil
	}

	slog.Info("alert presenter initialized", slog.String("type", "log"))
	return &presenterSet{presenter: alerting.LogPresenter{}}, nil
}

func run(parent context.Context) int {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to start", slog.String("error", err.Error()))
		return 1
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	obs, err := initObservability(ctx, cfg.LogLevel)
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

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	location, err := cfg.Alarm.Location()
	if err != nil {
		slog.Error("invalid alarm timezone", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	alarmMetrics, err := metrics.NewAlarmMetrics()
	if err != nil {
		slog.Error("failed to initialize alarm metrics", slog.String("error", err.Error()))
		return 1
	}

	recorder, err := adherence.NewRecorder(ctx, adherenceConfig(cfg.Adherence))
	if err != nil {
		slog.Error("failed to initialize adherence recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close adherence recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := newRedisClient(cfg.Redis)

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

	acks := repository.NewAcknowledgementRepository(redisClient)
	settings := repository.NewSettingsRepository(redisClient)
	registry := repository.NewTimerRegistryRepository(redisClient)

	presenters, err := initPresenter(cfg, registry)
	if err != nil {
		slog.Error("failed to initialize alert presenter", slog.String("error", err.Error()))
		return 1
	}

	clk := clock.New()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	// The in-process timer fires through the handler built further down.
	var fireHandler *alarm.FireHandler

	var (
		timer         domain.Timer
		queueTimer    *taskqueue.Timer
		localTimer    *localtimer.Timer
		timerDelivery handler.TimerDelivery
	)
	if taskQueue != nil {
		queueTimer = taskqueue.NewTimer(taskQueue, registry, clk)
		timer = queueTimer
		timerDelivery = queueTimer
	} else {
		localTimer = localtimer.New(clk, registry, func(ctx context.Context, payload domain.AlarmPayload) {
			fireHandler.Fire(ctx, payload)
		})
		defer localTimer.Close()
		timer = localTimer
	}

	scheduler := alarm.NewScheduler(timer, acks, settings, clk, alarm.Config{
		Location:             location,
		AutoRepeatInterval:   cfg.Alarm.AutoRepeatInterval,
		DefaultSnoozeMinutes: cfg.Alarm.DefaultSnoozeMinutes,
	}, alarmMetrics)
	fireHandler = alarm.NewFireHandler(scheduler, presenters.presenter, cfg.Alarm.DeliveryTimeout, alarmMetrics)
	dispatcher := alarm.NewDispatcher(scheduler, presenters.presenter, recorder, alarmMetrics)

	if localTimer != nil {
		restored, err := localTimer.Restore(ctx)
		if err != nil {
			slog.Error("failed to restore timers", slog.String("error", err.Error()))
			return 1
		}
		slog.Info("in-process timers restored", slog.Int("count", restored))
	}

	if presenters.telegram != nil {
		updateCfg := tg.NewUpdate(0)
		updateCfg.Timeout = 60
		go presenters.telegram.Listen(ctx, presenters.bot.GetUpdatesChan(updateCfg), dispatcher)
		defer presenters.bot.StopReceivingUpdates()
	}

	reminderHandler := handler.NewReminderHandler(scheduler, dispatcher)
	var timerHandler *handler.TimerHandler
	if timerDelivery != nil {
		timerHandler = handler.NewTimerHandler(timerDelivery, fireHandler)
	}

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/grpc.health.v1.Health/Check"},
		Module:      logging.Module("medication-alarm"),
		TracerName:  "github.com/KasumiMercury/primind-medication-alarm/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	if pinger, ok := recorder.(interface{ Ping(context.Context) error }); ok {
		healthChecker.WithProbe("adherence", pinger.Ping)
	}
	healthChecker.Register(r)

	handler.RegisterRoutes(r, reminderHandler, timerHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", location.String()),
			slog.String("presenter", string(cfg.Alert.Presenter)),
			slog.Bool("task_queue", taskQueue != nil),
			slog.Duration("auto_repeat_interval", cfg.Alarm.AutoRepeatInterval),
		)
		serverErr <- srv.ListenAndServe()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		slog.Info("shutdown signal received")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
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
