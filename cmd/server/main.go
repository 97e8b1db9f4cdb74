package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	rentalapp "github.com/skirent/backend/internal/application/rental"
	reportapp "github.com/skirent/backend/internal/application/report"
	"github.com/skirent/backend/internal/domain/rental"
	"github.com/skirent/backend/internal/domain/shared"
	"github.com/skirent/backend/internal/infrastructure/cache"
	"github.com/skirent/backend/internal/infrastructure/config"
	"github.com/skirent/backend/internal/infrastructure/event"
	"github.com/skirent/backend/internal/infrastructure/logger"
	"github.com/skirent/backend/internal/infrastructure/messaging"
	"github.com/skirent/backend/internal/infrastructure/persistence"
	"github.com/skirent/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting rental backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Initialize database connection
	gormLogLevel := gormlogger.Silent
	if cfg.App.Env == "development" {
		gormLogLevel = gormlogger.Warn
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Idempotency store: Redis when reachable, in-memory otherwise
	idempotencyStore := newIdempotencyStore(cfg, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize repositories
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	metricsRepo := persistence.NewGormMetricsRepository(db.DB)

	// Event serializer with all product lifecycle events registered
	serializer := event.NewCatalogEventSerializer()

	// Application services
	reconciliationService := rentalapp.NewReconciliationService(
		equipmentRepo,
		rental.NewRateCalculator(),
		log,
	)

	metricsAggregator := reportapp.NewMetricsAggregator(metricsRepo, cfg.Metrics.LowStockThreshold, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry: inventory summary gauges and event outcome counters
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.ExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	metricsCollector, err := telemetry.NewInventoryMetricsCollector(
		meterProvider.Meter("skirent.rental"),
		metricsAggregator,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize inventory metrics collector", zap.Error(err))
	}
	metricsCollector.Start(ctx, cfg.Telemetry.CollectInterval)
	defer metricsCollector.Stop()

	eventCounters, err := telemetry.NewEventProcessingCollector(meterProvider.Meter("skirent.rental"))
	if err != nil {
		log.Fatal("Failed to initialize event processing counters", zap.Error(err))
	}

	// Wrap reconciliation in idempotent handling and register it
	idempotentReconciliation := event.NewIdempotentHandler(
		reconciliationService,
		idempotencyStore,
		log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{
			TTL:     cfg.Event.IdempotencyTTL,
			Enabled: cfg.Event.IdempotencyEnabled,
		}),
		event.WithProcessingRecorder(eventCounters),
	)

	registry := event.NewHandlerRegistry()
	registry.Subscribe(idempotentReconciliation)
	log.Info("Event handlers registered",
		zap.Strings("reconciliation_events", reconciliationService.EventTypes()),
	)

	// Kafka consumer dispatching product events to registered handlers
	kafkaConsumer := messaging.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.ProductTopic, cfg.Kafka.ConsumerGroup)
	eventConsumer := event.NewProductEventConsumer(kafkaConsumer, serializer, registry, log)
	defer func() {
		if err := eventConsumer.Close(); err != nil {
			log.Error("Error closing event consumer", zap.Error(err))
		}
	}()

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- eventConsumer.Run(ctx)
	}()

	log.Info("Reconciliation worker started",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.ProductTopic),
		zap.String("consumer_group", cfg.Kafka.ConsumerGroup),
	)

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutdown signal received")
		cancel()
		if err := <-consumerDone; err != nil {
			log.Error("Consumer stopped with error", zap.Error(err))
		}
	case err := <-consumerDone:
		if err != nil {
			log.Fatal("Consumer failed", zap.Error(err))
		}
	}

	stats := idempotentReconciliation.Metrics().Stats()
	log.Info("Worker exited gracefully",
		zap.Int64("events_processed", stats.EventsProcessed),
		zap.Int64("events_duplicate", stats.EventsDuplicate),
		zap.Int64("events_failed", stats.EventsFailed),
	)
}

// newIdempotencyStore prefers Redis so duplicate suppression survives
// restarts, falling back to the in-memory store when Redis is not
// reachable.
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) shared.IdempotencyStore {
	store, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		return cache.NewInMemoryIdempotencyStore()
	}
	log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	return store
}
