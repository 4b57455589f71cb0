package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportsbase/roster/api"
	"github.com/sportsbase/roster/internal/config"
	"github.com/sportsbase/roster/internal/database"
	"github.com/sportsbase/roster/internal/events"
	"github.com/sportsbase/roster/internal/records"
	"github.com/sportsbase/roster/internal/telemetry"
	"github.com/sportsbase/roster/pkg/logger"
	"github.com/sportsbase/roster/pkg/metrics"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Create logger
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	zapLogger, err := logger.NewLogger(logLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to storage
	var db *gorm.DB
	switch cfg.Database.Driver {
	case "postgres":
		db, err = database.NewPostgresDB(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)
	case "sqlite":
		db, err = database.NewSQLiteDB(cfg.Database.SQLitePath)
	default:
		zapLogger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Schema bootstrap
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Tracing
	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, "roster-api", cfg.Telemetry.TracingEnabled)
	if err != nil {
		zapLogger.Fatal("Failed to set up tracing", zap.Error(err))
	}

	// Record events
	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, zapLogger)
		zapLogger.Info("Record events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// Create record service
	recordsSvc, err := records.NewService(zapLogger, db, publisher)
	if err != nil {
		zapLogger.Fatal("Failed to create record service", zap.Error(err))
	}

	// Schedule DB pool metrics collection every 30s
	tickerDB := time.NewTicker(30 * time.Second)
	go func() {
		for range tickerDB.C {
			if sqlDB, err := db.DB(); err == nil {
				stats := sqlDB.Stats()
				metrics.DBOpenConns.WithLabelValues(cfg.Database.Driver).Set(float64(stats.OpenConnections))
				metrics.DBIdleConns.WithLabelValues(cfg.Database.Driver).Set(float64(stats.Idle))
				metrics.DBInUseConns.WithLabelValues(cfg.Database.Driver).Set(float64(stats.InUse))
			}
		}
	}()

	// Optional Redis-backed rate limiter store
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Create API server
	apiServer := api.NewServer(zapLogger, recordsSvc, api.Options{
		RateLimit:   cfg.RateLimit,
		RedisClient: redisClient,
	})

	// Start service
	if err := recordsSvc.Start(); err != nil {
		zapLogger.Fatal("Failed to start record service", zap.Error(err))
	}

	// Start HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := apiServer.Start(addr); err != nil {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	// Wait for interrupt to shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	tickerDB.Stop()
	if err := recordsSvc.Stop(); err != nil {
		zapLogger.Error("Failed to stop record service", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		zapLogger.Error("Failed to shut down tracing", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zapLogger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	zapLogger.Info("Server exited properly")
}
