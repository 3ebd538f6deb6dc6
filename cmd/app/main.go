package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"flowlog/cmd"
	httpin "flowlog/internal/adapters/in/http"
	"flowlog/internal/adapters/out/postgres/customerrepo"
	"flowlog/internal/adapters/out/postgres/dispatchrepo"
	"flowlog/internal/adapters/out/postgres/historyrepo"
	"flowlog/internal/adapters/out/postgres/notificationrepo"
	"flowlog/internal/adapters/out/postgres/orderrepo"
	"flowlog/internal/adapters/out/postgres/tenantrepo"
	"flowlog/internal/adapters/out/postgres/webhookrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("no .env file, reading environment directly")
	}
	configs := getConfigs()

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	if err = migrate(db); err != nil {
		log.Fatalf("migrating database: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	root := cmd.NewCompositionRoot(configs, db, logger)

	manager := root.CreateJobManager()
	if err = manager.StartAll(); err != nil {
		log.Fatalf("starting background jobs: %v", err)
	}
	defer manager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   envString("HTTP_PORT", "8080"),
		DBHost:     envString("DB_HOST", "localhost"),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     envString("DB_USER", "postgres"),
		DBPassword: envString("DB_PASSWORD", "postgres"),
		DBName:     envString("DB_NAME", "flowlog"),
		DBSslMode:  envString("DB_SSLMODE", "disable"),

		DispatchDisabled: envBool("DISPATCH_DISABLED", false),

		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 5*time.Second),
		WorkerBatchSize:    envInt("WORKER_BATCH_SIZE", 20),
		WorkerPoolSize:     envInt("WORKER_POOL_SIZE", 4),
		WorkerMaxAttempts:  envInt("WORKER_MAX_ATTEMPTS", 5),
		WorkerBackoffBase:  envDuration("WORKER_BACKOFF_BASE", 30*time.Second),
		WorkerBackoffCap:   envDuration("WORKER_BACKOFF_CAP", time.Hour),

		PickupExpirySchedule:   envString("PICKUP_EXPIRY_SCHEDULE", ""),
		PickupExpirySweepLimit: envInt("PICKUP_EXPIRY_SWEEP_LIMIT", 0),

		WhatsAppBaseURL:  envString("WHATSAPP_BASE_URL", ""),
		WhatsAppInstance: envString("WHATSAPP_INSTANCE", ""),
		WhatsAppAPIKey:   envString("WHATSAPP_API_KEY", ""),
		WhatsAppTimeout:  envDuration("WHATSAPP_TIMEOUT", 15*time.Second),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError is load-bearing: webhook deduplication relies on
	// duplicate inserts surfacing as gorm.ErrDuplicatedKey.
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tenantrepo.TenantDTO{},
		&customerrepo.CustomerDTO{},
		&orderrepo.OrderDTO{},
		&historyrepo.HistoryDTO{},
		&webhookrepo.WebhookEventDTO{},
		&dispatchrepo.DispatchJobDTO{},
		&notificationrepo.LogDTO{},
	)
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()
	httpin.NewServer(root.CreateHTTPHandlers()).RegisterRoutes(e)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			e.Logger.Error(err)
		}
	}()

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("environment variable %s: %v", key, err)
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("environment variable %s: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("environment variable %s: %v", key, err)
	}
	return value
}
