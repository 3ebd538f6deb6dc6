package cmd

import "time"

// Config holds everything the process reads from the environment.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// DispatchDisabled turns the notification queue into a logged no-op.
	// Lifecycle commands keep working; snapshots are dropped as degraded.
	DispatchDisabled bool

	WorkerPollInterval time.Duration
	WorkerBatchSize    int
	WorkerPoolSize     int
	WorkerMaxAttempts  int
	WorkerBackoffBase  time.Duration
	WorkerBackoffCap   time.Duration

	// PickupExpirySchedule is a six-field cron expression (with seconds).
	PickupExpirySchedule   string
	PickupExpirySweepLimit int

	WhatsAppBaseURL  string
	WhatsAppInstance string
	WhatsAppAPIKey   string
	WhatsAppTimeout  time.Duration
}
