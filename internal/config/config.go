package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Storage
		Activity
		Query
		Tasks
		Reminders
		Session
		Metadata
		Notifications
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	// Storage selects where wishlists, the activity log and drafts are persisted.
	Storage struct {
		Backend            string // sqlite, memory or none
		WishlistSlotPrefix string
		ActivitySlot       string
		DraftsSlot         string
	}
	Activity struct {
		MaxEntries    int // 0 keeps every entry
		RetentionDays int // 0 keeps entries forever
	}
	Query struct {
		StaleTime time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Reminders struct {
		Enabled  bool
		Schedule string // Cron format: "0 8 * * *" = every morning
	}
	Session struct {
		Enabled       bool
		Secret        string
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Metadata struct {
		Enabled        bool
		BaseURL        string
		RequestSpacing time.Duration
	}
	Notifications struct {
		FeedSize int
	}
	// Demo serves the database read-only, see cmd/generate_demo.
	Demo struct {
		Enabled bool
	}
)

// NewConfig reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set take precedence.
func NewConfig() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("storage_backend", StorageSQLite)
	v.SetDefault("wishlist_slot_prefix", "wishlist")
	v.SetDefault("activity_slot", "activities")
	v.SetDefault("drafts_slot", "book_drafts")

	v.SetDefault("activity_max_entries", 0)
	v.SetDefault("activity_retention_days", 0)

	v.SetDefault("query_stale_time", "30s")

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("reminders_enabled", true)
	v.SetDefault("reminders_schedule", "0 8 * * *")

	v.SetDefault("session_enabled", false)
	v.SetDefault("session_secret", "")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secure_cookies", true)

	v.SetDefault("metadata_enabled", true)
	v.SetDefault("metadata_base_url", "https://openlibrary.org")
	v.SetDefault("metadata_request_spacing", "1s")

	v.SetDefault("notifications_feed_size", 50)

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			Backend:            v.GetString("STORAGE_BACKEND"),
			WishlistSlotPrefix: v.GetString("WISHLIST_SLOT_PREFIX"),
			ActivitySlot:       v.GetString("ACTIVITY_SLOT"),
			DraftsSlot:         v.GetString("DRAFTS_SLOT"),
		},
		Activity: Activity{
			MaxEntries:    v.GetInt("ACTIVITY_MAX_ENTRIES"),
			RetentionDays: v.GetInt("ACTIVITY_RETENTION_DAYS"),
		},
		Query: Query{
			StaleTime: v.GetDuration("QUERY_STALE_TIME"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Reminders: Reminders{
			Enabled:  v.GetBool("REMINDERS_ENABLED"),
			Schedule: v.GetString("REMINDERS_SCHEDULE"),
		},
		Session: Session{
			Enabled:       v.GetBool("SESSION_ENABLED"),
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		Metadata: Metadata{
			Enabled:        v.GetBool("METADATA_ENABLED"),
			BaseURL:        v.GetString("METADATA_BASE_URL"),
			RequestSpacing: v.GetDuration("METADATA_REQUEST_SPACING"),
		},
		Notifications: Notifications{
			FeedSize: v.GetInt("NOTIFICATIONS_FEED_SIZE"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
