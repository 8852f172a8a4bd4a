package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Tasks
		Consistency
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnly                 bool // Reject every write request
	}
	Database struct {
		Driver   string // "sqlite" or "postgres"
		Path     string // SQLite file
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
		Debug    bool // Log every SQL statement
		Seed     bool // Seed sample books and users into empty tables
	}
	UI struct {
		StaticPath string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		DBPath          string // Defaults to "<database>-tasks.db" next to the SQLite database
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Consistency struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Audit struct {
		RetentionDays int
		Schedule      string // Cron format for audit cleanup
	}
)

// DSN builds the PostgreSQL connection URL. Credentials are percent-encoded
// so passwords may contain any character.
func (d Database) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	switch {
	case d.Password != "":
		dsn.User = url.UserPassword(d.User, d.Password)
	case d.User != "":
		dsn.User = url.User(d.User)
	}
	return dsn.String()
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Printf("Loaded environment from %s", path)
	return nil
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("read_only_mode", false)
	v.SetDefault("static_path", "./public")

	// Database defaults
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "library")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_debug", false)
	v.SetDefault("seed_sample_data", true)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("tasks_db_path", "")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Scheduled jobs
	v.SetDefault("consistency_check_enabled", true)
	v.SetDefault("consistency_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "30 3 * * *") // Daily at 03:30

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnly:                 v.GetBool("READ_ONLY_MODE"),
		},
		Database: Database{
			Driver:   v.GetString("DB_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			Debug:    v.GetBool("DB_DEBUG"),
			Seed:     v.GetBool("SEED_SAMPLE_DATA"),
		},
		UI: UI{
			StaticPath: v.GetString("STATIC_PATH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			DBPath:          v.GetString("TASKS_DB_PATH"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Consistency: Consistency{
			Enabled:  v.GetBool("CONSISTENCY_CHECK_ENABLED"),
			Schedule: v.GetString("CONSISTENCY_SCHEDULE"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			Schedule:      v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
	}
}
