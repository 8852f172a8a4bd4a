package config

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	// DefaultDatabasePath is the default path for the SQLite database
	DefaultDatabasePath = "./library.db"

	// DefaultEnvFile is loaded on startup when present
	DefaultEnvFile = ".env"
)
