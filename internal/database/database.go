package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/libraryhub/library/internal/config"
	"github.com/libraryhub/library/internal/entities"
)

func strPtr(s string) *string { return &s }

var sampleBooks = []entities.Book{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: strPtr("978-0-7432-7356-5"), Available: true},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: strPtr("978-0-06-112008-4"), Available: true},
	{Title: "1984", Author: "George Orwell", ISBN: strPtr("978-0-452-28423-4"), Available: true},
	{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: strPtr("978-0-14-143951-8"), Available: true},
	{Title: "The Catcher in the Rye", Author: "J.D. Salinger", ISBN: strPtr("978-0-316-76948-0"), Available: true},
}

var sampleUsers = []entities.User{
	{Name: "John Doe", Email: "john.doe@email.com", Phone: "555-0101"},
	{Name: "Jane Smith", Email: "jane.smith@email.com", Phone: "555-0102"},
	{Name: "Bob Johnson", Email: "bob.johnson@email.com", Phone: "555-0103"},
}

type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens the configured engine, migrates the schema and
// optionally seeds sample data into empty tables.
func NewDatabase(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{DSN: cfg.DSN()})
	case config.DriverSQLite, "":
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := open(dialector, logLevel)
	if err != nil {
		return nil, err
	}
	db.Driver = cfg.Driver
	if db.Driver == "" {
		db.Driver = config.DriverSQLite
	}

	if cfg.Seed {
		if err := db.SeedSampleData(); err != nil {
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	if db.Driver == config.DriverPostgres {
		log.Printf("Database initialized successfully at %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	} else {
		log.Printf("Database initialized successfully at %s", cfg.Path)
	}
	return db, nil
}

// NewSQLiteDatabase opens a migrated SQLite database without sample data.
func NewSQLiteDatabase(dbPath string) (*Database, error) {
	db, err := open(sqlite.Open(sqliteDSN(dbPath)), logger.Silent)
	if err != nil {
		return nil, err
	}
	db.Driver = config.DriverSQLite
	return db, nil
}

func open(dialector gorm.Dialector, level logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.User{},
		&entities.Borrowing{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{DB: db}, nil
}

// sqliteDSN enables foreign keys, waits on locks instead of failing, and
// starts every transaction with BEGIN IMMEDIATE so writers serialize up front.
func sqliteDSN(path string) string {
	params := "_busy_timeout=5000&_foreign_keys=on&_txlock=immediate"
	if !strings.Contains(path, ":memory:") && !strings.Contains(path, "mode=memory") {
		params += "&_journal_mode=WAL"
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection pool is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// SeedSampleData inserts the sample catalogue and members into empty tables.
// Tables that already hold rows are left untouched.
func (d *Database) SeedSampleData() error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Book{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			books := make([]entities.Book, len(sampleBooks))
			copy(books, sampleBooks)
			if err := tx.Create(&books).Error; err != nil {
				return fmt.Errorf("failed to create sample books: %w", err)
			}
			log.Printf("Seeded %d sample books", len(books))
		}

		if err := tx.Model(&entities.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			users := make([]entities.User, len(sampleUsers))
			copy(users, sampleUsers)
			if err := tx.Create(&users).Error; err != nil {
				return fmt.Errorf("failed to create sample users: %w", err)
			}
			log.Printf("Seeded %d sample users", len(users))
		}
		return nil
	})
}
