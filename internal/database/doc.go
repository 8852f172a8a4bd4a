// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (SQLite or PostgreSQL), migrations, sample data
//	├── errors.go        # Engine-independent error classification
//	├── books/           # Book catalogue reads and creation
//	├── users/           # Library member reads and creation
//	└── audit/           # Circulation audit events
//
// Borrowing rows and the books.available flag are written only by the
// circulation package, which owns the transaction that keeps them in step.
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	booksRepo := books.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(ctx, 3)
//
// # Engines
//
// SQLite is opened with foreign keys on, a busy timeout and BEGIN IMMEDIATE
// transactions. PostgreSQL is reached through pgx. Both are opened with
// gorm's TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey;
// IsUniqueViolation also recognises the raw driver errors.
package database
