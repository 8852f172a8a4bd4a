package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/libraryhub/library/internal/circulation"
	"github.com/libraryhub/library/internal/entities"
)

// Each controller depends on the narrow interface it needs; the concrete
// implementations are checked in internal/interfaces.

// BookStore provides catalogue access to books.
type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, title, author, isbn string) (*entities.Book, error)
}

// UserStore provides access to library members.
type UserStore interface {
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	CreateUser(ctx context.Context, name, email, phone string) (*entities.User, error)
}

// Circulation runs the borrowing lifecycle.
type Circulation interface {
	Borrow(ctx context.Context, userID, bookID uint) (*entities.Borrowing, error)
	Return(ctx context.Context, borrowingID uint) (*entities.Borrowing, error)
	ListBorrowings(ctx context.Context) ([]entities.BorrowingDetail, error)
	GetBorrowing(ctx context.Context, id uint) (*entities.BorrowingDetail, error)
}

// ConsistencyChecker compares availability flags with open borrowings.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (*circulation.ConsistencyReport, error)
}

// AuditReader lists recorded borrow and return attempts.
type AuditReader interface {
	GetEvents(ctx context.Context, action entities.AuditAction, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForBorrowing(ctx context.Context, borrowingID uint) ([]entities.AuditEvent, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// NextRunReporter reports when a scheduled job fires next.
type NextRunReporter interface {
	NextRunTime(name string) *time.Time
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
