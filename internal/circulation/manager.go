// Package circulation owns the borrowing lifecycle.
//
// A book's available flag must be false exactly when one open borrowing
// references it. Manager is the only writer of that flag and of a
// borrowing's status and returned date; every change happens inside a
// single transaction that flips the flag with a conditional update, so
// two concurrent borrows of the same book cannot both succeed.
package circulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/libraryhub/library/internal/entities"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrBookUnavailable   = errors.New("book is not available")
	ErrBorrowingNotFound = errors.New("borrowing not found")
	ErrAlreadyReturned   = errors.New("borrowing already returned")
)

// EventRecorder is notified after every Borrow and Return attempt.
type EventRecorder interface {
	RecordBorrow(ctx context.Context, userID, bookID uint, borrowing *entities.Borrowing, err error)
	RecordReturn(ctx context.Context, borrowingID uint, borrowing *entities.Borrowing, err error)
}

type Manager struct {
	db       *gorm.DB
	recorder EventRecorder
	now      func() time.Time
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SetRecorder attaches an optional recorder for lifecycle events.
func (m *Manager) SetRecorder(recorder EventRecorder) {
	m.recorder = recorder
}

// Borrow lends a book to a member: it marks the book unavailable and opens a
// borrowing, or does neither.
func (m *Manager) Borrow(ctx context.Context, userID, bookID uint) (*entities.Borrowing, error) {
	var borrowing entities.Borrowing

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Book{}).
			Where("id = ? AND available = ?", bookID, true).
			Update("available", false)
		if res.Error != nil {
			return fmt.Errorf("mark book %d unavailable: %w", bookID, res.Error)
		}
		if res.RowsAffected == 0 {
			exists, err := rowExists(tx, &entities.Book{}, bookID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrBookNotFound
			}
			return ErrBookUnavailable
		}

		exists, err := rowExists(tx, &entities.User{}, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}

		borrowing = entities.Borrowing{
			UserID:       userID,
			BookID:       bookID,
			BorrowedDate: m.now(),
			Status:       entities.BorrowingStatusBorrowed,
		}
		if err := tx.Omit(clause.Associations).Create(&borrowing).Error; err != nil {
			return fmt.Errorf("create borrowing: %w", err)
		}
		return nil
	})

	if err != nil {
		m.recordBorrow(ctx, userID, bookID, nil, err)
		return nil, err
	}
	m.recordBorrow(ctx, userID, bookID, &borrowing, nil)
	return &borrowing, nil
}

// Return closes an open borrowing and makes its book available again.
// Returning an already returned borrowing fails with ErrAlreadyReturned.
func (m *Manager) Return(ctx context.Context, borrowingID uint) (*entities.Borrowing, error) {
	var borrowing entities.Borrowing

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Borrowing{}).
			Where("id = ? AND status = ?", borrowingID, entities.BorrowingStatusBorrowed).
			Updates(map[string]any{
				"status":        entities.BorrowingStatusReturned,
				"returned_date": m.now(),
			})
		if res.Error != nil {
			return fmt.Errorf("close borrowing %d: %w", borrowingID, res.Error)
		}
		if res.RowsAffected == 0 {
			exists, err := rowExists(tx, &entities.Borrowing{}, borrowingID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrBorrowingNotFound
			}
			return ErrAlreadyReturned
		}

		if err := tx.First(&borrowing, borrowingID).Error; err != nil {
			return fmt.Errorf("reload borrowing %d: %w", borrowingID, err)
		}

		err := tx.Model(&entities.Book{}).
			Where("id = ?", borrowing.BookID).
			Update("available", true).Error
		if err != nil {
			return fmt.Errorf("mark book %d available: %w", borrowing.BookID, err)
		}
		return nil
	})

	if err != nil {
		m.recordReturn(ctx, borrowingID, nil, err)
		return nil, err
	}
	m.recordReturn(ctx, borrowingID, &borrowing, nil)
	return &borrowing, nil
}

// ListBorrowings returns every borrowing with member and book details,
// most recently borrowed first.
func (m *Manager) ListBorrowings(ctx context.Context) ([]entities.BorrowingDetail, error) {
	details := []entities.BorrowingDetail{}
	err := m.detailQuery(ctx).
		Order("b.borrowed_date DESC, b.id DESC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("list borrowings: %w", err)
	}
	return details, nil
}

// GetBorrowing returns one borrowing with member and book details.
func (m *Manager) GetBorrowing(ctx context.Context, id uint) (*entities.BorrowingDetail, error) {
	var details []entities.BorrowingDetail
	err := m.detailQuery(ctx).
		Where("b.id = ?", id).
		Limit(1).
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("get borrowing %d: %w", id, err)
	}
	if len(details) == 0 {
		return nil, ErrBorrowingNotFound
	}
	return &details[0], nil
}

func (m *Manager) detailQuery(ctx context.Context) *gorm.DB {
	return m.db.WithContext(ctx).
		Table("borrowings AS b").
		Select("b.id, b.user_id, b.book_id, b.borrowed_date, b.returned_date, b.status, " +
			"u.name AS user_name, bk.title AS book_title, bk.author AS author").
		Joins("JOIN users u ON b.user_id = u.id").
		Joins("JOIN books bk ON b.book_id = bk.id")
}

func (m *Manager) recordBorrow(ctx context.Context, userID, bookID uint, borrowing *entities.Borrowing, err error) {
	if m.recorder != nil {
		m.recorder.RecordBorrow(ctx, userID, bookID, borrowing, err)
	}
}

func (m *Manager) recordReturn(ctx context.Context, borrowingID uint, borrowing *entities.Borrowing, err error) {
	if m.recorder != nil {
		m.recorder.RecordReturn(ctx, borrowingID, borrowing, err)
	}
}

func rowExists(tx *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup %T %d: %w", model, id, err)
	}
	return count > 0, nil
}
