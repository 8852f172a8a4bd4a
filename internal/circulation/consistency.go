package circulation

import (
	"context"
	"fmt"
	"time"

	"github.com/libraryhub/library/internal/entities"
)

const (
	ProblemMultipleOpen         = "multiple open borrowings"
	ProblemAvailableButBorrowed = "marked available but has an open borrowing"
	ProblemUnavailableNotLent   = "marked unavailable without an open borrowing"
)

// ConsistencyIssue describes one book whose availability flag disagrees
// with its open borrowings.
type ConsistencyIssue struct {
	BookID         uint   `json:"book_id"`
	Title          string `json:"title"`
	Available      bool   `json:"available"`
	OpenBorrowings int64  `json:"open_borrowings"`
	Problem        string `json:"problem"`
}

type ConsistencyReport struct {
	CheckedAt      time.Time          `json:"checked_at"`
	BooksChecked   int                `json:"books_checked"`
	OpenBorrowings int64              `json:"open_borrowings"`
	Issues         []ConsistencyIssue `json:"issues"`
}

// Consistent reports whether no issue was found.
func (r *ConsistencyReport) Consistent() bool {
	return len(r.Issues) == 0
}

type bookOpenCount struct {
	ID        uint
	Title     string
	Available bool
	OpenCount int64
}

// CheckConsistency scans every book against its open borrowings. It only
// reads; repairing a mismatch is left to an operator.
func (m *Manager) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	var rows []bookOpenCount
	err := m.db.WithContext(ctx).
		Table("books AS bk").
		Select("bk.id, bk.title, bk.available, COUNT(b.id) AS open_count").
		Joins("LEFT JOIN borrowings b ON b.book_id = bk.id AND b.status = ?", entities.BorrowingStatusBorrowed).
		Group("bk.id, bk.title, bk.available").
		Order("bk.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("check consistency: %w", err)
	}

	report := &ConsistencyReport{
		CheckedAt:    m.now(),
		BooksChecked: len(rows),
		Issues:       []ConsistencyIssue{},
	}

	for _, row := range rows {
		report.OpenBorrowings += row.OpenCount

		var problem string
		switch {
		case row.OpenCount > 1:
			problem = ProblemMultipleOpen
		case row.Available && row.OpenCount == 1:
			problem = ProblemAvailableButBorrowed
		case !row.Available && row.OpenCount == 0:
			problem = ProblemUnavailableNotLent
		default:
			continue
		}

		report.Issues = append(report.Issues, ConsistencyIssue{
			BookID:         row.ID,
			Title:          row.Title,
			Available:      row.Available,
			OpenBorrowings: row.OpenCount,
			Problem:        problem,
		})
	}

	return report, nil
}
