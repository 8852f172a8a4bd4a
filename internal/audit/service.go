package audit

import (
	"context"
	"log"
	"sync"
	"time"

	auditRepo "github.com/libraryhub/library/internal/database/audit"
	"github.com/libraryhub/library/internal/entities"
)

type requestIDKey struct{}

// WithRequestID returns a context carrying the request id recorded on audit events.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id stored by WithRequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Service provides high-level audit logging for the borrowing lifecycle.
type Service struct {
	repo    *auditRepo.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *auditRepo.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.Log(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every pending asynchronous event has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// RecordBorrow records a borrow attempt.
func (s *Service) RecordBorrow(ctx context.Context, userID, bookID uint, borrowing *entities.Borrowing, err error) {
	event := newEvent(ctx, entities.AuditActionBorrow, err)
	event.UserID = &userID
	event.BookID = &bookID
	if borrowing != nil {
		event.BorrowingID = &borrowing.ID
	}
	s.LogAsync(event)
}

// RecordReturn records a return attempt.
func (s *Service) RecordReturn(ctx context.Context, borrowingID uint, borrowing *entities.Borrowing, err error) {
	event := newEvent(ctx, entities.AuditActionReturn, err)
	event.BorrowingID = &borrowingID
	if borrowing != nil {
		event.BookID = &borrowing.BookID
		event.UserID = &borrowing.UserID
	}
	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, action entities.AuditAction, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, action, limit, offset)
}

// GetEventsForBorrowing returns the lifecycle history of one borrowing.
func (s *Service) GetEventsForBorrowing(ctx context.Context, borrowingID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForBorrowing(ctx, borrowingID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func newEvent(ctx context.Context, action entities.AuditAction, err error) *entities.AuditEvent {
	event := &entities.AuditEvent{
		RequestID: RequestIDFromContext(ctx),
		Action:    action,
		Status:    entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	return event
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
