package entities

import "time"

type AuditAction string

const (
	AuditActionBorrow AuditAction = "borrow"
	AuditActionReturn AuditAction = "return"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one attempt to move a borrowing through its lifecycle.
type AuditEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	RequestID   string      `gorm:"size:64;index" json:"request_id,omitempty"`
	Action      AuditAction `gorm:"size:20;index" json:"action"`
	BorrowingID *uint       `gorm:"index" json:"borrowing_id,omitempty"`
	BookID      *uint       `json:"book_id,omitempty"`
	UserID      *uint       `json:"user_id,omitempty"`
	Status      AuditStatus `gorm:"size:20" json:"status"`
	ErrorMsg    string      `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
