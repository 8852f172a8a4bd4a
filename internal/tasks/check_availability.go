package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/libraryhub/library/internal/circulation"
)

// CheckAvailabilityQueue is the queue name of CheckAvailabilityTask.
const CheckAvailabilityQueue = "check_availability"

// ConsistencyChecker compares book availability against open borrowings.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (*circulation.ConsistencyReport, error)
}

// CheckAvailabilityTask verifies that every book's available flag matches its
// open borrowings. Mismatches are logged, never repaired.
type CheckAvailabilityTask struct {
	// Trigger records who enqueued the check ("manual", "scheduler").
	Trigger string `json:"trigger,omitempty"`
}

// Config returns the queue configuration for availability checks.
func (t CheckAvailabilityTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CheckAvailabilityQueue,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CheckAvailabilityProcessor creates a processor function for CheckAvailabilityTask.
func CheckAvailabilityProcessor(checker ConsistencyChecker) backlite.QueueProcessor[CheckAvailabilityTask] {
	return func(ctx context.Context, task CheckAvailabilityTask) error {
		if checker == nil {
			return fmt.Errorf("consistency checker not configured")
		}

		report, err := checker.CheckConsistency(ctx)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}

		if report.Consistent() {
			log.Printf("[TASK] Availability check (%s): %d books, %d open borrowings, consistent",
				triggerName(task.Trigger), report.BooksChecked, report.OpenBorrowings)
			return nil
		}

		log.Printf("[TASK] Availability check (%s): %d of %d books inconsistent",
			triggerName(task.Trigger), len(report.Issues), report.BooksChecked)
		for _, issue := range report.Issues {
			log.Printf("[TASK]   book %d (%s): %s", issue.BookID, issue.Title, issue.Problem)
		}
		return nil
	}
}

// NewCheckAvailabilityQueue creates a backlite queue for availability checks.
func NewCheckAvailabilityQueue(checker ConsistencyChecker) backlite.Queue {
	return backlite.NewQueue(CheckAvailabilityProcessor(checker))
}

func triggerName(trigger string) string {
	if trigger == "" {
		return "manual"
	}
	return trigger
}
