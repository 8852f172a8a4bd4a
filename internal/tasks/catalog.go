package tasks

import (
	"fmt"

	"github.com/mikestefanello/backlite"
)

// TaskType describes a task that can be triggered on demand.
type TaskType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// Types lists the tasks that can be run manually.
func Types() []TaskType {
	return []TaskType{
		{
			Type:        CheckAvailabilityQueue,
			Description: "Compare every book's availability with its open borrowings",
			Queue:       CheckAvailabilityQueue,
		},
		{
			Type:        CleanupAuditEventsQueue,
			Description: "Delete borrow and return audit events past the retention period",
			Queue:       CleanupAuditEventsQueue,
		},
	}
}

// RunOptions carries optional parameters for a manually triggered task.
type RunOptions struct {
	RetentionDays int
	Trigger       string
}

// NewTask builds the task for a task type name.
func NewTask(taskType string, opts RunOptions) (backlite.Task, error) {
	switch taskType {
	case CheckAvailabilityQueue:
		return CheckAvailabilityTask{Trigger: opts.Trigger}, nil
	case CleanupAuditEventsQueue:
		if opts.RetentionDays < 0 {
			return nil, fmt.Errorf("retention_days must not be negative")
		}
		return CleanupAuditEventsTask{RetentionDays: opts.RetentionDays}, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", taskType)
	}
}

// StatusName returns the lowercase name of a backlite task status.
func StatusName(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
