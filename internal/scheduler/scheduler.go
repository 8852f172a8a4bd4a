// Package scheduler enqueues background tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer adds a task to the task queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// Job is a task enqueued on a cron schedule.
type Job struct {
	Name     string
	Schedule string
	Task     backlite.Task
}

// Scheduler manages periodic enqueueing of background tasks.
type Scheduler struct {
	enqueuer Enqueuer

	cron      *cron.Cron
	jobs      []Job
	entries   map[string]cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// New creates a scheduler that hands due jobs to enqueuer.
func New(enqueuer Enqueuer) *Scheduler {
	return &Scheduler{
		enqueuer: enqueuer,
		cron:     cron.New(cron.WithParser(parser)),
		entries:  make(map[string]cron.EntryID),
	}
}

// Add registers a job. Jobs must be added before Start.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if job.Task == nil {
		return fmt.Errorf("job %s has no task", job.Name)
	}
	if err := ValidateCronSchedule(job.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s' for %s: %w", job.Schedule, job.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[job.Name]; exists {
		return fmt.Errorf("job %s already scheduled", job.Name)
	}

	entryID, err := s.cron.AddFunc(job.Schedule, func() {
		s.enqueue(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
	}
	s.entries[job.Name] = entryID
	s.jobs = append(s.jobs, job)
	return nil
}

// Start begins the scheduler. It stops when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	if len(s.jobs) == 0 {
		log.Printf("[SCHEDULER] no jobs configured")
		return
	}

	s.cron.Start()
	s.isRunning = true

	for _, job := range s.jobs {
		log.Printf("[SCHEDULER] %s scheduled '%s' (%s)", job.Name, job.Schedule, GetCronDescription(job.Schedule))
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop stops the scheduler and waits for running enqueues to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false

	log.Printf("[SCHEDULER] stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when a job will next fire, or nil when the scheduler
// is stopped or the job is unknown.
func (s *Scheduler) NextRunTime(name string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entryID, ok := s.entries[name]
	if !ok {
		return nil
	}
	next := s.cron.Entry(entryID).Next
	return &next
}

func (s *Scheduler) enqueue(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, err := s.enqueuer.Enqueue(ctx, job.Task)
	if err != nil {
		log.Printf("[SCHEDULER] failed to enqueue %s: %v", job.Name, err)
		return
	}
	log.Printf("[SCHEDULER] enqueued %s (task %s)", job.Name, id)
}

// ValidateCronSchedule validates a 5-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule.
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case "30 3 * * *":
		return "Daily at 03:30"
	default:
		return "Custom schedule: " + schedule
	}
}
