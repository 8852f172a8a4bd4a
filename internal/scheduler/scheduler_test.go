package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingTask struct{}

func (pingTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{Name: "ping", MaxAttempts: 1}
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, task backlite.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.tasks = append(f.tasks, task)
	return "task-1", nil
}

func (f *fakeEnqueuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 * * * *"))
	assert.NoError(t, ValidateCronSchedule("30 3 * * *"))
	assert.Error(t, ValidateCronSchedule("every hour"))
	assert.Error(t, ValidateCronSchedule("0 0 * * * *"), "six-field expressions are rejected")
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Every hour at :00", GetCronDescription("0 * * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}

func TestScheduler_Add(t *testing.T) {
	s := New(&fakeEnqueuer{})

	require.NoError(t, s.Add(Job{Name: "ping", Schedule: "0 * * * *", Task: pingTask{}}))

	err := s.Add(Job{Name: "ping", Schedule: "0 * * * *", Task: pingTask{}})
	assert.ErrorContains(t, err, "already scheduled")

	err = s.Add(Job{Name: "bad", Schedule: "not a schedule", Task: pingTask{}})
	assert.ErrorContains(t, err, "invalid cron schedule")

	err = s.Add(Job{Name: "empty", Schedule: "0 * * * *"})
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(&fakeEnqueuer{})
	require.NoError(t, s.Add(Job{Name: "ping", Schedule: "0 * * * *", Task: pingTask{}}))

	assert.Nil(t, s.NextRunTime("ping"))

	s.Start(context.Background())
	assert.True(t, s.IsRunning())

	next := s.NextRunTime("ping")
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 0, next.Minute())
	assert.Nil(t, s.NextRunTime("missing"))

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	s := New(&fakeEnqueuer{})
	require.NoError(t, s.Add(Job{Name: "ping", Schedule: "0 * * * *", Task: pingTask{}}))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StartWithoutJobs(t *testing.T) {
	s := New(&fakeEnqueuer{})

	s.Start(context.Background())

	assert.False(t, s.IsRunning())
}

func TestScheduler_EnqueueError(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: errors.New("queue closed")}
	s := New(enqueuer)
	job := Job{Name: "ping", Schedule: "0 * * * *", Task: pingTask{}}

	s.enqueue(job)

	assert.Equal(t, 0, enqueuer.count())
}
