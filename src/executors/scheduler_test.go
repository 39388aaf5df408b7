package executors

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test index:
// - TestNewScheduler_InvalidSpec: a bad cron spec is rejected up front.
// - TestNewScheduler_RegistersJob: the entry runs the job when invoked.
// - TestStartSchedule_RunOnStartAndStop: runs once immediately, returns on cancel.
// - TestRunJob_SkipsWhenCancelled: no run after the context is done.

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, _, err := NewScheduler(context.Background(), "every tuesday", "history-sync", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history-sync")
}

func TestNewScheduler_RegistersJob(t *testing.T) {
	var runs int32
	c, id, err := NewScheduler(context.Background(), "@every 1h", "history-sync", func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("logged, not returned")
	})
	require.NoError(t, err)

	entry := c.Entry(id)
	require.True(t, entry.Valid())
	entry.WrappedJob.Run()

	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestStartSchedule_RunOnStartAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var runs int32

	done := make(chan error, 1)
	go func() {
		done <- StartSchedule(ctx, Config{Schedule: "@every 1h", RunOnStart: true}, "history-sync", func(context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRunJob_SkipsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	runJob(ctx, "history-sync", func(context.Context) error {
		called = true
		return nil
	})

	assert.False(t, called)
}
