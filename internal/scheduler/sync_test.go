package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dailyword/internal/syncer"
)

type fakeSyncer struct {
	configured bool
	calls      atomic.Int32
	block      chan struct{}
	lastCtx    context.Context
	mu         sync.Mutex
}

func (f *fakeSyncer) Sync(ctx context.Context) syncer.Result {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastCtx = ctx
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return syncer.Result{OK: true, Phase: syncer.PhaseDone}
}

func (f *fakeSyncer) Configured() bool { return f.configured }

type staticSchedule string

func (s staticSchedule) GetSyncSchedule() string { return string(s) }

func TestSyncScheduler_StartSkipsWhenNotConfigured(t *testing.T) {
	s := NewSyncScheduler(&fakeSyncer{}, staticSchedule("*/5 * * * *"), time.Minute)

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestSyncScheduler_StartSkipsWithoutSchedule(t *testing.T) {
	s := NewSyncScheduler(&fakeSyncer{configured: true}, staticSchedule(""), time.Minute)

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestSyncScheduler_InvalidSchedule(t *testing.T) {
	s := NewSyncScheduler(&fakeSyncer{configured: true}, staticSchedule("every day"), time.Minute)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestSyncScheduler_StartStop(t *testing.T) {
	s := NewSyncScheduler(&fakeSyncer{configured: true}, staticSchedule("0 */6 * * *"), time.Minute)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 0, next.Minute())

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestSyncScheduler_StopsWhenContextDone(t *testing.T) {
	s := NewSyncScheduler(&fakeSyncer{configured: true}, staticSchedule("0 * * * *"), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestSyncScheduler_Reschedule(t *testing.T) {
	schedule := staticSchedule("0 * * * *")
	s := NewSyncScheduler(&fakeSyncer{configured: true}, &schedule, time.Minute)

	require.NoError(t, s.Start(context.Background()))
	schedule = "30 2 * * *"
	require.NoError(t, s.Reschedule())
	defer s.Stop()

	// the watcher of the first run must not stop the new one
	time.Sleep(20 * time.Millisecond)
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 2, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.Len(t, s.cron.Entries(), 1)
}

func TestSyncScheduler_RescheduleKeepsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSyncScheduler(&fakeSyncer{configured: true}, staticSchedule("0 * * * *"), time.Minute)

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Reschedule())
	require.True(t, s.IsRunning())

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestSyncScheduler_RunNow(t *testing.T) {
	fake := &fakeSyncer{configured: true}
	s := NewSyncScheduler(fake, staticSchedule(""), 5*time.Second)

	s.RunNow()

	assert.Eventually(t, func() bool { return fake.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	fake.mu.Lock()
	deadline, ok := fake.lastCtx.Deadline()
	fake.mu.Unlock()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, 2*time.Second)
}

func TestSyncScheduler_RunsNeverOverlap(t *testing.T) {
	fake := &fakeSyncer{configured: true, block: make(chan struct{})}
	s := NewSyncScheduler(fake, staticSchedule(""), time.Minute)

	s.RunNow()
	assert.Eventually(t, s.IsSyncing, time.Second, 5*time.Millisecond)

	s.runSync()
	assert.Equal(t, int32(1), fake.calls.Load())

	close(fake.block)
	assert.Eventually(t, func() bool { return !s.IsSyncing() }, time.Second, 5*time.Millisecond)
}
