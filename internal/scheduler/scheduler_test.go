package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidSchedule(t *testing.T) {
	_, err := New(context.Background(), "every now and then", func(context.Context) {})
	require.Error(t, err)
}

func TestNewAcceptsDescriptors(t *testing.T) {
	for _, spec := range []string{"@every 1h", "@daily", "*/5 * * * *"} {
		_, err := New(context.Background(), spec, func(context.Context) {})
		require.NoError(t, err, spec)
	}
}

func TestRunNowSkipsWhileRunning(t *testing.T) {
	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	s, err := New(context.Background(), "@every 1h", func(context.Context) {
		runs.Add(1)
		close(started)
		<-release
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.RunNow()
		close(done)
	}()
	<-started

	// Returns immediately because the first run still holds the slot
	s.RunNow()
	require.Equal(t, int32(1), runs.Load())

	close(release)
	<-done
}

func TestScheduledTicksRun(t *testing.T) {
	var runs atomic.Int32
	s, err := New(context.Background(), "@every 1s", func(context.Context) {
		runs.Add(1)
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestStopCancelsJobContext(t *testing.T) {
	var jobCtx context.Context
	s, err := New(context.Background(), "@every 1h", func(ctx context.Context) {
		jobCtx = ctx
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())

	s.RunNow()
	require.NoError(t, jobCtx.Err())

	s.Stop()
	require.ErrorIs(t, jobCtx.Err(), context.Canceled)
}
