package schedule_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
	"github.com/shashiranjanraj/chefmenu/pkg/schedule"
)

func start(t *testing.T, s *schedule.Scheduler) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()
	return func() {
		stop()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("scheduler did not stop")
		}
	}
}

func TestRunsRepeatedly(t *testing.T) {
	s := schedule.New(schedule.WithTick(5 * time.Millisecond))
	var runs atomic.Int32
	s.Every(10 * time.Millisecond).Name("card").Run(func(context.Context) { runs.Add(1) })

	stop := start(t, s)
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 5*time.Second, 5*time.Millisecond)
	stop()

	assert.Equal(t, []string{"card [10ms]"}, s.List())
}

func TestWithoutOverlapping(t *testing.T) {
	s := schedule.New(schedule.WithTick(2 * time.Millisecond))
	var running, maxRunning, runs atomic.Int32
	release := make(chan struct{})

	s.Every(time.Millisecond).WithoutOverlapping().Run(func(ctx context.Context) {
		n := running.Add(1)
		defer running.Add(-1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		runs.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
	})

	stop := start(t, s)
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 5*time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
	close(release)
	stop()

	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestPanicDoesNotStopScheduler(t *testing.T) {
	s := schedule.New(schedule.WithTick(2 * time.Millisecond))
	var runs atomic.Int32
	s.Every(time.Millisecond).Run(func(context.Context) {
		runs.Add(1)
		panic("burnt")
	})

	stop := start(t, s)
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, time.Millisecond)
	stop()
	assert.Equal(t, []string{"task-1 [1ms]"}, s.List())

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `chefmenu_schedule_runs_total{outcome="panic",task="task-1"}`)
}

func TestStopCancelsRunningTask(t *testing.T) {
	s := schedule.New(schedule.WithTick(2 * time.Millisecond))
	started := make(chan struct{})
	var cancelled atomic.Bool
	s.Every(time.Hour).Run(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
	})

	stop := start(t, s)
	<-started
	stop()
	assert.True(t, cancelled.Load())
}
