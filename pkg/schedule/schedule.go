// Package schedule runs recurring tasks on fixed intervals.
//
//	s := schedule.New()
//	s.Every(time.Hour).Name("menu-card").WithoutOverlapping().Run(func(ctx context.Context) {
//	    publisher.Publish(ctx, "all")
//	})
//	go s.Start(ctx) // returns once ctx is done and running tasks finished
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
)

// Task is one run of a scheduled job. ctx is cancelled when the scheduler
// stops.
type Task func(ctx context.Context)

// Scheduler owns a set of entries and the loop that dispatches them.
type Scheduler struct {
	tick time.Duration

	mu      sync.Mutex
	entries []*Entry
	wg      sync.WaitGroup
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTick sets how often due entries are checked. Defaults to one second.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{tick: time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entry is a job being configured. It is not scheduled until Run.
type Entry struct {
	s         *Scheduler
	id        string
	interval  time.Duration
	noOverlap bool
	task      Task

	mu      sync.Mutex
	lastRun time.Time
	running bool
}

// Every starts an entry that fires once per interval. The first run happens
// on the first tick after Start.
func (s *Scheduler) Every(interval time.Duration) *Entry {
	return &Entry{s: s, interval: interval}
}

// Name gives the entry an identifier for logs and List.
func (e *Entry) Name(id string) *Entry {
	e.id = id
	return e
}

// WithoutOverlapping skips a run while the previous one is still going.
func (e *Entry) WithoutOverlapping() *Entry {
	e.noOverlap = true
	return e
}

// Run registers task.
func (e *Entry) Run(task Task) {
	e.task = task
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.id == "" {
		e.id = fmt.Sprintf("task-%d", len(e.s.entries)+1)
	}
	e.s.entries = append(e.s.entries, e)
}

// List describes every registered entry as "id [interval]".
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, fmt.Sprintf("%s [%s]", e.id, e.interval))
	}
	return out
}

// Start dispatches due entries until ctx is done, then waits for running
// tasks to return.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	logger.Info("schedule: scheduler started", "entries", len(s.List()))

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			s.mu.Lock()
			current := append([]*Entry(nil), s.entries...)
			s.mu.Unlock()

			for _, e := range current {
				if e.due(now) {
					s.dispatch(ctx, e, now)
				}
			}
		}
	}
}

func (e *Entry) due(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval
}

func (s *Scheduler) dispatch(ctx context.Context, e *Entry, now time.Time) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		metrics.ScheduledRuns.WithLabelValues(e.id, "skipped").Inc()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = now
	e.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			outcome := "ok"
			if r := recover(); r != nil {
				outcome = "panic"
				logger.Error("schedule: task panicked", "id", e.id, "panic", fmt.Sprint(r))
			}
			metrics.ScheduledRuns.WithLabelValues(e.id, outcome).Inc()
		}()
		logger.Debug("schedule: running task", "id", e.id)
		e.task(ctx)
	}()
}
