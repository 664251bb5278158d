// Package workerpool provides a bounded goroutine pool with backpressure.
//
// A Pool limits how many tasks run at once. When every worker is busy and
// the queue is full, Submit returns ErrPoolFull immediately so the caller
// can reject the work instead of piling up goroutines:
//
//	pool := workerpool.New(4)
//	defer pool.Shutdown(context.Background())
//
//	err := pool.Submit(func(ctx context.Context) {
//	    answer(ctx, update)
//	})
//	if errors.Is(err, workerpool.ErrPoolFull) {
//	    // tell the user to try again
//	}
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/chefmenu/pkg/logger"
)

// ErrPoolFull is returned by Submit when all workers are busy and the task
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Task receives a context that is cancelled when the pool shuts down
// without waiting.
type Task func(ctx context.Context)

// Pool is a bounded goroutine pool.
type Pool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// New starts size workers with a queue of 2×size tasks.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan Task, size*2),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until task is queued, ctx is done or the pool is shut
// down.
func (p *Pool) SubmitWait(ctx context.Context, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// Shutdown stops accepting tasks and waits for queued and running ones to
// finish. If ctx expires first, running tasks see their context cancelled
// and Shutdown returns ctx.Err(). Safe to call more than once.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.once.Do(func() {
		// Unblock SubmitWait callers holding the read lock.
		go func() {
			select {
			case <-ctx.Done():
				p.cancel()
			case <-p.ctx.Done():
			}
		}()

		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.safeRun(task)
	}
}

// safeRun recovers panics so a bad task doesn't kill the worker.
func (p *Pool) safeRun(task Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: task panicked", "error", fmt.Sprint(r))
		}
	}()
	task(p.ctx)
}
