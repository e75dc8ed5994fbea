// Package eventloop provides single threaded dispatch for UI state. All
// callbacks posted to a dispatcher run one at a time, in order.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Timer is handle of scheduled callback.
type Timer interface {
	// Stop prevents callback from running, it reports false when callback
	// already ran or was stopped.
	Stop() bool
}

// Scheduler delays callbacks, callbacks are delivered on dispatcher.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Dispatcher accepts work from any goroutine.
type Dispatcher interface {
	Scheduler
	Post(f func()) bool
}

var ErrStopped = errors.New("event loop stopped")

// Loop runs posted callbacks on a single goroutine started by Run.
type Loop struct {
	log *zap.Logger

	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

func New(log *zap.Logger) *Loop {
	return &Loop{
		log:  log.Named("loop"),
		wake: make(chan struct{}, 1),
	}
}

// Post queues f, it returns false when loop is stopped and f was dropped.
func (l *Loop) Post(f func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, f)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

type loopTimer struct {
	t *time.Timer

	mu   sync.Mutex
	done bool
}

func (lt *loopTimer) Stop() bool {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.done {
		return false
	}
	lt.done = true
	lt.t.Stop()
	return true
}

// fire is executed on the loop, so Stop called from the loop before fire
// always wins.
func (lt *loopTimer) fire(f func()) {
	lt.mu.Lock()
	if lt.done {
		lt.mu.Unlock()
		return
	}
	lt.done = true
	lt.mu.Unlock()
	f()
}

// AfterFunc schedules f to run on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.Post(func() { lt.fire(f) })
	})
	return lt
}

// Call runs f on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, f func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		f()
	}) {
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes callbacks until ctx is done. Callbacks still queued at that
// point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		dropped := len(l.queue)
		l.queue = nil
		l.mu.Unlock()
		if dropped > 0 {
			l.log.Debug("Dropped queued callbacks", zap.Int("count", dropped))
		}
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, f := range batch {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.run(f)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("Callback panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	f()
}
