// Package loop schedules frame callbacks on refresh ticks and serializes
// asynchronous events (resize notifications) onto the same task.
package loop

import (
	"context"
	"sync"
	"time"
)

// FrameFunc is invoked once per refresh tick while the loop is running.
type FrameFunc func()

// Loop is a single-task scheduler. Tick must be called from one goroutine
// (the host's refresh callback or Run); Post may be called from any.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	frame  FrameFunc
	frames uint64
}

// New returns an idle loop.
func New() *Loop { return &Loop{} }

// Start schedules fn for the next tick and every tick after it. Starting a
// running loop replaces the callback; there is still only one pending call.
func (l *Loop) Start(fn FrameFunc) {
	l.mu.Lock()
	l.frame = fn
	l.mu.Unlock()
}

// Stop cancels the pending invocation. It is safe to call on a loop that
// was never started and to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.frame = nil
	l.mu.Unlock()
}

// Running reports whether a frame is scheduled.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame != nil
}

// Post queues fn to run on the loop's task at the start of the next tick,
// before the frame callback. Events run in the order they were posted and
// run even when the loop is stopped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Tick runs one refresh: drains queued events, then the frame callback if
// one is scheduled. It reports whether a frame ran.
func (l *Loop) Tick() bool {
	l.mu.Lock()
	events := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, ev := range events {
		ev()
	}

	// Re-read after events: an event may have stopped the loop.
	l.mu.Lock()
	fn := l.frame
	l.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	l.mu.Lock()
	l.frames++
	l.mu.Unlock()
	return true
}

// Frames counts callbacks run since the loop was created.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Run ticks every interval until ctx is done or stop reports true after a
// tick. It is the refresh source for hosts without a display.
func (l *Loop) Run(ctx context.Context, interval time.Duration, stop func() bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
			if stop != nil && stop() {
				return nil
			}
		}
	}
}
