// Package page models the single-threaded environment a workload runs in:
// every event, inbound messages included, is handled one at a time on the
// loop goroutine.
package page

import (
	"context"
	"sync"
)

const defaultQueueSize = 64

// Loop is a serial task queue. Tasks posted to it run one after another on
// the goroutine that called Run.
type Loop struct {
	mu     sync.Mutex
	queue  chan func()
	done   chan struct{}
	closed bool
}

func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), defaultQueueSize),
		done:  make(chan struct{}),
	}
}

// Post enqueues a task. It blocks while the queue is full and returns false
// once the loop has been closed.
func (l *Loop) Post(task func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.mu.Unlock()

	select {
	case l.queue <- task:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop after the task that is currently running, if any.
// Tasks still queued are dropped.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	close(l.done)
}

// Done is closed when the loop is closed.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes tasks until the loop is closed or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.done:
			return nil
		case task := <-l.queue:
			task()
		}
	}
}
