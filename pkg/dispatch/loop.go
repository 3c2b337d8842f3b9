// Package dispatch runs tasks one at a time on a single owning goroutine.
package dispatch

import (
	"log/slog"
	"sync"
)

// Loop is a serial executor. Tasks run in Post order on one goroutine, so
// state touched only from tasks needs no further locking. Post never blocks;
// the queue is unbounded.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
	done   chan struct{}
	log    *slog.Logger
}

// NewLoop starts a loop goroutine.
func NewLoop(logger *slog.Logger) *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		log:  logger.With("component", "dispatch"),
	}
	go l.run()
	return l
}

// Post enqueues fn. It reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Flush blocks until every task posted before the call has run. Calling it
// from a task deadlocks.
func (l *Loop) Flush() {
	done := make(chan struct{})
	if !l.Post(func() { close(done) }) {
		return
	}
	select {
	case <-done:
	case <-l.done:
	}
}

// Close drains the queued tasks and stops the loop. Later posts are dropped.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)
	for range l.wake {
		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				closed := l.closed
				l.mu.Unlock()
				if closed {
					return
				}
				break
			}
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("panic recovered in dispatched task", "panic", r)
		}
	}()
	fn()
}
