// Package debounce coalesces bursts of triggers into a single delayed task.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Token identifies one Trigger call. Only the latest token is current.
type Token uint64

// Gate runs at most one task per quiescence window. Every Trigger supersedes
// the previous one: its timer is stopped if it has not fired yet, and the
// context handed to it is cancelled if it already started.
type Gate struct {
	delay time.Duration

	mu     sync.Mutex
	gen    Token
	timer  *time.Timer
	cancel context.CancelFunc
}

// New creates a gate with the given quiescence delay.
func New(delay time.Duration) *Gate {
	return &Gate{delay: delay}
}

// Delay returns the quiescence window.
func (g *Gate) Delay() time.Duration { return g.delay }

// Trigger schedules fn after the delay and returns its token. fn runs on a
// timer goroutine with a context derived from parent that is cancelled when
// the task is superseded.
func (g *Gate) Trigger(parent context.Context, fn func(ctx context.Context, token Token)) Token {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopLocked()
	g.gen++
	token := g.gen
	ctx, cancel := context.WithCancel(parent)
	g.cancel = cancel
	g.timer = time.AfterFunc(g.delay, func() {
		if !g.IsCurrent(token) {
			return
		}
		fn(ctx, token)
	})
	return token
}

// Cancel supersedes any pending or running task without scheduling a new one.
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.gen++
}

// IsCurrent reports whether token belongs to the latest Trigger and has not
// been cancelled since.
func (g *Gate) IsCurrent(token Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return token == g.gen
}

func (g *Gate) stopLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
