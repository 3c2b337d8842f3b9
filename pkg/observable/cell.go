// Package observable provides typed current-value cells with subscriptions.
package observable

import "sync"

// Observable is the read side of a Cell handed to views.
type Observable[T any] interface {
	// Value returns the current value.
	Value() T
	// Subscribe calls fn with the current value and then with every new value
	// until the returned cancel func is called.
	Subscribe(fn func(T)) (cancel func())
}

// Cell holds a single current value. Writes are last-write-wins and
// subscribers are notified synchronously, in subscription order, outside the
// value lock. Deliveries are serialized per cell, so every subscriber sees
// values in write order and ends on the current one. A subscriber must not
// Set the cell it is subscribed to from inside its callback.
type Cell[T any] struct {
	notify sync.Mutex

	mu    sync.RWMutex
	value T
	subs  map[uint64]func(T)
	order []uint64
	next  uint64
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[uint64]func(T)),
	}
}

func (c *Cell[T]) Value() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value and notifies subscribers.
func (c *Cell[T]) Set(v T) {
	c.notify.Lock()
	defer c.notify.Unlock()

	c.mu.Lock()
	c.value = v
	fns := c.snapshot()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.notify.Lock()
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.order = append(c.order, id)
	v := c.value
	c.mu.Unlock()

	fn(v)
	c.notify.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			for i, o := range c.order {
				if o == id {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribers reports how many subscriptions are live.
func (c *Cell[T]) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}

func (c *Cell[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(c.order))
	for _, id := range c.order {
		fns = append(fns, c.subs[id])
	}
	return fns
}

var _ Observable[int] = (*Cell[int])(nil)
