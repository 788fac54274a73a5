// Package pubsub holds a single value behind a reducer and broadcasts every
// new value to its subscribers.
package pubsub

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// Reducer computes the next state for an action. A non-nil error rejects the
// action and leaves the state untouched.
type Reducer[S, A any] func(state S, action A) (S, error)

// Container owns one slice of state.
//
// Dispatches are serialized: each one is applied and broadcast before the
// next begins. Subscribers are called synchronously on the dispatching
// goroutine and must not dispatch to the same container.
type Container[S, A any] struct {
	name   string
	reduce Reducer[S, A]
	logger *log.Logger

	dispatchMu sync.Mutex

	mu       sync.RWMutex
	state    S
	subs     map[string]func(S)
	watchers map[string]func()
	closed   bool
}

// New creates a container holding initial.
func New[S, A any](name string, initial S, reduce Reducer[S, A]) *Container[S, A] {
	l := log.New("pubsub")
	return &Container[S, A]{
		name:     name,
		reduce:   reduce,
		logger:   l,
		state:    initial,
		subs:     make(map[string]func(S)),
		watchers: make(map[string]func()),
	}
}

// Name identifies the slice in logs and stream frames.
func (c *Container[S, A]) Name() string { return c.name }

// SetLogger replaces the container's logger.
func (c *Container[S, A]) SetLogger(l *log.Logger) { c.logger = l }

// Get returns the current value. Callers must treat it as read-only.
func (c *Container[S, A]) Get() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Dispatcher returns the write accessor for this container.
func (c *Container[S, A]) Dispatcher() func(A) error {
	return c.Dispatch
}

// Dispatch applies action and notifies every subscriber with the new value.
// On a closed container it does nothing.
func (c *Container[S, A]) Dispatch(action A) error {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debugf("%s: dispatch %T after close ignored", c.name, action)
		return nil
	}
	next, err := c.reduce(c.state, action)
	if err != nil {
		c.mu.Unlock()
		c.logger.Errorf("%s: %T rejected: %v", c.name, action, err)
		return err
	}
	c.state = next
	subs := make([]func(S), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Subscribe registers fn for every future value. The returned func removes it.
func (c *Container[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	id := uuid.NewString()

	c.mu.Lock()
	if !c.closed {
		c.subs[id] = fn
	}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Watch streams values on a channel until ctx ends or the container closes.
// The current value is delivered first; a slow reader only sees the latest.
func (c *Container[S, A]) Watch(ctx context.Context) <-chan S {
	out := make(chan S, 1)
	var once sync.Once
	var mu sync.Mutex
	done := false

	push := func(v S) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		select {
		case <-out:
		default:
		}
		out <- v
	}
	stopped := make(chan struct{})
	stop := func() {
		once.Do(func() {
			mu.Lock()
			done = true
			close(out)
			mu.Unlock()
			close(stopped)
		})
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		stop()
		return out
	}
	id := uuid.NewString()
	c.subs[id] = push
	c.watchers[id] = stop
	out <- c.state
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
		}
		c.mu.Lock()
		delete(c.subs, id)
		delete(c.watchers, id)
		c.mu.Unlock()
		stop()
	}()
	return out
}

// Override opens a nested scope: an independent container with the same
// reducer starting from initial. Dispatching to it never reaches c.
func (c *Container[S, A]) Override(initial S) *Container[S, A] {
	child := New(c.name, initial, c.reduce)
	child.logger = c.logger
	return child
}

// Close drops every subscriber and ends every Watch. Later dispatches are ignored.
func (c *Container[S, A]) Close() {
	c.mu.Lock()
	c.closed = true
	c.subs = make(map[string]func(S))
	watchers := c.watchers
	c.watchers = make(map[string]func())
	c.mu.Unlock()

	for _, stop := range watchers {
		stop()
	}
}
