package pubsub

import (
	"context"
	"errors"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
)

type counterAction struct {
	delta int
}

var errNegative = errors.New("negative delta")

func reduceCounter(state int, a counterAction) (int, error) {
	if a.delta < 0 {
		return state, errNegative
	}
	return state + a.delta, nil
}

func newCounter(initial int) *Container[int, counterAction] {
	c := New("counter", initial, reduceCounter)
	l := log.New("pubsub-test")
	l.SetOutput(io.Discard)
	c.SetLogger(l)
	return c
}

func TestContainer_Dispatch(t *testing.T) {
	c := newCounter(1)

	var seen []int
	unsubscribe := c.Subscribe(func(v int) { seen = append(seen, v) })

	dispatch := c.Dispatcher()
	if err := dispatch(counterAction{delta: 2}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if err := dispatch(counterAction{delta: 3}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if got := c.Get(); got != 6 {
		t.Errorf("Get() = %d, want 6", got)
	}
	if len(seen) != 2 || seen[0] != 3 || seen[1] != 6 {
		t.Errorf("subscriber saw %v, want [3 6]", seen)
	}

	t.Run("rejected action keeps state and is not broadcast", func(t *testing.T) {
		err := c.Dispatch(counterAction{delta: -1})
		if !errors.Is(err, errNegative) {
			t.Fatalf("Dispatch() error = %v, want errNegative", err)
		}
		if got := c.Get(); got != 6 {
			t.Errorf("Get() = %d, want 6", got)
		}
		if len(seen) != 2 {
			t.Errorf("subscriber called on rejected action: %v", seen)
		}
	})

	t.Run("unsubscribed callbacks are not called", func(t *testing.T) {
		unsubscribe()
		_ = c.Dispatch(counterAction{delta: 1})
		if len(seen) != 2 {
			t.Errorf("subscriber called after unsubscribe: %v", seen)
		}
	})
}

func TestContainer_Override(t *testing.T) {
	parent := newCounter(10)
	child := parent.Override(100)

	var parentCalls int
	parent.Subscribe(func(int) { parentCalls++ })

	if err := child.Dispatch(counterAction{delta: 5}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if got := child.Get(); got != 105 {
		t.Errorf("child.Get() = %d, want 105", got)
	}
	if got := parent.Get(); got != 10 {
		t.Errorf("parent.Get() = %d, want 10", got)
	}
	if parentCalls != 0 {
		t.Errorf("parent subscribers notified %d times by child dispatch", parentCalls)
	}
}

func TestContainer_Close(t *testing.T) {
	c := newCounter(0)
	calls := 0
	c.Subscribe(func(int) { calls++ })

	c.Close()

	if err := c.Dispatch(counterAction{delta: 1}); err != nil {
		t.Errorf("Dispatch() after Close error = %v, want nil", err)
	}
	if got := c.Get(); got != 0 {
		t.Errorf("Get() = %d, want 0", got)
	}
	if calls != 0 {
		t.Errorf("subscriber called %d times after Close", calls)
	}
}

func TestContainer_Watch(t *testing.T) {
	c := newCounter(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := c.Watch(ctx)

	if v := receive(t, ch); v != 1 {
		t.Errorf("first value = %d, want 1", v)
	}

	_ = c.Dispatch(counterAction{delta: 1})
	_ = c.Dispatch(counterAction{delta: 1})
	if v := receive(t, ch); v != 3 {
		t.Errorf("latest value = %d, want 3", v)
	}

	t.Run("closes with the container", func(t *testing.T) {
		c.Close()
		select {
		case _, ok := <-ch:
			if ok {
				t.Error("expected closed channel")
			}
		case <-time.After(time.Second):
			t.Fatal("watch channel not closed")
		}
	})
}

func TestContainer_WatchContextCancel(t *testing.T) {
	c := newCounter(0)
	ctx, cancel := context.WithCancel(context.Background())
	ch := c.Watch(ctx)
	receive(t, ch)

	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

func TestContainer_CloseReleasesWatchers(t *testing.T) {
	before := runtime.NumGoroutine()

	c := newCounter(0)
	for i := 0; i < 20; i++ {
		receive(t, c.Watch(context.Background()))
	}
	c.Close()

	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("NumGoroutine() = %d after Close, want %d", runtime.NumGoroutine(), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.subs) != 0 || len(c.watchers) != 0 {
		t.Errorf("subs = %d, watchers = %d after Close, want none", len(c.subs), len(c.watchers))
	}
}

func receive(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
		return 0
	}
}
