package watch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"takeout_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource fails the first failures subscribes, then streams the
// given events and keeps the channel open until ctx is done.
type scriptedSource struct {
	mu       sync.Mutex
	failures int
	attempts int
	events   []model.OrderEvent
}

func (s *scriptedSource) Subscribe(ctx context.Context, filter string) (<-chan model.OrderEvent, error) {
	s.mu.Lock()
	s.attempts++
	fail := s.attempts <= s.failures
	s.mu.Unlock()

	if fail {
		return nil, errors.New("connection refused")
	}

	ch := make(chan model.OrderEvent)
	go func() {
		defer close(ch)
		for _, ev := range s.events {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
		<-ctx.Done()
	}()
	return ch, nil
}

func (s *scriptedSource) attemptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func TestWatcherDeliversEvents(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderPending)
	src := &scriptedSource{
		events: []model.OrderEvent{{Kind: model.EventInserted, New: &o1}},
	}

	var got atomic.Int32
	w := New(src, func(ev model.OrderEvent) {
		got.Add(1)
	}, Options{
		BackoffBase:  time.Millisecond,
		BackoffMax:   5 * time.Millisecond,
		PollInterval: time.Hour,
	})
	w.Start()
	defer w.Close()

	assert.Eventually(t, func() bool {
		return got.Load() == 1 && w.State() == StateSubscribed
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWatcherReconnectsAfterFailures(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderPending)
	src := &scriptedSource{
		failures: 3,
		events:   []model.OrderEvent{{Kind: model.EventInserted, New: &o1}},
	}

	var got atomic.Int32
	w := New(src, func(model.OrderEvent) {
		got.Add(1)
	}, Options{
		BackoffBase:  time.Millisecond,
		BackoffMax:   4 * time.Millisecond,
		PollInterval: time.Hour,
	})
	w.Start()
	defer w.Close()

	assert.Eventually(t, func() bool {
		return got.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, src.attemptCount(), 4)
	assert.Equal(t, StateSubscribed, w.State())
}

func TestWatcherResyncsOnSubscribe(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderConfirmed)
	src := &scriptedSource{}

	var fetches atomic.Int32
	var mu sync.Mutex
	var lastOrders []model.Order

	w := New(src, func(model.OrderEvent) {}, Options{
		BackoffBase:  time.Millisecond,
		BackoffMax:   5 * time.Millisecond,
		PollInterval: time.Hour,
		Fetch: func(ctx context.Context) ([]model.Order, error) {
			fetches.Add(1)
			return []model.Order{o1}, nil
		},
		OnOrders: func(orders []model.Order) {
			mu.Lock()
			lastOrders = orders
			mu.Unlock()
		},
	})
	w.Start()
	defer w.Close()

	assert.Eventually(t, func() bool {
		return fetches.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lastOrders, 1)
	assert.Equal(t, "ORD-AAAA1111", lastOrders[0].PublicCode)
}

func TestWatcherPollsWhileDisconnected(t *testing.T) {
	// never connects
	src := &scriptedSource{failures: 1 << 30}

	var fetches atomic.Int32
	w := New(src, func(model.OrderEvent) {}, Options{
		BackoffBase:  500 * time.Millisecond,
		BackoffMax:   500 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
		Fetch: func(ctx context.Context) ([]model.Order, error) {
			fetches.Add(1)
			return nil, nil
		},
	})
	w.Start()
	defer w.Close()

	assert.Eventually(t, func() bool {
		return fetches.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWatcherCloseStopsCallbacks(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderPending)
	src := &scriptedSource{
		events: []model.OrderEvent{{Kind: model.EventInserted, New: &o1}},
	}

	var got atomic.Int32
	w := New(src, func(model.OrderEvent) {
		got.Add(1)
	}, Options{
		BackoffBase:  time.Millisecond,
		BackoffMax:   5 * time.Millisecond,
		PollInterval: time.Hour,
	})
	w.Start()

	assert.Eventually(t, func() bool {
		return got.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	w.Close()
	assert.Equal(t, StateClosed, w.State())

	before := got.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, got.Load())
}
