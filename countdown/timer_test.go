package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"takeout_manager/model"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestTimerCountsDown(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(3*time.Second, clock)
	timer.Start()
	defer timer.Stop()

	clock.BlockUntil(1)
	clock.Advance(time.Second)

	assert.Eventually(t, func() bool {
		return timer.Remaining() == 2*time.Second
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateRunning, timer.State())
	assert.InDelta(t, 1.0/3.0, timer.Progress(), 1e-9)
}

func TestTimerExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(2*time.Second, clock)

	var expired atomic.Bool
	timer.OnExpired = func() { expired.Store(true) }
	timer.Start()
	defer timer.Stop()

	clock.BlockUntil(1)
	clock.Advance(time.Second)
	clock.BlockUntil(1)
	clock.Advance(time.Second)

	assert.Eventually(t, func() bool {
		return timer.State() == StateExpired && expired.Load()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, time.Duration(0), timer.Remaining())
	assert.Equal(t, 1.0, timer.Progress())
}

func TestTimerConfirmsOnStatusChange(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(10*time.Second, clock)

	var confirmed atomic.Bool
	timer.OnConfirmed = func() { confirmed.Store(true) }
	timer.Start()

	timer.ObserveStatus(model.OrderConfirmed)

	assert.Equal(t, StateConfirmed, timer.State())
	assert.True(t, confirmed.Load())

	// a later status event doesn't change the outcome
	timer.ObserveStatus(model.OrderReady)
	assert.Equal(t, StateConfirmed, timer.State())
}

func TestTimerIgnoresPendingStatus(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(10*time.Second, clock)
	timer.Start()
	defer timer.Stop()

	timer.ObserveStatus(model.OrderPending)
	assert.Equal(t, StateRunning, timer.State())
}

func TestTimerExpiredIsTerminal(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(time.Second, clock)
	timer.Start()

	clock.BlockUntil(1)
	clock.Advance(time.Second)

	assert.Eventually(t, func() bool {
		return timer.State() == StateExpired
	}, time.Second, 5*time.Millisecond)

	// a late confirmation never restarts or flips the timer
	timer.ObserveStatus(model.OrderConfirmed)
	assert.Equal(t, StateExpired, timer.State())
}

func TestTimerDefaults(t *testing.T) {
	timer := New(0, nil)
	assert.Equal(t, DefaultTotal, timer.Remaining())
	assert.Equal(t, StateRunning, timer.State())
	assert.Zero(t, timer.Progress())
}
