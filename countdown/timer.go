// Package countdown drives the auto-confirm countdown shown to a customer
// after checkout. It is display only; the server confirms orders on its
// own schedule regardless of what this timer shows.
package countdown

import (
	"sync"
	"time"

	"takeout_manager/model"

	"github.com/jonboulle/clockwork"
)

type State string

const (
	// StateRunning counts down toward automatic confirmation.
	StateRunning State = "running"
	// StateConfirmed means the order moved past pending before the
	// countdown ran out.
	StateConfirmed State = "confirmed"
	// StateExpired means the countdown hit zero. Terminal: later status
	// events update the order display but never restart the timer.
	StateExpired State = "expired"
)

// DefaultTotal matches the server's auto-confirm window.
const DefaultTotal = 600 * time.Second

type Timer struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	total     time.Duration
	remaining time.Duration
	state     State
	stop      chan struct{}
	stopped   bool

	// OnConfirmed fires once when the countdown ends in confirmation.
	OnConfirmed func()
	// OnExpired fires once when the countdown hits zero.
	OnExpired func()
}

func New(total time.Duration, clock clockwork.Clock) *Timer {
	if total <= 0 {
		total = DefaultTotal
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{
		clock:     clock,
		total:     total,
		remaining: total,
		state:     StateRunning,
		stop:      make(chan struct{}),
	}
}

// Start begins the one-second tick loop.
func (t *Timer) Start() {
	go t.run()
}

func (t *Timer) run() {
	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.Chan():
			if t.tick() {
				return
			}
		}
	}
}

// tick decrements one second; reports whether the loop should end.
func (t *Timer) tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return true
	}

	t.remaining -= time.Second
	if t.remaining > 0 {
		return false
	}

	t.remaining = 0
	t.state = StateExpired
	cb := t.OnExpired
	if cb != nil {
		go cb()
	}
	return true
}

// ObserveStatus feeds an order status change into the timer. Any move off
// pending while running counts as confirmation. Once expired, nothing
// restarts the countdown.
func (t *Timer) ObserveStatus(status string) {
	t.mu.Lock()
	if status == model.OrderPending || t.state != StateRunning {
		t.mu.Unlock()
		return
	}

	t.state = StateConfirmed
	cb := t.OnConfirmed
	t.mu.Unlock()

	t.halt()
	if cb != nil {
		cb()
	}
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Progress reports elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := 1 - float64(t.remaining)/float64(t.total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Stop ends the tick loop without changing state.
func (t *Timer) Stop() {
	t.halt()
}

func (t *Timer) halt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.stopped {
		t.stopped = true
		close(t.stop)
	}
}
