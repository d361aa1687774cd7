package watch

import (
	"context"
	"log"
	"sync"
	"time"

	"takeout_manager/model"

	"github.com/jonboulle/clockwork"
)

// State of the watcher's feed connection.
type State string

const (
	StateConnecting State = "connecting"
	StateSubscribed State = "subscribed"
	StateError      State = "error"
	StateClosed     State = "closed"
)

// Handler receives each change event in arrival order.
type Handler func(model.OrderEvent)

// Source is anything that can stream order events, normally a FeedSource.
type Source interface {
	Subscribe(ctx context.Context, filter string) (<-chan model.OrderEvent, error)
}

// Fetcher loads the current orders out of band, used to resync while the
// feed is down and right after it comes back.
type Fetcher func(ctx context.Context) ([]model.Order, error)

type Options struct {
	// Filter is a public order code, or empty for the admin feed.
	Filter string
	// BackoffBase is the first reconnect delay. Defaults to 2s.
	BackoffBase time.Duration
	// BackoffMax caps the reconnect delay. Defaults to 30s.
	BackoffMax time.Duration
	// PollInterval is the fallback re-fetch cadence while disconnected.
	// Defaults to 6s.
	PollInterval time.Duration
	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Fetch is optional; without it there is no fallback resync.
	Fetch Fetcher
	// OnOrders receives each fallback fetch result.
	OnOrders func([]model.Order)
}

// Watcher keeps a live subscription to the order feed, reconnecting with
// capped exponential backoff and falling back to polling while down.
type Watcher struct {
	source  Source
	handler Handler
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state State

	done chan struct{}
}

func New(source Source, handler Handler, opts Options) *Watcher {
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 2 * time.Second
	}
	if opts.BackoffMax <= 0 {
		opts.BackoffMax = 30 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 6 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		source:  source,
		handler: handler,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		state:   StateConnecting,
		done:    make(chan struct{}),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Close stops the watcher. No handler calls happen after Close returns
// and the run loop has drained.
func (w *Watcher) Close() {
	w.cancel()
	<-w.done
	w.setState(StateClosed)
}

func (w *Watcher) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *Watcher) run() {
	defer close(w.done)

	bo := NewBackoff(w.opts.BackoffBase, w.opts.BackoffMax)

	for {
		if w.ctx.Err() != nil {
			return
		}

		w.setState(StateConnecting)
		events, err := w.source.Subscribe(w.ctx, w.opts.Filter)
		if err != nil {
			log.Printf("Feed subscribe failed: %v", err)
			w.setState(StateError)
			if !w.waitRetry(bo.Next()) {
				return
			}
			continue
		}

		w.setState(StateSubscribed)
		bo.Reset()
		// The feed may have missed events while we were away.
		w.refetch()

		for ev := range events {
			if w.ctx.Err() != nil {
				return
			}
			w.handler(ev)
		}

		if w.ctx.Err() != nil {
			return
		}
		log.Printf("Feed stream closed, reconnecting")
		w.setState(StateError)
		if !w.waitRetry(bo.Next()) {
			return
		}
	}
}

// waitRetry sleeps out the backoff delay, polling the fetcher on the way
// so the order list stays roughly current while the feed is down.
func (w *Watcher) waitRetry(delay time.Duration) bool {
	deadline := w.opts.Clock.After(delay)
	poll := w.opts.Clock.After(w.opts.PollInterval)

	for {
		select {
		case <-w.ctx.Done():
			return false
		case <-deadline:
			return true
		case <-poll:
			w.refetch()
			poll = w.opts.Clock.After(w.opts.PollInterval)
		}
	}
}

func (w *Watcher) refetch() {
	if w.opts.Fetch == nil {
		return
	}
	orders, err := w.opts.Fetch(w.ctx)
	if err != nil {
		log.Printf("Fallback fetch failed: %v", err)
		return
	}
	if w.opts.OnOrders != nil {
		w.opts.OnOrders(orders)
	}
}
