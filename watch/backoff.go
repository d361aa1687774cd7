package watch

import "time"

// Backoff doubles a reconnect delay up to a ceiling. Not safe for
// concurrent use; the watcher owns one per run loop.
type Backoff struct {
	base    time.Duration
	max     time.Duration
	current time.Duration
}

func NewBackoff(base, max time.Duration) *Backoff {
	return &Backoff{base: base, max: max, current: base}
}

// Next returns the delay to wait before the next attempt, then doubles it.
func (b *Backoff) Next() time.Duration {
	d := b.current
	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return d
}

// Reset drops back to the base delay. Called after a successful subscribe
// so one good connection wipes the penalty from earlier failures.
func (b *Backoff) Reset() {
	b.current = b.base
}
