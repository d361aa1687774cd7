package notify

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

// syncBuffer guards the buffer: play runs in a goroutine while the test
// drives the fake clock.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTerminalSounderPlaysSequences(t *testing.T) {
	clock := clockwork.NewFakeClock()
	out := &syncBuffer{}
	s := &TerminalSounder{Out: out, Clock: clock}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.NewOrderTone()
	}()

	// one bell per tone, paced by the tone durations
	for _, tone := range NewOrderTones {
		clock.BlockUntil(1)
		clock.Advance(tone.Duration)
	}
	<-done
	assert.Equal(t, "\a\a\a", out.String())
}

func TestTerminalSounderConfirmation(t *testing.T) {
	clock := clockwork.NewFakeClock()
	out := &syncBuffer{}
	s := &TerminalSounder{Out: out, Clock: clock}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.ConfirmationTone()
	}()

	clock.BlockUntil(1)
	clock.Advance(250 * time.Millisecond)
	<-done
	assert.Equal(t, "\a", out.String())
}
