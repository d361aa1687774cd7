package notify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
)

// Tone is one beep in an alert sequence.
type Tone struct {
	Frequency int
	Duration  time.Duration
}

// Alert sequences played by Sounder implementations. The rising triple is
// for new orders on the dashboard; the single mid tone acknowledges a
// confirmation on the customer side.
var (
	NewOrderTones = []Tone{
		{Frequency: 800, Duration: 150 * time.Millisecond},
		{Frequency: 1000, Duration: 150 * time.Millisecond},
		{Frequency: 1200, Duration: 200 * time.Millisecond},
	}
	ConfirmationTones = []Tone{
		{Frequency: 1000, Duration: 250 * time.Millisecond},
	}
)

// Sounder plays alert tones. TerminalSounder is the default; richer hosts
// plug in their own audio output, and tests use a fake.
type Sounder interface {
	NewOrderTone()
	ConfirmationTone()
}

// TerminalSounder renders each tone as a terminal bell, paced by the
// tone durations. Frequencies are kept in the sequence for implementations
// with real audio output.
type TerminalSounder struct {
	// Out defaults to os.Stdout.
	Out io.Writer
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

func (s *TerminalSounder) NewOrderTone()     { s.play(NewOrderTones) }
func (s *TerminalSounder) ConfirmationTone() { s.play(ConfirmationTones) }

func (s *TerminalSounder) play(seq []Tone) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	clock := s.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	for _, tone := range seq {
		fmt.Fprint(out, "\a")
		clock.Sleep(tone.Duration)
	}
}
