package input

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/chess"
)

// fakeReader scripts the button lines for one poll at a time.
type fakeReader struct {
	white, black bool
	err          error
	closed       bool
}

func (r *fakeReader) Read() (bool, bool, error) { return r.white, r.black, r.err }
func (r *fakeReader) Close() error              { r.closed = true; return nil }

// recordingSink records signals and accepts them according to a script.
type recordingSink struct {
	mu      sync.Mutex
	accept  bool
	signals []chess.Side
}

func (s *recordingSink) TurnSignal(side chess.Side) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = append(s.signals, side)
	return s.accept
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.signals)
}

func newTestWatcher(reader Reader, sink TurnSink) (*Watcher, clockwork.Clock) {
	clock := clockwork.NewFakeClock()
	return NewWatcher(reader, sink, clock, zap.NewNop()), clock
}

func TestPollForwardsPress(t *testing.T) {
	reader := &fakeReader{white: true}
	sink := &recordingSink{accept: true}
	w, clock := newTestWatcher(reader, sink)

	w.pollOnce(clock.Now())

	assert.Equal(t, []chess.Side{chess.White}, sink.signals)
}

func TestAcceptedToggleStartsSuppressWindow(t *testing.T) {
	reader := &fakeReader{black: true}
	sink := &recordingSink{accept: true}
	w, clock := newTestWatcher(reader, sink)

	now := clock.Now()
	w.pollOnce(now)
	assert.Len(t, sink.signals, 1)

	// Still held down: polls inside the window must not re-signal.
	w.pollOnce(now.Add(50 * time.Millisecond))
	w.pollOnce(now.Add(450 * time.Millisecond))
	assert.Len(t, sink.signals, 1)

	// Window elapsed: the line is evaluated again.
	w.pollOnce(now.Add(500 * time.Millisecond))
	assert.Len(t, sink.signals, 2)
}

func TestRejectedPressDoesNotSuppress(t *testing.T) {
	reader := &fakeReader{white: true}
	sink := &recordingSink{accept: false}
	w, clock := newTestWatcher(reader, sink)

	now := clock.Now()
	w.pollOnce(now)
	w.pollOnce(now.Add(50 * time.Millisecond))

	// A press for the wrong side keeps being offered each cycle; the
	// controller keeps refusing it.
	assert.Len(t, sink.signals, 2)
}

func TestReadErrorIsNoSignal(t *testing.T) {
	reader := &fakeReader{white: true, err: errors.New("line glitch")}
	sink := &recordingSink{accept: true}
	w, clock := newTestWatcher(reader, sink)

	w.pollOnce(clock.Now())

	assert.Empty(t, sink.signals)
}

func TestIdleLinesProduceNothing(t *testing.T) {
	reader := &fakeReader{}
	sink := &recordingSink{accept: true}
	w, clock := newTestWatcher(reader, sink)

	for i := 0; i < 10; i++ {
		w.pollOnce(clock.Now().Add(time.Duration(i) * 50 * time.Millisecond))
	}

	assert.Empty(t, sink.signals)
}

func TestRunPollsOnTicker(t *testing.T) {
	fc := clockwork.NewFakeClock()
	reader := &fakeReader{white: true}
	sink := &recordingSink{accept: true}
	w := NewWatcher(reader, sink, fc, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	fc.BlockUntil(1)
	fc.Advance(DefaultPollInterval)

	assert.Eventually(t, func() bool {
		return sink.count() == 1
	}, time.Second, 5*time.Millisecond)
}
