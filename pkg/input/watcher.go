package input

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/chess"
)

// Poll cadence and the quiescent window after an accepted toggle. The
// window keeps one physical press from registering as several toggles.
const (
	DefaultPollInterval = 50 * time.Millisecond
	DefaultDebounce     = 500 * time.Millisecond
)

// TurnSink receives turn signals. It reports whether the signal
// actually switched the turn.
type TurnSink interface {
	TurnSignal(side chess.Side) bool
}

// Watcher polls the button reader and forwards presses to the sink.
// Debouncing is the watcher's job: after an accepted toggle it ignores
// the lines until an explicit suppress-until timestamp has passed.
type Watcher struct {
	reader Reader
	sink   TurnSink
	clock  clockwork.Clock
	logger *zap.Logger

	pollInterval time.Duration
	debounce     time.Duration

	suppressUntil time.Time
}

// NewWatcher creates a watcher with the default cadence.
func NewWatcher(reader Reader, sink TurnSink, clock clockwork.Clock, logger *zap.Logger) *Watcher {
	return &Watcher{
		reader:       reader,
		sink:         sink,
		clock:        clock,
		logger:       logger,
		pollInterval: DefaultPollInterval,
		debounce:     DefaultDebounce,
	}
}

// Run polls the buttons until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("button watcher stopped")
			return
		case <-ticker.Chan():
			w.pollOnce(w.clock.Now())
		}
	}
}

// pollOnce samples both lines once. A read failure counts as no signal
// for this cycle and never stops the loop.
func (w *Watcher) pollOnce(now time.Time) {
	if now.Before(w.suppressUntil) {
		return
	}

	white, black, err := w.reader.Read()
	if err != nil {
		w.logger.Debug("button read failed", zap.Error(err))
		return
	}

	switch {
	case white && w.sink.TurnSignal(chess.White):
		w.suppressUntil = now.Add(w.debounce)
	case black && w.sink.TurnSignal(chess.Black):
		w.suppressUntil = now.Add(w.debounce)
	}
}
