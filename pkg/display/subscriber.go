package display

import (
	"sync"

	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/events"
	"github.com/rpichess/clockd/pkg/game"
)

// After this many draw failures in a row the subscriber stops pushing
// frames for good. The state machine is unaffected either way.
const maxConsecutiveFailures = 3

// Subscriber listens for state-change events and draws each snapshot.
// Event handlers run concurrently, so draws are serialized here; the
// controller never waits on one.
type Subscriber struct {
	renderer *Renderer
	sink     Sink
	logger   *zap.Logger

	mu       sync.Mutex
	failures int
	disabled bool
}

// NewSubscriber wires a renderer to a sink.
func NewSubscriber(renderer *Renderer, sink Sink, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		renderer: renderer,
		sink:     sink,
		logger:   logger,
	}
}

// Attach subscribes to every controller event.
func (s *Subscriber) Attach(publisher *events.Publisher) {
	publisher.SubscribeAll(s.handle)
}

func (s *Subscriber) handle(e events.Event) {
	snap, ok := e.Payload.(game.Snapshot)
	if !ok {
		return
	}

	s.Draw(snap)
}

// Draw renders and pushes one snapshot, best effort. Failures are
// logged, counted, and after too many in a row the sink is abandoned.
func (s *Subscriber) Draw(snap game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return
	}

	s.logger.Debug("draw",
		zap.Int("white", snap.WhiteRemaining),
		zap.Int("black", snap.BlackRemaining),
		zap.String("active_side", snap.ActiveSide.String()),
		zap.Bool("active", snap.Active))

	if err := s.sink.Push(s.renderer.Render(snap)); err != nil {
		s.failures++
		s.logger.Error("draw failed", zap.Error(err), zap.Int("consecutive", s.failures))

		if s.failures >= maxConsecutiveFailures {
			s.disabled = true
			s.logger.Warn("display disabled after repeated draw failures")
		}
		return
	}

	s.failures = 0
}
