// Package game owns the chess clock state machine: one GameState,
// mutated by the timer tick, the physical turn buttons and the remote
// start command, all serialized on a single mutex.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/chess"
	"github.com/rpichess/clockd/pkg/events"
)

// Controller runs the dual clock. Tick, TurnSignal and StartGame may be
// called concurrently from the timer loop, the button watcher and the
// wireless link; each executes atomically against the others. Every
// mutation publishes a Snapshot so observers never read live state.
type Controller struct {
	mu    sync.Mutex
	state state

	clock     clockwork.Clock
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewController creates an idle controller with default display times.
// In production pass clockwork.NewRealClock(); tests use a FakeClock.
func NewController(clock clockwork.Clock, publisher *events.Publisher, logger *zap.Logger) *Controller {
	return &Controller{
		state:     newState(),
		clock:     clock,
		publisher: publisher,
		logger:    logger,
	}
}

// StartGame resets the whole game: both clocks to minutes*60 seconds,
// white to move, game active. It is always a full reset, never a
// resume, even when a game is already running.
func (c *Controller) StartGame(difficulty, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("start game: minutes must be positive, got %d", minutes)
	}
	if difficulty <= 0 {
		return fmt.Errorf("start game: difficulty must be positive, got %d", difficulty)
	}

	c.mu.Lock()
	c.state.difficulty = difficulty
	c.state.whiteRemaining = minutes * 60
	c.state.blackRemaining = minutes * 60
	c.state.activeSide = chess.White
	c.state.active = true
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.logger.Info("new game",
		zap.Int("minutes", minutes),
		zap.Int("elo", difficulty))

	c.publisher.Publish(events.Event{Type: events.EventGameStarted, Payload: snap})

	return nil
}

// Tick advances the clock by one second. While a game is active it
// decrements the active side's remaining time, flooring at zero, and
// deactivates the game the instant either side reaches zero. It always
// publishes, even when idle, so the display keeps showing the
// waiting-for-connection banner.
func (c *Controller) Tick() {
	c.mu.Lock()

	timeUp := false
	if c.state.active {
		if c.state.activeSide == chess.White {
			if c.state.whiteRemaining > 0 {
				c.state.whiteRemaining--
			}
		} else {
			if c.state.blackRemaining > 0 {
				c.state.blackRemaining--
			}
		}

		if c.state.whiteRemaining <= 0 || c.state.blackRemaining <= 0 {
			c.state.active = false
			timeUp = true
		}
	}

	snap := c.state.snapshot()
	c.mu.Unlock()

	if timeUp {
		c.logger.Info("time expired", zap.String("side", snap.ActiveSide.String()))
		c.publisher.Publish(events.Event{Type: events.EventTimeUp, Payload: snap})
		return
	}

	c.publisher.Publish(events.Event{Type: events.EventClockTick, Payload: snap})
}

// TurnSignal hands the turn to the opponent when the pressed button
// belongs to the side currently on move. Any other press, including any
// press while no game is active, is a no-op. It reports whether the
// press was accepted so the input loop can debounce accepted toggles.
func (c *Controller) TurnSignal(side chess.Side) bool {
	c.mu.Lock()

	if !c.state.active || c.state.activeSide != side {
		c.mu.Unlock()
		return false
	}

	c.state.activeSide = side.Opp()
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.logger.Debug("turn switched", zap.String("to", snap.ActiveSide.String()))
	c.publisher.Publish(events.Event{Type: events.EventTurnSwitched, Payload: snap})

	return true
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.snapshot()
}

// Run drives the one-second tick loop until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	ticker := c.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("timer loop stopped")
			return
		case <-ticker.Chan():
			c.Tick()
		}
	}
}
