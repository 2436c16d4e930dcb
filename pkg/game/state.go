package game

import "github.com/rpichess/clockd/pkg/chess"

// Defaults shown on the panels before the first start command arrives.
const (
	defaultSeconds    = 600
	defaultDifficulty = 800
)

// state is the authoritative game state. It is owned exclusively by the
// Controller and mutated only under its mutex.
type state struct {
	activeSide     chess.Side
	whiteRemaining int // seconds
	blackRemaining int
	active         bool
	difficulty     int // displayed ELO, never consumed by the clock
}

// Snapshot is a read-only projection of the game state handed to
// observers. Copies are safe to retain and read without locking.
type Snapshot struct {
	ActiveSide     chess.Side
	WhiteRemaining int
	BlackRemaining int
	Active         bool
	Difficulty     int
}

func newState() state {
	return state{
		activeSide:     chess.White,
		whiteRemaining: defaultSeconds,
		blackRemaining: defaultSeconds,
		active:         false,
		difficulty:     defaultDifficulty,
	}
}

func (s state) snapshot() Snapshot {
	return Snapshot{
		ActiveSide:     s.activeSide,
		WhiteRemaining: s.whiteRemaining,
		BlackRemaining: s.blackRemaining,
		Active:         s.active,
		Difficulty:     s.difficulty,
	}
}
