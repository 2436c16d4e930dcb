// Package chess defines the two-player entities shared across the controller.
package chess

// Side represents one of the two players on the clock.
type Side string

// The two sides of the board. White is the human player in the
// physical setup, Black is the bot opponent.
const (
	White Side = "w"
	Black Side = "b"
)

// Opp returns the opposite side for the given side.
func (s Side) Opp() Side {
	if s == White {
		return Black
	}

	return White
}

// String returns a human-readable name for logging.
func (s Side) String() string {
	if s == White {
		return "white"
	}

	return "black"
}
