// Package commands parses the text commands the companion app writes
// over the wireless link. Parsing is strict: anything malformed is
// rejected here and never reaches the game controller.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire format: START_GAME:ELO:<int>:TIME:<int>
const (
	verbStartGame = "START_GAME"
	fieldCount    = 5
)

// StartGame is a parsed, validated start command.
type StartGame struct {
	Difficulty int // requested opponent ELO
	Minutes    int // initial time per side
}

// Starter is the slice of the controller the transports dispatch into.
type Starter interface {
	StartGame(difficulty, minutes int) error
}

// Parse decodes a raw command string. The format is colon-delimited
// with fixed positional fields; field 2 is the difficulty and field 4
// the minutes. Both must be positive integers.
func Parse(raw string) (StartGame, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != fieldCount {
		return StartGame{}, fmt.Errorf("command %q: want %d fields, got %d", raw, fieldCount, len(parts))
	}

	if parts[0] != verbStartGame || parts[1] != "ELO" || parts[3] != "TIME" {
		return StartGame{}, fmt.Errorf("command %q: unknown shape", raw)
	}

	difficulty, err := strconv.Atoi(parts[2])
	if err != nil {
		return StartGame{}, fmt.Errorf("command %q: bad ELO field: %w", raw, err)
	}

	minutes, err := strconv.Atoi(parts[4])
	if err != nil {
		return StartGame{}, fmt.Errorf("command %q: bad TIME field: %w", raw, err)
	}

	if difficulty <= 0 {
		return StartGame{}, fmt.Errorf("command %q: ELO must be positive", raw)
	}
	if minutes <= 0 {
		return StartGame{}, fmt.Errorf("command %q: TIME must be positive", raw)
	}

	return StartGame{Difficulty: difficulty, Minutes: minutes}, nil
}
