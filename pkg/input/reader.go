// Package input reads the two physical turn-switch buttons and turns
// presses into controller signals. The hardware is hidden behind the
// Reader interface; the real implementation uses the Linux GPIO lines
// through periph.io, and a stub keeps desktop builds runnable.
package input

// Default BCM pin assignment on the device.
const (
	DefaultWhitePin = 19
	DefaultBlackPin = 5
)

// Reader samples the two button lines. A line reads true when the
// button is held down (after any configured logic inversion).
type Reader interface {
	// Read returns the white and black button states.
	Read() (white, black bool, err error)

	// Close releases the underlying pins.
	Close() error
}
