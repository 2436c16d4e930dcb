package chess

import "fmt"

// FormatClockTime formats a remaining time in whole seconds as the
// zero-padded "MM:SS" string shown on the clock panels. Negative input
// is clamped to 00:00.
func FormatClockTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	minutes := seconds / 60
	secs := seconds % 60

	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
