package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpp(t *testing.T) {
	assert.Equal(t, Black, White.Opp())
	assert.Equal(t, White, Black.Opp())
}

func TestFormatClockTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{300, "05:00"},
		{305, "05:05"},
		{599, "09:59"},
		{600, "10:00"},
		{-7, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClockTime(tt.seconds))
	}
}
