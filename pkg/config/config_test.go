package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, 19, c.WhiteButtonPin)
	assert.Equal(t, 5, c.BlackButtonPin)
	assert.Equal(t, 2, c.DisplayRotation)
	assert.Equal(t, "Chess_RPi", c.AdvertisingName)
	assert.False(t, c.InvertButtons)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WHITE_BUTTON_PIN", "23")
	t.Setenv("BLACK_BUTTON_PIN", "24")
	t.Setenv("DISPLAY_ROTATION", "0")
	t.Setenv("INVERT_BUTTONS", "true")
	t.Setenv("ADVERTISING_NAME", "Chess_Dev")
	t.Setenv("LISTEN_PORT", "9090")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 23, c.WhiteButtonPin)
	assert.Equal(t, 24, c.BlackButtonPin)
	assert.Equal(t, 0, c.DisplayRotation)
	assert.True(t, c.InvertButtons)
	assert.Equal(t, "Chess_Dev", c.AdvertisingName)
	assert.Equal(t, "9090", c.Port)
}

func TestBadEnvValueIsRejected(t *testing.T) {
	t.Setenv("WHITE_BUTTON_PIN", "not-a-pin")

	_, err := Load()
	assert.Error(t, err)
}
