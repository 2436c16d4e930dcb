// Package config holds the fixed external wiring of the device:
// button pins, display orientation, wireless identity. Values come
// from compiled defaults with environment overrides (the .env file on
// the device is loaded by main before this runs).
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config are the recognized options.
type Config struct {
	Debug bool
	Port  string // websocket/health listen port

	WhiteButtonPin int // BCM numbering
	BlackButtonPin int
	InvertButtons  bool // set when the switches are wired pull-up

	DisplayRotation int // quarter turns; panel is mounted upside down
	FramebufferPath string

	AdvertisingName string // BLE GAP name
}

// Default returns the wiring of the production device.
func Default() *Config {
	return &Config{
		Port:            "8080",
		WhiteButtonPin:  19,
		BlackButtonPin:  5,
		DisplayRotation: 2,
		FramebufferPath: "/dev/fb0",
		AdvertisingName: "Chess_RPi",
	}
}

// Load builds the config from defaults plus environment overrides.
func Load() (*Config, error) {
	c := Default()

	var err error
	if c.WhiteButtonPin, err = intEnv("WHITE_BUTTON_PIN", c.WhiteButtonPin); err != nil {
		return nil, err
	}
	if c.BlackButtonPin, err = intEnv("BLACK_BUTTON_PIN", c.BlackButtonPin); err != nil {
		return nil, err
	}
	if c.DisplayRotation, err = intEnv("DISPLAY_ROTATION", c.DisplayRotation); err != nil {
		return nil, err
	}
	if c.InvertButtons, err = boolEnv("INVERT_BUTTONS", c.InvertButtons); err != nil {
		return nil, err
	}

	if v := os.Getenv("ADVERTISING_NAME"); v != "" {
		c.AdvertisingName = v
	}
	if v := os.Getenv("FRAMEBUFFER_PATH"); v != "" {
		c.FramebufferPath = v
	}
	if v := os.Getenv("LISTEN_PORT"); v != "" {
		c.Port = v
	}

	return c, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}

	return b, nil
}
