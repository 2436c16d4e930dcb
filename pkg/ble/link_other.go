//go:build !linux

package ble

import (
	"errors"

	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/commands"
)

const DefaultAdvertisingName = "Chess_RPi"

// Link is unavailable off-device; peripheral mode needs BlueZ.
type Link struct{}

func NewLink(string, commands.Starter, *zap.Logger) (*Link, error) {
	return nil, errors.New("BLE peripheral mode requires linux")
}

func (*Link) Close() error { return nil }
