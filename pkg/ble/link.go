//go:build linux

// Package ble exposes the start-game characteristic over Bluetooth Low
// Energy, the transport the companion app uses in the field. Writes
// carry the same text commands as the websocket link.
package ble

import (
	"fmt"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/rpichess/clockd/pkg/commands"
)

// Service and characteristic identities the companion app is paired
// with. Changing them breaks deployed apps.
const (
	serviceUUIDString        = "4fafc201-1fb5-459e-8fcc-c5c9c331914b"
	characteristicUUIDString = "beb5483e-36e1-4688-b7f5-ea07361b26a8"
)

// DefaultAdvertisingName is the GAP name the device shows up under.
const DefaultAdvertisingName = "Chess_RPi"

// Link is the advertising GATT peripheral.
type Link struct {
	adapter *bluetooth.Adapter
	adv     *bluetooth.Advertisement
	logger  *zap.Logger
}

// NewLink enables the adapter, registers the game service and starts
// advertising under the given name. Characteristic writes are parsed
// and dispatched to the starter; malformed writes are logged and
// dropped.
func NewLink(name string, starter commands.Starter, logger *zap.Logger) (*Link, error) {
	serviceUUID, err := bluetooth.ParseUUID(serviceUUIDString)
	if err != nil {
		return nil, fmt.Errorf("parse service UUID: %w", err)
	}

	characteristicUUID, err := bluetooth.ParseUUID(characteristicUUIDString)
	if err != nil {
		return nil, fmt.Errorf("parse characteristic UUID: %w", err)
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable bluetooth adapter: %w", err)
	}

	service := bluetooth.Service{
		UUID: serviceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID: characteristicUUID,
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicNotifyPermission,
				WriteEvent: func(_ bluetooth.Connection, _ int, value []byte) {
					raw := string(value)
					logger.Info("BLE write", zap.String("data", raw))

					cmd, err := commands.Parse(raw)
					if err != nil {
						logger.Warn("rejected BLE command", zap.Error(err))
						return
					}

					if err := starter.StartGame(cmd.Difficulty, cmd.Minutes); err != nil {
						logger.Warn("start command refused", zap.Error(err))
					}
				},
			},
		},
	}

	if err := adapter.AddService(&service); err != nil {
		return nil, fmt.Errorf("register GATT service: %w", err)
	}

	adv := adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    name,
		ServiceUUIDs: []bluetooth.UUID{serviceUUID},
	}); err != nil {
		return nil, fmt.Errorf("configure advertisement: %w", err)
	}

	if err := adv.Start(); err != nil {
		return nil, fmt.Errorf("start advertising: %w", err)
	}

	logger.Info("BLE advertising", zap.String("name", name))

	return &Link{adapter: adapter, adv: adv, logger: logger}, nil
}

// Close stops advertising.
func (l *Link) Close() error {
	return l.adv.Stop()
}
