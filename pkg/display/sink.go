package display

import (
	"image"

	pdisplay "periph.io/x/conn/v3/display"
)

// Sink accepts rendered frames. Implementations own the panel hardware
// and release it on Close.
type Sink interface {
	Push(frame *image.RGBA) error
	Close() error
}

// NopSink discards frames. Used when the device has no panel attached
// or the panel failed to initialize; the clock keeps running blind.
type NopSink struct{}

func (NopSink) Push(*image.RGBA) error { return nil }
func (NopSink) Close() error           { return nil }

// DrawerSink adapts any periph display device to the Sink interface.
type DrawerSink struct {
	Dev pdisplay.Drawer
}

func (s DrawerSink) Push(frame *image.RGBA) error {
	return s.Dev.Draw(s.Dev.Bounds(), frame, image.Point{})
}

func (s DrawerSink) Close() error {
	return s.Dev.Halt()
}
