//go:build linux && arm

package input

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// gpioReader reads the buttons through the Linux GPIO lines. Pins are
// addressed by their BCM numbers and configured with pull-down, so an
// open switch reads low.
type gpioReader struct {
	white  gpio.PinIO
	black  gpio.PinIO
	invert bool
}

// NewReader opens the two button pins. host.Init is safe to call more
// than once; the display shares the same host state.
func NewReader(whitePin, blackPin int, invert bool) (Reader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	white, err := openPin(whitePin)
	if err != nil {
		return nil, err
	}

	black, err := openPin(blackPin)
	if err != nil {
		white.Halt()
		return nil, err
	}

	return &gpioReader{white: white, black: black, invert: invert}, nil
}

func openPin(pin int) (gpio.PinIO, error) {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, fmt.Errorf("no such GPIO pin: %d", pin)
	}

	if err := p.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure GPIO%d as input: %w", pin, err)
	}

	return p, nil
}

func (r *gpioReader) Read() (bool, bool, error) {
	white := r.white.Read() == gpio.High
	black := r.black.Read() == gpio.High

	if r.invert {
		white, black = !white, !black
	}

	return white, black, nil
}

func (r *gpioReader) Close() error {
	werr := r.white.Halt()
	berr := r.black.Halt()
	if werr != nil {
		return werr
	}

	return berr
}
