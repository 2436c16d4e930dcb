//go:build !linux

package display

import (
	"errors"
	"image"
)

// FramebufferSink is only available on Linux; other platforms fall
// back to the NopSink.
type FramebufferSink struct{}

const DefaultFramebufferPath = ""

func NewFramebufferSink(string, int) (*FramebufferSink, error) {
	return nil, errors.New("framebuffer display requires linux")
}

func (*FramebufferSink) Push(*image.RGBA) error { return nil }
func (*FramebufferSink) Close() error           { return nil }
