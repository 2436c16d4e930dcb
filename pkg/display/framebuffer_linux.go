//go:build linux

package display

import (
	"fmt"
	"image"
	"os"
)

// FramebufferSink writes frames to a kernel framebuffer device. The
// ili9488 panel is driven by the fbtft overlay, which exposes it as
// /dev/fb0 in RGB565.
type FramebufferSink struct {
	f        *os.File
	rotation int
	buf      []byte
}

// DefaultFramebufferPath is where fbtft exposes the SPI panel.
const DefaultFramebufferPath = "/dev/fb0"

// NewFramebufferSink opens the framebuffer device. Rotation is in
// quarter turns; the panel is mounted upside down in the enclosure, so
// the production value is 2. Only 0 and 2 are supported because 1 and 3
// would change the framebuffer geometry.
func NewFramebufferSink(path string, rotation int) (*FramebufferSink, error) {
	if rotation != 0 && rotation != 2 {
		return nil, fmt.Errorf("unsupported display rotation %d (want 0 or 2)", rotation)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}

	return &FramebufferSink{
		f:        f,
		rotation: rotation,
		buf:      make([]byte, FrameWidth*FrameHeight*2),
	}, nil
}

// Push converts the frame to RGB565 and writes it in one shot.
func (s *FramebufferSink) Push(frame *image.RGBA) error {
	b := frame.Bounds()
	if b.Dx() != FrameWidth || b.Dy() != FrameHeight {
		return fmt.Errorf("frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), FrameWidth, FrameHeight)
	}

	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			sx, sy := x, y
			if s.rotation == 2 {
				sx = FrameWidth - 1 - x
				sy = FrameHeight - 1 - y
			}

			i := frame.PixOffset(sx, sy)
			r, g, bl := frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2]
			v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(bl>>3)

			o := (y*FrameWidth + x) * 2
			s.buf[o] = byte(v)
			s.buf[o+1] = byte(v >> 8)
		}
	}

	if _, err := s.f.WriteAt(s.buf, 0); err != nil {
		return fmt.Errorf("write framebuffer: %w", err)
	}

	return nil
}

func (s *FramebufferSink) Close() error {
	return s.f.Close()
}
