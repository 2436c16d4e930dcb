package display

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpichess/clockd/pkg/game"
)

// fakeDrawer implements the periph display.Drawer surface.
type fakeDrawer struct {
	draws  int
	halted bool
	last   image.Rectangle
}

func (d *fakeDrawer) ColorModel() color.Model { return color.RGBAModel }

func (d *fakeDrawer) Bounds() image.Rectangle {
	return image.Rect(0, 0, FrameWidth, FrameHeight)
}

func (d *fakeDrawer) Draw(r image.Rectangle, _ image.Image, _ image.Point) error {
	d.draws++
	d.last = r
	return nil
}

func (d *fakeDrawer) Halt() error { d.halted = true; return nil }

func (d *fakeDrawer) String() string { return "fake" }

func TestDrawerSinkPushesFullFrame(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	dev := &fakeDrawer{}
	sink := DrawerSink{Dev: dev}

	require.NoError(t, sink.Push(r.Render(game.Snapshot{})))
	assert.Equal(t, 1, dev.draws)
	assert.Equal(t, dev.Bounds(), dev.last)

	require.NoError(t, sink.Close())
	assert.True(t, dev.halted)
}

func TestNopSinkAcceptsAnything(t *testing.T) {
	assert.NoError(t, NopSink{}.Push(nil))
	assert.NoError(t, NopSink{}.Close())
}
