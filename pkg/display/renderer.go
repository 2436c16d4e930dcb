// Package display renders clock snapshots into frames and pushes them
// to whatever panel the device carries. The clock never depends on a
// frame arriving; a broken or absent panel degrades to log output only.
package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/rpichess/clockd/pkg/chess"
	"github.com/rpichess/clockd/pkg/game"
)

// Panel geometry. The layout is two stacked player panels on a
// 480x320 TFT.
const (
	FrameWidth  = 480
	FrameHeight = 320

	borderWidth = 5
)

var (
	whitePanel = image.Rect(10, 10, 470, 150)
	blackPanel = image.Rect(10, 160, 470, 300)
)

// Palette of the wooden-clock look.
var (
	colorBackground = color.RGBA{0x46, 0x3B, 0x2A, 0xFF}
	colorText       = color.RGBA{0x41, 0x2C, 0x28, 0xFF}
	colorPanel      = color.RGBA{0xD1, 0x81, 0x64, 0xFF}
	colorActive     = color.RGBA{0xC6, 0xA6, 0x64, 0xFF}
	colorAlert      = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
)

// Renderer composes snapshot frames. It is safe for use from a single
// goroutine; the Subscriber serializes access.
type Renderer struct {
	big   font.Face // clock digits
	small font.Face // labels and the idle banner
}

// NewRenderer loads the two typefaces.
func NewRenderer() (*Renderer, error) {
	big, err := newFace(gobold.TTF, 70)
	if err != nil {
		return nil, fmt.Errorf("load bold face: %w", err)
	}

	small, err := newFace(goregular.TTF, 25)
	if err != nil {
		return nil, fmt.Errorf("load regular face: %w", err)
	}

	return &Renderer{big: big, small: small}, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render draws a full frame for the snapshot: background, one bordered
// panel per side with label and MM:SS time, the active side's panel
// outlined in gold, and the waiting-for-connection banner when no game
// is running.
func (r *Renderer) Render(snap game.Snapshot) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	r.drawPanel(frame, whitePanel, "GRACZ",
		chess.FormatClockTime(snap.WhiteRemaining),
		snap.Active && snap.ActiveSide == chess.White)

	r.drawPanel(frame, blackPanel, fmt.Sprintf("BOT [ELO %d]", snap.Difficulty),
		chess.FormatClockTime(snap.BlackRemaining),
		snap.Active && snap.ActiveSide == chess.Black)

	if !snap.Active {
		r.drawText(frame, r.small, colorAlert, 330, 15, "POLACZ...")
	}

	return frame
}

func (r *Renderer) drawPanel(frame *image.RGBA, rect image.Rectangle, label, clock string, active bool) {
	outline := colorText
	if active {
		outline = colorActive
	}

	draw.Draw(frame, rect, image.NewUniform(outline), image.Point{}, draw.Src)
	draw.Draw(frame, rect.Inset(borderWidth), image.NewUniform(colorPanel), image.Point{}, draw.Src)

	r.drawText(frame, r.small, colorText, rect.Min.X+20, rect.Min.Y+15, label)
	r.drawText(frame, r.big, colorText, rect.Min.X+140, rect.Min.Y+35, clock)
}

// drawText places s with its top-left corner at (x, y), converting to
// the baseline position the font drawer expects.
func (r *Renderer) drawText(frame *image.RGBA, face font.Face, c color.RGBA, x, y int, s string) {
	metrics := face.Metrics()
	d := font.Drawer{
		Dst:  frame,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+metrics.Ascent.Ceil()),
	}
	d.DrawString(s)
}
