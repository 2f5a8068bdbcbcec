package folio

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSCounter is an overlay effect that prints the frame and tick rates,
// refreshed every half second.
type FPSCounter struct {
	surface *Surface
	since   float64
	// Extra, when set, is appended below the rates.
	Extra func() string
}

// Mount allocates the counter's surface.
func (c *FPSCounter) Mount(s *Session) error {
	c.surface = s.NewSurface(160, 48)
	c.since = 0.5
	return nil
}

// Update redraws the text every half second.
func (c *FPSCounter) Update(f Frame) {
	c.since += f.DeltaSeconds()
	if c.since < 0.5 {
		return
	}
	c.since = 0
	img := c.surface.Image()
	if img == nil {
		return
	}
	img.Fill(color.RGBA{0, 0, 0, 128})
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if c.Extra != nil {
		msg += "\n" + c.Extra()
	}
	ebitenutil.DebugPrint(img, msg)
}

// Draw places the counter in the top-left corner.
func (c *FPSCounter) Draw(dst *ebiten.Image) {
	if !c.surface.Allocated() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, 4)
	dst.DrawImage(c.surface.Image(), op)
}
