package effects

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

const (
	// hoverScale is the cursor's scale while over an interactive element.
	hoverScale = 1.5
	themeFade  = 0.3
)

// Cursor draws a ring that follows the pointer. It hides when the pointer
// leaves the window and springs up to 1.5x while the page reports a hover.
type Cursor struct {
	Radius float64

	pc      *folio.PageContext
	ring    *folio.Node
	spring  folio.Spring
	recolor *folio.TweenGroup
	pos     folio.Vec2
	visible bool
}

// NewCursor creates a cursor reading hover state from pc.
func NewCursor(pc *folio.PageContext) *Cursor {
	return &Cursor{Radius: 10, pc: pc}
}

// Layer returns the cursor's overlay layer. It observes pointer input.
func (c *Cursor) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "cursor", Depth: folio.DepthOverlay, Pointer: folio.PointerObserve}
}

// Mount builds the ring.
func (c *Cursor) Mount(s *folio.Session) error {
	c.ring = folio.NewCircle("cursor", c.Radius, 2, c.pc.Theme.Palette().Primary)
	s.Own(c.ring)
	c.spring = folio.Spring{Stiffness: 150, Damping: 15, Mass: 0.1, Value: 1}
	if p, inside := s.Window().Pointer(); inside {
		c.pos, c.visible = p, true
	}
	s.Listen(folio.EventPointerLeave, func(*folio.Event) { c.visible = false })
	c.pc.OnTheme(s, func(t folio.Theme) {
		c.recolor = folio.TweenColor(c.ring, t.Palette().Primary, themeFade, ease.OutQuad)
	})
	return nil
}

// HandlePointer tracks the pointer.
func (c *Cursor) HandlePointer(ev *folio.Event) {
	c.pos = folio.Vec2{X: ev.X, Y: ev.Y}
	c.visible = true
}

// Update moves the ring, steps the hover spring, and fades the ring toward
// the current theme color.
func (c *Cursor) Update(f folio.Frame) {
	if c.recolor != nil {
		c.recolor.Update(float32(f.DeltaSeconds()))
	}
	target := 1.0
	if c.pc.Hovering {
		target = hoverScale
	}
	s := c.spring.Step(target, f.Delta)
	c.ring.SetScale(s, s)
	c.ring.SetPosition(c.pos.X, c.pos.Y)
	c.ring.Visible = c.visible
}

// Draw renders the ring.
func (c *Cursor) Draw(dst *ebiten.Image) {
	c.ring.Draw(dst)
}

// Scale returns the ring's current scale.
func (c *Cursor) Scale() float64 {
	return c.spring.Value
}

// Visible reports whether the ring is shown.
func (c *Cursor) Visible() bool {
	return c.visible
}

// Position returns the ring's center.
func (c *Cursor) Position() folio.Vec2 {
	return c.pos
}
