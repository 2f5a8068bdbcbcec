package site

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

const (
	toggleSize   = 48
	toggleMargin = 32
)

var moonTeal = folio.Hex(0x2dd4bf)

// ThemeToggle is the round button in the bottom-right corner that flips the
// page between dark and light.
type ThemeToggle struct {
	pc *folio.PageContext

	win    *folio.Window
	intro  [2]*folio.TweenGroup
	alpha  float64
	rise   float64
	scale  float64
	hover  bool
	icon   folio.LineBatch
}

// NewThemeToggle creates the toggle.
func NewThemeToggle(pc *folio.PageContext) *ThemeToggle {
	return &ThemeToggle{pc: pc, scale: 1}
}

func (t *ThemeToggle) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "theme-toggle", Depth: folio.DepthOverlay, Pointer: folio.PointerTarget}
}

// Mount starts the fade-in.
func (t *ThemeToggle) Mount(s *folio.Session) error {
	t.win = s.Window()
	t.intro[0] = folio.TweenValue(&t.alpha, 0, 1, 0.3, ease.OutQuad)
	t.intro[1] = folio.TweenValue(&t.rise, 20, 0, 0.3, ease.OutQuad)
	return nil
}

// Bounds returns the button's square on screen.
func (t *ThemeToggle) Bounds() folio.Rect {
	vw, vh := t.win.Size()
	return folio.Rect{
		X:      float64(vw) - toggleMargin - toggleSize,
		Y:      float64(vh) - toggleMargin - toggleSize + t.rise,
		Width:  toggleSize,
		Height: toggleSize,
	}
}

// HitTest claims the button.
func (t *ThemeToggle) HitTest(x, y float64) bool { return t.Bounds().Contains(x, y) }

// Hovered reports whether (x, y) is over the button.
func (t *ThemeToggle) Hovered(x, y float64) bool { return t.Bounds().Contains(x, y) }

// HandlePointer flips the theme on a press.
func (t *ThemeToggle) HandlePointer(ev *folio.Event) {
	switch ev.Type {
	case folio.EventPointerMove:
		t.hover = true
	case folio.EventPointerDown:
		t.pc.ToggleTheme()
		t.scale = 0.9
		ev.Consume()
	}
}

// Update advances the intro and eases the hover scale.
func (t *ThemeToggle) Update(f folio.Frame) {
	dt := float32(f.DeltaSeconds())
	t.intro[0].Update(dt)
	t.intro[1].Update(dt)
	if p, ok := t.win.Pointer(); !ok || !t.Bounds().Contains(p.X, p.Y) {
		t.hover = false
	}
	target := 1.0
	if t.hover {
		target = 1.1
	}
	t.scale = folio.Damp(t.scale, target, 0.2, 0.001)
}

// Draw renders the button with a sun in dark mode and a moon in light.
func (t *ThemeToggle) Draw(dst *ebiten.Image) {
	if t.alpha <= 0 {
		return
	}
	b := t.Bounds()
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	r := toggleSize / 2 * t.scale
	a := t.alpha
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), folio.ColorWhite.WithAlpha(0.05*a).Premul(), true)
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), 1, folio.ColorWhite.WithAlpha(0.2*a).Premul(), true)

	if t.pc.Theme == folio.ThemeDark {
		// Sun: a disc with eight rays.
		c := folio.Hex(0xffd700).WithAlpha(a)
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(4*t.scale), c.Premul(), true)
		t.icon.Reset()
		for i := range 8 {
			s, co := math.Sincos(float64(i) * math.Pi / 4)
			in, out := 7*t.scale, 10*t.scale
			t.icon.Segment(folio.Vec2{X: cx + co*in, Y: cy + s*in}, folio.Vec2{X: cx + co*out, Y: cy + s*out}, 1.5, c)
		}
		t.icon.Draw(dst)
		return
	}
	// Moon: a disc with an offset bite in the button's fill.
	c := moonTeal.WithAlpha(a)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(9*t.scale), c.Premul(), true)
	bg := t.pc.Theme.Palette().Background.WithAlpha(a)
	vector.DrawFilledCircle(dst, float32(cx+4*t.scale), float32(cy-3*t.scale), float32(8*t.scale), bg.Premul(), true)
}
