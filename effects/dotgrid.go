package effects

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
)

const (
	gridSpacing = 30
	gridExtra   = 15
	gridSpeed   = 5
)

// DotGrid is the showcase backdrop: a black field of neon dots that slides
// left as the showcase progresses, wrapping every 30px.
type DotGrid struct {
	Color folio.Color

	win      *folio.Window
	progress float64
	top      float64
	dots     folio.LineBatch
}

// NewDotGrid creates the grid.
func NewDotGrid() *DotGrid {
	return &DotGrid{Color: neonGreen}
}

// Layer returns the grid's layer. It sits with the content it backs.
func (g *DotGrid) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "dot-grid", Depth: folio.DepthContent}
}

// Mount records the window.
func (g *DotGrid) Mount(s *folio.Session) error {
	g.win = s.Window()
	return nil
}

// SetProgress sets the showcase progress in [0, 1].
func (g *DotGrid) SetProgress(p float64) {
	g.progress = folio.Clamp01(p)
}

// Place moves the grid's top edge to screen y. The grid is one viewport
// tall.
func (g *DotGrid) Place(y float64) {
	g.top = y
}

// Offset returns the current horizontal shift in pixels, in [0, 30).
func (g *DotGrid) Offset() float64 {
	vw, _ := g.win.Size()
	o := math.Mod(g.progress*float64(vw)*gridSpeed, gridSpacing)
	if o < 0 {
		o += gridSpacing
	}
	return o
}

// Columns returns the number of dot columns drawn for the current width.
func (g *DotGrid) Columns() int {
	vw, _ := g.win.Size()
	return int(math.Ceil(float64(vw)/gridSpacing)) + gridExtra
}

// Update is a no-op; the grid is driven by SetProgress.
func (g *DotGrid) Update(folio.Frame) {}

// Draw fills the backdrop and the dots.
func (g *DotGrid) Draw(dst *ebiten.Image) {
	vw, vh := g.win.Size()
	if g.top >= float64(vh) || g.top+float64(vh) <= 0 {
		return
	}
	vector.DrawFilledRect(dst, 0, float32(g.top), float32(vw), float32(vh), folio.Color{A: 1}.Premul(), false)
	off := g.Offset()
	rows := int(math.Ceil(float64(vh)/gridSpacing)) + 1
	g.dots.Reset()
	for c := range g.Columns() {
		x := float64(c)*gridSpacing - off
		if x > float64(vw)+gridSpacing {
			break
		}
		for r := range rows {
			g.dots.Dot(folio.Vec2{X: x, Y: g.top + float64(r)*gridSpacing}, 2, g.Color)
		}
	}
	g.dots.Draw(dst)
}
