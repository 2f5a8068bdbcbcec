package site

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
)

const (
	gridGap        = 32
	gridCardHeight = 420
	gridTitleSpace = 180
	gridMaxWidth   = 1200
)

// ProjectGrid is the classic works section: cards in a responsive grid that
// reveal with the section.
type ProjectGrid struct {
	pc      *folio.PageContext
	fonts   *Fonts
	section *Section
	modal   *ProjectModal

	projects []content.Project
	win      *folio.Window
	hover    int
}

// NewProjectGrid creates the grid for sec.
func NewProjectGrid(pc *folio.PageContext, fonts *Fonts, sec *Section, projects []content.Project, modal *ProjectModal) *ProjectGrid {
	return &ProjectGrid{pc: pc, fonts: fonts, section: sec, modal: modal, projects: projects, hover: -1}
}

func (g *ProjectGrid) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "project-grid", Depth: folio.DepthContent, Pointer: folio.PointerTarget}
}

// Mount attaches the works section's reveal.
func (g *ProjectGrid) Mount(s *folio.Session) error {
	g.win = s.Window()
	if g.section.reveal != nil {
		g.section.reveal.Attach(s)
	}
	return nil
}

// SetProjects replaces the cards.
func (g *ProjectGrid) SetProjects(ps []content.Project) {
	g.projects = ps
	g.hover = -1
}

// Columns returns 3 columns on wide viewports, 2 below 1024px and 1 below
// 768px.
func (g *ProjectGrid) Columns() int {
	vw, _ := g.win.Size()
	switch {
	case vw < 768:
		return 1
	case vw < 1024:
		return 2
	default:
		return 3
	}
}

// Height returns the section height the grid needs.
func (g *ProjectGrid) Height() float64 {
	cols := g.Columns()
	rows := (len(g.projects) + cols - 1) / cols
	return gridTitleSpace + float64(rows)*(gridCardHeight+gridGap) + sectionPadTop
}

// CardRect returns card i's screen rectangle, including the reveal offset.
func (g *ProjectGrid) CardRect(i int) folio.Rect {
	vw, _ := g.win.Size()
	cols := g.Columns()
	width := min(float64(vw)-64, gridMaxWidth)
	cw := (width - float64(cols-1)*gridGap) / float64(cols)
	left := (float64(vw) - width) / 2
	col, row := i%cols, i/cols
	return folio.Rect{
		X:      left + float64(col)*(cw+gridGap),
		Y:      g.section.ContentY(g.win.ScrollY()) + gridTitleSpace + float64(row)*(gridCardHeight+gridGap),
		Width:  cw,
		Height: gridCardHeight,
	}
}

// CardAt returns the index of the card under (x, y), or -1.
func (g *ProjectGrid) CardAt(x, y float64) int {
	if g.section.Opacity() <= 0 {
		return -1
	}
	for i := range g.projects {
		if g.CardRect(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

// HitTest claims the cards.
func (g *ProjectGrid) HitTest(x, y float64) bool { return g.CardAt(x, y) >= 0 }

// Hovered reports whether (x, y) is over a card.
func (g *ProjectGrid) Hovered(x, y float64) bool { return g.CardAt(x, y) >= 0 }

// HandlePointer tracks the hovered card and opens the modal on a press.
func (g *ProjectGrid) HandlePointer(ev *folio.Event) {
	i := g.CardAt(ev.X, ev.Y)
	switch ev.Type {
	case folio.EventPointerMove:
		g.hover = i
	case folio.EventPointerDown:
		if i >= 0 && g.modal != nil {
			g.modal.Open(g.projects[i])
			ev.Consume()
		}
	}
}

// Update steps the section reveal.
func (g *ProjectGrid) Update(f folio.Frame) {
	g.section.step(f.Delta)
}

// Draw renders the heading and the cards.
func (g *ProjectGrid) Draw(dst *ebiten.Image) {
	a := g.section.Opacity()
	if a <= 0 {
		return
	}
	vw, vh := g.win.Size()
	pal := g.pc.Theme.Palette()
	y := g.section.ContentY(g.win.ScrollY())
	tw, _ := g.fonts.Display.Measure(g.section.Title)
	drawText(dst, g.fonts.Display, g.section.Title, (float64(vw)-tw)/2, y+sectionPadTop, pal.Primary.WithAlpha(a))
	for i, p := range g.projects {
		r := g.CardRect(i)
		if r.Y > float64(vh) || r.Y+r.Height < 0 {
			continue
		}
		drawCard(dst, r, p, i == g.hover, g.fonts, pal, a)
	}
}
