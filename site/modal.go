package site

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/tanema/gween/ease"
)

const (
	modalMaxWidth = 672
	modalFade     = 0.3
	closeSize     = 22
)

// ProjectModal shows one project's details over the page. While open it
// takes every pointer event; a click outside the panel or on the close mark
// dismisses it.
type ProjectModal struct {
	pc    *folio.PageContext
	fonts *Fonts

	win     *folio.Window
	project *content.Project
	open    bool
	alpha   float64
	scale   float64
	tweens  []*folio.TweenGroup

	// OnClose is called once the modal has been dismissed.
	OnClose func()
}

// NewProjectModal creates a closed modal.
func NewProjectModal(pc *folio.PageContext, fonts *Fonts) *ProjectModal {
	return &ProjectModal{pc: pc, fonts: fonts, scale: 1}
}

func (m *ProjectModal) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "project-modal", Depth: folio.DepthOverlay, Pointer: folio.PointerTarget}
}

// Mount records the window.
func (m *ProjectModal) Mount(s *folio.Session) error {
	m.win = s.Window()
	return nil
}

// Open shows p, fading and scaling the panel in.
func (m *ProjectModal) Open(p content.Project) {
	m.project = &p
	m.open = true
	m.tweens = append(m.tweens[:0],
		folio.TweenValue(&m.alpha, m.alpha, 1, modalFade, ease.OutQuad),
		folio.TweenValue(&m.scale, 0.95, 1, modalFade, ease.OutQuad))
}

// Close fades the modal out.
func (m *ProjectModal) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.tweens = append(m.tweens[:0],
		folio.TweenValue(&m.alpha, m.alpha, 0, modalFade, ease.InQuad),
		folio.TweenValue(&m.scale, m.scale, 0.95, modalFade, ease.InQuad))
	if m.OnClose != nil {
		m.OnClose()
	}
}

// IsOpen reports whether the modal is showing.
func (m *ProjectModal) IsOpen() bool { return m.open }

// Project returns the project on display, or nil.
func (m *ProjectModal) Project() *content.Project { return m.project }

// HitTest claims the whole viewport while open.
func (m *ProjectModal) HitTest(x, y float64) bool { return m.open }

// Hovered reports whether (x, y) is over the close mark.
func (m *ProjectModal) Hovered(x, y float64) bool {
	return m.open && m.closeRect().Contains(x, y)
}

// HandlePointer consumes every event while open and closes on a click
// outside the panel or on the close mark.
func (m *ProjectModal) HandlePointer(ev *folio.Event) {
	if !m.open {
		return
	}
	ev.Consume()
	if ev.Type != folio.EventPointerDown {
		return
	}
	if !m.panel().Contains(ev.X, ev.Y) || m.closeRect().Contains(ev.X, ev.Y) {
		m.Close()
	}
}

func (m *ProjectModal) panel() folio.Rect {
	vw, vh := m.win.Size()
	w := min(float64(vw)*0.9, modalMaxWidth) * m.scale
	h := float64(vh) * 0.85 * m.scale
	return folio.Rect{X: (float64(vw) - w) / 2, Y: (float64(vh) - h) / 2, Width: w, Height: h}
}

func (m *ProjectModal) closeRect() folio.Rect {
	p := m.panel()
	return folio.Rect{X: p.X + p.Width - 16 - closeSize, Y: p.Y + 16, Width: closeSize, Height: closeSize}
}

// Update advances the open and close tweens.
func (m *ProjectModal) Update(f folio.Frame) {
	dt := float32(f.DeltaSeconds())
	for _, g := range m.tweens {
		g.Update(dt)
	}
}

// Draw renders the backdrop and the panel.
func (m *ProjectModal) Draw(dst *ebiten.Image) {
	if m.project == nil || m.alpha <= 0 {
		return
	}
	vw, vh := m.win.Size()
	a := m.alpha
	pal := m.pc.Theme.Palette()
	fillRect(dst, folio.Rect{Width: float64(vw), Height: float64(vh)}, folio.Color{A: 0.8 * a})

	p := m.panel()
	fillRect(dst, p, imageFill.WithAlpha(a))
	strokeRect(dst, p, 1, pal.Primary.WithAlpha(0.7*a))

	c := m.closeRect()
	lines := folio.LineBatch{}
	lines.Segment(folio.Vec2{X: c.X, Y: c.Y}, folio.Vec2{X: c.X + c.Width, Y: c.Y + c.Height}, 2, silver.WithAlpha(a))
	lines.Segment(folio.Vec2{X: c.X + c.Width, Y: c.Y}, folio.Vec2{X: c.X, Y: c.Y + c.Height}, 2, silver.WithAlpha(a))
	lines.Draw(dst)

	pr := m.project
	x, y := p.X+32, p.Y+32
	drawText(dst, m.fonts.Heading, pr.Title, x, y, pal.Primary.WithAlpha(a))
	y += m.fonts.Heading.LineHeight() + 4
	if pr.URL != "" {
		drawText(dst, m.fonts.Small, pr.URL, x, y, pal.Accent.WithAlpha(a))
		y += m.fonts.Small.LineHeight()
	}
	y += 16
	img := folio.Rect{X: x, Y: y, Width: p.Width - 64, Height: min(224, p.Height*0.3)}
	fillRect(dst, img, cardFill.WithAlpha(a))
	mark := initials(pr.Title)
	mw, mh := m.fonts.Display.Measure(mark)
	drawText(dst, m.fonts.Display, mark, img.X+(img.Width-mw)/2, img.Y+(img.Height-mh)/2, pal.Primary.WithAlpha(0.35*a))
	y += img.Height + 16

	for _, l := range wrap(m.fonts.Body, pr.Details, p.Width-64) {
		drawText(dst, m.fonts.Body, l, x, y, silver.WithAlpha(a))
		y += m.fonts.Body.LineHeight()
	}
	if len(pr.TechStack) == 0 {
		return
	}
	y += 20
	drawText(dst, m.fonts.Body, "Tech Stack:", x, y, pal.Accent.WithAlpha(a))
	y += m.fonts.Body.LineHeight() + 8
	cx := x
	for _, t := range pr.TechStack {
		tw, th := m.fonts.Small.Measure(t)
		if cx+tw+24 > p.X+p.Width-32 {
			cx = x
			y += th + 16
		}
		fillRect(dst, folio.Rect{X: cx, Y: y, Width: tw + 24, Height: th + 8}, cardFill.WithAlpha(a))
		drawText(dst, m.fonts.Small, t, cx+12, y+4, silver.WithAlpha(a))
		cx += tw + 32
	}
}
