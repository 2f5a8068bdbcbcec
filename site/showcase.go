package site

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/effects"
)

const (
	letterCount  = 15
	letterLerp   = 0.07
	letterJump   = 0.7
	letterAlpha  = 0.5
	trackPadding = 0.10 // of viewport width, both ends
	cardWidth    = 0.35
	cardMargin   = 0.05
	cardHeight   = 0.60 // of viewport height
)

var (
	letterCamera = folio.Perspective{FOV: 50, Distance: 20, Near: 0.1}
	letterGlyphs = [4]string{"W", "O", "R", "K"}
	letterSpeeds = [4]float64{0.8, 1, 0.7, 0.9}
)

// letterPath samples the arc one row of letters flies along: 21 points
// spanning x in [-25, 25], bowed by amp at y and pushed back in z at the
// middle.
func letterPath(y, amp float64) *folio.Curve {
	pts := make([]folio.Vec3, 21)
	for i := range pts {
		t := float64(i) / 20
		d := math.Abs(t-0.5) * 2
		pts[i] = folio.Vec3{X: -25 + 50*t, Y: y - math.Sin(t*math.Pi)*amp, Z: (1 - d*d) * -5}
	}
	return folio.NewCurve(pts...)
}

type letter struct {
	cur, target folio.Vec2
	placed      bool
}

// Showcase is the pinned works section: scrolling through it moves a track
// of project cards horizontally, slides the dot grid behind it, and carries
// four rows of letters along their paths.
type Showcase struct {
	pc      *folio.PageContext
	fonts   *Fonts
	section *Section
	grid    *effects.DotGrid
	modal   *ProjectModal

	projects []content.Project
	binding  *folio.ScrollBinding
	win      *folio.Window
	tracks   [4]folio.PathTrack
	letters  [4][letterCount]letter
	hover    int
}

// NewShowcase creates the showcase for sec. grid may be nil.
func NewShowcase(pc *folio.PageContext, fonts *Fonts, sec *Section, projects []content.Project, grid *effects.DotGrid, modal *ProjectModal, scrub time.Duration) *Showcase {
	sc := &Showcase{
		pc:       pc,
		fonts:    fonts,
		section:  sec,
		grid:     grid,
		modal:    modal,
		projects: projects,
		hover:    -1,
	}
	sc.binding = mustBinding(folio.ScrollConfig{
		Start:     "top top",
		End:       "+=0",
		Pin:       true,
		Smoothing: folio.Smoothing{Mode: folio.SmoothScrub, Scrub: scrub},
	})
	rows := [4]struct{ y, amp float64 }{{10, 2}, {3.5, 1}, {-3.5, -1}, {-10, -2}}
	for i, r := range rows {
		sc.tracks[i] = folio.PathTrack{Curve: letterPath(r.y, r.amp), Count: letterCount, Speed: letterSpeeds[i]}
	}
	return sc
}

func (sc *Showcase) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "showcase", Depth: folio.DepthContent, Pointer: folio.PointerTarget}
}

// Mount measures the binding against the window.
func (sc *Showcase) Mount(s *folio.Session) error {
	sc.win = s.Window()
	sc.Layout(sc.section.Top)
	sc.binding.Attach(s)
	return nil
}

// Layout places the pinned region at top and recomputes the scroll span
// for the current viewport. It is also called on every relayout.
func (sc *Showcase) Layout(top float64) {
	_, vh := sc.win.Size()
	sc.section.place(top, float64(vh))
	sc.binding.Top, sc.binding.Height = top, float64(vh)
	sc.binding.End = folio.Anchor{Relative: true, Distance: sc.Span()}
	sc.binding.Measure(sc.win.ScrollY(), float64(vh))
}

// SetProjects replaces the cards.
func (sc *Showcase) SetProjects(ps []content.Project) {
	sc.projects = ps
	sc.hover = -1
	if sc.win != nil {
		sc.Layout(sc.section.Top)
	}
}

// TrackWidth is the width of the card strip including its padding.
func (sc *Showcase) TrackWidth() float64 {
	vw, _ := sc.win.Size()
	w := float64(vw)
	return 2*trackPadding*w + float64(len(sc.projects))*(cardWidth+2*cardMargin)*w
}

// Span is the horizontal distance the strip travels, which is also the
// scroll distance the section stays pinned for.
func (sc *Showcase) Span() float64 {
	vw, _ := sc.win.Size()
	return max(0, sc.TrackWidth()-float64(vw))
}

// PinSpacing is the document height the pin adds.
func (sc *Showcase) PinSpacing() float64 {
	_, vh := sc.win.Size()
	return sc.binding.PinSpacing(float64(vh))
}

// Progress returns the smoothed showcase progress.
func (sc *Showcase) Progress() float64 { return sc.binding.Progress() }

// OffsetX returns the strip's horizontal translation.
func (sc *Showcase) OffsetX() float64 { return -sc.binding.Progress() * sc.Span() }

// ScreenY returns the section's top edge on screen, holding at 0 while
// pinned.
func (sc *Showcase) ScreenY() float64 {
	_, vh := sc.win.Size()
	y := sc.win.ScrollY()
	return sc.section.Top - y + sc.binding.PinOffset(y, float64(vh))
}

// CardRect returns card i's screen rectangle.
func (sc *Showcase) CardRect(i int) folio.Rect {
	vw, vh := sc.win.Size()
	w, h := float64(vw), float64(vh)
	x := trackPadding*w + float64(i)*(cardWidth+2*cardMargin)*w + cardMargin*w + sc.OffsetX()
	return folio.Rect{X: x, Y: sc.ScreenY() + (h-cardHeight*h)/2, Width: cardWidth * w, Height: cardHeight * h}
}

// CardAt returns the index of the card under (x, y), or -1.
func (sc *Showcase) CardAt(x, y float64) int {
	for i := range sc.projects {
		if sc.CardRect(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

// HitTest accepts points over a card.
func (sc *Showcase) HitTest(x, y float64) bool { return sc.CardAt(x, y) >= 0 }

// Hovered reports whether (x, y) is over a card.
func (sc *Showcase) Hovered(x, y float64) bool { return sc.CardAt(x, y) >= 0 }

// HandlePointer tracks hover and opens the modal on click.
func (sc *Showcase) HandlePointer(ev *folio.Event) {
	i := sc.CardAt(ev.X, ev.Y)
	switch ev.Type {
	case folio.EventPointerMove:
		sc.hover = i
	case folio.EventPointerDown:
		if i >= 0 && sc.modal != nil {
			sc.modal.Open(sc.projects[i])
			ev.Consume()
		}
	}
}

// LetterPosition returns the current screen position of letter i on row.
func (sc *Showcase) LetterPosition(row, i int) folio.Vec2 {
	return sc.letters[row][i].cur
}

// letterTargets projects every letter at progress p, mirrored horizontally.
func (sc *Showcase) letterTargets(p float64) {
	vw, vh := sc.win.Size()
	for r := range sc.tracks {
		for i := range letterCount {
			pt, ok := letterCamera.Project(sc.tracks[r].Position(i, p), vw, vh)
			if !ok {
				continue
			}
			sc.letters[r][i].target = folio.Vec2{X: float64(vw) - pt.X, Y: pt.Y}
		}
	}
}

// Update steps the pin progress, moves the cards and eases every letter
// toward its target.
func (sc *Showcase) Update(f folio.Frame) {
	p := sc.binding.Step(f.Delta)
	if sc.grid != nil {
		sc.grid.SetProgress(p)
		sc.grid.Place(sc.ScreenY())
	}
	sc.letterTargets(p)
	vw, _ := sc.win.Size()
	for r := range sc.letters {
		for i := range sc.letters[r] {
			l := &sc.letters[r][i]
			if !l.placed || math.Abs(l.target.X-l.cur.X) > letterJump*float64(vw) {
				l.cur, l.placed = l.target, true
				continue
			}
			l.cur.X = folio.Lerp(l.cur.X, l.target.X, letterLerp)
			l.cur.Y = folio.Lerp(l.cur.Y, l.target.Y, letterLerp)
		}
	}
}

// Draw renders the pinned region while any of it is on screen.
func (sc *Showcase) Draw(dst *ebiten.Image) {
	vw, vh := sc.win.Size()
	top := sc.ScreenY()
	if top >= float64(vh) || top+float64(vh) <= 0 {
		return
	}
	pal := sc.pc.Theme.Palette()

	for r := range sc.letters {
		g := letterGlyphs[r]
		gw, gh := sc.fonts.Letter.Measure(g)
		for i := range sc.letters[r] {
			l := sc.letters[r][i].cur
			drawText(dst, sc.fonts.Letter, g, l.X-gw/2, top+l.Y-gh/2, pal.Primary.WithAlpha(letterAlpha))
		}
	}

	const title = "Featured Projects"
	tw, _ := sc.fonts.Display.Measure(title)
	drawText(dst, sc.fonts.Display, title, (float64(vw)-tw)/2, top+64, folio.ColorWhite)

	for i, p := range sc.projects {
		r := sc.CardRect(i)
		if r.X+r.Width < 0 || r.X > float64(vw) {
			continue
		}
		drawCard(dst, r, p, i == sc.hover, sc.fonts, pal, 1)
	}
}
