package site

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

const (
	sectionPadTop = 80
	columnWidth   = 760
	chipPadX      = 16
	chipPadY      = 8
	chipGap       = 12
)

// sectionsView draws the text of every section except the works section,
// which has its own layers.
type sectionsView struct {
	pc       *folio.PageContext
	fonts    *Fonts
	sections []*Section

	win   *folio.Window
	root  *folio.Node
	nodes map[string]*folio.Node
	text  []*folio.Node
	heads []*folio.Node
	accts []*folio.Node

	// Hero intro: title and subtitle rise into their slots and fade in
	// after a delay. The hero nodes outlive relayouts so the tweens keep
	// their targets.
	titleSlot, subSlot *folio.Node
	heroTitle, heroSub *folio.Node
	intro              []*folio.TweenGroup
	cue                *folio.Node
	cueY               float64
	cueOsc             folio.Oscillator
	elapsed            float64
}

const (
	titleRise = 100
	subRise   = 50
)

func newSectionsView(pc *folio.PageContext, fonts *Fonts, sections []*Section) *sectionsView {
	return &sectionsView{pc: pc, fonts: fonts, sections: sections}
}

func (v *sectionsView) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "sections", Depth: folio.DepthContent}
}

func (v *sectionsView) Mount(s *folio.Session) error {
	v.win = s.Window()
	v.root = folio.NewContainer("sections")
	s.Own(v.root)
	v.nodes = make(map[string]*folio.Node, len(v.sections))
	for _, sec := range v.sections {
		if sec.ID == "works" {
			continue
		}
		c := folio.NewContainer(sec.ID)
		v.root.AddChild(c)
		v.nodes[sec.ID] = c
		if sec.ID == "hero" {
			v.buildHero(c, sec)
		}
		if sec.reveal != nil {
			sec.reveal.Attach(s)
		}
	}
	v.cueOsc = folio.Oscillator{Amplitude: 10, Frequency: 4}
	if v.heroTitle != nil {
		s.After(500*time.Millisecond, func() {
			v.intro = append(v.intro,
				folio.TweenPosition(v.heroTitle, 0, 0, 1.5, ease.OutCubic),
				folio.TweenAlpha(v.heroTitle, 1, 1.5, ease.OutCubic))
		})
		s.After(time.Second, func() {
			v.intro = append(v.intro,
				folio.TweenPosition(v.heroSub, 0, 0, 1.5, ease.OutCubic),
				folio.TweenAlpha(v.heroSub, 1, 1.5, ease.OutCubic))
		})
	}
	v.pc.OnTheme(s, func(folio.Theme) { v.recolor() })
	v.rebuild()
	return nil
}

// rebuild lays the text out again for the current viewport width.
func (v *sectionsView) rebuild() {
	vw, vh := v.win.Size()
	colW := min(float64(vw)-80, columnWidth)
	left := (float64(vw) - colW) / 2
	v.text, v.heads, v.accts = v.text[:0], v.heads[:0], v.accts[:0]

	for _, sec := range v.sections {
		c := v.nodes[sec.ID]
		if c == nil {
			continue
		}
		if sec.ID == "hero" {
			v.layoutHero(sec, float64(vw), float64(vh))
			continue
		}
		for _, ch := range slices.Clone(c.Children()) {
			ch.Dispose()
		}
		y := float64(sectionPadTop)
		y = v.centered(c, v.fonts.Display, sec.Title, float64(vw), y, &v.heads) + 24
		if sec.Subtitle != "" {
			y = v.centered(c, v.fonts.Heading, sec.Subtitle, float64(vw), y, &v.accts) + 16
		}
		for _, para := range sec.Body {
			for _, line := range wrap(v.fonts.Body, para, colW) {
				y = v.centered(c, v.fonts.Body, line, float64(vw), y, &v.text)
			}
			y += 12
		}
		if len(sec.Chips) > 0 {
			v.chips(c, sec.Chips, left, colW, y+12)
		}
	}
	v.recolor()
}

func (v *sectionsView) buildHero(c *folio.Node, sec *Section) {
	v.titleSlot = folio.NewContainer("title-slot")
	v.subSlot = folio.NewContainer("subtitle-slot")
	v.heroTitle = folio.NewText("title", sec.Title, v.fonts.Display)
	v.heroSub = folio.NewText("subtitle", sec.Subtitle, v.fonts.Heading)
	tw, _ := v.fonts.Display.Measure(sec.Title)
	sw, _ := v.fonts.Heading.Measure(sec.Subtitle)
	v.heroTitle.SetPivot(tw/2, 0)
	v.heroSub.SetPivot(sw/2, 0)
	v.heroTitle.SetPosition(0, titleRise)
	v.heroSub.SetPosition(0, subRise)
	v.heroTitle.Alpha, v.heroSub.Alpha = 0, 0
	v.titleSlot.AddChild(v.heroTitle)
	v.subSlot.AddChild(v.heroSub)
	v.cue = folio.NewPolyline("scroll-cue", []folio.Vec2{{X: -10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 0}}, 2, folio.ColorWhite)
	c.AddChild(v.titleSlot)
	c.AddChild(v.subSlot)
	c.AddChild(v.cue)
}

// layoutHero moves the hero's slots to their resting places for the
// viewport; the intro tweens run inside them.
func (v *sectionsView) layoutHero(sec *Section, vw, vh float64) {
	_, th := v.fonts.Display.Measure(sec.Title)
	v.titleSlot.SetPosition(vw/2, vh*0.38)
	v.subSlot.SetPosition(vw/2, vh*0.38+th+24)
	v.cueY = vh - 60
	v.cue.SetPosition(vw/2, v.cueY)
	v.heads = append(v.heads, v.heroTitle)
	v.text = append(v.text, v.heroSub)
}

// centered adds a line of text centered horizontally at y and returns the y
// below it.
func (v *sectionsView) centered(c *folio.Node, f *folio.Font, s string, vw, y float64, role *[]*folio.Node) float64 {
	n := folio.NewText(s, s, f)
	w, h := f.Measure(s)
	n.SetPosition((vw-w)/2, y)
	c.AddChild(n)
	*role = append(*role, n)
	return y + h
}

// chips lays out pill labels in centered rows.
func (v *sectionsView) chips(c *folio.Node, labels []string, left, width, y float64) {
	f := v.fonts.Small
	type pill struct {
		label string
		w     float64
	}
	var row []pill
	rowW := 0.0
	flush := func() {
		x := left + (width-rowW)/2
		for _, p := range row {
			bg := folio.NewRect("chip", p.w, f.LineHeight()+2*chipPadY, folio.Hex(0x1f2937).WithAlpha(0.7))
			bg.SetPosition(x, y)
			t := folio.NewText(p.label, p.label, f)
			t.SetPosition(chipPadX, chipPadY)
			bg.AddChild(t)
			c.AddChild(bg)
			v.text = append(v.text, t)
			x += p.w + chipGap
		}
		y += f.LineHeight() + 2*chipPadY + chipGap
		row, rowW = row[:0], 0
	}
	for _, l := range labels {
		lw, _ := f.Measure(l)
		w := lw + 2*chipPadX
		if len(row) > 0 && rowW+chipGap+w > width {
			flush()
		}
		if len(row) > 0 {
			rowW += chipGap
		}
		row = append(row, pill{l, w})
		rowW += w
	}
	if len(row) > 0 {
		flush()
	}
}

func (v *sectionsView) recolor() {
	pal := v.pc.Theme.Palette()
	for _, n := range v.heads {
		n.Color = pal.Primary
	}
	for _, n := range v.accts {
		n.Color = pal.Accent
	}
	for _, n := range v.text {
		n.Color = pal.Text
	}
	if v.cue != nil {
		v.cue.Color = pal.Text
	}
}

func (v *sectionsView) Update(f folio.Frame) {
	dt := float32(f.DeltaSeconds())
	for _, g := range v.intro {
		g.Update(dt)
	}
	v.elapsed += f.DeltaSeconds()

	scrollY := v.win.ScrollY()
	for _, sec := range v.sections {
		c := v.nodes[sec.ID]
		if c == nil {
			continue
		}
		sec.step(f.Delta)
		c.SetPosition(0, sec.ContentY(scrollY))
		c.Alpha = sec.Opacity()
	}
	if v.cue != nil {
		v.cue.Y = v.cueY + v.cueOsc.Value(v.elapsed)
		v.cue.Alpha = v.heroSub.Alpha
	}
}

func (v *sectionsView) Draw(dst *ebiten.Image) {
	v.root.Draw(dst)
}
