package site

import (
	"image"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/effects"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

const (
	navHeight    = 80
	navPad       = 32
	burgerSize   = 40
	burgerLine   = 24
	burgerStroke = 2
	burgerGap    = 6
	menuDuration = 0.5
	menuPadTop   = 80
	menuColGap   = 32
	menuTwoCols  = 768
	menuHeadGap  = 32
	menuLinkGap  = 16

	trailRadius    = 10
	trailDuration  = 0.1
	navSparkChance = 0.1
	navSparkLength = 50
	navStreakCap   = 16
)

var (
	neonGreen = folio.Hex(0x00ff9d)
	menuFill  = folio.Color{A: 0.9}
)

// navLink is one entry of the open menu. Section links scroll the page;
// the others are external.
type navLink struct {
	label   string
	section string
	url     string
	node    *folio.Node
	bounds  folio.Rect // in menu coordinates
}

// Navbar is the bar across the top of the works page: the name on the left
// and a menu button on the right. The button unfolds a menu of section links
// and social links over the page. Pointer moves over the bar leave a green
// trail and now and then a small bolt of lightning.
//
// Only the name, the button and the unfolded menu take pointer input; the
// rest of the transparent bar lets clicks through to the page beneath.
type Navbar struct {
	pc       *folio.PageContext
	fonts    *Fonts
	sections []*Section
	seed     uint64

	win     *folio.Window
	log     *zap.Logger
	rng     *rand.Rand
	spawner *folio.Spawner
	streaks *effects.Streaks

	bar       *folio.Node
	name      *folio.Node
	trail     *folio.Node
	menu      *folio.Node
	heads     [2]*folio.Node
	links     []*navLink
	trailMove *folio.TweenGroup

	open   bool
	reveal float64
	tween  *folio.TweenGroup
	hover  int
}

// NewNavbar creates the bar. Section links resolve against sections when
// followed, so they track relayouts.
func NewNavbar(pc *folio.PageContext, fonts *Fonts, sections []*Section, seed uint64) *Navbar {
	return &Navbar{pc: pc, fonts: fonts, sections: sections, seed: seed, hover: -1}
}

func (n *Navbar) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "navbar", Depth: folio.DepthOverlay, Pointer: folio.PointerTarget}
}

// Mount builds the bar and the folded menu.
func (n *Navbar) Mount(s *folio.Session) error {
	n.win = s.Window()
	n.log = s.Logger()
	n.rng = folio.NewRand(n.seed)
	n.spawner = folio.NewSpawner(navSparkChance, n.rng)
	n.streaks = effects.NewStreaks(navStreakCap)
	s.Own(n.streaks)

	n.bar = folio.NewContainer("navbar")
	s.Own(n.bar)
	n.name = folio.NewText("name", heroSection().Title, n.fonts.Heading)
	n.name.Color = neonGreen
	n.trail = folio.NewCircle("trail", trailRadius, 0, neonGreen)
	n.trail.Alpha = 0.5
	n.trail.BlendMode = folio.BlendAdd
	n.trail.Visible = false
	n.bar.AddChild(n.name)
	n.bar.AddChild(n.trail)

	n.menu = folio.NewContainer("menu")
	s.Own(n.menu)
	for i, h := range []string{"Navigation", "Connect"} {
		n.heads[i] = folio.NewText("heading", h, n.fonts.Heading)
		n.heads[i].Color = neonGreen
		n.menu.AddChild(n.heads[i])
	}
	n.links = []*navLink{
		{label: "Home", section: "hero"},
		{label: "About", section: "about"},
		{label: "Works", section: "works"},
		{label: "Contact", section: "contact"},
		{label: "GitHub", url: "https://github.com/yourusername"},
		{label: "LinkedIn", url: "https://linkedin.com/in/yourusername"},
		{label: "Twitter", url: "https://twitter.com/yourusername"},
	}
	for _, l := range n.links {
		l.node = folio.NewText("link", l.label, n.fonts.Body)
		n.menu.AddChild(l.node)
	}
	n.layout()
	s.Listen(folio.EventResize, func(*folio.Event) { n.layout() })
	s.Listen(folio.EventPointerMove, n.onMove)
	s.Listen(folio.EventWheel, func(ev *folio.Event) {
		if n.open {
			ev.PreventDefault()
		}
	})
	return nil
}

// layout places the name, the menu columns and every link for the current
// viewport. Below 768px the two columns stack.
func (n *Navbar) layout() {
	vw, _ := n.win.Size()
	_, lh := n.fonts.Heading.Measure("M")
	n.name.SetPosition(navPad, (navHeight-lh)/2)

	n.menu.SetPosition(0, navHeight)
	x2 := float64(navPad)
	if vw >= menuTwoCols {
		colW := (float64(vw) - 2*navPad - menuColGap) / 2
		x2 = navPad + colW + menuColGap
	}
	place := func(head *folio.Node, links []*navLink, x, y float64) float64 {
		head.SetPosition(x, y)
		_, hh := n.fonts.Heading.Measure(head.Text)
		y += hh + menuHeadGap
		for _, l := range links {
			w, h := n.fonts.Body.Measure(l.label)
			l.node.SetPosition(x, y)
			l.bounds = folio.Rect{X: x, Y: y, Width: w, Height: h}
			y += h + menuLinkGap
		}
		return y
	}
	bottom := place(n.heads[0], n.links[:4], navPad, menuPadTop)
	y2 := float64(menuPadTop)
	if vw < menuTwoCols {
		y2 = bottom + menuHeadGap
	}
	place(n.heads[1], n.links[4:], x2, y2)
	n.bar.UpdateTransforms()
	n.menu.UpdateTransforms()
}

// onMove follows the pointer with the trail while it is over the bar or the
// unfolded menu, and sometimes drops a bolt where it is.
func (n *Navbar) onMove(ev *folio.Event) {
	n.hover = n.linkAt(ev.X, ev.Y)
	if !n.over(ev.X, ev.Y) {
		return
	}
	n.trail.Visible = true
	n.trailMove = folio.TweenPosition(n.trail, ev.X, ev.Y, trailDuration, ease.OutCubic)
	if n.spawner.Trial() {
		n.streaks.Spawn(effects.Streak{
			Kind:   effects.StreakBolt,
			Pos:    folio.Vec2{X: ev.X, Y: ev.Y},
			Length: navSparkLength,
		})
	}
}

func (n *Navbar) over(x, y float64) bool {
	return y < navHeight || n.overMenu(x, y)
}

func (n *Navbar) overMenu(x, y float64) bool {
	return n.MenuBounds().Contains(x, y) && n.reveal > 0
}

// MenuBounds returns the unfolded part of the menu on screen.
func (n *Navbar) MenuBounds() folio.Rect {
	vw, vh := n.win.Size()
	return folio.Rect{X: 0, Y: navHeight, Width: float64(vw), Height: n.reveal * float64(vh-navHeight)}
}

// NameBounds returns the name label on screen.
func (n *Navbar) NameBounds() folio.Rect {
	w, h := n.fonts.Heading.Measure(n.name.Text)
	return folio.Rect{X: n.name.X, Y: n.name.Y, Width: w, Height: h}
}

// ButtonBounds returns the menu button on screen.
func (n *Navbar) ButtonBounds() folio.Rect {
	vw, _ := n.win.Size()
	return folio.Rect{
		X:      float64(vw) - navPad - burgerSize,
		Y:      (navHeight - burgerSize) / 2,
		Width:  burgerSize,
		Height: burgerSize,
	}
}

// LinkBounds returns the on-screen rectangle of the menu link with the
// given label.
func (n *Navbar) LinkBounds(label string) (folio.Rect, bool) {
	for _, l := range n.links {
		if l.label != label {
			continue
		}
		x0, y0 := n.menu.LocalToWorld(l.bounds.X, l.bounds.Y)
		x1, y1 := n.menu.LocalToWorld(l.bounds.X+l.bounds.Width, l.bounds.Y+l.bounds.Height)
		return folio.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
	}
	return folio.Rect{}, false
}

func (n *Navbar) linkAt(x, y float64) int {
	if !n.open || !n.overMenu(x, y) {
		return -1
	}
	lx, ly := n.menu.WorldToLocal(x, y)
	for i, l := range n.links {
		if l.bounds.Contains(lx, ly) {
			return i
		}
	}
	return -1
}

// HitTest claims the name, the button and the unfolded menu.
func (n *Navbar) HitTest(x, y float64) bool {
	return n.NameBounds().Contains(x, y) || n.ButtonBounds().Contains(x, y) || n.overMenu(x, y)
}

// Hovered reports whether (x, y) is over the name, the button or a link.
func (n *Navbar) Hovered(x, y float64) bool {
	return n.NameBounds().Contains(x, y) || n.ButtonBounds().Contains(x, y) || n.linkAt(x, y) >= 0
}

// HandlePointer toggles the menu from the button, follows links and takes
// every press that lands on the bar's controls or the menu.
func (n *Navbar) HandlePointer(ev *folio.Event) {
	if ev.Type != folio.EventPointerDown {
		return
	}
	ev.Consume()
	switch {
	case n.ButtonBounds().Contains(ev.X, ev.Y):
		n.SetOpen(!n.open)
	case n.NameBounds().Contains(ev.X, ev.Y):
		n.SetOpen(false)
		n.scrollTo("hero")
	default:
		if i := n.linkAt(ev.X, ev.Y); i >= 0 {
			n.follow(n.links[i])
		}
	}
}

// Open reports whether the menu is open or opening.
func (n *Navbar) Open() bool { return n.open }

// Reveal returns how far the menu has unfolded, 0 to 1.
func (n *Navbar) Reveal() float64 { return n.reveal }

// SetOpen unfolds or folds the menu over half a second. While it is open the
// page does not scroll under it.
func (n *Navbar) SetOpen(open bool) {
	if open == n.open {
		return
	}
	n.open = open
	to := 0.0
	if open {
		to = 1
	}
	n.tween = folio.TweenValue(&n.reveal, n.reveal, to, menuDuration, ease.InOutQuint)
	if n.pc.Scroller != nil {
		n.pc.Scroller.SetEnabled(!open)
	}
	n.hover = -1
	n.log.Debug("navbar menu", zap.Bool("open", open))
}

func (n *Navbar) follow(l *navLink) {
	n.SetOpen(false)
	if l.section != "" {
		n.scrollTo(l.section)
		return
	}
	n.log.Info("external link followed", zap.String("label", l.label), zap.String("url", l.url))
}

func (n *Navbar) scrollTo(id string) {
	for _, sec := range n.sections {
		if sec.ID != id {
			continue
		}
		if n.pc.Scroller != nil {
			n.pc.Scroller.ScrollTo(sec.Top, false)
		} else {
			n.win.ScrollTo(sec.Top)
		}
		return
	}
}

// Update unfolds the menu, moves the trail and ages the lightning.
func (n *Navbar) Update(f folio.Frame) {
	dt := float32(f.DeltaSeconds())
	if n.tween != nil {
		n.tween.Update(dt)
	}
	if n.trailMove != nil {
		n.trailMove.Update(dt)
	}
	n.streaks.Update(f)
	for i, l := range n.links {
		l.node.Color = folio.ColorWhite
		if i == n.hover {
			l.node.Color = electricBlue
		}
	}
	n.bar.UpdateTransforms()
	n.menu.UpdateTransforms()
}

// Draw renders the menu clipped to its unfolded height, then the bar.
func (n *Navbar) Draw(dst *ebiten.Image) {
	if n.reveal > 0 {
		m := n.MenuBounds()
		clip := dst.SubImage(image.Rect(int(m.X), int(m.Y), int(m.X+m.Width), int(m.Y+m.Height+0.5))).(*ebiten.Image)
		fillRect(clip, m, menuFill)
		n.menu.Draw(clip)
	}
	n.bar.Draw(dst)
	b := n.ButtonBounds()
	x := b.X + (burgerSize-burgerLine)/2
	y := b.Y + (burgerSize-3*burgerStroke-2*burgerGap)/2
	for range 3 {
		fillRect(dst, folio.Rect{X: x, Y: y, Width: burgerLine, Height: burgerStroke}, electricBlue)
		y += burgerStroke + burgerGap
	}
	n.streaks.Draw(dst, 1)
}

// LiveTransients reports live streaks.
func (n *Navbar) LiveTransients() int { return n.streaks.Len() }
