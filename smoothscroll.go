package folio

import (
	"math"
	"slices"
)

// SmoothScroller replaces the window's direct wheel scrolling with an eased
// scroll: wheel input moves a target offset and the document offset follows
// it by Lerp each frame.
type SmoothScroller struct {
	// Lerp is the per-frame fraction of the remaining distance covered.
	Lerp float64
	// WheelMultiplier scales wheel deltas.
	WheelMultiplier float64

	target   float64
	enabled  bool
	stepping bool
	win      *Window
}

// NewSmoothScroller creates a scroller with the given per-frame factor.
func NewSmoothScroller(lerp float64) *SmoothScroller {
	if lerp <= 0 || lerp > 1 {
		lerp = 0.1
	}
	return &SmoothScroller{Lerp: lerp, WheelMultiplier: 1, enabled: true}
}

// Mount attaches the scroller to s's window. It intercepts wheel events for
// as long as s is active. Scrolls it did not make itself (scripts, keyboard
// jumps, document reclamps) become the new target.
func (sc *SmoothScroller) Mount(s *Session) error {
	sc.win = s.Window()
	sc.target = sc.win.ScrollY()
	s.Listen(EventWheel, sc.onWheel)
	s.Listen(EventScroll, func(ev *Event) {
		if !sc.stepping {
			sc.target = ev.ScrollY
		}
	})
	s.Listen(EventResize, func(*Event) { sc.target = sc.clamp(sc.target) })
	return s.Start(sc.Update)
}

// Target returns the offset the scroller is easing toward.
func (sc *SmoothScroller) Target() float64 {
	return sc.target
}

// SetEnabled turns easing on or off. Disabled scrollers let wheel events
// scroll the window directly.
func (sc *SmoothScroller) SetEnabled(on bool) {
	sc.enabled = on
	if sc.win != nil {
		sc.target = sc.win.ScrollY()
	}
}

// ScrollTo eases toward y. With immediate set, the window jumps there.
func (sc *SmoothScroller) ScrollTo(y float64, immediate bool) {
	if sc.win == nil {
		return
	}
	sc.target = sc.clamp(y)
	if immediate || !sc.enabled {
		sc.win.ScrollTo(sc.target)
	}
}

func (sc *SmoothScroller) onWheel(ev *Event) {
	if !sc.enabled {
		return
	}
	ev.PreventDefault()
	sc.target = sc.clamp(sc.target + ev.DeltaY*sc.WheelMultiplier)
}

func (sc *SmoothScroller) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, sc.win.MaxScroll()))
}

// Update moves the document one frame closer to the target. Within half a
// pixel it snaps.
func (sc *SmoothScroller) Update(Frame) {
	if !sc.enabled {
		return
	}
	cur := sc.win.ScrollY()
	if cur == sc.target {
		return
	}
	sc.stepping = true
	sc.win.ScrollTo(Damp(cur, sc.target, sc.Lerp, 0.5))
	sc.stepping = false
}

// Theme is the page color scheme.
type Theme uint8

const (
	ThemeDark Theme = iota
	ThemeLight
)

// String returns "dark" or "light".
func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// Palette is the set of colors effects draw with under a theme.
type Palette struct {
	Background Color
	Text       Color
	Primary    Color // electric blue
	Accent     Color // gold
	Secondary  Color // teal
	Highlight  Color // neon green
}

// Palette returns the colors for t.
func (t Theme) Palette() Palette {
	p := Palette{
		Background: Hex(0x03001c),
		Text:       Hex(0xdddddd),
		Primary:    Hex(0x00bfff),
		Accent:     Hex(0xffd700),
		Secondary:  Hex(0x2dd4bf),
		Highlight:  Hex(0x00ff9d),
	}
	if t == ThemeLight {
		p.Background = Hex(0xf4f6fb)
		p.Text = Hex(0x1e3a8a)
		p.Primary = Hex(0x0066ff)
		p.Accent = Hex(0xffa500)
	}
	return p
}

// PageContext holds the page-wide singletons components share. It has a
// single writer: the page that owns it. Components read it during their own
// frame callbacks and never rely on the order other components ran in.
type PageContext struct {
	Window   *Window
	Scroller *SmoothScroller
	Theme    Theme
	// Hovering is set while the pointer is over an interactive element; the
	// cursor follower grows while it is true.
	Hovering bool

	themeSubs []themeSub
	nextSub   int
}

type themeSub struct {
	id int
	fn func(Theme)
}

// SetTheme changes the theme and notifies subscribers.
func (pc *PageContext) SetTheme(t Theme) {
	if pc.Theme == t {
		return
	}
	pc.Theme = t
	for _, sub := range slices.Clone(pc.themeSubs) {
		sub.fn(t)
	}
}

// ToggleTheme flips between dark and light.
func (pc *PageContext) ToggleTheme() {
	if pc.Theme == ThemeDark {
		pc.SetTheme(ThemeLight)
		return
	}
	pc.SetTheme(ThemeDark)
}

// OnTheme subscribes fn to theme changes until s is disposed.
func (pc *PageContext) OnTheme(s *Session, fn func(Theme)) {
	pc.nextSub++
	id := pc.nextSub
	pc.themeSubs = append(pc.themeSubs, themeSub{id: id, fn: fn})
	s.OnDispose(func() {
		pc.themeSubs = slices.DeleteFunc(pc.themeSubs, func(sub themeSub) bool { return sub.id == id })
	})
}
