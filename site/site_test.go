package site

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"go.uber.org/zap/zaptest"
)

const frame = time.Second / 60

func newTestPage(t *testing.T, v Variant, edit func(*Config)) *Page {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Variant = v
	cfg.Preloader = false
	cfg.Doors = false
	cfg.Scroll.Smooth = false
	if edit != nil {
		edit(cfg)
	}
	p, err := NewPage(cfg, nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Dispose)
	return p
}

func advance(w *folio.Window, n int) {
	for range n {
		w.Advance(frame)
	}
}

// advanceFor runs frames until at least d of window time has passed.
func advanceFor(w *folio.Window, d time.Duration) {
	end := w.Now() + d
	for w.Now() < end {
		w.Advance(frame)
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func center(r folio.Rect) (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func layerNames(p *Page) []string {
	var names []string
	for _, l := range p.Compositor().Layers() {
		names = append(names, l.Name())
	}
	return names
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("missing file (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "site.yaml")
	data := "variant: classic\ntheme: light\nscroll:\n  scrub: 2s\n  lerp: 0.2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != VariantClassic || cfg.Theme != "light" || cfg.Scroll.Scrub != 2*time.Second || cfg.Scroll.Lerp != 0.2 {
		t.Errorf("loaded %+v", cfg)
	}
	if cfg.Width != 1280 || !cfg.Preloader {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"variant", func(c *Config) { c.Variant = "brutalist" }},
		{"size", func(c *Config) { c.Width = 0 }},
		{"theme", func(c *Config) { c.Theme = "sepia" }},
		{"lerp", func(c *Config) { c.Scroll.Lerp = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted the config")
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config: %v", err)
	}
}

func TestPageLayers(t *testing.T) {
	tests := []struct {
		variant Variant
		want    []string
	}{
		{VariantClassic, []string{
			"electric-background", "electric-pulse", "sparks",
			"sections", "project-grid", "contact-form",
			"project-modal", "theme-toggle", "cursor", "preloader",
		}},
		{VariantWorks, []string{
			"particle-background", "thunderstorm", "lightning", "sparks", "pointer-lightning",
			"sections", "dot-grid", "showcase", "contact-form",
			"navbar", "project-modal", "theme-toggle", "cursor", "preloader", "galaxy-intro",
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			p := newTestPage(t, tt.variant, func(c *Config) { c.Preloader, c.Doors = true, true })
			if diff := cmp.Diff(tt.want, layerNames(p)); diff != "" {
				t.Errorf("layers (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPageLayout(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	sc := p.Showcase()
	span := 2*0.1*1280 + 10*0.45*1280 - 1280
	if !near(sc.Span(), span, 1e-6) {
		t.Fatalf("Span = %v, want %v", sc.Span(), span)
	}
	var tops []float64
	for _, sec := range p.Sections() {
		tops = append(tops, sec.Top)
	}
	contact := 1600 + 800 + span
	if diff := cmp.Diff([]float64{0, 800, 1600, contact}, tops, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("section tops (-want +got):\n%s", diff)
	}
	want := contact + max(800, formTop+p.Contact().Height()+2*sectionPadTop)
	if !near(w.DocumentHeight(), want, 1e-6) {
		t.Errorf("document height = %v, want %v", w.DocumentHeight(), want)
	}
}

func TestShowcasePinsAndScrolls(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	sc := p.Showcase()
	top := p.Sections()[2].Top
	span := sc.Span()

	w.ScrollTo(top + span/2)
	advance(w, 1200)
	if !near(sc.Progress(), 0.5, 1e-3) {
		t.Errorf("Progress = %v, want 0.5", sc.Progress())
	}
	if !near(sc.OffsetX(), -span/2, 1) {
		t.Errorf("OffsetX = %v, want %v", sc.OffsetX(), -span/2)
	}
	if sc.ScreenY() != 0 {
		t.Errorf("pinned ScreenY = %v, want 0", sc.ScreenY())
	}

	w.ScrollTo(top + span + 100)
	advance(w, 1200)
	if sc.Progress() != 1 {
		t.Errorf("Progress past the end = %v", sc.Progress())
	}
	if sc.ScreenY() != -100 {
		t.Errorf("ScreenY after unpin = %v, want -100", sc.ScreenY())
	}
}

func TestShowcaseLetters(t *testing.T) {
	if pt := letterPath(10, 2).Point(0); !near(pt.X, -25, 1e-9) || !near(pt.Y, 10, 1e-9) || !near(pt.Z, 0, 1e-9) {
		t.Errorf("path start = %+v", pt)
	}
	if pt := letterPath(10, 2).Point(0.5); !near(pt.X, 0, 1e-9) || !near(pt.Y, 8, 1e-9) || !near(pt.Z, -5, 1e-9) {
		t.Errorf("path middle = %+v", pt)
	}

	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	sc := p.Showcase()
	advance(w, 1)
	// The path starts left of center, so the mirrored letter sits right.
	if pos := sc.LetterPosition(0, 0); pos.X <= 640 || pos.Y >= 400 {
		t.Errorf("first letter at %+v, want right of center and above it", pos)
	}

	before := sc.LetterPosition(1, 7)
	w.ScrollTo(p.Sections()[2].Top + sc.Span()*0.01)
	advance(w, 1)
	after := sc.LetterPosition(1, 7)
	if after == before {
		t.Error("letter did not move with the showcase")
	}
	advance(w, 1200)
	sc.letterTargets(sc.Progress())
	if l := sc.letters[1][7]; !near(l.cur.X, l.target.X, 0.5) || !near(l.cur.Y, l.target.Y, 0.5) {
		t.Errorf("letter %+v did not settle on its target %+v", l.cur, l.target)
	}
}

func TestCardOpensModal(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	sc := p.Showcase()
	w.ScrollTo(p.Sections()[2].Top)
	advance(w, 1)

	x, y := center(sc.CardRect(0))
	w.MovePointer(x, y)
	advance(w, 1)
	if !p.Context().Hovering {
		t.Error("not hovering over a card")
	}
	if ev := w.PointerDown(x, y); !ev.Consumed() {
		t.Error("card click not consumed")
	}
	m := p.Modal()
	if !m.IsOpen() || m.Project().ID != p.Projects()[0].ID {
		t.Fatalf("modal open = %v, project = %+v", m.IsOpen(), m.Project())
	}
	advance(w, 30)

	// Clicks inside the panel are swallowed without closing it.
	if ev := w.PointerDown(640, 400); !ev.Consumed() || !m.IsOpen() {
		t.Errorf("inside click: consumed = %v, open = %v", ev.Consumed(), m.IsOpen())
	}
	w.PointerDown(5, 5)
	if m.IsOpen() {
		t.Error("click outside did not close the modal")
	}
	advance(w, 30)

	w.PointerDown(x, y)
	advance(w, 30)
	cx, cy := center(m.closeRect())
	w.PointerDown(cx, cy)
	if m.IsOpen() {
		t.Error("close mark did not close the modal")
	}
}

func TestGridColumns(t *testing.T) {
	p := newTestPage(t, VariantClassic, nil)
	w := p.Window()
	g := p.Grid()
	tests := []struct {
		width, cols int
	}{
		{1280, 3},
		{900, 2},
		{600, 1},
		{1024, 3},
	}
	for _, tt := range tests {
		w.Resize(tt.width, 800)
		if got := g.Columns(); got != tt.cols {
			t.Errorf("width %d: Columns = %d, want %d", tt.width, got, tt.cols)
		}
		works := p.Sections()[2]
		if works.Height != max(800, g.Height()) || p.Sections()[3].Top != works.Top+works.Height {
			t.Errorf("width %d: works section %v+%v not followed by skills at %v", tt.width, works.Top, works.Height, p.Sections()[3].Top)
		}
	}
}

func TestGridCardOpensModal(t *testing.T) {
	p := newTestPage(t, VariantClassic, nil)
	w := p.Window()
	works := p.Sections()[2]
	w.ScrollTo(works.Top)
	advance(w, 600)
	x, y := center(p.Grid().CardRect(1))
	w.PointerDown(x, y)
	if m := p.Modal(); !m.IsOpen() || m.Project().ID != p.Projects()[1].ID {
		t.Errorf("modal open = %v, project = %+v", m.IsOpen(), m.Project())
	}
}

func TestSectionReveal(t *testing.T) {
	p := newTestPage(t, VariantClassic, nil)
	w := p.Window()
	hero, about := p.Sections()[0], p.Sections()[1]
	advance(w, 1)
	if about.Opacity() != 0 || about.Offset() != revealDistance {
		t.Errorf("about before reveal: opacity %v offset %v", about.Opacity(), about.Offset())
	}

	// about's top crosses 80% of the viewport at 160 and 30% at 560.
	w.ScrollTo(360)
	advance(w, 1)
	if !near(hero.Offset(), -0.3*800*0.45, 1e-9) {
		t.Errorf("hero parallax offset = %v, want %v", hero.Offset(), -0.3*800*0.45)
	}
	if about.Progress() >= 0.5 {
		t.Errorf("reveal jumped to %v without scrubbing", about.Progress())
	}
	advance(w, 1200)
	if !near(about.Opacity(), 0.5, 1e-3) || !near(about.Offset(), 50, 0.1) {
		t.Errorf("about mid reveal: opacity %v offset %v", about.Opacity(), about.Offset())
	}
}

func TestHeroIntro(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	title, sub := p.view.heroTitle, p.view.heroSub
	advanceFor(w, 400*time.Millisecond)
	if title.Alpha != 0 || sub.Alpha != 0 || title.Y != titleRise {
		t.Errorf("intro started early: title %v at %v, subtitle %v", title.Alpha, title.Y, sub.Alpha)
	}
	advanceFor(w, 500*time.Millisecond)
	if title.Alpha <= 0 || title.Y >= titleRise || sub.Alpha != 0 {
		t.Errorf("after 0.9s: title %v at %v, subtitle %v", title.Alpha, title.Y, sub.Alpha)
	}
	advanceFor(w, 2*time.Second)
	if title.Alpha != 1 || title.Y != 0 || sub.Alpha != 1 || sub.Y != 0 {
		t.Errorf("intro unfinished: title %v/%v subtitle %v/%v", title.Alpha, title.Y, sub.Alpha, sub.Y)
	}
}

func TestHeroIntroSurvivesResize(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	title := p.view.heroTitle
	advanceFor(w, time.Second)
	w.Resize(900, 700)
	if p.view.heroTitle != title || title.IsDisposed() {
		t.Fatal("resize replaced the hero title mid-intro")
	}
	advanceFor(w, 3*time.Second)
	if title.Alpha != 1 || title.Y != 0 {
		t.Errorf("title %v at %v after resize", title.Alpha, title.Y)
	}
	if x, y := p.view.titleSlot.X, p.view.titleSlot.Y; x != 450 || !near(y, 266, 1e-6) {
		t.Errorf("title slot at (%v, %v)", x, y)
	}
}

func TestScriptedScrollHoldsWithSmoothScrolling(t *testing.T) {
	p := newTestPage(t, VariantWorks, func(c *Config) { c.Scroll.Smooth = true })
	w := p.Window()
	r, err := folio.LoadScript([]byte(`{"steps":[
		{"action":"scroll","y":1600},
		{"action":"wait","frames":60}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for !r.Done() {
		r.Step(w)
		w.Advance(frame)
	}
	if w.ScrollY() != 1600 {
		t.Errorf("ScrollY = %v after a scripted scroll to 1600", w.ScrollY())
	}
	if got := p.Context().Scroller.Target(); got != 1600 {
		t.Errorf("scroller target = %v", got)
	}
}

func TestNavbarMenu(t *testing.T) {
	p := newTestPage(t, VariantWorks, func(c *Config) { c.Scroll.Smooth = true })
	w := p.Window()
	nb := p.Navbar()
	if nb.HitTest(5, 5) || nb.HitTest(640, 40) {
		t.Error("empty bar claims clicks")
	}
	if ev := w.PointerDown(center(nb.ButtonBounds())); !ev.Consumed() || !nb.Open() {
		t.Fatal("button did not open the menu")
	}
	advanceFor(w, 600*time.Millisecond)
	if nb.Reveal() != 1 {
		t.Errorf("menu unfolded to %v", nb.Reveal())
	}

	w.Wheel(300)
	advance(w, 30)
	if w.ScrollY() != 0 {
		t.Errorf("page scrolled to %v under the open menu", w.ScrollY())
	}

	r, ok := nb.LinkBounds("Contact")
	if !ok || r.Y < navHeight {
		t.Fatalf("contact link at %+v", r)
	}
	if ev := w.PointerDown(center(r)); !ev.Consumed() || nb.Open() {
		t.Fatal("link did not close the menu")
	}
	advance(w, 300)
	if top := p.section("contact").Top; !near(w.ScrollY(), top, 1e-6) {
		t.Errorf("ScrollY = %v, want contact top %v", w.ScrollY(), top)
	}
	if nb.Reveal() != 0 {
		t.Errorf("menu left at %v", nb.Reveal())
	}

	w.PointerDown(center(nb.NameBounds()))
	advance(w, 300)
	if w.ScrollY() != 0 {
		t.Errorf("name click left ScrollY at %v", w.ScrollY())
	}
}

func TestNavbarTrail(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	nb := p.Navbar()
	w.MovePointer(640, 500)
	if nb.trail.Visible {
		t.Error("trail follows the pointer below the bar")
	}
	w.MovePointer(300, 40)
	advanceFor(w, 200*time.Millisecond)
	if !nb.trail.Visible || nb.trail.X != 300 || nb.trail.Y != 40 {
		t.Errorf("trail at (%v, %v) visible %v", nb.trail.X, nb.trail.Y, nb.trail.Visible)
	}
}

func TestIntroDoor(t *testing.T) {
	p := newTestPage(t, VariantWorks, func(c *Config) { c.Doors = true })
	w := p.Window()
	if p.IntroDoor() == nil {
		t.Fatal("no intro door")
	}
	if ev := w.PointerDown(640, 400); !ev.Consumed() {
		t.Error("intro door let a click through")
	}
	advanceFor(w, 4*time.Second)
	if p.IntroDoor() != nil {
		t.Error("intro door still playing after 4s")
	}
	if ev := w.PointerDown(5, 5); ev.Consumed() {
		t.Error("click consumed after the intro door left")
	}
	if p.Compositor().Find("galaxy-intro") != nil {
		t.Error("intro door layer still mounted")
	}
}

func TestOutroDoorAtBottom(t *testing.T) {
	p := newTestPage(t, VariantWorks, func(c *Config) { c.Doors = true })
	w := p.Window()
	advanceFor(w, 4*time.Second)
	if p.OutroDoor() != nil {
		t.Fatal("outro door mounted at the top")
	}

	w.ScrollTo(w.MaxScroll() - 50)
	if p.OutroDoor() == nil || p.Compositor().Find("galaxy-outro") == nil {
		t.Fatal("no outro door within 100px of the bottom")
	}
	w.ScrollTo(0)
	if p.OutroDoor() != nil || p.Compositor().Find("galaxy-outro") != nil {
		t.Fatal("outro door stayed after scrolling away")
	}

	w.ScrollTo(w.MaxScroll())
	first := p.OutroDoor()
	advanceFor(w, 3500*time.Millisecond)
	if !first.Done() || p.OutroDoor() != nil {
		t.Fatalf("outro done %v, still mounted %v", first.Done(), p.OutroDoor() != nil)
	}
	w.ScrollBy(-10)
	if d := p.OutroDoor(); d == nil || d == first {
		t.Error("outro door did not play again on the next scroll at the bottom")
	}
}

func TestElectricCharacterFollowsScroll(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	worksBottom := p.section("contact").Top
	_, vh := w.Size()

	w.ScrollTo(worksBottom - float64(vh) - 1)
	if p.Character() != nil {
		t.Fatal("character mounted before the works section ends")
	}
	w.ScrollTo(worksBottom - float64(vh))
	c := p.Character()
	if c == nil {
		t.Fatal("no character once the works section ends in view")
	}
	if c.DocTop != worksBottom || !near(c.Top(), float64(vh), 1e-6) {
		t.Errorf("block at %v, on screen at %v", c.DocTop, c.Top())
	}
	w.ScrollTo(w.MaxScroll())
	if p.Character() != c {
		t.Error("character remounted while in view")
	}
	w.ScrollTo(0)
	if p.Character() != nil || p.Compositor().Find("electric-character") != nil {
		t.Error("character stayed after scrolling back to the top")
	}
}

func TestPreloader(t *testing.T) {
	p := newTestPage(t, VariantWorks, func(c *Config) { c.Preloader = true })
	w := p.Window()
	pl := p.Preloader()
	if ev := w.PointerDown(640, 400); !ev.Consumed() {
		t.Error("preloader let a click through")
	}

	lastAlpha := pl.Alpha()
	for range 3600 {
		w.Advance(frame)
		if pl.Progress() > 100 || pl.Bar() > pl.Progress()+1e-9 {
			t.Fatalf("progress %v bar %v", pl.Progress(), pl.Bar())
		}
		if pl.Alpha() > lastAlpha {
			t.Fatalf("alpha rose from %v to %v", lastAlpha, pl.Alpha())
		}
		lastAlpha = pl.Alpha()
		if pl.Done() {
			break
		}
	}
	if !pl.Done() || pl.Progress() != 100 {
		t.Fatalf("preloader not done: progress %v alpha %v", pl.Progress(), pl.Alpha())
	}
	advance(w, 1)
	if ev := w.PointerDown(5, 5); ev.Consumed() {
		t.Error("click consumed after the preloader left")
	}
	if p.Compositor().Find("preloader") != nil {
		t.Error("preloader layer still mounted")
	}
}

func TestContactSubmit(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	c := p.Contact()

	if err := c.Submit(); !errors.Is(err, ErrMissingField) {
		t.Errorf("empty form: %v", err)
	}
	c.SetField(FieldName, "Ada")
	c.SetField(FieldEmail, "not-an-address")
	c.SetField(FieldMessage, "Hello")
	if err := c.Submit(); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("bad email: %v", err)
	}
	c.SetField(FieldEmail, "ada@example.com")
	if err := c.Submit(); err != nil {
		t.Fatal(err)
	}
	if c.State() != FormSubmitting {
		t.Errorf("state = %v", c.State())
	}
	if err := c.Submit(); !errors.Is(err, ErrBusy) {
		t.Errorf("second submit: %v", err)
	}
	advanceFor(w, submitDelay)
	if c.State() != FormSubmitted || c.Value(FieldName) != "" || c.Value(FieldMessage) != "" {
		t.Errorf("after send: state %v name %q", c.State(), c.Value(FieldName))
	}
	advanceFor(w, sentNoticeTime)
	if c.State() != FormIdle {
		t.Errorf("notice not cleared: %v", c.State())
	}
}

type failingSubmitter struct{ err error }

func (f failingSubmitter) Submit(s *folio.Session, _ Message, done func(error)) {
	s.After(10*time.Millisecond, func() { done(f.err) })
}

func TestContactSubmitFailure(t *testing.T) {
	boom := errors.New("smtp down")
	cfg := DefaultConfig()
	cfg.Preloader = false
	p, err := NewPage(cfg, nil, zaptest.NewLogger(t), WithSubmitter(failingSubmitter{boom}))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Dispose()
	c := p.Contact()
	c.SetField(FieldName, "Ada")
	c.SetField(FieldEmail, "ada@example.com")
	c.SetField(FieldMessage, "Hello")
	if err := c.Submit(); err != nil {
		t.Fatal(err)
	}
	advance(p.Window(), 2)
	if c.State() != FormIdle || !errors.Is(c.Err(), boom) || c.Value(FieldName) != "Ada" {
		t.Errorf("state %v err %v name %q", c.State(), c.Err(), c.Value(FieldName))
	}
}

func TestContactFieldLimit(t *testing.T) {
	long := strings.Repeat("a", 2500)
	tests := []struct {
		name  string
		field Field
		in    string
		want  string
	}{
		{"message cut", FieldMessage, long, long[:2000]},
		{"message keeps whole characters", FieldMessage, long[:1999] + "é" + "b", long[:1999]},
		{"message with early invalid byte", FieldMessage, "\xff" + long, "\xff" + long[:1999]},
		{"message under limit", FieldMessage, "héllo", "héllo"},
		{"name uncapped", FieldName, long, long},
		{"email uncapped", FieldEmail, long + "@example.com", long + "@example.com"},
	}
	p := newTestPage(t, VariantWorks, nil)
	c := p.Contact()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetField(tt.field, tt.in)
			if got := c.Value(tt.field); got != tt.want {
				t.Errorf("len %d, want len %d", len(got), len(tt.want))
			}
		})
	}
}

func TestContactTyping(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	c := p.Contact()
	w.ScrollTo(p.Sections()[3].Top)
	advance(w, 600)

	if ev := w.TypeText("x"); ev.DefaultPrevented() {
		t.Error("text taken with no field focused")
	}
	x, y := center(c.FieldRect(FieldName))
	w.PointerDown(x, y)
	if c.Focused() != FieldName {
		t.Fatalf("focused = %v", c.Focused())
	}
	if ev := w.TypeText("Adaa"); !ev.DefaultPrevented() {
		t.Error("focused field did not take the text")
	}
	w.PressKey(folio.KeyBackspace)
	w.PressKey(folio.KeyTab)
	w.TypeText("ada@example.com")
	if c.Value(FieldName) != "Ada" || c.Value(FieldEmail) != "ada@example.com" {
		t.Errorf("values %q %q", c.Value(FieldName), c.Value(FieldEmail))
	}
	w.PointerDown(5, 5)
	if c.Focused() != -1 {
		t.Errorf("focus kept after clicking away: %v", c.Focused())
	}
}

func TestThemeToggle(t *testing.T) {
	p := newTestPage(t, VariantClassic, nil)
	w := p.Window()
	advance(w, 30)
	x, y := center(p.Toggle().Bounds())
	w.PointerDown(x, y)
	if p.Context().Theme != folio.ThemeLight {
		t.Errorf("theme = %v after toggle", p.Context().Theme)
	}
	w.PointerDown(x, y)
	if p.Context().Theme != folio.ThemeDark {
		t.Errorf("theme = %v after second toggle", p.Context().Theme)
	}
}

func TestWatchProjects(t *testing.T) {
	p := newTestPage(t, VariantWorks, nil)
	w := p.Window()
	ch := make(chan content.Update, 1)
	p.WatchProjects(ch)

	two := content.Default()[:2]
	ch <- content.Update{Projects: two}
	advance(w, 1)
	if len(p.Projects()) != 2 {
		t.Fatalf("projects = %d", len(p.Projects()))
	}
	if want := 2*0.1*1280 + 2*0.45*1280 - 1280; !near(p.Showcase().Span(), want, 1e-6) {
		t.Errorf("Span = %v, want %v", p.Showcase().Span(), want)
	}

	ch <- content.Update{Err: content.ErrInvalidProject}
	advance(w, 1)
	if len(p.Projects()) != 2 {
		t.Errorf("bad reload replaced the list: %d", len(p.Projects()))
	}
	close(ch)
	advance(w, 1)
}

func TestDebugOverlay(t *testing.T) {
	p := newTestPage(t, VariantClassic, func(c *Config) {
		c.Debug = true
		c.StatsInterval = 500 * time.Millisecond
	})
	if p.Compositor().Find("fps") == nil {
		t.Error("fps layer missing")
	}
	advanceFor(p.Window(), time.Second)
	if st := p.stats.Last(); st.Frame == 0 || st.Layers == 0 {
		t.Errorf("stats not reported: %+v", st)
	}
}

func TestDisposeReleasesWindow(t *testing.T) {
	for _, v := range []Variant{VariantClassic, VariantWorks} {
		t.Run(string(v), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Variant = v
			p, err := NewPage(cfg, nil, zaptest.NewLogger(t))
			if err != nil {
				t.Fatal(err)
			}
			w := p.Window()
			advance(w, 120)
			w.PointerDown(640, 400)
			w.ScrollTo(w.MaxScroll())
			advance(w, 10)
			p.Dispose()
			st := folio.CollectStats(w, nil)
			if st.Frames != 0 || st.Timeouts != 0 || st.Listeners != 0 {
				t.Errorf("after dispose: %+v", st)
			}
		})
	}
}
