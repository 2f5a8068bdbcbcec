// Package site assembles the portfolio page: its sections, the project
// showcase or grid, the contact form, overlays, and the decorative layers
// chosen by the configured variant.
package site

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/effects"
	"go.uber.org/zap"
)

// outroReach is how close to the bottom of the page the outro door starts.
const outroReach = 100

type decoration interface {
	folio.Effect
	Layer() folio.LayerConfig
}

type component interface {
	folio.Effect
	layer() folio.LayerConfig
}

// hoverable is implemented by layers with interactive areas the cursor
// follower should grow over.
type hoverable interface {
	Hovered(x, y float64) bool
}

// Option configures a Page.
type Option func(*Page)

// WithSubmitter replaces the contact form's fake submitter.
func WithSubmitter(s Submitter) Option {
	return func(p *Page) { p.submitter = s }
}

// WithFontData sets the TTF/OTF data every face is built from.
func WithFontData(data []byte) Option {
	return func(p *Page) { p.fontData = data }
}

// Page is the whole portfolio. It owns the window, the root session and the
// compositor; disposing it releases every layer.
type Page struct {
	cfg       *Config
	log       *zap.Logger
	submitter Submitter
	fontData  []byte

	win      *folio.Window
	pc       *folio.PageContext
	root     *folio.Session
	comp     *folio.Compositor
	fonts    *Fonts
	sections []*Section
	projects []content.Project
	updates  <-chan content.Update

	view      *sectionsView
	grid      *ProjectGrid
	showcase  *Showcase
	dots      *effects.DotGrid
	contact   *ContactForm
	modal     *ProjectModal
	toggle    *ThemeToggle
	preloader *Preloader
	navbar    *Navbar
	lightning *effects.PointerLightning
	stats     *folio.StatsReporter

	// Scroll-driven layers of the works variant; nil while unmounted.
	intro     *folio.Layer
	outro     *folio.Layer
	character *folio.Layer
}

// NewPage builds and mounts the page. A nil projects slice uses the bundled
// list. Decorative layers that fail to mount are left out; content layers
// that fail make NewPage fail.
func NewPage(cfg *Config, projects []content.Project, log *zap.Logger, opts ...Option) (*Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if projects == nil {
		projects = content.Default()
	}
	p := &Page{cfg: cfg, log: log, projects: projects}
	for _, opt := range opts {
		opt(p)
	}
	theme, _ := cfg.theme()
	p.win = folio.NewWindow(cfg.Width, cfg.Height)
	p.pc = &folio.PageContext{Window: p.win, Theme: theme}
	p.fonts = LoadFonts(p.fontData, log)
	p.root = folio.NewSession(p.win, "page", folio.WithLogger(log))
	if err := p.root.Mount(p.setup); err != nil {
		return nil, fmt.Errorf("mount page: %w", err)
	}
	log.Info("page mounted",
		zap.String("variant", string(cfg.Variant)),
		zap.Stringer("theme", theme),
		zap.Int("layers", len(p.comp.Layers())),
		zap.Int("projects", len(projects)))
	return p, nil
}

func (p *Page) setup(s *folio.Session) error {
	// Registered before any layer so sections are placed before layers
	// remeasure on the same resize.
	s.Listen(folio.EventResize, func(*folio.Event) { p.relayout() })
	s.Listen(folio.EventPointerLeave, func(*folio.Event) { p.pc.Hovering = false })

	if p.cfg.Scroll.Smooth {
		sc := folio.NewSmoothScroller(p.cfg.Scroll.Lerp)
		if err := s.Child("smooth-scroll").Mount(sc.Mount); err != nil {
			return err
		}
		p.pc.Scroller = sc
	}

	p.comp = folio.NewCompositor(s)
	if p.cfg.Variant == VariantClassic {
		p.sections = classicSections()
	} else {
		p.sections = worksSections()
	}
	for _, sec := range p.sections {
		if sec.ID == "works" && p.cfg.Variant == VariantWorks {
			continue
		}
		sec.bind(p.cfg.Scroll.Scrub)
	}
	p.modal = NewProjectModal(p.pc, p.fonts)
	p.modal.OnClose = func() { p.log.Debug("project modal closed") }
	p.view = newSectionsView(p.pc, p.fonts, p.sections)
	p.contact = NewContactForm(p.pc, p.fonts, p.section("contact"), p.submitter)
	p.toggle = NewThemeToggle(p.pc)
	seed := p.cfg.Seed

	switch p.cfg.Variant {
	case VariantClassic:
		p.decorate(effects.NewElectricBackground(seed))
		p.decorate(effects.NewElectricPulse())
		p.decorate(effects.NewSparks(seed + 1))
		p.grid = NewProjectGrid(p.pc, p.fonts, p.section("works"), p.projects, p.modal)
		if err := p.add(p.view, p.grid, p.contact); err != nil {
			return err
		}
	default:
		p.decorate(effects.NewParticleBackground(seed))
		p.decorate(effects.NewThunderstorm(seed + 1))
		p.decorate(effects.NewLightningField(seed + 2))
		p.decorate(effects.NewSparks(seed + 3))
		p.lightning = effects.NewPointerLightning(seed + 5)
		p.decorate(p.lightning)
		if err := p.add(p.view); err != nil {
			return err
		}
		p.dots = effects.NewDotGrid()
		p.decorate(p.dots)
		p.showcase = NewShowcase(p.pc, p.fonts, p.section("works"), p.projects, p.dots, p.modal, p.cfg.Scroll.ShowcaseScrub)
		p.navbar = NewNavbar(p.pc, p.fonts, p.sections, seed+6)
		if err := p.add(p.showcase, p.contact, p.navbar); err != nil {
			return err
		}
	}
	if err := p.add(p.modal, p.toggle); err != nil {
		return err
	}
	p.decorate(effects.NewCursor(p.pc))
	if p.cfg.Preloader {
		p.preloader = NewPreloader(p.fonts, seed+4)
		if err := p.add(p.preloader); err != nil {
			return err
		}
	}
	if p.cfg.Doors && p.cfg.Variant == VariantWorks {
		door := effects.NewGalaxyDoor(effects.DoorIntro, seed+7)
		door.OnComplete = func() { p.intro = nil }
		p.intro, _ = p.comp.Add(door.Layer(), door)
	}
	if p.cfg.Debug {
		p.mountDebug(s)
	}
	if p.cfg.Variant == VariantWorks {
		s.Listen(folio.EventScroll, func(*folio.Event) { p.syncScrollLayers() })
	}
	p.relayout()
	return s.Start(p.update)
}

// syncScrollLayers mounts the outro door within 100px of the bottom of the
// page and the electric character once the works section has scrolled up
// into the viewport, and removes each when the page scrolls back.
func (p *Page) syncScrollLayers() {
	if p.showcase == nil {
		return
	}
	_, vh := p.win.Size()
	h := float64(vh)
	y := p.win.ScrollY()

	if p.cfg.Doors {
		atBottom := y+h >= p.win.DocumentHeight()-outroReach
		switch {
		case atBottom && p.outro == nil:
			door := effects.NewGalaxyDoor(effects.DoorOutro, p.cfg.Seed+8)
			door.OnComplete = func() { p.outro = nil }
			p.outro, _ = p.comp.Add(door.Layer(), door)
		case !atBottom && p.outro != nil:
			p.comp.Remove(p.outro)
			p.outro = nil
		}
	}

	worksBottom := p.section("contact").Top
	show := worksBottom-y <= h
	switch {
	case show && p.character == nil:
		c := effects.NewElectricCharacter(p.cfg.Seed+9, worksBottom)
		p.character, _ = p.comp.Add(c.Layer(), c)
	case !show && p.character != nil:
		p.comp.Remove(p.character)
		p.character = nil
	case show:
		p.character.Effect().(*effects.ElectricCharacter).DocTop = worksBottom
	}
}

func (p *Page) decorate(e decoration) {
	// The compositor logs the failure; the page carries on without it.
	_, _ = p.comp.Add(e.Layer(), e)
}

func (p *Page) add(cs ...component) error {
	for _, c := range cs {
		cfg := c.layer()
		if _, err := p.comp.Add(cfg, c); err != nil {
			return fmt.Errorf("mount %s: %w", cfg.Name, err)
		}
	}
	return nil
}

func (p *Page) mountDebug(s *folio.Session) {
	fps := &folio.FPSCounter{Extra: func() string {
		st := folio.CollectStats(p.win, p.comp)
		return fmt.Sprintf("layers %d  live %d", st.Layers, st.Transients)
	}}
	_, _ = p.comp.Add(folio.LayerConfig{Name: "fps", Depth: folio.DepthOverlay}, fps)
	p.stats = folio.NewStatsReporter(p.log, p.comp, p.cfg.StatsInterval)
	if err := s.Child("stats").Mount(p.stats.Mount); err != nil {
		p.log.Warn("stats reporter omitted", zap.Error(err))
	}
}

func (p *Page) section(id string) *Section {
	for _, sec := range p.sections {
		if sec.ID == id {
			return sec
		}
	}
	return nil
}

// relayout stacks the sections top to bottom, adds the showcase's pin
// spacing and sets the document height.
func (p *Page) relayout() {
	_, vh := p.win.Size()
	h := float64(vh)
	y := 0.0
	for _, sec := range p.sections {
		height := h
		switch sec.ID {
		case "works":
			if p.showcase != nil {
				p.showcase.Layout(y)
				y += h + p.showcase.PinSpacing()
				continue
			}
			if p.grid != nil {
				height = max(h, p.grid.Height())
			}
		case "contact":
			height = max(h, formTop+p.contact.Height()+2*sectionPadTop)
		}
		sec.place(y, height)
		if sec.reveal != nil {
			sec.reveal.Measure(p.win.ScrollY(), h)
		}
		y += height
	}
	p.win.SetDocumentHeight(y)
	if p.view.win != nil {
		p.view.rebuild()
	}
	if p.root.State() < folio.SessionDisposing {
		p.syncScrollLayers()
	}
	p.log.Debug("page laid out", zap.Float64("document_height", y))
}

func (p *Page) update(folio.Frame) {
	p.drainUpdates()
	if pt, ok := p.win.Pointer(); ok {
		p.pc.Hovering = p.hovered(pt.X, pt.Y)
	}
}

// hovered reports whether the frontmost pointer target under (x, y) has an
// interactive area there.
func (p *Page) hovered(x, y float64) bool {
	l := p.comp.HitTest(x, y)
	if l == nil {
		return false
	}
	h, ok := l.Effect().(hoverable)
	return ok && h.Hovered(x, y)
}

func (p *Page) drainUpdates() {
	if p.updates == nil {
		return
	}
	select {
	case u, ok := <-p.updates:
		if !ok {
			p.updates = nil
			return
		}
		if u.Err != nil {
			p.log.Warn("project reload rejected; keeping current list", zap.Error(u.Err))
			return
		}
		p.SetProjects(u.Projects)
		p.log.Info("projects reloaded", zap.Int("projects", len(u.Projects)))
	default:
	}
}

// SetProjects replaces the project cards and lays the page out again.
func (p *Page) SetProjects(ps []content.Project) {
	p.projects = ps
	if p.grid != nil {
		p.grid.SetProjects(ps)
	}
	if p.showcase != nil {
		p.showcase.SetProjects(ps)
	}
	p.relayout()
}

// WatchProjects applies reloads from ch on the page's own frame loop.
func (p *Page) WatchProjects(ch <-chan content.Update) {
	p.updates = ch
}

// Window implements folio.Page.
func (p *Page) Window() *folio.Window { return p.win }

// Context returns the shared page context.
func (p *Page) Context() *folio.PageContext { return p.pc }

// Compositor returns the layer stack.
func (p *Page) Compositor() *folio.Compositor { return p.comp }

// Sections returns the sections top to bottom.
func (p *Page) Sections() []*Section { return p.sections }

// Projects returns the current project list.
func (p *Page) Projects() []content.Project { return p.projects }

// Modal returns the project modal.
func (p *Page) Modal() *ProjectModal { return p.modal }

// Showcase returns the works variant's showcase, or nil.
func (p *Page) Showcase() *Showcase { return p.showcase }

// Grid returns the classic variant's grid, or nil.
func (p *Page) Grid() *ProjectGrid { return p.grid }

// Contact returns the contact form.
func (p *Page) Contact() *ContactForm { return p.contact }

// Preloader returns the preloader, or nil when disabled.
func (p *Page) Preloader() *Preloader { return p.preloader }

// Navbar returns the works variant's navbar, or nil.
func (p *Page) Navbar() *Navbar { return p.navbar }

// Lightning returns the works variant's pointer lightning, or nil.
func (p *Page) Lightning() *effects.PointerLightning { return p.lightning }

// IntroDoor returns the opening galaxy door while it plays, or nil.
func (p *Page) IntroDoor() *effects.GalaxyDoor { return galaxyDoor(p.intro) }

// OutroDoor returns the closing galaxy door while it is mounted, or nil.
func (p *Page) OutroDoor() *effects.GalaxyDoor { return galaxyDoor(p.outro) }

// Character returns the electric character while it is mounted, or nil.
func (p *Page) Character() *effects.ElectricCharacter {
	if p.character == nil {
		return nil
	}
	return p.character.Effect().(*effects.ElectricCharacter)
}

func galaxyDoor(l *folio.Layer) *effects.GalaxyDoor {
	if l == nil {
		return nil
	}
	return l.Effect().(*effects.GalaxyDoor)
}

// Toggle returns the theme toggle.
func (p *Page) Toggle() *ThemeToggle { return p.toggle }

// Stats returns a snapshot of the page's bookkeeping.
func (p *Page) Stats() folio.DebugStats { return folio.CollectStats(p.win, p.comp) }

// Draw implements folio.Page.
func (p *Page) Draw(dst *ebiten.Image) {
	dst.Fill(p.pc.Theme.Palette().Background.Premul())
	p.comp.Draw(dst)
}

// Dispose releases every layer and listener.
func (p *Page) Dispose() {
	p.root.Dispose()
	p.log.Debug("page disposed")
}
