package folio

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Depth is a layer's fixed position in the back-to-front stack.
type Depth uint8

const (
	DepthBackground  Depth = iota // deep background particles
	DepthWeather                  // lightning, storms, flashes
	DepthInteractive              // effects that react to pointer input
	DepthContent                  // page content
	DepthOverlay                  // cursor follower, preloader, UI overlays
)

// String returns the depth name.
func (d Depth) String() string {
	switch d {
	case DepthBackground:
		return "background"
	case DepthWeather:
		return "weather"
	case DepthInteractive:
		return "interactive"
	case DepthContent:
		return "content"
	case DepthOverlay:
		return "overlay"
	default:
		return fmt.Sprintf("depth(%d)", uint8(d))
	}
}

// PointerMode controls how a layer takes part in pointer routing.
type PointerMode uint8

const (
	// PointerNone makes the layer invisible to hit testing. Decorative layers
	// use this.
	PointerNone PointerMode = iota
	// PointerObserve delivers every pointer event to the layer, whether or
	// not another layer consumed it. The layer cannot consume.
	PointerObserve
	// PointerTarget hit-tests the layer; it receives events it contains and
	// may consume them, which stops delivery to layers beneath.
	PointerTarget
)

// Effect is one visual component. Mount allocates its resources on the
// session, Update advances it once per frame from the session's own loop, and
// Draw renders its current state.
type Effect interface {
	Mount(s *Session) error
	Update(f Frame)
	Draw(dst *ebiten.Image)
}

// PointerHandler is implemented by effects on PointerObserve or
// PointerTarget layers.
type PointerHandler interface {
	HandlePointer(ev *Event)
}

// HitTester narrows a PointerTarget layer to the area it occupies. Layers
// without one accept the whole viewport.
type HitTester interface {
	HitTest(x, y float64) bool
}

// LayerConfig describes a layer.
type LayerConfig struct {
	Name    string
	Depth   Depth
	Pointer PointerMode
	// Alpha below 1 composites the layer through its own offscreen surface.
	Alpha float64
	// Blend is the mode used to composite the layer onto layers beneath.
	Blend BlendMode
}

// Layer is a mounted effect at a fixed depth.
type Layer struct {
	cfg     LayerConfig
	effect  Effect
	session *Session
	seq     int
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.cfg.Name }

// Depth returns the layer depth.
func (l *Layer) Depth() Depth { return l.cfg.Depth }

// PointerMode returns the layer's pointer mode.
func (l *Layer) PointerMode() PointerMode { return l.cfg.Pointer }

// Effect returns the mounted effect.
func (l *Layer) Effect() Effect { return l.effect }

// Session returns the session that owns the layer's resources.
func (l *Layer) Session() *Session { return l.session }

// SetAlpha changes the layer's composite alpha.
func (l *Layer) SetAlpha(a float64) { l.cfg.Alpha = Clamp01(a) }

// Alpha returns the layer's composite alpha.
func (l *Layer) Alpha() float64 { return l.cfg.Alpha }

func (l *Layer) accepts(x, y float64) bool {
	if ht, ok := l.effect.(HitTester); ok {
		return ht.HitTest(x, y)
	}
	return true
}

// Compositor stacks layers back to front and routes pointer input front to
// back. Each layer runs in a child session of the compositor's session, so
// disposing that session tears every layer down.
type Compositor struct {
	session *Session
	log     *zap.Logger
	layers  []*Layer
	nextSeq int
}

// NewCompositor creates a compositor bound to s and starts listening for
// pointer events on s's window.
func NewCompositor(s *Session) *Compositor {
	c := &Compositor{session: s, log: s.Logger()}
	for _, t := range []EventType{EventPointerDown, EventPointerUp, EventPointerMove} {
		s.Listen(t, c.route)
	}
	s.OnDispose(func() { c.layers = nil })
	return c
}

// Add mounts e as a new layer. If mounting fails the layer is disposed and
// omitted, and the error is returned; the rest of the page is unaffected.
func (c *Compositor) Add(cfg LayerConfig, e Effect) (*Layer, error) {
	if cfg.Alpha == 0 {
		cfg.Alpha = 1
	}
	ls := c.session.Child(cfg.Name)
	l := &Layer{cfg: cfg, effect: e, session: ls, seq: c.nextSeq}
	c.nextSeq++

	err := ls.Mount(func(s *Session) error {
		if err := e.Mount(s); err != nil {
			return err
		}
		s.Listen(EventResize, func(ev *Event) {
			if s.output != nil {
				s.output.Resize(ev.Width, ev.Height)
			}
		})
		return s.Start(e.Update)
	})
	if err != nil {
		c.log.Warn("layer omitted", zap.String("layer", cfg.Name), zap.Error(err))
		return nil, err
	}

	c.layers = append(c.layers, l)
	slices.SortStableFunc(c.layers, func(a, b *Layer) int {
		if a.cfg.Depth != b.cfg.Depth {
			return int(a.cfg.Depth) - int(b.cfg.Depth)
		}
		return a.seq - b.seq
	})
	c.log.Debug("layer mounted",
		zap.String("layer", cfg.Name),
		zap.Stringer("depth", cfg.Depth))
	return l, nil
}

// Remove unmounts l and releases its resources.
func (c *Compositor) Remove(l *Layer) {
	if i := slices.Index(c.layers, l); i >= 0 {
		c.layers = slices.Delete(c.layers, i, i+1)
	}
	l.session.Dispose()
}

// Layers returns the layers back to front. The slice must not be mutated.
func (c *Compositor) Layers() []*Layer {
	return c.layers
}

// Find returns the first layer with the given name.
func (c *Compositor) Find(name string) *Layer {
	for _, l := range c.layers {
		if l.cfg.Name == name {
			return l
		}
	}
	return nil
}

// prune drops layers whose sessions were disposed elsewhere (a preloader
// that unmounts itself).
func (c *Compositor) prune() {
	c.layers = slices.DeleteFunc(c.layers, func(l *Layer) bool {
		return l.session.State() >= SessionDisposing
	})
}

// HitTest returns the frontmost PointerTarget layer containing (x, y), or nil.
func (c *Compositor) HitTest(x, y float64) *Layer {
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		if l.cfg.Pointer == PointerTarget && l.session.Active() && l.accepts(x, y) {
			return l
		}
	}
	return nil
}

// route delivers a pointer event front to back. Target layers stop the walk
// when they consume; observers see every event.
func (c *Compositor) route(ev *Event) {
	c.prune()
	// Copy so handlers may add or remove layers.
	layers := slices.Clone(c.layers)
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if !l.session.Active() {
			continue
		}
		h, ok := l.effect.(PointerHandler)
		if !ok {
			continue
		}
		switch l.cfg.Pointer {
		case PointerObserve:
			consumed := ev.consumed
			h.HandlePointer(ev)
			ev.consumed = consumed
		case PointerTarget:
			if ev.consumed || !l.accepts(ev.X, ev.Y) {
				continue
			}
			h.HandlePointer(ev)
		}
	}
}

// Draw composites every active layer onto dst, back to front.
func (c *Compositor) Draw(dst *ebiten.Image) {
	c.prune()
	for _, l := range c.layers {
		if !l.session.Active() || l.cfg.Alpha <= 0 {
			continue
		}
		if l.cfg.Alpha >= 1 && l.cfg.Blend == BlendNormal {
			l.effect.Draw(dst)
			continue
		}
		b := dst.Bounds()
		out := l.session.Output(b.Dx(), b.Dy())
		img := out.Image()
		if img == nil {
			continue
		}
		img.Clear()
		l.effect.Draw(img)
		op := &ebiten.DrawImageOptions{Blend: l.cfg.Blend.EbitenBlend()}
		op.ColorScale.ScaleAlpha(float32(l.cfg.Alpha))
		dst.DrawImage(img, op)
	}
}
