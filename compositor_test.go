package folio

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
)

type stubEffect struct {
	name    string
	log     *[]string
	mountFn func(s *Session) error
	consume bool
	bounds  *Rect
	frames  int
	seen    []EventType
}

func (e *stubEffect) Mount(s *Session) error {
	if e.mountFn != nil {
		return e.mountFn(s)
	}
	return nil
}

func (e *stubEffect) Update(Frame) { e.frames++ }

func (e *stubEffect) Draw(*ebiten.Image) {
	*e.log = append(*e.log, e.name)
}

func (e *stubEffect) HandlePointer(ev *Event) {
	e.seen = append(e.seen, ev.Type)
	*e.log = append(*e.log, "pointer "+e.name)
	if e.consume {
		ev.Consume()
	}
}

func (e *stubEffect) HitTest(x, y float64) bool {
	return e.bounds == nil || e.bounds.Contains(x, y)
}

func newTestCompositor(t *testing.T) (*Window, *Session, *Compositor) {
	t.Helper()
	w := NewWindow(800, 600)
	s := mountedSession(t, w, "page")
	return w, s, NewCompositor(s)
}

func TestCompositorDrawOrder(t *testing.T) {
	_, _, c := newTestCompositor(t)
	var log []string
	add := func(name string, d Depth) {
		t.Helper()
		if _, err := c.Add(LayerConfig{Name: name, Depth: d}, &stubEffect{name: name, log: &log}); err != nil {
			t.Fatal(err)
		}
	}
	add("cursor", DepthOverlay)
	add("sparks", DepthInteractive)
	add("particles", DepthBackground)
	add("lightning", DepthWeather)
	add("storm", DepthWeather)
	add("content", DepthContent)

	c.Draw(nil)
	want := []string{"particles", "lightning", "storm", "sparks", "content", "cursor"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("draw order (-want +got):\n%s", diff)
	}
}

func TestCompositorLayersRunOwnLoops(t *testing.T) {
	w, _, c := newTestCompositor(t)
	var log []string
	a := &stubEffect{name: "a", log: &log}
	b := &stubEffect{name: "b", log: &log}
	c.Add(LayerConfig{Name: "a"}, a)
	c.Add(LayerConfig{Name: "b", Depth: DepthOverlay}, b)
	for range 3 {
		w.Advance(frame60)
	}
	if a.frames != 3 || b.frames != 3 {
		t.Errorf("frames = %d/%d, want 3/3", a.frames, b.frames)
	}
}

func TestCompositorFailedMountOmitted(t *testing.T) {
	w, _, c := newTestCompositor(t)
	var log []string
	errBoom := errors.New("no context")
	var released bool
	bad := &stubEffect{name: "bad", log: &log, mountFn: func(s *Session) error {
		s.OwnFunc(func() { released = true })
		return errBoom
	}}
	l, err := c.Add(LayerConfig{Name: "bad", Depth: DepthBackground}, bad)
	if !errors.Is(err, errBoom) || l != nil {
		t.Fatalf("Add = %v, %v; want nil, errBoom", l, err)
	}
	if !released {
		t.Error("resources acquired before the failure were not released")
	}
	good := &stubEffect{name: "good", log: &log}
	if _, err := c.Add(LayerConfig{Name: "good"}, good); err != nil {
		t.Fatal(err)
	}
	w.Advance(frame60)
	c.Draw(nil)
	if bad.frames != 0 || good.frames != 1 {
		t.Errorf("frames = %d/%d, want 0/1", bad.frames, good.frames)
	}
	if diff := cmp.Diff([]string{"good"}, log); diff != "" {
		t.Errorf("drawn (-want +got):\n%s", diff)
	}
	if len(c.Layers()) != 1 {
		t.Errorf("layers = %d, want 1", len(c.Layers()))
	}
}

func TestCompositorPointerRouting(t *testing.T) {
	tests := []struct {
		name     string
		at       Vec2
		want     []string
		consumed bool
	}{
		{
			name:     "modal consumes",
			at:       Vec2{400, 300},
			want:     []string{"pointer modal", "pointer sparks"},
			consumed: true,
		},
		{
			name:     "outside modal reaches card",
			at:       Vec2{50, 50},
			want:     []string{"pointer card", "pointer sparks"},
			consumed: true,
		},
		{
			name: "nothing hit",
			at:   Vec2{790, 590},
			want: []string{"pointer sparks"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, c := newTestCompositor(t)
			var log []string
			c.Add(LayerConfig{Name: "background", Depth: DepthBackground},
				&stubEffect{name: "background", log: &log})
			c.Add(LayerConfig{Name: "card", Depth: DepthContent, Pointer: PointerTarget},
				&stubEffect{name: "card", log: &log, consume: true, bounds: &Rect{0, 0, 100, 100}})
			c.Add(LayerConfig{Name: "sparks", Depth: DepthInteractive, Pointer: PointerObserve},
				&stubEffect{name: "sparks", log: &log, consume: true})
			c.Add(LayerConfig{Name: "modal", Depth: DepthOverlay, Pointer: PointerTarget},
				&stubEffect{name: "modal", log: &log, consume: true, bounds: &Rect{200, 200, 400, 200}})

			ev := w.PointerDown(tt.at.X, tt.at.Y)
			if diff := cmp.Diff(tt.want, log); diff != "" {
				t.Errorf("delivery (-want +got):\n%s", diff)
			}
			if ev.Consumed() != tt.consumed {
				t.Errorf("Consumed = %v, want %v", ev.Consumed(), tt.consumed)
			}
		})
	}
}

func TestObserverCannotConsume(t *testing.T) {
	w, _, c := newTestCompositor(t)
	var log []string
	c.Add(LayerConfig{Name: "card", Depth: DepthContent, Pointer: PointerTarget},
		&stubEffect{name: "card", log: &log})
	c.Add(LayerConfig{Name: "cursor", Depth: DepthOverlay, Pointer: PointerObserve},
		&stubEffect{name: "cursor", log: &log, consume: true})
	ev := w.PointerDown(10, 10)
	if diff := cmp.Diff([]string{"pointer cursor", "pointer card"}, log); diff != "" {
		t.Errorf("delivery (-want +got):\n%s", diff)
	}
	if ev.Consumed() {
		t.Error("observer consumed the event")
	}
}

func TestDecorativeLayersIgnorePointer(t *testing.T) {
	w, _, c := newTestCompositor(t)
	var log []string
	e := &stubEffect{name: "particles", log: &log}
	c.Add(LayerConfig{Name: "particles", Depth: DepthBackground}, e)
	w.PointerDown(10, 10)
	w.MovePointer(20, 20)
	if len(e.seen) != 0 {
		t.Errorf("decorative layer saw %v", e.seen)
	}
	if c.HitTest(10, 10) != nil {
		t.Error("decorative layer should not be hit")
	}
}

func TestCompositorHitTest(t *testing.T) {
	_, _, c := newTestCompositor(t)
	var log []string
	card, _ := c.Add(LayerConfig{Name: "card", Depth: DepthContent, Pointer: PointerTarget},
		&stubEffect{name: "card", log: &log, bounds: &Rect{0, 0, 100, 100}})
	modal, _ := c.Add(LayerConfig{Name: "modal", Depth: DepthOverlay, Pointer: PointerTarget},
		&stubEffect{name: "modal", log: &log, bounds: &Rect{50, 50, 100, 100}})
	tests := []struct {
		x, y float64
		want *Layer
	}{
		{10, 10, card},
		{75, 75, modal},
		{500, 500, nil},
	}
	for _, tt := range tests {
		if got := c.HitTest(tt.x, tt.y); got != tt.want {
			t.Errorf("HitTest(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCompositorRemoveAndPrune(t *testing.T) {
	w, page, c := newTestCompositor(t)
	var log []string
	a, _ := c.Add(LayerConfig{Name: "a"}, &stubEffect{name: "a", log: &log})
	b, _ := c.Add(LayerConfig{Name: "preloader", Depth: DepthOverlay}, &stubEffect{name: "preloader", log: &log})
	c.Remove(a)
	if a.Session().State() != SessionDisposed {
		t.Error("removed layer session not disposed")
	}
	b.Session().Dispose()
	c.Draw(nil)
	if len(log) != 0 || len(c.Layers()) != 0 {
		t.Errorf("drew %v with %d layers, want nothing", log, len(c.Layers()))
	}
	if c.Find("preloader") != nil {
		t.Error("Find returned a pruned layer")
	}
	page.Dispose()
	if n := w.PendingFrames(); n != 0 {
		t.Errorf("pending frames = %d after page dispose, want 0", n)
	}
	if n := w.ListenerCount(EventPointerDown); n != 0 {
		t.Errorf("pointer listeners = %d after page dispose, want 0", n)
	}
}

func TestPageDisposeTearsDownLayers(t *testing.T) {
	_, page, c := newTestCompositor(t)
	var log []string
	l, _ := c.Add(LayerConfig{Name: "a"}, &stubEffect{name: "a", log: &log})
	page.Dispose()
	if l.Session().State() != SessionDisposed {
		t.Error("layer outlived its page")
	}
	if len(c.Layers()) != 0 {
		t.Error("layers not cleared")
	}
}

func TestLayerAlpha(t *testing.T) {
	_, _, c := newTestCompositor(t)
	var log []string
	l, _ := c.Add(LayerConfig{Name: "a"}, &stubEffect{name: "a", log: &log})
	if l.Alpha() != 1 {
		t.Errorf("default alpha = %v, want 1", l.Alpha())
	}
	l.SetAlpha(1.5)
	if l.Alpha() != 1 {
		t.Errorf("alpha = %v, want clamped to 1", l.Alpha())
	}
	l.SetAlpha(0)
	c.Draw(nil)
	if len(log) != 0 {
		t.Error("fully transparent layer was drawn")
	}
}

func TestDepthString(t *testing.T) {
	if DepthWeather.String() != "weather" || Depth(42).String() != "depth(42)" {
		t.Error("unexpected depth names")
	}
}
