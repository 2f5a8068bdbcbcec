package effects

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

const (
	sparkCap     = 256
	sparkTexSize = 64
	sparkSpread  = 1.5
	sparkMaxLife = time.Second
)

// sparkCamera views the spark plane from z = 50, so one world unit is a few
// pixels wide.
var sparkCamera = folio.Perspective{FOV: 75, Distance: 50, Near: 0.1}

var sparkColor = folio.Color{R: 220.0 / 255, G: 220.0 / 255, B: 1, A: 0.8}

// Spark is one glowing dot spawned by a click.
type Spark struct {
	// Pos is the center in viewport pixels.
	Pos folio.Vec2

	// ScaleX and ScaleY are the sprite size in world units.
	ScaleX, ScaleY float64
	Alpha          float64

	tweens [3]*folio.TweenGroup
}

// Done reports whether every tween on the spark has finished.
func (s *Spark) Done() bool {
	for _, g := range s.tweens {
		if !g.Finished() {
			return false
		}
	}
	return true
}

// Sparks bursts 5 to 9 sparks wherever the pointer goes down. Each swells for
// 40% of its 0.3 to 0.7s life, then shrinks to nothing while its opacity
// falls away. It observes pointer input and never consumes it.
type Sparks struct {
	Seed uint64

	win    *folio.Window
	rng    *rand.Rand
	sparks *folio.TransientPool[*Spark]
	now    time.Duration
	tex    *folio.Surface
	ready  bool
}

// NewSparks creates the effect.
func NewSparks(seed uint64) *Sparks {
	return &Sparks{Seed: seed}
}

// Layer returns the sparks' interactive layer.
func (e *Sparks) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "sparks", Depth: folio.DepthInteractive, Pointer: folio.PointerObserve}
}

// Mount allocates the pool and the spark texture.
func (e *Sparks) Mount(s *folio.Session) error {
	e.win = s.Window()
	e.rng = folio.NewRand(e.Seed)
	e.sparks = folio.NewTransientPool[*Spark](sparkCap, nil)
	s.Own(e.sparks)
	e.tex = s.NewSurface(sparkTexSize, sparkTexSize)
	return nil
}

// HandlePointer spawns a burst on pointer down.
func (e *Sparks) HandlePointer(ev *folio.Event) {
	if ev.Type != folio.EventPointerDown {
		return
	}
	e.Burst(ev.X, ev.Y)
}

// Burst spawns sparks around (x, y) in viewport pixels.
func (e *Sparks) Burst(x, y float64) {
	w, h := e.win.Size()
	ppu := float64(h) / 2 / sparkCamera.VisibleHalfExtent(w, h).Y
	n := 5 + e.rng.IntN(5)
	for range n {
		d := float32(0.3 + e.rng.Float64()*0.4)
		initial := e.rng.Float64()*1.5 + 0.5
		peakX := initial * (1.5 + e.rng.Float64())
		peakY := initial * (1.5 + e.rng.Float64())
		sp := &Spark{
			Pos: folio.Vec2{
				X: x + (e.rng.Float64()-0.5)*sparkSpread*ppu,
				Y: y + (e.rng.Float64()-0.5)*sparkSpread*ppu,
			},
			ScaleX: initial,
			ScaleY: initial,
			Alpha:  sparkColor.A,
		}
		sp.tweens[0] = folio.Chain(
			folio.TweenValue(&sp.ScaleX, initial, peakX, d*0.4, ease.OutQuad),
			folio.TweenValue(&sp.ScaleX, peakX, 0.01, d*0.6, ease.InQuad))
		sp.tweens[1] = folio.Chain(
			folio.TweenValue(&sp.ScaleY, initial, peakY, d*0.4, ease.OutQuad),
			folio.TweenValue(&sp.ScaleY, peakY, 0.01, d*0.6, ease.InQuad))
		sp.tweens[2] = folio.TweenValue(&sp.Alpha, sparkColor.A, 0, d, ease.OutExpo)
		e.sparks.Spawn(sp, e.now, sparkMaxLife)
	}
}

// Update advances every spark's tweens and drops finished ones. A spark
// lives until its tweens end, capped at sparkMaxLife.
func (e *Sparks) Update(f folio.Frame) {
	e.now = f.Elapsed
	dt := float32(f.DeltaSeconds())
	e.sparks.Each(func(t *folio.Transient[*Spark]) {
		for _, g := range t.Value.tweens {
			g.Update(dt)
		}
		if t.Value.Done() {
			t.TTL = 0
		}
	})
	e.sparks.Update(e.now)
}

// Draw renders the sparks additively.
func (e *Sparks) Draw(dst *ebiten.Image) {
	if e.sparks.Len() == 0 {
		return
	}
	img := e.tex.Image()
	if img == nil {
		return
	}
	if !e.ready {
		const c = sparkTexSize / 2
		vector.DrawFilledCircle(img, c, c, c-2, sparkColor.Premul(), true)
		e.ready = true
	}
	w, h := e.win.Size()
	ppu := float64(h) / 2 / sparkCamera.VisibleHalfExtent(w, h).Y
	e.sparks.Each(func(t *folio.Transient[*Spark]) {
		sp := t.Value
		sx := sp.ScaleX * ppu / sparkTexSize
		sy := sp.ScaleY * ppu / sparkTexSize
		op := &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter}
		op.GeoM.Translate(-sparkTexSize/2, -sparkTexSize/2)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(sp.Pos.X, sp.Pos.Y)
		op.ColorScale.ScaleAlpha(float32(sp.Alpha))
		dst.DrawImage(img, op)
	})
}

// Each calls fn for every live spark.
func (e *Sparks) Each(fn func(sp *Spark)) {
	e.sparks.Each(func(t *folio.Transient[*Spark]) { fn(t.Value) })
}

// LiveTransients reports live sparks.
func (e *Sparks) LiveTransients() int {
	return e.sparks.Len()
}
