package effects

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

const (
	stormProbability = 0.03
	stormSegments    = 15
	stormDeviation   = 80
	stormSpread      = 300
	stormBranches    = 3
	stormTTL         = 400 * time.Millisecond
	stormFlashAlpha  = 0.15
	stormCap         = 8
)

// StormBolt is a screen-space bolt from the top edge to the bottom edge.
type StormBolt struct {
	// Points runs top to bottom; the first and last are exact, the rest
	// deviate from the straight line.
	Points   [stormSegments + 1]folio.Vec2
	Branches [stormBranches][2]folio.Vec2
}

// Thunderstorm strikes full-height bolts across the viewport, each with three
// short branches and a faint flash that fill the screen. Bolts fade over
// 400ms.
type Thunderstorm struct {
	Seed uint64

	win     *folio.Window
	spawner *folio.Spawner
	bolts   *folio.TransientPool[*StormBolt]
	free    []*StormBolt
	now     time.Duration
	core    folio.LineBatch
	glow    folio.LineBatch
}

// NewThunderstorm creates the storm.
func NewThunderstorm(seed uint64) *Thunderstorm {
	return &Thunderstorm{Seed: seed}
}

// Layer returns the storm's layer, screen-blended over the background.
func (t *Thunderstorm) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "thunderstorm", Depth: folio.DepthWeather, Blend: folio.BlendScreen}
}

// Mount allocates the bolt pool.
func (t *Thunderstorm) Mount(s *folio.Session) error {
	t.win = s.Window()
	t.spawner = folio.NewSpawner(stormProbability, folio.NewRand(t.Seed))
	t.bolts = folio.NewTransientPool(stormCap, func(b *StormBolt) { t.free = append(t.free, b) })
	s.Own(t.bolts)
	t.glow.Blend = folio.BlendAdd
	return nil
}

// Update expires faded bolts and rolls for a strike.
func (t *Thunderstorm) Update(f folio.Frame) {
	t.now = f.Elapsed
	t.bolts.Update(t.now)
	if !t.spawner.Trial() {
		return
	}
	w, h := t.win.Size()
	var b *StormBolt
	if n := len(t.free); n > 0 {
		b, t.free = t.free[n-1], t.free[:n-1]
	} else {
		b = &StormBolt{}
	}
	t.strike(b, float64(w), float64(h))
	t.bolts.Spawn(b, t.now, stormTTL)
}

func (t *Thunderstorm) strike(b *StormBolt, w, h float64) {
	rng := t.spawner.Rand()
	start := folio.Vec2{X: rng.Float64() * w}
	end := folio.Vec2{X: start.X + jitter(rng, stormSpread), Y: h}
	b.Points[0] = start
	for i := 1; i < stormSegments; i++ {
		k := float64(i) / stormSegments
		b.Points[i] = folio.Vec2{
			X: folio.Lerp(start.X, end.X, k) + jitter(rng, stormDeviation),
			Y: folio.Lerp(start.Y, end.Y, k) + jitter(rng, stormDeviation),
		}
	}
	b.Points[stormSegments] = end
	for i := range b.Branches {
		from := b.Points[rng.IntN(len(b.Points))]
		b.Branches[i] = [2]folio.Vec2{from, {X: from.X + jitter(rng, 100), Y: from.Y + rng.Float64()*100}}
	}
}

// fade returns the remaining intensity of a bolt, 1 at birth easing out to
// 0 at expiry.
func fade(age float64) float64 {
	return 1 - float64(ease.OutQuad(float32(age), 0, 1, 1))
}

// Draw renders the flash, the glow, and the bolt cores.
func (t *Thunderstorm) Draw(dst *ebiten.Image) {
	w, h := t.win.Size()
	t.core.Reset()
	t.glow.Reset()
	flash := 0.0
	t.bolts.Each(func(tr *folio.Transient[*StormBolt]) {
		k := fade(tr.Age(t.now))
		flash = max(flash, stormFlashAlpha*k)
		b := tr.Value
		t.glow.Polyline(b.Points[:], 12, electricBlue.WithAlpha(0.25*k))
		t.core.Polyline(b.Points[:], 3, electricBlue.WithAlpha(k))
		for _, br := range b.Branches {
			t.glow.Segment(br[0], br[1], 8, electricBlue.WithAlpha(0.2*k))
			t.core.Segment(br[0], br[1], 1.5, electricBlue.WithAlpha(k))
		}
	})
	if flash > 0 {
		vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), electricBlue.WithAlpha(flash).Premul(), false)
	}
	t.glow.Draw(dst)
	t.core.Draw(dst)
}

// Bolts calls fn for every live bolt with its remaining intensity.
func (t *Thunderstorm) Bolts(fn func(b *StormBolt, intensity float64)) {
	t.bolts.Each(func(tr *folio.Transient[*StormBolt]) { fn(tr.Value, fade(tr.Age(t.now))) })
}

// LiveTransients reports live bolts.
func (t *Thunderstorm) LiveTransients() int {
	return t.bolts.Len()
}
