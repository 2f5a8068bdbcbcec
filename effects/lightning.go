package effects

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
)

const (
	lightningCap         = 15
	lightningProbability = 0.05
	branchProbability    = 0.03
)

// Bolt is one jagged line in world space.
type Bolt struct {
	Points []folio.Vec3
	Color  folio.Color
	Branch bool
}

// LightningField flickers short-lived 3D bolts in front of the background.
// At most 15 bolts (branches included) are alive at once; each vanishes
// after 100 to 300ms, branches after 50 to 150ms.
type LightningField struct {
	Seed uint64

	win      *folio.Window
	spawner  *folio.Spawner
	branches *folio.Spawner
	bolts    *folio.TransientPool[*Bolt]
	free     []*Bolt
	lines    folio.LineBatch
	scratch  []folio.Vec2
}

// NewLightningField creates the field.
func NewLightningField(seed uint64) *LightningField {
	return &LightningField{Seed: seed}
}

// Layer returns the field's layer, drawn faintly over the background.
func (l *LightningField) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "lightning", Depth: folio.DepthWeather, Alpha: 0.3}
}

// Mount allocates the bolt pool.
func (l *LightningField) Mount(s *folio.Session) error {
	l.win = s.Window()
	rng := folio.NewRand(l.Seed)
	l.spawner = folio.NewSpawner(lightningProbability, rng)
	l.branches = folio.NewSpawner(branchProbability, rng)
	l.bolts = folio.NewTransientPool(lightningCap, l.recycle)
	s.Own(l.bolts)
	return nil
}

func (l *LightningField) recycle(b *Bolt) {
	b.Points = b.Points[:0]
	l.free = append(l.free, b)
}

func (l *LightningField) alloc() *Bolt {
	if n := len(l.free); n > 0 {
		b := l.free[n-1]
		l.free = l.free[:n-1]
		return b
	}
	return &Bolt{}
}

// Update expires old bolts and rolls for new ones.
func (l *LightningField) Update(f folio.Frame) {
	now := f.Elapsed
	l.bolts.Update(now)

	rng := l.spawner.Rand()
	if !l.bolts.Full() && l.spawner.Trial() {
		b := l.alloc()
		p := folio.Vec3{X: jitter(rng, 20), Y: rng.Float64()*10 - 5, Z: jitter(rng, 5)}
		b.Points = append(b.Points, p)
		for range 5 + rng.IntN(10) {
			p = folio.Vec3{X: p.X + jitter(rng, 3), Y: p.Y + jitter(rng, 3), Z: p.Z + jitter(rng, 0.5)}
			b.Points = append(b.Points, p)
		}
		b.Color = boltColor(rng)
		b.Branch = false
		l.bolts.Spawn(b, now, time.Duration(between(rng, 100, 300))*time.Millisecond)
	}

	if l.bolts.Len() > 0 && l.branches.Trial() {
		src := l.bolts.At(rng.IntN(l.bolts.Len())).Value
		b := l.alloc()
		p := src.Points[rng.IntN(len(src.Points)-1)]
		b.Points = append(b.Points, p)
		for range 2 + rng.IntN(3) {
			p = folio.Vec3{X: p.X + jitter(rng, 2), Y: p.Y + jitter(rng, 2), Z: p.Z + jitter(rng, 0.5)}
			b.Points = append(b.Points, p)
		}
		b.Color = boltColor(rng)
		b.Branch = true
		l.bolts.Spawn(b, now, time.Duration(between(rng, 50, 150))*time.Millisecond)
	}
}

// Draw projects every live bolt and strokes it.
func (l *LightningField) Draw(dst *ebiten.Image) {
	w, h := l.win.Size()
	l.lines.Reset()
	l.bolts.Each(func(t *folio.Transient[*Bolt]) {
		l.scratch = l.scratch[:0]
		for _, p := range t.Value.Points {
			sp, ok := sceneCamera.Project(p, w, h)
			if !ok {
				l.lines.Polyline(l.scratch, 1.5, t.Value.Color)
				l.scratch = l.scratch[:0]
				continue
			}
			l.scratch = append(l.scratch, sp)
		}
		l.lines.Polyline(l.scratch, 1.5, t.Value.Color)
	})
	l.lines.Draw(dst)
}

// Bolts calls fn for every live bolt, oldest first.
func (l *LightningField) Bolts(fn func(b *Bolt, born, ttl time.Duration)) {
	l.bolts.Each(func(t *folio.Transient[*Bolt]) { fn(t.Value, t.Born, t.TTL) })
}

// LiveTransients reports live bolts.
func (l *LightningField) LiveTransients() int {
	return l.bolts.Len()
}
