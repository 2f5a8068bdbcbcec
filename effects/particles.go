package effects

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
)

const (
	flashProbability = 0.001
	flashTTL         = 50 * time.Millisecond
)

var skyBlue = folio.Hex(0x38bdf8)

// ParticleBackground is a single sky-blue point cloud that turns steadily and
// follows the pointer, with a rare short flash of light somewhere in front
// of it.
type ParticleBackground struct {
	Seed   uint64
	Count  int
	Spread float64

	win     *folio.Window
	field   *folio.ParticleField
	drift   folio.Drift
	spawner *folio.Spawner
	flashes *folio.TransientPool[folio.Vec3]
}

// NewParticleBackground creates the cloud with 2000 points in a cube of side
// 15.
func NewParticleBackground(seed uint64) *ParticleBackground {
	return &ParticleBackground{Seed: seed, Count: 2000, Spread: 15}
}

// Layer returns the background layer.
func (p *ParticleBackground) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "particle-background", Depth: folio.DepthBackground}
}

// Mount builds the cloud.
func (p *ParticleBackground) Mount(s *folio.Session) error {
	p.win = s.Window()
	rng := folio.NewRand(p.Seed)
	mat := folio.PointMaterial{Size: 0.02, Color: skyBlue, Blend: folio.BlendAdd}
	p.field = folio.NewParticleField(p.Count, p.Spread, mat, sceneCamera, rng)
	p.drift = folio.Drift{Rate: folio.Vec2{X: 0.001, Y: 0.002}, Sensitivity: 0.0005}
	p.spawner = folio.NewSpawner(flashProbability, rng)
	p.flashes = folio.NewTransientPool[folio.Vec3](4, nil)
	s.Own(p.flashes)
	s.Listen(folio.EventResize, func(ev *folio.Event) { p.resize(ev.Width, ev.Height) })
	p.resize(p.win.Size())
	return nil
}

func (p *ParticleBackground) resize(w, h int) {
	p.field.Rescale(fitSpread(p.Spread, sceneCamera, w, h))
}

// Update turns the cloud and rolls for a flash.
func (p *ParticleBackground) Update(f folio.Frame) {
	w, h := p.win.Size()
	p.field.Rotation = p.drift.Step(pointerNDC(p.win))
	p.field.Project(w, h)

	p.flashes.Update(f.Elapsed)
	if p.spawner.Trial() {
		rng := p.spawner.Rand()
		p.flashes.Spawn(folio.Vec3{X: jitter(rng, 10), Y: jitter(rng, 10), Z: 2}, f.Elapsed, flashTTL)
	}
}

// Draw renders the cloud and any live flash as a soft glow.
func (p *ParticleBackground) Draw(dst *ebiten.Image) {
	p.field.Draw(dst)
	w, h := p.win.Size()
	p.flashes.Each(func(t *folio.Transient[folio.Vec3]) {
		c, ok := sceneCamera.Project(t.Value, w, h)
		if !ok {
			return
		}
		r := float32(h) / 6
		for i := range 4 {
			k := float32(4-i) / 4
			vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), r*k, skyBlue.WithAlpha(0.12).Premul(), true)
		}
	})
}

// LiveTransients reports live flashes.
func (p *ParticleBackground) LiveTransients() int {
	return p.flashes.Len()
}

// Rotation returns the accumulated cloud rotation.
func (p *ParticleBackground) Rotation() folio.Vec2 {
	return p.drift.Angle
}
