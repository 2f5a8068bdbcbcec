package effects

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
)

// pulseStep is the phase advance per frame.
const pulseStep = 0.01

// wireSphere is a latitude/longitude wireframe projected each frame.
type wireSphere struct {
	radius    float64
	rings     int
	meridians int
	color     folio.Color
	osc       folio.Oscillator
	spin      folio.Drift

	scale float64
	grid  []folio.Vec3
	proj  []folio.Vec2
	vis   []bool
}

func newWireSphere(radius float64, segments int, c folio.Color, osc folio.Oscillator, rate folio.Vec2) *wireSphere {
	ws := &wireSphere{
		radius:    radius,
		rings:     segments / 2,
		meridians: segments,
		color:     c,
		osc:       osc,
		spin:      folio.Drift{Rate: rate},
		scale:     1,
	}
	n := (ws.rings + 1) * ws.meridians
	ws.grid = make([]folio.Vec3, 0, n)
	ws.proj = make([]folio.Vec2, n)
	ws.vis = make([]bool, n)
	for r := 0; r <= ws.rings; r++ {
		theta := math.Pi * float64(r) / float64(ws.rings)
		st, ct := math.Sincos(theta)
		for m := 0; m < ws.meridians; m++ {
			phi := 2 * math.Pi * float64(m) / float64(ws.meridians)
			sp, cp := math.Sincos(phi)
			ws.grid = append(ws.grid, folio.Vec3{X: st * cp, Y: ct, Z: st * sp})
		}
	}
	return ws
}

func (ws *wireSphere) step(t float64, w, h int) {
	ws.scale = ws.osc.Value(t)
	rot := folio.NewRotator(ws.spin.Step(folio.Vec2{}))
	k := ws.radius * ws.scale
	for i, p := range ws.grid {
		rp := rot.Apply(folio.Vec3{X: p.X * k, Y: p.Y * k, Z: p.Z * k})
		ws.proj[i], ws.vis[i] = sceneCamera.Project(rp, w, h)
	}
}

func (ws *wireSphere) stroke(b *folio.LineBatch) {
	at := func(r, m int) int { return r*ws.meridians + m%ws.meridians }
	seg := func(i, j int) {
		if ws.vis[i] && ws.vis[j] {
			b.Segment(ws.proj[i], ws.proj[j], 1, ws.color)
		}
	}
	for r := 0; r <= ws.rings; r++ {
		for m := 0; m < ws.meridians; m++ {
			if r > 0 && r < ws.rings {
				seg(at(r, m), at(r, m+1))
			}
			if r < ws.rings {
				seg(at(r, m), at(r+1, m))
			}
		}
	}
}

// ElectricPulse is two counter-rotating wireframe spheres breathing in
// opposite phase: the outer one grows while the inner one shrinks.
type ElectricPulse struct {
	win   *folio.Window
	t     float64
	outer *wireSphere
	inner *wireSphere
	lines folio.LineBatch
}

// NewElectricPulse creates the pulse.
func NewElectricPulse() *ElectricPulse {
	return &ElectricPulse{}
}

// Layer returns the pulse layer, drawn faintly behind the content.
func (p *ElectricPulse) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "electric-pulse", Depth: folio.DepthBackground, Alpha: 0.3}
}

// Mount builds both spheres.
func (p *ElectricPulse) Mount(s *folio.Session) error {
	p.win = s.Window()
	osc := folio.Oscillator{Center: 1, Amplitude: 0.2, Frequency: 1}
	p.outer = newWireSphere(2, 32, folio.Hex(0x38bdf8).WithAlpha(0.1), osc, folio.Vec2{X: 0.002, Y: 0.003})
	p.inner = newWireSphere(1.5, 24, folio.Hex(0xf50c28).WithAlpha(0.15), osc.Opposite(), folio.Vec2{X: -0.002, Y: -0.003})
	return nil
}

// Update advances the phase one step and reprojects both spheres.
func (p *ElectricPulse) Update(folio.Frame) {
	p.t += pulseStep
	w, h := p.win.Size()
	p.outer.step(p.t, w, h)
	p.inner.step(p.t, w, h)
}

// Draw strokes both wireframes.
func (p *ElectricPulse) Draw(dst *ebiten.Image) {
	p.lines.Reset()
	p.outer.stroke(&p.lines)
	p.inner.stroke(&p.lines)
	p.lines.Draw(dst)
}

// Scales returns the current outer and inner scale factors.
func (p *ElectricPulse) Scales() (outer, inner float64) {
	return p.outer.scale, p.inner.scale
}

// Rotations returns the accumulated outer and inner rotations.
func (p *ElectricPulse) Rotations() (outer, inner folio.Vec2) {
	return p.outer.spin.Angle, p.inner.spin.Angle
}
