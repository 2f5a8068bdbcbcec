package effects

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
)

// ElectricCloud parameterizes one of ElectricBackground's point clouds.
type ElectricCloud struct {
	Name  string
	Color folio.Color
	Size  float64
	// Rate is the per-frame rotation about X and Y.
	Rate folio.Vec2
	// Sensitivity scales the pointer offset; negative turns against it.
	Sensitivity float64
}

// ElectricClouds are the three clouds, back to front.
var ElectricClouds = [3]ElectricCloud{
	{Name: "blue", Color: folio.Hex(0x00bfff), Size: 0.02, Rate: folio.Vec2{X: 0.0005, Y: 0.001}, Sensitivity: 0.0002},
	{Name: "purple", Color: folio.Hex(0x8a2be2), Size: 0.015, Rate: folio.Vec2{X: -0.0003, Y: -0.0008}, Sensitivity: -0.0001},
	{Name: "pink", Color: folio.Hex(0xff1493), Size: 0.018, Rate: folio.Vec2{X: -0.0007, Y: 0.0005}, Sensitivity: 0.00015},
}

// ElectricBackground draws three additive point clouds sharing one set of
// positions. Each drifts at its own rate and leans toward (or away from) the
// pointer, so the clouds slide apart over time.
type ElectricBackground struct {
	Seed   uint64
	Count  int
	Spread float64

	win    *folio.Window
	fields [3]*folio.ParticleField
	drifts [3]folio.Drift
}

// NewElectricBackground creates the background with 2000 points in a cube of
// side 15.
func NewElectricBackground(seed uint64) *ElectricBackground {
	return &ElectricBackground{Seed: seed, Count: 2000, Spread: 15}
}

// Layer returns the background's layer: deepest, drawn at 70% opacity.
func (e *ElectricBackground) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "electric-background", Depth: folio.DepthBackground, Alpha: 0.7}
}

// Mount builds the clouds.
func (e *ElectricBackground) Mount(s *folio.Session) error {
	e.win = s.Window()
	for i, c := range ElectricClouds {
		mat := folio.PointMaterial{Size: c.Size, Color: c.Color, Blend: folio.BlendAdd}
		e.fields[i] = folio.NewParticleField(e.Count, e.Spread, mat, sceneCamera, folio.NewRand(e.Seed))
		e.drifts[i] = folio.Drift{Rate: c.Rate, Sensitivity: c.Sensitivity}
	}
	s.Listen(folio.EventResize, func(ev *folio.Event) { e.resize(ev.Width, ev.Height) })
	e.resize(e.win.Size())
	return nil
}

func (e *ElectricBackground) resize(w, h int) {
	spread := fitSpread(e.Spread, sceneCamera, w, h)
	for _, f := range e.fields {
		f.Rescale(spread)
	}
}

// Update advances every cloud one tick.
func (e *ElectricBackground) Update(folio.Frame) {
	ptr := pointerNDC(e.win)
	w, h := e.win.Size()
	for i, f := range e.fields {
		f.Rotation = e.drifts[i].Step(ptr)
		f.Project(w, h)
	}
}

// Draw renders the clouds back to front.
func (e *ElectricBackground) Draw(dst *ebiten.Image) {
	for _, f := range e.fields {
		f.Draw(dst)
	}
}

// Rotation returns the accumulated rotation of cloud i.
func (e *ElectricBackground) Rotation(i int) folio.Vec2 {
	return e.drifts[i].Angle
}
