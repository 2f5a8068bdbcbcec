package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
)

const (
	characterStreakCap = 32
	characterSpin      = 0.01
	characterBands     = 6
	haloMinRadius      = 2.0
	haloMaxRadius      = 4.0
)

var characterColor = neonGreen.WithAlpha(0.8)

// limb is a cylinder of the given radius between two points.
type limb struct {
	a, b   folio.Vec3
	radius float64
}

var (
	// Arms are raised 45 degrees outward; legs hang straight.
	characterLimbs = [...]limb{
		{a: folio.Vec3{X: -0.8 + 0.3536, Y: 1 - 0.3536}, b: folio.Vec3{X: -0.8 - 0.3536, Y: 1 + 0.3536}, radius: 0.1},
		{a: folio.Vec3{X: 0.8 - 0.3536, Y: 1 - 0.3536}, b: folio.Vec3{X: 0.8 + 0.3536, Y: 1 + 0.3536}, radius: 0.1},
		{a: folio.Vec3{X: -0.3, Y: -1.25}, b: folio.Vec3{X: -0.3, Y: -0.25}, radius: 0.15},
		{a: folio.Vec3{X: 0.3, Y: -1.25}, b: folio.Vec3{X: 0.3, Y: -0.25}, radius: 0.15},
	}
	characterHead = folio.Vec3{Y: 2}
)

const (
	headRadius       = 0.5
	bodyBottomRadius = 0.5
	bodyTopRadius    = 0.3
	bodyHeight       = 1.5
)

// haloRing is the closed path halo lightning is thrown along, one unit from
// the figure's axis.
var haloRing = func() *folio.Curve {
	const n = 12
	pts := make([]folio.Vec3, n+1)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / n)
		pts[i] = folio.Vec3{X: c, Y: s}
	}
	return folio.NewCurve(pts...)
}()

// ElectricCharacter is a glowing green figure that turns slowly about its
// vertical axis in a screen-high block of the page. Every 200 to 700ms a
// flash of lightning strikes at a random point of a ring two to four units
// around it. The page mounts it while the block is near the viewport and
// removes it otherwise.
type ElectricCharacter struct {
	Seed uint64
	// DocTop is the top of the figure's block in document pixels.
	DocTop float64

	session *folio.Session
	win     *folio.Window
	rng     *rand.Rand
	spin    folio.Drift
	streaks *Streaks
	lines   folio.LineBatch
	strikes int
}

// NewElectricCharacter creates the figure for a block starting at docTop.
func NewElectricCharacter(seed uint64, docTop float64) *ElectricCharacter {
	return &ElectricCharacter{Seed: seed, DocTop: docTop}
}

// Layer returns the figure's layer, beneath the page content.
func (c *ElectricCharacter) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "electric-character", Depth: folio.DepthWeather}
}

// Mount starts the halo lightning.
func (c *ElectricCharacter) Mount(s *folio.Session) error {
	c.session = s
	c.win = s.Window()
	c.rng = folio.NewRand(c.Seed)
	c.spin = folio.Drift{Rate: folio.Vec2{Y: characterSpin}}
	c.streaks = NewStreaks(characterStreakCap)
	s.Own(c.streaks)
	c.scheduleStrike()
	return nil
}

func (c *ElectricCharacter) scheduleStrike() {
	d := doorStrikeMin + time.Duration(c.rng.Int64N(int64(doorStrikeJitter)))
	c.session.After(d, func() {
		c.strike()
		c.scheduleStrike()
	})
}

func (c *ElectricCharacter) strike() {
	p := haloRing.Point(c.rng.Float64())
	r := between(c.rng, haloMinRadius, haloMaxRadius)
	pos, ok := c.project(folio.Vec3{X: p.X * r, Y: p.Y * r})
	if !ok {
		return
	}
	c.strikes++
	c.streaks.Spawn(Streak{Kind: StreakFlash, Pos: pos, Angle: c.rng.Float64() * 2 * math.Pi})
}

// Top returns the block's top edge on screen.
func (c *ElectricCharacter) Top() float64 {
	return c.DocTop - c.win.ScrollY()
}

// Center returns the figure's origin on screen.
func (c *ElectricCharacter) Center() folio.Vec2 {
	p, _ := c.project(folio.Vec3{})
	return p
}

// PixelsPerUnit returns the on-screen size of one world unit at the
// figure's depth.
func (c *ElectricCharacter) PixelsPerUnit() float64 {
	w, h := c.win.Size()
	return float64(h) / 2 / sceneCamera.VisibleHalfExtent(w, h).Y
}

func (c *ElectricCharacter) project(p folio.Vec3) (folio.Vec2, bool) {
	w, h := c.win.Size()
	v, ok := sceneCamera.Project(p, w, h)
	v.Y += c.Top()
	return v, ok
}

// Update turns the figure and ages the lightning.
func (c *ElectricCharacter) Update(f folio.Frame) {
	c.spin.Step(folio.Vec2{})
	c.streaks.Update(f)
}

// Draw renders the figure and its lightning while the block is on screen.
func (c *ElectricCharacter) Draw(dst *ebiten.Image) {
	_, h := c.win.Size()
	if top := c.Top(); top >= float64(h) || top+float64(h) <= 0 {
		return
	}
	rot := folio.NewRotator(c.spin.Angle)
	ppu := c.PixelsPerUnit()
	c.lines.Reset()
	// Body: a cone frustum stacked as horizontal bands.
	for i := range characterBands {
		y0 := bodyHeight * float64(i) / characterBands
		y1 := bodyHeight * float64(i+1) / characterBands
		r := folio.Lerp(bodyBottomRadius, bodyTopRadius, (float64(i)+0.5)/characterBands)
		a, okA := c.project(rot.Apply(folio.Vec3{Y: y0}))
		b, okB := c.project(rot.Apply(folio.Vec3{Y: y1}))
		if okA && okB {
			c.lines.Segment(a, b, 2*r*ppu, characterColor)
		}
	}
	for _, l := range characterLimbs {
		a, okA := c.project(rot.Apply(l.a))
		b, okB := c.project(rot.Apply(l.b))
		if okA && okB {
			c.lines.Segment(a, b, 2*l.radius*ppu, characterColor)
		}
	}
	c.lines.Draw(dst)
	if head, ok := c.project(rot.Apply(characterHead)); ok {
		vector.DrawFilledCircle(dst, float32(head.X), float32(head.Y), float32(headRadius*ppu), characterColor.Premul(), true)
	}
	c.streaks.Draw(dst, 1)
}

// Rotation returns the accumulated turn about the vertical axis.
func (c *ElectricCharacter) Rotation() float64 { return c.spin.Angle.Y }

// Strikes returns how many halo strikes have been thrown.
func (c *ElectricCharacter) Strikes() int { return c.strikes }

// Each calls fn for every live streak.
func (c *ElectricCharacter) Each(fn func(st *Streak)) { c.streaks.Each(fn) }

// LiveTransients reports live streaks.
func (c *ElectricCharacter) LiveTransients() int { return c.streaks.Len() }
