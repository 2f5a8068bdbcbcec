package folio

import (
	"math"
	"math/rand/v2"
	"time"
)

// NewRand returns a deterministic PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Drift accumulates rotation once per tick: a constant base rate plus the
// pointer offset scaled by Sensitivity. Layers use distinct rates and
// sensitivities so they drift out of sync.
//
// Pointer offsets are normalized device coordinates: x in [-1, 1] left to
// right, y in [-1, 1] bottom to top.
type Drift struct {
	// Rate is the per-tick rotation about the X and Y axes in radians.
	Rate Vec2
	// Sensitivity scales the pointer offset added each tick. Negative values
	// make the layer turn against the pointer.
	Sensitivity float64
	// Angle is the accumulated rotation about the X and Y axes.
	Angle Vec2
}

// Step advances one tick. Pointer X turns the layer about its Y axis and
// pointer Y about its X axis.
func (d *Drift) Step(pointer Vec2) Vec2 {
	d.Angle.X += d.Rate.X + pointer.Y*d.Sensitivity
	d.Angle.Y += d.Rate.Y + pointer.X*d.Sensitivity
	return d.Angle
}

// Wrapped returns Angle reduced to [0, 2π).
func (d *Drift) Wrapped() Vec2 {
	return Vec2{wrapAngle(d.Angle.X), wrapAngle(d.Angle.Y)}
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Oscillator evaluates Center + Amplitude*sin(t*Frequency + Phase).
type Oscillator struct {
	Center    float64
	Amplitude float64
	Frequency float64
	Phase     float64
}

// Value returns the oscillator's value at t.
func (o Oscillator) Value(t float64) float64 {
	return o.Center + o.Amplitude*math.Sin(t*o.Frequency+o.Phase)
}

// Opposite returns the same oscillator half a cycle out of phase.
func (o Oscillator) Opposite() Oscillator {
	o.Phase += math.Pi
	return o
}

// Spawner runs one Bernoulli trial per tick: a uniform draw below Probability
// spawns. Expected spawns per second is Probability times the tick rate.
type Spawner struct {
	Probability float64

	rng    *rand.Rand
	trials uint64
	spawns uint64
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(p float64, rng *rand.Rand) *Spawner {
	if rng == nil {
		panic("folio: nil rand source")
	}
	return &Spawner{Probability: p, rng: rng}
}

// Trial performs one draw and reports whether to spawn.
func (s *Spawner) Trial() bool {
	s.trials++
	if s.rng.Float64() < s.Probability {
		s.spawns++
		return true
	}
	return false
}

// Rand returns the spawner's generator for deriving secondary parameters.
func (s *Spawner) Rand() *rand.Rand {
	return s.rng
}

// Stats returns the number of trials and successful spawns.
func (s *Spawner) Stats() (trials, spawns uint64) {
	return s.trials, s.spawns
}

// Spring is a damped spring pulling Value toward a target.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	Value    float64
	Velocity float64
}

// springSubsteps keeps the integration stable for stiff springs at 60Hz.
const springSubsteps = 4

// Step integrates the spring toward target over dt.
func (s *Spring) Step(target float64, dt time.Duration) float64 {
	m := s.Mass
	if m <= 0 {
		m = 1
	}
	h := dt.Seconds() / springSubsteps
	for range springSubsteps {
		a := (-s.Stiffness*(s.Value-target) - s.Damping*s.Velocity) / m
		s.Velocity += a * h
		s.Value += s.Velocity * h
	}
	return s.Value
}

// Damp moves current toward target by factor and snaps when within eps.
func Damp(current, target, factor, eps float64) float64 {
	if math.Abs(target-current) <= eps {
		return target
	}
	return current + (target-current)*factor
}

// PointerNDC converts a viewport pixel position to normalized device
// coordinates (x right, y up, both in [-1, 1]).
func PointerNDC(p Vec2, width, height int) Vec2 {
	if width <= 0 || height <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: p.X/float64(width)*2 - 1,
		Y: -(p.Y/float64(height)*2 - 1),
	}
}
