package folio

import (
	"math"
	"testing"
	"time"
)

func TestDriftAccumulates(t *testing.T) {
	d := Drift{Rate: Vec2{X: 0.001, Y: 0.0005}}
	for range 1000 {
		d.Step(Vec2{})
	}
	if math.Abs(d.Angle.X-1.0) > 1e-9 {
		t.Errorf("Angle.X = %v after 1000 ticks, want 1.0", d.Angle.X)
	}
	if math.Abs(d.Angle.Y-0.5) > 1e-9 {
		t.Errorf("Angle.Y = %v after 1000 ticks, want 0.5", d.Angle.Y)
	}
}

func TestDriftPointerSensitivity(t *testing.T) {
	tests := []struct {
		name        string
		sensitivity float64
		pointer     Vec2
		want        Vec2
	}{
		{"still", 0.0002, Vec2{}, Vec2{0.001, 0.002}},
		{"right", 0.0002, Vec2{X: 1}, Vec2{0.001, 0.0022}},
		{"up", 0.0002, Vec2{Y: 1}, Vec2{0.0012, 0.002}},
		{"inverse", -0.0001, Vec2{X: 1, Y: -1}, Vec2{0.0011, 0.0019}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Drift{Rate: Vec2{X: 0.001, Y: 0.002}, Sensitivity: tt.sensitivity}
			got := d.Step(tt.pointer)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Step = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDriftWrapped(t *testing.T) {
	d := Drift{Angle: Vec2{X: 2*math.Pi + 1, Y: -1}}
	w := d.Wrapped()
	if math.Abs(w.X-1) > 1e-12 || math.Abs(w.Y-(2*math.Pi-1)) > 1e-12 {
		t.Errorf("Wrapped = %+v", w)
	}
}

func TestOscillatorOpposite(t *testing.T) {
	o := Oscillator{Center: 1, Amplitude: 0.2, Frequency: 1}
	opp := o.Opposite()
	for _, tt := range []float64{0, 0.3, 1.7, 4} {
		a := o.Value(tt) - 1
		b := opp.Value(tt) - 1
		if math.Abs(a+b) > 1e-12 {
			t.Errorf("t=%v: %v and %v are not opposite", tt, a, b)
		}
	}
	if v := o.Value(math.Pi / 2); math.Abs(v-1.2) > 1e-12 {
		t.Errorf("peak = %v, want 1.2", v)
	}
}

func TestSpawnerRate(t *testing.T) {
	const trials = 100_000
	s := NewSpawner(0.05, NewRand(7))
	for range trials {
		s.Trial()
	}
	n, spawns := s.Stats()
	if n != trials {
		t.Fatalf("trials = %d, want %d", n, trials)
	}
	// Binomial stddev is ~69; allow five.
	if spawns < 4650 || spawns > 5350 {
		t.Errorf("spawns = %d, want about 5000", spawns)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	a := NewSpawner(0.3, NewRand(42))
	b := NewSpawner(0.3, NewRand(42))
	for i := range 500 {
		if a.Trial() != b.Trial() {
			t.Fatalf("trial %d diverged for equal seeds", i)
		}
	}
}

func TestSpawnerEdges(t *testing.T) {
	never := NewSpawner(0, NewRand(1))
	always := NewSpawner(1, NewRand(1))
	for range 1000 {
		if never.Trial() {
			t.Fatal("p=0 spawned")
		}
		if !always.Trial() {
			t.Fatal("p=1 did not spawn")
		}
	}
}

func TestNewSpawnerNilRandPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewSpawner(0.5, nil)
}

func TestSpringSettles(t *testing.T) {
	s := Spring{Stiffness: 150, Damping: 15, Mass: 0.1}
	for range 120 {
		s.Step(100, time.Second/60)
	}
	if math.Abs(s.Value-100) > 0.5 {
		t.Errorf("Value = %v after 2s, want about 100", s.Value)
	}
	if math.Abs(s.Velocity) > 5 {
		t.Errorf("Velocity = %v after 2s, want near 0", s.Velocity)
	}
}

func TestDamp(t *testing.T) {
	tests := []struct {
		name                string
		cur, target, f, eps float64
		want                float64
	}{
		{"step", 0, 100, 0.1, 0.5, 10},
		{"snap", 99.8, 100, 0.1, 0.5, 100},
		{"down", 100, 0, 0.5, 0.5, 50},
		{"at target", 3, 3, 0.1, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Damp(tt.cur, tt.target, tt.f, tt.eps); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Damp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointerNDC(t *testing.T) {
	tests := []struct {
		p    Vec2
		want Vec2
	}{
		{Vec2{0, 0}, Vec2{-1, 1}},
		{Vec2{400, 300}, Vec2{0, 0}},
		{Vec2{800, 600}, Vec2{1, -1}},
	}
	for _, tt := range tests {
		if got := PointerNDC(tt.p, 800, 600); got != tt.want {
			t.Errorf("PointerNDC(%+v) = %+v, want %+v", tt.p, got, tt.want)
		}
	}
	if got := PointerNDC(Vec2{5, 5}, 0, 0); got != (Vec2{}) {
		t.Errorf("zero viewport = %+v, want zero", got)
	}
}
