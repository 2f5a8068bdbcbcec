package folio

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestGeoMMatchesAffine(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(30, 40)
	n.SetScale(2, 3)
	n.Rotation = 0.4
	n.SetPivot(5, 6)
	n.UpdateTransforms()

	g := geoM(n.worldTransform)
	for _, p := range []Vec2{{0, 0}, {1, 0}, {7, -3}} {
		gx, gy := g.Apply(p.X, p.Y)
		wx, wy := n.LocalToWorld(p.X, p.Y)
		if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
			t.Errorf("GeoM maps %+v to (%v, %v), affine to (%v, %v)", p, gx, gy, wx, wy)
		}
	}
}

func TestTintPremultiplies(t *testing.T) {
	var cs ebiten.ColorScale
	tint(&cs, Color{R: 1, G: 0.5, B: 0, A: 0.5}, 0.5)
	if cs.R() != 0.25 || cs.G() != 0.125 || cs.B() != 0 || cs.A() != 0.25 {
		t.Errorf("ColorScale = (%v, %v, %v, %v)", cs.R(), cs.G(), cs.B(), cs.A())
	}
}

func TestDrawSkipsHiddenSubtrees(t *testing.T) {
	root := NewContainer("root")
	hidden := NewRect("hidden", 10, 10, ColorWhite)
	hidden.Visible = false
	faded := NewRect("faded", 10, 10, ColorWhite)
	faded.Alpha = 0
	root.AddChild(hidden)
	root.AddChild(faded)
	hidden.AddChild(NewRect("child", 5, 5, ColorWhite))

	// A nil destination panics if anything is drawn.
	root.Draw(nil)

	if faded.WorldAlpha() != 0 {
		t.Errorf("faded world alpha = %v, want 0", faded.WorldAlpha())
	}
}

func TestDrawDisposedIsNoop(t *testing.T) {
	n := NewRect("r", 10, 10, ColorWhite)
	n.Dispose()
	n.Draw(nil)
}

func TestWorldScale(t *testing.T) {
	tests := []struct {
		name string
		m    [6]float64
		want float64
	}{
		{"identity", identityTransform, 1},
		{"uniform", [6]float64{3, 0, 0, 3, 10, 10}, 3},
		{"anisotropic", [6]float64{4, 0, 0, 1, 0, 0}, 2},
		{"mirrored", [6]float64{-2, 0, 0, 2, 0, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := worldScale(tt.m); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("worldScale = %v, want %v", got, tt.want)
			}
		})
	}
}
