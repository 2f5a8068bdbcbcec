package effects

import (
	"math/rand/v2"

	"github.com/phanxgames/folio"
)

// sceneCamera matches the 3D layers: 75 degree FOV looking at the origin
// from z = 5.
var sceneCamera = folio.Perspective{FOV: 75, Distance: 5, Near: 0.1}

var (
	electricBlue = folio.Hex(0x00bfff)
	neonGreen    = folio.Hex(0x00ff9d)
	gold         = folio.Hex(0xfbbf24)
	teal         = folio.Hex(0x2dd4bf)
)

// boltColor picks a bolt color: blue half the time, gold 30%, teal 20%.
// Each carries its own opacity.
func boltColor(rng *rand.Rand) folio.Color {
	switch r := rng.Float64(); {
	case r < 0.5:
		return electricBlue.WithAlpha(0.7)
	case r < 0.8:
		return gold.WithAlpha(0.5)
	default:
		return teal.WithAlpha(0.6)
	}
}

// between returns a uniform value in [lo, hi).
func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// jitter returns a uniform value in [-span/2, span/2).
func jitter(rng *rand.Rand, span float64) float64 {
	return (rng.Float64() - 0.5) * span
}

// pointerNDC returns the window's last pointer position in normalized device
// coordinates. The pointer keeps its last value after leaving the window.
func pointerNDC(w *folio.Window) folio.Vec2 {
	p, _ := w.Pointer()
	vw, vh := w.Size()
	return folio.PointerNDC(p, vw, vh)
}

// fitSpread widens a point cloud so it still covers the visible plane on
// very wide viewports.
func fitSpread(base float64, cam folio.Perspective, w, h int) float64 {
	half := cam.VisibleHalfExtent(w, h)
	return max(base, 2*half.X)
}
