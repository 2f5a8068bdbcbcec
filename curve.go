package folio

import (
	"math"
)

// Curve is a uniform Catmull-Rom spline through its control points. The
// curve passes through every point; t in [0, 1] is distributed evenly per
// segment rather than by arc length.
type Curve struct {
	Points []Vec3
}

// NewCurve creates a curve through pts. At least two points are required.
func NewCurve(pts ...Vec3) *Curve {
	if len(pts) < 2 {
		panic("folio: curve needs at least two points")
	}
	return &Curve{Points: pts}
}

// Point evaluates the curve at t, clamped to [0, 1].
func (c *Curve) Point(t float64) Vec3 {
	t = Clamp01(t)
	n := len(c.Points)
	p := float64(n-1) * t
	i := int(math.Floor(p))
	w := p - float64(i)
	if i >= n-1 {
		i = n - 2
		w = 1
	}
	p0 := c.at(i - 1)
	p1 := c.at(i)
	p2 := c.at(i + 1)
	p3 := c.at(i + 2)
	return Vec3{
		X: catmullRom(w, p0.X, p1.X, p2.X, p3.X),
		Y: catmullRom(w, p0.Y, p1.Y, p2.Y, p3.Y),
		Z: catmullRom(w, p0.Z, p1.Z, p2.Z, p3.Z),
	}
}

// at returns the control point at i, reflecting past the ends so the first
// and last segments have a phantom neighbor.
func (c *Curve) at(i int) Vec3 {
	n := len(c.Points)
	switch {
	case i < 0:
		a, b := c.Points[0], c.Points[1]
		return Vec3{2*a.X - b.X, 2*a.Y - b.Y, 2*a.Z - b.Z}
	case i >= n:
		a, b := c.Points[n-1], c.Points[n-2]
		return Vec3{2*a.X - b.X, 2*a.Y - b.Y, 2*a.Z - b.Z}
	default:
		return c.Points[i]
	}
}

func catmullRom(t, p0, p1, p2, p3 float64) float64 {
	v0 := (p2 - p0) * 0.5
	v1 := (p3 - p1) * 0.5
	t2 := t * t
	t3 := t * t2
	return (2*p1-2*p2+v0+v1)*t3 + (-3*p1+3*p2-2*v0-v1)*t2 + v0*t + p1
}

// PathTrack distributes Count objects along a curve at fixed relative
// offsets i/(Count-1). All objects advance together by progress times Speed,
// wrapping past the end, so tracks with different speeds separate in depth.
type PathTrack struct {
	Curve *Curve
	Count int
	Speed float64
}

// Param returns the curve parameter of object i at the given progress.
func (p *PathTrack) Param(i int, progress float64) float64 {
	var offset float64
	if p.Count > 1 {
		offset = float64(i) / float64(p.Count-1)
	}
	return wrap01(offset + progress*p.Speed)
}

// Position returns the position of object i at the given progress.
func (p *PathTrack) Position(i int, progress float64) Vec3 {
	return p.Curve.Point(p.Param(i, progress))
}

// Perspective is a pinhole camera on the +Z axis looking at the origin.
type Perspective struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Distance is the camera's Z position.
	Distance float64
	// Near is the near clipping distance.
	Near float64
}

// Project maps p to viewport pixels. ok is false when p is behind the near
// plane.
func (c Perspective) Project(p Vec3, width, height int) (Vec2, bool) {
	depth := c.Distance - p.Z
	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	if depth < near {
		return Vec2{}, false
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	aspect := float64(width) / float64(max(height, 1))
	ndcX := p.X * f / (aspect * depth)
	ndcY := p.Y * f / depth
	return Vec2{
		X: (ndcX*0.5 + 0.5) * float64(width),
		Y: (-ndcY*0.5 + 0.5) * float64(height),
	}, true
}

// VisibleHalfExtent returns the half width and height of the visible plane
// at z = 0, used to re-derive spread bounds on resize.
func (c Perspective) VisibleHalfExtent(width, height int) Vec2 {
	h := math.Tan(c.FOV*math.Pi/360) * c.Distance
	aspect := float64(width) / float64(max(height, 1))
	return Vec2{X: h * aspect, Y: h}
}

// Rotator rotates points about the Y axis and then the X axis by a fixed
// pair of angles. Build one per frame and apply it to every point.
type Rotator struct {
	sx, cx, sy, cy float64
}

// NewRotator precomputes the rotation for angles about X and Y.
func NewRotator(rot Vec2) Rotator {
	sx, cx := math.Sincos(rot.X)
	sy, cy := math.Sincos(rot.Y)
	return Rotator{sx: sx, cx: cx, sy: sy, cy: cy}
}

// Apply returns p rotated.
func (r Rotator) Apply(p Vec3) Vec3 {
	x := p.X*r.cy + p.Z*r.sy
	z := -p.X*r.sy + p.Z*r.cy
	y := p.Y*r.cx - z*r.sx
	z = p.Y*r.sx + z*r.cx
	return Vec3{x, y, z}
}
