package folio

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointMaterial describes how a ParticleField's points are drawn.
type PointMaterial struct {
	// Size is the point size in world units at the camera's focal plane.
	Size  float64
	Color Color
	Blend BlendMode
}

// ParticleField is a fixed-size cloud of points rotated as a whole. The
// position, projection, and vertex buffers are sized once at creation and
// only mutated in place afterwards.
type ParticleField struct {
	Material PointMaterial
	Camera   Perspective
	// Rotation is the field's rotation about the X and Y axes in radians.
	Rotation Vec2

	positions []Vec3
	spread    float64

	projected []Vec2
	sizes     []float64
	visible   int

	verts []ebiten.Vertex
	inds  []uint32
}

// NewParticleField scatters count points uniformly in a cube of side spread
// centered on the origin.
func NewParticleField(count int, spread float64, mat PointMaterial, cam Perspective, rng *rand.Rand) *ParticleField {
	if count <= 0 {
		count = 1
	}
	f := &ParticleField{
		Material:  mat,
		Camera:    cam,
		positions: make([]Vec3, count),
		spread:    spread,
		projected: make([]Vec2, count),
		sizes:     make([]float64, count),
		verts:     make([]ebiten.Vertex, 4*count),
		inds:      make([]uint32, 6*count),
	}
	for i := range f.positions {
		f.positions[i] = Vec3{
			X: (rng.Float64() - 0.5) * spread,
			Y: (rng.Float64() - 0.5) * spread,
			Z: (rng.Float64() - 0.5) * spread,
		}
	}
	for i := 0; i < count; i++ {
		v := uint32(4 * i)
		k := 6 * i
		f.inds[k+0] = v
		f.inds[k+1] = v + 1
		f.inds[k+2] = v + 2
		f.inds[k+3] = v + 1
		f.inds[k+4] = v + 3
		f.inds[k+5] = v + 2
	}
	return f
}

// Len returns the fixed number of points.
func (f *ParticleField) Len() int {
	return len(f.positions)
}

// Positions returns the position buffer. Callers may mutate elements but
// must not resize the slice.
func (f *ParticleField) Positions() []Vec3 {
	return f.positions
}

// Spread returns the current cube side length.
func (f *ParticleField) Spread() float64 {
	return f.spread
}

// Rescale scales every point in place so the field spans spread.
func (f *ParticleField) Rescale(spread float64) {
	if f.spread == 0 || spread == f.spread {
		return
	}
	k := spread / f.spread
	for i := range f.positions {
		p := &f.positions[i]
		p.X *= k
		p.Y *= k
		p.Z *= k
	}
	f.spread = spread
}

// Visible returns the number of points in front of the camera after the last
// Project.
func (f *ParticleField) Visible() int {
	return f.visible
}

// Projected returns the screen positions computed by the last Project. Only
// the first Visible entries are meaningful.
func (f *ParticleField) Projected() []Vec2 {
	return f.projected[:f.visible]
}

// Project rotates every point by Rotation and projects it to the viewport,
// filling the preallocated buffers. It returns the visible count.
func (f *ParticleField) Project(width, height int) int {
	rot := NewRotator(f.Rotation)
	focal := 1 / math.Tan(f.Camera.FOV*math.Pi/360)
	f.visible = 0
	for _, p := range f.positions {
		rp := rot.Apply(p)
		sp, ok := f.Camera.Project(rp, width, height)
		if !ok {
			continue
		}
		depth := f.Camera.Distance - rp.Z
		f.projected[f.visible] = sp
		f.sizes[f.visible] = math.Max(1, f.Material.Size*focal*float64(height)/2/depth)
		f.visible++
	}
	return f.visible
}

// Draw renders the points projected by the last Project as quads in a single
// DrawTriangles32 call.
func (f *ParticleField) Draw(dst *ebiten.Image) {
	if f.visible == 0 {
		return
	}
	c := f.Material.Color
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for i := 0; i < f.visible; i++ {
		p := f.projected[i]
		h := float32(f.sizes[i] / 2)
		x, y := float32(p.X), float32(p.Y)
		v := f.verts[4*i : 4*i+4]
		v[0] = ebiten.Vertex{DstX: x - h, DstY: y - h, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a}
		v[1] = ebiten.Vertex{DstX: x + h, DstY: y - h, SrcX: 2, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a}
		v[2] = ebiten.Vertex{DstX: x - h, DstY: y + h, SrcX: 1, SrcY: 2, ColorR: r, ColorG: g, ColorB: b, ColorA: a}
		v[3] = ebiten.Vertex{DstX: x + h, DstY: y + h, SrcX: 2, SrcY: 2, ColorR: r, ColorG: g, ColorB: b, ColorA: a}
	}
	op := &ebiten.DrawTrianglesOptions{Blend: f.Material.Blend.EbitenBlend()}
	dst.DrawTriangles32(f.verts[:4*f.visible], f.inds[:6*f.visible], whiteImage(), op)
}

var whiteImg *ebiten.Image

// whiteImage returns a 3x3 white image whose center texel is sampled by
// solid-color quads, so filtering never reads past the edge.
func whiteImage() *ebiten.Image {
	if whiteImg == nil {
		whiteImg = ebiten.NewImage(3, 3)
		whiteImg.Fill(ColorWhite.Premul())
	}
	return whiteImg
}

// whiteSubImage returns the 1x1 center of whiteImage.
func whiteSubImage() *ebiten.Image {
	return whiteImage().SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}
