package folio

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// LineBatch accumulates stroked segments as quads and draws them in a single
// DrawTriangles32 call. Buffers grow to their high-water mark and are reused
// after Reset, so a steady scene allocates nothing per frame.
type LineBatch struct {
	Blend BlendMode

	verts []ebiten.Vertex
	inds  []uint32
}

// Reset discards queued segments and keeps the buffers.
func (b *LineBatch) Reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// Len returns the number of queued segments.
func (b *LineBatch) Len() int {
	return len(b.verts) / 4
}

// Segment queues a line from a to c. Zero-length segments are skipped.
func (b *LineBatch) Segment(a, c Vec2, width float64, col Color) {
	px, py, ok := perpendicular(a, c)
	if !ok || width <= 0 || col.A <= 0 {
		return
	}
	hw := width / 2
	ox, oy := float32(px*hw), float32(py*hw)
	r, g, bl, al := float32(col.R*col.A), float32(col.G*col.A), float32(col.B*col.A), float32(col.A)
	ax, ay := float32(a.X), float32(a.Y)
	cx, cy := float32(c.X), float32(c.Y)

	v := uint32(len(b.verts))
	b.verts = append(b.verts,
		ebiten.Vertex{DstX: ax + ox, DstY: ay + oy, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: bl, ColorA: al},
		ebiten.Vertex{DstX: ax - ox, DstY: ay - oy, SrcX: 1, SrcY: 2, ColorR: r, ColorG: g, ColorB: bl, ColorA: al},
		ebiten.Vertex{DstX: cx + ox, DstY: cy + oy, SrcX: 2, SrcY: 1, ColorR: r, ColorG: g, ColorB: bl, ColorA: al},
		ebiten.Vertex{DstX: cx - ox, DstY: cy - oy, SrcX: 2, SrcY: 2, ColorR: r, ColorG: g, ColorB: bl, ColorA: al},
	)
	b.inds = append(b.inds, v, v+1, v+2, v+1, v+3, v+2)
}

// Dot queues a square of side size centered on c.
func (b *LineBatch) Dot(c Vec2, size float64, col Color) {
	if size <= 0 || col.A <= 0 {
		return
	}
	h := size / 2
	b.Segment(Vec2{c.X - h, c.Y}, Vec2{c.X + h, c.Y}, size, col)
}

// Polyline queues a segment between each consecutive pair of pts.
func (b *LineBatch) Polyline(pts []Vec2, width float64, col Color) {
	for i := 1; i < len(pts); i++ {
		b.Segment(pts[i-1], pts[i], width, col)
	}
}

// Draw renders every queued segment onto dst. The queue is kept; call Reset
// before building the next frame.
func (b *LineBatch) Draw(dst *ebiten.Image) {
	if len(b.inds) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{Blend: b.Blend.EbitenBlend(), AntiAlias: true}
	dst.DrawTriangles32(b.verts, b.inds, whiteImage(), op)
}

// perpendicular returns the unit left-perpendicular of the segment from a to
// c, or false when the segment has no length.
func perpendicular(a, c Vec2) (float64, float64, bool) {
	dx := c.X - a.X
	dy := c.Y - a.Y
	ln := math.Hypot(dx, dy)
	if ln < 1e-10 {
		return 0, 0, false
	}
	return -dy / ln, dx / ln, true
}
