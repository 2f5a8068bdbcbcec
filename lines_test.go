package folio

import (
	"math"
	"testing"
)

func TestLineBatchSegment(t *testing.T) {
	var b LineBatch
	b.Segment(Vec2{0, 0}, Vec2{10, 0}, 4, Color{1, 0, 0, 0.5})
	if b.Len() != 1 || len(b.inds) != 6 {
		t.Fatalf("Len = %d, inds = %d", b.Len(), len(b.inds))
	}
	// A horizontal segment is offset 2px up and down.
	want := [][2]float32{{0, 2}, {0, -2}, {10, 2}, {10, -2}}
	for i, v := range b.verts {
		if math.Abs(float64(v.DstX-want[i][0])) > 1e-6 || math.Abs(float64(v.DstY-want[i][1])) > 1e-6 {
			t.Errorf("vertex %d = (%v, %v), want %v", i, v.DstX, v.DstY, want[i])
		}
		if v.ColorR != 0.5 || v.ColorA != 0.5 {
			t.Errorf("vertex %d color not premultiplied: %v/%v", i, v.ColorR, v.ColorA)
		}
	}
}

func TestLineBatchSkipsDegenerate(t *testing.T) {
	var b LineBatch
	b.Segment(Vec2{3, 3}, Vec2{3, 3}, 2, ColorWhite)
	b.Segment(Vec2{0, 0}, Vec2{1, 1}, 0, ColorWhite)
	b.Segment(Vec2{0, 0}, Vec2{1, 1}, 2, Color{1, 1, 1, 0})
	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
	b.Draw(nil)
}

func TestLineBatchReuse(t *testing.T) {
	var b LineBatch
	pts := []Vec2{{0, 0}, {5, 5}, {10, 0}, {15, 5}}
	b.Polyline(pts, 1, ColorWhite)
	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	allocs := testing.AllocsPerRun(20, func() {
		b.Reset()
		b.Polyline(pts, 1, ColorWhite)
	})
	if allocs > 0 {
		t.Errorf("rebuild allocs = %f, want 0", allocs)
	}
}

func TestLineBatchDot(t *testing.T) {
	var b LineBatch
	b.Dot(Vec2{5, 5}, 2, ColorWhite)
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	minX, maxX := b.verts[0].DstX, b.verts[0].DstX
	minY, maxY := b.verts[0].DstY, b.verts[0].DstY
	for _, v := range b.verts {
		minX, maxX = min(minX, v.DstX), max(maxX, v.DstX)
		minY, maxY = min(minY, v.DstY), max(maxY, v.DstY)
	}
	if minX != 4 || maxX != 6 || minY != 4 || maxY != 6 {
		t.Errorf("dot spans x [%v, %v] y [%v, %v], want [4, 6]", minX, maxX, minY, maxY)
	}
}
