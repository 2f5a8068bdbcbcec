package folio

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// tint scales a draw by c with the node's world alpha applied.
func tint(cs *ebiten.ColorScale, c Color, alpha float64) {
	a := c.A * alpha
	cs.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
}

// Draw recomputes world transforms for the subtree rooted at n and renders
// it onto dst depth-first, parents before children. Invisible nodes and
// their subtrees are skipped.
func (n *Node) Draw(dst *ebiten.Image) {
	if n.disposed {
		return
	}
	n.UpdateTransforms()
	drawNode(dst, n)
}

func drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	switch n.Type {
	case NodeTypeSprite:
		if n.Image != nil {
			op := &ebiten.DrawImageOptions{Blend: n.BlendMode.EbitenBlend()}
			op.GeoM = geoM(n.worldTransform)
			tint(&op.ColorScale, n.Color, n.worldAlpha)
			dst.DrawImage(n.Image, op)
		}
	case NodeTypeRect:
		if n.Width > 0 && n.Height > 0 {
			op := &ebiten.DrawImageOptions{Blend: n.BlendMode.EbitenBlend()}
			op.GeoM.Scale(n.Width, n.Height)
			g := geoM(n.worldTransform)
			op.GeoM.Concat(g)
			tint(&op.ColorScale, n.Color, n.worldAlpha)
			dst.DrawImage(whiteSubImage(), op)
		}
	case NodeTypePolyline:
		drawPolyline(dst, n)
	case NodeTypeCircle:
		drawCircle(dst, n)
	case NodeTypeText:
		if n.Font != nil && n.Text != "" {
			n.Font.Draw(dst, n.Text, geoM(n.worldTransform), n.Color.WithAlpha(n.Color.A*n.worldAlpha))
		}
	}
	for _, child := range n.children {
		drawNode(dst, child)
	}
}

func drawPolyline(dst *ebiten.Image, n *Node) {
	if len(n.Points) < 2 {
		return
	}
	clr := n.Color.WithAlpha(n.Color.A * n.worldAlpha).Premul()
	w := float32(n.LineWidth * worldScale(n.worldTransform))
	if w <= 0 {
		w = 1
	}
	m := n.worldTransform
	px, py := transformPoint(m, n.Points[0].X, n.Points[0].Y)
	for _, p := range n.Points[1:] {
		x, y := transformPoint(m, p.X, p.Y)
		vector.StrokeLine(dst, float32(px), float32(py), float32(x), float32(y), w, clr, true)
		px, py = x, y
	}
	if n.Closed && len(n.Points) > 2 {
		x, y := transformPoint(m, n.Points[0].X, n.Points[0].Y)
		vector.StrokeLine(dst, float32(px), float32(py), float32(x), float32(y), w, clr, true)
	}
}

func drawCircle(dst *ebiten.Image, n *Node) {
	s := worldScale(n.worldTransform)
	r := float32(n.Radius * s)
	if r <= 0 {
		return
	}
	clr := n.Color.WithAlpha(n.Color.A * n.worldAlpha).Premul()
	cx, cy := transformPoint(n.worldTransform, 0, 0)
	if n.Filled {
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), r, clr, true)
		return
	}
	vector.StrokeCircle(dst, float32(cx), float32(cy), r, float32(n.LineWidth*s), clr, true)
}

// worldScale returns the mean linear scale of m, used for stroke widths and
// radii that cannot be drawn anisotropically.
func worldScale(m [6]float64) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}
