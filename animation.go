package folio

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four float64 fields together. Create one with
// the constructors below and call Update each frame. If the target node is
// disposed the group stops without writing.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	next *TweenGroup
}

// Update advances every tween by dt seconds and writes the values to the
// target fields. When the group finishes and a chained group exists, Update
// continues with that group on subsequent calls.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		if g.next != nil {
			g.next.Update(dt)
		}
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		g.next = nil
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Finished reports whether this group and every group chained after it are
// done.
func (g *TweenGroup) Finished() bool {
	for t := g; t != nil; t = t.next {
		if !t.Done {
			return false
		}
	}
	return true
}

// Then chains next to run after g finishes and returns next. The chained
// group reads its start values when it is created, so callers usually pass
// a group built with TweenValue or one whose start equals g's end.
func (g *TweenGroup) Then(next *TweenGroup) *TweenGroup {
	last := g
	for last.next != nil {
		last = last.next
	}
	last.next = next
	return next
}

// Chain links groups to run one after another and returns the first.
func Chain(groups ...*TweenGroup) *TweenGroup {
	if len(groups) == 0 {
		return nil
	}
	for _, next := range groups[1:] {
		groups[0].Then(next)
	}
	return groups[0]
}

type tweenField struct {
	ptr      *float64
	from, to float64
}

func newGroup(target *Node, duration float32, fn ease.TweenFunc, fields ...tweenField) *TweenGroup {
	g := &TweenGroup{target: target, count: len(fields)}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(f.from), float32(f.to), duration, fn)
		g.fields[i] = f.ptr
	}
	return g
}

// TweenValue animates an arbitrary field from one value to another.
func TweenValue(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(nil, duration, fn, tweenField{field, from, to})
}

// TweenPosition animates node.X and node.Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, tweenField{&node.X, node.X, toX}, tweenField{&node.Y, node.Y, toY})
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, tweenField{&node.ScaleX, node.ScaleX, toSX}, tweenField{&node.ScaleY, node.ScaleY, toSY})
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := &node.Color
	return newGroup(node, duration, fn,
		tweenField{&c.R, c.R, to.R},
		tweenField{&c.G, c.G, to.G},
		tweenField{&c.B, c.B, to.B},
		tweenField{&c.A, c.A, to.A})
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, tweenField{&node.Alpha, node.Alpha, to})
}
