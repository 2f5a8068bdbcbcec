package folio

import (
	"testing"
)

// --- Constructor defaults ---

func TestConstructorDefaults(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		typ  NodeType
	}{
		{"container", NewContainer("container"), NodeTypeContainer},
		{"sprite", NewSprite("sprite", nil), NodeTypeSprite},
		{"rect", NewRect("rect", 10, 20, ColorWhite), NodeTypeRect},
		{"polyline", NewPolyline("polyline", []Vec2{{0, 0}, {1, 1}}, 2, ColorWhite), NodeTypePolyline},
		{"circle", NewCircle("circle", 5, 1, ColorWhite), NodeTypeCircle},
		{"text", NewText("text", "hi", nil), NodeTypeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNodeDefaults(t, tt.node, tt.name, tt.typ)
		})
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
}

func TestNewCircleFilledWhenNoWidth(t *testing.T) {
	if !NewCircle("c", 4, 0, ColorWhite).Filled {
		t.Error("zero-width circle should be filled")
	}
	if NewCircle("c", 4, 2, ColorWhite).Filled {
		t.Error("stroked circle should not be filled")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildReparents(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	c := NewContainer("c")

	p1.AddChild(c)
	p2.AddChild(c)

	if c.Parent != p2 {
		t.Error("child should belong to p2")
	}
	if p1.NumChildren() != 0 {
		t.Errorf("p1 children = %d, want 0", p1.NumChildren())
	}
	if p2.NumChildren() != 1 {
		t.Errorf("p2 children = %d, want 1", p2.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewContainer("p").AddChild(nil) }},
		{"cycle", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"self", func() {
			a := NewContainer("a")
			a.AddChild(a)
		}},
		{"disposed", func() {
			c := NewContainer("c")
			c.Dispose()
			NewContainer("p").AddChild(c)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChildPanicsForStranger(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer("p").RemoveChild(NewContainer("c"))
}

func TestRemoveFromParentWithoutParent(t *testing.T) {
	c := NewContainer("c")
	c.RemoveFromParent()
	if c.Parent != nil {
		t.Error("Parent should stay nil")
	}
}

func TestRemoveChildKeepsOrder(t *testing.T) {
	p := NewContainer("p")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)
	p.RemoveChild(b)

	got := p.Children()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("children = %v, want [a c]", got)
	}
}

// --- Disposal ---

type countingResource struct {
	name  string
	count int
	log   *[]string
}

func (r *countingResource) Release() {
	r.count++
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

func TestDisposeReleasesOwnedOnce(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	root.AddChild(child)

	var order []string
	r1 := &countingResource{name: "r1", log: &order}
	r2 := &countingResource{name: "r2", log: &order}
	rc := &countingResource{name: "child", log: &order}
	root.Own(r1)
	root.Own(r2)
	child.Own(rc)

	root.Dispose()
	root.Dispose()

	for _, r := range []*countingResource{r1, r2, rc} {
		if r.count != 1 {
			t.Errorf("%s released %d times, want 1", r.name, r.count)
		}
	}
	want := []string{"child", "r2", "r1"}
	if len(order) != len(want) {
		t.Fatalf("release order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("release order = %v, want %v", order, want)
			break
		}
	}
	if !child.IsDisposed() {
		t.Error("descendants should be disposed")
	}
}

func TestDisposeDetachesFromParent(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	c.Dispose()
	if p.NumChildren() != 0 {
		t.Error("disposed child should be removed from parent")
	}
	if p.IsDisposed() {
		t.Error("parent should not be disposed")
	}
}

func TestOwnAfterDisposeReleasesImmediately(t *testing.T) {
	n := NewContainer("n")
	n.Dispose()
	r := &countingResource{}
	n.Own(r)
	if r.count != 1 {
		t.Errorf("released %d times, want 1", r.count)
	}
}

func TestNodeReleaseDisposes(t *testing.T) {
	var r Resource = NewContainer("n")
	r.Release()
	if !r.(*Node).IsDisposed() {
		t.Error("Release should dispose the node")
	}
}
