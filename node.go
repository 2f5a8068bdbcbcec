package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders Image
	NodeTypeRect                      // solid Width x Height rectangle in Color
	NodeTypePolyline                  // connected line segments through Points
	NodeTypeText                      // renders Text with Font
	NodeTypeCircle                    // circle of Radius, filled or stroked with LineWidth
)

// nodeIDCounter is only touched from the window's goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the retained scene graph element. Components build a small tree on
// mount and mutate fields in place each frame. A single flat struct is used
// for all node types.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64

	Alpha   float64
	Visible bool

	Color     Color
	BlendMode BlendMode

	// Sprite
	Image *ebiten.Image

	// Rect
	Width, Height float64

	// Polyline and Circle
	Points    []Vec2
	LineWidth float64
	Closed    bool
	Radius    float64
	Filled    bool

	// Text
	Text string
	Font *Font

	UserData any

	owned    []Resource
	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that draws img.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid rectangle node.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewPolyline creates a polyline node through pts.
func NewPolyline(name string, pts []Vec2, width float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypePolyline, Points: pts, LineWidth: width}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewCircle creates a circle node centered on its origin. A zero width
// draws it filled.
func NewCircle(name string, radius, width float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeCircle, Radius: radius, LineWidth: width, Filled: width <= 0}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node.
func NewText(name, s string, f *Font) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Text: s, Font: f}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, disposed, or an ancestor of this node.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("folio: cannot add nil child")
	}
	if child.disposed || n.disposed {
		panic("folio: AddChild on disposed node")
	}
	if isAncestor(child, n) {
		panic("folio: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("folio: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Ownership and disposal ---

// Own ties r's lifetime to the node: r is released when the node is disposed.
func (n *Node) Own(r Resource) {
	if n.disposed {
		r.Release()
		return
	}
	n.owned = append(n.owned, r)
}

// Dispose removes this node from its parent, releases everything it owns,
// and recursively disposes all descendants. Subsequent calls are no-ops.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

// Release implements Resource so a scene root can be owned by a Session.
func (n *Node) Release() {
	n.Dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	for i := len(n.owned) - 1; i >= 0; i-- {
		n.owned[i].Release()
	}
	n.owned = nil
	n.children = nil
	n.Parent = nil
	n.Image = nil
	n.Points = nil
	n.Font = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
