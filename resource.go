package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Resource is anything a Session must release when it is disposed: GPU
// images, pooled buffers, effect state.
type Resource interface {
	Release()
}

// ReleaseFunc adapts a function to the Resource interface.
type ReleaseFunc func()

// Release calls f.
func (f ReleaseFunc) Release() {
	f()
}

// Surface is an offscreen canvas owned by one component. The backing
// *ebiten.Image is allocated on first use and deallocated on Release or
// Resize. Release is idempotent.
type Surface struct {
	image    *ebiten.Image
	w, h     int
	released bool
}

// NewSurface creates a surface of the given size. No GPU memory is used until
// Image is called.
func NewSurface(w, h int) *Surface {
	return &Surface{w: w, h: h}
}

// Image returns the backing image, allocating it if needed. It returns nil
// after Release.
func (s *Surface) Image() *ebiten.Image {
	if s.released {
		return nil
	}
	if s.image == nil {
		s.image = ebiten.NewImage(max(s.w, 1), max(s.h, 1))
	}
	return s.image
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.w
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.h
}

// Allocated reports whether a backing image currently exists.
func (s *Surface) Allocated() bool {
	return s.image != nil
}

// Released reports whether Release has been called.
func (s *Surface) Released() bool {
	return s.released
}

// Clear fills the surface with transparent black. No-op before allocation.
func (s *Surface) Clear() {
	if s.image != nil {
		s.image.Clear()
	}
}

// Resize deallocates the old image; the next Image call allocates one at the
// new size. No-op when the size is unchanged.
func (s *Surface) Resize(w, h int) {
	if s.released || (w == s.w && h == s.h) {
		return
	}
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	s.w, s.h = w, h
}

// Release frees the backing image. Subsequent calls do nothing.
func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}
