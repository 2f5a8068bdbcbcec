package folio

import (
	"time"
)

// Frame is passed to frame callbacks.
type Frame struct {
	// Number is the 1-based count of frames delivered to this callback chain.
	Number uint64
	// Elapsed is the time since the chain started.
	Elapsed time.Duration
	// Delta is the time since the previous frame.
	Delta time.Duration
}

// Seconds returns Elapsed in seconds.
func (f Frame) Seconds() float64 {
	return f.Elapsed.Seconds()
}

// DeltaSeconds returns Delta in seconds.
func (f Frame) DeltaSeconds() float64 {
	return f.Delta.Seconds()
}

// FrameFunc is a one-shot frame callback.
type FrameFunc func(f Frame)

// FrameRequest identifies a pending frame callback. Zero is never issued.
type FrameRequest uint64

// frameQueue holds one-shot callbacks for the next frame. A callback requested
// while the queue is running lands in the following frame.
type frameQueue struct {
	nextID FrameRequest
	live   map[FrameRequest]FrameFunc
	order  []FrameRequest
	spare  []FrameRequest
}

func (q *frameQueue) request(fn FrameFunc) FrameRequest {
	if q.live == nil {
		q.live = make(map[FrameRequest]FrameFunc)
	}
	q.nextID++
	q.live[q.nextID] = fn
	q.order = append(q.order, q.nextID)
	return q.nextID
}

func (q *frameQueue) cancel(id FrameRequest) bool {
	if _, ok := q.live[id]; !ok {
		return false
	}
	delete(q.live, id)
	return true
}

func (q *frameQueue) run(f Frame) {
	batch := q.order
	q.order = q.spare[:0]
	for _, id := range batch {
		fn, ok := q.live[id]
		if !ok {
			continue
		}
		delete(q.live, id)
		fn(f)
	}
	q.spare = batch[:0]
}

// TimerHandle identifies a pending timeout. Zero is never issued.
type TimerHandle uint64

type timer struct {
	id  TimerHandle
	due time.Duration
	fn  func()
}

type timerQueue struct {
	nextID TimerHandle
	timers []timer
}

func (q *timerQueue) add(due time.Duration, fn func()) TimerHandle {
	q.nextID++
	q.timers = append(q.timers, timer{id: q.nextID, due: due, fn: fn})
	return q.nextID
}

func (q *timerQueue) remove(id TimerHandle) bool {
	for i := range q.timers {
		if q.timers[i].id == id {
			q.timers = append(q.timers[:i], q.timers[i+1:]...)
			return true
		}
	}
	return false
}

// fire runs every timer due at or before now, earliest first. Timers added
// while firing wait for the next call.
func (q *timerQueue) fire(now time.Duration) {
	limit := q.nextID
	for {
		best := -1
		for i, t := range q.timers {
			if t.id > limit || t.due > now {
				continue
			}
			if best < 0 || t.due < q.timers[best].due ||
				(t.due == q.timers[best].due && t.id < q.timers[best].id) {
				best = i
			}
		}
		if best < 0 {
			return
		}
		t := q.timers[best]
		q.timers = append(q.timers[:best], q.timers[best+1:]...)
		t.fn()
	}
}

// Window is the single-threaded host every component lives in: it owns the
// viewport, the document scroll offset, the pointer, and the three callback
// sources (frames, timeouts, listeners). Nothing here is safe for concurrent
// use; all callbacks run on the goroutine that calls Advance or Dispatch.
type Window struct {
	width, height int
	docHeight     float64
	scrollY       float64

	pointer       Vec2
	pointerInside bool
	pointerDown   bool

	now    time.Duration
	frames uint64

	frameQ    frameQueue
	timerQ    timerQueue
	listeners listenerRegistry
}

// NewWindow creates a window with the given viewport size. The document
// height starts equal to the viewport height (nothing to scroll).
func NewWindow(width, height int) *Window {
	return &Window{
		width:     width,
		height:    height,
		docHeight: float64(height),
	}
}

// Size returns the viewport size in pixels.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Viewport returns the viewport as a Rect at the origin.
func (w *Window) Viewport() Rect {
	return Rect{Width: float64(w.width), Height: float64(w.height)}
}

// Now returns the window clock.
func (w *Window) Now() time.Duration {
	return w.now
}

// FrameNumber returns the number of frames the window has advanced.
func (w *Window) FrameNumber() uint64 {
	return w.frames
}

// ScrollY returns the document scroll offset.
func (w *Window) ScrollY() float64 {
	return w.scrollY
}

// DocumentHeight returns the scrollable document height.
func (w *Window) DocumentHeight() float64 {
	return w.docHeight
}

// SetDocumentHeight sets the document height and re-clamps the scroll offset.
func (w *Window) SetDocumentHeight(h float64) {
	w.docHeight = h
	w.ScrollTo(w.scrollY)
}

// MaxScroll returns the largest valid scroll offset.
func (w *Window) MaxScroll() float64 {
	m := w.docHeight - float64(w.height)
	if m < 0 {
		return 0
	}
	return m
}

// Pointer returns the last pointer position and whether the pointer is
// inside the viewport.
func (w *Window) Pointer() (Vec2, bool) {
	return w.pointer, w.pointerInside
}

// IsPointerDown reports whether the primary button is held.
func (w *Window) IsPointerDown() bool {
	return w.pointerDown
}

// RequestFrame schedules fn to run once on the next Advance.
func (w *Window) RequestFrame(fn FrameFunc) FrameRequest {
	if fn == nil {
		panic("folio: nil frame callback")
	}
	return w.frameQ.request(fn)
}

// CancelFrame cancels a pending frame request. It reports whether the request
// was still pending. Cancelling an unknown or already-run request is a no-op.
func (w *Window) CancelFrame(id FrameRequest) bool {
	return w.frameQ.cancel(id)
}

// PendingFrames returns the number of frame callbacks waiting to run.
func (w *Window) PendingFrames() int {
	return len(w.frameQ.live)
}

// SetTimeout schedules fn to run once after d of window time.
func (w *Window) SetTimeout(d time.Duration, fn func()) TimerHandle {
	if fn == nil {
		panic("folio: nil timeout callback")
	}
	if d < 0 {
		d = 0
	}
	return w.timerQ.add(w.now+d, fn)
}

// ClearTimeout cancels a pending timeout. It reports whether it was pending.
func (w *Window) ClearTimeout(h TimerHandle) bool {
	return w.timerQ.remove(h)
}

// PendingTimeouts returns the number of timeouts waiting to fire.
func (w *Window) PendingTimeouts() int {
	return len(w.timerQ.timers)
}

// AddListener registers fn for events of type t. Listeners run in
// registration order.
func (w *Window) AddListener(t EventType, fn Listener) ListenerHandle {
	return w.listeners.add(t, fn)
}

// ListenerCount returns the number of listeners registered for t.
func (w *Window) ListenerCount(t EventType) int {
	return w.listeners.count(t)
}

// Dispatch delivers ev to the listeners for its type.
func (w *Window) Dispatch(ev *Event) {
	w.listeners.dispatch(ev)
}

// Advance moves the window clock forward by dt, fires due timeouts, and then
// runs the frame callbacks that were queued before this call.
func (w *Window) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	w.now += dt
	w.frames++
	w.timerQ.fire(w.now)
	w.frameQ.run(Frame{Number: w.frames, Elapsed: w.now, Delta: dt})
}

// Resize changes the viewport size and dispatches EventResize.
func (w *Window) Resize(width, height int) {
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height
	w.Dispatch(&Event{Type: EventResize, Width: width, Height: height})
	w.ScrollTo(w.scrollY)
}

// ScrollTo sets the document scroll offset, clamped to [0, MaxScroll], and
// dispatches EventScroll when it changes.
func (w *Window) ScrollTo(y float64) {
	if y < 0 {
		y = 0
	}
	if m := w.MaxScroll(); y > m {
		y = m
	}
	if y == w.scrollY {
		return
	}
	w.scrollY = y
	w.Dispatch(&Event{Type: EventScroll, ScrollY: y})
}

// ScrollBy scrolls the document by dy pixels.
func (w *Window) ScrollBy(dy float64) {
	w.ScrollTo(w.scrollY + dy)
}

// Wheel dispatches EventWheel. Unless a listener prevents the default, the
// document scrolls by dy immediately.
func (w *Window) Wheel(dy float64) {
	ev := &Event{Type: EventWheel, DeltaY: dy, X: w.pointer.X, Y: w.pointer.Y}
	w.Dispatch(ev)
	if !ev.defaultPrevented {
		w.ScrollBy(dy)
	}
}

// MovePointer records the pointer position and dispatches EventPointerMove.
func (w *Window) MovePointer(x, y float64) {
	w.pointer = Vec2{x, y}
	w.pointerInside = true
	w.Dispatch(&Event{Type: EventPointerMove, X: x, Y: y})
}

// PointerDown dispatches EventPointerDown at (x, y) and returns the event so
// callers can inspect whether a layer consumed it.
func (w *Window) PointerDown(x, y float64) *Event {
	w.pointer = Vec2{x, y}
	w.pointerInside = true
	w.pointerDown = true
	ev := &Event{Type: EventPointerDown, X: x, Y: y}
	w.Dispatch(ev)
	return ev
}

// PointerUp dispatches EventPointerUp at (x, y).
func (w *Window) PointerUp(x, y float64) *Event {
	w.pointer = Vec2{x, y}
	w.pointerDown = false
	ev := &Event{Type: EventPointerUp, X: x, Y: y}
	w.Dispatch(ev)
	return ev
}

// TypeText dispatches EventText and returns the event so the host can tell
// whether a focused field took the keystrokes.
func (w *Window) TypeText(text string) *Event {
	ev := &Event{Type: EventText, Text: text}
	w.Dispatch(ev)
	return ev
}

// PressKey dispatches EventKey.
func (w *Window) PressKey(k Key) *Event {
	ev := &Event{Type: EventKey, Key: k}
	w.Dispatch(ev)
	return ev
}

// PointerLeave marks the pointer as outside and dispatches EventPointerLeave.
func (w *Window) PointerLeave() {
	if !w.pointerInside {
		return
	}
	w.pointerInside = false
	w.pointerDown = false
	w.Dispatch(&Event{Type: EventPointerLeave, X: w.pointer.X, Y: w.pointer.Y})
}
