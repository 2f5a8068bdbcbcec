package folio

// EventType identifies a kind of window event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // pointer moved inside the viewport
	EventPointerDown                   // primary button pressed
	EventPointerUp                     // primary button released
	EventPointerLeave                  // pointer left the viewport
	EventWheel                         // wheel or trackpad scroll intent
	EventScroll                        // document scroll offset changed
	EventResize                        // viewport size changed
	EventText                          // characters typed
	EventKey                           // editing key pressed

	numEventTypes
)

// String returns the lower-case event name.
func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "pointermove"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventPointerLeave:
		return "pointerleave"
	case EventWheel:
		return "wheel"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	case EventText:
		return "text"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event carries the data for one dispatched window event. Only the fields
// relevant to Type are set.
type Event struct {
	Type EventType

	// Pointer position in viewport pixels (pointer events).
	X, Y float64
	// DeltaY is the wheel delta in pixels (EventWheel).
	DeltaY float64
	// ScrollY is the document scroll offset after the change (EventScroll).
	ScrollY float64
	// Width and Height are the new viewport size (EventResize).
	Width, Height int
	// Text holds the typed characters (EventText).
	Text string
	// Key is the pressed key (EventKey).
	Key Key

	defaultPrevented bool
	consumed         bool
}

// Key names the editing keys delivered as EventKey.
type Key uint8

const (
	KeyNone Key = iota
	KeyBackspace
	KeyEnter
	KeyTab
)

// ParseKey maps "backspace", "enter", and "tab" to a Key.
func ParseKey(s string) (Key, bool) {
	switch s {
	case "backspace":
		return KeyBackspace, true
	case "enter":
		return KeyEnter, true
	case "tab":
		return KeyTab, true
	}
	return KeyNone, false
}

// PreventDefault suppresses the window's default action for the event
// (for EventWheel, the direct scroll; for EventText and EventKey, keyboard
// scrolling).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Consume marks a pointer event as handled so the compositor stops routing it
// to lower layers.
func (e *Event) Consume() {
	e.consumed = true
}

// Consumed reports whether a layer consumed the event.
func (e *Event) Consumed() bool {
	return e.consumed
}

// Listener receives dispatched events.
type Listener func(ev *Event)

type listenerEntry struct {
	id      uint32
	fn      Listener
	removed bool
}

// listenerRegistry keeps listeners per event type in registration order.
type listenerRegistry struct {
	byType [numEventTypes][]*listenerEntry
	buf    []*listenerEntry
	depth  int
	nextID uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id    uint32
	event EventType
	reg   *listenerRegistry
}

// Remove unregisters the listener so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h ListenerHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.event, h.id)
}

func (r *listenerRegistry) add(t EventType, fn Listener) ListenerHandle {
	if fn == nil {
		panic("folio: nil listener")
	}
	r.nextID++
	r.byType[t] = append(r.byType[t], &listenerEntry{id: r.nextID, fn: fn})
	return ListenerHandle{id: r.nextID, event: t, reg: r}
}

func (r *listenerRegistry) remove(t EventType, id uint32) {
	s := r.byType[t]
	for i, e := range s {
		if e.id == id {
			e.removed = true
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			r.byType[t] = s[:len(s)-1]
			return
		}
	}
}

func (r *listenerRegistry) count(t EventType) int {
	return len(r.byType[t])
}

// dispatch calls every listener for ev.Type in registration order. Listeners
// removed by an earlier listener during the same dispatch are skipped.
func (r *listenerRegistry) dispatch(ev *Event) {
	s := r.byType[ev.Type]
	if len(s) == 0 {
		return
	}
	// Nested dispatch (a listener scrolling the window) gets its own copy.
	var snapshot []*listenerEntry
	if r.depth == 0 {
		snapshot = append(r.buf[:0], s...)
	} else {
		snapshot = append([]*listenerEntry(nil), s...)
	}
	r.depth++
	defer func() {
		r.depth--
		if r.depth == 0 {
			clear(snapshot)
			r.buf = snapshot[:0]
		}
	}()
	for _, e := range snapshot {
		if e.removed {
			continue
		}
		e.fn(ev)
	}
}
