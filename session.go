package folio

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSessionDisposed is returned when mounting or starting a disposed session.
	ErrSessionDisposed = errors.New("folio: session disposed")
	// ErrSessionActive is returned when mounting a session twice.
	ErrSessionActive = errors.New("folio: session already mounted")
)

// SessionState is the lifecycle stage of a Session.
type SessionState uint8

const (
	SessionUninitialized SessionState = iota
	SessionActive
	SessionDisposing
	SessionDisposed
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case SessionUninitialized:
		return "uninitialized"
	case SessionActive:
		return "active"
	case SessionDisposing:
		return "disposing"
	case SessionDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session is the lifetime of one mounted visual component. It exclusively
// owns the component's frame loop, timeouts, listeners, child sessions, and
// resources, and tears them down in a fixed order on Dispose:
//
//	scheduler -> timeouts -> listeners -> children -> hooks -> resources -> output surface
//
// The scheduler is always cancelled first so no frame callback can observe a
// released resource.
type Session struct {
	id    uuid.UUID
	name  string
	win   *Window
	log   *zap.Logger
	state SessionState

	parent *Session

	sched     *FrameScheduler
	timers    []TimerHandle
	listeners []ListenerHandle
	children  []*Session
	hooks     []func()
	resources []Resource
	output    *Surface
}

// NewSession creates an uninitialized session bound to win.
func NewSession(win *Window, name string, opts ...SessionOption) *Session {
	s := &Session{
		id:    uuid.New(),
		name:  name,
		win:   win,
		log:   zap.NewNop(),
		sched: NewFrameScheduler(win),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", name), zap.String("session_id", s.id.String()))
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Name returns the component name given at creation.
func (s *Session) Name() string {
	return s.name
}

// Window returns the host window.
func (s *Session) Window() *Window {
	return s.win
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *zap.Logger {
	return s.log
}

// State returns the lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Active reports whether the session is mounted and not being disposed.
func (s *Session) Active() bool {
	return s.state == SessionActive
}

// Elapsed returns the session's frame clock.
func (s *Session) Elapsed() time.Duration {
	return s.sched.Elapsed()
}

// FrameCount returns the number of frames the session has rendered.
func (s *Session) FrameCount() uint64 {
	return s.sched.Frames()
}

// Running reports whether the frame loop is active.
func (s *Session) Running() bool {
	return s.sched.Running()
}

// Mount moves the session to Active and runs setup, which allocates the
// component's resources. If setup fails, everything it acquired is released
// and the session ends Disposed.
func (s *Session) Mount(setup func(*Session) error) error {
	switch s.state {
	case SessionActive:
		return ErrSessionActive
	case SessionDisposing, SessionDisposed:
		return ErrSessionDisposed
	}
	s.state = SessionActive
	s.log.Debug("session mounted")
	if setup == nil {
		return nil
	}
	if err := setup(s); err != nil {
		s.Dispose()
		return fmt.Errorf("folio: mount %s: %w", s.name, err)
	}
	return nil
}

// Own registers r for release on Dispose and returns it. If the session is
// already disposing or disposed, r is released immediately.
func (s *Session) Own(r Resource) Resource {
	if r == nil {
		return nil
	}
	if s.state >= SessionDisposing {
		r.Release()
		return r
	}
	s.resources = append(s.resources, r)
	return r
}

// OwnFunc registers a release function.
func (s *Session) OwnFunc(fn func()) {
	s.Own(ReleaseFunc(fn))
}

// NewSurface creates a surface owned by the session.
func (s *Session) NewSurface(w, h int) *Surface {
	sf := NewSurface(w, h)
	s.Own(sf)
	return sf
}

// Output returns the session's output surface, creating it on first call.
// The output surface is released after every other resource.
func (s *Session) Output(w, h int) *Surface {
	if s.output == nil {
		s.output = NewSurface(w, h)
		if s.state >= SessionDisposing {
			s.output.Release()
		}
	}
	return s.output
}

// OnDispose registers fn to run during Dispose, after children are disposed
// and before resources are released. Hooks run in reverse registration order.
func (s *Session) OnDispose(fn func()) {
	if s.state >= SessionDisposing {
		fn()
		return
	}
	s.hooks = append(s.hooks, fn)
}

// Child creates a session whose lifetime is bounded by s: disposing s
// disposes the child first. The child may also be disposed on its own.
func (s *Session) Child(name string) *Session {
	c := NewSession(s.win, name, WithLogger(s.log))
	if s.state >= SessionDisposing {
		c.state = SessionDisposed
		return c
	}
	c.parent = s
	s.children = append(s.children, c)
	return c
}

// ChildCount returns the number of children not yet disposed.
func (s *Session) ChildCount() int {
	return len(s.children)
}

// Listen registers a window listener that is removed on Dispose. The
// listener never runs once the session has left the Active state.
func (s *Session) Listen(t EventType, fn Listener) ListenerHandle {
	h := s.win.AddListener(t, func(ev *Event) {
		if s.state != SessionActive {
			return
		}
		fn(ev)
	})
	s.listeners = append(s.listeners, h)
	return h
}

// After schedules fn after d of window time. The timeout is cleared on
// Dispose, so fn never runs against released resources.
func (s *Session) After(d time.Duration, fn func()) TimerHandle {
	if s.state >= SessionDisposing {
		return 0
	}
	var h TimerHandle
	h = s.win.SetTimeout(d, func() {
		s.forgetTimer(h)
		if s.state != SessionActive {
			return
		}
		fn()
	})
	s.timers = append(s.timers, h)
	return h
}

// CancelAfter clears a timeout created by After.
func (s *Session) CancelAfter(h TimerHandle) {
	if s.win.ClearTimeout(h) {
		s.forgetTimer(h)
	}
}

// PendingTimeouts returns the number of timeouts the session still owns.
func (s *Session) PendingTimeouts() int {
	return len(s.timers)
}

func (s *Session) forgetTimer(h TimerHandle) {
	for i, t := range s.timers {
		if t == h {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// Start begins the session's frame loop. Only one loop per session may run.
func (s *Session) Start(fn FrameFunc) error {
	if s.state != SessionActive {
		return ErrSessionDisposed
	}
	return s.sched.Start(func(f Frame) {
		if s.state != SessionActive {
			return
		}
		fn(f)
	})
}

// Stop ends the frame loop. Idempotent.
func (s *Session) Stop() {
	s.sched.Stop()
}

// Dispose tears the session down. Calling it more than once, or from inside
// one of the session's own callbacks, is safe; only the first call releases
// anything.
func (s *Session) Dispose() {
	if s.state >= SessionDisposing {
		return
	}
	s.state = SessionDisposing

	s.sched.Stop()

	// A parent that is itself disposing walks its own list.
	if p := s.parent; p != nil && p.state < SessionDisposing {
		p.children = slices.DeleteFunc(p.children, func(c *Session) bool { return c == s })
	}
	s.parent = nil

	for _, h := range s.timers {
		s.win.ClearTimeout(h)
	}
	s.timers = nil

	for _, h := range s.listeners {
		h.Remove()
	}
	s.listeners = nil

	for i := len(s.children) - 1; i >= 0; i-- {
		s.children[i].Dispose()
	}
	s.children = nil

	for i := len(s.hooks) - 1; i >= 0; i-- {
		s.hooks[i]()
	}
	s.hooks = nil

	for i := len(s.resources) - 1; i >= 0; i-- {
		s.resources[i].Release()
	}
	released := len(s.resources)
	s.resources = nil

	if s.output != nil {
		s.output.Release()
	}

	s.state = SessionDisposed
	s.log.Debug("session disposed",
		zap.Int("resources", released),
		zap.Uint64("frames", s.sched.Frames()))
}
