package folio

import (
	"errors"
	"time"
)

// ErrSchedulerRunning is returned by Start when a loop is already active.
var ErrSchedulerRunning = errors.New("folio: frame scheduler already running")

// FrameSource issues and cancels one-shot frame callbacks. *Window is the
// implementation used everywhere; tests may supply their own.
type FrameSource interface {
	RequestFrame(fn FrameFunc) FrameRequest
	CancelFrame(id FrameRequest) bool
}

// FrameScheduler turns one-shot frame requests into a continuous loop. It
// keeps exactly one request outstanding while running, and Stop cancels that
// request rather than flagging it, so no trailing callback runs after Stop.
type FrameScheduler struct {
	src     FrameSource
	fn      FrameFunc
	tickFn  FrameFunc
	pending FrameRequest
	running bool

	frames  uint64
	elapsed time.Duration
}

// NewFrameScheduler creates a stopped scheduler on src.
func NewFrameScheduler(src FrameSource) *FrameScheduler {
	s := &FrameScheduler{src: src}
	s.tickFn = s.tick
	return s
}

// Start begins invoking fn once per frame. The frame counter and elapsed
// clock continue from where a previous Stop left them.
func (s *FrameScheduler) Start(fn FrameFunc) error {
	if fn == nil {
		panic("folio: nil frame callback")
	}
	if s.running {
		return ErrSchedulerRunning
	}
	s.fn = fn
	s.running = true
	if s.pending == 0 {
		s.pending = s.src.RequestFrame(s.tickFn)
	}
	return nil
}

// Stop ends the loop and cancels the outstanding frame request. Calling Stop
// on a stopped scheduler is a no-op.
func (s *FrameScheduler) Stop() {
	s.running = false
	s.fn = nil
	if s.pending != 0 {
		s.src.CancelFrame(s.pending)
		s.pending = 0
	}
}

// Running reports whether the loop is active.
func (s *FrameScheduler) Running() bool {
	return s.running
}

// Frames returns the number of frames delivered so far.
func (s *FrameScheduler) Frames() uint64 {
	return s.frames
}

// Elapsed returns the accumulated frame time.
func (s *FrameScheduler) Elapsed() time.Duration {
	return s.elapsed
}

func (s *FrameScheduler) tick(f Frame) {
	s.pending = 0
	if !s.running {
		return
	}
	s.frames++
	s.elapsed += f.Delta
	s.fn(Frame{Number: s.frames, Elapsed: s.elapsed, Delta: f.Delta})
	// fn may have stopped (or stopped and restarted) the loop.
	if s.running && s.pending == 0 {
		s.pending = s.src.RequestFrame(s.tickFn)
	}
}
