package folio

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TransientCounter is implemented by effects that keep short-lived entries,
// so debug stats can report how many are alive.
type TransientCounter interface {
	LiveTransients() int
}

// DebugStats is a snapshot of the page's bookkeeping, used to spot leaks:
// after every layer is disposed the window should hold no frames, timeouts,
// or listeners.
type DebugStats struct {
	Frame      uint64
	Layers     int
	Transients int
	Frames     int
	Timeouts   int
	Listeners  int
	ScrollY    float64
	FrameTime  time.Duration
}

// CollectStats reads a snapshot from w and, when c is non-nil, its layers.
func CollectStats(w *Window, c *Compositor) DebugStats {
	st := DebugStats{
		Frame:    w.FrameNumber(),
		Frames:   w.PendingFrames(),
		Timeouts: w.PendingTimeouts(),
		ScrollY:  w.ScrollY(),
	}
	for t := EventType(0); t < numEventTypes; t++ {
		st.Listeners += w.ListenerCount(t)
	}
	if c != nil {
		c.prune()
		st.Layers = len(c.layers)
		for _, l := range c.layers {
			if tc, ok := l.effect.(TransientCounter); ok {
				st.Transients += tc.LiveTransients()
			}
		}
	}
	return st
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s DebugStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("frame", s.Frame)
	enc.AddInt("layers", s.Layers)
	enc.AddInt("transients", s.Transients)
	enc.AddInt("pending_frames", s.Frames)
	enc.AddInt("timeouts", s.Timeouts)
	enc.AddInt("listeners", s.Listeners)
	enc.AddFloat64("scroll_y", s.ScrollY)
	enc.AddDuration("frame_time", s.FrameTime)
	return nil
}

// StatsReporter logs DebugStats at debug level at a fixed interval of window
// time. Nothing is collected unless the logger has debug enabled.
type StatsReporter struct {
	log        *zap.Logger
	comp       *Compositor
	interval   time.Duration
	since      time.Duration
	lastReport DebugStats
}

// NewStatsReporter creates a reporter for c's window.
func NewStatsReporter(log *zap.Logger, c *Compositor, interval time.Duration) *StatsReporter {
	if interval <= 0 {
		interval = time.Second
	}
	return &StatsReporter{log: log, comp: c, interval: interval}
}

// Mount starts the reporter's loop on s.
func (r *StatsReporter) Mount(s *Session) error {
	if !r.log.Core().Enabled(zapcore.DebugLevel) {
		return nil
	}
	return s.Start(r.Update)
}

// Update accumulates frame time and logs once per interval.
func (r *StatsReporter) Update(f Frame) {
	r.since += f.Delta
	if r.since < r.interval {
		return
	}
	st := CollectStats(r.comp.session.Window(), r.comp)
	st.FrameTime = f.Delta
	r.since = 0
	r.lastReport = st
	r.log.Debug("frame stats", zap.Object("stats", st))
}

// Last returns the most recently logged stats.
func (r *StatsReporter) Last() DebugStats {
	return r.lastReport
}
