package folio

import (
	"errors"
	"testing"
	"time"
)

func TestSchedulerDeliversOncePerFrame(t *testing.T) {
	w := NewWindow(800, 600)
	s := NewFrameScheduler(w)
	var got []Frame
	if err := s.Start(func(f Frame) { got = append(got, f) }); err != nil {
		t.Fatal(err)
	}
	for range 5 {
		w.Advance(frame60)
	}
	if len(got) != 5 {
		t.Fatalf("frames = %d, want 5", len(got))
	}
	for i, f := range got {
		if f.Number != uint64(i+1) {
			t.Errorf("frame %d Number = %d", i, f.Number)
		}
		if f.Delta != frame60 {
			t.Errorf("frame %d Delta = %v", i, f.Delta)
		}
	}
	if s.Elapsed() != 5*frame60 {
		t.Errorf("Elapsed = %v, want %v", s.Elapsed(), 5*frame60)
	}
	if w.PendingFrames() != 1 {
		t.Errorf("PendingFrames = %d, want exactly one outstanding request", w.PendingFrames())
	}
}

func TestSchedulerStartTwice(t *testing.T) {
	w := NewWindow(800, 600)
	s := NewFrameScheduler(w)
	if err := s.Start(func(Frame) {}); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(func(Frame) {}); !errors.Is(err, ErrSchedulerRunning) {
		t.Errorf("second Start err = %v, want ErrSchedulerRunning", err)
	}
	if w.PendingFrames() != 1 {
		t.Errorf("PendingFrames = %d, want 1", w.PendingFrames())
	}
}

func TestSchedulerStopCancelsPendingRequest(t *testing.T) {
	w := NewWindow(800, 600)
	s := NewFrameScheduler(w)
	calls := 0
	_ = s.Start(func(Frame) { calls++ })
	w.Advance(frame60)
	s.Stop()
	s.Stop()
	if w.PendingFrames() != 0 {
		t.Errorf("PendingFrames = %d after Stop, want 0", w.PendingFrames())
	}
	w.Advance(frame60)
	w.Advance(frame60)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Running() {
		t.Error("Running should be false")
	}
}

func TestSchedulerStopFromCallback(t *testing.T) {
	w := NewWindow(800, 600)
	s := NewFrameScheduler(w)
	calls := 0
	_ = s.Start(func(Frame) {
		calls++
		if calls == 2 {
			s.Stop()
		}
	})
	for range 5 {
		w.Advance(frame60)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if w.PendingFrames() != 0 {
		t.Errorf("PendingFrames = %d, want 0", w.PendingFrames())
	}
}

func TestSchedulerRestartContinuesClock(t *testing.T) {
	w := NewWindow(800, 600)
	s := NewFrameScheduler(w)
	_ = s.Start(func(Frame) {})
	w.Advance(10 * time.Millisecond)
	s.Stop()
	var last Frame
	_ = s.Start(func(f Frame) { last = f })
	w.Advance(10 * time.Millisecond)
	if last.Number != 2 || last.Elapsed != 20*time.Millisecond {
		t.Errorf("last frame = %+v, want Number 2 Elapsed 20ms", last)
	}
}

func TestSchedulerRestartInsideCallbackKeepsOneRequest(t *testing.T) {
	w := NewWindow(800, 600)
	s := NewFrameScheduler(w)
	calls := 0
	var fn FrameFunc
	fn = func(Frame) {
		calls++
		if calls == 1 {
			s.Stop()
			_ = s.Start(fn)
		}
	}
	_ = s.Start(fn)
	w.Advance(frame60)
	if w.PendingFrames() != 1 {
		t.Errorf("PendingFrames = %d, want 1", w.PendingFrames())
	}
	w.Advance(frame60)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
