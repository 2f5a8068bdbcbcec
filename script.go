package folio

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Repeat int     `json:"repeat,omitempty"`
	Text   string  `json:"text,omitempty"`
	Key    string  `json:"key,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON input script against a Window, one step per
// frame. Supported actions: scroll (y), wheel (dy, repeat), move (x, y),
// click (x, y), down (x, y), up (x, y), leave, resize (width, height),
// type (text), key (key), screenshot (text as label), and wait (frames).
type ScriptRunner struct {
	// Capture receives screenshot labels. Screenshot steps are skipped when
	// it is nil, as in headless runs.
	Capture func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	repeat    int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("folio: parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("folio: parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "wheel", "move", "click", "down", "up", "leave", "resize", "type", "screenshot", "wait":
		case "key":
			if _, ok := ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("folio: parse input script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("folio: parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Remaining returns the number of steps not yet started.
func (r *ScriptRunner) Remaining() int {
	return len(r.steps) - r.cursor
}

// Step runs the current frame's share of the script against w. Call it once
// per frame, before Advance.
func (r *ScriptRunner) Step(w *Window) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.finishIfIdle()
		return
	}
	if r.repeat > 0 {
		r.repeat--
		st := r.steps[r.cursor-1]
		w.Wheel(st.DY)
		r.finishIfIdle()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		w.ScrollTo(st.Y)
	case "wheel":
		w.Wheel(st.DY)
		if st.Repeat > 1 {
			r.repeat = st.Repeat - 1
		}
	case "move":
		w.MovePointer(st.X, st.Y)
	case "click":
		w.PointerDown(st.X, st.Y)
		w.PointerUp(st.X, st.Y)
	case "down":
		w.PointerDown(st.X, st.Y)
	case "up":
		w.PointerUp(st.X, st.Y)
	case "leave":
		w.PointerLeave()
	case "resize":
		w.Resize(st.Width, st.Height)
	case "type":
		w.TypeText(st.Text)
	case "key":
		k, _ := ParseKey(st.Key)
		w.PressKey(k)
	case "screenshot":
		if r.Capture != nil {
			r.Capture(st.Text)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	r.finishIfIdle()
}

func (r *ScriptRunner) finishIfIdle() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.repeat == 0 {
		r.done = true
	}
}
