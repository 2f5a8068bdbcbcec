package folio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Anchor names a scroll position by pairing a point on the trigger region
// with a point on the viewport: the anchor is reached when the two coincide.
// "top 80%" is reached when the region's top edge sits at 80% of the viewport
// height. A relative anchor ("+=600") is only valid as an end anchor and
// means "600px after the start".
type Anchor struct {
	// Region is the point on the trigger region as a fraction of its height.
	Region float64
	// RegionPx is added to the region point in pixels.
	RegionPx float64
	// Viewport is the point on the viewport as a fraction of its height.
	Viewport float64
	// ViewportPx is added to the viewport point in pixels.
	ViewportPx float64

	// Relative marks a "+=N" anchor; Distance holds N.
	Relative bool
	Distance float64
}

// ParseAnchor parses "<region> <viewport>" or "+=<px>". Each side accepts
// top, center, bottom, a percentage ("80%"), or pixels ("120px" or "120").
func ParseAnchor(s string) (Anchor, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+="); ok {
		d, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(rest), "px"), 64)
		if err != nil {
			return Anchor{}, fmt.Errorf("folio: parse anchor %q: %w", s, err)
		}
		return Anchor{Relative: true, Distance: d}, nil
	}
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Anchor{}, fmt.Errorf("folio: parse anchor %q: want \"<region> <viewport>\"", s)
	}
	var a Anchor
	var err error
	if a.Region, a.RegionPx, err = parseEdge(parts[0]); err != nil {
		return Anchor{}, fmt.Errorf("folio: parse anchor %q: %w", s, err)
	}
	if a.Viewport, a.ViewportPx, err = parseEdge(parts[1]); err != nil {
		return Anchor{}, fmt.Errorf("folio: parse anchor %q: %w", s, err)
	}
	return a, nil
}

// MustParseAnchor is like ParseAnchor but panics on error.
func MustParseAnchor(s string) Anchor {
	a, err := ParseAnchor(s)
	if err != nil {
		panic(err)
	}
	return a
}

func parseEdge(s string) (frac, px float64, err error) {
	switch s {
	case "top":
		return 0, 0, nil
	case "center":
		return 0.5, 0, nil
	case "bottom":
		return 1, 0, nil
	}
	if v, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, err
		}
		return f / 100, 0, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, 0, err
	}
	return 0, f, nil
}

// scrollAt returns the document scroll offset at which a (non-relative)
// anchor is reached for a region at regionTop with regionHeight.
func (a Anchor) scrollAt(regionTop, regionHeight, viewportH float64) float64 {
	regionPoint := regionTop + a.Region*regionHeight + a.RegionPx
	viewportPoint := a.Viewport*viewportH + a.ViewportPx
	return regionPoint - viewportPoint
}

// SmoothMode selects how emitted progress follows raw progress.
type SmoothMode uint8

const (
	SmoothNone  SmoothMode = iota // progress equals raw progress
	SmoothLerp                    // fixed per-frame factor
	SmoothScrub                   // factor derived from a catch-up duration
)

// Smoothing configures progress smoothing.
type Smoothing struct {
	Mode SmoothMode
	// Factor is the per-frame interpolation factor for SmoothLerp, in (0, 1).
	Factor float64
	// Scrub is the catch-up time constant for SmoothScrub.
	Scrub time.Duration
}

// settleEpsilon is the lag below which smoothed progress snaps to raw.
const settleEpsilon = 1e-4

// factor returns the interpolation factor for a frame of length dt.
func (sm Smoothing) factor(dt time.Duration) float64 {
	switch sm.Mode {
	case SmoothLerp:
		f := sm.Factor
		if f <= 0 || f >= 1 {
			return 1
		}
		return f
	case SmoothScrub:
		if sm.Scrub <= 0 {
			return 1
		}
		return 1 - math.Exp(-dt.Seconds()/sm.Scrub.Seconds())
	default:
		return 1
	}
}

// ScrollConfig describes a ScrollBinding.
type ScrollConfig struct {
	// Top and Height place the trigger region in document space.
	Top, Height float64
	// Start and End are anchor strings, e.g. "top 80%" and "top 30%".
	Start, End string
	Smoothing  Smoothing
	// Pin holds the region fixed in the viewport between start and end.
	Pin bool
}

// ScrollBinding maps the document scroll offset to a progress value in
// [0, 1] for one trigger region. Each binding owns its own state; bindings
// never read each other.
type ScrollBinding struct {
	Top, Height float64
	Start, End  Anchor
	Smoothing   Smoothing
	Pin         bool

	raw      float64
	smoothed float64
	measured bool

	// OnUpdate, when set, is called from Step whenever the emitted progress
	// changes.
	OnUpdate func(b *ScrollBinding)
}

// NewScrollBinding parses cfg's anchors and returns a binding.
func NewScrollBinding(cfg ScrollConfig) (*ScrollBinding, error) {
	start, err := ParseAnchor(cfg.Start)
	if err != nil {
		return nil, err
	}
	if start.Relative {
		return nil, fmt.Errorf("folio: start anchor %q cannot be relative", cfg.Start)
	}
	end, err := ParseAnchor(cfg.End)
	if err != nil {
		return nil, err
	}
	return &ScrollBinding{
		Top:       cfg.Top,
		Height:    cfg.Height,
		Start:     start,
		End:       end,
		Smoothing: cfg.Smoothing,
		Pin:       cfg.Pin,
	}, nil
}

// Range returns the scroll offsets at which progress is 0 and 1.
func (b *ScrollBinding) Range(viewportH float64) (start, end float64) {
	start = b.Start.scrollAt(b.Top, b.Height, viewportH)
	if b.End.Relative {
		return start, start + b.End.Distance
	}
	return start, b.End.scrollAt(b.Top, b.Height, viewportH)
}

// RawProgress computes clamp((scroll-start)/(end-start), 0, 1) without
// touching the binding's state.
func (b *ScrollBinding) RawProgress(scrollY, viewportH float64) float64 {
	start, end := b.Range(viewportH)
	span := end - start
	if span == 0 {
		if scrollY >= start {
			return 1
		}
		return 0
	}
	return Clamp01((scrollY - start) / span)
}

// Measure recomputes raw progress for the given scroll offset. With no
// smoothing, or on the very first measurement, emitted progress jumps to raw.
func (b *ScrollBinding) Measure(scrollY, viewportH float64) float64 {
	b.raw = b.RawProgress(scrollY, viewportH)
	if b.Smoothing.Mode == SmoothNone || !b.measured {
		b.smoothed = b.raw
	}
	b.measured = true
	return b.raw
}

// Step advances smoothed progress toward raw by one frame of length dt and
// returns the emitted progress.
func (b *ScrollBinding) Step(dt time.Duration) float64 {
	prev := b.smoothed
	diff := b.raw - b.smoothed
	if math.Abs(diff) < settleEpsilon {
		b.smoothed = b.raw
	} else {
		b.smoothed += diff * b.Smoothing.factor(dt)
	}
	if b.smoothed != prev && b.OnUpdate != nil {
		b.OnUpdate(b)
	}
	return b.smoothed
}

// Progress returns the emitted (possibly smoothed) progress.
func (b *ScrollBinding) Progress() float64 {
	return b.smoothed
}

// Raw returns the last measured raw progress.
func (b *ScrollBinding) Raw() float64 {
	return b.raw
}

// Settled reports whether emitted progress has caught up with raw progress.
func (b *ScrollBinding) Settled() bool {
	return b.smoothed == b.raw
}

// PinSpacing returns the extra document height a pinned region adds: the
// length of its scroll range. Zero when not pinned.
func (b *ScrollBinding) PinSpacing(viewportH float64) float64 {
	if !b.Pin {
		return 0
	}
	start, end := b.Range(viewportH)
	if end < start {
		return 0
	}
	return end - start
}

// PinOffset returns how far the pinned region must be pushed down in document
// space to appear fixed at the scroll offset scrollY. It grows one-for-one
// with scroll inside the range and is constant outside it, so pin duration is
// never counted as extra scroll distance by downstream consumers.
func (b *ScrollBinding) PinOffset(scrollY, viewportH float64) float64 {
	if !b.Pin {
		return 0
	}
	start, end := b.Range(viewportH)
	switch {
	case scrollY <= start:
		return 0
	case scrollY >= end:
		return end - start
	default:
		return scrollY - start
	}
}

// Attach keeps b measured against s's window: once now, and on every scroll
// and resize event while s is active. The caller still calls Step from its
// frame loop.
func (b *ScrollBinding) Attach(s *Session) {
	w := s.Window()
	remeasure := func(*Event) {
		_, vh := w.Size()
		b.Measure(w.ScrollY(), float64(vh))
	}
	remeasure(nil)
	s.Listen(EventScroll, remeasure)
	s.Listen(EventResize, remeasure)
}
