package folio

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFallbackFontMeasure(t *testing.T) {
	f := FallbackFont(20)
	tests := []struct {
		s    string
		w, h float64
	}{
		{"", 0, 24},
		{"WORK", 48, 24},
		{"ab\nabcd", 48, 48},
		{"héllo", 60, 24},
	}
	for _, tt := range tests {
		w, h := f.Measure(tt.s)
		if w != tt.w || h != tt.h {
			t.Errorf("Measure(%q) = (%v, %v), want (%v, %v)", tt.s, w, h, tt.w, tt.h)
		}
	}
	if !f.Fallback() || f.Size() != 20 {
		t.Error("fallback font misreports itself")
	}
}

func TestLoadFontInvalidData(t *testing.T) {
	if _, err := LoadFont([]byte("not a font"), 16); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestFontOrFallbackLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := FontOrFallback([]byte("garbage"), 18, zap.New(core))
	if !f.Fallback() {
		t.Fatal("expected fallback font")
	}
	if logs.FilterMessage("font unavailable, using fallback glyphs").Len() != 1 {
		t.Errorf("warning not logged: %v", logs.All())
	}
}

func TestFontOrFallbackBundled(t *testing.T) {
	f := FontOrFallback(nil, 16, zap.NewNop())
	if f.Fallback() {
		t.Fatal("bundled face failed to load")
	}
	w, h := f.Measure("Loading...")
	if w <= 0 || h <= 0 {
		t.Errorf("Measure = (%v, %v), want positive", w, h)
	}
	if f.LineHeight() < 16 {
		t.Errorf("LineHeight = %v, want at least the font size", f.LineHeight())
	}
}
