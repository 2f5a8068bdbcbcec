package folio

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hero", "hero"},
		{"after-scroll", "after-scroll"},
		{"frame.01", "frame.01"},
		{"works pinned", "works_pinned"},
		{"a/b\\c", "a_b_c"},
		{"", "unlabeled"},
		{"  ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{
		255, 0, 0, 255,
		64, 32, 0, 128,
		0, 0, 0, 0,
	}, 3, 1)
	tests := []struct {
		name string
		x    int
		want [4]uint8
	}{
		{"opaque", 0, [4]uint8{255, 0, 0, 255}},
		{"half", 1, [4]uint8{127, 63, 0, 128}},
		{"clear", 2, [4]uint8{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := img.NRGBAAt(tt.x, 0)
			got := [4]uint8{c.R, c.G, c.B, c.A}
			if got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, unpremultiply([]byte{1, 2, 3, 255}, 1, 1)); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("bounds = %v", b)
	}
}

func TestScreenshotsQueue(t *testing.T) {
	s := NewScreenshots(t.TempDir(), nil)
	s.Queue("a")
	s.Queue("b")
	if s.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", s.Pending())
	}
}

func TestScriptScreenshot(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps":[{"action":"screenshot","text":"hero"},{"action":"wait","frames":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	w := NewWindow(100, 100)
	r.Step(w) // no capture hook: ignored

	var got []string
	r.Capture = func(label string) { got = append(got, label) }
	r2, _ := LoadScript([]byte(`{"steps":[{"action":"screenshot","text":"hero"}]}`))
	r2.Capture = r.Capture
	r2.Step(w)
	if len(got) != 1 || got[0] != "hero" {
		t.Errorf("captured %v, want [hero]", got)
	}
	if !r2.Done() {
		t.Error("script not done")
	}
}
