package folio

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

// Font renders text through Ebitengine's text/v2. A fallback Font has no
// face and draws a filled box per glyph instead, so a missing or broken font
// file never prevents a page from rendering.
type Font struct {
	face *text.GoTextFace
	size float64
}

// LoadFont loads a TrueType or OpenType font from raw data at the given size.
func LoadFont(data []byte, size float64) (*Font, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("folio: load font: %w", err)
	}
	return &Font{face: &text.GoTextFace{Source: src, Size: size}, size: size}, nil
}

// FallbackFont returns a font that draws glyph boxes at the given size.
func FallbackFont(size float64) *Font {
	return &Font{size: size}
}

// FontOrFallback loads data, logging and returning a fallback font if it
// cannot be parsed. A nil data slice selects the bundled Go Regular face.
func FontOrFallback(data []byte, size float64, log *zap.Logger) *Font {
	if data == nil {
		data = goregular.TTF
	}
	f, err := LoadFont(data, size)
	if err != nil {
		if log != nil {
			log.Warn("font unavailable, using fallback glyphs", zap.Error(err))
		}
		return FallbackFont(size)
	}
	return f
}

// Fallback reports whether f draws glyph boxes.
func (f *Font) Fallback() bool {
	return f.face == nil
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 {
	if f.face == nil {
		return f.size * 1.2
	}
	m := f.face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// Measure returns the width and height of s.
func (f *Font) Measure(s string) (w, h float64) {
	if f.face == nil {
		return f.fallbackMeasure(s)
	}
	return text.Measure(s, f.face, f.LineHeight())
}

// Draw renders s with its top-left corner at the origin of g.
func (f *Font) Draw(dst *ebiten.Image, s string, g ebiten.GeoM, c Color) {
	if f.face == nil {
		f.fallbackDraw(dst, s, g, c)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM = g
	op.LineSpacing = f.LineHeight()
	tint(&op.ColorScale, c, 1)
	text.Draw(dst, s, f.face, op)
}

func (f *Font) advance() float64 {
	return f.size * 0.6
}

func (f *Font) fallbackMeasure(s string) (w, h float64) {
	lines, col, widest := 1, 0, 0
	for _, r := range s {
		if r == '\n' {
			lines++
			col = 0
			continue
		}
		col++
		widest = max(widest, col)
	}
	return float64(widest) * f.advance(), float64(lines) * f.LineHeight()
}

func (f *Font) fallbackDraw(dst *ebiten.Image, s string, g ebiten.GeoM, c Color) {
	adv := f.advance()
	gw, gh := f.size*0.5, f.size*0.7
	x, y := 0.0, 0.0
	for _, r := range s {
		if r == '\n' {
			x = 0
			y += f.LineHeight()
			continue
		}
		if !unicode.IsSpace(r) {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(gw, gh)
			op.GeoM.Translate(x, y+(f.size-gh))
			op.GeoM.Concat(g)
			tint(&op.ColorScale, c, 1)
			dst.DrawImage(whiteSubImage(), op)
		}
		x += adv
	}
}
