package site

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
)

var (
	cardFill   = folio.Hex(0x1f2937)
	cardBorder = folio.Hex(0x374151)
	imageFill  = folio.Hex(0x111827)
	silver     = folio.Hex(0xc0c0c0)

	electricBlue = folio.Hex(0x00bfff)
)

func fillRect(dst *ebiten.Image, r folio.Rect, c folio.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.Premul(), false)
}

func strokeRect(dst *ebiten.Image, r folio.Rect, width float64, c folio.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), c.Premul(), false)
}

func drawText(dst *ebiten.Image, f *folio.Font, s string, x, y float64, c folio.Color) {
	var g ebiten.GeoM
	g.Translate(x, y)
	f.Draw(dst, s, g, c)
}

// initials returns up to two leading letters of a title, used in place of
// the project image.
func initials(title string) string {
	var b strings.Builder
	for _, w := range strings.Fields(title) {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// drawCard renders one project card in r.
func drawCard(dst *ebiten.Image, r folio.Rect, p content.Project, hover bool, fonts *Fonts, pal folio.Palette, alpha float64) {
	fillRect(dst, r, cardFill.WithAlpha(0.6*alpha))

	img := folio.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height * 0.6}
	fillRect(dst, img, imageFill.WithAlpha(alpha))
	mark := initials(p.Title)
	mw, mh := fonts.Display.Measure(mark)
	drawText(dst, fonts.Display, mark, img.X+(img.Width-mw)/2, img.Y+(img.Height-mh)/2, pal.Primary.WithAlpha(0.35*alpha))

	border, title := cardBorder, pal.Primary
	if hover {
		border, title = pal.Primary, pal.Accent
	}
	strokeRect(dst, r, 2, border.WithAlpha(0.8*alpha))

	x := r.X + 16
	y := img.Y + img.Height + 12
	drawText(dst, fonts.Heading, p.Title, x, y, title.WithAlpha(alpha))
	y += fonts.Heading.LineHeight() + 4
	lines := wrap(fonts.Small, p.Description, r.Width-32)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	for _, l := range lines {
		drawText(dst, fonts.Small, l, x, y, silver.WithAlpha(alpha))
		y += fonts.Small.LineHeight()
	}

	const label = "View Details"
	lw, lh := fonts.Small.Measure(label)
	btn := folio.Rect{X: x, Y: r.Y + r.Height - lh - 28, Width: lw + 24, Height: lh + 12}
	btnFill := pal.Primary
	if hover {
		btnFill = pal.Accent
	}
	fillRect(dst, btn, btnFill.WithAlpha(alpha))
	drawText(dst, fonts.Small, label, btn.X+12, btn.Y+6, folio.Color{A: alpha})
}
