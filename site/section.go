package site

import (
	"strings"
	"time"

	"github.com/phanxgames/folio"
	"go.uber.org/zap"
)

// Section is one full-width block of the page in document space.
type Section struct {
	ID       string
	Title    string
	Subtitle string
	Body     []string
	Chips    []string

	Top, Height float64

	// reveal drives the entrance: content slides up 100px and fades in as
	// the section's top crosses 80% to 30% of the viewport. The hero uses a
	// parallax binding instead.
	reveal   *folio.ScrollBinding
	parallax bool
	offset   float64
	opacity  float64
}

const revealDistance = 100

func newSection(id, title, subtitle string, body, chips []string) *Section {
	return &Section{ID: id, Title: title, Subtitle: subtitle, Body: body, Chips: chips, opacity: 1}
}

// bind creates the section's scroll binding.
func (s *Section) bind(scrub time.Duration) {
	if s.ID == "hero" {
		s.parallax = true
		s.reveal = mustBinding(folio.ScrollConfig{Start: "top top", End: "bottom top"})
		return
	}
	s.reveal = mustBinding(folio.ScrollConfig{
		Start:     "top 80%",
		End:       "top 30%",
		Smoothing: folio.Smoothing{Mode: folio.SmoothScrub, Scrub: scrub},
	})
	s.offset, s.opacity = revealDistance, 0
}

func mustBinding(cfg folio.ScrollConfig) *folio.ScrollBinding {
	b, err := folio.NewScrollBinding(cfg)
	if err != nil {
		panic(err)
	}
	return b
}

// place moves the section and its binding's trigger region.
func (s *Section) place(top, height float64) {
	s.Top, s.Height = top, height
	if s.reveal != nil {
		s.reveal.Top, s.reveal.Height = top, height
	}
}

// step advances the reveal by one frame.
func (s *Section) step(dt time.Duration) {
	if s.reveal == nil {
		return
	}
	p := s.reveal.Step(dt)
	if s.parallax {
		s.offset = -0.3 * s.Height * p
		s.opacity = 1
		return
	}
	s.offset = revealDistance * (1 - p)
	s.opacity = p
}

// Progress returns the section's reveal (or parallax) progress.
func (s *Section) Progress() float64 {
	if s.reveal == nil {
		return 1
	}
	return s.reveal.Progress()
}

// Offset returns the content's vertical displacement in pixels.
func (s *Section) Offset() float64 { return s.offset }

// Opacity returns the content's opacity.
func (s *Section) Opacity() float64 { return s.opacity }

// ScreenY returns the section's top edge on screen at scroll offset y.
func (s *Section) ScreenY(scrollY float64) float64 {
	return s.Top - scrollY
}

// ContentY is ScreenY plus the reveal offset.
func (s *Section) ContentY(scrollY float64) float64 {
	return s.Top - scrollY + s.offset
}

// Fonts are the faces the page draws with.
type Fonts struct {
	Display *folio.Font
	Heading *folio.Font
	Body    *folio.Font
	Small   *folio.Font
	Letter  *folio.Font
}

// LoadFonts builds every face from data (nil selects the bundled face).
// Faces that fail to load fall back to glyph boxes.
func LoadFonts(data []byte, log *zap.Logger) *Fonts {
	return &Fonts{
		Display: folio.FontOrFallback(data, 56, log),
		Heading: folio.FontOrFallback(data, 28, log),
		Body:    folio.FontOrFallback(data, 18, log),
		Small:   folio.FontOrFallback(data, 14, log),
		Letter:  folio.FontOrFallback(data, 60, log),
	}
}

// wrap breaks s into lines no wider than width.
func wrap(f *folio.Font, s string, width float64) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() == 0 {
			cur.WriteString(word)
			continue
		}
		if w, _ := f.Measure(cur.String() + " " + word); w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
			continue
		}
		cur.WriteByte(' ')
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func classicSections() []*Section {
	return []*Section{
		heroSection(),
		aboutSection(),
		newSection("works", "Featured Projects", "", nil, nil),
		newSection("skills", "Skills & Expertise", "", nil, []string{
			"React", "Next.js", "Three.js", "GSAP", "Tailwind CSS", "TypeScript",
			"Framer Motion", "WebGL", "Node.js (Express)", "Python (Flask)",
			"WordPress", "MongoDB", "UI/UX Design (Figma)", "Blockchain Concepts",
			"Git & CI/CD",
		}),
		contactSection(),
	}
}

func worksSections() []*Section {
	return []*Section{
		heroSection(),
		aboutSection(),
		newSection("works", "Featured Projects", "", nil, nil),
		contactSection(),
	}
}

func heroSection() *Section {
	return newSection("hero", "Imed Khedimellah", "Aeronautical Engineer turned Web Developer", nil, nil)
}

func aboutSection() *Section {
	return newSection("about", "My Journey", "From Skies to Pixels", []string{
		"My path from aeronautical engineering to the dynamic world of web development " +
			"and blockchain technology is fueled by a relentless curiosity and a drive to " +
			"innovate. The analytical rigor from aerospace finds new expression in crafting " +
			"elegant code and immersive digital experiences.",
	}, []string{"Next.js", "TypeScript", "Three.js", "WebGL", "Node.js", "WordPress", "DeFi"})
}

func contactSection() *Section {
	return newSection("contact", "Get In Touch", "", []string{
		"Let's discuss your next project or just say hello! I'm always open to new " +
			"opportunities and collaborations.",
	}, nil)
}
