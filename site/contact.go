package site

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"go.uber.org/zap"
)

const (
	formTop        = 280
	formWidth      = 560
	fieldHeight    = 48
	messageHeight  = 150
	labelGap       = 8
	fieldGap       = 20
	buttonHeight   = 48
	submitDelay    = 1500 * time.Millisecond
	sentNoticeTime = 5 * time.Second
	messageLimit   = 2000
)

var (
	// ErrMissingField is returned by Submit when a field is blank.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidEmail is returned by Submit when the email does not parse.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrBusy is returned by Submit while a submission is in flight.
	ErrBusy = errors.New("submission in progress")
)

// Message is a submitted contact form.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Submitter delivers a message and calls done exactly once from the window's
// goroutine. Implementations schedule their work on s so that disposing the
// page cancels it.
type Submitter interface {
	Submit(s *folio.Session, m Message, done func(error))
}

// FakeSubmitter pretends to send after Delay.
type FakeSubmitter struct {
	Delay time.Duration
}

// Submit implements Submitter.
func (f FakeSubmitter) Submit(s *folio.Session, m Message, done func(error)) {
	s.Logger().Info("contact message queued",
		zap.String("name", m.Name),
		zap.String("email", m.Email),
		zap.Int("length", len(m.Body)))
	s.After(f.Delay, func() { done(nil) })
}

// FormState is the contact form's submission state.
type FormState uint8

const (
	FormIdle FormState = iota
	FormSubmitting
	FormSubmitted
)

// String returns the state name.
func (s FormState) String() string {
	switch s {
	case FormSubmitting:
		return "submitting"
	case FormSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

// Field identifies a form input.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldMessage
	numFields
)

var fieldLabels = [numFields]string{"Name", "Email", "Message"}

// ContactForm is the form under the contact section. Clicking a field
// focuses it; typed text goes to the focused field; Enter in a single-line
// field or a click on the button submits.
type ContactForm struct {
	pc        *folio.PageContext
	fonts     *Fonts
	section   *Section
	submitter Submitter

	session *folio.Session
	win     *folio.Window
	log     *zap.Logger
	values  [numFields]string
	focus   Field
	state   FormState
	err     error
	notice  folio.TimerHandle
}

// NewContactForm creates the form for sec. A nil submitter uses
// FakeSubmitter with the default delay.
func NewContactForm(pc *folio.PageContext, fonts *Fonts, sec *Section, sub Submitter) *ContactForm {
	if sub == nil {
		sub = FakeSubmitter{Delay: submitDelay}
	}
	return &ContactForm{pc: pc, fonts: fonts, section: sec, submitter: sub, focus: -1}
}

func (c *ContactForm) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "contact-form", Depth: folio.DepthContent, Pointer: folio.PointerTarget}
}

// Mount starts listening for typed text, editing keys and presses that
// clear focus.
func (c *ContactForm) Mount(s *folio.Session) error {
	c.session = s
	c.win = s.Window()
	c.log = s.Logger()
	s.Listen(folio.EventText, c.onText)
	s.Listen(folio.EventKey, c.onKey)
	s.Listen(folio.EventPointerDown, func(ev *folio.Event) {
		if c.fieldAt(ev.X, ev.Y) < 0 {
			c.focus = -1
		}
	})
	return nil
}

// State returns the submission state.
func (c *ContactForm) State() FormState { return c.state }

// Err returns the last submission error.
func (c *ContactForm) Err() error { return c.err }

// Value returns a field's text.
func (c *ContactForm) Value(f Field) string { return c.values[f] }

// Focused returns the focused field, or -1.
func (c *ContactForm) Focused() Field { return c.focus }

// SetField replaces a field's text. The message is cut to messageLimit
// bytes on a character boundary.
func (c *ContactForm) SetField(f Field, v string) {
	if f < 0 || f >= numFields {
		return
	}
	if f == FieldMessage && len(v) > messageLimit {
		v = truncate(v, messageLimit)
	}
	c.values[f] = v
}

// truncate cuts s to at most n bytes without splitting the character that
// straddles the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := n
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}

// Focus moves keyboard focus to f; -1 clears it.
func (c *ContactForm) Focus(f Field) {
	if f < -1 || f >= numFields {
		return
	}
	c.focus = f
}

// Submit validates the fields and hands the message to the submitter.
func (c *ContactForm) Submit() error {
	if c.state == FormSubmitting {
		return ErrBusy
	}
	m := Message{
		Name:  strings.TrimSpace(c.values[FieldName]),
		Email: strings.TrimSpace(c.values[FieldEmail]),
		Body:  strings.TrimSpace(c.values[FieldMessage]),
	}
	for i, v := range []string{m.Name, m.Email, m.Body} {
		if v == "" {
			c.err = fmt.Errorf("%w: %s", ErrMissingField, strings.ToLower(fieldLabels[i]))
			return c.err
		}
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		c.err = fmt.Errorf("%w: %q", ErrInvalidEmail, m.Email)
		return c.err
	}
	c.err = nil
	c.state = FormSubmitting
	c.session.CancelAfter(c.notice)
	c.submitter.Submit(c.session, m, c.finish)
	return nil
}

func (c *ContactForm) finish(err error) {
	if err != nil {
		c.log.Warn("contact submit failed", zap.Error(err))
		c.state, c.err = FormIdle, err
		return
	}
	c.state = FormSubmitted
	c.values = [numFields]string{}
	c.focus = -1
	c.notice = c.session.After(sentNoticeTime, func() { c.state = FormIdle })
}

func (c *ContactForm) onText(ev *folio.Event) {
	if c.focus < 0 {
		return
	}
	ev.PreventDefault()
	text := ev.Text
	if c.focus != FieldMessage {
		text = strings.ReplaceAll(text, "\n", "")
	}
	c.SetField(c.focus, c.values[c.focus]+text)
}

func (c *ContactForm) onKey(ev *folio.Event) {
	if c.focus < 0 {
		return
	}
	ev.PreventDefault()
	switch ev.Key {
	case folio.KeyBackspace:
		v := []rune(c.values[c.focus])
		if len(v) > 0 {
			c.values[c.focus] = string(v[:len(v)-1])
		}
	case folio.KeyTab:
		c.focus = (c.focus + 1) % numFields
	case folio.KeyEnter:
		if c.focus == FieldMessage {
			c.SetField(c.focus, c.values[c.focus]+"\n")
			return
		}
		if err := c.Submit(); err != nil {
			c.log.Debug("contact form rejected", zap.Error(err))
		}
	}
}

func (c *ContactForm) left() float64 {
	vw, _ := c.win.Size()
	return (float64(vw) - c.width()) / 2
}

func (c *ContactForm) width() float64 {
	vw, _ := c.win.Size()
	return min(float64(vw)-64, formWidth)
}

// FieldRect returns the input box of f on screen.
func (c *ContactForm) FieldRect(f Field) folio.Rect {
	label := c.fonts.Small.LineHeight() + labelGap
	y := c.section.ContentY(c.win.ScrollY()) + formTop
	for i := range f {
		y += label + c.fieldHeight(i) + fieldGap
	}
	return folio.Rect{X: c.left(), Y: y + label, Width: c.width(), Height: c.fieldHeight(f)}
}

func (c *ContactForm) fieldHeight(f Field) float64 {
	if f == FieldMessage {
		return messageHeight
	}
	return fieldHeight
}

// ButtonRect returns the submit button on screen.
func (c *ContactForm) ButtonRect() folio.Rect {
	m := c.FieldRect(FieldMessage)
	return folio.Rect{X: m.X, Y: m.Y + m.Height + fieldGap + 4, Width: m.Width, Height: buttonHeight}
}

// Height returns the form's height from its top edge.
func (c *ContactForm) Height() float64 {
	label := c.fonts.Small.LineHeight() + labelGap
	return 3*label + 2*fieldHeight + messageHeight + 3*fieldGap + 4 + buttonHeight
}

func (c *ContactForm) fieldAt(x, y float64) Field {
	for f := range numFields {
		if c.FieldRect(f).Contains(x, y) {
			return f
		}
	}
	return -1
}

// HitTest claims the fields and the button once the section is visible.
func (c *ContactForm) HitTest(x, y float64) bool {
	if c.section.Opacity() <= 0 {
		return false
	}
	return c.fieldAt(x, y) >= 0 || c.ButtonRect().Contains(x, y)
}

// Hovered reports whether (x, y) is over the submit button.
func (c *ContactForm) Hovered(x, y float64) bool {
	return c.section.Opacity() > 0 && c.ButtonRect().Contains(x, y)
}

// HandlePointer focuses fields and submits from the button. A press
// anywhere else clears focus.
func (c *ContactForm) HandlePointer(ev *folio.Event) {
	if ev.Type != folio.EventPointerDown {
		return
	}
	ev.Consume()
	if f := c.fieldAt(ev.X, ev.Y); f >= 0 {
		c.focus = f
		return
	}
	if c.ButtonRect().Contains(ev.X, ev.Y) {
		if err := c.Submit(); err != nil {
			c.log.Debug("contact form rejected", zap.Error(err))
		}
	}
}

// Update does nothing; the form redraws from its state.
func (c *ContactForm) Update(folio.Frame) {}

// Draw renders the labels, fields, button and status line.
func (c *ContactForm) Draw(dst *ebiten.Image) {
	a := c.section.Opacity()
	if a <= 0 {
		return
	}
	_, vh := c.win.Size()
	if top := c.FieldRect(FieldName).Y; top > float64(vh) || c.ButtonRect().Y+buttonHeight < 0 {
		return
	}
	pal := c.pc.Theme.Palette()
	blink := math.Mod(c.win.Now().Seconds(), 1) < 0.5

	for f := range numFields {
		r := c.FieldRect(f)
		drawText(dst, c.fonts.Small, fieldLabels[f], r.X, r.Y-c.fonts.Small.LineHeight()-labelGap, silver.WithAlpha(a))
		fillRect(dst, r, cardFill.WithAlpha(0.5*a))
		border := cardBorder
		if f == c.focus {
			border = pal.Primary
		}
		strokeRect(dst, r, 1, border.WithAlpha(a))

		lines := wrap(c.fonts.Body, c.values[f], r.Width-32)
		if f != FieldMessage && len(lines) > 1 {
			lines = lines[len(lines)-1:]
		}
		y := r.Y + 12
		x := r.X + 16
		for _, l := range lines {
			if y+c.fonts.Body.LineHeight() > r.Y+r.Height {
				break
			}
			drawText(dst, c.fonts.Body, l, r.X+16, y, silver.WithAlpha(a))
			w, _ := c.fonts.Body.Measure(l)
			x = r.X + 16 + w
			y += c.fonts.Body.LineHeight()
		}
		if f == c.focus && blink {
			cy := r.Y + 12
			if len(lines) > 0 {
				cy = y - c.fonts.Body.LineHeight()
			}
			fillRect(dst, folio.Rect{X: x + 2, Y: cy, Width: 2, Height: c.fonts.Body.LineHeight()}, pal.Primary.WithAlpha(a))
		}
	}

	b := c.ButtonRect()
	label := "Send Message"
	fill := pal.Primary
	switch c.state {
	case FormSubmitting:
		label = "Sending..."
		fill = fill.WithAlpha(0.6)
	case FormSubmitted:
		label = "Message Sent!"
	}
	if p, ok := c.win.Pointer(); ok && b.Contains(p.X, p.Y) && c.state == FormIdle {
		fill = pal.Accent
	}
	fillRect(dst, b, fill.WithAlpha(fill.A*a))
	lw, lh := c.fonts.Body.Measure(label)
	drawText(dst, c.fonts.Body, label, b.X+(b.Width-lw)/2, b.Y+(b.Height-lh)/2, folio.Color{A: a})

	if c.err != nil && c.state == FormIdle {
		drawText(dst, c.fonts.Small, c.err.Error(), b.X, b.Y+b.Height+12, pal.Accent.WithAlpha(a))
	}
}
