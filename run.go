package folio

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Page is what Run hosts: a window driven by real input and something that
// draws it.
type Page interface {
	Window() *Window
	Draw(dst *ebiten.Image)
}

// Disposer is implemented by pages that release resources when Run returns.
type Disposer interface {
	Dispose()
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// Background fills the screen before the page draws.
	Background Color
	// WheelStep is the scroll distance in pixels of one wheel notch.
	WheelStep float64
	// Script, when set, replays scripted input before real input is read.
	Script *ScriptRunner
	// ScreenshotDir enables captures from script steps and the F12 key.
	ScreenshotDir string
	Logger        *zap.Logger
}

// ErrQuit ends Run without an error from the caller's point of view.
var ErrQuit = errors.New("folio: quit")

type host struct {
	page Page
	cfg  RunConfig
	win  *Window

	shots *Screenshots

	lastX, lastY int
	inside       bool
	chars        []rune
}

// Run opens a window and hosts page until the window is closed. Each tick
// translates mouse and keyboard input into window events and advances the
// window by one fixed step, so every component sees exactly the event and
// frame order it would see headless.
func Run(page Page, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = page.Window().Size()
	}
	if cfg.WheelStep == 0 {
		cfg.WheelStep = 100
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	h := &host{page: page, cfg: cfg, win: page.Window(), lastX: -1, lastY: -1}
	if cfg.ScreenshotDir != "" {
		h.shots = NewScreenshots(cfg.ScreenshotDir, cfg.Logger)
		if cfg.Script != nil {
			cfg.Script.Capture = h.shots.Queue
		}
	}
	err := ebiten.RunGame(h)
	if d, ok := page.(Disposer); ok {
		d.Dispose()
	}
	if err != nil && !errors.Is(err, ErrQuit) {
		return fmt.Errorf("folio: run: %w", err)
	}
	return nil
}

func (h *host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrQuit
	}
	if h.shots != nil && inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		h.shots.Queue("manual")
	}
	if h.cfg.Script != nil && !h.cfg.Script.Done() {
		h.cfg.Script.Step(h.win)
	} else {
		h.pollInput()
	}
	h.win.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (h *host) pollInput() {
	mx, my := ebiten.CursorPosition()
	w, ht := h.win.Size()
	inside := mx >= 0 && my >= 0 && mx < w && my < ht
	switch {
	case !inside && h.inside:
		h.win.PointerLeave()
	case inside && (mx != h.lastX || my != h.lastY):
		h.win.MovePointer(float64(mx), float64(my))
	}
	h.inside = inside
	h.lastX, h.lastY = mx, my

	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.win.PointerDown(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.win.PointerUp(float64(mx), float64(my))
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.win.Wheel(-wy * h.cfg.WheelStep)
	}

	// A focused field that takes the keystrokes suppresses keyboard
	// scrolling for the tick.
	typing := false
	h.chars = ebiten.AppendInputChars(h.chars[:0])
	if len(h.chars) > 0 {
		typing = h.win.TypeText(string(h.chars)).DefaultPrevented()
	}
	for _, k := range []struct {
		key   ebiten.Key
		field Key
	}{{ebiten.KeyBackspace, KeyBackspace}, {ebiten.KeyEnter, KeyEnter}, {ebiten.KeyTab, KeyTab}} {
		if inpututil.IsKeyJustPressed(k.key) && h.win.PressKey(k.field).DefaultPrevented() {
			typing = true
		}
	}
	if typing {
		return
	}
	page := float64(ht) * 0.9
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		h.win.Wheel(page)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		h.win.Wheel(-page)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		h.win.Wheel(h.cfg.WheelStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		h.win.Wheel(-h.cfg.WheelStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		h.win.Wheel(-h.win.ScrollY())
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		h.win.Wheel(h.win.MaxScroll() - h.win.ScrollY())
	}
}

func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(h.cfg.Background.Premul())
	h.page.Draw(screen)
	if h.shots != nil {
		h.shots.Flush(screen)
	}
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.win.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
