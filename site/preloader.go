package site

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/effects"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

const (
	loadTick       = 200 * time.Millisecond
	loadHold       = 500 * time.Millisecond
	loadFade       = 1.0
	barTween       = 0.5
	barWidth       = 256
	barHeight      = 8
	streakCap      = 64
	streakLife     = 0.3
	thunderChance  = 0.3
	thunderFade    = 0.5
	streakMinDelay = 200 * time.Millisecond
	streakJitter   = 500 * time.Millisecond
)

var barTrack = folio.Hex(0x1f2937)

// Preloader covers the page until simulated loading completes. Progress
// climbs by a random step every 200ms; when it reaches 100 the screen holds
// for half a second, fades out over one second and unmounts itself. While
// visible it takes every pointer event and throws lightning streaks, some of
// which end in a white thunder flash.
type Preloader struct {
	Seed uint64

	session *folio.Session
	log     *zap.Logger
	rng     *rand.Rand

	progress float64
	bar      float64
	barTween *folio.TweenGroup
	alpha    float64
	fade     *folio.TweenGroup
	thunder  float64
	flash    *folio.TweenGroup
	streaks  *effects.Streaks
	now      time.Duration
	fonts    *Fonts
	done     bool
}

// NewPreloader creates the preloader.
func NewPreloader(fonts *Fonts, seed uint64) *Preloader {
	return &Preloader{Seed: seed, fonts: fonts, alpha: 1}
}

func (p *Preloader) layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "preloader", Depth: folio.DepthOverlay, Pointer: folio.PointerTarget}
}

// Mount starts the loading ticks and the lightning.
func (p *Preloader) Mount(s *folio.Session) error {
	p.session = s
	p.log = s.Logger()
	p.rng = folio.NewRand(p.Seed)
	p.streaks = effects.NewStreaks(streakCap)
	p.streaks.OnFinish = p.rollThunder
	s.Own(p.streaks)
	s.After(loadTick, p.tick)
	p.scheduleStreak()
	return nil
}

func (p *Preloader) tick() {
	p.progress = min(100, p.progress+p.rng.Float64()*10)
	p.barTween = folio.TweenValue(&p.bar, p.bar, p.progress, barTween, ease.OutCubic)
	if p.progress < 100 {
		p.session.After(loadTick, p.tick)
		return
	}
	p.log.Debug("preloader complete")
	p.session.After(loadHold, func() {
		p.fade = folio.TweenValue(&p.alpha, 1, 0, loadFade, ease.InOutQuad)
	})
}

func (p *Preloader) scheduleStreak() {
	d := streakMinDelay + time.Duration(p.rng.Int64N(int64(streakJitter)))
	p.session.After(d, func() {
		p.spawnStreak()
		p.scheduleStreak()
	})
}

func (p *Preloader) spawnStreak() {
	vw, vh := p.session.Window().Size()
	p.streaks.Spawn(effects.Streak{
		Kind:  effects.StreakThunderbolt,
		Pos:   folio.Vec2{X: p.rng.Float64() * float64(vw), Y: p.rng.Float64() * float64(vh)},
		Angle: p.rng.Float64() * 2 * math.Pi,
		Scale: p.rng.Float64()*2 + 1,
		Alpha: 0.9,
		Life:  streakLife,
	})
}

// rollThunder whites the screen out behind some of the finished streaks.
func (p *Preloader) rollThunder(*effects.Streak) {
	if p.rng.Float64() < thunderChance {
		p.thunder = 1
		p.flash = folio.TweenValue(&p.thunder, 1, 0, thunderFade, ease.OutQuad)
	}
}

// Progress returns the loading progress in [0, 100].
func (p *Preloader) Progress() float64 { return p.progress }

// Bar returns the displayed bar fill in [0, 100]; it trails Progress.
func (p *Preloader) Bar() float64 { return p.bar }

// Alpha returns the overlay opacity.
func (p *Preloader) Alpha() float64 { return p.alpha }

// Thunder returns the flash opacity.
func (p *Preloader) Thunder() float64 { return p.thunder }

// Done reports whether the preloader has faded out and unmounted.
func (p *Preloader) Done() bool { return p.done }

// LiveTransients reports live streaks.
func (p *Preloader) LiveTransients() int {
	if p.streaks == nil {
		return 0
	}
	return p.streaks.Len()
}

// HandlePointer swallows input while the preloader is up.
func (p *Preloader) HandlePointer(ev *folio.Event) {
	ev.Consume()
}

// Update advances the bar, the streaks and the flash, and unmounts the
// preloader once its fade-out ends.
func (p *Preloader) Update(f folio.Frame) {
	p.now = f.Elapsed
	dt := float32(f.DeltaSeconds())
	if p.barTween != nil {
		p.barTween.Update(dt)
	}
	if p.flash != nil {
		p.flash.Update(dt)
	}
	p.streaks.Update(f)
	if p.fade == nil {
		return
	}
	p.fade.Update(dt)
	if p.fade.Finished() {
		p.done = true
		p.log.Debug("preloader unmounted")
		p.session.Dispose()
	}
}

// Draw renders the backdrop, the streaks, any thunder flash, the label and
// the progress bar.
func (p *Preloader) Draw(dst *ebiten.Image) {
	if p.alpha <= 0 {
		return
	}
	a := p.alpha
	b := dst.Bounds()
	vw, vh := float64(b.Dx()), float64(b.Dy())
	fillRect(dst, folio.Rect{Width: vw, Height: vh}, folio.Color{A: 0.9 * a})

	p.streaks.Draw(dst, a)

	if p.thunder > 0 {
		fillRect(dst, folio.Rect{Width: vw, Height: vh}, folio.ColorWhite.WithAlpha(p.thunder*a))
	}

	const label = "Loading..."
	pulse := 0.75 + 0.25*math.Cos(p.now.Seconds()*math.Pi)
	lw, lh := p.fonts.Heading.Measure(label)
	top := vh/2 - (lh+32+barHeight)/2
	drawText(dst, p.fonts.Heading, label, (vw-lw)/2, top, electricBlue.WithAlpha(pulse*a))

	track := folio.Rect{X: (vw - barWidth) / 2, Y: top + lh + 32, Width: barWidth, Height: barHeight}
	fillRect(dst, track, barTrack.WithAlpha(0.5*a))
	fill := track
	fill.Width = barWidth * folio.Clamp01(p.bar/100)
	fillRect(dst, fill, electricBlue.WithAlpha(a))
}
