package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

const (
	pointerStreakCap = 64
	glowTexSize      = 128
	glowRings        = 16
	glowPeak         = 0.5
	glowFade         = 2.0
	glowMinDelay     = time.Second
	glowJitter       = 2 * time.Second
	// glowReach is the glow's radius as a fraction of the distance from the
	// center to a corner.
	glowReach = 0.7
)

// PointerLightning throws a streak of lightning wherever the pointer moves:
// a bolt, a flash or a thunderbolt at a random angle. Every one to three
// seconds a faint green glow swells from the middle of the screen and fades
// over two seconds. It observes pointer input and never consumes it.
type PointerLightning struct {
	Seed uint64
	// Probability is the chance that one pointer move throws a streak.
	Probability float64

	session *folio.Session
	win     *folio.Window
	rng     *rand.Rand
	spawner *folio.Spawner
	streaks *Streaks

	glow      float64
	glowTween *folio.TweenGroup
	pulses    int
	tex       *folio.Surface
	sprite    *folio.Node
}

// NewPointerLightning creates the effect. Every pointer move throws a streak.
func NewPointerLightning(seed uint64) *PointerLightning {
	return &PointerLightning{Seed: seed, Probability: 1}
}

// Layer returns the effect's interactive layer.
func (e *PointerLightning) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "pointer-lightning", Depth: folio.DepthInteractive, Pointer: folio.PointerObserve}
}

// Mount allocates the streak pool and schedules the first glow.
func (e *PointerLightning) Mount(s *folio.Session) error {
	e.session = s
	e.win = s.Window()
	e.rng = folio.NewRand(e.Seed)
	e.spawner = folio.NewSpawner(e.Probability, e.rng)
	e.streaks = NewStreaks(pointerStreakCap)
	s.Own(e.streaks)
	e.tex = s.NewSurface(glowTexSize, glowTexSize)
	e.scheduleGlow()
	return nil
}

func (e *PointerLightning) scheduleGlow() {
	d := glowMinDelay + time.Duration(e.rng.Int64N(int64(glowJitter)))
	e.session.After(d, func() {
		e.pulses++
		e.glowTween = folio.TweenValue(&e.glow, glowPeak, 0, glowFade, ease.OutQuad)
		e.glow = glowPeak
		e.scheduleGlow()
	})
}

// HandlePointer rolls for a streak on every pointer move.
func (e *PointerLightning) HandlePointer(ev *folio.Event) {
	if ev.Type != folio.EventPointerMove || !e.spawner.Trial() {
		return
	}
	e.streaks.Spawn(Streak{
		Kind:  RollStreakKind(e.rng),
		Pos:   folio.Vec2{X: ev.X, Y: ev.Y},
		Angle: e.rng.Float64() * 2 * math.Pi,
	})
}

// Update advances the streaks and the glow.
func (e *PointerLightning) Update(f folio.Frame) {
	e.streaks.Update(f)
	if e.glowTween != nil {
		e.glowTween.Update(float32(f.DeltaSeconds()))
	}
}

// Draw renders the glow behind the streaks.
func (e *PointerLightning) Draw(dst *ebiten.Image) {
	if e.glow > 0 {
		e.drawGlow(dst)
	}
	e.streaks.Draw(dst, 1)
}

func (e *PointerLightning) drawGlow(dst *ebiten.Image) {
	if e.sprite == nil {
		img := e.tex.Image()
		if img == nil {
			return
		}
		const c = glowTexSize / 2
		for i := range glowRings {
			r := float32(c) * float32(glowRings-i) / glowRings
			vector.DrawFilledCircle(img, c, c, r, folio.ColorWhite.WithAlpha(0.2).Premul(), true)
		}
		e.sprite = folio.NewSprite("glow", img)
		e.sprite.SetPivot(c, c)
		e.sprite.Color = neonGreen.WithAlpha(0.1)
		e.sprite.BlendMode = folio.BlendAdd
		e.session.Own(e.sprite)
	}
	w, h := e.win.Size()
	reach := glowReach * math.Hypot(float64(w)/2, float64(h)/2)
	k := reach / (glowTexSize / 2)
	e.sprite.SetPosition(float64(w)/2, float64(h)/2)
	e.sprite.SetScale(k, k)
	e.sprite.Alpha = e.glow
	e.sprite.Draw(dst)
}

// Glow returns the current glow opacity.
func (e *PointerLightning) Glow() float64 { return e.glow }

// Pulses returns how many glows have started.
func (e *PointerLightning) Pulses() int { return e.pulses }

// Each calls fn for every live streak.
func (e *PointerLightning) Each(fn func(st *Streak)) { e.streaks.Each(fn) }

// LiveTransients reports live streaks.
func (e *PointerLightning) LiveTransients() int {
	return e.streaks.Len()
}
