package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

const (
	doorStars        = 100
	doorStreakCap    = 32
	twinklePeriod    = 3.0
	doorStrikeMin    = 200 * time.Millisecond
	doorStrikeJitter = 500 * time.Millisecond
)

// DoorMode selects which way a galaxy door plays.
type DoorMode uint8

const (
	// DoorIntro opens onto a starfield, then fades the whole door away.
	DoorIntro DoorMode = iota
	// DoorOutro fades in over the page, then folds the starfield shut.
	DoorOutro
)

// String returns "intro" or "outro".
func (m DoorMode) String() string {
	if m == DoorOutro {
		return "outro"
	}
	return "intro"
}

type doorStar struct {
	node  *folio.Node
	fx    float64
	fy    float64
	delay float64
}

// GalaxyDoor is a full-screen black curtain holding 100 twinkling stars and
// periodic lightning. The intro unfolds the door vertically, brings the stars
// in and fades out after 3.5s; the outro fades in, brings the stars in and
// folds the door shut after 3s. When its timeline ends it calls OnComplete
// and unmounts itself. While mounted it takes every pointer event.
type GalaxyDoor struct {
	Seed uint64
	Mode DoorMode
	// OnComplete runs once, just before the door unmounts itself.
	OnComplete func()

	session *folio.Session
	win     *folio.Window
	log     *zap.Logger
	rng     *rand.Rand
	streaks *Streaks

	root   *folio.Node
	back   *folio.Node
	door   *folio.Node
	field  *folio.Node
	stars  []doorStar
	tweens []*folio.TweenGroup
	last   *folio.TweenGroup
	t      float64
	done   bool
}

// NewGalaxyDoor creates a door playing mode.
func NewGalaxyDoor(mode DoorMode, seed uint64) *GalaxyDoor {
	return &GalaxyDoor{Seed: seed, Mode: mode}
}

// Layer returns the door's overlay layer.
func (d *GalaxyDoor) Layer() folio.LayerConfig {
	return folio.LayerConfig{Name: "galaxy-" + d.Mode.String(), Depth: folio.DepthOverlay, Pointer: folio.PointerTarget}
}

// Mount builds the starfield and schedules the timeline.
func (d *GalaxyDoor) Mount(s *folio.Session) error {
	d.session = s
	d.win = s.Window()
	d.log = s.Logger()
	d.rng = folio.NewRand(d.Seed)
	d.streaks = NewStreaks(doorStreakCap)
	s.Own(d.streaks)

	d.root = folio.NewContainer("galaxy-door")
	s.Own(d.root)
	d.back = folio.NewRect("backdrop", 1, 1, folio.Color{A: 1})
	d.door = folio.NewContainer("door")
	d.field = folio.NewContainer("stars")
	d.root.AddChild(d.back)
	d.root.AddChild(d.door)
	d.door.AddChild(d.field)
	d.stars = make([]doorStar, doorStars)
	for i := range d.stars {
		n := folio.NewCircle("star", 1, 0, folio.ColorWhite)
		d.field.AddChild(n)
		d.stars[i] = doorStar{node: n, fx: d.rng.Float64(), fy: d.rng.Float64(), delay: d.rng.Float64() * twinklePeriod}
	}
	d.layout(d.win.Size())
	s.Listen(folio.EventResize, func(ev *folio.Event) { d.layout(ev.Width, ev.Height) })

	if d.Mode == DoorIntro {
		d.intro()
	} else {
		d.outro()
	}
	d.scheduleStrike()
	return nil
}

// intro: the door opens over 1.5s, the stars join for the last second, and
// after a one second hold everything fades out.
func (d *GalaxyDoor) intro() {
	d.door.ScaleY, d.door.Alpha = 0, 0
	d.field.SetScale(0.5, 0.5)
	d.field.Alpha = 0
	d.play(
		folio.TweenScale(d.door, 1, 1, 1.5, ease.InOutQuint),
		folio.TweenAlpha(d.door, 1, 1.5, ease.InOutQuint))
	d.session.After(500*time.Millisecond, func() {
		d.play(
			folio.TweenScale(d.field, 1, 1, 1, ease.OutCubic),
			folio.TweenAlpha(d.field, 1, 1, ease.OutCubic))
	})
	d.session.After(2500*time.Millisecond, func() {
		d.last = folio.TweenAlpha(d.root, 0, 1, ease.InOutCubic)
		d.play(d.last)
	})
}

// outro: the curtain fades in, the stars shrink into place, and the door
// folds shut over 1.5s.
func (d *GalaxyDoor) outro() {
	d.root.Alpha = 0
	d.field.SetScale(1.5, 1.5)
	d.field.Alpha = 0
	d.play(folio.TweenAlpha(d.root, 1, 0.5, ease.OutQuad))
	d.session.After(500*time.Millisecond, func() {
		d.play(
			folio.TweenScale(d.field, 1, 1, 1, ease.OutCubic),
			folio.TweenAlpha(d.field, 1, 1, ease.OutCubic))
	})
	d.session.After(1500*time.Millisecond, func() {
		d.last = folio.TweenScale(d.door, 1, 0, 1.5, ease.InOutQuint)
		d.play(d.last, folio.TweenAlpha(d.door, 0, 1.5, ease.InOutQuint))
	})
}

func (d *GalaxyDoor) play(groups ...*folio.TweenGroup) {
	d.tweens = append(d.tweens, groups...)
}

func (d *GalaxyDoor) scheduleStrike() {
	delay := doorStrikeMin + time.Duration(d.rng.Int64N(int64(doorStrikeJitter)))
	d.session.After(delay, func() {
		w, h := d.win.Size()
		d.streaks.Spawn(Streak{
			Kind:  RollStreakKind(d.rng),
			Pos:   folio.Vec2{X: d.rng.Float64() * float64(w), Y: d.rng.Float64() * float64(h)},
			Angle: d.rng.Float64() * 2 * math.Pi,
		})
		d.scheduleStrike()
	})
}

func (d *GalaxyDoor) layout(w, h int) {
	vw, vh := float64(w), float64(h)
	d.back.Width, d.back.Height = vw, vh
	d.door.SetPivot(vw/2, vh/2)
	d.door.SetPosition(vw/2, vh/2)
	d.field.SetPivot(vw/2, vh/2)
	d.field.SetPosition(vw/2, vh/2)
	for _, st := range d.stars {
		st.node.SetPosition(st.fx*vw, st.fy*vh)
	}
}

// HitTest claims the whole viewport until the door is done.
func (d *GalaxyDoor) HitTest(x, y float64) bool { return !d.done }

// HandlePointer swallows input.
func (d *GalaxyDoor) HandlePointer(ev *folio.Event) {
	ev.Consume()
}

// Update advances the timeline, twinkles the stars and ages the lightning.
// Once the last tween ends the door completes and unmounts.
func (d *GalaxyDoor) Update(f folio.Frame) {
	dt := float32(f.DeltaSeconds())
	d.t += f.DeltaSeconds()
	for _, g := range d.tweens {
		g.Update(dt)
	}
	for _, st := range d.stars {
		phase := d.t - st.delay
		if phase < 0 {
			continue
		}
		// 0.2 and 0.8x at the ends of a cycle, 1 and 1.2x in the middle.
		u := 0.5 - 0.5*math.Cos(2*math.Pi*phase/twinklePeriod)
		st.node.Alpha = 0.2 + 0.8*u
		k := 0.8 + 0.4*u
		st.node.SetScale(k, k)
	}
	d.streaks.Update(f)
	if d.last == nil || !d.last.Finished() || d.done {
		return
	}
	d.done = true
	d.log.Debug("galaxy door finished", zap.Stringer("mode", d.Mode))
	if d.OnComplete != nil {
		d.OnComplete()
	}
	d.session.Dispose()
}

// Draw renders the curtain, the stars and the lightning.
func (d *GalaxyDoor) Draw(dst *ebiten.Image) {
	if d.root.Alpha <= 0 {
		return
	}
	d.root.Draw(dst)
	d.streaks.Draw(dst, d.root.Alpha*d.door.Alpha)
}

// Opacity returns the whole door's opacity.
func (d *GalaxyDoor) Opacity() float64 { return d.root.Alpha }

// DoorScale returns the door's vertical scale.
func (d *GalaxyDoor) DoorScale() float64 { return d.door.ScaleY }

// StarOpacity returns the starfield's opacity and scale.
func (d *GalaxyDoor) StarOpacity() (alpha, scale float64) { return d.field.Alpha, d.field.ScaleX }

// Done reports whether the timeline has ended.
func (d *GalaxyDoor) Done() bool { return d.done }

// LiveTransients reports live streaks.
func (d *GalaxyDoor) LiveTransients() int { return d.streaks.Len() }
