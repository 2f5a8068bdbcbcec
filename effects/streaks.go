package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

// streakMaxLife bounds a streak whose tweens never finish.
const streakMaxLife = time.Second

// streakPieces is how many bands a streak is drawn in so it fades toward
// both ends.
const streakPieces = 8

// StreakKind selects a lightning streak's size, opacity and lifetime.
type StreakKind uint8

const (
	StreakBolt        StreakKind = iota // 2x100px, 0.3s
	StreakFlash                         // 4x150px, green into blue, 0.3s
	StreakThunderbolt                   // 6x200px at double scale with a glow, 0.5s
)

// String returns the kind's name.
func (k StreakKind) String() string {
	switch k {
	case StreakFlash:
		return "flash"
	case StreakThunderbolt:
		return "thunderbolt"
	}
	return "bolt"
}

type streakStyle struct {
	length, width float64
	alpha, scale  float64
	life          float32
	glow          bool
}

var streakStyles = [...]streakStyle{
	StreakBolt:        {length: 100, width: 2, alpha: 0.8, scale: 1, life: 0.3},
	StreakFlash:       {length: 150, width: 4, alpha: 0.9, scale: 1, life: 0.3},
	StreakThunderbolt: {length: 200, width: 6, alpha: 1, scale: 2, life: 0.5, glow: true},
}

// RollStreakKind picks a bolt 60% of the time, a flash 30% and a
// thunderbolt 10%.
func RollStreakKind(rng *rand.Rand) StreakKind {
	switch r := rng.Float64(); {
	case r < 0.6:
		return StreakBolt
	case r < 0.9:
		return StreakFlash
	default:
		return StreakThunderbolt
	}
}

// Streak is one straight stroke of lightning. It grows to 1.5 times its
// starting scale while fading to nothing.
type Streak struct {
	Kind StreakKind
	// Pos is the center in viewport pixels.
	Pos folio.Vec2
	// Angle is the rotation from vertical in radians.
	Angle float64
	// Scale and Alpha start at the kind's defaults when zero.
	Scale float64
	Alpha float64
	// Life overrides the kind's lifetime in seconds when positive.
	Life float32
	// Length overrides the kind's length in pixels when positive.
	Length float64

	tween [2]*folio.TweenGroup
}

// Done reports whether the streak has finished growing and fading.
func (s *Streak) Done() bool {
	return s.tween[0].Finished() && s.tween[1].Finished()
}

// Streaks is a capped pool of lightning streaks shared by the effects that
// throw them: pointer lightning, the galaxy doors, the navbar, the electric
// character and the preloader.
type Streaks struct {
	// OnFinish runs once for each streak whose tweens complete.
	OnFinish func(st *Streak)

	pool  *folio.TransientPool[*Streak]
	lines folio.LineBatch
	now   time.Duration
}

// NewStreaks creates a pool holding at most limit streaks.
func NewStreaks(limit int) *Streaks {
	return &Streaks{pool: folio.NewTransientPool[*Streak](limit, nil)}
}

// Spawn starts st. It reports false when the pool is full.
func (s *Streaks) Spawn(st Streak) bool {
	style := streakStyles[st.Kind]
	if st.Scale == 0 {
		st.Scale = style.scale
	}
	if st.Alpha == 0 {
		st.Alpha = style.alpha
	}
	life := st.Life
	if life <= 0 {
		life = style.life
	}
	p := &st
	p.tween[0] = folio.TweenValue(&p.Scale, p.Scale, p.Scale*1.5, life, ease.OutCubic)
	p.tween[1] = folio.TweenValue(&p.Alpha, p.Alpha, 0, life, ease.OutCubic)
	return s.pool.Spawn(p, s.now, streakMaxLife)
}

// Update advances every streak and drops finished ones.
func (s *Streaks) Update(f folio.Frame) {
	s.now = f.Elapsed
	dt := float32(f.DeltaSeconds())
	s.pool.Each(func(t *folio.Transient[*Streak]) {
		st := t.Value
		if st.Done() {
			return
		}
		st.tween[0].Update(dt)
		st.tween[1].Update(dt)
		if st.Done() {
			t.TTL = 0
			if s.OnFinish != nil {
				s.OnFinish(st)
			}
		}
	})
	s.pool.Update(s.now)
}

// Draw strokes every streak onto dst with its opacity scaled by alpha. Each
// is transparent at both ends and brightest in the middle.
func (s *Streaks) Draw(dst *ebiten.Image, alpha float64) {
	if s.pool.Len() == 0 || alpha <= 0 {
		return
	}
	s.lines.Reset()
	s.pool.Each(func(t *folio.Transient[*Streak]) { s.stroke(t.Value, alpha) })
	s.lines.Draw(dst)
}

func (s *Streaks) stroke(st *Streak, alpha float64) {
	style := streakStyles[st.Kind]
	length := style.length
	if st.Length > 0 {
		length = st.Length
	}
	half := length * st.Scale / 2
	w := style.width * st.Scale
	sin, cos := math.Sincos(st.Angle)
	dir := folio.Vec2{X: sin, Y: -cos}
	at := func(u float64) folio.Vec2 {
		d := -half + 2*half*u
		return folio.Vec2{X: st.Pos.X + dir.X*d, Y: st.Pos.Y + dir.Y*d}
	}
	for i := range streakPieces {
		u0 := float64(i) / streakPieces
		u1 := float64(i+1) / streakPieces
		mid := (u0 + u1) / 2
		a := st.Alpha * alpha * math.Sin(math.Pi*mid)
		from, to := at(u0), at(u1)
		if style.glow {
			s.lines.Segment(from, to, w*4, neonGreen.WithAlpha(0.25*a))
		}
		c := neonGreen
		switch st.Kind {
		case StreakFlash:
			if mid > 0.5 {
				c = electricBlue
			}
		case StreakThunderbolt:
			if mid > 1.0/3 && mid < 2.0/3 {
				c = electricBlue
			}
		}
		s.lines.Segment(from, to, w, c.WithAlpha(a))
	}
}

// Len returns the number of live streaks.
func (s *Streaks) Len() int {
	return s.pool.Len()
}

// Each calls fn for every live streak, oldest first.
func (s *Streaks) Each(fn func(st *Streak)) {
	s.pool.Each(func(t *folio.Transient[*Streak]) { fn(t.Value) })
}

// Release implements folio.Resource.
func (s *Streaks) Release() {
	s.pool.Clear()
}
