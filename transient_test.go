package folio

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTransientPoolExpiry(t *testing.T) {
	var released []string
	p := NewTransientPool(15, func(s string) { released = append(released, s) })

	p.Spawn("a", 0, 100*time.Millisecond)
	p.Spawn("b", 0, 300*time.Millisecond)
	p.Spawn("c", 50*time.Millisecond, 100*time.Millisecond)

	tests := []struct {
		now      time.Duration
		removed  int
		live     int
		released []string
	}{
		{99 * time.Millisecond, 0, 3, nil},
		{100 * time.Millisecond, 1, 2, []string{"a"}},
		{150 * time.Millisecond, 1, 1, []string{"a", "c"}},
		{300 * time.Millisecond, 1, 0, []string{"a", "c", "b"}},
	}
	for _, tt := range tests {
		if got := p.Update(tt.now); got != tt.removed {
			t.Errorf("Update(%v) removed %d, want %d", tt.now, got, tt.removed)
		}
		if p.Len() != tt.live {
			t.Errorf("Len at %v = %d, want %d", tt.now, p.Len(), tt.live)
		}
		if diff := cmp.Diff(tt.released, released); diff != "" {
			t.Errorf("released at %v (-want +got):\n%s", tt.now, diff)
		}
	}
}

func TestTransientPoolCap(t *testing.T) {
	rejected := 0
	p := NewTransientPool(15, func(int) { rejected++ })
	for i := range 20 {
		ok := p.Spawn(i, 0, time.Second)
		if want := i < 15; ok != want {
			t.Errorf("Spawn(%d) = %v, want %v", i, ok, want)
		}
	}
	if p.Len() != 15 || !p.Full() {
		t.Errorf("Len = %d, want 15 and full", p.Len())
	}
	if rejected != 5 {
		t.Errorf("rejected values released %d times, want 5", rejected)
	}
	spawned, rej, rel := p.Stats()
	if spawned != 15 || rej != 5 || rel != 5 {
		t.Errorf("Stats = %d/%d/%d, want 15/5/5", spawned, rej, rel)
	}
}

func TestTransientPoolReleasesOnce(t *testing.T) {
	counts := map[int]int{}
	p := NewTransientPool(4, func(v int) { counts[v]++ })
	for i := range 6 {
		p.Spawn(i, time.Duration(i)*time.Millisecond, 10*time.Millisecond)
	}
	p.Update(12 * time.Millisecond)
	p.Release()
	p.Release()
	p.Update(time.Hour)
	for i := range 6 {
		if counts[i] != 1 {
			t.Errorf("value %d released %d times, want 1", i, counts[i])
		}
	}
	if p.Len() != 0 {
		t.Errorf("Len = %d after release, want 0", p.Len())
	}
}

func TestTransientPoolOrderKept(t *testing.T) {
	p := NewTransientPool[string](8, nil)
	p.Spawn("a", 0, time.Second)
	p.Spawn("b", 0, 10*time.Millisecond)
	p.Spawn("c", 0, time.Second)
	p.Update(20 * time.Millisecond)

	var got []string
	p.Each(func(tr *Transient[string]) { got = append(got, tr.Value) })
	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if p.At(1).Value != "c" {
		t.Errorf("At(1) = %q, want c", p.At(1).Value)
	}
}

func TestTransientAge(t *testing.T) {
	tr := Transient[int]{Born: time.Second, TTL: 400 * time.Millisecond}
	tests := []struct {
		now  time.Duration
		want float64
	}{
		{time.Second, 0},
		{1200 * time.Millisecond, 0.5},
		{2 * time.Second, 1},
	}
	for _, tt := range tests {
		if got := tr.Age(tt.now); got != tt.want {
			t.Errorf("Age(%v) = %v, want %v", tt.now, got, tt.want)
		}
	}
	zero := Transient[int]{}
	if zero.Age(0) != 1 || !zero.Expired(0) {
		t.Error("zero TTL should be expired immediately")
	}
}

func TestSessionOwnsPool(t *testing.T) {
	w := NewWindow(800, 600)
	s := mountedSession(t, w, "bolts")
	released := 0
	p := NewTransientPool(3, func(int) { released++ })
	s.Own(p)
	p.Spawn(1, 0, time.Second)
	p.Spawn(2, 0, time.Second)
	s.Dispose()
	if released != 2 {
		t.Errorf("released = %d after dispose, want 2", released)
	}
}
