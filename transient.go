package folio

import (
	"time"
)

// Transient is a short-lived entry with a fixed time-to-live.
type Transient[T any] struct {
	Value T
	Born  time.Duration
	TTL   time.Duration
}

// Age returns the fraction of the TTL elapsed at now, clamped to [0, 1].
func (t *Transient[T]) Age(now time.Duration) float64 {
	if t.TTL <= 0 {
		return 1
	}
	return Clamp01(float64(now-t.Born) / float64(t.TTL))
}

// Expired reports whether the TTL has run out at now.
func (t *Transient[T]) Expired(now time.Duration) bool {
	return now-t.Born >= t.TTL
}

// TransientPool holds at most Cap live transients. Every value handed to
// Spawn is released exactly once: on expiry in Update, on Clear, or
// immediately when the pool is full.
type TransientPool[T any] struct {
	limit   int
	items   []Transient[T]
	release func(T)

	spawned  uint64
	rejected uint64
	released uint64
}

// NewTransientPool creates a pool with the given cap. release may be nil.
func NewTransientPool[T any](limit int, release func(T)) *TransientPool[T] {
	if limit <= 0 {
		limit = 1
	}
	return &TransientPool[T]{
		limit:   limit,
		items:   make([]Transient[T], 0, limit),
		release: release,
	}
}

// Cap returns the maximum number of live transients.
func (p *TransientPool[T]) Cap() int {
	return p.limit
}

// Len returns the number of live transients.
func (p *TransientPool[T]) Len() int {
	return len(p.items)
}

// Full reports whether Spawn would be rejected.
func (p *TransientPool[T]) Full() bool {
	return len(p.items) >= p.limit
}

// Spawn adds v, born at now with the given TTL. When the pool is full v is
// released at once and Spawn returns false.
func (p *TransientPool[T]) Spawn(v T, now, ttl time.Duration) bool {
	if p.Full() {
		p.rejected++
		p.free(v)
		return false
	}
	p.items = append(p.items, Transient[T]{Value: v, Born: now, TTL: ttl})
	p.spawned++
	return true
}

// Update removes and releases every transient whose TTL has elapsed at now,
// preserving the order of the rest. It returns the number removed.
func (p *TransientPool[T]) Update(now time.Duration) int {
	kept := p.items[:0]
	removed := 0
	for _, t := range p.items {
		if t.Expired(now) {
			p.free(t.Value)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	var zero Transient[T]
	for i := len(kept); i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = kept
	return removed
}

// At returns the i-th live transient.
func (p *TransientPool[T]) At(i int) *Transient[T] {
	return &p.items[i]
}

// Each calls fn for every live transient, oldest first.
func (p *TransientPool[T]) Each(fn func(t *Transient[T])) {
	for i := range p.items {
		fn(&p.items[i])
	}
}

// Clear releases every live transient.
func (p *TransientPool[T]) Clear() {
	for _, t := range p.items {
		p.free(t.Value)
	}
	clear(p.items)
	p.items = p.items[:0]
}

// Release implements Resource so a pool can be owned by a Session.
func (p *TransientPool[T]) Release() {
	p.Clear()
}

// Stats returns counters for spawned, rejected, and released values.
func (p *TransientPool[T]) Stats() (spawned, rejected, released uint64) {
	return p.spawned, p.rejected, p.released
}

func (p *TransientPool[T]) free(v T) {
	p.released++
	if p.release != nil {
		p.release(v)
	}
}
