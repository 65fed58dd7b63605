package pool

import "math"

// Handle names one live value inside a Pool. The zero Handle is never
// valid: slot 0's first handle carries generation 1.
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsNil reports whether the handle is the zero handle.
func (h Handle) IsNil() bool {
	return h == Handle{}
}

type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// Pool is a generational slot pool. Values live inside the pool's backing
// array; Get hands out short-lived pointers which must not be retained
// across a Destroy of the same handle.
type Pool[T any] struct {
	slots []slot[T]
	free  []uint32 // LIFO free list
	live  int

	// onDestroy, when set, runs against the value before its slot is
	// recycled.
	onDestroy func(*T)
}

// New creates an empty pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{}
}

// OnDestroy installs a destructor hook run by Destroy and Clear.
func (p *Pool[T]) OnDestroy(fn func(*T)) {
	p.onDestroy = fn
}

// Create allocates a slot and returns its handle plus a pointer for
// initialization. Free-listed slots are reused with a bumped generation;
// otherwise the pool grows.
func (p *Pool[T]) Create() (Handle, *T) {
	for len(p.free) > 0 {
		idx := p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		s := &p.slots[idx]
		if s.generation == math.MaxUint32 {
			// Retired slot that leaked onto the free list; skip it.
			continue
		}
		s.generation++
		s.occupied = true
		var zero T
		s.value = zero
		p.live++
		return Handle{Index: idx, Generation: s.generation}, &s.value
	}
	p.slots = append(p.slots, slot[T]{generation: 1, occupied: true})
	idx := uint32(len(p.slots) - 1)
	p.live++
	return Handle{Index: idx, Generation: 1}, &p.slots[idx].value
}

// Get resolves a handle to a borrow of its value; nil when the handle is
// stale or was never allocated.
func (p *Pool[T]) Get(h Handle) *T {
	if int(h.Index) >= len(p.slots) {
		return nil
	}
	s := &p.slots[h.Index]
	if !s.occupied || s.generation != h.Generation {
		return nil
	}
	return &s.value
}

// Valid reports whether a handle still resolves.
func (p *Pool[T]) Valid(h Handle) bool {
	return p.Get(h) != nil
}

// Destroy releases a handle's slot. Destroying a stale or never-allocated
// handle is a logged no-op. A slot whose generation would overflow is
// retired instead of freed.
func (p *Pool[T]) Destroy(h Handle) bool {
	if int(h.Index) >= len(p.slots) {
		tracer().Errorf("pool: destroy of unknown handle {%d %d}", h.Index, h.Generation)
		return false
	}
	s := &p.slots[h.Index]
	if !s.occupied || s.generation != h.Generation {
		tracer().Errorf("pool: destroy of dead handle {%d %d}", h.Index, h.Generation)
		return false
	}
	if p.onDestroy != nil {
		p.onDestroy(&s.value)
	}
	var zero T
	s.value = zero
	s.occupied = false
	p.live--
	if s.generation == math.MaxUint32-1 {
		// Next create would saturate; retire the slot for good.
		s.generation = math.MaxUint32
		return true
	}
	p.free = append(p.free, h.Index)
	return true
}

// Live returns the number of occupied slots.
func (p *Pool[T]) Live() int {
	return p.live
}

// FreeCount returns the size of the free list.
func (p *Pool[T]) FreeCount() int {
	return len(p.free)
}

// Cap returns the number of slots ever allocated.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// MaxGeneration returns the highest generation over all slots; diagnostics
// and tests use it to bound churn.
func (p *Pool[T]) MaxGeneration() uint32 {
	var g uint32
	for i := range p.slots {
		if p.slots[i].generation > g {
			g = p.slots[i].generation
		}
	}
	return g
}

// Each visits every live value in slot order.
func (p *Pool[T]) Each(fn func(h Handle, v *T)) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.occupied {
			fn(Handle{Index: uint32(i), Generation: s.generation}, &s.value)
		}
	}
}

// Clear destroys every live value and empties the pool entirely,
// free list and generations included.
func (p *Pool[T]) Clear() {
	if p.onDestroy != nil {
		for i := range p.slots {
			if p.slots[i].occupied {
				p.onDestroy(&p.slots[i].value)
			}
		}
	}
	p.slots = nil
	p.free = nil
	p.live = 0
}
