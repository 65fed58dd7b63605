package objects

import (
	"github.com/okarren/aurora/pool"
)

// EffectType identifies an effect's behavior; the game profile assigns
// meanings and registers apply/remove callbacks for each.
type EffectType int32

// EffectTypeInvalid is the unset effect type.
const EffectTypeInvalid EffectType = -1

// EffectID is the generational identity of a pooled effect.
type EffectID = pool.TypedHandle

// DurationKind states how an effect expires.
type DurationKind uint8

// Duration kinds.
const (
	DurationInstant DurationKind = iota
	DurationTemporary
	DurationPermanent
)

// Versus restricts an effect or modifier to targets matching an alignment
// and/or race; zero values mean unrestricted.
type Versus struct {
	Align uint8
	Race  int32
}

// Matches tests a target description against the restriction.
func (v Versus) Matches(align uint8, race int32) bool {
	if v.Align != 0 && v.Align != align {
		return false
	}
	if v.Race != 0 && v.Race != race {
		return false
	}
	return true
}

// Effect is a transient gameplay modifier. Effects are value-typed but
// pooled; the fixed payload arrays keep them allocation-free.
type Effect struct {
	ID       EffectID
	Type     EffectType
	Subtype  int32
	Creator  pool.Handle
	Duration DurationKind
	Seconds  float32

	Ints    [8]int32
	Floats  [4]float32
	Strings [4]string

	Versus Versus
}

// Clear resets the payload while keeping the pooled identity.
func (e *Effect) Clear() {
	id := e.ID
	*e = Effect{ID: id, Type: EffectTypeInvalid}
}

// EffectList is the per-object set of applied effects. Only the effect
// system mutates it; objects expose it read-mostly.
type EffectList struct {
	effects []*Effect
}

// Size returns the number of applied effects.
func (l *EffectList) Size() int {
	return len(l.effects)
}

// Has checks whether an effect is applied.
func (l *EffectList) Has(e *Effect) bool {
	for _, have := range l.effects {
		if have == e {
			return true
		}
	}
	return false
}

// Add appends an effect. A live effect appears in exactly one object's
// list; re-adding the same effect is a logged no-op.
func (l *EffectList) Add(e *Effect) bool {
	if e == nil {
		return false
	}
	if l.Has(e) {
		tracer().Errorf("effect %d already applied", e.ID.ToUint64())
		return false
	}
	l.effects = append(l.effects, e)
	return true
}

// Remove detaches an effect, preserving order of the rest.
func (l *EffectList) Remove(e *Effect) bool {
	for i, have := range l.effects {
		if have == e {
			l.effects = append(l.effects[:i], l.effects[i+1:]...)
			return true
		}
	}
	return false
}

// Each visits applied effects in application order.
func (l *EffectList) Each(fn func(e *Effect)) {
	for _, e := range l.effects {
		fn(e)
	}
}

// Clear empties the list; the effect system owns returning the effects to
// their pool.
func (l *EffectList) Clear() {
	l.effects = nil
}
