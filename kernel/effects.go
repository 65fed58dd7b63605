package kernel

import (
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/pool"
	"github.com/okarren/aurora/twoda"
)

// EffectFunc mutates an object when an effect is applied or removed. A
// false return vetoes the transition.
type EffectFunc func(obj objects.Object, eff *objects.Effect) bool

// handleTypeEffect tags effect handles inside the runtime handle space.
const handleTypeEffect uint8 = 1

// EffectSystem owns the effect pool and the per-type apply/remove
// registry. It is the only place gameplay transitions touch effect-bearing
// fields on objects.
// The pool stores stable heap pointers: applied effects live in object
// effect lists long after the pool's backing array may have grown.
type EffectSystem struct {
	twodas   *TwoDACache
	registry map[objects.EffectType]effectFuncs
	pool     *pool.Pool[*objects.Effect]
}

type effectFuncs struct {
	apply  EffectFunc
	remove EffectFunc
}

// EffectSystemStats reports pool occupancy.
type EffectSystemStats struct {
	PoolSize     int
	FreeListSize int
}

// NewEffectSystem creates an empty effect system over the 2DA cache.
func NewEffectSystem(twodas *TwoDACache) *EffectSystem {
	return &EffectSystem{
		twodas:   twodas,
		registry: make(map[objects.EffectType]effectFuncs),
		pool:     pool.New[*objects.Effect](),
	}
}

// Register installs the apply/remove pair for an effect type. A second
// registration for the same type is refused.
func (s *EffectSystem) Register(t objects.EffectType, apply, remove EffectFunc) bool {
	if _, dup := s.registry[t]; dup {
		tracer().Errorf("effects: type %d already registered", t)
		return false
	}
	s.registry[t] = effectFuncs{apply: apply, remove: remove}
	return true
}

// Create allocates a pooled effect of a type.
func (s *EffectSystem) Create(t objects.EffectType) *objects.Effect {
	h, slot := s.pool.Create()
	e := &objects.Effect{
		ID:   pool.TypedHandle{ID: h.Index, Type: handleTypeEffect, Generation: h.Generation},
		Type: t,
	}
	*slot = e
	return e
}

// Get resolves an effect id back to the pooled effect; nil when stale.
func (s *EffectSystem) Get(id objects.EffectID) *objects.Effect {
	if id.Type != handleTypeEffect {
		return nil
	}
	slot := s.pool.Get(pool.Handle{Index: id.ID, Generation: id.Generation})
	if slot == nil {
		return nil
	}
	return *slot
}

// Destroy returns an effect to the pool's free list.
func (s *EffectSystem) Destroy(e *objects.Effect) {
	if e == nil {
		return
	}
	h := pool.Handle{Index: e.ID.ID, Generation: e.ID.Generation}
	e.Clear()
	s.pool.Destroy(h)
}

// Apply runs the registered apply callback; on acceptance the effect
// enters the object's effect list. A missing type or nil callback returns
// false without mutation.
func (s *EffectSystem) Apply(obj objects.Object, eff *objects.Effect) bool {
	if obj == nil || eff == nil {
		return false
	}
	if obj.Effects().Has(eff) {
		tracer().Errorf("effects: re-apply of effect %d", eff.ID.ToUint64())
		return false
	}
	fns, ok := s.registry[eff.Type]
	if !ok || fns.apply == nil {
		return false
	}
	if !fns.apply(obj, eff) {
		return false
	}
	return obj.Effects().Add(eff)
}

// Remove runs the registered remove callback; on acceptance the effect
// leaves the object's effect list (ownership moves back to the caller,
// usually straight into Destroy).
func (s *EffectSystem) Remove(obj objects.Object, eff *objects.Effect) bool {
	if obj == nil || eff == nil {
		return false
	}
	if !obj.Effects().Has(eff) {
		return false
	}
	fns, ok := s.registry[eff.Type]
	if !ok || fns.remove == nil {
		return false
	}
	if !fns.remove(obj, eff) {
		return false
	}
	return obj.Effects().Remove(eff)
}

// Stats reports pool occupancy.
func (s *EffectSystem) Stats() EffectSystemStats {
	return EffectSystemStats{
		PoolSize:     s.pool.Cap(),
		FreeListSize: s.pool.FreeCount(),
	}
}

// MaxGeneration exposes the pool's generation high-water mark.
func (s *EffectSystem) MaxGeneration() uint32 {
	return s.pool.MaxGeneration()
}

// Clear drops the registry and every pooled effect.
func (s *EffectSystem) Clear() {
	s.registry = make(map[objects.EffectType]effectFuncs)
	s.pool.Clear()
}

// --- Item property tables ---------------------------------------------------

// IPCostTable returns cost table n of iprp_costtable.2da.
func (s *EffectSystem) IPCostTable(n int32) *twoda.TwoDA {
	return s.ipIndirect("iprp_costtable", "Name", n)
}

// IPParamTable returns param table n of iprp_paramtable.2da.
func (s *EffectSystem) IPParamTable(n int32) *twoda.TwoDA {
	return s.ipIndirect("iprp_paramtable", "TableResRef", n)
}

// ipIndirect resolves row n of an index sheet to the sheet it names.
func (s *EffectSystem) ipIndirect(index, column string, n int32) *twoda.TwoDA {
	sheet := s.twodas.Get(index)
	if sheet == nil {
		return nil
	}
	name, ok := sheet.StrByName(int(n), column).Unwrap()
	if !ok {
		return nil
	}
	return s.twodas.Get(name)
}

// IPDefinition is one row of itempropdef.2da.
type IPDefinition struct {
	Name      uint32 // talk-table reference
	SubTypeRef string
	CostTable  int32
}

// IPDef returns item property definition n.
func (s *EffectSystem) IPDef(n int32) *IPDefinition {
	sheet := s.twodas.Get("itempropdef")
	if sheet == nil {
		return nil
	}
	name, ok := sheet.IntByName(int(n), "Name").Unwrap()
	if !ok {
		return nil
	}
	return &IPDefinition{
		Name:       uint32(name),
		SubTypeRef: sheet.StrByName(int(n), "SubTypeResRef").Or(""),
		CostTable:  sheet.IntByName(int(n), "CostTableResRef").Or(0),
	}
}
