package objects

import (
	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/pool"
	"github.com/okarren/aurora/res"
)

// Kind discriminates object variants.
type Kind uint8

// Object kinds.
const (
	KindInvalid Kind = iota
	KindCreature
	KindItem
	KindDoor
	KindPlaceable
	KindTrigger
	KindSound
	KindStore
	KindEncounter
	KindWaypoint
	KindArea
	KindModule
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindCreature:
		return "creature"
	case KindItem:
		return "item"
	case KindDoor:
		return "door"
	case KindPlaceable:
		return "placeable"
	case KindTrigger:
		return "trigger"
	case KindSound:
		return "sound"
	case KindStore:
		return "store"
	case KindEncounter:
		return "encounter"
	case KindWaypoint:
		return "waypoint"
	case KindArea:
		return "area"
	case KindModule:
		return "module"
	case KindPlayer:
		return "player"
	}
	return "invalid"
}

// Common carries the fields every object shares.
type Common struct {
	Resref res.Resref
	Tag    string
	Name   i18n.LocString

	// Locals are script-visible variables on the object.
	Locals Locals

	handle pool.Handle
}

// Handle returns the object's pool handle; the zero handle before the
// object enters a pool.
func (c *Common) Handle() pool.Handle {
	return c.handle
}

// SetHandle records the pool handle. The object system calls this once at
// creation; nothing else should.
func (c *Common) SetHandle(h pool.Handle) {
	c.handle = h
}

// Locals is the object-local variable table.
type Locals struct {
	ints    map[string]int32
	strings map[string]string
}

// GetInt reads a local integer variable; absent variables read 0.
func (l *Locals) GetInt(name string) int32 {
	return l.ints[name]
}

// SetInt writes a local integer variable.
func (l *Locals) SetInt(name string, v int32) {
	if l.ints == nil {
		l.ints = make(map[string]int32)
	}
	l.ints[name] = v
}

// GetString reads a local string variable; absent variables read "".
func (l *Locals) GetString(name string) string {
	return l.strings[name]
}

// SetString writes a local string variable.
func (l *Locals) SetString(name string, v string) {
	if l.strings == nil {
		l.strings = make(map[string]string)
	}
	l.strings[name] = v
}

// ScriptRefs names the event handler scripts of an object. Not every kind
// uses every slot; the GFF serializers read and write the slots their kind
// declares.
type ScriptRefs struct {
	OnAttacked     res.Resref
	OnBlocked      res.Resref
	OnClick        res.Resref
	OnClosed       res.Resref
	OnDamaged      res.Resref
	OnDeath        res.Resref
	OnDialogue     res.Resref
	OnDisturbed    res.Resref
	OnEndRound     res.Resref
	OnEnter        res.Resref
	OnExit         res.Resref
	OnHeartbeat    res.Resref
	OnNotice       res.Resref
	OnOpen         res.Resref
	OnRested       res.Resref
	OnSpawn        res.Resref
	OnSpellCastAt  res.Resref
	OnUsed         res.Resref
	OnUserDefined  res.Resref
}

// Object is the variant interface. Concrete types embed Common and expose
// their effect list through Effects.
type Object interface {
	Kind() Kind
	CommonData() *Common
	Scripts() *ScriptRefs
	Effects() *EffectList
}

// AsCreature returns the object as a creature, or nil. Players count:
// a player is a creature with an owner.
func AsCreature(o Object) *Creature {
	switch v := o.(type) {
	case *Creature:
		return v
	case *Player:
		return &v.Creature
	}
	return nil
}

// AsArea returns the object as an area, or nil.
func AsArea(o Object) *Area {
	a, _ := o.(*Area)
	return a
}

// AsModule returns the object as a module, or nil.
func AsModule(o Object) *Module {
	m, _ := o.(*Module)
	return m
}

// AsItem returns the object as an item, or nil.
func AsItem(o Object) *Item {
	i, _ := o.(*Item)
	return i
}

// AsDoor returns the object as a door, or nil.
func AsDoor(o Object) *Door {
	d, _ := o.(*Door)
	return d
}
