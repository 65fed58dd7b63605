package objects

import (
	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/pool"
	"github.com/okarren/aurora/res"
)

// Area is one map of a module. Child objects are referenced by handle, not
// by pointer; the object system destroys children when the area goes away.
type Area struct {
	Common
	ScriptRefs ScriptRefs

	Tileset res.Resref
	Height  int32
	Width   int32
	Flags   uint32

	Creatures  []pool.Handle
	Doors      []pool.Handle
	Encounters []pool.Handle
	Placeables []pool.Handle
	Sounds     []pool.Handle
	Stores     []pool.Handle
	Triggers   []pool.Handle
	Waypoints  []pool.Handle

	effects EffectList
}

// Kind returns KindArea.
func (a *Area) Kind() Kind { return KindArea }

// CommonData returns the shared field record.
func (a *Area) CommonData() *Common { return &a.Common }

// Scripts returns the event handler record.
func (a *Area) Scripts() *ScriptRefs { return &a.ScriptRefs }

// Effects returns the applied-effect list.
func (a *Area) Effects() *EffectList { return &a.effects }

// FromGff reads the static half of an area (the ARE document). Instances
// live in the companion GIT document and are attached by the loader.
func (a *Area) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	s.Field("ResRef").GetTo(&a.Resref)
	s.Field("Tag").GetTo(&a.Tag)
	s.Field("Name").GetTo(&a.Name)
	s.Field("Tileset").GetTo(&a.Tileset)
	s.Field("Height").GetTo(&a.Height)
	s.Field("Width").GetTo(&a.Width)
	s.Field("Flags").GetTo(&a.Flags)
	a.ScriptRefs.OnEnter = resrefField(s, "OnEnter")
	a.ScriptRefs.OnExit = resrefField(s, "OnExit")
	a.ScriptRefs.OnHeartbeat = resrefField(s, "OnHeartbeat")
	a.ScriptRefs.OnUserDefined = resrefField(s, "OnUserDefined")
	return true
}

// InstanceRefs lists the blueprint resrefs of one GIT instance category.
type InstanceRefs struct {
	Creatures  []res.Resref
	Doors      []res.Resref
	Encounters []res.Resref
	Placeables []res.Resref
	Sounds     []res.Resref
	Stores     []res.Resref
	Triggers   []res.Resref
	Waypoints  []res.Resref
}

// InstancesFromGff reads the instance lists of a GIT document. Fully
// embedded instances carry their blueprint under TemplateResRef; the
// loader re-reads the embedded struct for instance-profile fields.
func InstancesFromGff(s gff.Struct) InstanceRefs {
	var out InstanceRefs
	collect := func(listLabel string) []res.Resref {
		var refs []res.Resref
		list := s.Field(listLabel)
		for i := 0; i < list.Size(); i++ {
			refs = append(refs, resrefField(list.Index(i), "TemplateResRef"))
		}
		return refs
	}
	out.Creatures = collect("Creature List")
	out.Doors = collect("Door List")
	out.Encounters = collect("Encounter List")
	out.Placeables = collect("Placeable List")
	out.Sounds = collect("SoundList")
	out.Stores = collect("StoreList")
	out.Triggers = collect("TriggerList")
	out.Waypoints = collect("WaypointList")
	return out
}
