package objects

import (
	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/pool"
	"github.com/okarren/aurora/res"
)

// Module is the top of the object graph: module-wide properties from the
// IFO document plus the loaded areas.
type Module struct {
	Common
	ScriptRefs ScriptRefs

	EntryArea  res.Resref
	AreaNames  []res.Resref
	Haks       []string
	CustomTlk  string
	MinGameVer string
	Areas      []pool.Handle

	effects EffectList
}

// Kind returns KindModule.
func (m *Module) Kind() Kind { return KindModule }

// CommonData returns the shared field record.
func (m *Module) CommonData() *Common { return &m.Common }

// Scripts returns the event handler record.
func (m *Module) Scripts() *ScriptRefs { return &m.ScriptRefs }

// Effects returns the applied-effect list.
func (m *Module) Effects() *EffectList { return &m.effects }

// AreaCount returns the number of loaded areas.
func (m *Module) AreaCount() int {
	return len(m.Areas)
}

// GetArea returns the nth area handle; the zero handle when out of range.
func (m *Module) GetArea(i int) pool.Handle {
	if i < 0 || i >= len(m.Areas) {
		return pool.Handle{}
	}
	return m.Areas[i]
}

// FromGff reads the IFO document. Area objects are loaded afterwards by
// the object system from AreaNames.
func (m *Module) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	s.Field("Mod_Name").GetTo(&m.Name)
	s.Field("Mod_Tag").GetTo(&m.Tag)
	s.Field("Mod_Entry_Area").GetTo(&m.EntryArea)
	s.Field("Mod_CustomTlk").GetTo(&m.CustomTlk)
	s.Field("Mod_MinGameVer").GetTo(&m.MinGameVer)
	areas := s.Field("Mod_Area_list")
	for i := 0; i < areas.Size(); i++ {
		m.AreaNames = append(m.AreaNames, resrefField(areas.Index(i), "Area_Name"))
	}
	haks := s.Field("Mod_HakList")
	for i := 0; i < haks.Size(); i++ {
		if hak, ok := gff.Get[string](haks.Index(i).Field("Mod_Hak")); ok {
			m.Haks = append(m.Haks, hak)
		}
	}
	if hak, ok := gff.Get[string](s.Field("Mod_Hak")); ok && hak != "" {
		// Pre-HakList modules carry a single hak in Mod_Hak.
		m.Haks = append(m.Haks, hak)
	}
	m.ScriptRefs.OnHeartbeat = resrefField(s, "Mod_OnHeartbeat")
	m.ScriptRefs.OnUserDefined = resrefField(s, "Mod_OnUsrDefined")
	return true
}
