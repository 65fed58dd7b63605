package rules

import (
	"sort"
	"strings"

	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/twoda"
)

// TableSource hands out parsed 2DA sheets by name. The kernel's 2DA cache
// implements it; tests inject fixtures.
type TableSource interface {
	Get(name string) *twoda.TwoDA
}

// Rules is the modifier registry plus the lazily parsed rule tables.
type Rules struct {
	tables    TableSource
	modifiers []Modifier

	classes *ClassArray
	feats   *FeatArray
	skills  *SkillArray
}

// NewRules creates a rules engine over a table source.
func NewRules(tables TableSource) *Rules {
	return &Rules{tables: tables}
}

// AddModifier registers a contribution. Registration order does not
// matter; accumulation orders by source priority.
func (r *Rules) AddModifier(m Modifier) {
	if m.Type == ModInvalid || m.Value == nil {
		tracer().Errorf("rules: dropping malformed modifier %q", m.Tag)
		return
	}
	r.modifiers = append(r.modifiers, m)
}

// RemoveModifier drops every modifier carrying a tag; the count removed
// comes back.
func (r *Rules) RemoveModifier(tag string) int {
	kept := r.modifiers[:0]
	removed := 0
	for _, m := range r.modifiers {
		if m.Tag == tag {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.modifiers = kept
	return removed
}

// ModifierCount returns the number of registered modifiers.
func (r *Rules) ModifierCount() int {
	return len(r.modifiers)
}

// CalcModifier accumulates every applicable contribution to (type,
// subtype) for an object: requirement met, versus unrestricted, evaluated
// in source-priority order, stacked, clamped.
func (r *Rules) CalcModifier(obj objects.Object, t ModifierType, subtype int32) int32 {
	var contribs []contribution
	for i := range r.modifiers {
		m := &r.modifiers[i]
		if m.Type != t || m.Subtype != subtype {
			continue
		}
		if ok, _ := MeetsRequirement(m.Requirement, obj); !ok {
			continue
		}
		if cre := objects.AsCreature(obj); cre != nil {
			if !m.Versus.Matches(cre.GoodEvil, int32(cre.Race)) {
				continue
			}
		}
		contribs = append(contribs, contribution{
			source:  m.Source,
			subtype: m.Subtype,
			value:   m.Value.eval(obj),
		})
	}
	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].source < contribs[j].source
	})
	return accumulate(contribs)
}

// AbilityScore computes a derived ability score: base plus modifiers,
// clamped to the legal range.
func (r *Rules) AbilityScore(cre *objects.Creature, id objects.Ability) int32 {
	if cre == nil {
		return 0
	}
	base := cre.Stats.GetAbilityScore(id)
	return clampFor(ModAbility, base+r.CalcModifier(cre, ModAbility, int32(id)))
}

// SkillRank computes a derived skill rank: base ranks plus modifiers.
func (r *Rules) SkillRank(cre *objects.Creature, id objects.Skill) int32 {
	if cre == nil {
		return 0
	}
	return cre.Stats.GetSkillRank(id) + r.CalcModifier(cre, ModSkill, int32(id))
}

// BaseAttackBonus sums the class progression tables over the creature's
// class entries.
func (r *Rules) BaseAttackBonus(cre *objects.Creature) int32 {
	if cre == nil {
		return 0
	}
	classes := r.Classes()
	var total int32
	for _, e := range cre.Levels.Entries {
		total += classes.AttackBonus(e.ID, int32(e.Level))
	}
	return total
}

// AttackBonus computes the full attack bonus: class progression plus
// registered modifiers.
func (r *Rules) AttackBonus(cre *objects.Creature) int32 {
	return r.BaseAttackBonus(cre) + r.CalcModifier(cre, ModAttackBonus, 0)
}

// FeatAvailable checks a feat's 2DA prerequisites against a creature.
func (r *Rules) FeatAvailable(cre *objects.Creature, id objects.Feat) bool {
	if cre == nil {
		return false
	}
	req, known := r.Feats().Requirement(id)
	if !known {
		return false
	}
	ok, _ := MeetsRequirement(req, cre)
	return ok
}

// ClearTables drops the lazily parsed tables without touching registered
// modifiers; module unload runs it so the next query re-reads the 2DAs.
func (r *Rules) ClearTables() {
	r.classes = nil
	r.feats = nil
	r.skills = nil
}

// Clear drops registered modifiers and the lazily parsed tables.
func (r *Rules) Clear() {
	r.modifiers = nil
	r.ClearTables()
}

// --- Class table ------------------------------------------------------------

// ClassEntry2DA is one parsed row of classes.2da.
type ClassEntry2DA struct {
	Label            string
	HitDie           int32
	SkillPointBase   int32
	AttackBonusTable []int32 // indexed by level-1
	SavingThrowTable string
}

// ClassArray is the parsed class rule table.
type ClassArray struct {
	entries []ClassEntry2DA
}

// Classes returns the class table, parsing it on first use.
func (r *Rules) Classes() *ClassArray {
	if r.classes != nil {
		return r.classes
	}
	ca := &ClassArray{}
	sheet := r.tables.Get("classes")
	if sheet == nil {
		tracer().Errorf("rules: classes.2da unavailable")
		r.classes = ca
		return ca
	}
	for row := 0; row < sheet.Rows(); row++ {
		e := ClassEntry2DA{
			Label:            sheet.StrByName(row, "Label").Or(""),
			HitDie:           sheet.IntByName(row, "HitDie").Or(0),
			SkillPointBase:   sheet.IntByName(row, "SkillPointBase").Or(0),
			SavingThrowTable: sheet.StrByName(row, "SavingThrowTable").Or(""),
		}
		if table, ok := sheet.StrByName(row, "AttackBonusTable").Unwrap(); ok {
			e.AttackBonusTable = r.parseAttackTable(table)
		}
		ca.entries = append(ca.entries, e)
	}
	r.classes = ca
	return ca
}

// parseAttackTable reads a cls_atk_* sheet into a per-level progression.
func (r *Rules) parseAttackTable(name string) []int32 {
	sheet := r.tables.Get(strings.ToLower(name))
	if sheet == nil {
		tracer().Errorf("rules: attack table %s unavailable", name)
		return nil
	}
	out := make([]int32, 0, sheet.Rows())
	for row := 0; row < sheet.Rows(); row++ {
		out = append(out, sheet.IntByName(row, "BAB").Or(0))
	}
	return out
}

// Len returns the number of class rows.
func (ca *ClassArray) Len() int {
	return len(ca.entries)
}

// Get returns one class row, nil when out of range.
func (ca *ClassArray) Get(id objects.Class) *ClassEntry2DA {
	if id < 0 || int(id) >= len(ca.entries) {
		return nil
	}
	return &ca.entries[id]
}

// AttackBonus reads the progression table of a class at a level.
func (ca *ClassArray) AttackBonus(id objects.Class, level int32) int32 {
	e := ca.Get(id)
	if e == nil || len(e.AttackBonusTable) == 0 || level <= 0 {
		return 0
	}
	if int(level) > len(e.AttackBonusTable) {
		level = int32(len(e.AttackBonusTable))
	}
	return e.AttackBonusTable[level-1]
}

// --- Feat table -------------------------------------------------------------

// FeatEntry2DA is one parsed row of feat.2da.
type FeatEntry2DA struct {
	Label       string
	NameStrref  uint32
	Requirement Requirement
	valid       bool
}

// FeatArray is the parsed feat rule table.
type FeatArray struct {
	entries []FeatEntry2DA
}

// Feats returns the feat table, parsing it on first use.
func (r *Rules) Feats() *FeatArray {
	if r.feats != nil {
		return r.feats
	}
	fa := &FeatArray{}
	sheet := r.tables.Get("feat")
	if sheet == nil {
		tracer().Errorf("rules: feat.2da unavailable")
		r.feats = fa
		return fa
	}
	abilityMins := []struct {
		col string
		id  objects.Ability
	}{
		{"MINSTR", 0}, {"MINDEX", 1}, {"MINCON", 2},
		{"MININT", 3}, {"MINWIS", 4}, {"MINCHA", 5},
	}
	for row := 0; row < sheet.Rows(); row++ {
		e := FeatEntry2DA{
			Label: sheet.StrByName(row, "Label").Or(""),
		}
		if e.Label == "" && sheet.StrByName(row, "FEAT").IsNone() {
			// Padding row.
			fa.entries = append(fa.entries, e)
			continue
		}
		e.valid = true
		e.NameStrref = uint32(sheet.IntByName(row, "FEAT").Or(0))
		var quals []Qualifier
		for _, am := range abilityMins {
			if v, ok := sheet.IntByName(row, am.col).Unwrap(); ok && v > 0 {
				quals = append(quals, QualAbility(am.id, v, 0))
			}
		}
		for _, col := range []string{"PREREQFEAT1", "PREREQFEAT2"} {
			if v, ok := sheet.IntByName(row, col).Unwrap(); ok && v > 0 {
				quals = append(quals, QualFeat(objects.Feat(v)))
			}
		}
		e.Requirement = MakeRequirement(quals...)
		fa.entries = append(fa.entries, e)
	}
	r.feats = fa
	return fa
}

// Len returns the number of feat rows.
func (fa *FeatArray) Len() int {
	return len(fa.entries)
}

// Requirement returns a feat's prerequisite requirement; known reports
// whether the row exists and is not padding.
func (fa *FeatArray) Requirement(id objects.Feat) (Requirement, bool) {
	if id < 0 || int(id) >= len(fa.entries) || !fa.entries[id].valid {
		return Requirement{}, false
	}
	return fa.entries[id].Requirement, true
}

// NameStrref returns the talk-table reference of a feat's name.
func (fa *FeatArray) NameStrref(id objects.Feat) uint32 {
	if id < 0 || int(id) >= len(fa.entries) {
		return 0
	}
	return fa.entries[id].NameStrref
}

// --- Skill table ------------------------------------------------------------

// SkillEntry2DA is one parsed row of skills.2da.
type SkillEntry2DA struct {
	Label      string
	KeyAbility objects.Ability
	Untrained  bool
	AllCanUse  bool
}

// SkillArray is the parsed skill rule table.
type SkillArray struct {
	entries []SkillEntry2DA
}

// Skills returns the skill table, parsing it on first use.
func (r *Rules) Skills() *SkillArray {
	if r.skills != nil {
		return r.skills
	}
	sa := &SkillArray{}
	sheet := r.tables.Get("skills")
	if sheet == nil {
		tracer().Errorf("rules: skills.2da unavailable")
		r.skills = sa
		return sa
	}
	keyAbility := map[string]objects.Ability{
		"STR": 0, "DEX": 1, "CON": 2, "INT": 3, "WIS": 4, "CHA": 5,
	}
	for row := 0; row < sheet.Rows(); row++ {
		e := SkillEntry2DA{
			Label:      sheet.StrByName(row, "Label").Or(""),
			KeyAbility: objects.AbilityInvalid,
			Untrained:  sheet.IntByName(row, "Untrained").Or(0) != 0,
			AllCanUse:  sheet.IntByName(row, "AllClassesCanUse").Or(0) != 0,
		}
		if key, ok := sheet.StrByName(row, "KeyAbility").Unwrap(); ok {
			if id, known := keyAbility[strings.ToUpper(key)]; known {
				e.KeyAbility = id
			}
		}
		sa.entries = append(sa.entries, e)
	}
	r.skills = sa
	return sa
}

// Len returns the number of skill rows.
func (sa *SkillArray) Len() int {
	return len(sa.entries)
}

// Get returns one skill row, nil when out of range.
func (sa *SkillArray) Get(id objects.Skill) *SkillEntry2DA {
	if id < 0 || int(id) >= len(sa.entries) {
		return nil
	}
	return &sa.entries[id]
}
