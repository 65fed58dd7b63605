package nwn1

import (
	"github.com/okarren/aurora/objects"
)

// effectHasteApply speeds a creature up; the counter tolerates stacking.
func effectHasteApply(obj objects.Object, _ *objects.Effect) bool {
	if cre := objects.AsCreature(obj); cre != nil {
		cre.Hasted++
		return true
	}
	return false
}

// effectHasteRemove undoes one application of haste.
func effectHasteRemove(obj objects.Object, _ *objects.Effect) bool {
	if cre := objects.AsCreature(obj); cre != nil {
		if cre.Hasted > 0 {
			cre.Hasted--
		}
		return true
	}
	return false
}

// effectSlowApply marks a creature slowed via its local variable table;
// slow has no dedicated counter on the creature record.
func effectSlowApply(obj objects.Object, _ *objects.Effect) bool {
	if cre := objects.AsCreature(obj); cre != nil {
		cre.Locals.SetInt("SLOWED", cre.Locals.GetInt("SLOWED")+1)
		return true
	}
	return false
}

func effectSlowRemove(obj objects.Object, _ *objects.Effect) bool {
	if cre := objects.AsCreature(obj); cre != nil {
		if n := cre.Locals.GetInt("SLOWED"); n > 0 {
			cre.Locals.SetInt("SLOWED", n-1)
		}
		return true
	}
	return false
}
