package nwn1

import (
	"github.com/okarren/aurora/objects"
)

// Ability indices, matching the column order of the creature blueprint.
const (
	AbilityStrength     objects.Ability = 0
	AbilityDexterity    objects.Ability = 1
	AbilityConstitution objects.Ability = 2
	AbilityIntelligence objects.Ability = 3
	AbilityWisdom       objects.Ability = 4
	AbilityCharisma     objects.Ability = 5
)

// Skill indices into skills.2da.
const (
	SkillAnimalEmpathy  objects.Skill = 0
	SkillConcentration  objects.Skill = 1
	SkillDisableTrap    objects.Skill = 2
	SkillDiscipline     objects.Skill = 3
	SkillHeal           objects.Skill = 4
	SkillHide           objects.Skill = 5
	SkillListen         objects.Skill = 6
	SkillLore           objects.Skill = 7
	SkillMoveSilently   objects.Skill = 8
	SkillOpenLock       objects.Skill = 9
	SkillParry          objects.Skill = 10
	SkillPerform        objects.Skill = 11
	SkillPersuade       objects.Skill = 12
	SkillPickPocket     objects.Skill = 13
	SkillSearch         objects.Skill = 14
	SkillSetTrap        objects.Skill = 15
	SkillSpellcraft     objects.Skill = 16
	SkillSpot           objects.Skill = 17
	SkillTaunt          objects.Skill = 18
	SkillUseMagicDevice objects.Skill = 19
)

// Class indices into classes.2da.
const (
	ClassBarbarian objects.Class = 0
	ClassBard      objects.Class = 1
	ClassCleric    objects.Class = 2
	ClassDruid     objects.Class = 3
	ClassFighter   objects.Class = 4
	ClassMonk      objects.Class = 5
	ClassPaladin   objects.Class = 6
	ClassRanger    objects.Class = 7
	ClassRogue     objects.Class = 8
	ClassSorcerer  objects.Class = 9
	ClassWizard    objects.Class = 10
)

// Feat indices into feat.2da.
const (
	FeatAlertness     objects.Feat = 0
	FeatToughness     objects.Feat = 40
	FeatWeaponFinesse objects.Feat = 42
)

// Effect types the profile registers.
const (
	EffectHaste objects.EffectType = 35
	EffectSlow  objects.EffectType = 36
)

// Item property ids referenced by the effect system's tables.
const (
	IPAbilityBonus int32 = 0
)
