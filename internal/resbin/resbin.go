// Package resbin synthesizes miniature game assets in memory for parser
// and kernel tests: a small module archive, creature blueprints, talk
// tables, rule sheets, KEY/BIF pairs and NWSync shards. Tests build their
// corpus instead of committing binary blobs.
package resbin

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/res"
)

// ChickenUTC builds the nw_chicken creature blueprint: the corpus's
// canonical test creature.
func ChickenUTC() []byte {
	b := gff.NewBuilder("UTC ")
	root := b.Root()
	root.SetResref("TemplateResRef", res.MakeResref("nw_chicken"))
	root.SetString("Tag", "NW_CHICKEN")
	name := i18n.NewLocString(i18n.StrrefNone)
	name.Add(i18n.LangEnglish, "Chicken", false)
	root.SetLocString("FirstName", name)
	root.SetByte("Gender", 1)
	root.SetByte("Race", 20)
	root.SetWord("Appearance_Type", 31)
	root.SetByte("Str", 3)
	root.SetByte("Dex", 7)
	root.SetByte("Con", 8)
	root.SetByte("Int", 1)
	root.SetByte("Wis", 10)
	root.SetByte("Cha", 3)
	root.SetShort("MaxHitPoints", 3)
	root.SetShort("CurrentHitPoints", 3)
	root.SetResref("ScriptAttacked", res.MakeResref("nw_c2_default5"))
	root.SetResref("ScriptHeartbeat", res.MakeResref("nw_c2_default1"))
	skills := root.AddList("SkillList")
	for i := 0; i < 4; i++ {
		skills.Add(0).SetByte("Rank", 0)
	}
	classes := root.AddList("ClassList")
	cl := classes.Add(2)
	cl.SetInt("Class", 12)
	cl.SetShort("ClassLevel", 1)
	return b.Bytes()
}

// AgentUTC builds pl_agent_001, the requirement-evaluation target: solid
// constitution and discipline, overbearing strength.
func AgentUTC() []byte {
	b := gff.NewBuilder("UTC ")
	root := b.Root()
	root.SetResref("TemplateResRef", res.MakeResref("pl_agent_001"))
	root.SetString("Tag", "PL_AGENT_001")
	name := i18n.NewLocString(i18n.StrrefNone)
	name.Add(i18n.LangEnglish, "Agent", false)
	root.SetLocString("FirstName", name)
	root.SetByte("Gender", 0)
	root.SetByte("Race", 6)
	root.SetWord("Appearance_Type", 6)
	root.SetByte("Str", 22)
	root.SetByte("Dex", 13)
	root.SetByte("Con", 16)
	root.SetByte("Int", 10)
	root.SetByte("Wis", 12)
	root.SetByte("Cha", 8)
	root.SetShort("MaxHitPoints", 110)
	root.SetShort("CurrentHitPoints", 110)
	root.SetResref("ScriptAttacked", res.MakeResref("mon_ai_5attacked"))
	skills := root.AddList("SkillList")
	// Skill ranks by index; discipline sits at index 3.
	for _, rank := range []uint8{0, 4, 0, 40, 0, 2} {
		skills.Add(0).SetByte("Rank", rank)
	}
	classes := root.AddList("ClassList")
	cl := classes.Add(2)
	cl.SetInt("Class", 4)
	cl.SetShort("ClassLevel", 10)
	return b.Bytes()
}

// ModuleIFO builds a module.ifo naming the given areas.
func ModuleIFO(tag string, areas ...string) []byte {
	b := gff.NewBuilder("IFO ")
	root := b.Root()
	name := i18n.NewLocString(i18n.StrrefNone)
	name.Add(i18n.LangEnglish, "Demo Module", false)
	root.SetLocString("Mod_Name", name)
	root.SetString("Mod_Tag", tag)
	root.SetString("Mod_MinGameVer", "1.69")
	if len(areas) > 0 {
		root.SetResref("Mod_Entry_Area", res.MakeResref(areas[0]))
	}
	list := root.AddList("Mod_Area_list")
	for _, a := range areas {
		list.Add(6).SetResref("Area_Name", res.MakeResref(a))
	}
	return b.Bytes()
}

// AreaARE builds the static half of an area.
func AreaARE(resref, tag string) []byte {
	b := gff.NewBuilder("ARE ")
	root := b.Root()
	root.SetResref("ResRef", res.MakeResref(resref))
	root.SetString("Tag", tag)
	name := i18n.NewLocString(i18n.StrrefNone)
	name.Add(i18n.LangEnglish, tag, false)
	root.SetLocString("Name", name)
	root.SetResref("Tileset", res.MakeResref("ttr01"))
	root.SetInt("Height", 8)
	root.SetInt("Width", 8)
	return b.Bytes()
}

// AreaGIT builds the instance half of an area, spawning the named
// creature blueprints.
func AreaGIT(creatures ...string) []byte {
	b := gff.NewBuilder("GIT ")
	root := b.Root()
	list := root.AddList("Creature List")
	for _, c := range creatures {
		list.Add(4).SetResref("TemplateResRef", res.MakeResref(c))
	}
	return b.Bytes()
}

// DialogTlk builds an english talk table with "Silence" at strref 1000.
func DialogTlk() *i18n.Tlk {
	t := i18n.NewTlk(i18n.LangEnglish)
	t.Set(1, "Hello")
	t.Set(10, "Monk")
	t.Set(1000, "Silence")
	t.Set(4096, "Stay here and don't move until I return.")
	return t
}

// FeatTwoDA is a miniature feat.2da: enough rows for prerequisite tests.
const FeatTwoDA = `2DA V2.0

   Label          FEAT  MINSTR  MINDEX  PREREQFEAT1  PREREQFEAT2
0  Alertness      289   ****    ****    ****         ****
1  Ambidexterity  290   ****    15      ****         ****
2  ArmProfHeavy   291   ****    ****    ****         ****
3  ArmProfLight   292   ****    ****    ****         ****
4  ArmProfMed     293   ****    ****    ****         ****
5  TwoWeapon      294   ****    15      1            ****
`

// ClassesTwoDA is a miniature classes.2da naming two attack tables
// (cls_atk_1 and cls_atk_2).
const ClassesTwoDA = `2DA V2.0

   Label     HitDie  SkillPointBase  AttackBonusTable  SavingThrowTable
0  Barbar    12      4               CLS_ATK_1         CLS_SAVTHR_BARB
1  Bard      6       4               CLS_ATK_2         CLS_SAVTHR_BARD
2  Cleric    8       2               CLS_ATK_2         CLS_SAVTHR_CLER
3  Druid     8       4               CLS_ATK_2         CLS_SAVTHR_DRU
4  Fighter   10      2               CLS_ATK_1         CLS_SAVTHR_FIGHT
`

// AttackTwoDA is cls_atk_1: full base attack progression.
const AttackTwoDA = `2DA V2.0

   BAB
0  1
1  2
2  3
3  4
4  5
5  6
6  7
7  8
8  9
9  10
`

// AttackTwoDA2 is cls_atk_2: three-quarter progression.
const AttackTwoDA2 = `2DA V2.0

   BAB
0  0
1  1
2  2
3  3
4  3
5  4
6  5
7  6
8  6
9  7
`

// SkillsTwoDA is a miniature skills.2da.
const SkillsTwoDA = `2DA V2.0

   Label          KeyAbility  Untrained  AllClassesCanUse
0  AnimalEmpathy  CHA         0          0
1  Concentration  CON         1          1
2  DisableTrap    INT         0          0
3  Discipline     STR         1          1
`

// Plt builds a layered palette texture with each pixel on the given
// layer.
func Plt(w, h int, layer uint8) []byte {
	out := []byte("PLT V1  ")
	out = append(out, 0, 0, 0, 0, 0, 0, 0, 0)
	out = append(out, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	out = append(out, byte(h), byte(h>>8), byte(h>>16), byte(h>>24))
	for i := 0; i < w*h; i++ {
		out = append(out, byte(i*7), layer)
	}
	return out
}

// WriteModule assembles a module archive holding the standard fixture
// corpus and writes it to path.
func WriteModule(path string) error {
	e := res.NewEmptyErf("MOD ")
	e.Add(res.MakeResource("module", res.IFO), ModuleIFO("DEMO", "start"))
	e.Add(res.MakeResource("start", res.ARE), AreaARE("start", "START"))
	e.Add(res.MakeResource("start", res.GIT), AreaGIT("nw_chicken"))
	e.Add(res.MakeResource("nw_chicken", res.UTC), ChickenUTC())
	e.Add(res.MakeResource("pl_agent_001", res.UTC), AgentUTC())
	e.Add(res.MakeResource("feat", res.TwoDA), []byte(FeatTwoDA))
	e.Add(res.MakeResource("classes", res.TwoDA), []byte(ClassesTwoDA))
	e.Add(res.MakeResource("cls_atk_1", res.TwoDA), []byte(AttackTwoDA))
	e.Add(res.MakeResource("cls_atk_2", res.TwoDA), []byte(AttackTwoDA2))
	e.Add(res.MakeResource("skills", res.TwoDA), []byte(SkillsTwoDA))
	return e.Save(path)
}

// WriteNWSync lays a content-addressed store out under root: one manifest
// listing the given resources, payloads sharded by hash.
func WriteNWSync(root, manifestName string, mtime int64, resources map[string][]byte) error {
	if err := os.MkdirAll(filepath.Join(root, "manifests"), 0o755); err != nil {
		return err
	}
	type entry struct {
		Name string `json:"name"`
		Sha1 string `json:"sha1"`
	}
	doc := struct {
		Mtime     int64   `json:"mtime"`
		Resources []entry `json:"resources"`
	}{Mtime: mtime}
	for name, payload := range resources {
		sum := sha1.Sum(payload)
		hash := hex.EncodeToString(sum[:])
		shard := filepath.Join(root, "data", hash[:2])
		if err := os.MkdirAll(shard, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(shard, hash), payload, 0o644); err != nil {
			return err
		}
		doc.Resources = append(doc.Resources, entry{Name: name, Sha1: hash})
	}
	blob, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, "manifests", manifestName+".json"), blob, 0o644)
}

// WriteKeyBif writes a key/bif pair under dir: data/<stem>.bif indexed by
// <stem>.key.
func WriteKeyBif(dir, stem string, entries map[string][]byte) (string, error) {
	type keyed struct {
		r       res.Resource
		payload []byte
	}
	var items []keyed
	for name, payload := range entries {
		r, err := res.ResourceFromPath(name)
		if err != nil {
			return "", fmt.Errorf("resbin: %w", err)
		}
		items = append(items, keyed{r: r, payload: payload})
	}

	// BIF: header, variable table, payloads.
	bifBody := []byte("BIFFV1  ")
	bifBody = putU32(bifBody, uint32(len(items)))
	bifBody = putU32(bifBody, 0)
	bifBody = putU32(bifBody, 20)
	offset := uint32(20 + 16*len(items))
	for i, it := range items {
		bifBody = putU32(bifBody, uint32(i))
		bifBody = putU32(bifBody, offset)
		bifBody = putU32(bifBody, uint32(len(it.payload)))
		bifBody = putU32(bifBody, uint32(it.r.Type))
		offset += uint32(len(it.payload))
	}
	for _, it := range items {
		bifBody = append(bifBody, it.payload...)
	}
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		return "", err
	}
	bifName := "data\\" + stem + ".bif"
	if err := os.WriteFile(filepath.Join(dir, "data", stem+".bif"), bifBody, 0o644); err != nil {
		return "", err
	}

	// KEY: header, file table, filename blob, key table.
	fileTableOff := uint32(64)
	nameOff := fileTableOff + 12
	keyTableOff := nameOff + uint32(len(bifName))
	key := []byte("KEY V1  ")
	key = putU32(key, 1)
	key = putU32(key, uint32(len(items)))
	key = putU32(key, fileTableOff)
	key = putU32(key, keyTableOff)
	key = putU32(key, 0)
	key = putU32(key, 0)
	key = append(key, make([]byte, 32)...)
	key = putU32(key, uint32(len(bifBody)))
	key = putU32(key, nameOff)
	key = append(key, byte(len(bifName)), byte(len(bifName)>>8))
	key = append(key, 0, 0)
	key = append(key, bifName...)
	for i, it := range items {
		var name [16]byte
		copy(name[:], it.r.Resref.String())
		key = append(key, name[:]...)
		key = append(key, byte(it.r.Type), byte(it.r.Type>>8))
		key = putU32(key, uint32(i)) // bif 0, variable index i
	}
	keyPath := filepath.Join(dir, stem+".key")
	return keyPath, os.WriteFile(keyPath, key, 0o644)
}

func putU32(dst []byte, n uint32) []byte {
	return append(dst, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
}
