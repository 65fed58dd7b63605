package objects_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/res"
)

func doorUTD() []byte {
	b := gff.NewBuilder("UTD ")
	root := b.Root()
	root.SetResref("TemplateResRef", res.MakeResref("door_ttr_002"))
	root.SetString("Tag", "DOOR_TTR_002")
	root.SetDword("Appearance", 0)
	root.SetByte("Plot", 0)
	root.SetByte("Hardness", 5)
	root.SetShort("HP", 15)
	root.SetShort("CurrentHP", 15)
	root.SetByte("Locked", 0)
	root.SetByte("Lockable", 1)
	root.SetByte("OpenLockDC", 18)
	root.SetByte("TrapFlag", 1)
	root.SetByte("TrapDetectable", 1)
	root.SetByte("TrapDetectDC", 20)
	root.SetByte("DisarmDC", 25)
	root.SetResref("OnOpen", res.MakeResref("door_open"))
	return b.Bytes()
}

func TestDoorFromGff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	doc := gff.FromBytes(doorUTD())
	require.True(t, doc.Valid())
	d := &objects.Door{}
	require.True(t, d.FromGff(doc.Toplevel()))

	require.Equal(t, "door_ttr_002", d.Resref.String())
	require.Equal(t, uint32(0), d.Appearance)
	require.False(t, d.Plot)
	require.False(t, d.Lock.Locked)
	require.True(t, d.Lock.Lockable)
	require.Equal(t, uint8(18), d.Lock.UnlockDC)
	require.True(t, d.Trap.IsTrapped)
	require.Equal(t, uint8(25), d.Trap.DisarmDC)
	require.Equal(t, "door_open", d.ScriptRefs.OnOpen.String())
	require.Equal(t, objects.KindDoor, d.Kind())
}

func TestLockTrapGffRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	lock := objects.Lock{Locked: true, KeyRequired: true, KeyName: "silver_key", UnlockDC: 30}
	trap := objects.Trap{IsTrapped: true, Type: 4, Detectable: true, DetectDC: 22, DisarmDC: 28}

	b := gff.NewBuilder("UTP ")
	lock.ToGff(b.Root())
	trap.ToGff(b.Root())
	doc := gff.FromBytes(b.Bytes())
	require.True(t, doc.Valid())

	var lock2 objects.Lock
	var trap2 objects.Trap
	lock2.FromGff(doc.Toplevel())
	trap2.FromGff(doc.Toplevel())
	require.Equal(t, lock, lock2)
	require.Equal(t, trap, trap2)
}

func TestSoundFromGff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	b := gff.NewBuilder("UTS ")
	root := b.Root()
	root.SetResref("TemplateResRef", res.MakeResref("blue_bell"))
	root.SetString("Tag", "BLUE_BELL")
	root.SetByte("Active", 1)
	root.SetByte("Looping", 1)
	root.SetByte("Volume", 90)
	list := root.AddList("Sounds")
	list.Add(0).SetResref("Sound", res.MakeResref("al_cv_bell1"))
	list.Add(0).SetResref("Sound", res.MakeResref("al_cv_bell2"))

	doc := gff.FromBytes(b.Bytes())
	s := &objects.Sound{}
	require.True(t, s.FromGff(doc.Toplevel()))
	require.True(t, s.Active)
	require.True(t, s.Looping)
	require.Equal(t, uint8(90), s.Volume)
	require.Len(t, s.Sounds, 2)
	require.Equal(t, "al_cv_bell1", s.Sounds[0].String())
}

func TestKindTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	var objs = []objects.Object{
		&objects.Creature{}, &objects.Item{}, &objects.Door{},
		&objects.Placeable{}, &objects.Trigger{}, &objects.Sound{},
		&objects.Store{}, &objects.Encounter{}, &objects.Waypoint{},
		&objects.Area{}, &objects.Module{}, &objects.Player{},
	}
	seen := make(map[objects.Kind]bool)
	for _, o := range objs {
		require.NotEqual(t, objects.KindInvalid, o.Kind())
		require.False(t, seen[o.Kind()], "kind %s duplicated", o.Kind())
		seen[o.Kind()] = true
		require.NotNil(t, o.CommonData())
		require.NotNil(t, o.Effects())
		require.NotNil(t, o.Scripts())
	}
	require.NotNil(t, objects.AsCreature(&objects.Player{}),
		"a player resolves as a creature")
	require.Nil(t, objects.AsCreature(&objects.Door{}))
}
