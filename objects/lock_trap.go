package objects

import (
	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/res"
)

// Lock is the lock component shared by doors and placeables.
type Lock struct {
	Locked      bool
	Lockable    bool
	KeyRequired bool
	KeyName     string
	LockDC      uint8
	UnlockDC    uint8
}

// FromGff reads the lock fields present in the struct; absent fields keep
// their current value.
func (l *Lock) FromGff(s gff.Struct) {
	l.Locked = gff.GetOr[uint8](s.Field("Locked"), b2u(l.Locked)) != 0
	l.Lockable = gff.GetOr[uint8](s.Field("Lockable"), b2u(l.Lockable)) != 0
	l.KeyRequired = gff.GetOr[uint8](s.Field("KeyRequired"), b2u(l.KeyRequired)) != 0
	s.Field("KeyName").GetTo(&l.KeyName)
	s.Field("CloseLockDC").GetTo(&l.LockDC)
	s.Field("OpenLockDC").GetTo(&l.UnlockDC)
}

// ToGff writes the lock fields.
func (l *Lock) ToGff(s *gff.BuildStruct) {
	s.SetByte("Locked", b2u(l.Locked))
	s.SetByte("Lockable", b2u(l.Lockable))
	s.SetByte("KeyRequired", b2u(l.KeyRequired))
	s.SetString("KeyName", l.KeyName)
	s.SetByte("CloseLockDC", l.LockDC)
	s.SetByte("OpenLockDC", l.UnlockDC)
}

// Trap is the trap component shared by doors, placeables and triggers.
type Trap struct {
	IsTrapped  bool
	Type       uint8
	Detectable bool
	DetectDC   uint8
	Disarmable bool
	DisarmDC   uint8
	OneShot    bool
}

// FromGff reads the trap fields present in the struct.
func (t *Trap) FromGff(s gff.Struct) {
	t.IsTrapped = gff.GetOr[uint8](s.Field("TrapFlag"), b2u(t.IsTrapped)) != 0
	s.Field("TrapType").GetTo(&t.Type)
	t.Detectable = gff.GetOr[uint8](s.Field("TrapDetectable"), b2u(t.Detectable)) != 0
	s.Field("TrapDetectDC").GetTo(&t.DetectDC)
	t.Disarmable = gff.GetOr[uint8](s.Field("TrapDisarmable"), b2u(t.Disarmable)) != 0
	s.Field("DisarmDC").GetTo(&t.DisarmDC)
	t.OneShot = gff.GetOr[uint8](s.Field("TrapOneShot"), b2u(t.OneShot)) != 0
}

// ToGff writes the trap fields.
func (t *Trap) ToGff(s *gff.BuildStruct) {
	s.SetByte("TrapFlag", b2u(t.IsTrapped))
	s.SetByte("TrapType", t.Type)
	s.SetByte("TrapDetectable", b2u(t.Detectable))
	s.SetByte("TrapDetectDC", t.DetectDC)
	s.SetByte("TrapDisarmable", b2u(t.Disarmable))
	s.SetByte("DisarmDC", t.DisarmDC)
	s.SetByte("TrapOneShot", b2u(t.OneShot))
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// readCommon pulls the shared identity fields out of a blueprint struct.
func readCommon(c *Common, s gff.Struct) {
	s.Field("TemplateResRef").GetTo(&c.Resref)
	s.Field("Tag").GetTo(&c.Tag)
	if f := s.Field("LocName"); f.Valid() {
		f.GetTo(&c.Name)
	} else {
		s.Field("LocalizedName").GetTo(&c.Name)
	}
}

// resrefField is a shorthand for optional resref fields.
func resrefField(s gff.Struct, label string) res.Resref {
	return gff.GetOr[res.Resref](s.Field(label), res.Resref{})
}
