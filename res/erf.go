package res

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/internal/bin"
)

// ERF container binary layout, version V1.0. MOD, HAK and SAV files share
// it; only the magic differs.
//
//	Header (160 B): magic[4], version[4], localized string count,
//	                localized string size, entry count, offset to localized
//	                strings, offset to key list, offset to resource list,
//	                build year (since 1900), build day, description strref,
//	                116 reserved bytes.
//	Key entry (24 B): resref[16], id u32, type u16, unused u16.
//	Resource entry (8 B): offset u32, size u32.
const (
	erfHeaderSize   = 160
	erfKeySize      = 24
	erfResourceSize = 8
	erfVersion      = "V1.0"
)

type erfEntry struct {
	offset uint32
	size   uint32
}

// Erf is an archive container: a single file holding many resources.
type Erf struct {
	path  string
	name  string
	magic string
	mtime time.Time

	description i18n.LocString
	buildYear   uint32
	buildDay    uint32

	entries map[Resource]erfEntry
	order   []Resource
	payload map[Resource][]byte // staged writes, nil until modified
	data    bin.Segm
	valid   bool
}

// NewErf opens an archive file.
func NewErf(path string) *Erf {
	e := &Erf{
		path: filepath.Clean(path),
		name: filepath.Base(path),
	}
	b, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("erf: cannot read %s: %v", path, err)
		return e
	}
	if fi, err := os.Stat(path); err == nil {
		e.mtime = fi.ModTime()
	}
	e.parse(b)
	return e
}

// ErfFromBytes opens an archive held in memory; name is used for display
// and duplicate detection.
func ErfFromBytes(name string, data []byte) *Erf {
	e := &Erf{path: name, name: name}
	e.parse(data)
	return e
}

// NewEmptyErf creates a writable archive with the given magic ("ERF ",
// "MOD ", "HAK ", "SAV ").
func NewEmptyErf(magic string) *Erf {
	return &Erf{
		magic:   (magic + "    ")[:4],
		entries: make(map[Resource]erfEntry),
		payload: make(map[Resource][]byte),
		valid:   true,
	}
}

func (e *Erf) parse(data []byte) {
	b := bin.Segm(data)
	if len(b) < erfHeaderSize {
		tracer().Errorf("erf: truncated header in %s", e.name)
		return
	}
	e.magic = string(b[0:4])
	switch e.magic {
	case "ERF ", "MOD ", "HAK ", "SAV ":
	default:
		tracer().Errorf("erf: bad magic %q in %s", e.magic, e.name)
		return
	}
	if string(b[4:8]) != erfVersion {
		tracer().Errorf("erf: unsupported version %q in %s", string(b[4:8]), e.name)
		return
	}
	locCount, _ := b.U32(8)
	entryCount, _ := b.U32(16)
	locOffset, _ := b.U32(20)
	keyOffset, _ := b.U32(24)
	resOffset, _ := b.U32(28)
	e.buildYear, _ = b.U32(32)
	e.buildDay, _ = b.U32(36)
	descStrref, _ := b.U32(40)

	e.description = i18n.NewLocString(descStrref)
	pos := int(locOffset)
	for i := uint32(0); i < locCount; i++ {
		wire, err := b.U32(pos)
		if err != nil {
			tracer().Errorf("erf: localized string table out of bounds in %s", e.name)
			return
		}
		size, _ := b.U32(pos + 4)
		raw, err := b.View(pos+8, int(size))
		if err != nil {
			tracer().Errorf("erf: localized string %d out of bounds in %s", i, e.name)
			return
		}
		lang, fem := i18n.Decode(wire)
		e.description.Add(lang, i18n.DecodeText(lang, raw), fem)
		pos += 8 + int(size)
	}

	keys, err := b.View(int(keyOffset), int(entryCount)*erfKeySize)
	if err != nil {
		tracer().Errorf("erf: key table out of bounds in %s", e.name)
		return
	}
	ress, err := b.View(int(resOffset), int(entryCount)*erfResourceSize)
	if err != nil {
		tracer().Errorf("erf: resource table out of bounds in %s", e.name)
		return
	}
	e.entries = make(map[Resource]erfEntry, entryCount)
	for i := 0; i < int(entryCount); i++ {
		name, _ := keys.View(i*erfKeySize, ResrefMaxSize)
		typ, _ := keys.U16(i*erfKeySize + 20)
		r := Resource{Resref: resrefFromBytes(name), Type: Type(typ)}
		off, _ := ress.U32(i * erfResourceSize)
		size, _ := ress.U32(i*erfResourceSize + 4)
		if int(off)+int(size) > len(b) {
			tracer().Errorf("erf: resource %s exceeds file size in %s", r, e.name)
			continue
		}
		if _, dup := e.entries[r]; dup {
			tracer().Errorf("erf: duplicate resource %s in %s", r, e.name)
			continue
		}
		e.entries[r] = erfEntry{offset: off, size: size}
		e.order = append(e.order, r)
	}
	e.data = b
	e.valid = true
}

// Name returns the archive's display name.
func (e *Erf) Name() string { return e.name }

// Path returns the archive's backing path.
func (e *Erf) Path() string { return e.path }

// Valid reports whether the archive parsed cleanly.
func (e *Erf) Valid() bool { return e.valid }

// Size returns the number of resources.
func (e *Erf) Size() int { return len(e.entries) }

// Magic returns the archive flavour tag ("ERF ", "MOD ", "HAK ", "SAV ").
func (e *Erf) Magic() string { return e.magic }

// Description returns the archive's localized description.
func (e *Erf) Description() i18n.LocString { return e.description }

// Contains checks for a resource.
func (e *Erf) Contains(r Resource) bool {
	_, ok := e.entries[r]
	if !ok && e.payload != nil {
		_, ok = e.payload[r]
	}
	return ok
}

// Demand seeks and reads a resource's bytes.
func (e *Erf) Demand(r Resource) Data {
	if e.payload != nil {
		if b, ok := e.payload[r]; ok {
			return Data{ID: r, Bytes: b, Mtime: e.mtime, Size: int64(len(b))}
		}
	}
	ent, ok := e.entries[r]
	if !ok {
		return Data{ID: r}
	}
	raw, err := e.data.View(int(ent.offset), int(ent.size))
	if err != nil {
		tracer().Errorf("erf: resource %s out of bounds in %s", r, e.name)
		return Data{ID: r}
	}
	return Data{ID: r, Bytes: raw, Mtime: e.mtime, Size: int64(ent.size)}
}

// Stat returns metadata for a resource.
func (e *Erf) Stat(r Resource) (Meta, bool) {
	if e.payload != nil {
		if b, ok := e.payload[r]; ok {
			return Meta{Mtime: e.mtime, Size: int64(len(b))}, true
		}
	}
	ent, ok := e.entries[r]
	if !ok {
		return Meta{}, false
	}
	return Meta{Mtime: e.mtime, Size: int64(ent.size)}, true
}

// Visit enumerates resources in key-table order; staged additions follow.
func (e *Erf) Visit(fn func(r Resource)) {
	for _, r := range e.order {
		fn(r)
	}
	if e.payload != nil {
		for _, r := range e.added() {
			fn(r)
		}
	}
}

// Add stages a resource for writing, replacing table content of the same
// identity.
func (e *Erf) Add(r Resource, bytes []byte) {
	if e.payload == nil {
		e.payload = make(map[Resource][]byte)
	}
	e.payload[r] = bytes
}

// Merge stages every resource of another container into this archive.
func (e *Erf) Merge(other Container) {
	other.Visit(func(r Resource) {
		d := other.Demand(r)
		if !d.IsEmpty() {
			e.Add(r, d.Bytes)
		}
	})
}

// added returns staged resources that are not in the parsed table, in
// deterministic (sorted) order.
func (e *Erf) added() []Resource {
	var out []Resource
	for r := range e.payload {
		if _, inTable := e.entries[r]; !inTable {
			out = append(out, r)
		}
	}
	sortResources(out)
	return out
}

// Save writes the archive in canonical V1.0 layout: header, localized
// strings, key table, resource table, payloads in key order.
func (e *Erf) Save(path string) error {
	if !e.valid {
		return fmt.Errorf("erf: refusing to save invalid archive %s", e.name)
	}
	all := make([]Resource, 0, len(e.entries)+len(e.payload))
	all = append(all, e.order...)
	all = append(all, e.added()...)

	var locBlob []byte
	locCount := uint32(0)
	e.description.Each(func(lang i18n.Language, fem bool, text string) {
		enc := i18n.EncodeText(lang, text)
		locBlob = bin.PutU32(locBlob, i18n.Encode(lang, fem))
		locBlob = bin.PutU32(locBlob, uint32(len(enc)))
		locBlob = append(locBlob, enc...)
		locCount++
	})

	locOffset := uint32(erfHeaderSize)
	keyOffset := locOffset + uint32(len(locBlob))
	resOffset := keyOffset + uint32(len(all)*erfKeySize)
	dataOffset := resOffset + uint32(len(all)*erfResourceSize)

	out := make([]byte, 0, int(dataOffset))
	out = append(out, e.magic...)
	out = append(out, erfVersion...)
	out = bin.PutU32(out, locCount)
	out = bin.PutU32(out, uint32(len(locBlob)))
	out = bin.PutU32(out, uint32(len(all)))
	out = bin.PutU32(out, locOffset)
	out = bin.PutU32(out, keyOffset)
	out = bin.PutU32(out, resOffset)
	out = bin.PutU32(out, e.buildYear)
	out = bin.PutU32(out, e.buildDay)
	out = bin.PutU32(out, e.description.Strref())
	out = append(out, make([]byte, 116)...)
	out = append(out, locBlob...)

	payloads := make([][]byte, len(all))
	for i, r := range all {
		d := e.Demand(r)
		payloads[i] = d.Bytes
	}
	for i, r := range all {
		padded := r.Resref.padded()
		out = append(out, padded[:]...)
		out = bin.PutU32(out, uint32(i))
		out = bin.PutU16(out, uint16(r.Type))
		out = bin.PutU16(out, 0)
	}
	off := dataOffset
	for _, p := range payloads {
		out = bin.PutU32(out, off)
		out = bin.PutU32(out, uint32(len(p)))
		off += uint32(len(p))
	}
	for _, p := range payloads {
		out = append(out, p...)
	}
	return os.WriteFile(path, out, 0o644)
}

func sortResources(rs []Resource) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0; j-- {
			a, b := rs[j-1], rs[j]
			if a.Resref.Less(b.Resref) || (a.Resref == b.Resref && a.Type <= b.Type) {
				break
			}
			rs[j-1], rs[j] = rs[j], rs[j-1]
		}
	}
}
