package res

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okarren/aurora/internal/bin"
)

// KEY/BIF container layout, version V1.
//
//	KEY header (64 B): "KEY " "V1  ", bif count, key count, offset to file
//	                   table, offset to key table, build year, build day,
//	                   32 reserved bytes.
//	File entry (12 B): bif size, filename offset, filename size u16,
//	                   drives u16.
//	Key entry (22 B):  resref[16], type u16, id u32. The id packs the bif
//	                   index in the top 12 bits and the variable-resource
//	                   index in the low 20.
//	BIF header (20 B): "BIFF" "V1  ", variable count, fixed count, offset
//	                   to variable table.
//	Variable entry (16 B): id, offset, size, type.
const (
	keyHeaderSize = 64
	keyFileSize   = 12
	keyEntrySize  = 22
	bifHeaderSize = 20
	bifVarSize    = 16
)

type keyEntry struct {
	bif   int
	index uint32
}

type bifResource struct {
	offset uint32
	size   uint32
}

type bifFile struct {
	path string
	data bin.Segm
	vars []bifResource
}

// KeyBif is an index container: a .key file naming resources, with the
// payload spread over a set of .bif bags.
type KeyBif struct {
	path    string
	name    string
	mtime   time.Time
	bifs    []*bifFile
	entries map[Resource]keyEntry
	order   []Resource
	valid   bool
}

// NewKeyBif opens a key file and its bif bags. Bif paths from the file
// table are resolved relative to the key file's parent directory, with
// Windows separators normalized.
func NewKeyBif(path string) *KeyBif {
	k := &KeyBif{
		path: filepath.Clean(path),
		name: filepath.Base(path),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("key: cannot read %s: %v", path, err)
		return k
	}
	if fi, err := os.Stat(path); err == nil {
		k.mtime = fi.ModTime()
	}
	b := bin.Segm(data)
	if len(b) < keyHeaderSize || string(b[0:4]) != "KEY " || string(b[4:8]) != "V1  " {
		tracer().Errorf("key: bad magic or truncated header in %s", k.name)
		return k
	}
	bifCount, _ := b.U32(8)
	keyCount, _ := b.U32(12)
	fileOffset, _ := b.U32(16)
	keyOffset, _ := b.U32(20)

	root := filepath.Dir(k.path)
	for i := uint32(0); i < bifCount; i++ {
		base := int(fileOffset) + int(i)*keyFileSize
		nameOff, err := b.U32(base + 4)
		if err != nil {
			tracer().Errorf("key: file table out of bounds in %s", k.name)
			return k
		}
		nameSize, _ := b.U16(base + 8)
		raw, err := b.View(int(nameOff), int(nameSize))
		if err != nil {
			tracer().Errorf("key: bif filename out of bounds in %s", k.name)
			return k
		}
		bifPath := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(trimNullsKey(raw), "\\", "/")))
		k.bifs = append(k.bifs, openBif(bifPath))
	}

	keys, err := b.View(int(keyOffset), int(keyCount)*keyEntrySize)
	if err != nil {
		tracer().Errorf("key: key table out of bounds in %s", k.name)
		return k
	}
	k.entries = make(map[Resource]keyEntry, keyCount)
	for i := 0; i < int(keyCount); i++ {
		name, _ := keys.View(i*keyEntrySize, ResrefMaxSize)
		typ, _ := keys.U16(i*keyEntrySize + 16)
		id, _ := keys.U32(i*keyEntrySize + 18)
		r := Resource{Resref: resrefFromBytes(name), Type: Type(typ)}
		ent := keyEntry{bif: int(id >> 20), index: id & 0xFFFFF}
		if ent.bif >= len(k.bifs) {
			tracer().Errorf("key: entry %s references bif %d of %d in %s", r, ent.bif, len(k.bifs), k.name)
			continue
		}
		if _, dup := k.entries[r]; dup {
			continue
		}
		k.entries[r] = ent
		k.order = append(k.order, r)
	}
	k.valid = true
	return k
}

func openBif(path string) *bifFile {
	f := &bifFile{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("bif: cannot read %s: %v", path, err)
		return f
	}
	b := bin.Segm(data)
	if len(b) < bifHeaderSize || string(b[0:4]) != "BIFF" || string(b[4:8]) != "V1  " {
		tracer().Errorf("bif: bad magic or truncated header in %s", path)
		return f
	}
	varCount, _ := b.U32(8)
	varOffset, _ := b.U32(16)
	table, err := b.View(int(varOffset), int(varCount)*bifVarSize)
	if err != nil {
		tracer().Errorf("bif: variable table out of bounds in %s", path)
		return f
	}
	f.vars = make([]bifResource, varCount)
	for i := 0; i < int(varCount); i++ {
		off, _ := table.U32(i*bifVarSize + 4)
		size, _ := table.U32(i*bifVarSize + 8)
		f.vars[i] = bifResource{offset: off, size: size}
	}
	f.data = b
	return f
}

// Name returns the key file's display name.
func (k *KeyBif) Name() string { return k.name }

// Path returns the key file's backing path.
func (k *KeyBif) Path() string { return k.path }

// Valid reports whether the index parsed cleanly.
func (k *KeyBif) Valid() bool { return k.valid }

// Size returns the number of indexed resources.
func (k *KeyBif) Size() int { return len(k.entries) }

// Contains checks for a resource.
func (k *KeyBif) Contains(r Resource) bool {
	_, ok := k.entries[r]
	return ok
}

// Demand maps through the key entry to the right bif and offset.
func (k *KeyBif) Demand(r Resource) Data {
	ent, ok := k.entries[r]
	if !ok {
		return Data{ID: r}
	}
	bf := k.bifs[ent.bif]
	if bf == nil || int(ent.index) >= len(bf.vars) {
		tracer().Errorf("key: %s points past bif %s", r, bf.path)
		return Data{ID: r}
	}
	v := bf.vars[ent.index]
	raw, err := bf.data.View(int(v.offset), int(v.size))
	if err != nil {
		tracer().Errorf("bif: resource %s out of bounds in %s", r, bf.path)
		return Data{ID: r}
	}
	return Data{ID: r, Bytes: raw, Mtime: k.mtime, Size: int64(v.size)}
}

// Stat returns metadata for a resource.
func (k *KeyBif) Stat(r Resource) (Meta, bool) {
	ent, ok := k.entries[r]
	if !ok {
		return Meta{}, false
	}
	bf := k.bifs[ent.bif]
	if bf == nil || int(ent.index) >= len(bf.vars) {
		return Meta{}, false
	}
	return Meta{Mtime: k.mtime, Size: int64(bf.vars[ent.index].size)}, true
}

// Visit enumerates resources in key-table order.
func (k *KeyBif) Visit(fn func(r Resource)) {
	for _, r := range k.order {
		fn(r)
	}
}

func trimNullsKey(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
