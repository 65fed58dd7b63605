package gff

import (
	"math"

	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/internal/bin"
	"github.com/okarren/aurora/res"
)

// Builder assembles a GFF document in memory and serializes it canonically:
// structs in first-visit (depth-first) order, labels interned in first-use
// order, field entries struct-major, field data packed contiguously, index
// arrays without gaps. Lists always indirect through the list-indices
// array, single-element lists included.
type Builder struct {
	magic string
	root  *BuildStruct
}

// NewBuilder starts a document with the given 4-character content tag
// ("UTC ", "ARE ", ...). Short tags are space-padded.
func NewBuilder(magic string) *Builder {
	magic = (magic + "    ")[:4]
	return &Builder{
		magic: magic,
		root:  &BuildStruct{id: StructIDRoot},
	}
}

// Root returns the document's top-level struct.
func (b *Builder) Root() *BuildStruct {
	return b.root
}

// BuildStruct is a struct under construction. Fields keep insertion order;
// setting an existing label replaces its value in place.
type BuildStruct struct {
	id     uint32
	fields []buildField
}

type buildField struct {
	label string
	ftype FieldType

	scalar uint64 // numeric payload bit pattern
	str    string
	resref res.Resref
	loc    i18n.LocString
	void   []byte
	child  *BuildStruct
	list   []*BuildStruct
}

// ID returns the struct's schema discriminator.
func (s *BuildStruct) ID() uint32 {
	return s.id
}

// SetID replaces the struct's schema discriminator.
func (s *BuildStruct) SetID(id uint32) {
	s.id = id
}

// Len returns the number of fields.
func (s *BuildStruct) Len() int {
	return len(s.fields)
}

func (s *BuildStruct) put(f buildField) {
	for i := range s.fields {
		if s.fields[i].label == f.label {
			s.fields[i] = f
			return
		}
	}
	s.fields = append(s.fields, f)
}

// SetByte sets a byte field.
func (s *BuildStruct) SetByte(label string, v uint8) {
	s.put(buildField{label: label, ftype: TypeByte, scalar: uint64(v)})
}

// SetChar sets a char field.
func (s *BuildStruct) SetChar(label string, v int8) {
	s.put(buildField{label: label, ftype: TypeChar, scalar: uint64(uint8(v))})
}

// SetWord sets a word field.
func (s *BuildStruct) SetWord(label string, v uint16) {
	s.put(buildField{label: label, ftype: TypeWord, scalar: uint64(v)})
}

// SetShort sets a short field.
func (s *BuildStruct) SetShort(label string, v int16) {
	s.put(buildField{label: label, ftype: TypeShort, scalar: uint64(uint16(v))})
}

// SetDword sets a dword field.
func (s *BuildStruct) SetDword(label string, v uint32) {
	s.put(buildField{label: label, ftype: TypeDword, scalar: uint64(v)})
}

// SetInt sets an int field.
func (s *BuildStruct) SetInt(label string, v int32) {
	s.put(buildField{label: label, ftype: TypeInt, scalar: uint64(uint32(v))})
}

// SetDword64 sets a dword64 field.
func (s *BuildStruct) SetDword64(label string, v uint64) {
	s.put(buildField{label: label, ftype: TypeDword64, scalar: v})
}

// SetInt64 sets an int64 field.
func (s *BuildStruct) SetInt64(label string, v int64) {
	s.put(buildField{label: label, ftype: TypeInt64, scalar: uint64(v)})
}

// SetFloat sets a float field.
func (s *BuildStruct) SetFloat(label string, v float32) {
	s.put(buildField{label: label, ftype: TypeFloat, scalar: uint64(math.Float32bits(v))})
}

// SetDouble sets a double field.
func (s *BuildStruct) SetDouble(label string, v float64) {
	s.put(buildField{label: label, ftype: TypeDouble, scalar: math.Float64bits(v)})
}

// SetString sets a CExoString field.
func (s *BuildStruct) SetString(label string, v string) {
	s.put(buildField{label: label, ftype: TypeString, str: v})
}

// SetResref sets a resref field.
func (s *BuildStruct) SetResref(label string, v res.Resref) {
	s.put(buildField{label: label, ftype: TypeResref, resref: v})
}

// SetLocString sets a CExoLocString field.
func (s *BuildStruct) SetLocString(label string, v i18n.LocString) {
	s.put(buildField{label: label, ftype: TypeLocString, loc: v})
}

// SetVoid sets an opaque binary field.
func (s *BuildStruct) SetVoid(label string, v []byte) {
	s.put(buildField{label: label, ftype: TypeVoid, void: v})
}

// AddStruct adds a nested struct field and returns the child for filling.
func (s *BuildStruct) AddStruct(label string, id uint32) *BuildStruct {
	child := &BuildStruct{id: id}
	s.put(buildField{label: label, ftype: TypeStruct, child: child})
	return child
}

// AddList adds a list field and returns it for appending elements.
func (s *BuildStruct) AddList(label string) *BuildList {
	s.put(buildField{label: label, ftype: TypeList})
	return &BuildList{owner: s, label: label}
}

// BuildList appends struct elements to a list field.
type BuildList struct {
	owner *BuildStruct
	label string
}

// Add appends a list element with the given struct id.
func (l *BuildList) Add(id uint32) *BuildStruct {
	child := &BuildStruct{id: id}
	for i := range l.owner.fields {
		f := &l.owner.fields[i]
		if f.label == l.label && f.ftype == TypeList {
			f.list = append(f.list, child)
			return child
		}
	}
	// The list field was replaced since AddList; treat as programmer error
	// and no-op on a detached struct.
	tracer().Errorf("gff: list field %q no longer present", l.label)
	return child
}

// --- Serialization ---------------------------------------------------------

type writer struct {
	structs []*BuildStruct // first-visit order
	index   map[*BuildStruct]uint32

	labels     []string
	labelIndex map[string]uint32

	structTable  []byte
	fieldTable   []byte
	fieldData    []byte
	fieldIndices []byte
	listIndices  []byte

	fieldCount uint32
}

// Bytes serializes the document.
func (b *Builder) Bytes() []byte {
	w := &writer{
		index:      make(map[*BuildStruct]uint32),
		labelIndex: make(map[string]uint32),
	}
	w.enumerate(b.root)
	for _, s := range w.structs {
		w.emitStruct(s)
	}

	// Assemble in table order behind a fixed 56-byte header.
	off := uint32(headerSize)
	out := make([]byte, 0, int(off)+len(w.structTable)+len(w.fieldTable)+
		len(w.labels)*labelSize+len(w.fieldData)+len(w.fieldIndices)+len(w.listIndices))
	out = append(out, b.magic...)
	out = append(out, versionV32...)

	structOff := off
	off += uint32(len(w.structTable))
	fieldOff := off
	off += uint32(len(w.fieldTable))
	labelOff := off
	off += uint32(len(w.labels) * labelSize)
	dataOff := off
	off += uint32(len(w.fieldData))
	fieldIdxOff := off
	off += uint32(len(w.fieldIndices))
	listIdxOff := off

	out = bin.PutU32(out, structOff)
	out = bin.PutU32(out, uint32(len(w.structs)))
	out = bin.PutU32(out, fieldOff)
	out = bin.PutU32(out, w.fieldCount)
	out = bin.PutU32(out, labelOff)
	out = bin.PutU32(out, uint32(len(w.labels)))
	out = bin.PutU32(out, dataOff)
	out = bin.PutU32(out, uint32(len(w.fieldData)))
	out = bin.PutU32(out, fieldIdxOff)
	out = bin.PutU32(out, uint32(len(w.fieldIndices)))
	out = bin.PutU32(out, listIdxOff)
	out = bin.PutU32(out, uint32(len(w.listIndices)))

	out = append(out, w.structTable...)
	out = append(out, w.fieldTable...)
	for _, l := range w.labels {
		var lbl [labelSize]byte
		copy(lbl[:], l)
		out = append(out, lbl[:]...)
	}
	out = append(out, w.fieldData...)
	out = append(out, w.fieldIndices...)
	out = append(out, w.listIndices...)
	return out
}

// enumerate assigns struct indices depth-first, fields in insertion order.
func (w *writer) enumerate(s *BuildStruct) {
	if _, seen := w.index[s]; seen {
		return
	}
	w.index[s] = uint32(len(w.structs))
	w.structs = append(w.structs, s)
	for i := range s.fields {
		f := &s.fields[i]
		switch f.ftype {
		case TypeStruct:
			w.enumerate(f.child)
		case TypeList:
			for _, e := range f.list {
				w.enumerate(e)
			}
		}
	}
}

func (w *writer) intern(label string) uint32 {
	if len(label) > labelSize {
		tracer().Errorf("gff: label %q exceeds %d characters, truncating", label, labelSize)
		label = label[:labelSize]
	}
	if i, ok := w.labelIndex[label]; ok {
		return i
	}
	i := uint32(len(w.labels))
	w.labels = append(w.labels, label)
	w.labelIndex[label] = i
	return i
}

func (w *writer) emitStruct(s *BuildStruct) {
	var dof uint32
	switch {
	case len(s.fields) == 0:
		dof = 0
	case len(s.fields) == 1:
		dof = w.fieldCount
	default:
		dof = uint32(len(w.fieldIndices))
		for range s.fields {
			w.fieldIndices = bin.PutU32(w.fieldIndices, 0) // patched below
		}
	}
	w.structTable = bin.PutU32(w.structTable, s.id)
	w.structTable = bin.PutU32(w.structTable, dof)
	w.structTable = bin.PutU32(w.structTable, uint32(len(s.fields)))

	for i := range s.fields {
		fieldIdx := w.fieldCount
		if len(s.fields) > 1 {
			patch := int(dof) + i*4
			w.fieldIndices[patch] = byte(fieldIdx)
			w.fieldIndices[patch+1] = byte(fieldIdx >> 8)
			w.fieldIndices[patch+2] = byte(fieldIdx >> 16)
			w.fieldIndices[patch+3] = byte(fieldIdx >> 24)
		}
		w.emitField(&s.fields[i])
	}
}

func (w *writer) emitField(f *buildField) {
	var dof uint32
	switch f.ftype {
	case TypeStruct:
		dof = w.index[f.child]
	case TypeList:
		dof = uint32(len(w.listIndices))
		w.listIndices = bin.PutU32(w.listIndices, uint32(len(f.list)))
		for _, e := range f.list {
			w.listIndices = bin.PutU32(w.listIndices, w.index[e])
		}
	case TypeDword64, TypeInt64, TypeDouble:
		dof = uint32(len(w.fieldData))
		w.fieldData = bin.PutU64(w.fieldData, f.scalar)
	case TypeString:
		dof = uint32(len(w.fieldData))
		enc := i18n.EncodeText(i18n.LangEnglish, f.str)
		w.fieldData = bin.PutU32(w.fieldData, uint32(len(enc)))
		w.fieldData = append(w.fieldData, enc...)
	case TypeResref:
		dof = uint32(len(w.fieldData))
		name := f.resref.String()
		w.fieldData = append(w.fieldData, byte(len(name)))
		w.fieldData = append(w.fieldData, name...)
	case TypeLocString:
		dof = uint32(len(w.fieldData))
		w.fieldData = appendLocString(w.fieldData, f.loc)
	case TypeVoid:
		dof = uint32(len(w.fieldData))
		w.fieldData = bin.PutU32(w.fieldData, uint32(len(f.void)))
		w.fieldData = append(w.fieldData, f.void...)
	default:
		dof = uint32(f.scalar)
	}
	w.fieldTable = bin.PutU32(w.fieldTable, uint32(f.ftype))
	w.fieldTable = bin.PutU32(w.fieldTable, w.intern(f.label))
	w.fieldTable = bin.PutU32(w.fieldTable, dof)
	w.fieldCount++
}

func appendLocString(dst []byte, l i18n.LocString) []byte {
	var body []byte
	body = bin.PutU32(body, l.Strref())
	count := uint32(0)
	l.Each(func(lang i18n.Language, fem bool, text string) {
		enc := i18n.EncodeText(lang, text)
		body = bin.PutU32(body, i18n.Encode(lang, fem))
		body = bin.PutU32(body, uint32(len(enc)))
		body = append(body, enc...)
		count++
	})
	// body layout so far: strref, then entries; count slots in after strref.
	head := bin.PutU32(nil, uint32(len(body)+4))
	head = append(head, body[:4]...)
	head = bin.PutU32(head, count)
	head = append(head, body[4:]...)
	return append(dst, head...)
}

// Canonicalize rebuilds a parsed document into a Builder. Re-serializing
// the result of Canonicalize(FromBytes(b)) reproduces b byte-for-byte when
// b itself was written canonically.
func Canonicalize(g *Gff) *Builder {
	b := NewBuilder(g.Magic())
	if !g.Valid() {
		return b
	}
	copyStruct(g.Toplevel(), b.Root())
	return b
}

func copyStruct(src Struct, dst *BuildStruct) {
	n := src.Size()
	for i := 0; i < n; i++ {
		f := src.FieldAt(i)
		if !f.Valid() {
			continue
		}
		label := f.Name()
		switch f.Type() {
		case TypeByte:
			dst.SetByte(label, GetOr[uint8](f, 0))
		case TypeChar:
			dst.SetChar(label, GetOr[int8](f, 0))
		case TypeWord:
			dst.SetWord(label, GetOr[uint16](f, 0))
		case TypeShort:
			dst.SetShort(label, GetOr[int16](f, 0))
		case TypeDword:
			dst.SetDword(label, GetOr[uint32](f, 0))
		case TypeInt:
			dst.SetInt(label, GetOr[int32](f, 0))
		case TypeDword64:
			dst.SetDword64(label, GetOr[uint64](f, 0))
		case TypeInt64:
			dst.SetInt64(label, GetOr[int64](f, 0))
		case TypeFloat:
			dst.SetFloat(label, GetOr[float32](f, 0))
		case TypeDouble:
			dst.SetDouble(label, GetOr[float64](f, 0))
		case TypeString:
			dst.SetString(label, GetOr[string](f, ""))
		case TypeResref:
			dst.SetResref(label, GetOr[res.Resref](f, res.Resref{}))
		case TypeLocString:
			dst.SetLocString(label, GetOr[i18n.LocString](f, i18n.LocString{}))
		case TypeVoid:
			dst.SetVoid(label, GetOr[[]byte](f, nil))
		case TypeStruct:
			child := f.Index(0)
			copyStruct(child, dst.AddStruct(label, child.ID()))
		case TypeList:
			list := dst.AddList(label)
			for j := 0; j < f.Size(); j++ {
				elem := f.Index(j)
				copyStruct(elem, list.Add(elem.ID()))
			}
		}
	}
}
