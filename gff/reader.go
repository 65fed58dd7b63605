package gff

import (
	"os"

	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/internal/bin"
	"github.com/okarren/aurora/res"
)

// Gff is a parsed document. It keeps a view of the raw bytes plus the six
// shared tables; fields decode lazily through the cursor API.
type Gff struct {
	data bin.Segm

	magic   string // 4-byte content tag, e.g. "UTC "
	version string

	structs      bin.Segm // struct entries, 12 B each
	fields       bin.Segm // field entries, 12 B each
	labels       bin.Segm // label entries, 16 B each
	fieldData    bin.Segm
	fieldIndices bin.Segm // u32 array
	listIndices  bin.Segm // u32 array, [count, ids...] runs

	structCount int
	fieldCount  int
	labelCount  int

	valid bool
}

// Load reads and parses a GFF file. Structural damage yields Valid() ==
// false, never an error value; see package doc.
func Load(path string) *Gff {
	b, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("gff: cannot read %s: %v", path, err)
		return &Gff{}
	}
	return FromBytes(b)
}

// FromBytes parses a GFF document from memory. The document keeps a view of
// data; the slice must not change while the document is in use.
func FromBytes(data []byte) *Gff {
	g := &Gff{data: bin.Segm(data)}
	b := g.data
	if len(b) < headerSize {
		tracer().Errorf("gff: truncated header (%d bytes)", len(b))
		return g
	}
	g.magic = string(b[0:4])
	g.version = string(b[4:8])
	if g.version != versionV32 {
		tracer().Errorf("gff: unsupported version %q", g.version)
		return g
	}
	var off [12]uint32
	for i := range off {
		off[i], _ = b.U32(8 + i*4)
	}
	structOff, structCnt := off[0], off[1]
	fieldOff, fieldCnt := off[2], off[3]
	labelOff, labelCnt := off[4], off[5]
	dataOff, dataCnt := off[6], off[7]
	fieldIdxOff, fieldIdxCnt := off[8], off[9]
	listIdxOff, listIdxCnt := off[10], off[11]

	if structCnt > maxStructCount || fieldCnt > maxFieldCount || labelCnt > maxLabelCount {
		tracer().Errorf("gff: header counts out of range (%d/%d/%d)", structCnt, fieldCnt, labelCnt)
		return g
	}
	var err error
	if g.structs, err = b.View(int(structOff), int(structCnt)*structEntrySize); err != nil {
		tracer().Errorf("gff: struct table out of bounds")
		return g
	}
	if g.fields, err = b.View(int(fieldOff), int(fieldCnt)*fieldEntrySize); err != nil {
		tracer().Errorf("gff: field table out of bounds")
		return g
	}
	if g.labels, err = b.View(int(labelOff), int(labelCnt)*labelSize); err != nil {
		tracer().Errorf("gff: label table out of bounds")
		return g
	}
	if g.fieldData, err = b.View(int(dataOff), int(dataCnt)); err != nil {
		tracer().Errorf("gff: field data out of bounds")
		return g
	}
	if g.fieldIndices, err = b.View(int(fieldIdxOff), int(fieldIdxCnt)); err != nil {
		tracer().Errorf("gff: field indices out of bounds")
		return g
	}
	if g.listIndices, err = b.View(int(listIdxOff), int(listIdxCnt)); err != nil {
		tracer().Errorf("gff: list indices out of bounds")
		return g
	}
	g.structCount = int(structCnt)
	g.fieldCount = int(fieldCnt)
	g.labelCount = int(labelCnt)
	if g.structCount == 0 {
		tracer().Errorf("gff: no structs")
		return g
	}
	g.valid = true
	return g
}

// Valid reports whether the document parsed cleanly.
func (g *Gff) Valid() bool {
	return g.valid
}

// Magic returns the 4-character content tag ("UTC ", "IFO ", ...).
func (g *Gff) Magic() string {
	return g.magic
}

// Toplevel returns the root struct. On an invalid document the returned
// struct is itself invalid, and every navigation through it soft-fails.
func (g *Gff) Toplevel() Struct {
	if !g.valid {
		return Struct{}
	}
	return Struct{g: g, index: 0, valid: true}
}

// label returns label table entry i without padding.
func (g *Gff) label(i int) string {
	seg, err := g.labels.View(i*labelSize, labelSize)
	if err != nil {
		return ""
	}
	for j, c := range seg {
		if c == 0 {
			return string(seg[:j])
		}
	}
	return string(seg)
}

// structEntry returns (structID, dataOrOffset, fieldCount) for struct i.
func (g *Gff) structEntry(i int) (uint32, uint32, uint32, bool) {
	base := i * structEntrySize
	id, err := g.structs.U32(base)
	if err != nil {
		return 0, 0, 0, false
	}
	dof, _ := g.structs.U32(base + 4)
	cnt, _ := g.structs.U32(base + 8)
	return id, dof, cnt, true
}

// fieldEntry returns (type, labelIndex, dataOrOffset) for field i.
func (g *Gff) fieldEntry(i int) (FieldType, uint32, uint32, bool) {
	base := i * fieldEntrySize
	ft, err := g.fields.U32(base)
	if err != nil {
		return 0, 0, 0, false
	}
	lbl, _ := g.fields.U32(base + 4)
	dof, _ := g.fields.U32(base + 8)
	return FieldType(ft), lbl, dof, true
}

// structFieldIndex maps (struct i, nth field) to a field table index.
// Single-field structs store the index inline; larger structs indirect
// through the field-indices array.
func (g *Gff) structFieldIndex(structIdx, nth int) (int, bool) {
	_, dof, cnt, ok := g.structEntry(structIdx)
	if !ok || nth < 0 || nth >= int(cnt) {
		return 0, false
	}
	if cnt == 1 {
		return int(dof), true
	}
	idx, err := g.fieldIndices.U32(int(dof) + nth*4)
	if err != nil {
		return 0, false
	}
	return int(idx), true
}

// --- Struct cursor ---------------------------------------------------------

// Struct is a cursor over one struct of a document.
type Struct struct {
	g     *Gff
	index int
	valid bool
}

// Valid reports whether the cursor points at a live struct.
func (s Struct) Valid() bool {
	return s.valid
}

// ID returns the struct id; StructIDRoot for a document's top level.
func (s Struct) ID() uint32 {
	if !s.valid {
		return StructIDRoot
	}
	id, _, _, _ := s.g.structEntry(s.index)
	return id
}

// Size returns the number of fields.
func (s Struct) Size() int {
	if !s.valid {
		return 0
	}
	_, _, cnt, ok := s.g.structEntry(s.index)
	if !ok {
		return 0
	}
	return int(cnt)
}

// Field looks a field up by label. A missing label yields an invalid Field.
func (s Struct) Field(label string) Field {
	if !s.valid {
		return Field{}
	}
	n := s.Size()
	for i := 0; i < n; i++ {
		fi, ok := s.g.structFieldIndex(s.index, i)
		if !ok {
			continue
		}
		_, lbl, _, ok := s.g.fieldEntry(fi)
		if ok && s.g.label(int(lbl)) == label {
			return Field{g: s.g, index: fi, valid: true}
		}
	}
	return Field{}
}

// Has reports whether a label is present.
func (s Struct) Has(label string) bool {
	return s.Field(label).Valid()
}

// FieldAt returns the nth field in struct order.
func (s Struct) FieldAt(nth int) Field {
	if !s.valid {
		return Field{}
	}
	fi, ok := s.g.structFieldIndex(s.index, nth)
	if !ok {
		return Field{}
	}
	return Field{g: s.g, index: fi, valid: true}
}

// --- Field cursor ----------------------------------------------------------

// Field is a cursor over one field of a struct.
type Field struct {
	g     *Gff
	index int
	valid bool
}

// Valid reports whether the cursor points at a live field.
func (f Field) Valid() bool {
	return f.valid
}

// Name returns the field's label.
func (f Field) Name() string {
	if !f.valid {
		return ""
	}
	_, lbl, _, ok := f.g.fieldEntry(f.index)
	if !ok {
		return ""
	}
	return f.g.label(int(lbl))
}

// Type returns the field's wire type.
func (f Field) Type() FieldType {
	if !f.valid {
		return TypeVoid
	}
	ft, _, _, _ := f.g.fieldEntry(f.index)
	return ft
}

// Size returns the element count of a list field, the field count of a
// struct field, and 0 for leaves.
func (f Field) Size() int {
	if !f.valid {
		return 0
	}
	ft, _, dof, ok := f.g.fieldEntry(f.index)
	if !ok {
		return 0
	}
	switch ft {
	case TypeList:
		cnt, err := f.g.listIndices.U32(int(dof))
		if err != nil {
			return 0
		}
		return int(cnt)
	case TypeStruct:
		return Struct{g: f.g, index: int(dof), valid: int(dof) < f.g.structCount}.Size()
	}
	return 0
}

// Index returns the ith element of a list field, or the targeted struct of
// a struct field (any i). Everything else yields an invalid Struct.
func (f Field) Index(i int) Struct {
	if !f.valid {
		return Struct{}
	}
	ft, _, dof, ok := f.g.fieldEntry(f.index)
	if !ok {
		return Struct{}
	}
	switch ft {
	case TypeStruct:
		if int(dof) >= f.g.structCount {
			return Struct{}
		}
		return Struct{g: f.g, index: int(dof), valid: true}
	case TypeList:
		cnt, err := f.g.listIndices.U32(int(dof))
		if err != nil || i < 0 || i >= int(cnt) {
			return Struct{}
		}
		sid, err := f.g.listIndices.U32(int(dof) + 4 + i*4)
		if err != nil || int(sid) >= f.g.structCount {
			return Struct{}
		}
		return Struct{g: f.g, index: int(sid), valid: true}
	}
	return Struct{}
}

// data returns the field-data segment for a complex-typed field.
func (f Field) data() (bin.Segm, uint32, bool) {
	ft, _, dof, ok := f.g.fieldEntry(f.index)
	if !ok || !ft.complex() {
		return nil, 0, false
	}
	if int(dof) > f.g.fieldData.Size() {
		return nil, 0, false
	}
	return f.g.fieldData, dof, true
}

// GetTo decodes the field's value into dst, which must be a pointer to a
// type matching the wire type. It returns false — leaving dst untouched —
// on type mismatch, invalid cursor, or damaged data.
func (f Field) GetTo(dst any) bool {
	if !f.valid {
		return false
	}
	ft, _, dof, ok := f.g.fieldEntry(f.index)
	if !ok {
		return false
	}
	switch ft {
	case TypeByte:
		if p, want := dst.(*uint8); want {
			*p = uint8(dof)
			return true
		}
	case TypeChar:
		if p, want := dst.(*int8); want {
			*p = int8(dof)
			return true
		}
	case TypeWord:
		if p, want := dst.(*uint16); want {
			*p = uint16(dof)
			return true
		}
	case TypeShort:
		if p, want := dst.(*int16); want {
			*p = int16(dof)
			return true
		}
	case TypeDword:
		if p, want := dst.(*uint32); want {
			*p = dof
			return true
		}
	case TypeInt:
		if p, want := dst.(*int32); want {
			*p = int32(dof)
			return true
		}
	case TypeFloat:
		if p, want := dst.(*float32); want {
			n, err := f.g.fields.F32(f.index*fieldEntrySize + 8)
			if err != nil {
				return false
			}
			*p = n
			return true
		}
	case TypeDword64:
		if p, want := dst.(*uint64); want {
			d, off, ok := f.data()
			if !ok {
				return false
			}
			n, err := d.U64(int(off))
			if err != nil {
				return false
			}
			*p = n
			return true
		}
	case TypeInt64:
		if p, want := dst.(*int64); want {
			d, off, ok := f.data()
			if !ok {
				return false
			}
			n, err := d.U64(int(off))
			if err != nil {
				return false
			}
			*p = int64(n)
			return true
		}
	case TypeDouble:
		if p, want := dst.(*float64); want {
			d, off, ok := f.data()
			if !ok {
				return false
			}
			n, err := d.F64(int(off))
			if err != nil {
				return false
			}
			*p = n
			return true
		}
	case TypeString:
		if p, want := dst.(*string); want {
			s, ok := f.readString()
			if !ok {
				return false
			}
			*p = s
			return true
		}
	case TypeResref:
		if p, want := dst.(*res.Resref); want {
			r, ok := f.readResref()
			if !ok {
				return false
			}
			*p = r
			return true
		}
	case TypeLocString:
		if p, want := dst.(*i18n.LocString); want {
			l, ok := f.readLocString()
			if !ok {
				return false
			}
			*p = l
			return true
		}
	case TypeVoid:
		if p, want := dst.(*[]byte); want {
			v, ok := f.readVoid()
			if !ok {
				return false
			}
			*p = v
			return true
		}
	}
	tracer().Debugf("gff: GetTo type mismatch on %s (%s)", f.Name(), ft)
	return false
}

func (f Field) readString() (string, bool) {
	d, off, ok := f.data()
	if !ok {
		return "", false
	}
	n, err := d.U32(int(off))
	if err != nil {
		return "", false
	}
	raw, err := d.View(int(off)+4, int(n))
	if err != nil {
		return "", false
	}
	return i18n.DecodeText(i18n.LangEnglish, raw), true
}

func (f Field) readResref() (res.Resref, bool) {
	d, off, ok := f.data()
	if !ok {
		return res.Resref{}, false
	}
	n, err := d.U8(int(off))
	if err != nil {
		return res.Resref{}, false
	}
	raw, err := d.View(int(off)+1, int(n))
	if err != nil {
		return res.Resref{}, false
	}
	return res.MakeResref(string(raw)), true
}

func (f Field) readLocString() (i18n.LocString, bool) {
	d, off, ok := f.data()
	if !ok {
		return i18n.LocString{}, false
	}
	// total size (not counting itself), strref, count, then
	// {wire lang id, length, bytes} per embedded string.
	strref, err := d.U32(int(off) + 4)
	if err != nil {
		return i18n.LocString{}, false
	}
	count, err := d.U32(int(off) + 8)
	if err != nil {
		return i18n.LocString{}, false
	}
	l := i18n.NewLocString(strref)
	pos := int(off) + 12
	for i := uint32(0); i < count; i++ {
		wire, err := d.U32(pos)
		if err != nil {
			return i18n.LocString{}, false
		}
		size, err := d.U32(pos + 4)
		if err != nil {
			return i18n.LocString{}, false
		}
		raw, err := d.View(pos+8, int(size))
		if err != nil {
			return i18n.LocString{}, false
		}
		lang, fem := i18n.Decode(wire)
		l.Add(lang, i18n.DecodeText(lang, raw), fem)
		pos += 8 + int(size)
	}
	return l, true
}

func (f Field) readVoid() ([]byte, bool) {
	d, off, ok := f.data()
	if !ok {
		return nil, false
	}
	n, err := d.U32(int(off))
	if err != nil {
		return nil, false
	}
	raw, err := d.View(int(off)+4, int(n))
	if err != nil {
		return nil, false
	}
	out := make([]byte, n)
	copy(out, raw)
	return out, true
}

// Get decodes a field into T, with ok reporting success. It is the
// optional-style companion of Field.GetTo.
func Get[T any](f Field) (T, bool) {
	var v T
	ok := f.GetTo(&v)
	return v, ok
}

// GetOr decodes a field into T, falling back to def on any failure.
func GetOr[T any](f Field, def T) T {
	v := def
	f.GetTo(&v)
	return v
}
