package gff

// FieldType tags the fourteen leaf types plus struct and list. The numeric
// codes are the wire codes.
type FieldType uint32

// GFF field type codes.
const (
	TypeByte      FieldType = 0
	TypeChar      FieldType = 1
	TypeWord      FieldType = 2
	TypeShort     FieldType = 3
	TypeDword     FieldType = 4
	TypeInt       FieldType = 5
	TypeDword64   FieldType = 6
	TypeInt64     FieldType = 7
	TypeFloat     FieldType = 8
	TypeDouble    FieldType = 9
	TypeString    FieldType = 10 // CExoString
	TypeResref    FieldType = 11
	TypeLocString FieldType = 12 // CExoLocString
	TypeVoid      FieldType = 13
	TypeStruct    FieldType = 14
	TypeList      FieldType = 15
)

func (t FieldType) String() string {
	switch t {
	case TypeByte:
		return "byte"
	case TypeChar:
		return "char"
	case TypeWord:
		return "word"
	case TypeShort:
		return "short"
	case TypeDword:
		return "dword"
	case TypeInt:
		return "int"
	case TypeDword64:
		return "dword64"
	case TypeInt64:
		return "int64"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeString:
		return "cexostring"
	case TypeResref:
		return "resref"
	case TypeLocString:
		return "cexolocstring"
	case TypeVoid:
		return "void"
	case TypeStruct:
		return "struct"
	case TypeList:
		return "list"
	}
	return "unknown"
}

// complex reports whether values of the type live in the field-data blob
// rather than inline in the field entry.
func (t FieldType) complex() bool {
	switch t {
	case TypeDword64, TypeInt64, TypeDouble, TypeString, TypeResref,
		TypeLocString, TypeVoid:
		return true
	}
	return false
}

// StructIDRoot is the struct id of a document's top-level struct.
const StructIDRoot uint32 = 0xFFFFFFFF

// Binary layout constants.
const (
	headerSize      = 56
	structEntrySize = 12
	fieldEntrySize  = 12
	labelSize       = 16
	versionV32      = "V3.2"
)

// Maximum counts accepted from a header. Damaged or hostile files cannot
// make the parser allocate unboundedly.
const (
	maxStructCount = 1 << 24
	maxFieldCount  = 1 << 24
	maxLabelCount  = 1 << 20
)
