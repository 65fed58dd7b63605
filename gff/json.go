package gff

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/res"
)

// ToJSON projects a document into JSON. Leaf types map to their natural
// JSON scalar (void as base64, resref as string), locstrings to
// {"strref","strings"}, structs to objects carrying a reserved
// "__struct_id" key, lists to arrays. Object keys keep field order — the
// projection is built by hand instead of through a map.
func ToJSON(g *Gff) []byte {
	var buf bytes.Buffer
	if !g.Valid() {
		return []byte("null")
	}
	writeStructJSON(&buf, g.Toplevel())
	return buf.Bytes()
}

func writeStructJSON(buf *bytes.Buffer, s Struct) {
	buf.WriteString(`{"__struct_id":`)
	// The root id 0xFFFFFFFF projects as -1, keeping the value in the
	// signed range the original tooling emits.
	if s.ID() == StructIDRoot {
		buf.WriteString("-1")
	} else {
		writeRaw(buf, s.ID())
	}
	n := s.Size()
	for i := 0; i < n; i++ {
		f := s.FieldAt(i)
		if !f.Valid() {
			continue
		}
		buf.WriteByte(',')
		writeRaw(buf, f.Name())
		buf.WriteByte(':')
		writeFieldJSON(buf, f)
	}
	buf.WriteByte('}')
}

func writeFieldJSON(buf *bytes.Buffer, f Field) {
	switch f.Type() {
	case TypeByte:
		writeRaw(buf, GetOr[uint8](f, 0))
	case TypeChar:
		writeRaw(buf, GetOr[int8](f, 0))
	case TypeWord:
		writeRaw(buf, GetOr[uint16](f, 0))
	case TypeShort:
		writeRaw(buf, GetOr[int16](f, 0))
	case TypeDword:
		writeRaw(buf, GetOr[uint32](f, 0))
	case TypeInt:
		writeRaw(buf, GetOr[int32](f, 0))
	case TypeDword64:
		writeRaw(buf, GetOr[uint64](f, 0))
	case TypeInt64:
		writeRaw(buf, GetOr[int64](f, 0))
	case TypeFloat:
		writeRaw(buf, GetOr[float32](f, 0))
	case TypeDouble:
		writeRaw(buf, GetOr[float64](f, 0))
	case TypeString:
		writeRaw(buf, GetOr[string](f, ""))
	case TypeResref:
		writeRaw(buf, GetOr[res.Resref](f, res.Resref{}).String())
	case TypeLocString:
		l := GetOr[i18n.LocString](f, i18n.LocString{})
		if b, err := json.Marshal(l); err == nil {
			buf.Write(b)
		} else {
			buf.WriteString("null")
		}
	case TypeVoid:
		writeRaw(buf, base64.StdEncoding.EncodeToString(GetOr[[]byte](f, nil)))
	case TypeStruct:
		writeStructJSON(buf, f.Index(0))
	case TypeList:
		buf.WriteByte('[')
		for i := 0; i < f.Size(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeStructJSON(buf, f.Index(i))
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
}

func writeRaw(buf *bytes.Buffer, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(b)
}
