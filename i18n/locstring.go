package i18n

import (
	"encoding/json"
)

// StrrefNone is the "no table lookup" string reference.
const StrrefNone uint32 = 0xFFFFFFFF

// LocString is a localized string: an optional talk-table reference plus
// embedded per-language variants. The feminine grammatical variant is a
// distinct axis at this level; on the wire it is folded into the language
// id (see Encode).
type LocString struct {
	strref  uint32
	entries []locEntry
}

type locEntry struct {
	lang     Language
	feminine bool
	text     string
}

// NewLocString creates a LocString with a string reference. Use StrrefNone
// for a purely embedded string.
func NewLocString(strref uint32) LocString {
	return LocString{strref: strref}
}

// Strref returns the talk-table reference, StrrefNone if unset.
func (l *LocString) Strref() uint32 {
	return l.strref
}

// SetStrref replaces the talk-table reference.
func (l *LocString) SetStrref(strref uint32) {
	l.strref = strref
}

// Add sets a localized variant, replacing an existing entry for the same
// (language, feminine) pair. Insertion order of new pairs is preserved; the
// wire and JSON projections depend on that.
func (l *LocString) Add(lang Language, text string, feminine bool) {
	for i := range l.entries {
		if l.entries[i].lang == lang && l.entries[i].feminine == feminine {
			l.entries[i].text = text
			return
		}
	}
	l.entries = append(l.entries, locEntry{lang: lang, feminine: feminine, text: text})
}

// Get returns the variant for (language, feminine), or "".
func (l *LocString) Get(lang Language, feminine bool) string {
	for _, e := range l.entries {
		if e.lang == lang && e.feminine == feminine {
			return e.text
		}
	}
	return ""
}

// Contains checks whether a variant is set.
func (l *LocString) Contains(lang Language, feminine bool) bool {
	for _, e := range l.entries {
		if e.lang == lang && e.feminine == feminine {
			return true
		}
	}
	return false
}

// Size returns the number of embedded variants.
func (l *LocString) Size() int {
	return len(l.entries)
}

// Each visits the embedded variants in insertion order.
func (l *LocString) Each(fn func(lang Language, feminine bool, text string)) {
	for _, e := range l.entries {
		fn(e.lang, e.feminine, e.text)
	}
}

// Equal compares strref and all variants, order included.
func (l *LocString) Equal(other LocString) bool {
	if l.strref != other.strref || len(l.entries) != len(other.entries) {
		return false
	}
	for i := range l.entries {
		if l.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

// locStringJSON mirrors the original engine's JSON wire format: the lang
// key carries the doubled (feminine-folded) identifier.
type locStringJSON struct {
	Strref  uint32          `json:"strref"`
	Strings []locStringPair `json:"strings"`
}

type locStringPair struct {
	Lang   uint32 `json:"lang"`
	String string `json:"string"`
}

// MarshalJSON encodes as {"strref":N,"strings":[{"lang":L,"string":S}…]}.
func (l LocString) MarshalJSON() ([]byte, error) {
	out := locStringJSON{Strref: l.strref, Strings: []locStringPair{}}
	for _, e := range l.entries {
		out.Strings = append(out.Strings, locStringPair{
			Lang:   Encode(e.lang, e.feminine),
			String: e.text,
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (l *LocString) UnmarshalJSON(b []byte) error {
	var in locStringJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	l.strref = in.Strref
	l.entries = nil
	for _, p := range in.Strings {
		lang, fem := Decode(p.Lang)
		l.Add(lang, p.String, fem)
	}
	return nil
}
