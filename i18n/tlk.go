package i18n

import (
	"fmt"
	"os"

	"github.com/okarren/aurora/internal/bin"
)

// Talk-table binary layout, version V3.0.
//
//	Header (20 B): "TLK " "V3.0", language id, string count, entries offset.
//	Entry (40 B):  flags, sound resref[16], volume variance, pitch variance,
//	               string offset (relative to entries offset), string size,
//	               sound length (f32).
const (
	tlkMagic       = "TLK "
	tlkVersion     = "V3.0"
	tlkHeaderSize  = 20
	tlkEntrySize   = 40
	tlkSoundResref = 16
)

// Entry flags.
const (
	tlkTextPresent     = 0x1
	tlkSoundPresent    = 0x2
	tlkSoundLenPresent = 0x4
)

// TlkEntry is one string slot of a talk table.
type TlkEntry struct {
	Flags          uint32
	Text           string
	SoundResref    string
	VolumeVariance uint32
	PitchVariance  uint32
	SoundLength    float32
}

// Tlk is a dense, strref-indexed localized-string database.
type Tlk struct {
	language Language
	entries  []TlkEntry
	valid    bool
}

// NewTlk creates an empty, valid talk table for a language.
func NewTlk(lang Language) *Tlk {
	return &Tlk{language: lang, valid: true}
}

// LoadTlk reads a talk table from disk. Structural damage yields a table
// with Valid() == false rather than an error.
func LoadTlk(path string) *Tlk {
	b, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("tlk: cannot read %s: %v", path, err)
		return &Tlk{}
	}
	return TlkFromBytes(b)
}

// TlkFromBytes decodes a talk table from memory.
func TlkFromBytes(data []byte) *Tlk {
	t := &Tlk{}
	b := bin.Segm(data)
	if len(b) < tlkHeaderSize || string(b[0:4]) != tlkMagic || string(b[4:8]) != tlkVersion {
		tracer().Errorf("tlk: bad magic or truncated header")
		return t
	}
	langID, _ := b.U32(8)
	count, _ := b.U32(12)
	entriesOffset, _ := b.U32(16)
	if int(count) < 0 || tlkHeaderSize+int(count)*tlkEntrySize > len(b) {
		tracer().Errorf("tlk: entry table exceeds file size (%d entries)", count)
		return t
	}
	t.language = Language(langID)
	t.entries = make([]TlkEntry, count)
	for i := 0; i < int(count); i++ {
		off := tlkHeaderSize + i*tlkEntrySize
		flags, _ := b.U32(off)
		sound, _ := b.View(off+4, tlkSoundResref)
		volVar, _ := b.U32(off + 20)
		pitchVar, _ := b.U32(off + 24)
		strOff, _ := b.U32(off + 28)
		strSize, _ := b.U32(off + 32)
		e := TlkEntry{
			Flags:          flags,
			SoundResref:    trimNulls(sound),
			VolumeVariance: volVar,
			PitchVariance:  pitchVar,
		}
		if flags&tlkSoundLenPresent != 0 {
			e.SoundLength, _ = b.F32(off + 36)
		}
		if flags&tlkTextPresent != 0 && strSize > 0 {
			raw, err := b.View(int(entriesOffset)+int(strOff), int(strSize))
			if err != nil {
				tracer().Errorf("tlk: string %d out of bounds", i)
			} else {
				e.Text = DecodeText(t.language, raw)
			}
		}
		t.entries[i] = e
	}
	t.valid = true
	return t
}

// Valid reports whether the table parsed cleanly.
func (t *Tlk) Valid() bool {
	return t.valid
}

// Language returns the table's language id.
func (t *Tlk) Language() Language {
	return t.language
}

// Size returns the number of string slots.
func (t *Tlk) Size() int {
	return len(t.entries)
}

// Get returns the text for a strref; "" for StrrefNone or out-of-range
// references.
func (t *Tlk) Get(strref uint32) string {
	if strref == StrrefNone || int(strref) >= len(t.entries) {
		return ""
	}
	return t.entries[strref].Text
}

// GetEntry returns the full slot, or nil when out of range.
func (t *Tlk) GetEntry(strref uint32) *TlkEntry {
	if strref == StrrefNone || int(strref) >= len(t.entries) {
		return nil
	}
	return &t.entries[strref]
}

// Set stores text at a strref, growing the table as needed.
func (t *Tlk) Set(strref uint32, text string) {
	if strref == StrrefNone {
		return
	}
	for int(strref) >= len(t.entries) {
		t.entries = append(t.entries, TlkEntry{})
	}
	t.entries[strref].Text = text
	t.entries[strref].Flags |= tlkTextPresent
}

// Bytes serializes the table in canonical layout: header, dense entry
// table, strings packed in slot order. A canonical write reloads equal.
func (t *Tlk) Bytes() []byte {
	strings := make([][]byte, len(t.entries))
	var blobSize int
	for i, e := range t.entries {
		if e.Flags&tlkTextPresent != 0 && e.Text != "" {
			strings[i] = EncodeText(t.language, e.Text)
			blobSize += len(strings[i])
		}
	}
	entriesOffset := tlkHeaderSize + len(t.entries)*tlkEntrySize
	out := make([]byte, 0, entriesOffset+blobSize)
	out = append(out, tlkMagic...)
	out = append(out, tlkVersion...)
	out = bin.PutU32(out, uint32(t.language))
	out = bin.PutU32(out, uint32(len(t.entries)))
	out = bin.PutU32(out, uint32(entriesOffset))

	var strOff uint32
	for i, e := range t.entries {
		out = bin.PutU32(out, e.Flags)
		var sound [tlkSoundResref]byte
		copy(sound[:], e.SoundResref)
		out = append(out, sound[:]...)
		out = bin.PutU32(out, e.VolumeVariance)
		out = bin.PutU32(out, e.PitchVariance)
		out = bin.PutU32(out, strOff)
		out = bin.PutU32(out, uint32(len(strings[i])))
		out = bin.PutF32(out, e.SoundLength)
		strOff += uint32(len(strings[i]))
	}
	for _, s := range strings {
		out = append(out, s...)
	}
	return out
}

// SaveAs writes the canonical serialization to a file.
func (t *Tlk) SaveAs(path string) error {
	if !t.valid {
		return fmt.Errorf("tlk: refusing to save invalid table")
	}
	return os.WriteFile(path, t.Bytes(), 0o644)
}

func trimNulls(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
