package i18n

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Language identifies one of the localization languages. The numeric values
// are canonical; GFF locstrings carry them doubled (see Encode), TLK headers
// carry them as-is.
type Language uint32

// Languages the legacy engine localizes into.
const (
	LangEnglish Language = 0
	LangFrench  Language = 1
	LangGerman  Language = 2
	LangItalian Language = 3
	LangSpanish Language = 4
	LangPolish  Language = 5

	LangKorean             Language = 128
	LangChineseTraditional Language = 129
	LangChineseSimplified  Language = 130
	LangJapanese           Language = 131

	// LangInvalid marks an undecodable language id.
	LangInvalid Language = 0xFFFFFFFF
)

// Encode packs a language and the feminine-variant bit into the wire
// identifier used by GFF locstrings: id*2 + feminine.
func Encode(lang Language, feminine bool) uint32 {
	n := uint32(lang) * 2
	if feminine {
		n++
	}
	return n
}

// Decode unpacks a wire identifier into language and feminine bit.
func Decode(wire uint32) (Language, bool) {
	return Language(wire / 2), wire%2 == 1
}

// encodingFor returns the 8-bit codec for a language's legacy files. The
// CJK languages ship multibyte-encoded files which this toolkit does not
// transcode; their bytes pass through unchanged.
func encodingFor(lang Language) encoding.Encoding {
	switch lang {
	case LangEnglish, LangFrench, LangGerman, LangItalian, LangSpanish:
		return charmap.Windows1252
	case LangPolish:
		return charmap.Windows1250
	default:
		return nil
	}
}

// DecodeText converts file bytes in a language's legacy encoding to UTF-8.
func DecodeText(lang Language, b []byte) string {
	enc := encodingFor(lang)
	if enc == nil {
		return string(b)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		tracer().Errorf("cannot decode %s text: %v", lang, err)
		return string(b)
	}
	return string(out)
}

// EncodeText converts UTF-8 to a language's legacy file encoding.
// Unmappable runes are replaced with the encoding's substitute byte (0x1A).
func EncodeText(lang Language, s string) []byte {
	enc := encodingFor(lang)
	if enc == nil {
		return []byte(s)
	}
	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		tracer().Errorf("cannot encode %s text: %v", lang, err)
		return []byte(s)
	}
	return out
}

func (l Language) String() string {
	switch l {
	case LangEnglish:
		return "en"
	case LangFrench:
		return "fr"
	case LangGerman:
		return "de"
	case LangItalian:
		return "it"
	case LangSpanish:
		return "es"
	case LangPolish:
		return "pl"
	case LangKorean:
		return "ko"
	case LangChineseTraditional:
		return "zh-hant"
	case LangChineseSimplified:
		return "zh-hans"
	case LangJapanese:
		return "ja"
	}
	return "invalid"
}
