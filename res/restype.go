package res

import "strings"

// Type is a resource type identifier. The numeric values are the ones the
// legacy engine uses in ERF key tables and KEY indexes, so they go over the
// wire unchanged.
type Type uint16

// Invalid marks an unknown or unmappable resource type.
const Invalid Type = 0xFFFF

// Resource types appearing in ERF/KEY containers. The list follows the
// legacy numbering; gaps are types this toolkit never touches.
const (
	RES   Type = 0
	BMP   Type = 1
	MVE   Type = 2
	TGA   Type = 3
	WAV   Type = 4
	PLT   Type = 6
	INI   Type = 7
	TXT   Type = 10
	MDL   Type = 2002
	NSS   Type = 2009
	NCS   Type = 2010
	MOD   Type = 2011
	ARE   Type = 2012
	SET   Type = 2013
	IFO   Type = 2014
	BIC   Type = 2015
	WOK   Type = 2016
	TwoDA Type = 2017
	TLK   Type = 2018
	TXI   Type = 2022
	GIT   Type = 2023
	UTI   Type = 2025
	UTC   Type = 2027
	DLG   Type = 2029
	ITP   Type = 2030
	UTT   Type = 2032
	DDS   Type = 2033
	UTS   Type = 2035
	LTR   Type = 2036
	GFF   Type = 2037
	FAC   Type = 2038
	UTE   Type = 2040
	UTD   Type = 2042
	UTP   Type = 2044
	DFT   Type = 2045
	GIC   Type = 2046
	GUI   Type = 2047
	UTM   Type = 2051
	DWK   Type = 2052
	PWK   Type = 2053
	UTG   Type = 2055
	JRL   Type = 2056
	SAV   Type = 2057
	UTW   Type = 2058
	SSF   Type = 2060
	HAK   Type = 2061
	NWM   Type = 2062
	BIF   Type = 2063
	KEY   Type = 2064
	PNG   Type = 2065
	JSON  Type = 2066
)

var typeToExt = map[Type]string{
	RES: "res", BMP: "bmp", MVE: "mve", TGA: "tga", WAV: "wav", PLT: "plt",
	INI: "ini", TXT: "txt", MDL: "mdl", NSS: "nss", NCS: "ncs", MOD: "mod",
	ARE: "are", SET: "set", IFO: "ifo", BIC: "bic", WOK: "wok",
	TwoDA: "2da", TLK: "tlk", TXI: "txi", GIT: "git", UTI: "uti",
	UTC: "utc", DLG: "dlg", ITP: "itp", UTT: "utt", DDS: "dds", UTS: "uts",
	LTR: "ltr", GFF: "gff", FAC: "fac", UTE: "ute", UTD: "utd", UTP: "utp",
	DFT: "dft", GIC: "gic", GUI: "gui", UTM: "utm", DWK: "dwk", PWK: "pwk",
	UTG: "utg", JRL: "jrl", SAV: "sav", UTW: "utw", SSF: "ssf", HAK: "hak",
	NWM: "nwm", BIF: "bif", KEY: "key", PNG: "png", JSON: "json",
}

var extToType = func() map[string]Type {
	m := make(map[string]Type, len(typeToExt))
	for t, ext := range typeToExt {
		m[ext] = t
	}
	return m
}()

// TypeFromExtension maps a file extension to a resource type. A leading dot
// is tolerated; case is folded. Unknown extensions map to Invalid.
func TypeFromExtension(ext string) Type {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if t, ok := extToType[ext]; ok {
		return t
	}
	return Invalid
}

// Extension returns the file extension for a resource type, or "" for
// unknown types.
func (t Type) Extension() string {
	return typeToExt[t]
}

// Valid reports whether the type maps to a known extension.
func (t Type) Valid() bool {
	_, ok := typeToExt[t]
	return ok
}

func (t Type) String() string {
	if ext, ok := typeToExt[t]; ok {
		return ext
	}
	return "invalid"
}
