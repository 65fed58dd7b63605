package i18n

import (
	"encoding/json"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLocStringAddGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.i18n")
	defer teardown()
	l := NewLocString(1)
	l.Add(LangEnglish, "test", false)
	l.Add(LangFrench, "french test", false)
	if l.Size() != 2 {
		t.Fatalf("expected 2 variants, got %d", l.Size())
	}
	if l.Get(LangEnglish, false) != "test" {
		t.Fatalf("english lookup failed")
	}
	if l.Get(LangFrench, true) != "" {
		t.Fatalf("feminine variant is a distinct axis")
	}
	if !l.Contains(LangFrench, false) || l.Contains(LangGerman, false) {
		t.Fatalf("contains misreports")
	}
	l.Add(LangEnglish, "replaced", false)
	if l.Size() != 2 || l.Get(LangEnglish, false) != "replaced" {
		t.Fatalf("add should replace in place")
	}
}

func TestLocStringJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.i18n")
	defer teardown()
	l := NewLocString(1)
	l.Add(LangEnglish, "test", false)
	l.Add(LangFrench, "french test", false)

	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// The wire carries doubled (feminine-folded) language ids.
	want := `{"strref":1,"strings":[{"lang":0,"string":"test"},{"lang":2,"string":"french test"}]}`
	if string(b) != want {
		t.Fatalf("unexpected json:\n have %s\n want %s", b, want)
	}

	var l2 LocString
	if err := json.Unmarshal(b, &l2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !l2.Equal(l) {
		t.Fatalf("json round trip changed the locstring")
	}
}

func TestLanguageEncode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.i18n")
	defer teardown()
	if Encode(LangEnglish, false) != 0 || Encode(LangEnglish, true) != 1 {
		t.Fatalf("english wire ids wrong")
	}
	if Encode(LangFrench, false) != 2 {
		t.Fatalf("french wire id wrong")
	}
	lang, fem := Decode(5)
	if lang != LangGerman || !fem {
		t.Fatalf("decode(5) = %v, %v", lang, fem)
	}
}

func TestTextEncoding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.i18n")
	defer teardown()
	// Windows-1252 round trip for a German umlaut.
	raw := EncodeText(LangGerman, "Mönch")
	if len(raw) != 5 {
		t.Fatalf("expected 5 single-byte chars, got %d", len(raw))
	}
	if DecodeText(LangGerman, raw) != "Mönch" {
		t.Fatalf("umlaut did not survive the round trip")
	}
}
