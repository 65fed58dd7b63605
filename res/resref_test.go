package res

import (
	"encoding/json"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestResrefFolding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	r := MakeResref("NW_Chicken")
	if r.String() != "nw_chicken" {
		t.Fatalf("expected folded resref, got %q", r.String())
	}
	if r != MakeResref("nw_chicken") {
		t.Fatalf("folded resrefs should compare equal")
	}
	if !r.Eq("NW_CHICKEN") {
		t.Fatalf("Eq should fold its argument")
	}
	if r.Length() != 10 {
		t.Fatalf("expected length 10, got %d", r.Length())
	}
}

func TestResrefTruncation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	r := MakeResref("a_very_long_resource_name")
	if r.Length() != ResrefMaxSize {
		t.Fatalf("expected truncation to %d, got %d", ResrefMaxSize, r.Length())
	}
	if !MakeResref("").Empty() {
		t.Fatalf("empty string should make an empty resref")
	}
}

func TestTypeConversion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	if TypeFromExtension("2da") != TwoDA {
		t.Fatalf("2da should map to TwoDA")
	}
	if TypeFromExtension(".2da") != TwoDA {
		t.Fatalf("leading dot should be tolerated")
	}
	if TypeFromExtension("xxx") != Invalid {
		t.Fatalf("unknown extension should map to Invalid")
	}
	if TwoDA.Extension() != "2da" {
		t.Fatalf("TwoDA should map back to 2da")
	}
}

func TestResourceFromPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	r, err := ResourceFromPath("some/dir/NW_Chicken.UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Filename() != "nw_chicken.utc" {
		t.Fatalf("unexpected filename %q", r.Filename())
	}
	if _, err := ResourceFromPath("foo.xyzzy"); err == nil {
		t.Fatalf("unknown extension should fail")
	}
	if _, err := ResourceFromPath("this_name_is_way_too_long_for_a_resref.utc"); err == nil {
		t.Fatalf("overlong stem should fail")
	}
	if _, err := ResourceFromPath("noextension"); err == nil {
		t.Fatalf("missing extension should fail")
	}
}

func TestResourceJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	r := MakeResource("test", TwoDA)
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"test.2da"` {
		t.Fatalf("unexpected json %s", b)
	}
	var r2 Resource
	if err := json.Unmarshal(b, &r2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r2 != r {
		t.Fatalf("json round trip changed the resource")
	}
}
