package twoda

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const featSheet = `2DA V2.0

   Label          FEAT  MINSTR  CostMod
0  Alertness      289   ****    1.5
1  Ambidexterity  290   15      ****
2  ArmProfHeavy   291   ****    0.5
3  ArmProfLight   292   ****    ****
4  ArmProfMed     293   ****    ****
5  "Two Weapon"   294   15      2.0
`

func TestTwoDAParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	sheet := Parse(featSheet)
	if !sheet.Valid() {
		t.Fatalf("sheet should parse")
	}
	if sheet.Rows() != 6 || sheet.Columns() != 4 {
		t.Fatalf("got %d rows, %d columns", sheet.Rows(), sheet.Columns())
	}
	if v := sheet.Str(4, 0).Or(""); v != "ArmProfMed" {
		t.Fatalf("str(4,0) = %q", v)
	}
	if v := sheet.IntByName(0, "FEAT").Or(0); v != 289 {
		t.Fatalf("int(0, FEAT) = %d", v)
	}
	if v := sheet.Str(5, 0).Or(""); v != "Two Weapon" {
		t.Fatalf("quoted cell = %q", v)
	}
	if sheet.FloatByName(0, "CostMod").Or(0) != 1.5 {
		t.Fatalf("float access failed")
	}
}

func TestTwoDAEmptyCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	sheet := Parse(featSheet)
	// **** is empty, distinct from zero.
	if sheet.IntByName(0, "MINSTR").IsSome() {
		t.Fatalf("**** must read as None")
	}
	if sheet.IntByName(1, "MINSTR").Or(-1) != 15 {
		t.Fatalf("set cell must read its value")
	}
	// Out-of-range access without a DEFAULT is None.
	if sheet.Int(100, 1).IsSome() || sheet.Int(0, 99).IsSome() {
		t.Fatalf("out of range must read as None")
	}
}

func TestTwoDADefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	sheet := Parse("2DA V2.0\nDEFAULT: 42\n L V\n0 1\n")
	if !sheet.Valid() {
		t.Fatalf("sheet should parse")
	}
	if sheet.Int(0, 0).Or(-1) != 1 {
		t.Fatalf("existing row reads its cell")
	}
	if sheet.Int(7, 0).Or(-1) != 42 {
		t.Fatalf("missing rows read the DEFAULT value")
	}
}

func TestTwoDASetOverridesType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	sheet := Parse(featSheet)
	if !sheet.Set(0, 1, 10) {
		t.Fatalf("set failed")
	}
	if sheet.Int(0, 1).Or(0) != 10 {
		t.Fatalf("int readback failed")
	}
	sheet.Set(0, 1, float32(10.0))
	if sheet.Float(0, 1).Or(0) != 10.0 {
		t.Fatalf("float readback failed")
	}
	sheet.Set(0, 1, "test")
	if sheet.Str(0, 1).Or("") != "test" {
		t.Fatalf("string readback failed")
	}
	sheet.Set(0, 1, nil)
	if sheet.Str(0, 1).IsSome() {
		t.Fatalf("nil should empty the cell")
	}
	if sheet.Set(99, 0, 1) {
		t.Fatalf("out-of-range set must fail")
	}
}

func TestTwoDARowView(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	sheet := Parse(featSheet)
	row := sheet.Row(1)
	if row.Size() != sheet.Columns() {
		t.Fatalf("row size mismatch")
	}
	a := sheet.IntByName(1, "FEAT").Or(-1)
	b := row.Int("FEAT").Or(-2)
	if a != b {
		t.Fatalf("row view disagrees with sheet access: %d vs %d", a, b)
	}
}

func TestTwoDACanonicalSerialization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	sheet := Parse(featSheet)
	out := string(sheet.Bytes())
	if !strings.HasPrefix(out, "2DA V2.0\n") {
		t.Fatalf("missing signature line")
	}
	reparsed := Parse(out)
	if !reparsed.Valid() || reparsed.Rows() != sheet.Rows() {
		t.Fatalf("canonical output must reparse")
	}
	// Stability: serializing the reparse reproduces the bytes.
	if string(reparsed.Bytes()) != out {
		t.Fatalf("canonical serialization must be a fixed point")
	}
	// Column widths: every data line aligns the second column.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	header := lines[len(lines)-7]
	if !strings.Contains(header, "Label") {
		t.Fatalf("unexpected header line %q", header)
	}
}

func TestTwoDARejectsDamage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	if Parse("").Valid() {
		t.Fatalf("empty input should be invalid")
	}
	if Parse("NOT A 2DA\nx y\n").Valid() {
		t.Fatalf("wrong signature should be invalid")
	}
	if Parse("2DA V2.0\n").Valid() {
		t.Fatalf("missing header line should be invalid")
	}
}

func TestStaticTwoDA(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.twoda")
	defer teardown()
	sheet := ParseStatic(featSheet)
	if !sheet.Valid() {
		t.Fatalf("static sheet should parse")
	}
	if sheet.Rows() != 6 || sheet.Columns() != 4 {
		t.Fatalf("got %d rows, %d columns", sheet.Rows(), sheet.Columns())
	}
	if sheet.StrByName(4, "Label").Or("") != "ArmProfMed" {
		t.Fatalf("static string access failed")
	}
	if sheet.IntByName(1, "MINSTR").Or(0) != 15 {
		t.Fatalf("static int access failed")
	}
	if sheet.IntByName(0, "MINSTR").IsSome() {
		t.Fatalf("static empty cell must read as None")
	}
	mut := Parse(featSheet)
	for row := 0; row < mut.Rows(); row++ {
		for col := 0; col < mut.Columns(); col++ {
			a, aok := mut.Str(row, col).Unwrap()
			b, bok := sheet.Str(row, col).Unwrap()
			if a != b || aok != bok {
				t.Fatalf("static and mutable disagree at (%d,%d)", row, col)
			}
		}
	}
}
