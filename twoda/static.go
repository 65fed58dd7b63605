package twoda

import (
	"strconv"
	"strings"
)

// StaticTwoDA is a read-only sheet. Cells are substrings of the input text
// (no per-cell allocation), which makes it the right variant for hot
// lookup tables and parser benchmarks.
type StaticTwoDA struct {
	columns []string
	colIdx  map[string]int
	cells   []string // row-major; "" doubles as empty (see empties)
	empties []bool
	defval  string
	valid   bool
}

// ParseStatic decodes a read-only sheet from text. The sheet keeps
// substring views into text.
func ParseStatic(text string) *StaticTwoDA {
	t := &StaticTwoDA{}
	lines := splitLines(text)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != signature {
		tracer().Errorf("2da: missing %q signature", signature)
		return t
	}
	i := 1
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i < len(lines) {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(lines[i]), "DEFAULT:"); ok {
			t.defval = strings.TrimSpace(rest)
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
				i++
			}
		}
	}
	if i >= len(lines) {
		tracer().Errorf("2da: missing column header line")
		return t
	}
	t.columns = tokenize(lines[i])
	if len(t.columns) == 0 {
		return t
	}
	t.colIdx = make(map[string]int, len(t.columns))
	for c, name := range t.columns {
		t.colIdx[strings.ToLower(name)] = c
	}
	i++
	for ; i < len(lines); i++ {
		toks := tokenize(lines[i])
		if len(toks) == 0 {
			continue
		}
		toks = toks[1:]
		for c := 0; c < len(t.columns); c++ {
			if c < len(toks) && toks[c] != emptyToken {
				t.cells = append(t.cells, toks[c])
				t.empties = append(t.empties, false)
			} else {
				t.cells = append(t.cells, "")
				t.empties = append(t.empties, true)
			}
		}
	}
	t.valid = true
	return t
}

// Valid reports whether the sheet parsed cleanly.
func (t *StaticTwoDA) Valid() bool {
	return t.valid
}

// Rows returns the number of data rows.
func (t *StaticTwoDA) Rows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.cells) / len(t.columns)
}

// Columns returns the number of columns.
func (t *StaticTwoDA) Columns() int {
	return len(t.columns)
}

// ColumnIndex resolves a column name, -1 when absent.
func (t *StaticTwoDA) ColumnIndex(name string) int {
	if i, ok := t.colIdx[strings.ToLower(name)]; ok {
		return i
	}
	return -1
}

func (t *StaticTwoDA) cellAt(row, col int) (string, bool) {
	if col < 0 || col >= len(t.columns) {
		return "", false
	}
	if row < 0 || row >= t.Rows() {
		if t.defval != "" {
			return t.defval, true
		}
		return "", false
	}
	i := row*len(t.columns) + col
	if t.empties[i] {
		return "", false
	}
	return t.cells[i], true
}

// Str reads a cell as a string.
func (t *StaticTwoDA) Str(row, col int) Option[string] {
	s, ok := t.cellAt(row, col)
	if !ok {
		return None[string]()
	}
	return Some(s)
}

// StrByName is Str with a column name.
func (t *StaticTwoDA) StrByName(row int, name string) Option[string] {
	return t.Str(row, t.ColumnIndex(name))
}

// Int reads a cell as an integer.
func (t *StaticTwoDA) Int(row, col int) Option[int32] {
	s, ok := t.cellAt(row, col)
	if !ok {
		return None[int32]()
	}
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return None[int32]()
	}
	return Some(int32(n))
}

// IntByName is Int with a column name.
func (t *StaticTwoDA) IntByName(row int, name string) Option[int32] {
	return t.Int(row, t.ColumnIndex(name))
}

// Float reads a cell as a float.
func (t *StaticTwoDA) Float(row, col int) Option[float32] {
	s, ok := t.cellAt(row, col)
	if !ok {
		return None[float32]()
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return None[float32]()
	}
	return Some(float32(f))
}

// FloatByName is Float with a column name.
func (t *StaticTwoDA) FloatByName(row int, name string) Option[float32] {
	return t.Float(row, t.ColumnIndex(name))
}
