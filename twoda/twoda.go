package twoda

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const signature = "2DA V2.0"

// emptyToken marks an empty cell on disk.
const emptyToken = "****"

// TwoDA is a mutable tabular sheet.
type TwoDA struct {
	columns []string
	colIdx  map[string]int // folded column name -> index
	rows    [][]cell
	defval  string // DEFAULT: value, "" if unset
	valid   bool
}

type cell struct {
	raw   string
	empty bool
}

// Load reads a 2DA from disk. A missing or damaged file yields a sheet
// with Valid() == false.
func Load(path string) *TwoDA {
	b, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("2da: cannot read %s: %v", path, err)
		return &TwoDA{}
	}
	return Parse(string(b))
}

// Parse decodes a 2DA from text.
func Parse(text string) *TwoDA {
	t := &TwoDA{}
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
		tracer().Errorf("2da: empty column header line")
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
		// First token is the row label; the engine ignores its value.
		toks = toks[1:]
		row := make([]cell, len(t.columns))
		for c := range row {
			if c < len(toks) && toks[c] != emptyToken {
				row[c] = cell{raw: toks[c]}
			} else {
				row[c] = cell{empty: true}
			}
		}
		t.rows = append(t.rows, row)
	}
	t.valid = true
	return t
}

// Valid reports whether the sheet parsed cleanly.
func (t *TwoDA) Valid() bool {
	return t.valid
}

// Rows returns the number of data rows.
func (t *TwoDA) Rows() int {
	return len(t.rows)
}

// Columns returns the number of columns.
func (t *TwoDA) Columns() int {
	return len(t.columns)
}

// ColumnNames returns the header names in declaration order.
func (t *TwoDA) ColumnNames() []string {
	return t.columns
}

// ColumnIndex resolves a column name (case-insensitive) to its index,
// -1 when absent.
func (t *TwoDA) ColumnIndex(name string) int {
	if i, ok := t.colIdx[strings.ToLower(name)]; ok {
		return i
	}
	return -1
}

// cellAt returns the raw cell; for a missing row the DEFAULT value stands
// in when one was declared.
func (t *TwoDA) cellAt(row, col int) (cell, bool) {
	if col < 0 || col >= len(t.columns) {
		return cell{}, false
	}
	if row < 0 || row >= len(t.rows) {
		if t.defval != "" {
			return cell{raw: t.defval}, true
		}
		return cell{}, false
	}
	return t.rows[row][col], true
}

// Str returns the string value of a cell; None for empty cells and
// out-of-range access.
func (t *TwoDA) Str(row, col int) Option[string] {
	c, ok := t.cellAt(row, col)
	if !ok || c.empty {
		return None[string]()
	}
	return Some(c.raw)
}

// StrByName is Str with a column name.
func (t *TwoDA) StrByName(row int, name string) Option[string] {
	return t.Str(row, t.ColumnIndex(name))
}

// Int returns the integer value of a cell. Hex notation ("0x...") is
// accepted; unparsable content is None.
func (t *TwoDA) Int(row, col int) Option[int32] {
	c, ok := t.cellAt(row, col)
	if !ok || c.empty {
		return None[int32]()
	}
	n, err := strconv.ParseInt(c.raw, 0, 32)
	if err != nil {
		return None[int32]()
	}
	return Some(int32(n))
}

// IntByName is Int with a column name.
func (t *TwoDA) IntByName(row int, name string) Option[int32] {
	return t.Int(row, t.ColumnIndex(name))
}

// Float returns the float value of a cell.
func (t *TwoDA) Float(row, col int) Option[float32] {
	c, ok := t.cellAt(row, col)
	if !ok || c.empty {
		return None[float32]()
	}
	f, err := strconv.ParseFloat(c.raw, 32)
	if err != nil {
		return None[float32]()
	}
	return Some(float32(f))
}

// FloatByName is Float with a column name.
func (t *TwoDA) FloatByName(row int, name string) Option[float32] {
	return t.Float(row, t.ColumnIndex(name))
}

// Set writes a cell, overriding its previous content and type. Accepted
// value kinds: int, int32, float32, float64, string; nil empties the cell.
func (t *TwoDA) Set(row, col int, v any) bool {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.columns) {
		tracer().Errorf("2da: set out of range (%d, %d)", row, col)
		return false
	}
	switch x := v.(type) {
	case nil:
		t.rows[row][col] = cell{empty: true}
	case int:
		t.rows[row][col] = cell{raw: strconv.Itoa(x)}
	case int32:
		t.rows[row][col] = cell{raw: strconv.FormatInt(int64(x), 10)}
	case float32:
		t.rows[row][col] = cell{raw: formatFloat(float64(x))}
	case float64:
		t.rows[row][col] = cell{raw: formatFloat(x)}
	case string:
		t.rows[row][col] = cell{raw: x}
	default:
		tracer().Errorf("2da: set with unsupported value type %T", v)
		return false
	}
	return true
}

// SetByName is Set with a column name.
func (t *TwoDA) SetByName(row int, name string, v any) bool {
	return t.Set(row, t.ColumnIndex(name), v)
}

// AppendRow adds an empty row and returns its index.
func (t *TwoDA) AppendRow() int {
	row := make([]cell, len(t.columns))
	for i := range row {
		row[i] = cell{empty: true}
	}
	t.rows = append(t.rows, row)
	return len(t.rows) - 1
}

// Row returns a view over one row.
func (t *TwoDA) Row(i int) RowView {
	return RowView{t: t, row: i}
}

// RowView gives name-keyed access to one row of a sheet.
type RowView struct {
	t   *TwoDA
	row int
}

// Size returns the number of cells, equal to the sheet's column count.
func (r RowView) Size() int {
	return r.t.Columns()
}

// Int reads a cell of this row by column name.
func (r RowView) Int(name string) Option[int32] {
	return r.t.IntByName(r.row, name)
}

// Float reads a cell of this row by column name.
func (r RowView) Float(name string) Option[float32] {
	return r.t.FloatByName(r.row, name)
}

// Str reads a cell of this row by column name.
func (r RowView) Str(name string) Option[string] {
	return r.t.StrByName(r.row, name)
}

// Bytes serializes the sheet with canonical column widths: every column is
// padded to its widest cell plus one space.
func (t *TwoDA) Bytes() []byte {
	var sb strings.Builder
	sb.WriteString(signature)
	sb.WriteByte('\n')
	if t.defval != "" {
		sb.WriteString("DEFAULT: ")
		sb.WriteString(t.defval)
	}
	sb.WriteByte('\n')

	labelWidth := len(strconv.Itoa(max(0, len(t.rows)-1))) + 1
	widths := make([]int, len(t.columns))
	for c, name := range t.columns {
		widths[c] = len(name)
	}
	rendered := make([][]string, len(t.rows))
	for ri, row := range t.rows {
		rendered[ri] = make([]string, len(row))
		for c, cl := range row {
			s := renderCell(cl)
			rendered[ri][c] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
		}
	}
	pad(&sb, "", labelWidth)
	for c, name := range t.columns {
		last := c == len(t.columns)-1
		writePadded(&sb, name, widths[c], last)
	}
	sb.WriteByte('\n')
	for ri := range rendered {
		pad(&sb, strconv.Itoa(ri), labelWidth)
		for c := range t.columns {
			last := c == len(t.columns)-1
			writePadded(&sb, rendered[ri][c], widths[c], last)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// SaveAs writes the canonical serialization to disk.
func (t *TwoDA) SaveAs(path string) error {
	if !t.valid {
		return fmt.Errorf("2da: refusing to save invalid sheet")
	}
	return os.WriteFile(path, t.Bytes(), 0o644)
}

func renderCell(c cell) string {
	if c.empty {
		return emptyToken
	}
	if c.raw == "" || strings.ContainsAny(c.raw, " \t") {
		return `"` + c.raw + `"`
	}
	return c.raw
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func pad(sb *strings.Builder, s string, width int) {
	sb.WriteString(s)
	for i := len(s); i < width; i++ {
		sb.WriteByte(' ')
	}
}

func writePadded(sb *strings.Builder, s string, width int, last bool) {
	if last {
		sb.WriteString(s)
		return
	}
	pad(sb, s, width+1)
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// tokenize splits a 2DA line on whitespace, honoring double-quoted cells.
func tokenize(line string) []string {
	var toks []string
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		if line[i] == '"' {
			j := i + 1
			for j < len(line) && line[j] != '"' {
				j++
			}
			toks = append(toks, line[i+1:j])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		toks = append(toks, line[i:j])
		i = j
	}
	return toks
}
