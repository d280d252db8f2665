package sheetarrow

import "time"

// CellKind identifies which variant a Cell holds. The set is closed: every
// spreadsheet value the parsing layer produces is exactly one of these.
type CellKind int

const (
	// CellEmpty represents an absent or blank cell.
	CellEmpty CellKind = iota
	// CellInt represents a 64-bit integer cell.
	CellInt
	// CellFloat represents a 64-bit floating point cell.
	CellFloat
	// CellText represents a text cell.
	CellText
	// CellBool represents a boolean cell.
	CellBool
	// CellDateTime represents a date/time cell.
	CellDateTime
	// CellError represents a spreadsheet error value such as #DIV/0!.
	CellError
)

// String returns the variant name, used in error messages.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellInt:
		return "int"
	case CellFloat:
		return "float"
	case CellText:
		return "text"
	case CellBool:
		return "bool"
	case CellDateTime:
		return "datetime"
	case CellError:
		return "error"
	default:
		return "unknown"
	}
}

// Cell is one spreadsheet entry. It is an immutable tagged value: exactly one
// payload field is meaningful, selected by kind. Accessors are type-exact and
// never coerce between variants.
type Cell struct {
	kind CellKind
	i    int64
	f    float64
	s    string
	b    bool
	t    time.Time
}

// EmptyCell returns the empty-variant cell.
func EmptyCell() Cell { return Cell{kind: CellEmpty} }

// IntCell returns an integer cell.
func IntCell(v int64) Cell { return Cell{kind: CellInt, i: v} }

// FloatCell returns a float cell.
func FloatCell(v float64) Cell { return Cell{kind: CellFloat, f: v} }

// TextCell returns a text cell.
func TextCell(v string) Cell { return Cell{kind: CellText, s: v} }

// BoolCell returns a boolean cell.
func BoolCell(v bool) Cell { return Cell{kind: CellBool, b: v} }

// DateTimeCell returns a date/time cell.
func DateTimeCell(v time.Time) Cell { return Cell{kind: CellDateTime, t: v} }

// ErrorCell returns an error-variant cell carrying the spreadsheet error
// literal, e.g. "#N/A".
func ErrorCell(message string) Cell { return Cell{kind: CellError, s: message} }

// Kind returns the cell's variant tag.
func (c Cell) Kind() CellKind { return c.kind }

// Int returns the integer payload. The second value is false for any other
// variant; a float cell does not truncate to an int here.
func (c Cell) Int() (int64, bool) {
	if c.kind != CellInt {
		return 0, false
	}
	return c.i, true
}

// Float returns the float payload for float cells only.
func (c Cell) Float() (float64, bool) {
	if c.kind != CellFloat {
		return 0, false
	}
	return c.f, true
}

// Text returns the text payload for text cells only. Numeric cells do not
// stringify here.
func (c Cell) Text() (string, bool) {
	if c.kind != CellText {
		return "", false
	}
	return c.s, true
}

// Bool returns the boolean payload for boolean cells only.
func (c Cell) Bool() (bool, bool) {
	if c.kind != CellBool {
		return false, false
	}
	return c.b, true
}

// DateTime returns the time payload for date/time cells only.
func (c Cell) DateTime() (time.Time, bool) {
	if c.kind != CellDateTime {
		return time.Time{}, false
	}
	return c.t, true
}

// ErrorText returns the spreadsheet error literal for error cells only.
func (c Cell) ErrorText() (string, bool) {
	if c.kind != CellError {
		return "", false
	}
	return c.s, true
}

// headerText renders a cell as a column label. Unlike the typed accessors
// this is a display conversion: any variant becomes text, empty stays "".
func (c Cell) headerText() string {
	switch c.kind {
	case CellText, CellError:
		return c.s
	case CellInt:
		return formatInt(c.i)
	case CellFloat:
		return formatFloat(c.f)
	case CellBool:
		if c.b {
			return "TRUE"
		}
		return "FALSE"
	case CellDateTime:
		return c.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Grid is an immutable rectangular collection of cells addressed by
// (row, column), both 0-indexed. Height and width are derived from the
// backing cells, never cached here.
type Grid struct {
	cells [][]Cell
	width int
}

// NewGrid builds a grid from rows of cells. Short rows are padded with empty
// cells so every row spans the widest row's length.
func NewGrid(rows [][]Cell) Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		padded := make([]Cell, width)
		copy(padded, row)
		for j := len(row); j < width; j++ {
			padded[j] = EmptyCell()
		}
		cells[i] = padded
	}
	return Grid{cells: cells, width: width}
}

// Get returns the cell at (row, col). The second value is false when the
// coordinate lies outside the grid's bounds.
func (g Grid) Get(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.width {
		return Cell{}, false
	}
	return g.cells[row][col], true
}

// Height returns the number of rows, header row included.
func (g Grid) Height() int { return len(g.cells) }

// Width returns the number of columns.
func (g Grid) Width() int { return g.width }

// slice returns a sub-grid covering rows [r0, r1) and columns [c0, c1),
// clamped to the grid's bounds. Used for named-table extraction.
func (g Grid) slice(r0, c0, r1, c1 int) Grid {
	if r0 < 0 {
		r0 = 0
	}
	if c0 < 0 {
		c0 = 0
	}
	if r1 > len(g.cells) {
		r1 = len(g.cells)
	}
	if c1 > g.width {
		c1 = g.width
	}
	if r0 >= r1 || c0 >= c1 {
		return Grid{}
	}
	rows := make([][]Cell, 0, r1-r0)
	for r := r0; r < r1; r++ {
		row := make([]Cell, c1-c0)
		copy(row, g.cells[r][c0:c1])
		rows = append(rows, row)
	}
	return NewGrid(rows)
}
