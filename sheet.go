package sheetarrow

import (
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// Sheet owns one sheet's name, inferred schema, and cell grid. All three are
// supplied together at construction so they are always consistent, and the
// sheet is read-only afterwards. Height and width are memoized on first
// access; recomputation would yield the same value, so the lazy write needs
// no lock.
type Sheet struct {
	name      string
	schema    *arrow.Schema
	grid      Grid
	dataStart int
	rowLimit  int

	height *int
	width  *int
}

// NewSheet constructs a sheet with the default header convention: row 0 is
// the header, data rows start at row 1.
func NewSheet(name string, schema *arrow.Schema, grid Grid) *Sheet {
	return newSheet(name, schema, grid, 1, -1)
}

// newSheet constructs a sheet whose data rows span [dataStart, grid height),
// optionally capped at rowLimit rows (negative means no cap).
func newSheet(name string, schema *arrow.Schema, grid Grid, dataStart, rowLimit int) *Sheet {
	return &Sheet{
		name:      name,
		schema:    schema,
		grid:      grid,
		dataStart: dataStart,
		rowLimit:  rowLimit,
	}
}

// Name returns the sheet's declared name.
func (s *Sheet) Name() string { return s.name }

// Schema returns the sheet's inferred schema. Field order matches grid
// column order.
func (s *Sheet) Schema() *arrow.Schema { return s.schema }

// dataBounds returns the data row range [start, end) from the grid's actual
// bounds, never from the memoized fields.
func (s *Sheet) dataBounds() (int, int) {
	start := s.dataStart
	end := s.grid.Height()
	if s.rowLimit >= 0 && start+s.rowLimit < end {
		end = start + s.rowLimit
	}
	if end < start {
		end = start
	}
	return start, end
}

// Height returns the number of data rows, header row excluded. A grid with
// no rows at all reports 0, never a negative count. The value is computed
// once and memoized.
func (s *Sheet) Height() int {
	if s.height != nil {
		return *s.height
	}
	start, end := s.dataBounds()
	h := end - start
	s.height = &h
	return h
}

// Width returns the number of columns, memoized like Height.
func (s *Sheet) Width() int {
	if s.width != nil {
		return *s.width
	}
	w := s.schema.NumFields()
	s.width = &w
	return w
}

// buildBoolColumn materializes one boolean column over data rows
// [start, end). Cells of any other variant, and absent cells, become null.
func buildBoolColumn(mem memory.Allocator, grid Grid, col, start, end int) arrow.Array {
	b := array.NewBooleanBuilder(mem)
	defer b.Release()
	for row := start; row < end; row++ {
		if cell, ok := grid.Get(row, col); ok {
			if v, ok := cell.Bool(); ok {
				b.Append(v)
				continue
			}
		}
		b.AppendNull()
	}
	return b.NewArray()
}

func buildIntColumn(mem memory.Allocator, grid Grid, col, start, end int) arrow.Array {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	for row := start; row < end; row++ {
		if cell, ok := grid.Get(row, col); ok {
			if v, ok := cell.Int(); ok {
				b.Append(v)
				continue
			}
		}
		b.AppendNull()
	}
	return b.NewArray()
}

func buildFloatColumn(mem memory.Allocator, grid Grid, col, start, end int) arrow.Array {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	for row := start; row < end; row++ {
		if cell, ok := grid.Get(row, col); ok {
			if v, ok := cell.Float(); ok {
				b.Append(v)
				continue
			}
		}
		b.AppendNull()
	}
	return b.NewArray()
}

// buildStringColumn is type-exact like every other materializer: a numeric
// cell in a text column becomes null, not a stringified number.
func buildStringColumn(mem memory.Allocator, grid Grid, col, start, end int) arrow.Array {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	for row := start; row < end; row++ {
		if cell, ok := grid.Get(row, col); ok {
			if v, ok := cell.Text(); ok {
				b.Append(v)
				continue
			}
		}
		b.AppendNull()
	}
	return b.NewArray()
}

// buildTimestampColumn stores milliseconds since the epoch; cells without a
// valid date/time become null.
func buildTimestampColumn(mem memory.Allocator, grid Grid, col, start, end int) arrow.Array {
	b := array.NewTimestampBuilder(mem, arrow.FixedWidthTypes.Timestamp_ms.(*arrow.TimestampType))
	defer b.Release()
	for row := start; row < end; row++ {
		if cell, ok := grid.Get(row, col); ok {
			if v, ok := cell.DateTime(); ok {
				b.Append(arrow.Timestamp(v.UnixMilli()))
				continue
			}
		}
		b.AppendNull()
	}
	return b.NewArray()
}

// RecordBatch materializes every column and assembles the row-aligned record
// batch. This is the single validation point: all arrays must have equal
// length and every declared field type must have a materializer; violations
// surface as a structural error naming the sheet, and no partial batch is
// ever returned. The returned record must be released by the caller unless
// it is handed to an exporter.
func (s *Sheet) RecordBatch() (arrow.Record, error) {
	mem := memory.NewGoAllocator()
	start, end := s.dataBounds()
	rows := end - start

	cols := make([]arrow.Array, 0, s.schema.NumFields())
	releaseAll := func() {
		for _, c := range cols {
			c.Release()
		}
	}

	for i := 0; i < s.schema.NumFields(); i++ {
		field := s.schema.Field(i)
		var arr arrow.Array
		switch field.Type.ID() {
		case arrow.BOOL:
			arr = buildBoolColumn(mem, s.grid, i, start, end)
		case arrow.INT64:
			arr = buildIntColumn(mem, s.grid, i, start, end)
		case arrow.FLOAT64:
			arr = buildFloatColumn(mem, s.grid, i, start, end)
		case arrow.STRING:
			arr = buildStringColumn(mem, s.grid, i, start, end)
		case arrow.TIMESTAMP:
			arr = buildTimestampColumn(mem, s.grid, i, start, end)
		case arrow.NULL:
			// A column sampled as empty stays all-null for every row,
			// regardless of what later cells contain.
			arr = array.NewNull(rows)
		default:
			releaseAll()
			return nil, batchAssemblyError(s.name,
				fmt.Sprintf("no materializer for field %q of type %s", field.Name, field.Type))
		}
		cols = append(cols, arr)
	}

	for i, arr := range cols {
		if arr.Len() != rows {
			releaseAll()
			return nil, batchAssemblyError(s.name,
				fmt.Sprintf("column %q has %d rows, want %d", s.schema.Field(i).Name, arr.Len(), rows))
		}
	}

	rec := array.NewRecord(s.schema, cols, int64(rows))
	for _, arr := range cols {
		arr.Release()
	}
	return rec, nil
}
