package sheetarrow

import (
	"github.com/apache/arrow/go/v18/arrow"
)

// aliasForName returns name, or the first of name_1, name_2, ... that does
// not collide with a field accepted earlier in the same pass. Deduplication
// is left-to-right: only already-finalized fields count as collisions.
func aliasForName(name string, fields []arrow.Field) string {
	alias := name
	for depth := 1; fieldNameTaken(alias, fields); depth++ {
		alias = name + "_" + formatInt(int64(depth))
	}
	return alias
}

func fieldNameTaken(name string, fields []arrow.Field) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// dedupeColumnNames applies the aliasing policy to a raw header, producing a
// unique ordered name list. Empty header cells yield empty-string names and
// are deduplicated like any other name.
func dedupeColumnNames(names []string) []string {
	fields := make([]arrow.Field, 0, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		alias := aliasForName(name, fields)
		fields = append(fields, arrow.Field{Name: alias})
		out = append(out, alias)
	}
	return out
}

// arrowColumnType inspects the cell at (row, col) and decides the column's
// Arrow type. The single sampled cell is the whole decision: no other row is
// consulted and no widening ever happens later. The column name is used only
// to identify the column in errors.
func arrowColumnType(grid Grid, column string, row, col int) (arrow.DataType, error) {
	cell, ok := grid.Get(row, col)
	if !ok {
		return nil, cellLookupError(row, col)
	}
	switch cell.Kind() {
	case CellInt:
		return arrow.PrimitiveTypes.Int64, nil
	case CellFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case CellText:
		return arrow.BinaryTypes.String, nil
	case CellBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case CellDateTime:
		return arrow.FixedWidthTypes.Timestamp_ms, nil
	case CellEmpty:
		return arrow.Null, nil
	case CellError:
		message, _ := cell.ErrorText()
		return nil, errorCellError(column, row, col, message)
	default:
		return nil, cellLookupError(row, col)
	}
}

// inferSchema builds the sheet schema: one nullable field per column name,
// typed from the cell sampled at sampleRow. Names are deduplicated first, so
// errors already carry the final (aliased) column name. Field order follows
// column order and the schema length always equals the grid width.
func inferSchema(grid Grid, columnNames []string, sampleRow int) (*arrow.Schema, error) {
	names := dedupeColumnNames(columnNames)
	fields := make([]arrow.Field, 0, len(names))
	for col, name := range names {
		colType, err := arrowColumnType(grid, name, sampleRow, col)
		if err != nil {
			return nil, err
		}
		fields = append(fields, arrow.Field{
			Name:     name,
			Type:     colType,
			Nullable: true,
		})
	}
	return arrow.NewSchema(fields, nil), nil
}
