package sheetarrow

import (
	"errors"
	"fmt"
)

// Standard error values for the package. Callers match them with errors.Is;
// wrapped messages carry the sheet name and cell coordinates where applicable.
var (
	// ErrCellLookup indicates a cell coordinate outside the grid's bounds.
	ErrCellLookup = errors.New("sheetarrow: cannot retrieve cell data")

	// ErrErrorCell indicates that a sampled cell holds a spreadsheet error
	// value, so no column type can be inferred from it.
	ErrErrorCell = errors.New("sheetarrow: error cell encountered")

	// ErrBatchAssembly indicates that record batch assembly failed because
	// column arrays diverged in length or a field declared an element type
	// no materializer can produce.
	ErrBatchAssembly = errors.New("sheetarrow: record batch assembly failed")

	// ErrTablesUnsupported indicates a named-table operation on a source
	// whose container format has no named-table support.
	ErrTablesUnsupported = errors.New("sheetarrow: named tables are only supported for XLSX files")

	// ErrSheetNotFound indicates that no sheet with the requested name or
	// index exists in the workbook.
	ErrSheetNotFound = errors.New("sheetarrow: sheet not found")

	// ErrTableNotFound indicates that no named table with the requested
	// name exists in the workbook.
	ErrTableNotFound = errors.New("sheetarrow: table not found")

	// ErrColumnCount indicates that an explicit column name list does not
	// match the grid width, which would break row/schema alignment.
	ErrColumnCount = errors.New("sheetarrow: column name count does not match grid width")

	// ErrUnsupportedFormat indicates an unsupported container file format.
	ErrUnsupportedFormat = errors.New("sheetarrow: unsupported file format")

	// ErrExport indicates that moving a record batch across the runtime
	// boundary failed.
	ErrExport = errors.New("sheetarrow: record batch export failed")
)

// cellLookupError reports an out-of-bounds coordinate.
func cellLookupError(row, col int) error {
	return fmt.Errorf("%w at (%d, %d)", ErrCellLookup, row, col)
}

// errorCellError reports an error-variant cell hit during schema inference.
func errorCellError(column string, row, col int, message string) error {
	return fmt.Errorf("%w: column %q at (%d, %d): %s", ErrErrorCell, column, row, col, message)
}

// batchAssemblyError reports a structural failure while assembling the batch
// for the named sheet.
func batchAssemblyError(sheet, detail string) error {
	return fmt.Errorf("%w: sheet %q: %s", ErrBatchAssembly, sheet, detail)
}
