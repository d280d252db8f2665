// Package sheetarrow converts spreadsheet sheets into Apache Arrow record
// batches.
//
// A sheet's untyped, grid-shaped cell data becomes a strongly-typed columnar
// batch: one Arrow type is inferred per column from a single sample row,
// ambiguous column names are deduplicated, and each column is materialized
// as a typed nullable array where cells of a non-matching variant become
// nulls. The assembled batch can be handed to a foreign runtime without
// copying through the Arrow C Data Interface, or serialized as an Arrow IPC
// stream when no shared-memory boundary exists.
//
// # Basic Usage
//
//	wb, err := sheetarrow.OpenWorkbook("report.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer wb.Close()
//
//	sheet, err := wb.LoadSheet("Sheet1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, err := sheet.RecordBatch()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rec.Release()
//
// # Type inference
//
// Only the first data row determines each column's type. Cells of a
// different variant elsewhere in the column are materialized as nulls; the
// column is never widened and never re-sampled. A column whose sample cell
// is empty becomes an all-null column. A column whose sample cell is a
// spreadsheet error value fails inference with an error naming the cell.
//
// # Containers
//
// XLSX workbooks are read through excelize; CSV and TSV files appear as
// single-sheet workbooks. Inputs may be compressed (gzip, bzip2, xz,
// zstandard, lz4), detected from the file extension. Named-table lookup is
// only available for the XLSX container family; other sources return
// ErrTablesUnsupported.
package sheetarrow
