package sheetarrow

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Supported container file extensions
const (
	extXLSX = ".xlsx"
	extCSV  = ".csv"
	extTSV  = ".tsv"
)

// documentSource is the spreadsheet-parsing collaborator: it delivers sheet
// names and typed cell grids, and nothing else. The core never reads file
// bytes itself.
type documentSource interface {
	sheetNames() []string
	sheetGrid(name string) (Grid, error)
	close() error
}

// tableSource is the optional named-table capability. Only sources backed by
// the XLSX container family implement it; the workbook checks for it before
// any table operation and fails fast when it is absent.
type tableSource interface {
	tableNames(sheet string) ([]string, error)
	tableGrid(name string) (Grid, error)
}

// Workbook is an open spreadsheet document. It owns its source and must be
// closed after use.
type Workbook struct {
	path string
	src  documentSource
}

// OpenWorkbook opens a spreadsheet file and prepares its sheets for loading.
// XLSX, CSV, and TSV containers are supported, optionally wrapped in gzip,
// bzip2, xz, zstandard, or lz4 compression detected from the file extension.
func OpenWorkbook(path string) (*Workbook, error) {
	factory := NewCompressionFactory()
	base := factory.RemoveCompressionExtension(path)

	var src documentSource
	switch strings.ToLower(filepath.Ext(base)) {
	case extXLSX:
		xlsxFile, err := openXLSX(path, factory)
		if err != nil {
			return nil, err
		}
		src = &xlsxSource{file: xlsxFile}
	case extCSV:
		grid, err := readDelimited(path, factory, ',')
		if err != nil {
			return nil, err
		}
		src = &delimitedSource{name: sheetNameFromPath(path), grid: grid}
	case extTSV:
		grid, err := readDelimited(path, factory, '\t')
		if err != nil {
			return nil, err
		}
		src = &delimitedSource{name: sheetNameFromPath(path), grid: grid}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	return &Workbook{path: path, src: src}, nil
}

// openXLSX opens an XLSX file directly, or through the decompression layer
// when the path carries a compression extension. Excelize needs random
// access, so compressed input is buffered in memory first.
func openXLSX(path string, factory *CompressionFactory) (*excelize.File, error) {
	if factory.DetectCompressionType(path) == CompressionNone {
		return excelize.OpenFile(path)
	}

	reader, cleanup, err := factory.CreateReaderForFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return excelize.OpenReader(bytes.NewReader(data))
}

// readDelimited reads a whole CSV or TSV file into a typed grid.
func readDelimited(path string, factory *CompressionFactory, comma rune) (Grid, error) {
	reader, cleanup, err := factory.CreateReaderForFile(path)
	if err != nil {
		return Grid{}, err
	}
	defer func() {
		_ = cleanup()
	}()

	r := csv.NewReader(reader)
	r.Comma = comma
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return Grid{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return gridFromRows(rows), nil
}

// sheetNameFromPath derives the pseudo-sheet name for single-sheet sources
// from the file path, stripping compression and container extensions.
func sheetNameFromPath(path string) string {
	fileName := filepath.Base(path)
	fileName = NewCompressionFactory().RemoveCompressionExtension(fileName)
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// SheetNames returns the workbook's sheet names in document order.
func (w *Workbook) SheetNames() []string {
	return w.src.sheetNames()
}

// LoadSheet loads the named sheet, infers its schema, and returns the sheet
// facade.
func (w *Workbook) LoadSheet(name string, opts ...LoadOption) (*Sheet, error) {
	grid, err := w.src.sheetGrid(name)
	if err != nil {
		return nil, err
	}
	return LoadGrid(name, grid, opts...)
}

// LoadSheetByIndex loads the sheet at the given 0-based index.
func (w *Workbook) LoadSheetByIndex(idx int, opts ...LoadOption) (*Sheet, error) {
	names := w.src.sheetNames()
	if idx < 0 || idx >= len(names) {
		return nil, fmt.Errorf("%w: index %d out of range (%d sheets)", ErrSheetNotFound, idx, len(names))
	}
	return w.LoadSheet(names[idx], opts...)
}

// LoadSheetAt loads a sheet selected either by name or by 0-based index: a
// string selector behaves like LoadSheet, an int selector like
// LoadSheetByIndex. Any other selector type is rejected.
func (w *Workbook) LoadSheetAt(selector any, opts ...LoadOption) (*Sheet, error) {
	switch v := selector.(type) {
	case string:
		return w.LoadSheet(v, opts...)
	case int:
		return w.LoadSheetByIndex(v, opts...)
	default:
		return nil, fmt.Errorf("sheetarrow: sheet selector must be a string name or int index, got %T", selector)
	}
}

// TableNames lists named tables. With a sheet name it lists only that
// sheet's tables; with "" it lists every table in the workbook. Sources
// without named-table support fail with ErrTablesUnsupported.
func (w *Workbook) TableNames(sheet string) ([]string, error) {
	ts, ok := w.src.(tableSource)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTablesUnsupported, w.path)
	}
	return ts.tableNames(sheet)
}

// LoadTable resolves a named table's cell range and loads it as a sheet.
// Only available on sources with named-table support.
func (w *Workbook) LoadTable(name string, opts ...LoadOption) (*Sheet, error) {
	ts, ok := w.src.(tableSource)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTablesUnsupported, w.path)
	}
	grid, err := ts.tableGrid(name)
	if err != nil {
		return nil, err
	}
	return LoadGrid(name, grid, opts...)
}

// Close releases the underlying document source.
func (w *Workbook) Close() error {
	return w.src.close()
}

// LoadGrid runs the core pipeline on one grid: column naming, schema
// inference from the first data row, sheet construction. Materialization is
// deferred until the sheet's record batch is requested. Callers with their
// own grid source can use it directly without opening a file.
func LoadGrid(name string, grid Grid, opts ...LoadOption) (*Sheet, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	dataStart := 0
	if cfg.hasHeader {
		dataStart = cfg.headerRow + 1
	}

	names := cfg.columnNames
	if names != nil && len(names) != grid.Width() {
		return nil, fmt.Errorf("%w: sheet %q: %d names for %d columns",
			ErrColumnCount, name, len(names), grid.Width())
	}
	if names == nil {
		names = make([]string, 0, grid.Width())
		for col := 0; col < grid.Width(); col++ {
			if cfg.hasHeader {
				cell, _ := grid.Get(cfg.headerRow, col)
				names = append(names, cell.headerText())
			} else {
				names = append(names, "column_"+formatInt(int64(col)))
			}
		}
	}

	schema, err := inferSchema(grid, names, dataStart)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	return newSheet(name, schema, grid, dataStart, cfg.nRows), nil
}

// xlsxSource adapts an excelize workbook to the documentSource and
// tableSource interfaces. XLSX is the one container family with named-table
// support.
type xlsxSource struct {
	file *excelize.File
}

func (s *xlsxSource) sheetNames() []string {
	return s.file.GetSheetList()
}

func (s *xlsxSource) sheetGrid(name string) (Grid, error) {
	rows, err := s.file.GetRows(name)
	if err != nil {
		return Grid{}, sheetReadError(name, err)
	}
	return gridFromRows(rows), nil
}

func (s *xlsxSource) close() error {
	return s.file.Close()
}

// sheetReadError maps excelize's missing-sheet failure to ErrSheetNotFound.
// Any other read failure keeps its original error chain so callers do not
// mistake a corrupt worksheet for an absent one.
func sheetReadError(name string, err error) error {
	var notExist excelize.ErrSheetNotExist
	if errors.As(err, &notExist) {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return fmt.Errorf("failed to read sheet %q: %w", name, err)
}

func (s *xlsxSource) tableNames(sheet string) ([]string, error) {
	sheets := s.file.GetSheetList()
	if sheet != "" {
		sheets = []string{sheet}
	}
	var names []string
	for _, sn := range sheets {
		tables, err := s.file.GetTables(sn)
		if err != nil {
			return nil, sheetReadError(sn, err)
		}
		for _, t := range tables {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

func (s *xlsxSource) tableGrid(name string) (Grid, error) {
	for _, sn := range s.file.GetSheetList() {
		tables, err := s.file.GetTables(sn)
		if err != nil {
			return Grid{}, sheetReadError(sn, err)
		}
		for _, t := range tables {
			if t.Name != name {
				continue
			}
			r0, c0, r1, c1, err := parseRangeRef(t.Range)
			if err != nil {
				return Grid{}, fmt.Errorf("table %q: %w", name, err)
			}
			grid, err := s.sheetGrid(sn)
			if err != nil {
				return Grid{}, err
			}
			return grid.slice(r0, c0, r1+1, c1+1), nil
		}
	}
	return Grid{}, fmt.Errorf("%w: %q", ErrTableNotFound, name)
}

// parseRangeRef converts an A1-style range reference like "B2:D10" into
// 0-based inclusive (row, col) corners.
func parseRangeRef(ref string) (r0, c0, r1, c1 int, err error) {
	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range reference %q", ref)
	}
	col0, row0, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range reference %q: %w", ref, err)
	}
	col1, row1, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range reference %q: %w", ref, err)
	}
	return row0 - 1, col0 - 1, row1 - 1, col1 - 1, nil
}

// delimitedSource presents a CSV or TSV file as a single pseudo-sheet named
// after the file. It has no named-table capability.
type delimitedSource struct {
	name string
	grid Grid
}

func (s *delimitedSource) sheetNames() []string {
	return []string{s.name}
}

func (s *delimitedSource) sheetGrid(name string) (Grid, error) {
	if name != s.name {
		return Grid{}, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return s.grid, nil
}

func (s *delimitedSource) close() error {
	return nil
}
