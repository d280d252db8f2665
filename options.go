package sheetarrow

// loadConfig controls how a grid is turned into a sheet: where the header
// row sits (if any), optional explicit column names, and an optional cap on
// loaded data rows.
type loadConfig struct {
	headerRow   int
	hasHeader   bool
	columnNames []string
	nRows       int
}

func defaultLoadConfig() loadConfig {
	return loadConfig{headerRow: 0, hasHeader: true, nRows: -1}
}

// LoadOption configures sheet loading.
type LoadOption func(*loadConfig)

// WithHeaderRow sets the index of the row containing column labels. Data
// rows start immediately after it. The default is row 0.
func WithHeaderRow(idx int) LoadOption {
	return func(c *loadConfig) {
		c.headerRow = idx
		c.hasHeader = true
	}
}

// WithoutHeader declares that the sheet has no header row: data rows start
// at row 0 and column names are generated (column_0, column_1, ...) unless
// WithColumnNames overrides them.
func WithoutHeader() LoadOption {
	return func(c *loadConfig) {
		c.hasHeader = false
	}
}

// WithColumnNames overrides the column labels found in the document. When
// set, the header row is still skipped (unless WithoutHeader is also given)
// but its contents are ignored.
func WithColumnNames(names ...string) LoadOption {
	return func(c *loadConfig) {
		c.columnNames = names
	}
}

// WithNRows caps the number of data rows loaded into the sheet. Negative
// means all rows, which is the default.
func WithNRows(n int) LoadOption {
	return func(c *loadConfig) {
		c.nRows = n
	}
}
