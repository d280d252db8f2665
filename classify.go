package sheetarrow

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Excel error literals. A raw value matching one of these classifies as an
// error-variant cell.
var excelErrorLiterals = map[string]struct{}{
	"#NULL!":        {},
	"#DIV/0!":       {},
	"#VALUE!":       {},
	"#REF!":         {},
	"#NAME?":        {},
	"#NUM!":         {},
	"#N/A":          {},
	"#GETTING_DATA": {},
	"#SPILL!":       {},
	"#CALC!":        {},
}

// datetimePattern pairs a pre-compiled shape check with the layouts that can
// parse values of that shape.
type datetimePattern struct {
	pattern *regexp.Regexp
	formats []string
}

// Cached datetime patterns, most common first for early termination.
var cachedDatetimePatterns = []datetimePattern{
	// ISO8601 with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000"},
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	// ISO8601 date only
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}( (AM|PM))?$`),
		[]string{"1/2/2006 15:04:05", "1/2/2006 3:04:05 PM", "01/02/2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006", "01/02/2006"},
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4} \d{1,2}:\d{2}:\d{2}$`),
		[]string{"2.1.2006 15:04:05", "02.01.2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
	},
}

// Length bounds for the quick datetime pre-filter.
const (
	minDatetimeLength = 8
	maxDatetimeLength = 35
)

// parseDatetime reports whether a string value is a datetime, returning the
// parsed time on success. Quick length and character checks run before any
// regex to keep the common non-datetime case cheap.
func parseDatetime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if len(value) < minDatetimeLength || len(value) > maxDatetimeLength {
		return time.Time{}, false
	}

	hasDigit := false
	hasSeparator := false
	for _, r := range value {
		if r >= '0' && r <= '9' {
			hasDigit = true
		} else if r == '-' || r == '/' || r == '.' || r == ':' || r == 'T' || r == ' ' {
			hasSeparator = true
		}
		if hasDigit && hasSeparator {
			break
		}
	}
	if !hasDigit || !hasSeparator {
		return time.Time{}, false
	}

	for _, dp := range cachedDatetimePatterns {
		if dp.pattern.MatchString(value) {
			for _, format := range dp.formats {
				if t, err := time.Parse(format, value); err == nil {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}

// isInteger checks if a value is an integer with optimized parsing.
func isInteger(value string) (int64, bool) {
	if len(value) == 0 {
		return 0, false
	}
	first := value[0]
	if first != '+' && first != '-' && (first < '0' || first > '9') {
		return 0, false
	}
	v, err := strconv.ParseInt(value, 10, 64)
	return v, err == nil
}

// isFloat checks if a value is a float with optimized parsing.
func isFloat(value string) (float64, bool) {
	hasDigit := false
	for _, r := range value {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(value, 64)
	return v, err == nil
}

// classifyCell converts one raw spreadsheet value into its cell variant.
// Excelize and the CSV reader both deliver strings; the variant decision is
// made once here so the core only ever sees typed cells.
func classifyCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptyCell()
	}
	if _, ok := excelErrorLiterals[trimmed]; ok {
		return ErrorCell(trimmed)
	}
	switch trimmed {
	case "TRUE", "true", "True":
		return BoolCell(true)
	case "FALSE", "false", "False":
		return BoolCell(false)
	}
	if v, ok := isInteger(trimmed); ok {
		return IntCell(v)
	}
	if v, ok := isFloat(trimmed); ok {
		return FloatCell(v)
	}
	if t, ok := parseDatetime(trimmed); ok {
		return DateTimeCell(t)
	}
	return TextCell(raw)
}

// gridFromRows classifies raw rows into a rectangular grid of typed cells.
func gridFromRows(rows [][]string) Grid {
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		cellRow := make([]Cell, len(row))
		for j, raw := range row {
			cellRow[j] = classifyCell(raw)
		}
		cells[i] = cellRow
	}
	return NewGrid(cells)
}

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
