package sheetarrow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		kind CellKind
	}{
		{name: "empty string", raw: "", kind: CellEmpty},
		{name: "whitespace only", raw: "   ", kind: CellEmpty},
		{name: "integer", raw: "42", kind: CellInt},
		{name: "negative integer", raw: "-7", kind: CellInt},
		{name: "signed integer", raw: "+3", kind: CellInt},
		{name: "float", raw: "2.5", kind: CellFloat},
		{name: "scientific float", raw: "1.5e3", kind: CellFloat},
		{name: "uppercase true", raw: "TRUE", kind: CellBool},
		{name: "lowercase false", raw: "false", kind: CellBool},
		{name: "iso date", raw: "2024-03-15", kind: CellDateTime},
		{name: "iso datetime", raw: "2024-03-15 10:30:00", kind: CellDateTime},
		{name: "rfc3339", raw: "2024-03-15T10:30:00Z", kind: CellDateTime},
		{name: "us date", raw: "3/15/2024", kind: CellDateTime},
		{name: "division error", raw: "#DIV/0!", kind: CellError},
		{name: "na error", raw: "#N/A", kind: CellError},
		{name: "ref error", raw: "#REF!", kind: CellError},
		{name: "plain text", raw: "hello", kind: CellText},
		{name: "text with digits", raw: "order 66", kind: CellText},
		{name: "hash but not an error literal", raw: "#hashtag", kind: CellText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cell := classifyCell(tt.raw)
			assert.Equal(t, tt.kind, cell.Kind(), "classifyCell(%q) variant mismatch", tt.raw)
		})
	}
}

func TestClassifyCell_Payloads(t *testing.T) {
	t.Parallel()

	v, ok := classifyCell("42").Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), v)

	f, ok := classifyCell("2.5").Float()
	require.True(t, ok)
	assert.InDelta(t, 2.5, f, 0)

	b, ok := classifyCell("TRUE").Bool()
	require.True(t, ok)
	assert.True(t, b)

	dt, ok := classifyCell("2024-03-15T10:30:00Z").DateTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC).UnixMilli(), dt.UnixMilli())

	// Text cells keep the raw value, untrimmed.
	s, ok := classifyCell(" hello ").Text()
	require.True(t, ok)
	assert.Equal(t, " hello ", s)
}

func TestParseDatetime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "iso date",
			value: "2024-03-15",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "iso datetime with space",
			value: "2024-03-15 10:30:00",
			want:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "european date",
			value: "15.3.2024",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{name: "not a datetime", value: "hello world", ok: false},
		{name: "too short", value: "1:2", ok: false},
		{name: "digits only", value: "20240315", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseDatetime(tt.value)
			assert.Equal(t, tt.ok, ok, "parseDatetime(%q) success mismatch", tt.value)
			if tt.ok {
				assert.Equal(t, tt.want.UnixMilli(), got.UnixMilli(), "parsed time mismatch")
			}
		})
	}
}

func TestGridFromRows(t *testing.T) {
	t.Parallel()

	grid := gridFromRows([][]string{
		{"id", "name", "score"},
		{"1", "alice", "9.5"},
		{"2", "bob", ""},
	})

	assert.Equal(t, 3, grid.Height())
	assert.Equal(t, 3, grid.Width())

	cell, ok := grid.Get(1, 0)
	require.True(t, ok)
	assert.Equal(t, CellInt, cell.Kind())

	cell, ok = grid.Get(2, 2)
	require.True(t, ok)
	assert.Equal(t, CellEmpty, cell.Kind())
}
