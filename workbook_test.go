package sheetarrow

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeTestXLSX(t *testing.T, withTable bool) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "name", "score"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "alice", 9.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2, "bob", 7.25}))

	if withTable {
		require.NoError(t, f.AddTable("Sheet1", &excelize.Table{
			Range: "A1:C3",
			Name:  "People",
		}))
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpenWorkbook_CSV(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "scores.csv", "id,name,score\n1,alice,9.5\n2,bob,7.25\n")

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	assert.Equal(t, []string{"scores"}, wb.SheetNames(), "CSV appears as one pseudo-sheet named after the file")

	sheet, err := wb.LoadSheet("scores")
	require.NoError(t, err)
	assert.Equal(t, 2, sheet.Height())
	assert.Equal(t, 3, sheet.Width())

	rec, err := sheet.RecordBatch()
	require.NoError(t, err)
	defer rec.Release()

	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, sheet.Schema().Field(0).Type))
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, sheet.Schema().Field(1).Type))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, sheet.Schema().Field(2).Type))
	assert.Equal(t, "alice", rec.Column(1).(*array.String).Value(0))
}

func TestOpenWorkbook_TSV(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "data.tsv", "a\tb\n1\t2\n")

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	sheet, err := wb.LoadSheet("data")
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.Height())
	assert.Equal(t, 2, sheet.Width())
}

func TestOpenWorkbook_CompressedCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scores.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("id,score\n1,9.5\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	assert.Equal(t, []string{"scores"}, wb.SheetNames(), "compression extension is stripped from the sheet name")

	sheet, err := wb.LoadSheet("scores")
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.Height())
}

func TestOpenWorkbook_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "data.txt", "whatever")

	_, err := OpenWorkbook(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpenWorkbook_XLSX(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, false)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	require.Equal(t, []string{"Sheet1"}, wb.SheetNames())

	sheet, err := wb.LoadSheetByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet.Name())
	assert.Equal(t, []string{"id", "name", "score"}, fieldNames(sheet.Schema()))
	assert.Equal(t, 2, sheet.Height())

	rec, err := sheet.RecordBatch()
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, int64(2), rec.Column(0).(*array.Int64).Value(1))
	assert.Equal(t, "bob", rec.Column(1).(*array.String).Value(1))
}

func TestWorkbook_LoadSheet_NotFound(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, false)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	_, err = wb.LoadSheet("NoSuchSheet")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = wb.LoadSheetByIndex(5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestWorkbook_LoadSheetAt(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, false)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	byName, err := wb.LoadSheetAt("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", byName.Name())

	byIndex, err := wb.LoadSheetAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", byIndex.Name())
	assert.Equal(t, fieldNames(byName.Schema()), fieldNames(byIndex.Schema()))

	_, err = wb.LoadSheetAt(3.14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float64", "error must name the rejected selector type")
}

func TestSheetReadError(t *testing.T) {
	t.Parallel()

	err := sheetReadError("Sheet9", excelize.ErrSheetNotExist{SheetName: "Sheet9"})
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Contains(t, err.Error(), `"Sheet9"`)

	underlying := errors.New("worksheet xml is corrupt")
	err = sheetReadError("Sheet1", underlying)
	assert.NotErrorIs(t, err, ErrSheetNotFound, "non-lookup failures must not masquerade as missing sheets")
	assert.ErrorIs(t, err, underlying)
}

func TestWorkbook_Tables_XLSX(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, true)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	names, err := wb.TableNames("")
	require.NoError(t, err)
	assert.Equal(t, []string{"People"}, names)

	names, err = wb.TableNames("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"People"}, names)

	table, err := wb.LoadTable("People")
	require.NoError(t, err)
	assert.Equal(t, "People", table.Name())
	assert.Equal(t, []string{"id", "name", "score"}, fieldNames(table.Schema()))
	assert.Equal(t, 2, table.Height())

	_, err = wb.LoadTable("NoSuchTable")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestWorkbook_Tables_UnsupportedContainer(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "scores.csv", "id\n1\n")

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	names, err := wb.TableNames("")
	require.Error(t, err)
	assert.Nil(t, names, "no partial result on unsupported container")
	assert.ErrorIs(t, err, ErrTablesUnsupported)
	assert.Contains(t, err.Error(), "only supported for XLSX", "error must name the limitation")

	_, err = wb.LoadTable("People")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTablesUnsupported)
}

func TestParseRangeRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     string
		r0, c0  int
		r1, c1  int
		wantErr bool
	}{
		{name: "simple range", ref: "A1:C3", r0: 0, c0: 0, r1: 2, c1: 2},
		{name: "offset range", ref: "B2:D10", r0: 1, c0: 1, r1: 9, c1: 3},
		{name: "single cell", ref: "B2", r0: 1, c0: 1, r1: 1, c1: 1},
		{name: "garbage", ref: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r0, c0, r1, c1, err := parseRangeRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{tt.r0, tt.c0, tt.r1, tt.c1}, []int{r0, c0, r1, c1})
		})
	}
}
