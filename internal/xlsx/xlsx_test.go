package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/xlsx-join/internal/cell"
	"github.com/ryabkov82/xlsx-join/internal/table"
)

func writeFixture(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { require.NoError(t, f.Close()) }()

	for i, r := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		if len(r) == 0 {
			continue
		}
		require.NoError(t, f.SetSheetRow("Sheet1", ref, &r))
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReader_Types(t *testing.T) {
	f := excelize.NewFile()
	const sheet = "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "A1", "id"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "amount"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "active"))
	require.NoError(t, f.SetCellValue(sheet, "D1", "since"))
	require.NoError(t, f.SetCellValue(sheet, "E1", "code"))

	require.NoError(t, f.SetCellValue(sheet, "A2", 7))
	require.NoError(t, f.SetCellValue(sheet, "B2", 10.5))
	require.NoError(t, f.SetCellValue(sheet, "C2", true))
	require.NoError(t, f.SetCellValue(sheet, "D2", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheet, "E2", " 007 "))

	// Вторая строка пропущена: получится пустая строка сетки.
	require.NoError(t, f.SetCellValue(sheet, "B4", "tail"))

	path := filepath.Join(t.TempDir(), "types.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	grid, err := Reader{}.ReadGrid(path)
	require.NoError(t, err)
	require.Len(t, grid, 4)

	require.Equal(t, []cell.Value{
		cell.String("id"), cell.String("amount"), cell.String("active"), cell.String("since"), cell.String("code"),
	}, grid[0])

	row := grid[1]
	require.Len(t, row, 5)
	require.Equal(t, cell.Number(7), row[0])
	require.Equal(t, cell.Number(10.5), row[1])
	require.Equal(t, cell.Bool(true), row[2])
	require.Equal(t, cell.KindDate, row[3].Kind())
	require.Equal(t, "2024-03-05", row[3].String())
	require.Equal(t, cell.String(" 007 "), row[4])

	require.Empty(t, grid[2])
	require.Equal(t, []cell.Value{cell.Absent(), cell.String("tail")}, grid[3])
}

func TestReader_NotFound(t *testing.T) {
	_, err := Reader{}.ReadGrid(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
}

func TestWriter_RoundTrip(t *testing.T) {
	day := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "name", "price", "paid", "due"}
	rows := []*table.Row{
		table.NewRow(
			table.F("id", cell.String(" 7 ")),
			table.F("name", cell.String("Ann")),
			table.F("price", cell.Number(10.25)),
			table.F("paid", cell.Bool(false)),
			table.F("due", cell.Date(day)),
		),
		table.NewRow(
			table.F("id", cell.String("8")),
			table.F("name", cell.Absent()),
		),
	}

	out := filepath.Join(t.TempDir(), "result.xlsx")
	w := &Writer{}
	files, err := w.Write(out, columns, rows)
	require.NoError(t, err)
	require.Equal(t, []string{out}, files)

	grid, err := Reader{}.ReadGrid(out)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	require.Equal(t, []cell.Value{
		cell.String("id"), cell.String("name"), cell.String("price"), cell.String("paid"), cell.String("due"),
	}, grid[0])
	require.Equal(t, cell.String(" 7 "), grid[1][0])
	require.Equal(t, cell.Number(10.25), grid[1][2])
	require.Equal(t, cell.Bool(false), grid[1][3])
	require.Equal(t, "2023-12-31", grid[1][4].String())
	require.Equal(t, []cell.Value{cell.String("8")}, grid[2])

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.Equal(t, []string{DefaultSheet}, f.GetSheetList())
}

func TestWriter_Parts(t *testing.T) {
	var rows []*table.Row
	for i := 0; i < 5; i++ {
		rows = append(rows, table.NewRow(table.F("n", cell.Number(float64(i)))))
	}
	dir := t.TempDir()
	w := &Writer{Sheet: "data", MaxRowPerFile: 2}
	files, err := w.Write(filepath.Join(dir, "out.xlsx"), []string{"n"}, rows)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "out_part1.xlsx"),
		filepath.Join(dir, "out_part2.xlsx"),
		filepath.Join(dir, "out_part3.xlsx"),
	}, files)

	grid, err := Reader{}.ReadGrid(files[2])
	require.NoError(t, err)
	require.Equal(t, table.Grid{
		{cell.String("n")},
		{cell.Number(4)},
	}, grid)
}

func TestWriter_EmptyResult(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.xlsx")
	files, err := (&Writer{}).Write(out, []string{"a", "b"}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{out}, files)

	grid, err := Reader{}.ReadGrid(out)
	require.NoError(t, err)
	require.Equal(t, table.Grid{{cell.String("a"), cell.String("b")}}, grid)
}

func TestFixtureHelper(t *testing.T) {
	path := writeFixture(t, "f.xlsx", [][]interface{}{
		{"a", "b"},
		{},
		{1, "x"},
	})
	grid, err := Reader{}.ReadGrid(path)
	require.NoError(t, err)
	require.Equal(t, table.Grid{
		{cell.String("a"), cell.String("b")},
		{},
		{cell.Number(1), cell.String("x")},
	}, grid)
}

func TestIsDateCustomFormat(t *testing.T) {
	for format, want := range map[string]bool{
		"yyyy-mm-dd":          true,
		"dd.mm.yyyy hh:mm":    true,
		`[$-409]mmm d, yyyy`:  true,
		"0.00":                false,
		"#,##0":               false,
		`"days" 0`:            false,
		"@":                   false,
		"General":             false,
		`0.00 "yd"`:           false,
		"[h]:mm:ss":           true,
		`[Red]0.00;[Blue]0.0`: false,
	} {
		require.Equal(t, want, isDateCustomFormat(format), format)
	}
	require.True(t, isDateFormat(14))
	require.False(t, isDateFormat(2))
}

func TestStylesCell_Dates(t *testing.T) {
	st := styles{header: 1, date: 2, time: 3}
	for _, tt := range []struct {
		Name  string
		Value time.Time
		Style int
	}{
		{"Day", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 2},
		{"Time", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), 3},
		{"SubSecond", time.Date(2024, 3, 5, 0, 0, 0, 500_000_000, time.UTC), 3},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			v := cell.Date(tt.Value)
			got, ok := st.cell(v).(excelize.Cell)
			require.True(t, ok)
			require.Equal(t, tt.Style, got.StyleID)
			require.Equal(t, tt.Style == st.time, len(v.String()) > len("2006-01-02"))
		})
	}
	require.Nil(t, st.cell(cell.Absent()))
}
