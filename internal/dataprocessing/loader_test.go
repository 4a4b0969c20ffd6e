package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "cricketcli/internal/errors"
)

const sampleCSV = `,Name,Country,Date_Of_Birth,Test,ODI,T20
0,Sachin Tendulkar,India,1973-04-24,200,463,1
1,Ricky Ponting,,1974-12-19,168,375,17
2,Jacques Kallis,South Africa,1975-10-16,166,328,25
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_DropsIncompleteRows(t *testing.T) {
	path := writeFile(t, "cricketers.csv", sampleCSV)

	result, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.DroppedRows)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, "Sachin Tendulkar", first.Name)
	assert.Equal(t, "India", first.Country)
	assert.Equal(t, time.Date(1973, 4, 24, 0, 0, 0, 0, time.UTC), first.DateOfBirth)
	assert.Equal(t, 200, first.Test)
	assert.Equal(t, 463, first.ODI)
	assert.Equal(t, 1, first.T20)

	assert.Equal(t, 2, result.Records[1].Row, "row keeps its input position")
	assert.Equal(t, "utf-8", result.Encoding)
}

func TestLoadFile_NoRecordHasMissingFields(t *testing.T) {
	content := `Unnamed: 0,Name,Country,Date_Of_Birth,Test,ODI,T20
0,A,India,1990-01-01,1,2,3
1,B,NaN,1990-01-01,1,2,3
2,C,England,1990-01-01,NA,2,3
3,D,England,null,1,2,3
4,E,Australia,1991-02-03,4,5
5,F,Australia,1991-02-03,4,5,6
6,,Australia,1991-02-03,4,5,6
`
	result, err := LoadFile(writeFile(t, "in.csv", content))
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "A", result.Records[0].Name)
	assert.Equal(t, "F", result.Records[1].Name)
	assert.Equal(t, 5, result.DroppedRows)

	for _, r := range result.Records {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Country)
		assert.False(t, r.DateOfBirth.IsZero())
	}
}

func TestLoadFile_ExtraColumnsAlsoCountTowardsMissing(t *testing.T) {
	content := `,Name,Country,Date_Of_Birth,Test,ODI,T20,Role
0,A,India,1990-01-01,1,2,3,Batter
1,B,India,1990-01-01,1,2,3,
`
	result, err := LoadFile(writeFile(t, "in.csv", content))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "A", result.Records[0].Name)
}

func TestLoadFile_WithoutIndexColumn(t *testing.T) {
	content := "Name,Country,Date_Of_Birth,Test,ODI,T20\nA,India,1990-01-01,1,2,3\n"
	result, err := LoadFile(writeFile(t, "in.csv", content))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "A", result.Records[0].Name)
}

func TestLoadFile_HeaderOnly(t *testing.T) {
	result, err := LoadFile(writeFile(t, "in.csv", ",Name,Country,Date_Of_Birth,Test,ODI,T20\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.TotalRows)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		missing  bool
		wantType apperrors.ErrorType
	}{
		{
			name:     "file does not exist",
			missing:  true,
			wantType: apperrors.ErrTypeInput,
		},
		{
			name:     "empty file",
			content:  "",
			wantType: apperrors.ErrTypeParsing,
		},
		{
			name:     "missing required column",
			content:  ",Name,Country,Test,ODI,T20\n0,A,India,1,2,3\n",
			wantType: apperrors.ErrTypeInput,
		},
		{
			name:     "unparsable date",
			content:  ",Name,Country,Date_Of_Birth,Test,ODI,T20\n0,A,India,yesterday,1,2,3\n",
			wantType: apperrors.ErrTypeParsing,
		},
		{
			name:     "non integer count",
			content:  ",Name,Country,Date_Of_Birth,Test,ODI,T20\n0,A,India,1990-01-01,1.5,2,3\n",
			wantType: apperrors.ErrTypeParsing,
		},
		{
			name:     "negative count",
			content:  ",Name,Country,Date_Of_Birth,Test,ODI,T20\n0,A,India,1990-01-01,-1,2,3\n",
			wantType: apperrors.ErrTypeParsing,
		},
		{
			name:     "malformed quoting",
			content:  ",Name,Country,Date_Of_Birth,Test,ODI,T20\n0,\"A,India,1990-01-01,1,2,3\n",
			wantType: apperrors.ErrTypeParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.csv")
			if !tt.missing {
				path = writeFile(t, "in.csv", tt.content)
			}

			result, err := LoadFile(path)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestLoadFile_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cricketers.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"", "Name", "Country", "Date_Of_Birth", "Test", "ODI", "T20"},
		{0, "A", "India", "1988-11-05", 100, 200, 50},
		{1, "B", "England", "1990-07-30", 80, 90},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", result.Encoding)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "A", result.Records[0].Name)
	assert.Equal(t, 350, result.Records[0].MatchSum())
	assert.Equal(t, 1, result.DroppedRows)
}

func TestParseDate(t *testing.T) {
	want := time.Date(1981, 7, 7, 0, 0, 0, 0, time.UTC)
	for _, value := range []string{
		"1981-07-07",
		"1981-07-07 00:00:00",
		"1981-07-07T00:00:00",
		"1981/07/07",
		"07/07/1981",
		"7/7/1981",
		"July 7, 1981",
		"7 July 1981",
		"Jul 7, 1981",
		"7 Jul 1981",
	} {
		t.Run(value, func(t *testing.T) {
			got, err := ParseDate(value)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}

	_, err := ParseDate("31/31/1981")
	assert.Error(t, err)
}

func TestParseDate_SlashesAreMonthFirst(t *testing.T) {
	got, err := ParseDate("03/04/1990")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 4, got.Day())
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"463", 463, false},
		{"12.0", 12, false},
		{"1e2", 100, false},
		{"12.5", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseCount(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "  ", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A", "<NA>"} {
		assert.True(t, IsMissing(v), "%q should be missing", v)
	}
	for _, v := range []string{"0", "India", "Nancy", "none"} {
		assert.False(t, IsMissing(v), "%q should not be missing", v)
	}
}
