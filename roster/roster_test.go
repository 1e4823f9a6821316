package roster_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/elad-asi/attendance-manager/roster"
)

func TestParseFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	ws := f.GetSheetName(0)
	rows := [][]string{
		{"שם פרטי", "שם משפחה", "מ.א", "גדוד", "פלוגה", "מחלקה", "מקצוע צבאי"},
		{"דני", "כהן", "8234567", "55", "ב", "1", "חובש"},
		{"יוסי", "לוי", "8765432", "55", "ב", "2", "?"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(ws, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	members, headers, err := roster.ParseFile(bytes.NewReader(buf.Bytes()), "roster.xlsx")
	require.NoError(t, err)
	assert.Len(t, headers, 7)
	require.Len(t, members, 2)

	assert.Equal(t, "דני", members[0].FirstName)
	assert.Equal(t, "כהן", members[0].LastName)
	assert.Equal(t, "8234567", members[0].Ma)
	assert.Equal(t, "55", members[0].Gdud)
	assert.Equal(t, "ב", members[0].Pluga)
	assert.Equal(t, "1", members[0].Mahlaka)
	assert.Equal(t, "חובש", members[0].MiktzoaTzvai)

	// "?" never becomes a value
	assert.Equal(t, "", members[1].MiktzoaTzvai)
}

func TestParseFileCSVEnglishHeaders(t *testing.T) {
	csv := "first name,last name,id,department\n" +
		"Dani,Cohen,8234567,1\n"
	members, _, err := roster.ParseFile(strings.NewReader(csv), "roster.csv")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Dani", members[0].FirstName)
	assert.Equal(t, "8234567", members[0].Ma)
	assert.Equal(t, "1", members[0].Mahlaka)
}

func TestParseFileCSVWithBOM(t *testing.T) {
	csv := "\uFEFFשם פרטי,שם משפחה\nדני,כהן\n"
	members, headers, err := roster.ParseFile(strings.NewReader(csv), "roster.csv")
	require.NoError(t, err)
	assert.Equal(t, "שם פרטי", headers[0])
	require.Len(t, members, 1)
	assert.Equal(t, "דני", members[0].FirstName)
}

func TestParseRowsFallbackColumns(t *testing.T) {
	// unknown headers: first two columns are still treated as names
	members := roster.ParseRows(
		[]string{"c1", "c2"},
		[][]string{{"Dani", "Cohen"}, {}},
	)
	require.Len(t, members, 1)
	assert.Equal(t, "Dani", members[0].FirstName)
	assert.Equal(t, "Cohen", members[0].LastName)
	assert.Equal(t, "", members[0].Ma) // ma has no fallback column
}

func TestParseRowsSkipsEmptyIdentity(t *testing.T) {
	members := roster.ParseRows(
		[]string{"שם פרטי", "שם משפחה", "מספר אישי"},
		[][]string{
			{"", "", ""},
			{"?", "?", "?"},
			{"", "", "8234567"},
		},
	)
	require.Len(t, members, 1)
	assert.Equal(t, "8234567", members[0].Ma)
}

func TestParseFileEmpty(t *testing.T) {
	_, _, err := roster.ParseFile(strings.NewReader(""), "roster.csv")
	assert.ErrorIs(t, err, roster.ErrEmptySheet)
}
