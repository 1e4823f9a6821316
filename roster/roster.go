// Package roster parses uploaded spreadsheets (xlsx/csv) into team members.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/elad-asi/attendance-manager/models"
)

var ErrEmptySheet = errors.New("roster: sheet is empty")

// column keys resolved from the header row
const (
	colFirstName = "firstName"
	colLastName  = "lastName"
	colMa        = "ma"
	colGdud      = "gdud"
	colPluga     = "pluga"
	colMahlaka   = "mahlaka"
	colMiktzoa   = "miktzoaTzvai"
)

// ParseFile reads an .xlsx or .csv roster and returns the members plus the
// raw header row. The first row must be headers (Hebrew or English).
func ParseFile(r io.Reader, filename string) ([]models.TeamMember, []string, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptySheet
	}
	headers := rows[0]
	members := ParseRows(headers, rows[1:])
	return members, headers, nil
}

// ParseRows maps data rows to members using header detection. Rows with no
// name and no personal number are skipped.
func ParseRows(headers []string, rows [][]string) []models.TeamMember {
	idx := mapHeaders(headers)

	members := make([]models.TeamMember, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		m := models.TeamMember{
			FirstName:    cellValue(row, idx, colFirstName, 0),
			LastName:     cellValue(row, idx, colLastName, 1),
			Ma:           cellValue(row, idx, colMa, -1),
			Gdud:         cellValue(row, idx, colGdud, -1),
			Pluga:        cellValue(row, idx, colPluga, -1),
			Mahlaka:      cellValue(row, idx, colMahlaka, -1),
			MiktzoaTzvai: cellValue(row, idx, colMiktzoa, -1),
		}
		if m.FirstName == "" && m.LastName == "" && m.Ma == "" {
			continue
		}
		members = append(members, m)
	}
	return members
}

// mapHeaders resolves column indices from Hebrew (or English) header names.
func mapHeaders(headers []string) map[string]int {
	idx := map[string]int{}
	for i, h := range headers {
		clean := strings.TrimSpace(h)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)
		switch {
		case strings.Contains(clean, "שם פרטי") || lower == "first name":
			idx[colFirstName] = i
		case strings.Contains(clean, "שם משפחה") || lower == "last name":
			idx[colLastName] = i
		case strings.Contains(clean, "מספר אישי") || strings.Contains(clean, "מ.א") ||
			strings.Contains(clean, "מא") || lower == "id":
			idx[colMa] = i
		case strings.Contains(clean, "מחלקה") || lower == "department":
			idx[colMahlaka] = i
		case strings.Contains(clean, "גדוד") || lower == "gdud":
			idx[colGdud] = i
		case strings.Contains(clean, "פלוגה") || lower == "pluga":
			idx[colPluga] = i
		case strings.Contains(clean, "מקצוע צבאי") || lower == "profession":
			idx[colMiktzoa] = i
		}
	}
	return idx
}

// cellValue reads a mapped column (falling back to defIdx when the header was
// never found; -1 means no fallback). "?" cells count as empty — the importer
// never invents values.
func cellValue(row []string, idx map[string]int, key string, defIdx int) string {
	i, ok := idx[key]
	if !ok {
		if defIdx < 0 {
			return ""
		}
		i = defIdx
	}
	if i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if v == "?" {
		return ""
	}
	return v
}

func readRows(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		// strip a UTF-8 BOM; Excel writes one on CSV export
		data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
		cr := csv.NewReader(bytes.NewReader(data))
		cr.FieldsPerRecord = -1
		return cr.ReadAll()
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrEmptySheet
	}
	return f.GetRows(sheetName)
}
