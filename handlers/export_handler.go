package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/elad-asi/attendance-manager/models"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler { return &ExportHandler{} }

// GET /api/sheets/:id/export
// Full JSON dump of one sheet, shaped like the load response.
func (h *ExportHandler) JSON(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}
	members, err := listMembers(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	attendance, err := attendanceMap(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"sheet":          sheet,
		"teamMembers":    members,
		"attendanceData": attendance,
		"startDate":      sheet.StartDate,
		"endDate":        sheet.EndDate,
	})
}

// GET /api/sheets/:id/export.xlsx
// Attendance matrix workbook: one member per row, one date per column.
// Unmarked cells stay empty.
func (h *ExportHandler) XLSX(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}
	members, err := listMembers(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	attendance, err := attendanceMap(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	start, err1 := time.Parse("2006-01-02", sheet.StartDate)
	end, err2 := time.Parse("2006-01-02", sheet.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "INVALID_DATE_RANGE"})
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	ws := "Attendance"
	f.SetSheetName(f.GetSheetName(0), ws)

	headers := []string{"מספר אישי", "שם פרטי", "שם משפחה", "מחלקה"}
	for col, title := range append(headers, dates...) {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(ws, cell, title)
	}

	for rowIdx, m := range members {
		row := rowIdx + 2
		values := []string{m.Ma, m.FirstName, m.LastName, m.Mahlaka}
		for _, date := range dates {
			status := ""
			if byDate, ok := attendance[m.Ma]; ok {
				if s := byDate[date]; s != string(models.StatusUnmarked) {
					status = s
				}
			}
			values = append(values, status)
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(ws, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", sheet.SpreadsheetID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
