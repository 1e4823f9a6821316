package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// GET /api/sheets/:id/attendance
// Returns the nested map clients render from: {ma: {date: status}}.
func (h *AttendanceHandler) List(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}
	data, err := attendanceMap(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, data)
}

type markPayload struct {
	Ma     string `json:"ma"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// validateMark checks one mark against the sheet. Any enum status is
// accepted regardless of the previous day — the transition table is the
// client's cycling guide, and polling reconciliation must be able to apply
// whatever another session already saved.
func validateMark(sheet *models.Sheet, p *markPayload) *echo.HTTPError {
	p.Ma = strings.TrimSpace(p.Ma)
	p.Date = strings.TrimSpace(p.Date)
	p.Status = strings.TrimSpace(p.Status)
	if p.Ma == "" || p.Date == "" || p.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if !isDateYYYYMMDD(p.Date) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	if p.Date < sheet.StartDate || p.Date > sheet.EndDate {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "DATE_OUT_OF_RANGE"})
	}
	if !models.ValidStatus(models.Status(p.Status)) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
	}
	return nil
}

// POST /api/sheets/:id/attendance
func (h *AttendanceHandler) Mark(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	var req struct {
		markPayload
		SessionID string `json:"sessionId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if herr := validateMark(sheet, &req.markPayload); herr != nil {
		return herr
	}

	if err := upsertAttendance(database.DB, sheet.SpreadsheetID, &req.markPayload, req.SessionID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// POST /api/sheets/:id/attendance/batch
// Applies a batch of marks in one transaction; either all land or none do.
func (h *AttendanceHandler) MarkBatch(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	var req struct {
		Updates   []markPayload `json:"updates"`
		SessionID string        `json:"sessionId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if len(req.Updates) == 0 {
		return c.JSON(http.StatusOK, map[string]any{"success": true, "count": 0})
	}
	for i := range req.Updates {
		if herr := validateMark(sheet, &req.Updates[i]); herr != nil {
			return herr
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range req.Updates {
			if err := upsertAttendance(tx, sheet.SpreadsheetID, &req.Updates[i], req.SessionID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "count": len(req.Updates)})
}

func upsertAttendance(tx *gorm.DB, spreadsheetID string, p *markPayload, sessionID string) error {
	rec := models.Attendance{
		SpreadsheetID:    spreadsheetID,
		Ma:               p.Ma,
		Date:             p.Date,
		Status:           models.Status(p.Status),
		UpdatedAt:        time.Now(),
		UpdatedBySession: strings.TrimSpace(sessionID),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "spreadsheet_id"}, {Name: "ma"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at", "updated_by_session"}),
	}).Create(&rec).Error
}

func attendanceMap(spreadsheetID string) (map[string]map[string]string, error) {
	var rows []models.Attendance
	if err := database.DB.Where("spreadsheet_id = ?", spreadsheetID).Find(&rows).Error; err != nil {
		return nil, err
	}
	data := map[string]map[string]string{}
	for _, r := range rows {
		if data[r.Ma] == nil {
			data[r.Ma] = map[string]string{}
		}
		data[r.Ma][r.Date] = string(r.Status)
	}
	return data, nil
}
