package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/models"
)

type SheetHandler struct{}

func NewSheetHandler() *SheetHandler { return &SheetHandler{} }

// GET /api/sheets
func (h *SheetHandler) List(c echo.Context) error {
	var sheets []models.Sheet
	if err := database.DB.Order("created_at DESC").Find(&sheets).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, sheets)
}

type loadSheetPayload struct {
	SpreadsheetID    string          `json:"spreadsheetId"`
	SpreadsheetTitle string          `json:"spreadsheetTitle"`
	SheetName        string          `json:"sheetName"`
	Gdud             string          `json:"gdud"`
	Pluga            string          `json:"pluga"`
	Members          []memberPayload `json:"members"`
}

// POST /api/sheets/load
// Get-or-create the sheet for a spreadsheet id, optionally replacing its
// roster, and return everything the client needs to render.
func (h *SheetHandler) Load(c echo.Context) error {
	var req loadSheetPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.SpreadsheetID = strings.TrimSpace(req.SpreadsheetID)
	req.SheetName = strings.TrimSpace(req.SheetName)
	if req.SpreadsheetID == "" || req.SheetName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var sheet models.Sheet
	err := database.DB.First(&sheet, "spreadsheet_id = ?", req.SpreadsheetID).Error
	switch {
	case err == nil:
		if t := strings.TrimSpace(req.SpreadsheetTitle); t != "" && t != sheet.SpreadsheetTitle {
			sheet.SpreadsheetTitle = t
			if err := database.DB.Save(&sheet).Error; err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sheet = models.Sheet{
			SpreadsheetID:    req.SpreadsheetID,
			SpreadsheetTitle: strings.TrimSpace(req.SpreadsheetTitle),
			SheetName:        req.SheetName,
			Gdud:             strings.TrimSpace(req.Gdud),
			Pluga:            strings.TrimSpace(req.Pluga),
			StartDate:        models.DefaultStartDate,
			EndDate:          models.DefaultEndDate,
		}
		if err := database.DB.Create(&sheet).Error; err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	if len(req.Members) > 0 {
		if err := replaceMembers(sheet.SpreadsheetID, req.Members); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
		}
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
		"success":        true,
		"sheetId":        sheet.SpreadsheetID,
		"sheet":          sheet,
		"teamMembers":    members,
		"attendanceData": attendance,
	})
}

// GET /api/sheets/:id
func (h *SheetHandler) Get(c echo.Context) error {
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
	})
}

// DELETE /api/sheets/:id
// Drops the sheet with all members, attendance and presence rows, then bumps
// the data version so every open client reloads.
func (h *SheetHandler) Delete(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		id := sheet.SpreadsheetID
		if err := tx.Where("spreadsheet_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("spreadsheet_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("spreadsheet_id = ?", id).Delete(&models.ActiveUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Sheet{}, "spreadsheet_id = ?", id).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}

	if _, err := bumpDataVersion(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// GET /api/sheets/:id/date-range
func (h *SheetHandler) GetDateRange(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"startDate": sheet.StartDate,
		"endDate":   sheet.EndDate,
	})
}

// POST /api/sheets/:id/date-range
func (h *SheetHandler) SetDateRange(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	var req struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if !isDateYYYYMMDD(req.StartDate) || !isDateYYYYMMDD(req.EndDate) || req.StartDate > req.EndDate {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
	}

	if err := database.DB.Model(sheet).
		Updates(map[string]any{"start_date": req.StartDate, "end_date": req.EndDate}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// findSheet loads a sheet by spreadsheet id or fails the request with 404.
func findSheet(id string) (*models.Sheet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "SHEET_NOT_FOUND"})
	}
	var sheet models.Sheet
	if err := database.DB.First(&sheet, "spreadsheet_id = ?", id).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "SHEET_NOT_FOUND"})
	}
	return &sheet, nil
}
