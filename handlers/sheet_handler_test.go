package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/handlers"
	"github.com/elad-asi/attendance-manager/models"
)

func TestSheetLoadCreatesAndReuses(t *testing.T) {
	setupDB(t)
	h := handlers.NewSheetHandler()

	body := `{"spreadsheetId":"abc123","sheetName":"roster","gdud":"55","pluga":"b",
		"members":[{"firstName":"Dani","lastName":"Cohen","ma":"1234567"}]}`
	c, rec := jsonReq(http.MethodPost, "/api/sheets/load", body)
	require.NoError(t, h.Load(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success     bool                `json:"success"`
		SheetID     string              `json:"sheetId"`
		Sheet       models.Sheet        `json:"sheet"`
		TeamMembers []models.TeamMember `json:"teamMembers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "abc123", resp.SheetID)
	assert.Equal(t, models.DefaultStartDate, resp.Sheet.StartDate)
	require.Len(t, resp.TeamMembers, 1)
	assert.Equal(t, "Dani", resp.TeamMembers[0].FirstName)

	// second load of the same spreadsheet reuses the row and updates the title
	c, rec = jsonReq(http.MethodPost, "/api/sheets/load",
		`{"spreadsheetId":"abc123","sheetName":"roster","spreadsheetTitle":"Winter"}`)
	require.NoError(t, h.Load(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	database.DB.Model(&models.Sheet{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var sheet models.Sheet
	require.NoError(t, database.DB.First(&sheet, "spreadsheet_id = ?", "abc123").Error)
	assert.Equal(t, "Winter", sheet.SpreadsheetTitle)
	// members survive a load without a members payload
	var members int64
	database.DB.Model(&models.TeamMember{}).Count(&members)
	assert.EqualValues(t, 1, members)
}

func TestSheetLoadRequiresIdentifiers(t *testing.T) {
	setupDB(t)
	h := handlers.NewSheetHandler()

	c, _ := jsonReq(http.MethodPost, "/api/sheets/load", `{"sheetName":"roster"}`)
	err := h.Load(c)
	assert.Equal(t, http.StatusBadRequest, httpError(t, err).Code)
	assert.Equal(t, "MISSING_FIELDS", errorCode(t, err))
}

func TestSheetDeleteCascadesAndBumpsVersion(t *testing.T) {
	setupDB(t)
	h := handlers.NewSheetHandler()

	sheet := seedSheet(t, "abc123")
	seedMember(t, sheet.SpreadsheetID, "111", "Dani", "Cohen")
	seedAttendance(t, sheet.SpreadsheetID, "111", "2026-01-02", models.StatusPresent, "s1")
	require.NoError(t, database.DB.Create(&models.ActiveUser{
		SessionID: "s1", SpreadsheetID: sheet.SpreadsheetID, LastSeen: 1,
	}).Error)

	c, rec := sheetReq(http.MethodDelete, "/api/sheets/abc123", "", "abc123")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, model := range []any{&models.Sheet{}, &models.TeamMember{}, &models.Attendance{}, &models.ActiveUser{}} {
		var count int64
		database.DB.Model(model).Count(&count)
		assert.Zero(t, count)
	}

	var dv models.DataVersion
	require.NoError(t, database.DB.First(&dv, "id = 1").Error)
	assert.Equal(t, 2, dv.Version)
}

func TestSheetGetUnknownIs404(t *testing.T) {
	setupDB(t)
	h := handlers.NewSheetHandler()

	c, _ := sheetReq(http.MethodGet, "/api/sheets/nope", "", "nope")
	err := h.Get(c)
	assert.Equal(t, http.StatusNotFound, httpError(t, err).Code)
	assert.Equal(t, "SHEET_NOT_FOUND", errorCode(t, err))
}

func TestDateRange(t *testing.T) {
	setupDB(t)
	h := handlers.NewSheetHandler()
	seedSheet(t, "abc123")

	// reversed range rejected
	c, _ := sheetReq(http.MethodPost, "/api/sheets/abc123/date-range",
		`{"startDate":"2026-02-01","endDate":"2026-01-01"}`, "abc123")
	err := h.SetDateRange(c)
	assert.Equal(t, "INVALID_DATE_RANGE", errorCode(t, err))

	// valid range saved and read back
	c, rec := sheetReq(http.MethodPost, "/api/sheets/abc123/date-range",
		`{"startDate":"2026-02-01","endDate":"2026-03-01"}`, "abc123")
	require.NoError(t, h.SetDateRange(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = sheetReq(http.MethodGet, "/api/sheets/abc123/date-range", "", "abc123")
	require.NoError(t, h.GetDateRange(c))
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-02-01", resp["startDate"])
	assert.Equal(t, "2026-03-01", resp["endDate"])
}
