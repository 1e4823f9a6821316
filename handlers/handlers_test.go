package handlers_test

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/models"
)

// setupDB points the package-global handle at a fresh in-memory sqlite
// database for one test.
func setupDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

// jsonReq builds an echo context for a handler call with a JSON body.
func jsonReq(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(r, rec), rec
}

// sheetReq is jsonReq with the :id path param bound.
func sheetReq(method, target, body, sheetID string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := jsonReq(method, target, body)
	c.SetParamNames("id")
	c.SetParamValues(sheetID)
	return c, rec
}

func seedSheet(t *testing.T, id string) *models.Sheet {
	t.Helper()
	sheet := &models.Sheet{
		SpreadsheetID: id,
		SheetName:     "test",
		StartDate:     "2026-01-01",
		EndDate:       "2026-01-31",
	}
	require.NoError(t, database.DB.Create(sheet).Error)
	return sheet
}

func seedMember(t *testing.T, sheetID, ma, first, last string) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.TeamMember{
		SpreadsheetID: sheetID,
		FirstName:     first,
		LastName:      last,
		Ma:            ma,
	}).Error)
}

func seedAttendance(t *testing.T, sheetID, ma, date string, status models.Status, session string) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Attendance{
		SpreadsheetID:    sheetID,
		Ma:               ma,
		Date:             date,
		Status:           status,
		UpdatedAt:        time.Now(),
		UpdatedBySession: session,
	}).Error)
}

// httpError unwraps the echo error a handler returned.
func httpError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	he := httpError(t, err)
	m, ok := he.Message.(map[string]any)
	require.True(t, ok, "expected error map, got %v", he.Message)
	code, _ := m["error"].(string)
	return code
}
