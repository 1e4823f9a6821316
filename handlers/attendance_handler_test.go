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

func TestMarkUpsertOverwrites(t *testing.T) {
	setupDB(t)
	h := handlers.NewAttendanceHandler()
	seedSheet(t, "abc123")

	c, rec := sheetReq(http.MethodPost, "/api/sheets/abc123/attendance",
		`{"ma":"111","date":"2026-01-05","status":"present","sessionId":"s1"}`, "abc123")
	require.NoError(t, h.Mark(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// second mark for the same cell overwrites, no second row
	c, _ = sheetReq(http.MethodPost, "/api/sheets/abc123/attendance",
		`{"ma":"111","date":"2026-01-05","status":"absent","sessionId":"s2"}`, "abc123")
	require.NoError(t, h.Mark(c))

	var rows []models.Attendance
	require.NoError(t, database.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusAbsent, rows[0].Status)
	assert.Equal(t, "s2", rows[0].UpdatedBySession)

	c, rec = sheetReq(http.MethodGet, "/api/sheets/abc123/attendance", "", "abc123")
	require.NoError(t, h.List(c))
	var data map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "absent", data["111"]["2026-01-05"])
}

func TestMarkValidation(t *testing.T) {
	setupDB(t)
	h := handlers.NewAttendanceHandler()
	seedSheet(t, "abc123") // range 2026-01-01 .. 2026-01-31

	cases := []struct {
		name string
		body string
		code string
	}{
		{"missing fields", `{"ma":"111","date":"2026-01-05"}`, "MISSING_FIELDS"},
		{"bad status", `{"ma":"111","date":"2026-01-05","status":"vacation"}`, "INVALID_STATUS"},
		{"bad date", `{"ma":"111","date":"05/01/2026","status":"present"}`, "INVALID_DATE"},
		{"out of range", `{"ma":"111","date":"2026-03-05","status":"present"}`, "DATE_OUT_OF_RANGE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := sheetReq(http.MethodPost, "/api/sheets/abc123/attendance", tc.body, "abc123")
			err := h.Mark(c)
			assert.Equal(t, tc.code, errorCode(t, err))
		})
	}
}

func TestMarkBatch(t *testing.T) {
	setupDB(t)
	h := handlers.NewAttendanceHandler()
	seedSheet(t, "abc123")

	body := `{"sessionId":"s1","updates":[
		{"ma":"111","date":"2026-01-05","status":"arriving"},
		{"ma":"111","date":"2026-01-06","status":"present"},
		{"ma":"222","date":"2026-01-05","status":"arriving"}]}`
	c, rec := sheetReq(http.MethodPost, "/api/sheets/abc123/attendance/batch", body, "abc123")
	require.NoError(t, h.MarkBatch(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Count)

	var count int64
	database.DB.Model(&models.Attendance{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestMarkBatchRejectsWholeBatchOnBadEntry(t *testing.T) {
	setupDB(t)
	h := handlers.NewAttendanceHandler()
	seedSheet(t, "abc123")

	body := `{"updates":[
		{"ma":"111","date":"2026-01-05","status":"present"},
		{"ma":"111","date":"2026-01-06","status":"nonsense"}]}`
	c, _ := sheetReq(http.MethodPost, "/api/sheets/abc123/attendance/batch", body, "abc123")
	err := h.MarkBatch(c)
	assert.Equal(t, "INVALID_STATUS", errorCode(t, err))

	var count int64
	database.DB.Model(&models.Attendance{}).Count(&count)
	assert.Zero(t, count)
}
