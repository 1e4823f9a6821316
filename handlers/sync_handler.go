package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/models"
)

type SyncHandler struct{}

func NewSyncHandler() *SyncHandler { return &SyncHandler{} }

// GET /api/sheets/:id/changes?since=<timestamp>&session=<id>
// Rows written after `since`, excluding the caller's own session so its
// optimistic updates are not echoed back. The client advances its cursor
// from serverTimestamp, never from its own clock.
func (h *SyncHandler) Changes(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	var since time.Time
	if s := strings.TrimSpace(c.QueryParam("since")); s != "" {
		t, ok := parseTimestamp(s)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_TIMESTAMP"})
		}
		since = t
	}
	session := strings.TrimSpace(c.QueryParam("session"))

	tx := database.DB.
		Where("spreadsheet_id = ? AND updated_at > ?", sheet.SpreadsheetID, since)
	if session != "" {
		tx = tx.Where("updated_by_session <> '' AND updated_by_session <> ?", session)
	}

	rows := []models.Attendance{}
	if err := tx.Order("updated_at ASC").Find(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	changes := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		changes = append(changes, map[string]any{
			"ma":         r.Ma,
			"date":       r.Date,
			"status":     r.Status,
			"updated_at": r.UpdatedAt.Format(time.RFC3339Nano),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"changes":         changes,
		"serverTimestamp": time.Now().Format(time.RFC3339Nano),
	})
}

// POST /api/sheets/:id/heartbeat
// Refreshes this session's presence row and returns who else is live on the
// sheet. Sessions without an id get one assigned.
func (h *SyncHandler) Heartbeat(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	var req struct {
		SessionID string `json:"sessionId"`
		Email     string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = "Anonymous"
	}

	user := models.ActiveUser{
		SessionID:     sessionID,
		Email:         email,
		SpreadsheetID: sheet.SpreadsheetID,
		LastSeen:      time.Now().Unix(),
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "spreadsheet_id", "last_seen"}),
	}).Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}

	sweepInactiveUsers()

	var others []string
	if err := database.DB.Model(&models.ActiveUser{}).
		Where("spreadsheet_id = ? AND session_id <> ?", sheet.SpreadsheetID, sessionID).
		Pluck("email", &others).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if others == nil {
		others = []string{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"sessionId":   sessionID,
		"activeUsers": others,
	})
}

// GET /api/data-version
func (h *SyncHandler) DataVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int{"version": currentDataVersion()})
}

// drop sessions not seen within the timeout; best-effort, a failed sweep
// only leaves stale presence rows for the next pass
func sweepInactiveUsers() {
	cutoff := time.Now().Unix() - models.ActiveUserTimeoutSeconds
	if err := database.DB.Where("last_seen < ?", cutoff).Delete(&models.ActiveUser{}).Error; err != nil {
		log.Printf("sweep inactive users failed: %v", err)
	}
}

func currentDataVersion() int {
	var dv models.DataVersion
	if err := database.DB.First(&dv, "id = 1").Error; err != nil {
		return 1
	}
	return dv.Version
}

// bumpDataVersion forces a full reload on every polling client.
func bumpDataVersion() (int, error) {
	err := database.DB.Model(&models.DataVersion{}).
		Where("id = 1").
		Update("version", gorm.Expr("version + 1")).Error
	if err != nil {
		return 0, err
	}
	return currentDataVersion(), nil
}
