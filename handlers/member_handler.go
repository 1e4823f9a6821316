package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/models"
)

type MemberHandler struct{}

func NewMemberHandler() *MemberHandler { return &MemberHandler{} }

type memberPayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Ma           string `json:"ma"`
	Gdud         string `json:"gdud"`
	Pluga        string `json:"pluga"`
	Mahlaka      string `json:"mahlaka"`
	MiktzoaTzvai string `json:"miktzoaTzvai"`
	Notes        string `json:"notes"`
}

func (p *memberPayload) normalize() {
	p.FirstName = cleanName(p.FirstName)
	p.LastName = cleanName(p.LastName)
	p.Ma = strings.TrimSpace(p.Ma)
	p.Gdud = strings.TrimSpace(p.Gdud)
	p.Pluga = strings.TrimSpace(p.Pluga)
	p.Mahlaka = strings.TrimSpace(p.Mahlaka)
	p.MiktzoaTzvai = strings.TrimSpace(p.MiktzoaTzvai)
	p.Notes = strings.TrimSpace(p.Notes)
}

// GET /api/sheets/:id/team-members
func (h *MemberHandler) List(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}
	members, err := listMembers(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, members)
}

// POST /api/sheets/:id/team-members
// Replaces the whole roster; saving is always a full overwrite, matching the
// import flow.
func (h *MemberHandler) Replace(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	var req struct {
		Members []memberPayload `json:"members"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if err := replaceMembers(sheet.SpreadsheetID, req.Members); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "count": len(req.Members)})
}

func listMembers(spreadsheetID string) ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	err := database.DB.
		Where("spreadsheet_id = ?", spreadsheetID).
		Order("id ASC").
		Find(&members).Error
	return members, err
}

func replaceMembers(spreadsheetID string, payload []memberPayload) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("spreadsheet_id = ?", spreadsheetID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		for i := range payload {
			p := payload[i]
			p.normalize()
			m := models.TeamMember{
				SpreadsheetID: spreadsheetID,
				FirstName:     p.FirstName,
				LastName:      p.LastName,
				Ma:            p.Ma,
				Gdud:          p.Gdud,
				Pluga:         p.Pluga,
				Mahlaka:       p.Mahlaka,
				MiktzoaTzvai:  p.MiktzoaTzvai,
				Notes:         p.Notes,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
