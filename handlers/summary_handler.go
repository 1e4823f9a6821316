package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elad-asi/attendance-manager/models"
)

type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler { return &SummaryHandler{} }

type daySummary struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

type memberSummary struct {
	Ma          string `json:"ma"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PresentDays int    `json:"presentDays"`
}

// GET /api/sheets/:id/summary
// Per-date status counts over the sheet's range plus per-member totals.
// Roster members with no row for a date count as unmarked.
func (h *SummaryHandler) Get(c echo.Context) error {
	sheet, err := findSheet(c.Param("id"))
	if err != nil {
		return err
	}

	start, err1 := time.Parse("2006-01-02", sheet.StartDate)
	end, err2 := time.Parse("2006-01-02", sheet.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "INVALID_DATE_RANGE"})
	}

	members, err := listMembers(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	attendance, err := attendanceMap(sheet.SpreadsheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	days := []daySummary{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		counts := map[string]int{}
		for _, s := range models.AllStatuses {
			counts[string(s)] = 0
		}
		for _, m := range members {
			status := models.StatusUnmarked
			if byDate, ok := attendance[m.Ma]; ok {
				if s, ok := byDate[date]; ok && models.ValidStatus(models.Status(s)) {
					status = models.Status(s)
				}
			}
			counts[string(status)]++
		}
		days = append(days, daySummary{Date: date, Counts: counts})
	}

	// present + counted days per member. Marks outside the current range are
	// skipped: rows survive a range narrowing and must not inflate totals.
	perMember := make([]memberSummary, 0, len(members))
	for _, m := range members {
		ms := memberSummary{Ma: m.Ma, FirstName: m.FirstName, LastName: m.LastName}
		for date, s := range attendance[m.Ma] {
			if date < sheet.StartDate || date > sheet.EndDate {
				continue
			}
			if s == string(models.StatusPresent) || s == string(models.StatusCounted) {
				ms.PresentDays++
			}
		}
		perMember = append(perMember, ms)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"rosterSize": len(members),
		"startDate":  sheet.StartDate,
		"endDate":    sheet.EndDate,
		"days":       days,
		"members":    perMember,
	})
}

// GET /api/statuses
// The status enum and transition table, so every client cycles cells from
// the same table the server knows.
func Statuses(c echo.Context) error {
	transitions := map[string][]models.Status{}
	for _, s := range models.AllStatuses {
		transitions[string(s)] = models.AllowedAfter(s)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"statuses":    models.AllStatuses,
		"transitions": transitions,
		"firstDay":    models.AllowedAfter(models.StatusUnmarked),
	})
}
