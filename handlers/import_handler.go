package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elad-asi/attendance-manager/roster"
)

type ImportHandler struct{}

func NewImportHandler() *ImportHandler { return &ImportHandler{} }

// POST /api/import  (multipart form, field "file")
// Parses an uploaded roster spreadsheet and returns a preview; nothing is
// saved here. Saving goes through POST /api/sheets/:id/team-members.
func (h *ImportHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FILE"})
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "UNREADABLE_FILE"})
	}
	defer src.Close()

	members, headers, err := roster.ParseFile(src, fh.Filename)
	if err != nil {
		if errors.Is(err, roster.ErrEmptySheet) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "EMPTY_SHEET"})
		}
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"members": members,
		"headers": headers,
	})
}
