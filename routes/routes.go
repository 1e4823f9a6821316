package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/elad-asi/attendance-manager/config"
	"github.com/elad-asi/attendance-manager/handlers"
	"github.com/elad-asi/attendance-manager/mail"
	"github.com/elad-asi/attendance-manager/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg, mail.NewSMTPMailer(cfg))
	sheet := handlers.NewSheetHandler()
	member := handlers.NewMemberHandler()
	att := handlers.NewAttendanceHandler()
	sync := handlers.NewSyncHandler()
	sum := handlers.NewSummaryHandler()
	imp := handlers.NewImportHandler()
	exp := handlers.NewExportHandler()

	api := e.Group("/api")

	// ===== Public =====
	api.GET("/health", handlers.Health)
	api.GET("/version", handlers.Version)
	api.POST("/auth/request-code", auth.RequestCode)
	api.POST("/auth/verify-code", auth.VerifyCode)
	api.GET("/auth/session", auth.Session)

	// ===== Session-gated =====
	app := api.Group("", middlewares.RequireAuth(cfg.JWTSecret))

	app.GET("/statuses", handlers.Statuses)
	app.GET("/data-version", sync.DataVersion)

	app.GET("/sheets", sheet.List)
	app.POST("/sheets/load", sheet.Load)
	app.GET("/sheets/:id", sheet.Get)
	app.DELETE("/sheets/:id", sheet.Delete)
	app.GET("/sheets/:id/date-range", sheet.GetDateRange)
	app.POST("/sheets/:id/date-range", sheet.SetDateRange)

	app.GET("/sheets/:id/team-members", member.List)
	app.POST("/sheets/:id/team-members", member.Replace)

	app.GET("/sheets/:id/attendance", att.List)
	app.POST("/sheets/:id/attendance", att.Mark)
	app.POST("/sheets/:id/attendance/batch", att.MarkBatch)

	app.GET("/sheets/:id/changes", sync.Changes)
	app.POST("/sheets/:id/heartbeat", sync.Heartbeat)

	app.GET("/sheets/:id/summary", sum.Get)

	app.POST("/import", imp.Upload)
	app.GET("/sheets/:id/export", exp.JSON)
	app.GET("/sheets/:id/export.xlsx", exp.XLSX)
}
