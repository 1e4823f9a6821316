package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/elad-asi/attendance-manager/config"
	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// fail fast when the DB is not up
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("attendance manager listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
