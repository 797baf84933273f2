package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kajalsharma987/my-leave-app/config"
	"github.com/kajalsharma987/my-leave-app/database"
	"github.com/kajalsharma987/my-leave-app/routes"
	"github.com/kajalsharma987/my-leave-app/services"
)

func main() {
	cfg := config.Load()

	var store *database.Store
	if cfg.Storage == "memory" {
		log.Printf("storage: in-memory (snapshots are lost on exit)")
		store = database.NewMemoryStore()
	} else {
		store = database.Connect(cfg)
	}

	svc := services.New(store)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, svc, cfg.JWTSecret)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
