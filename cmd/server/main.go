package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tafsir/internal/config"
	"tafsir/internal/handlers"
	"tafsir/internal/routing"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(err)
	}

	e := echo.New()
	e.HideBanner = true // why is it even false by default
	handler, err := handlers.NewHandler(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.FrontendOrigin},
		AllowMethods:     []string{echo.GET, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	routing.InitGetRoutes(e, handler)

	e.Logger.Fatal(e.Start(cfg.Server.Addr))
}
