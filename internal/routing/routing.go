package routing

import (
	"github.com/labstack/echo/v4"

	"tafsir/internal/handlers"
)

func InitGetRoutes(e *echo.Echo, handler *handlers.Handler) {
	e.GET("/tafsir/:author/:surah/:ayah", handler.GetTafsirHandler)
	e.GET("/search", handler.SearchHandler)
	e.GET("/reflect", handler.ReflectHandler)
}
