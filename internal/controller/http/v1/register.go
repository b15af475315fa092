package httpv1

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/seimple/seimple/internal/service"
)

func ConfigureRouter(handler *echo.Echo, services *service.Services, corsOrigins []string) {
	handler.Use(echoprometheus.NewMiddleware("seimple_http"))
	handler.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet},
	}))

	controller := NewLogController(services.Log)

	handler.GET("/health", controller.Health)
	handler.GET("/logs", controller.GetLogs)
}
