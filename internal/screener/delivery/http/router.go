package http

import (
	"golang-stock-screener/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the Echo server with every screener route. auth may be
// nil when no database is configured.
func NewRouter(chat *ChatHandler, auth *AuthHandler, log *logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger(log))

	apiV1 := e.Group("/api/v1")
	chat.RegisterRoutes(apiV1)
	if auth != nil {
		auth.RegisterRoutes(apiV1.Group("/auth"))
	}

	// Older clients post to /chat directly.
	e.POST("/chat", chat.Chat)

	e.GET("/health", HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", swagger.WrapHandler)
	return e
}
