package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEcho wires middleware, auth and routes around the server.
func NewEcho(s *Server, jwtSecret string, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	openAPI, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request handled", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	RegisterSwagger(e)

	api := e.Group("/api/v1", JWTAuth(jwtSecret), openAPI)

	api.POST("/orders", s.CreateOrder, RequireAdmin())
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/advance", s.AdvanceOrder, RequireRider())
	api.POST("/orders/:orderId/cancel", s.CancelOrder, RequireAdmin())

	api.POST("/riders", s.CreateRider, RequireAdmin())
	api.GET("/riders/:riderId", s.GetRider, RequireRiderOwner())
	api.POST("/riders/:riderId/approve", s.ApproveRider, RequireAdmin())
	api.PUT("/riders/:riderId/online", s.SetRiderOnline, RequireRiderOwner())
	api.GET("/riders/:riderId/notifications", s.ListRiderNotifications, RequireRiderOwner())
	api.POST("/riders/:riderId/notifications/:notificationId/accept", s.AcceptNotification, RequireRiderOwner())
	api.POST("/riders/:riderId/notifications/:notificationId/decline", s.DeclineNotification, RequireRiderOwner())

	return e, nil
}
