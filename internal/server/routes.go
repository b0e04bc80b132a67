package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.DistributorOrder.RegisterRoutes(e, cfg)
	h.Payment.RegisterRoutes(e, cfg)
}
