package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

// 全ハンドラをまとめて受け取る
type Handlers struct {
	Auth             *handler.AuthHandler
	Catalog          *handler.CatalogHandler
	Order            *handler.OrderHandler
	DistributorOrder *handler.DistributorOrderHandler
	Payment          *handler.PaymentHandler
}

func Start(addr string, cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	RegisterRoutes(e, cfg, h)

	return e.Start(addr)
}
