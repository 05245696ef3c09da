package server

import (
	"net/http"

	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Session  *handler.SessionHandler
}

type healthResponse struct {
	Status string `json:"status"`
}

func RegisterRoutes(e *echo.Echo, h Handlers, sessionMW echo.MiddlewareFunc) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	})

	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, sessionMW)
	h.Checkout.RegisterRoutes(e, sessionMW)
	h.Session.RegisterRoutes(e, sessionMW)
}
