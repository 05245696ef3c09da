package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 決済への引き渡し
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type BuyNowRequest struct {
	Quantity *int `json:"quantity"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// /checkout はセッション必須、即購入は不要
func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, sessionMW echo.MiddlewareFunc) {
	e.POST("/products/:id/checkout", h.buyNow)

	g := e.Group("/checkout")
	g.Use(sessionMW)
	g.POST("", h.checkoutCart)
	g.POST("/complete", h.complete)
}

func (h *CheckoutHandler) checkoutCart(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	out, err := h.uc.CheckoutCart(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) buyNow(c echo.Context) error {
	var req BuyNowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.BuyNow(c.Request().Context(), usecase.BuyNowInput{
		ProductID: c.Param("id"),
		Quantity:  qty,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) complete(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	if err := h.uc.CompleteCheckout(c.Request().Context(), sid); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
