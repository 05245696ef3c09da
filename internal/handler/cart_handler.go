package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// quantity省略時は1
type AddCartRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      *int   `json:"quantity"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

// 明細の指定。DELETEはクエリでも受ける。
type CartLineRequest struct {
	ProductID     string `json:"product_id" query:"product_id"`
	SelectedSize  string `json:"selected_size" query:"selected_size"`
	SelectedColor string `json:"selected_color" query:"selected_color"`
}

type UpdateCartItemRequest struct {
	CartLineRequest
	Quantity *int `json:"quantity"`
}

// /cart, /cart/items を登録（セッション必須）
func (h *CartHandler) RegisterRoutes(e *echo.Echo, sessionMW echo.MiddlewareFunc) {
	g := e.Group("/cart")
	g.Use(sessionMW)

	g.GET("", h.getCart)
	g.DELETE("", h.clearCart)
	g.POST("/items", h.addToCart)
	g.PATCH("/items", h.patchItem)
	g.DELETE("/items", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.AddToCart(c.Request().Context(), sid, usecase.AddCartInput{
		ProductID:     req.ProductID,
		Quantity:      qty,
		SelectedSize:  req.SelectedSize,
		SelectedColor: req.SelectedColor,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quantity is required"})
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), sid, usecase.UpdateCartItemInput{
		CartLineInput: req.CartLineRequest.toInput(),
		Quantity:      *req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	var req CartLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.DeleteCartItem(c.Request().Context(), sid, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (r CartLineRequest) toInput() usecase.CartLineInput {
	return usecase.CartLineInput{
		ProductID:     r.ProductID,
		SelectedSize:  r.SelectedSize,
		SelectedColor: r.SelectedColor,
	}
}

// middlewareが入れたsession_idを取り出す
func getSessionIDFromContext(c echo.Context) (string, bool) {
	sid, ok := c.Get(middleware.CtxSessionIDKey).(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
