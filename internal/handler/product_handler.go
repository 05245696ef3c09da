package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products, /categories の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.GET("/categories", h.categories)
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *ProductHandler) list(c echo.Context) error {
	// featured（true/false）
	featured := false
	if v := c.QueryParam("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid featured"})
		}
		featured = b
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Q:        c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Featured: featured,
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProductDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) categories(c echo.Context) error {
	cats, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CategoriesResponse{Categories: cats})
}
