package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Q        string
	Category string
	Featured bool
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.Sort {
	case "", "name", "price_asc", "price_desc", "rating":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	//"All"はカテゴリ指定なし
	category := strings.TrimSpace(in.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Q:        strings.TrimSpace(in.Q),
		Category: category,
		Featured: in.Featured,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Total: len(items)}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (model.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := u.productRepo.Categories(ctx)
	if err != nil {
		return []string{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}
