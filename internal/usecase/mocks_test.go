package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

func (m *ProductRepoMock) Upsert(ctx context.Context, p model.Product) error {
	panic("not used in usecase tests")
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateCheckout(ctx context.Context, req model.CheckoutRequest) (model.CheckoutResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(model.CheckoutResult)
	return res, args.Error(1)
}

var errDB = errors.New("db down")

func tshirt() model.Product {
	return model.Product{
		ID:      "1",
		Name:    "Premium Cotton T-Shirt",
		Price:   decimal.RequireFromString("29.99"),
		Image:   "https://example.com/1.jpg",
		Sizes:   []string{"S", "M", "L"},
		Colors:  []model.ProductColor{{Name: "White", Hex: "#FFFFFF"}},
		InStock: true,
	}
}

func hoodie() model.Product {
	return model.Product{
		ID:      "2",
		Name:    "Designer Hoodie",
		Price:   decimal.RequireFromString("59.99"),
		InStock: true,
	}
}

func assertHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !assert.True(t, ok, "expected HTTPError, got %v", err) {
		return
	}
	assert.Equal(t, status, he.Status)
	assert.True(t, strings.Contains(he.Message, msg), "message %q does not contain %q", he.Message, msg)
}
