package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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
	args := m.Called(ctx, p)
	return args.Error(0)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateCheckout(ctx context.Context, req model.CheckoutRequest) (model.CheckoutResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(model.CheckoutResult)
	return res, args.Error(1)
}

// =====================
// helper
// =====================

type testApp struct {
	e        *echo.Echo
	pRepo    *ProductRepoMock
	gateway  *GatewayMock
	issuer   *session.TokenIssuer
	sessions *session.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, "1").Return(model.Product{
		ID:      "1",
		Name:    "Premium Cotton T-Shirt",
		Price:   decimal.RequireFromString("29.99"),
		Sizes:   []string{"S", "M", "L"},
		InStock: true,
	}, nil).Maybe()
	pRepo.On("FindByID", mock.Anything, "2").Return(model.Product{
		ID:      "2",
		Name:    "Designer Hoodie",
		Price:   decimal.RequireFromString("59.99"),
		InStock: true,
	}, nil).Maybe()
	pRepo.On("FindByID", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrNotFound).Maybe()

	gw := new(GatewayMock)
	issuer := session.NewTokenIssuer("test_secret", time.Hour)
	sessions := session.NewManager(nil, cart.DefaultPolicy(), nil)
	cookieOpts := middleware.CookieOptions{Secure: true}
	sessionMW := middleware.SessionJWT(issuer, cookieOpts)

	e := echo.New()
	handler.NewProductHandler(usecase.NewProductUsecase(pRepo)).RegisterRoutes(e)
	cartUC := usecase.NewCartUsecase(sessions, pRepo)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, sessionMW)
	handler.NewSessionHandler(cartUC, cookieOpts).RegisterRoutes(e, sessionMW)
	handler.NewCheckoutHandler(usecase.NewCheckoutUsecase(sessions, pRepo, gw, usecase.CheckoutURLs{
		SuccessURL: "http://shop.test/payments/success",
		CancelURL:  "http://shop.test/cart",
	}, nil)).RegisterRoutes(e, sessionMW)

	return &testApp{e: e, pRepo: pRepo, gateway: gw, issuer: issuer, sessions: sessions}
}

// 発行済みトークンを持つクライアント
type shopper struct {
	sid   string
	token string
}

func (a *testApp) newShopper(t *testing.T) shopper {
	t.Helper()
	sid, token, _, err := a.issuer.Issue(time.Now())
	require.NoError(t, err)
	return shopper{sid: sid, token: token}
}

func (a *testApp) do(t *testing.T, s *shopper, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if s != nil {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: s.token})
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
