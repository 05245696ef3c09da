package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// 決済後の戻り先
type CheckoutURLs struct {
	SuccessURL string
	CancelURL  string
}

// CheckoutUsecase はカートの内容を外部決済へ渡す。
// カートは変更しない（成功確定後に CompleteCheckout でクリア）。
type CheckoutUsecase struct {
	sessions    CartSessions
	productRepo repo.ProductRepository
	gateway     repo.PaymentGateway
	urls        CheckoutURLs
	logger      *zap.Logger
}

func NewCheckoutUsecase(
	sessions CartSessions,
	productRepo repo.ProductRepository,
	gateway repo.PaymentGateway,
	urls CheckoutURLs,
	logger *zap.Logger,
) *CheckoutUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutUsecase{
		sessions:    sessions,
		productRepo: productRepo,
		gateway:     gateway,
		urls:        urls,
		logger:      logger,
	}
}

type CheckoutOutput struct {
	CheckoutID  string `json:"checkout_id"`
	RedirectURL string `json:"redirect_url"`
}

type BuyNowInput struct {
	ProductID string
	Quantity  int
}

// カート全体を明細ごとに決済へ。
func (u *CheckoutUsecase) CheckoutCart(ctx context.Context, sessionID string) (CheckoutOutput, error) {
	if sessionID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	//この時点の明細で依頼を作る
	items := u.sessions.Cart(ctx, sessionID).Items()
	if len(items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	lines := make([]model.CheckoutLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, toCheckoutLine(it))
	}

	return u.submit(ctx, sessionID, lines)
}

// 商品ページからの即購入（カートを通さない）
func (u *CheckoutUsecase) BuyNow(ctx context.Context, in BuyNowInput) (CheckoutOutput, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Quantity < 1 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.InStock {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}

	return u.submit(ctx, "", []model.CheckoutLine{{
		ProductID: p.ID,
		PriceID:   model.PriceIDFor(p.ID),
		Quantity:  in.Quantity,
	}})
}

// 決済成功の戻り（success page）でカートを空にする。
func (u *CheckoutUsecase) CompleteCheckout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusUnauthorized, "no session")
	}

	s := u.sessions.Cart(ctx, sessionID)
	s.ClearCart()
	u.sessions.Persist(ctx, sessionID, s)
	return nil
}

// 失敗してもリトライしない。カートはそのまま。
func (u *CheckoutUsecase) submit(ctx context.Context, sessionID string, lines []model.CheckoutLine) (CheckoutOutput, error) {
	res, err := u.gateway.CreateCheckout(ctx, model.CheckoutRequest{
		Items:      lines,
		SuccessURL: u.urls.SuccessURL,
		CancelURL:  u.urls.CancelURL,
	})
	if err != nil {
		u.logger.Error("checkout failed",
			zap.String("session_id", sessionID),
			zap.Int("lines", len(lines)),
			zap.Error(err))
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "checkout failed")
	}

	u.logger.Info("checkout created",
		zap.String("session_id", sessionID),
		zap.String("checkout_id", res.SessionID),
		zap.Int("lines", len(lines)))

	return CheckoutOutput{CheckoutID: res.SessionID, RedirectURL: res.RedirectURL}, nil
}

func toCheckoutLine(it model.CartLineItem) model.CheckoutLine {
	return model.CheckoutLine{
		ProductID: it.ProductID,
		PriceID:   model.PriceIDFor(it.ProductID),
		Quantity:  it.Quantity,
	}
}
