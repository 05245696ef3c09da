package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/cart"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// セッションとカートの対応を持つもの（session.Manager）
type CartSessions interface {
	Cart(ctx context.Context, sessionID string) *cart.Store
	Persist(ctx context.Context, sessionID string, s *cart.Store)
	End(ctx context.Context, sessionID string)
}

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	sessions    CartSessions
	productRepo repo.ProductRepository
}

func NewCartUsecase(sessions CartSessions, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		sessions:    sessions,
		productRepo: productRepo,
	}
}

// 金額は表示用に小数2桁の文字列で返す。
type CartItemResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Image         string `json:"image"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
	LineTotal     string `json:"line_total"`
}

type CartResponse struct {
	Items                 []CartItemResponse `json:"items"`
	TotalItems            int                `json:"total_items"`
	TotalPrice            string             `json:"total_price"`
	ShippingCost          string             `json:"shipping_cost"`
	Tax                   string             `json:"tax"`
	FinalTotal            string             `json:"final_total"`
	FreeShippingRemaining string             `json:"free_shipping_remaining"`
}

type AddCartInput struct {
	ProductID     string
	Quantity      int
	SelectedSize  string
	SelectedColor string
}

// 明細の指定（productID + size + color）
type CartLineInput struct {
	ProductID     string
	SelectedSize  string
	SelectedColor string
}

type UpdateCartItemInput struct {
	CartLineInput
	Quantity int
}

func (in CartLineInput) key() cart.LineKey {
	return cart.LineKey{
		ProductID:     strings.TrimSpace(in.ProductID),
		SelectedSize:  strings.TrimSpace(in.SelectedSize),
		SelectedColor: strings.TrimSpace(in.SelectedColor),
	}
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return buildCartResponse(u.sessions.Cart(ctx, sessionID)), nil
}

// AddToCart はカートに追加（同じ商品・サイズ・色は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.InStock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}

	//サイズ・色は商品の定義にあるものだけ（未選択はOK）
	size := strings.TrimSpace(in.SelectedSize)
	color := strings.TrimSpace(in.SelectedColor)
	if !p.HasSize(size) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid size")
	}
	if !p.HasColor(color) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid color")
	}

	s := u.sessions.Cart(ctx, sessionID)
	if err := s.AddToCart(p, in.Quantity, size, color); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	u.sessions.Persist(ctx, sessionID, s)

	return buildCartResponse(s), nil
}

// 数量変更（絶対値）。1未満なら削除、該当なしは何もしない。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, sessionID string, in UpdateCartItemInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	key := in.key()
	if key.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s := u.sessions.Cart(ctx, sessionID)
	s.UpdateQuantity(key, in.Quantity)
	u.sessions.Persist(ctx, sessionID, s)

	return buildCartResponse(s), nil
}

// 明細削除（無くてもOK）
func (u *CartUsecase) DeleteCartItem(ctx context.Context, sessionID string, in CartLineInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	key := in.key()
	if key.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s := u.sessions.Cart(ctx, sessionID)
	s.RemoveFromCart(key)
	u.sessions.Persist(ctx, sessionID, s)

	return buildCartResponse(s), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	s := u.sessions.Cart(ctx, sessionID)
	s.ClearCart()
	u.sessions.Persist(ctx, sessionID, s)

	return buildCartResponse(s), nil
}

// セッション終了（ログアウト等）
func (u *CartUsecase) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusUnauthorized, "no session")
	}
	u.sessions.End(ctx, sessionID)
	return nil
}

// 明細と合計をまとめてCartResponseを作る。合計は必ずSummaryから。
func buildCartResponse(s *cart.Store) CartResponse {
	items := s.Items()
	sum := s.Policy().Summarize(items)

	respItems := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		respItems = append(respItems, CartItemResponse{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Price:         money(it.Price),
			Image:         it.Image,
			Quantity:      it.Quantity,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
			LineTotal:     money(it.LineTotal()),
		})
	}

	return CartResponse{
		Items:                 respItems,
		TotalItems:            sum.TotalItems,
		TotalPrice:            money(sum.TotalPrice),
		ShippingCost:          money(sum.ShippingCost),
		Tax:                   money(sum.Tax),
		FinalTotal:            money(sum.FinalTotal),
		FreeShippingRemaining: money(sum.FreeShippingRemaining),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

