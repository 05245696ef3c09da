package cart

import (
	"errors"
	"sync"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// 明細の同一性（productID, size, color）
type LineKey struct {
	ProductID     string
	SelectedSize  string
	SelectedColor string
}

func KeyOf(it model.CartLineItem) LineKey {
	return LineKey{
		ProductID:     it.ProductID,
		SelectedSize:  it.SelectedSize,
		SelectedColor: it.SelectedColor,
	}
}

// Store は1セッション分のカート。
// 合計値は保持せず、読むたびに明細から計算する。
type Store struct {
	mu     sync.Mutex
	items  []model.CartLineItem
	policy Policy
}

func NewStore(policy Policy) *Store {
	return &Store{policy: policy}
}

// 同じ組み合わせなら数量を加算、違えば末尾に追加。
func (s *Store) AddToCart(p model.Product, quantity int, selectedSize, selectedColor string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := LineKey{ProductID: p.ID, SelectedSize: selectedSize, SelectedColor: selectedColor}
	if i := s.indexOf(key); i >= 0 {
		s.items[i].Quantity += quantity
		return nil
	}

	s.items = append(s.items, model.CartLineItem{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		Quantity:      quantity,
		SelectedSize:  selectedSize,
		SelectedColor: selectedColor,
	})
	return nil
}

// 数量を絶対値で設定。1未満なら明細ごと削除。無ければ何もしない。
func (s *Store) UpdateQuantity(key LineKey, newQuantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return
	}
	if newQuantity < 1 {
		s.removeAt(i)
		return
	}
	s.items[i].Quantity = newQuantity
}

func (s *Store) RemoveFromCart(key LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(key); i >= 0 {
		s.removeAt(i)
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}

// 表示順のコピーを返す
func (s *Store) Items() []model.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) TotalItems() int {
	return s.Summary().TotalItems
}

func (s *Store) TotalPrice() decimal.Decimal {
	return s.Summary().TotalPrice
}

func (s *Store) Summary() Summary {
	return s.policy.Summarize(s.Items())
}

func (s *Store) Policy() Policy {
	return s.policy
}

// 保存用
func (s *Store) Snapshot() []model.CartLineItem {
	return s.Items()
}

// 保存済みの明細をそのまま並べ直す。マージは通さない。
func (s *Store) Restore(items []model.CartLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]model.CartLineItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 {
			continue
		}
		s.items = append(s.items, it)
	}
}

func (s *Store) indexOf(key LineKey) int {
	for i, it := range s.items {
		if KeyOf(it) == key {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}
