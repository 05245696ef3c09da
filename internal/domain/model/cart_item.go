package model

import "github.com/shopspring/decimal"

// カートの明細
// name/price/imageは追加時点のスナップショット。
type CartLineItem struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selected_size,omitempty"`
	SelectedColor string          `json:"selected_color,omitempty"`
}

// price × quantity
func (it CartLineItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
