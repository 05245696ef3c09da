package cart

import (
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 通貨の最小単位
var minIncrement = decimal.RequireFromString("0.01")

// 送料・税のルール
type Policy struct {
	FreeShippingThreshold decimal.Decimal // これを「超えたら」送料無料
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingFee:       decimal.RequireFromString("9.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// 明細から計算した値。保存はしない。
type Summary struct {
	TotalItems            int
	TotalPrice            decimal.Decimal
	ShippingCost          decimal.Decimal
	Tax                   decimal.Decimal
	FinalTotal            decimal.Decimal
	FreeShippingRemaining decimal.Decimal
}

// 合計の計算はここだけで行う。
func (p Policy) Summarize(items []model.CartLineItem) Summary {
	var totalItems int
	totalPrice := decimal.Zero
	for _, it := range items {
		totalItems += it.Quantity
		totalPrice = totalPrice.Add(it.LineTotal())
	}

	shipping := p.FlatShippingFee
	if totalPrice.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	//税は丸めない（表示時に2桁）
	tax := totalPrice.Mul(p.TaxRate)

	//送料がかかる間は0にしない（ちょうど閾値なら最小単位の1セント）
	remaining := decimal.Zero
	if shipping.IsPositive() {
		remaining = decimal.Max(p.FreeShippingThreshold.Sub(totalPrice), minIncrement)
	}

	return Summary{
		TotalItems:            totalItems,
		TotalPrice:            totalPrice,
		ShippingCost:          shipping,
		Tax:                   tax,
		FinalTotal:            totalPrice.Add(shipping).Add(tax),
		FreeShippingRemaining: remaining,
	}
}
