package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 外部決済（ホスト型）への依頼。
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req model.CheckoutRequest) (model.CheckoutResult, error)
}
