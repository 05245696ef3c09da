package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Q        string
	Category string
	Featured bool
	Sort     string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, p model.Product) error
}
