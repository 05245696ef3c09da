package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// セッションカートの保存先。無い場合はErrNotFound。
type CartSnapshotRepository interface {
	Load(ctx context.Context, sessionID string) (model.CartSnapshot, error)
	Save(ctx context.Context, snap model.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}
