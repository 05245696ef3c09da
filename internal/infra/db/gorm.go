package db

import (
	"fmt"

	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return gdb, nil
}

// カタログのテーブルを作る
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&model.Product{})
}
