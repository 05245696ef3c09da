package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 色の選択肢（name + hex）
type ProductColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// カタログの商品。カートからは読み取り専用。
type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Image       string          `gorm:"type:text" json:"image"`
	Images      []string        `gorm:"serializer:json;type:text" json:"images,omitempty"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Sizes       []string        `gorm:"serializer:json;type:text" json:"sizes,omitempty"`
	Colors      []ProductColor  `gorm:"serializer:json;type:text" json:"colors,omitempty"`
	Rating      float64         `gorm:"not null;default:0" json:"rating"`
	RatingCount int64           `gorm:"not null;default:0" json:"rating_count"`
	InStock     bool            `gorm:"not null;default:true" json:"in_stock"`
	Featured    bool            `gorm:"not null;default:false;index" json:"featured"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// sizesに含まれるか（sizes未定義なら空だけOK）
func (p Product) HasSize(size string) bool {
	if size == "" {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// colorsのnameに含まれるか
func (p Product) HasColor(color string) bool {
	if color == "" {
		return true
	}
	for _, c := range p.Colors {
		if c.Name == color {
			return true
		}
	}
	return false
}
