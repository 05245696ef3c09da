package db

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

const imgBase = "https://images.unsplash.com/"

func img(id string) string {
	return imgBase + id + "?auto=format&fit=crop&w=800&q=80"
}

// 開発用のサンプル商品
func SampleCatalog() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Premium Cotton T-Shirt",
			Description: "Soft, breathable cotton t-shirt perfect for everyday wear. Features a comfortable fit and durable construction.",
			Price:       decimal.RequireFromString("29.99"),
			Image:       img("photo-1543218241-f5f4e1cbf4e1"),
			Images:      []string{img("photo-1543218241-f5f4e1cbf4e1"), img("photo-1589886704088-e702adc08e3c")},
			Category:    "Apparel",
			Rating:      4.5,
			RatingCount: 124,
			InStock:     true,
			Featured:    true,
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors: []model.ProductColor{
				{Name: "White", Hex: "#FFFFFF"},
				{Name: "Black", Hex: "#000000"},
				{Name: "Navy", Hex: "#1e3a8a"},
			},
		},
		{
			ID:          "2",
			Name:        "Designer Hoodie",
			Description: "Cozy fleece-lined hoodie with modern design elements. Perfect for casual outings and lounging.",
			Price:       decimal.RequireFromString("59.99"),
			Image:       img("photo-1577179362142-865076aff455"),
			Category:    "Apparel",
			Rating:      4.8,
			RatingCount: 89,
			InStock:     true,
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			ID:          "3",
			Name:        "Athletic Wear Set",
			Description: "High-performance athletic wear designed for comfort and mobility during workouts.",
			Price:       decimal.RequireFromString("79.99"),
			Image:       img("photo-1587382667677-aa1304be4776"),
			Category:    "Sportswear",
			Rating:      4.6,
			RatingCount: 156,
			InStock:     true,
			Featured:    true,
			Sizes:       []string{"XS", "S", "M", "L"},
		},
		{
			ID:          "4",
			Name:        "Adventure Jacket",
			Description: "Weather-resistant jacket perfect for outdoor adventures. Features multiple pockets and ventilation.",
			Price:       decimal.RequireFromString("129.99"),
			Image:       img("photo-1586999082716-202e0f2f8c12"),
			Category:    "Outerwear",
			Rating:      4.9,
			RatingCount: 203,
			InStock:     true,
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		},
		{
			ID:          "5",
			Name:        "Casual Denim Jacket",
			Description: "Classic denim jacket with a modern twist. Perfect for layering and casual styling.",
			Price:       decimal.RequireFromString("89.99"),
			Image:       img("photo-1554357475-68b18d2d5f01"),
			Category:    "Outerwear",
			Rating:      4.3,
			RatingCount: 67,
			InStock:     true,
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
		},
		{
			ID:          "6",
			Name:        "Winter Coat",
			Description: "Warm, insulated winter coat designed to keep you comfortable in cold weather conditions.",
			Price:       decimal.RequireFromString("199.99"),
			Image:       img("photo-1553034132-0234e7dd7a57"),
			Category:    "Outerwear",
			Rating:      4.7,
			RatingCount: 134,
			InStock:     true,
			Featured:    true,
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			ID:          "7",
			Name:        "Lightweight Sweater",
			Description: "Soft, lightweight sweater perfect for transitional weather. Features a comfortable relaxed fit.",
			Price:       decimal.RequireFromString("49.99"),
			Image:       img("photo-1561810051-ad54701df7a3"),
			Category:    "Apparel",
			Rating:      4.4,
			RatingCount: 91,
			InStock:     true,
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		},
		{
			ID:          "8",
			Name:        "Premium Denim Jeans",
			Description: "High-quality denim jeans with perfect fit and durability. A wardrobe essential for every style.",
			Price:       decimal.RequireFromString("79.99"),
			Image:       img("photo-1589886704088-e702adc08e3c"),
			Category:    "Apparel",
			Rating:      4.6,
			RatingCount: 178,
			InStock:     true,
			Sizes:       []string{"28", "30", "32", "34", "36", "38"},
		},
	}
}

// サンプル商品を投入（同じIDは上書き）
func SeedCatalog(ctx context.Context, products repo.ProductRepository) (int, error) {
	catalog := SampleCatalog()
	for _, p := range catalog {
		if err := products.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return len(catalog), nil
}
