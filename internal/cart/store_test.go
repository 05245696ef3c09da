package cart

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tshirt() model.Product {
	return model.Product{
		ID:    "1",
		Name:  "Premium Cotton T-Shirt",
		Price: decimal.RequireFromString("29.99"),
		Image: "https://example.com/tshirt.jpg",
		Sizes: []string{"S", "M", "L"},
		Colors: []model.ProductColor{
			{Name: "White", Hex: "#FFFFFF"},
			{Name: "Black", Hex: "#000000"},
		},
	}
}

func hoodie() model.Product {
	return model.Product{
		ID:    "2",
		Name:  "Designer Hoodie",
		Price: decimal.RequireFromString("59.99"),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStore_AddToCart_MergesSameIdentity(t *testing.T) {
	s := NewStore(DefaultPolicy())

	require.NoError(t, s.AddToCart(tshirt(), 2, "M", "White"))
	require.NoError(t, s.AddToCart(tshirt(), 1, "M", "White"))
	require.NoError(t, s.AddToCart(tshirt(), 4, "M", "White"))

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestStore_AddToCart_DistinctVariantsAreSeparateLines(t *testing.T) {
	s := NewStore(DefaultPolicy())

	require.NoError(t, s.AddToCart(tshirt(), 1, "M", "White"))
	require.NoError(t, s.AddToCart(tshirt(), 1, "M", "Black"))
	require.NoError(t, s.AddToCart(tshirt(), 1, "L", "White"))
	require.NoError(t, s.AddToCart(tshirt(), 1, "", ""))

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 4, s.TotalItems())
}

func TestStore_AddToCart_KeepsPositionOnMerge(t *testing.T) {
	s := NewStore(DefaultPolicy())

	require.NoError(t, s.AddToCart(tshirt(), 1, "M", ""))
	require.NoError(t, s.AddToCart(hoodie(), 1, "", ""))
	require.NoError(t, s.AddToCart(tshirt(), 2, "M", ""))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "2", items[1].ProductID)
}

func TestStore_AddToCart_RejectsNonPositiveQuantity(t *testing.T) {
	s := NewStore(DefaultPolicy())
	require.NoError(t, s.AddToCart(tshirt(), 1, "M", ""))

	assert.ErrorIs(t, s.AddToCart(tshirt(), 0, "M", ""), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddToCart(tshirt(), -3, "M", ""), ErrInvalidQuantity)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_AddToCart_SnapshotsProductAtAddTime(t *testing.T) {
	s := NewStore(DefaultPolicy())
	p := tshirt()
	require.NoError(t, s.AddToCart(p, 1, "M", ""))

	//カタログ側の値が変わっても既存明細は変わらない
	p.Price = dec("99.00")
	p.Name = "Renamed"
	require.NoError(t, s.AddToCart(p, 1, "M", ""))

	items := s.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(dec("29.99")))
	assert.Equal(t, "Premium Cotton T-Shirt", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_UpdateQuantity(t *testing.T) {
	s := NewStore(DefaultPolicy())
	require.NoError(t, s.AddToCart(tshirt(), 2, "M", ""))

	s.UpdateQuantity(LineKey{ProductID: "1", SelectedSize: "M"}, 5)
	assert.Equal(t, 5, s.Items()[0].Quantity)

	//存在しない組み合わせは何もしない
	s.UpdateQuantity(LineKey{ProductID: "1", SelectedSize: "XL"}, 9)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 5, s.TotalItems())
}

func TestStore_UpdateQuantity_BelowOneRemovesLine(t *testing.T) {
	s := NewStore(DefaultPolicy())
	require.NoError(t, s.AddToCart(tshirt(), 2, "M", ""))
	require.NoError(t, s.AddToCart(hoodie(), 1, "", ""))

	s.UpdateQuantity(LineKey{ProductID: "1", SelectedSize: "M"}, 0)
	s.UpdateQuantity(LineKey{ProductID: "2"}, -1)

	assert.Equal(t, 0, s.Len())
}

func TestStore_RemoveFromCart_Idempotent(t *testing.T) {
	s := NewStore(DefaultPolicy())
	require.NoError(t, s.AddToCart(tshirt(), 1, "S", ""))
	require.NoError(t, s.AddToCart(hoodie(), 1, "", ""))
	require.NoError(t, s.AddToCart(tshirt(), 1, "L", ""))

	key := LineKey{ProductID: "2"}
	s.RemoveFromCart(key)
	once := s.Items()
	s.RemoveFromCart(key)

	assert.Equal(t, once, s.Items())
	require.Len(t, once, 2)
	assert.Equal(t, "S", once[0].SelectedSize)
	assert.Equal(t, "L", once[1].SelectedSize)
}

func TestStore_ClearCart_Idempotent(t *testing.T) {
	s := NewStore(DefaultPolicy())
	require.NoError(t, s.AddToCart(tshirt(), 3, "M", ""))

	s.ClearCart()
	assert.Empty(t, s.Items())
	s.ClearCart()
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalPrice().IsZero())
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	s := NewStore(DefaultPolicy())
	require.NoError(t, s.AddToCart(tshirt(), 1, "M", ""))

	items := s.Items()
	items[0].Quantity = 100

	assert.Equal(t, 1, s.Items()[0].Quantity)
	assert.Equal(t, 1, s.TotalItems())
}

func TestStore_Restore_DoesNotMerge(t *testing.T) {
	s := NewStore(DefaultPolicy())
	require.NoError(t, s.AddToCart(hoodie(), 1, "", ""))

	saved := []model.CartLineItem{
		{ProductID: "1", Name: "A", Price: dec("10"), Quantity: 2, SelectedSize: "M"},
		{ProductID: "3", Name: "B", Price: dec("5"), Quantity: 1},
		{ProductID: "", Name: "broken", Price: dec("1"), Quantity: 1},
		{ProductID: "4", Name: "zero", Price: dec("1"), Quantity: 0},
	}
	s.Restore(saved)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, "3", items[1].ProductID)
	assert.Equal(t, 3, s.TotalItems())
	assert.True(t, s.TotalPrice().Equal(dec("25")))
}

// 2件追加→同じサイズを追加→別サイズ→数量0で削除
func TestStore_CheckoutScenario(t *testing.T) {
	s := NewStore(DefaultPolicy())
	p := model.Product{ID: "1", Name: "T", Price: dec("29.99")}

	require.NoError(t, s.AddToCart(p, 2, "M", ""))
	require.NoError(t, s.AddToCart(p, 1, "M", ""))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 3, s.Items()[0].Quantity)
	assert.Equal(t, 3, s.TotalItems())
	assert.True(t, s.TotalPrice().Equal(dec("89.97")))

	require.NoError(t, s.AddToCart(p, 1, "L", ""))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 4, s.TotalItems())
	assert.True(t, s.TotalPrice().Equal(dec("119.96")))

	s.UpdateQuantity(LineKey{ProductID: "1", SelectedSize: "M"}, 0)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].SelectedSize)
	assert.Equal(t, 1, s.TotalItems())

	sum := s.Summary()
	assert.True(t, sum.TotalPrice.Equal(dec("29.99")))
	assert.True(t, sum.ShippingCost.Equal(dec("9.99")))
	assert.True(t, sum.Tax.Equal(dec("2.3992")))
	assert.Equal(t, "2.40", sum.Tax.StringFixed(2))
	assert.Equal(t, "42.38", sum.FinalTotal.StringFixed(2))
}
