// internal/models/product_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 100.0, Round2(100.004))
}

func TestPromotionPrice(t *testing.T) {
	assert.Equal(t, 80.0, PromotionPrice(100, 20))
	assert.Equal(t, 66.67, PromotionPrice(100, 33.33))
	assert.Equal(t, 100.0, PromotionPrice(100, 0))
	assert.Equal(t, 0.0, PromotionPrice(100, 100))
	assert.Equal(t, 13.33, PromotionPrice(19.99, 33.33))
}

func TestRecordPriceChange(t *testing.T) {
	now := time.Now()
	p := &Product{Price: 50}

	p.RecordPriceChange(50, now)
	assert.Empty(t, p.PriceChanges, "unchanged price must not be recorded")

	p.RecordPriceChange(40, now)
	require.Len(t, p.PriceChanges, 1)
	assert.Equal(t, 50.0, p.PriceChanges[0].OldPrice)
	assert.Equal(t, 40.0, p.PriceChanges[0].NewPrice)
	assert.Equal(t, 40.0, p.Price)

	p.RecordPriceChange(45, now)
	require.Len(t, p.PriceChanges, 2)
	assert.Equal(t, 40.0, p.PriceChanges[1].OldPrice)
}

func TestEnablePromotion(t *testing.T) {
	now := time.Now()
	end := now.Add(7 * 24 * time.Hour)
	p := &Product{Price: 100, OriginalPrice: 100}

	p.EnablePromotion(25, 100, &end, now)

	assert.True(t, p.IsPromotion)
	assert.Equal(t, 75.0, p.Price)
	assert.Equal(t, 100.0, p.OriginalPrice)
	assert.Equal(t, 25.0, p.Discount)
	require.NotNil(t, p.PromoEndDate)

	require.Len(t, p.PromoHistory, 1)
	assert.Equal(t, PromotionEnabled, p.PromoHistory[0].Action)
	assert.Equal(t, 25.0, p.PromoHistory[0].Discount)

	require.Len(t, p.PriceChanges, 1)
	assert.Equal(t, 100.0, p.PriceChanges[0].OldPrice)
	assert.Equal(t, 75.0, p.PriceChanges[0].NewPrice)
}

func TestDisablePromotionPatchesLastEvent(t *testing.T) {
	now := time.Now()
	p := &Product{Price: 100, OriginalPrice: 100}

	p.EnablePromotion(10, 100, nil, now)
	require.Len(t, p.PromoHistory, 1)

	later := now.Add(time.Hour)
	p.DisablePromotion(100, later)

	assert.False(t, p.IsPromotion)
	assert.Equal(t, 100.0, p.Price)
	assert.Equal(t, 0.0, p.Discount)
	assert.Nil(t, p.PromoEndDate)

	// Disable closes the existing event instead of appending a new one.
	require.Len(t, p.PromoHistory, 1)
	assert.Equal(t, PromotionDisabled, p.PromoHistory[0].Action)
	require.NotNil(t, p.PromoHistory[0].EndDate)
	assert.Equal(t, later, *p.PromoHistory[0].EndDate)

	// Two price changes: into the promotion and back out.
	assert.Len(t, p.PriceChanges, 2)
}

func TestReEnableAppendsNewEvent(t *testing.T) {
	now := time.Now()
	p := &Product{Price: 100, OriginalPrice: 100}

	p.EnablePromotion(10, 100, nil, now)
	p.DisablePromotion(100, now.Add(time.Hour))
	p.EnablePromotion(30, 100, nil, now.Add(2*time.Hour))

	require.Len(t, p.PromoHistory, 2)
	assert.Equal(t, PromotionDisabled, p.PromoHistory[0].Action)
	assert.Equal(t, PromotionEnabled, p.PromoHistory[1].Action)
	assert.Equal(t, 70.0, p.Price)
}

func TestDisablePromotionOnRegularProduct(t *testing.T) {
	now := time.Now()
	p := &Product{Price: 60, OriginalPrice: 60}

	p.DisablePromotion(60, now)

	assert.False(t, p.IsPromotion)
	assert.Equal(t, 60.0, p.Price)
	assert.Empty(t, p.PriceChanges)
	assert.Empty(t, p.PromoHistory)
}

func TestLowStock(t *testing.T) {
	p := &Product{Stock: ProductStock{Quantity: 5, LowStockAlert: 5}}
	assert.True(t, p.LowStock())

	p.Stock.Quantity = 6
	assert.False(t, p.LowStock())

	p.Stock.Quantity = 0
	assert.True(t, p.LowStock())
}

func TestProductMarkDeleted(t *testing.T) {
	p := &Product{IsActive: true}
	require.False(t, p.IsDeleted())

	p.MarkDeleted(nil)

	assert.True(t, p.IsDeleted())
	assert.False(t, p.IsActive)
	assert.NotNil(t, p.DeletedAt)
}
