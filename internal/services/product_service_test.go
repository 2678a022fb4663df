// internal/services/product_service_test.go
package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centremall/mall-backend/internal/models"
)

func TestCreateProductRequestCarriesPromotionFields(t *testing.T) {
	payload := `{"shopId":"3f2b8c44-9c1a-4f6e-8d2b-1a2b3c4d5e6f","name":"Veste","price":100,"isPromotion":true,"discount":20,"originalPrice":120,"promoEndDate":"2026-12-01T00:00:00Z"}`

	var req CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.True(t, req.IsPromotion)
	assert.Equal(t, 20.0, req.Discount)
	require.NotNil(t, req.OriginalPrice)
	assert.Equal(t, 120.0, *req.OriginalPrice)
	require.NotNil(t, req.PromoEndDate)
}

func TestBuildProductInPromotion(t *testing.T) {
	now := time.Now()
	req := &CreateProductRequest{
		Name:        "Veste",
		Price:       100,
		IsPromotion: true,
		Discount:    20,
	}

	product := buildProduct(req, nil, now)

	assert.True(t, product.IsPromotion)
	assert.Equal(t, 80.0, product.Price)
	assert.Equal(t, 100.0, product.OriginalPrice)

	require.Len(t, product.PromoHistory, 1)
	assert.Equal(t, models.PromotionEnabled, product.PromoHistory[0].Action)

	require.Len(t, product.PriceChanges, 1)
	assert.Equal(t, 100.0, product.PriceChanges[0].OldPrice)
	assert.Equal(t, 80.0, product.PriceChanges[0].NewPrice)
}

func TestBuildProductPromotionWithExplicitBaseline(t *testing.T) {
	baseline := 120.0
	req := &CreateProductRequest{
		Name:          "Veste",
		Price:         100,
		OriginalPrice: &baseline,
		IsPromotion:   true,
		Discount:      50,
	}

	product := buildProduct(req, nil, time.Now())

	assert.Equal(t, 60.0, product.Price)
	assert.Equal(t, 120.0, product.OriginalPrice)
	require.Len(t, product.PriceChanges, 1)
	assert.Equal(t, 120.0, product.PriceChanges[0].OldPrice)
}

func TestBuildProductZeroDiscountPromotion(t *testing.T) {
	req := &CreateProductRequest{
		Name:        "Veste",
		Price:       100,
		IsPromotion: true,
		Discount:    0,
	}

	product := buildProduct(req, nil, time.Now())

	assert.True(t, product.IsPromotion)
	assert.Equal(t, product.OriginalPrice, product.Price)
	require.Len(t, product.PromoHistory, 1)
	assert.Empty(t, product.PriceChanges, "no price movement, no history entry")
}

func TestBuildProductWithoutPromotion(t *testing.T) {
	req := &CreateProductRequest{Name: "Veste", Price: 100, Quantity: 3}

	product := buildProduct(req, []string{"/uploads/a.jpg"}, time.Now())

	assert.False(t, product.IsPromotion)
	assert.Equal(t, 100.0, product.Price)
	assert.Equal(t, 100.0, product.OriginalPrice)
	assert.Equal(t, 3, product.Stock.Quantity)
	assert.Equal(t, 5, product.Stock.LowStockAlert)
	assert.Empty(t, product.PromoHistory)
	assert.Empty(t, product.PriceChanges)
}
