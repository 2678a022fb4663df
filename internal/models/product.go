// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PromotionEvent records one enable/disable of a promotion. Enabling appends
// a new event; disabling patches the latest one in place (action + endDate),
// so the slice length only grows on enable.
type PromotionEvent struct {
	Discount  float64          `json:"discount"`
	StartDate time.Time        `json:"startDate"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	Action    PromotionAction  `json:"action"`
	CreatedAt time.Time        `json:"createdAt"`
}

type PromotionHistory []PromotionEvent

func (h PromotionHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *PromotionHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("promotion history scan: expected []byte")
	}
	return json.Unmarshal(bytes, h)
}

// PriceChange is one entry of the append-only price audit trail.
type PriceChange struct {
	OldPrice  float64   `json:"oldPrice"`
	NewPrice  float64   `json:"newPrice"`
	ChangedAt time.Time `json:"changedAt"`
}

type PriceHistory []PriceChange

func (h PriceHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *PriceHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("price history scan: expected []byte")
	}
	return json.Unmarshal(bytes, h)
}

// Specifications is a free-form string-to-string bag; keys are whatever the
// shop owner typed in.
type Specifications map[string]string

func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *Specifications) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("specifications scan: expected []byte")
	}
	return json.Unmarshal(bytes, s)
}

type ProductStock struct {
	Quantity      int `json:"quantity" gorm:"default:0"`
	LowStockAlert int `json:"lowStockAlert" gorm:"default:5"`
}

// ProductStatistics is denormalized, maintained by view tracking and order
// fulfillment outside this service.
type ProductStatistics struct {
	Views int64 `json:"views" gorm:"default:0"`
	Sold  int64 `json:"sold" gorm:"default:0"`
}

type Product struct {
	BaseModel
	ShopID        uuid.UUID         `json:"shopId" gorm:"type:uuid;not null;index"`
	Name          string            `json:"name" gorm:"size:255;not null"`
	Description   string            `json:"description" gorm:"type:text"`
	Price         float64           `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice float64           `json:"originalPrice" gorm:"type:decimal(10,2)"`
	Discount      float64           `json:"discount" gorm:"type:decimal(5,2);default:0"`
	PromoEndDate  *time.Time        `json:"promoEndDate,omitempty"`
	CategoryID    *uuid.UUID        `json:"category" gorm:"column:category_id;type:uuid;index"`
	Images        pq.StringArray    `json:"images" gorm:"type:text[]"`
	Stock         ProductStock      `json:"stock" gorm:"embedded;embeddedPrefix:stock_"`
	IsPromotion   bool              `json:"isPromotion" gorm:"default:false;index"`
	IsActive      bool              `json:"isActive" gorm:"default:true;index"`
	PromoHistory  PromotionHistory  `json:"promotionHistory" gorm:"column:promotion_history;type:jsonb"`
	PriceChanges  PriceHistory      `json:"priceHistory" gorm:"column:price_history;type:jsonb"`
	Specs         Specifications    `json:"specifications" gorm:"column:specifications;type:jsonb"`
	Statistics    ProductStatistics `json:"statistics" gorm:"embedded;embeddedPrefix:stats_"`
	SoftDelete

	// Relationships
	Shop     *Shop     `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	Category *Category `json:"categoryInfo,omitempty" gorm:"foreignKey:CategoryID"`
}

func (p *Product) MarkDeleted(deletedBy *uuid.UUID) {
	p.markDeleted(deletedBy)
	p.IsActive = false
}

// Round2 rounds to 2 decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PromotionPrice derives the effective price from the baseline and a
// percentage discount in [0,100].
func PromotionPrice(originalPrice, discount float64) float64 {
	return Round2(originalPrice * (1 - discount/100))
}

// RecordPriceChange appends a price audit entry and applies the new price.
// No entry is written when the price is unchanged.
func (p *Product) RecordPriceChange(newPrice float64, now time.Time) {
	if p.Price == newPrice {
		return
	}
	p.PriceChanges = append(p.PriceChanges, PriceChange{
		OldPrice:  p.Price,
		NewPrice:  newPrice,
		ChangedAt: now,
	})
	p.Price = newPrice
}

// EnablePromotion recomputes the effective price from the baseline, records
// the price change and appends an enable event to the promotion history.
func (p *Product) EnablePromotion(discount, originalPrice float64, endDate *time.Time, now time.Time) {
	promoPrice := PromotionPrice(originalPrice, discount)
	p.RecordPriceChange(promoPrice, now)
	p.IsPromotion = true
	p.Discount = discount
	p.OriginalPrice = originalPrice
	p.PromoEndDate = endDate
	p.PromoHistory = append(p.PromoHistory, PromotionEvent{
		Discount:  discount,
		StartDate: now,
		EndDate:   endDate,
		Action:    PromotionEnabled,
		CreatedAt: now,
	})
}

// DisablePromotion restores the baseline price and closes the most recent
// promotion event in place instead of appending a new one.
func (p *Product) DisablePromotion(originalPrice float64, now time.Time) {
	p.RecordPriceChange(originalPrice, now)
	p.IsPromotion = false
	p.Discount = 0
	p.OriginalPrice = originalPrice
	p.PromoEndDate = nil
	if n := len(p.PromoHistory); n > 0 {
		last := &p.PromoHistory[n-1]
		last.Action = PromotionDisabled
		end := now
		last.EndDate = &end
	}
}

// LowStock reports whether the quantity has fallen to the alert threshold.
func (p *Product) LowStock() bool {
	return p.Stock.Quantity <= p.Stock.LowStockAlert
}
