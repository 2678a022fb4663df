// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SoftDelete is the shared soft-deletion marker. Records are never removed
// physically; default reads must exclude rows with a non-nil DeletedAt.
type SoftDelete struct {
	DeletedAt *time.Time `json:"deletedAt,omitempty" gorm:"index"`
	DeletedBy *uuid.UUID `json:"deletedBy,omitempty" gorm:"type:uuid"`
}

func (sd *SoftDelete) markDeleted(deletedBy *uuid.UUID) {
	now := time.Now()
	sd.DeletedAt = &now
	sd.DeletedBy = deletedBy
}

func (sd *SoftDelete) IsDeleted() bool {
	return sd.DeletedAt != nil
}

// SoftDeletable is implemented by every entity supporting soft deletion.
// MarkDeleted stamps the marker and, when the entity carries an isActive
// flag, forces it to false.
type SoftDeletable interface {
	MarkDeleted(deletedBy *uuid.UUID)
}

// NotDeleted is the default read scope excluding soft-deleted rows.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// WithDeleted keeps deleted rows visible when includeDeleted is true.
func WithDeleted(includeDeleted bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeDeleted {
			return db
		}
		return NotDeleted(db)
	}
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("jsonb scan: expected []byte")
	}

	return json.Unmarshal(bytes, j)
}

// Address is shared between users, orders and mall settings.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Enums
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleBoutique UserRole = "boutique"
	RoleClient   UserRole = "client"
)

type CategoryType string

const (
	CategoryTypeBoutique CategoryType = "boutique"
	CategoryTypeProduit  CategoryType = "produit"
)

type ShopStatus string

const (
	ShopStatusPending   ShopStatus = "pending"
	ShopStatusActive    ShopStatus = "active"
	ShopStatusSuspended ShopStatus = "suspended"
	ShopStatusRejected  ShopStatus = "rejected"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	// Legacy value still present in historical data; counted as revenue.
	OrderStatusPaid OrderStatus = "paid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type PromotionAction string

const (
	PromotionEnabled  PromotionAction = "enabled"
	PromotionDisabled PromotionAction = "disabled"
)

type NotificationType string

const (
	NotificationTypeOrder     NotificationType = "order"
	NotificationTypeShop      NotificationType = "shop"
	NotificationTypeSystem    NotificationType = "system"
	NotificationTypePromotion NotificationType = "promotion"
)
