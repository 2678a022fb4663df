// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is a denormalized line snapshot; product name and price are
// copied at order time so later edits do not rewrite history.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	ShopID    uuid.UUID `json:"shopId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Subtotal  float64   `json:"subtotal"`
	Image     string    `json:"image,omitempty"`
}

type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	return json.Marshal(i)
}

func (i *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("order items scan: expected []byte")
	}
	return json.Unmarshal(bytes, i)
}

type DeliveryInfo struct {
	Method  string  `json:"method"`
	Address Address `json:"address"`
	Phone   string  `json:"phone"`
}

func (d DeliveryInfo) Value() (driver.Value, error) { return json.Marshal(d) }

func (d *DeliveryInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("delivery info scan: expected []byte")
	}
	return json.Unmarshal(bytes, d)
}

type PaymentInfo struct {
	Method string        `json:"method"`
	Status PaymentStatus `json:"status"`
	PaidAt *time.Time    `json:"paidAt,omitempty"`
}

func (p PaymentInfo) Value() (driver.Value, error) { return json.Marshal(p) }

func (p *PaymentInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("payment info scan: expected []byte")
	}
	return json.Unmarshal(bytes, p)
}

// Order is read by the dashboard aggregator only; order placement and
// fulfillment are handled by the client-facing service.
type Order struct {
	BaseModel
	OrderNumber string       `json:"orderNumber" gorm:"uniqueIndex;size:40;not null"`
	CustomerID  uuid.UUID    `json:"customerId" gorm:"type:uuid;not null;index"`
	Items       OrderItems   `json:"items" gorm:"type:jsonb"`
	TotalAmount float64      `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Status      OrderStatus  `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Delivery    DeliveryInfo `json:"deliveryInfo" gorm:"column:delivery_info;type:jsonb"`
	Payment     PaymentInfo  `json:"paymentInfo" gorm:"column:payment_info;type:jsonb"`
	Notes       string       `json:"notes" gorm:"type:text"`
	SoftDelete

	Customer *User `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (o *Order) MarkDeleted(deletedBy *uuid.UUID) {
	o.markDeleted(deletedBy)
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = fmt.Sprintf("ORD-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))
	}
	return nil
}

type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	ShopID    uuid.UUID `json:"shopId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	AddedAt   time.Time `json:"addedAt"`
}

type CartItems []CartItem

func (i CartItems) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	return json.Marshal(i)
}

func (i *CartItems) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("cart items scan: expected []byte")
	}
	return json.Unmarshal(bytes, i)
}

type Cart struct {
	BaseModel
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	Items       CartItems `json:"items" gorm:"type:jsonb"`
	TotalAmount float64   `json:"totalAmount" gorm:"type:decimal(12,2);default:0"`
	SoftDelete
}

func (c *Cart) MarkDeleted(deletedBy *uuid.UUID) {
	c.markDeleted(deletedBy)
}

// CalculateTotal recomputes the cart total from its items.
func (c *Cart) CalculateTotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalAmount = total
	return total
}

// Notification is an in-app message addressed to one user, created when
// admins act on shops or boutique-owner accounts.
type Notification struct {
	BaseModel
	UserID       uuid.UUID        `json:"userId" gorm:"type:uuid;not null;index"`
	Type         NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	Title        string           `json:"title" gorm:"size:255;not null"`
	Message      string           `json:"message" gorm:"type:text;not null"`
	RelatedID    *uuid.UUID       `json:"relatedId,omitempty" gorm:"type:uuid"`
	RelatedModel string           `json:"relatedModel,omitempty" gorm:"size:20"`
	IsRead       bool             `json:"isRead" gorm:"default:false"`
	SoftDelete
}

func (n *Notification) MarkDeleted(deletedBy *uuid.UUID) {
	n.markDeleted(deletedBy)
}

// MallSettings is a single-row document describing the mall itself.
type MallSettings struct {
	BaseModel
	Name        string      `json:"name" gorm:"size:255;not null"`
	Description string      `json:"description" gorm:"type:text"`
	Address     Address     `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Contact     JSONB       `json:"contact" gorm:"type:jsonb"`
	Hours       WeeklyHours `json:"hours" gorm:"type:jsonb"`
	Logo        string      `json:"logo" gorm:"size:500"`
	SocialMedia JSONB       `json:"socialMedia" gorm:"column:social_media;type:jsonb"`
}
