// internal/models/shop.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ShopLocation is the physical slot inside the mall, assigned on approval.
type ShopLocation struct {
	Floor      string `json:"floor"`
	Zone       string `json:"zone"`
	ShopNumber string `json:"shopNumber"`
}

type ShopContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeeklyHours maps lowercase weekday names to opening hours.
type WeeklyHours map[string]DayHours

func (h WeeklyHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *WeeklyHours) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("weekly hours scan: expected []byte")
	}
	return json.Unmarshal(bytes, h)
}

// ShopStatistics is denormalized and maintained by order fulfillment,
// outside this service's mutation paths.
type ShopStatistics struct {
	TotalOrders   int64   `json:"totalOrders" gorm:"default:0"`
	TotalRevenue  float64 `json:"totalRevenue" gorm:"type:decimal(12,2);default:0"`
	TotalProducts int64   `json:"totalProducts" gorm:"default:0"`
}

type Shop struct {
	BaseModel
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Logo        string         `json:"logo" gorm:"size:500"`
	CategoryID  uuid.UUID      `json:"category" gorm:"column:category_id;type:uuid;not null;index"`
	Location    ShopLocation   `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Contact     ShopContact    `json:"contact" gorm:"embedded;embeddedPrefix:contact_"`
	Hours       WeeklyHours    `json:"hours" gorm:"type:jsonb"`
	Status      ShopStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	IsActive    bool           `json:"isActive" gorm:"default:true"`
	Statistics  ShopStatistics `json:"statistics" gorm:"embedded;embeddedPrefix:stats_"`
	SoftDelete

	// Relationships
	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	Category *Category `json:"categoryInfo,omitempty" gorm:"foreignKey:CategoryID"`
}

func (s *Shop) MarkDeleted(deletedBy *uuid.UUID) {
	s.markDeleted(deletedBy)
	s.IsActive = false
}

// CanTransitionTo is the shop status transition table. Approval is only
// reachable from pending or suspended; rejection and suspension are allowed
// from any other status, matching the administrative workflow. There is no
// distinct un-suspend: a suspended shop goes back through approval.
func (s ShopStatus) CanTransitionTo(target ShopStatus) bool {
	if s == target {
		return false
	}
	switch target {
	case ShopStatusActive:
		return s == ShopStatusPending || s == ShopStatusSuspended
	case ShopStatusRejected, ShopStatusSuspended:
		return true
	default:
		return false
	}
}

// Approve activates the shop and assigns its mall location.
func (s *Shop) Approve(location ShopLocation) {
	s.Status = ShopStatusActive
	s.IsActive = true
	s.Location = location
}

func (s *Shop) Reject() {
	s.Status = ShopStatusRejected
	s.IsActive = false
}

func (s *Shop) Suspend() {
	s.Status = ShopStatusSuspended
	s.IsActive = false
}
