// internal/models/category.go
package models

import (
	"github.com/google/uuid"
)

// Category is a typed taxonomy: shop categories (type=boutique) and product
// categories (type=produit) are disjoint namespaces, so the unique index on
// name is scoped per type.
type Category struct {
	BaseModel
	Name        string       `json:"name" gorm:"size:100;not null;uniqueIndex:idx_categories_name_type"`
	Type        CategoryType `json:"type" gorm:"type:varchar(20);not null;uniqueIndex:idx_categories_name_type;index"`
	Description string       `json:"description" gorm:"type:text"`
	Icon        string       `json:"icon" gorm:"size:100"`
	IsActive    bool         `json:"isActive" gorm:"default:true"`
	SoftDelete
}

func (c *Category) MarkDeleted(deletedBy *uuid.UUID) {
	c.markDeleted(deletedBy)
	c.IsActive = false
}
