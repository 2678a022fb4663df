// internal/services/category_service.go
package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/models"
	"github.com/centremall/mall-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string              `json:"name" validate:"required,max=100"`
	Type        models.CategoryType `json:"type" validate:"required,oneof=boutique produit"`
	Description string              `json:"description"`
	Icon        string              `json:"icon" validate:"omitempty,max=100"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns categories ordered by name, optionally filtered by type.
// Soft-deleted rows are excluded; inactive categories stay listed so admins
// can re-enable them.
func (s *CategoryService) List(categoryType string, includeDeleted bool) ([]models.Category, error) {
	query := s.db.Scopes(models.WithDeleted(includeDeleted))
	if categoryType != "" {
		if categoryType != string(models.CategoryTypeBoutique) && categoryType != string(models.CategoryTypeProduit) {
			return nil, apperrors.InvalidInput("type must be boutique or produit")
		}
		query = query.Where("type = ?", categoryType)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.FromDB(err, "category not found")
	}
	return categories, nil
}

func (s *CategoryService) GetByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Scopes(models.NotDeleted).First(&category, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "category not found")
	}
	return &category, nil
}

// Create inserts a category. The name is unique within its type; a clash
// surfaces as a conflict.
func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	category := &models.Category{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.FromDB(err, "category not found")
	}
	return category, nil
}

// Update applies a partial edit. The type is immutable: moving a category
// between the shop and product namespaces would orphan its references.
func (s *CategoryService) Update(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, apperrors.FromDB(err, "category not found")
	}
	return category, nil
}

// Remove soft-deletes a category. Shops and products keep their reference;
// they render without category details until reassigned.
func (s *CategoryService) Remove(id uuid.UUID, deletedBy *uuid.UUID) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	category.MarkDeleted(deletedBy)
	if err := s.db.Save(category).Error; err != nil {
		return apperrors.FromDB(err, "category not found")
	}
	return nil
}
