// internal/services/product_service.go
package services

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/models"
	"github.com/centremall/mall-backend/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateProductRequest struct {
	ShopID        uuid.UUID             `json:"shopId" validate:"required"`
	Name          string                `json:"name" validate:"required,max=255"`
	Description   string                `json:"description"`
	Price         float64               `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64              `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	IsPromotion   bool                  `json:"isPromotion"`
	Discount      float64               `json:"discount" validate:"min=0,max=100"`
	PromoEndDate  *time.Time            `json:"promoEndDate,omitempty"`
	Category      *uuid.UUID            `json:"category,omitempty"`
	Quantity      int                   `json:"quantity" validate:"min=0"`
	LowStockAlert *int                  `json:"lowStockAlert,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool                 `json:"isActive,omitempty"`
	Specs         models.Specifications `json:"specifications,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string               `json:"name,omitempty" validate:"omitempty,max=255"`
	Description   *string               `json:"description,omitempty"`
	Price         *float64              `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64              `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Category      *uuid.UUID            `json:"category,omitempty"`
	Quantity      *int                  `json:"quantity,omitempty" validate:"omitempty,min=0"`
	LowStockAlert *int                  `json:"lowStockAlert,omitempty" validate:"omitempty,min=0"`
	Specs         models.Specifications `json:"specifications,omitempty"`
	IsActive      *bool                 `json:"isActive,omitempty"`
}

type UpdateStockRequest struct {
	Quantity      int  `json:"quantity" validate:"min=0"`
	LowStockAlert *int `json:"lowStockAlert,omitempty" validate:"omitempty,min=0"`
}

type UpdatePromotionRequest struct {
	IsPromotion   bool       `json:"isPromotion"`
	Discount      float64    `json:"discount" validate:"min=0,max=100"`
	OriginalPrice *float64   `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

type ProductFilters struct {
	utils.PaginationParams
	Category       *uuid.UUID
	IsActive       *bool
	IsPromotion    *bool
	MinPrice       *float64
	MaxPrice       *float64
	MinStock       *int
	MaxStock       *int
	Search         string
	IncludeDeleted bool
}

type ProductStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Promotion int64 `json:"promotion"`
	LowStock  int64 `json:"lowStock"`
}

var productSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"price":     "price",
}

func NewProductService(db *gorm.DB, storageService *StorageService) *ProductService {
	return &ProductService{db: db, storageService: storageService}
}

// existingShop loads a shop that has not been soft-deleted. Owners can stock
// their catalog while the shop is still pending approval.
func (s *ProductService) existingShop(shopID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Scopes(models.NotDeleted).First(&shop, "id = ?", shopID).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}
	return &shop, nil
}

func (s *ProductService) productCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Scopes(models.NotDeleted).
		Where("id = ? AND type = ?", id, models.CategoryTypeProduit).
		First(&category).Error; err != nil {
		return nil, apperrors.FromDB(err, "category not found")
	}
	return &category, nil
}

// buildProduct assembles a new product from the request. A product created
// in promotion is repriced from the baseline right away, which seeds the
// promotion history and, when the price moves, the price history.
func buildProduct(req *CreateProductRequest, images []string, now time.Time) *models.Product {
	product := &models.Product{
		ShopID:        req.ShopID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.Price,
		CategoryID:    req.Category,
		Images:        images,
		Stock:         models.ProductStock{Quantity: req.Quantity, LowStockAlert: 5},
		Specs:         req.Specs,
		IsActive:      true,
	}
	if req.LowStockAlert != nil {
		product.Stock.LowStockAlert = *req.LowStockAlert
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.IsPromotion {
		product.Price = product.OriginalPrice
		product.EnablePromotion(req.Discount, product.OriginalPrice, req.PromoEndDate, now)
	}
	return product
}

// Create adds a product to an existing shop.
func (s *ProductService) Create(req *CreateProductRequest, images []*multipart.FileHeader) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	if _, err := s.existingShop(req.ShopID); err != nil {
		return nil, err
	}

	if req.Category != nil {
		if _, err := s.productCategory(*req.Category); err != nil {
			return nil, err
		}
	}

	urls, err := s.storageService.SaveImages(images)
	if err != nil {
		return nil, err
	}

	product := buildProduct(req, urls, time.Now())

	if err := s.db.Create(product).Error; err != nil {
		s.storageService.RemoveImages(urls)
		return nil, apperrors.FromDB(err, "product not found")
	}
	return product, nil
}

func (s *ProductService) applyFilters(query *gorm.DB, filters *ProductFilters) *gorm.DB {
	if filters.Category != nil {
		query = query.Where("category_id = ?", *filters.Category)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.IsPromotion != nil {
		query = query.Where("is_promotion = ?", *filters.IsPromotion)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.MinStock != nil {
		query = query.Where("stock_quantity >= ?", *filters.MinStock)
	}
	if filters.MaxStock != nil {
		query = query.Where("stock_quantity <= ?", *filters.MaxStock)
	}
	if filters.Search != "" {
		query = query.Where(
			"to_tsvector('french', name || ' ' || coalesce(description, '')) @@ websearch_to_tsquery('french', ?)",
			filters.Search,
		)
	}
	return query
}

// ListByShop pages through one shop's catalog.
func (s *ProductService) ListByShop(shopID uuid.UUID, filters *ProductFilters) (*utils.PaginationResult, error) {
	filters.PaginationParams = utils.NormalizePagination(filters.PaginationParams)

	query := s.applyFilters(
		s.db.Model(&models.Product{}).Scopes(models.WithDeleted(filters.IncludeDeleted)).
			Where("shop_id = ?", shopID),
		filters,
	)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}

	query = utils.ApplySort(query.Preload("Category"), filters.PaginationParams, productSortFields)

	var products []models.Product
	if err := utils.ApplyPagination(query, filters.PaginationParams).Find(&products).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}

	result := utils.CreatePaginationResult(products, total, filters.PaginationParams)
	return &result, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Scopes(models.NotDeleted).Preload("Shop").Preload("Category").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}
	return &product, nil
}

// Update applies a partial edit. A direct price change is recorded in the
// price history; outside a promotion the baseline follows the new price
// unless the caller pins it explicitly. New images replace the old set.
func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest, images []*multipart.FileHeader) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		if _, err := s.productCategory(*req.Category); err != nil {
			return nil, err
		}
		product.CategoryID = req.Category
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.RecordPriceChange(*req.Price, time.Now())
		if !product.IsPromotion && req.OriginalPrice == nil {
			product.OriginalPrice = *req.Price
		}
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.Quantity != nil {
		product.Stock.Quantity = *req.Quantity
	}
	if req.LowStockAlert != nil {
		product.Stock.LowStockAlert = *req.LowStockAlert
	}
	if req.Specs != nil {
		product.Specs = req.Specs
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if len(images) > 0 {
		urls, err := s.storageService.SaveImages(images)
		if err != nil {
			return nil, err
		}
		oldImages := product.Images
		product.Images = urls
		defer s.storageService.RemoveImages(oldImages)
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}
	return product, nil
}

// UpdateStock sets the quantity and optionally the alert threshold.
func (s *ProductService) UpdateStock(id uuid.UUID, req *UpdateStockRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Stock.Quantity = req.Quantity
	if req.LowStockAlert != nil {
		product.Stock.LowStockAlert = *req.LowStockAlert
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}
	return product, nil
}

// UpdatePromotion toggles promotion pricing. Enabling derives the promo
// price from the baseline and the discount; disabling restores the baseline.
func (s *ProductService) UpdatePromotion(id uuid.UUID, req *UpdatePromotionRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Baseline: the price before any promotion.
	baseline := product.Price
	if product.IsPromotion && product.OriginalPrice > 0 {
		baseline = product.OriginalPrice
	}
	if req.OriginalPrice != nil {
		baseline = *req.OriginalPrice
	}

	now := time.Now()
	if req.IsPromotion {
		if req.EndDate != nil && req.EndDate.Before(now) {
			return nil, apperrors.InvalidInput("promotion end date must be in the future")
		}
		product.EnablePromotion(req.Discount, baseline, req.EndDate, now)
	} else {
		// Disabling a product that is not in promotion restores the baseline
		// and is otherwise a no-op.
		product.DisablePromotion(baseline, now)
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}
	return product, nil
}

// Remove soft-deletes a product and removes its stored images.
func (s *ProductService) Remove(id uuid.UUID, deletedBy *uuid.UUID) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}

	images := product.Images
	product.MarkDeleted(deletedBy)
	product.Images = nil

	if err := s.db.Save(product).Error; err != nil {
		return apperrors.FromDB(err, "product not found")
	}

	s.storageService.RemoveImages(images)
	return nil
}

// Stats summarizes a catalog, mall-wide or scoped to one shop.
func (s *ProductService) Stats(shopID *uuid.UUID) (*ProductStats, error) {
	stats := &ProductStats{}
	base := s.db.Model(&models.Product{}).Scopes(models.NotDeleted)
	if shopID != nil {
		base = base.Where("shop_id = ?", *shopID)
	}
	base = base.Session(&gorm.Session{})

	if err := base.Count(&stats.Total).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}
	if err := base.Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}
	if err := base.Where("is_promotion = ?", true).Count(&stats.Promotion).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}
	if err := base.Where("stock_quantity <= stock_low_stock_alert").Count(&stats.LowStock).Error; err != nil {
		return nil, apperrors.FromDB(err, "product not found")
	}

	return stats, nil
}
