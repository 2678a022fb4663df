// internal/services/shop_service.go
package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/database"
	"github.com/centremall/mall-backend/internal/models"
	"github.com/centremall/mall-backend/internal/utils"
)

type ShopService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateShopRequest struct {
	UserID      uuid.UUID            `json:"userId" validate:"required"`
	Name        string               `json:"name" validate:"required,max=255"`
	Description string               `json:"description"`
	Logo        string               `json:"logo" validate:"omitempty,max=500"`
	Category    uuid.UUID            `json:"category" validate:"required"`
	Location    *models.ShopLocation `json:"location,omitempty"`
	Contact     models.ShopContact   `json:"contact"`
	Hours       models.WeeklyHours   `json:"hours"`
	Status      models.ShopStatus    `json:"status" validate:"omitempty,oneof=pending active suspended rejected"`
}

// UpdateShopRequest is a full overwrite of the editable fields. Status,
// location and isActive are administrative overrides that bypass the
// lifecycle transitions of approve/reject/suspend.
type UpdateShopRequest struct {
	Name        string               `json:"name" validate:"required,max=255"`
	Description string               `json:"description"`
	Logo        string               `json:"logo" validate:"omitempty,max=500"`
	Category    uuid.UUID            `json:"category" validate:"required"`
	Location    *models.ShopLocation `json:"location,omitempty"`
	Contact     models.ShopContact   `json:"contact"`
	Hours       models.WeeklyHours   `json:"hours"`
	Status      *models.ShopStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending active suspended rejected"`
	IsActive    *bool                `json:"isActive,omitempty"`
}

// HasLifecycleOverride reports whether the request touches fields reserved
// for administrators.
func (r *UpdateShopRequest) HasLifecycleOverride() bool {
	return r.Status != nil || r.IsActive != nil || r.Location != nil
}

type ApproveShopRequest struct {
	Floor      string `json:"floor" validate:"required,max=20"`
	Zone       string `json:"zone" validate:"required,max=20"`
	ShopNumber string `json:"shopNumber" validate:"required,max=20"`
}

type ShopFilters struct {
	utils.PaginationParams
	Category       *uuid.UUID
	Status         string
	IsActive       *bool
	Floor          string
	Zone           string
	ShopNumber     string
	Search         string
	IncludeDeleted bool
}

var shopSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
}

func NewShopService(db *gorm.DB, notificationService *NotificationService) *ShopService {
	return &ShopService{db: db, notificationService: notificationService}
}

func (s *ShopService) applyFilters(query *gorm.DB, filters *ShopFilters) *gorm.DB {
	if filters.Category != nil {
		query = query.Where("category_id = ?", *filters.Category)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Floor != "" {
		query = query.Where("location_floor = ?", filters.Floor)
	}
	if filters.Zone != "" {
		query = query.Where("location_zone = ?", filters.Zone)
	}
	if filters.ShopNumber != "" {
		query = query.Where("location_shop_number = ?", filters.ShopNumber)
	}
	if filters.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Search+"%")
	}
	return query
}

// List is the public directory: active, approved shops only.
func (s *ShopService) List(filters *ShopFilters) (*utils.PaginationResult, error) {
	filters.Status = string(models.ShopStatusActive)
	active := true
	filters.IsActive = &active
	filters.IncludeDeleted = false
	return s.list(filters)
}

// ListAll is the admin directory; status and deletion filters apply as given.
func (s *ShopService) ListAll(filters *ShopFilters) (*utils.PaginationResult, error) {
	return s.list(filters)
}

// ListPending returns shops awaiting approval, oldest first so the queue is
// worked in arrival order.
func (s *ShopService) ListPending(params utils.PaginationParams) (*utils.PaginationResult, error) {
	params = utils.NormalizePagination(params)

	query := s.db.Model(&models.Shop{}).Scopes(models.NotDeleted).
		Where("status = ?", models.ShopStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}

	var shops []models.Shop
	if err := utils.ApplyPagination(query.Preload("Owner").Preload("Category").Order("created_at ASC"), params).
		Find(&shops).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}

	result := utils.CreatePaginationResult(shops, total, params)
	return &result, nil
}

func (s *ShopService) list(filters *ShopFilters) (*utils.PaginationResult, error) {
	filters.PaginationParams = utils.NormalizePagination(filters.PaginationParams)

	query := s.applyFilters(
		s.db.Model(&models.Shop{}).Scopes(models.WithDeleted(filters.IncludeDeleted)),
		filters,
	)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}

	query = utils.ApplySort(query.Preload("Owner").Preload("Category"), filters.PaginationParams, shopSortFields)

	var shops []models.Shop
	if err := utils.ApplyPagination(query, filters.PaginationParams).Find(&shops).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}

	result := utils.CreatePaginationResult(shops, total, filters.PaginationParams)
	return &result, nil
}

func (s *ShopService) GetByID(id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Scopes(models.NotDeleted).Preload("Owner").Preload("Category").
		First(&shop, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}
	return &shop, nil
}

// GetByUser returns the caller's shop only once it is live; pending or
// suspended shops answer 404 here so the owner dashboard shows the right
// empty state.
func (s *ShopService) GetByUser(userID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Scopes(models.NotDeleted).Preload("Category").
		Where("user_id = ? AND status = ? AND is_active = ?", userID, models.ShopStatusActive, true).
		First(&shop).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}
	return &shop, nil
}

// Create registers a shop for an existing boutique owner, in the requested
// status or pending by default.
func (s *ShopService) Create(req *CreateShopRequest) (*models.Shop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	var owner models.User
	if err := s.db.Scopes(models.NotDeleted).First(&owner, "id = ?", req.UserID).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}
	if owner.Role != models.RoleBoutique {
		return nil, apperrors.InvalidInput("shops can only be attached to boutique accounts")
	}

	var category models.Category
	if err := s.db.Scopes(models.NotDeleted).
		Where("id = ? AND type = ?", req.Category, models.CategoryTypeBoutique).
		First(&category).Error; err != nil {
		return nil, apperrors.FromDB(err, "category not found")
	}

	status := req.Status
	if status == "" {
		status = models.ShopStatusPending
	}

	shop := &models.Shop{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		CategoryID:  category.ID,
		Contact:     req.Contact,
		Hours:       req.Hours,
		Status:      status,
		IsActive:    status == models.ShopStatusActive,
	}
	if req.Location != nil {
		shop.Location = *req.Location
	}

	if err := s.db.Create(shop).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}
	return shop, nil
}

// Update overwrites the editable fields of a shop. Status, location and
// isActive are applied as given, without transition checks.
func (s *ShopService) Update(id uuid.UUID, req *UpdateShopRequest) (*models.Shop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	shop, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.Scopes(models.NotDeleted).
		Where("id = ? AND type = ?", req.Category, models.CategoryTypeBoutique).
		First(&category).Error; err != nil {
		return nil, apperrors.FromDB(err, "category not found")
	}

	shop.Name = req.Name
	shop.Description = req.Description
	shop.Logo = req.Logo
	shop.CategoryID = category.ID
	shop.Contact = req.Contact
	shop.Hours = req.Hours
	if req.Location != nil {
		shop.Location = *req.Location
	}
	if req.Status != nil {
		shop.Status = *req.Status
	}
	if req.IsActive != nil {
		shop.IsActive = *req.IsActive
	}

	if err := s.db.Save(shop).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}
	return shop, nil
}

// Approve activates a pending or suspended shop and assigns its location.
func (s *ShopService) Approve(id uuid.UUID, req *ApproveShopRequest) (*models.Shop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	shop, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !shop.Status.CanTransitionTo(models.ShopStatusActive) {
		return nil, apperrors.Conflict("shop cannot be approved from status " + string(shop.Status))
	}

	shop.Approve(models.ShopLocation{
		Floor:      req.Floor,
		Zone:       req.Zone,
		ShopNumber: req.ShopNumber,
	})

	if err := s.db.Save(shop).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}

	s.notificationService.NotifyShopApproved(shop)
	return shop, nil
}

// Reject marks a shop as rejected.
func (s *ShopService) Reject(id uuid.UUID) (*models.Shop, error) {
	shop, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !shop.Status.CanTransitionTo(models.ShopStatusRejected) {
		return nil, apperrors.Conflict("shop cannot be rejected from status " + string(shop.Status))
	}

	shop.Reject()
	if err := s.db.Save(shop).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}

	s.notificationService.NotifyShopRejected(shop)
	return shop, nil
}

// Suspend takes an active shop off the floor; its location is kept so a
// later approval restores the same slot.
func (s *ShopService) Suspend(id uuid.UUID) (*models.Shop, error) {
	shop, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !shop.Status.CanTransitionTo(models.ShopStatusSuspended) {
		return nil, apperrors.Conflict("shop cannot be suspended from status " + string(shop.Status))
	}

	shop.Suspend()
	if err := s.db.Save(shop).Error; err != nil {
		return nil, apperrors.FromDB(err, "shop not found")
	}

	s.notificationService.NotifyShopSuspended(shop)
	return shop, nil
}

// Remove soft-deletes a shop and soft-deletes its products with it so they
// drop out of every catalog read.
func (s *ShopService) Remove(id uuid.UUID, deletedBy *uuid.UUID) error {
	shop, err := s.GetByID(id)
	if err != nil {
		return err
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		shop.MarkDeleted(deletedBy)
		if err := tx.Save(shop).Error; err != nil {
			return err
		}

		return tx.Model(&models.Product{}).
			Where("shop_id = ? AND deleted_at IS NULL", shop.ID).
			Updates(map[string]interface{}{
				"deleted_at": shop.DeletedAt,
				"deleted_by": deletedBy,
				"is_active":  false,
			}).Error
	})
	if err != nil {
		return apperrors.FromDB(err, "shop not found")
	}
	return nil
}
