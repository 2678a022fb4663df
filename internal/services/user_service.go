// internal/services/user_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/database"
	"github.com/centremall/mall-backend/internal/models"
	"github.com/centremall/mall-backend/internal/utils"
)

type UserService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type UpdateUserRequest struct {
	FirstName *string         `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string         `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone     *string         `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address   *models.Address `json:"address,omitempty"`
	IsActive  *bool           `json:"isActive,omitempty"`
}

type UserFilters struct {
	utils.PaginationParams
	Role           string
	IsActive       *bool
	Search         string
	IncludeDeleted bool
}

var userSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"email":     "email",
	"lastName":  "last_name",
}

func NewUserService(db *gorm.DB, notificationService *NotificationService) *UserService {
	return &UserService{db: db, notificationService: notificationService}
}

// List pages through users for the admin panel.
func (s *UserService) List(filters *UserFilters) (*utils.PaginationResult, error) {
	filters.PaginationParams = utils.NormalizePagination(filters.PaginationParams)

	query := s.db.Model(&models.User{}).Scopes(models.WithDeleted(filters.IncludeDeleted))
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}

	query = utils.ApplySort(query, filters.PaginationParams, userSortFields)

	var users []models.User
	if err := utils.ApplyPagination(query, filters.PaginationParams).Find(&users).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}

	result := utils.CreatePaginationResult(users, total, filters.PaginationParams)
	return &result, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Scopes(models.NotDeleted).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}
	return &user, nil
}

// Update applies a partial edit to a user profile.
func (s *UserService) Update(id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}
	return user, nil
}

// ListPendingBoutiques returns boutique accounts waiting for activation,
// oldest first.
func (s *UserService) ListPendingBoutiques(params utils.PaginationParams) (*utils.PaginationResult, error) {
	params = utils.NormalizePagination(params)

	query := s.db.Model(&models.User{}).Scopes(models.NotDeleted).
		Where("role = ? AND is_active = ?", models.RoleBoutique, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}

	var users []models.User
	if err := utils.ApplyPagination(query.Order("created_at ASC"), params).Find(&users).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

// ApproveBoutique activates a pending boutique account.
func (s *UserService) ApproveBoutique(id uuid.UUID) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if user.Role != models.RoleBoutique {
		return nil, apperrors.InvalidInput("user is not a boutique account")
	}
	if user.IsActive {
		return nil, apperrors.Conflict("boutique account is already active")
	}

	user.IsActive = true
	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}

	s.notificationService.NotifyBoutiqueApproved(user.ID)
	return user, nil
}

// RejectBoutique soft-deletes a pending boutique account together with its
// pending shop, in one transaction.
func (s *UserService) RejectBoutique(id uuid.UUID, deletedBy *uuid.UUID) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if user.Role != models.RoleBoutique {
		return apperrors.InvalidInput("user is not a boutique account")
	}
	if user.IsActive {
		return apperrors.Conflict("cannot reject an active boutique account")
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		user.MarkDeleted(deletedBy)
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		var shop models.Shop
		err := tx.Scopes(models.NotDeleted).
			Where("user_id = ? AND status = ?", user.ID, models.ShopStatusPending).
			First(&shop).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		shop.Reject()
		shop.MarkDeleted(deletedBy)
		return tx.Save(&shop).Error
	})
	if err != nil {
		return apperrors.FromDB(err, "user not found")
	}
	return nil
}

// Remove soft-deletes a user account.
func (s *UserService) Remove(id uuid.UUID, deletedBy *uuid.UUID) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	user.MarkDeleted(deletedBy)
	if err := s.db.Save(user).Error; err != nil {
		return apperrors.FromDB(err, "user not found")
	}
	return nil
}
