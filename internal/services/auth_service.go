// internal/services/auth_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/config"
	"github.com/centremall/mall-backend/internal/database"
	"github.com/centremall/mall-backend/internal/models"
	"github.com/centremall/mall-backend/internal/utils"
)

type AuthService struct {
	db     *gorm.DB
	config *config.Config
}

type RegisterRequest struct {
	Email     string         `json:"email" validate:"required,email"`
	Password  string         `json:"password" validate:"required,min=8"`
	FirstName string         `json:"firstName" validate:"required,max=100"`
	LastName  string         `json:"lastName" validate:"required,max=100"`
	Phone     string         `json:"phone" validate:"omitempty,max=30"`
	Address   models.Address `json:"address"`
}

type RegisterBoutiqueRequest struct {
	RegisterRequest
	ShopName        string    `json:"shopName" validate:"required,max=255"`
	ShopDescription string    `json:"shopDescription"`
	ShopCategory    uuid.UUID `json:"shopCategory" validate:"required"`
	ShopPhone       string    `json:"shopPhone" validate:"omitempty,max=30"`
	ShopEmail       string    `json:"shopEmail" validate:"omitempty,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, config: cfg}
}

// Register creates an active client account and returns a session token.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	user := &models.User{
		Email:     req.Email,
		Role:      models.RoleClient,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		IsActive:  true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, apperrors.Internal("failed to generate token", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// RegisterBoutique creates an inactive boutique owner together with its
// pending shop in one transaction. Neither record exists alone: a failed
// shop insert rolls the owner back. The owner cannot log in until an admin
// approves the account.
func (s *AuthService) RegisterBoutique(req *RegisterBoutiqueRequest) (*models.User, *models.Shop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	var category models.Category
	if err := s.db.Scopes(models.NotDeleted).
		Where("id = ? AND type = ?", req.ShopCategory, models.CategoryTypeBoutique).
		First(&category).Error; err != nil {
		return nil, nil, apperrors.FromDB(err, "category not found")
	}

	user := &models.User{
		Email:     req.Email,
		Role:      models.RoleBoutique,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		IsActive:  false,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, nil, apperrors.Internal("failed to hash password", err)
	}

	shop := &models.Shop{
		Name:        req.ShopName,
		Description: req.ShopDescription,
		CategoryID:  category.ID,
		Contact: models.ShopContact{
			Phone: req.ShopPhone,
			Email: req.ShopEmail,
		},
		Status:   models.ShopStatusPending,
		IsActive: false,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		shop.UserID = user.ID
		return tx.Create(shop).Error
	})
	if err != nil {
		return nil, nil, apperrors.FromDB(err, "user not found")
	}

	return user, shop, nil
}

// Login authenticates by email and password. Deactivated accounts get a 403
// distinct from the 400 returned for bad credentials.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: " + err.Error())
	}

	var user models.User
	if err := s.db.Scopes(models.NotDeleted).Where("email = ?", req.Email).First(&user).Error; err != nil {
		// An unknown email is reported the same way as a wrong password.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.InvalidInput("incorrect email or password")
		}
		return nil, apperrors.FromDB(err, "user not found")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.InvalidInput("incorrect email or password")
	}

	if !user.IsActive {
		return nil, apperrors.Forbidden("this account is disabled")
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, apperrors.Internal("failed to generate token", err)
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// RefreshToken reissues a session token for a still-active account.
func (s *AuthService) RefreshToken(userID uuid.UUID) (string, *models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, apperrors.Forbidden("this account is disabled")
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return "", nil, apperrors.Internal("failed to generate token", err)
	}
	return token, user, nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Scopes(models.NotDeleted).First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperrors.FromDB(err, "user not found")
	}
	return &user, nil
}
