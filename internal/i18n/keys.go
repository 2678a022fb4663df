// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccountDisabled    = "auth.account_disabled"
	KeyAuthEmailExists        = "auth.email_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthBoutiqueRegistered = "auth.boutique_registered"

	// Users
	KeyUserNotFound         = "user.not_found"
	KeyUserUpdated          = "user.updated"
	KeyUserDeleted          = "user.deleted"
	KeyUserBoutiqueApproved = "user.boutique_approved"
	KeyUserBoutiqueRejected = "user.boutique_rejected"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryExists   = "category.exists"

	// Shops
	KeyShopCreated           = "shop.created"
	KeyShopUpdated           = "shop.updated"
	KeyShopDeleted           = "shop.deleted"
	KeyShopNotFound          = "shop.not_found"
	KeyShopApproved          = "shop.approved"
	KeyShopRejected          = "shop.rejected"
	KeyShopSuspended         = "shop.suspended"
	KeyShopInvalidTransition = "shop.invalid_transition"
	KeyShopNotActive         = "shop.not_active"

	// Products
	KeyProductCreated         = "product.created"
	KeyProductUpdated         = "product.updated"
	KeyProductDeleted         = "product.deleted"
	KeyProductNotFound        = "product.not_found"
	KeyProductStockUpdated    = "product.stock_updated"
	KeyProductPromoEnabled    = "product.promotion_enabled"
	KeyProductPromoDisabled   = "product.promotion_disabled"
	KeyProductInvalidDiscount = "product.invalid_discount"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationFailed   = "validation.failed"
	KeyValidationRequired = "validation.required"

	// File Upload
	KeyFileTooLarge    = "file.too_large"
	KeyFileTooMany     = "file.too_many"
	KeyFileInvalidType = "file.invalid_type"
)
