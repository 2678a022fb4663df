// internal/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/i18n"
	"github.com/centremall/mall-backend/internal/services"
	"github.com/centremall/mall-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	shopService    *services.ShopService
}

func NewProductHandler(productService *services.ProductService, shopService *services.ShopService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		shopService:    shopService,
	}
}

func productFiltersFromQuery(c *gin.Context) *services.ProductFilters {
	filters := &services.ProductFilters{
		PaginationParams: utils.GetPaginationParams(c),
		Search:           c.Query("search"),
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		if category, err := uuid.Parse(categoryStr); err == nil {
			filters.Category = &category
		}
	}
	if isActiveStr := c.Query("isActive"); isActiveStr != "" {
		if isActive, err := strconv.ParseBool(isActiveStr); err == nil {
			filters.IsActive = &isActive
		}
	}
	if isPromotionStr := c.Query("isPromotion"); isPromotionStr != "" {
		if isPromotion, err := strconv.ParseBool(isPromotionStr); err == nil {
			filters.IsPromotion = &isPromotion
		}
	}
	if minPriceStr := c.Query("minPrice"); minPriceStr != "" {
		if minPrice, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			filters.MinPrice = &minPrice
		}
	}
	if maxPriceStr := c.Query("maxPrice"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			filters.MaxPrice = &maxPrice
		}
	}
	if minStockStr := c.Query("minStock"); minStockStr != "" {
		if minStock, err := strconv.Atoi(minStockStr); err == nil {
			filters.MinStock = &minStock
		}
	}
	if maxStockStr := c.Query("maxStock"); maxStockStr != "" {
		if maxStock, err := strconv.Atoi(maxStockStr); err == nil {
			filters.MaxStock = &maxStock
		}
	}

	return filters
}

// ownsProduct checks that the caller owns the shop the product belongs to.
// Admins pass unconditionally.
func (h *ProductHandler) ownsProduct(c *gin.Context, productID uuid.UUID) bool {
	if isAdmin(c) {
		return true
	}

	userID, ok := currentUserID(c)
	if !ok {
		return false
	}

	product, err := h.productService.GetByID(productID)
	if err != nil {
		utils.RespondError(c, err)
		return false
	}
	if product.Shop == nil || product.Shop.UserID != userID {
		utils.RespondError(c, apperrors.Forbidden("you do not own this product"))
		return false
	}
	return true
}

// GET /products?shopId=...
func (h *ProductHandler) List(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shopId"))
	if err != nil {
		utils.BadRequest(c, "shopId is required")
		return
	}

	filters := productFiltersFromQuery(c)
	if !isAdmin(c) {
		// Public catalog: only visible products.
		active := true
		filters.IsActive = &active
	} else {
		filters.IncludeDeleted, _ = strconv.ParseBool(c.Query("includeDeleted"))
	}

	result, err := h.productService.ListByShop(shopID, filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /products/my-products
func (h *ProductHandler) MyProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	shop, err := h.shopService.GetByUser(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := h.productService.ListByShop(shop.ID, productFiltersFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// statsShopScope resolves the optional shopId query for an admin caller.
// A nil scope means mall-wide stats.
func statsShopScope(shopIDStr string) (*uuid.UUID, error) {
	if shopIDStr == "" {
		return nil, nil
	}
	id, err := uuid.Parse(shopIDStr)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid shopId")
	}
	return &id, nil
}

// GET /products/stats
func (h *ProductHandler) Stats(c *gin.Context) {
	var shopID *uuid.UUID

	if isAdmin(c) {
		// Admins see the whole mall unless they ask for one shop.
		scope, err := statsShopScope(c.Query("shopId"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		shopID = scope
	} else {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		shop, err := h.shopService.GetByUser(userID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		shopID = &shop.ID
	}

	stats, err := h.productService.Stats(shopID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	images, err := bindMultipartOrJSON(c, &req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if !isAdmin(c) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		shop, err := h.shopService.GetByID(req.ShopID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if shop.UserID != userID {
			utils.RespondError(c, apperrors.Forbidden("you do not own this shop"))
			return
		}
	}

	product, err := h.productService.Create(&req, images)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if !h.ownsProduct(c, id) {
		return
	}

	var req services.UpdateProductRequest
	images, err := bindMultipartOrJSON(c, &req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(id, &req, images)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// PATCH /products/:id/stock
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if !h.ownsProduct(c, id) {
		return
	}

	var req services.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateStock(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyProductStockUpdated),
		"product": product,
	})
}

// PATCH /products/:id/promotion
func (h *ProductHandler) UpdatePromotion(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if !h.ownsProduct(c, id) {
		return
	}

	var req services.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdatePromotion(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	messageKey := i18n.KeyProductPromoEnabled
	if !req.IsPromotion {
		messageKey = i18n.KeyProductPromoDisabled
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, messageKey),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if !h.ownsProduct(c, id) {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.productService.Remove(id, &userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, i18n.KeyProductDeleted)})
}
