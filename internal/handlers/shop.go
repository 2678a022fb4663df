// internal/handlers/shop.go
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

type ShopHandler struct {
	shopService *services.ShopService
}

func NewShopHandler(shopService *services.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func shopFiltersFromQuery(c *gin.Context) *services.ShopFilters {
	filters := &services.ShopFilters{
		PaginationParams: utils.GetPaginationParams(c),
		Status:           c.Query("status"),
		Floor:            c.Query("floor"),
		Zone:             c.Query("zone"),
		ShopNumber:       c.Query("shopNumber"),
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

	return filters
}

// GET /shops
func (h *ShopHandler) List(c *gin.Context) {
	result, err := h.shopService.List(shopFiltersFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /shops/all
func (h *ShopHandler) ListAll(c *gin.Context) {
	filters := shopFiltersFromQuery(c)
	filters.IncludeDeleted, _ = strconv.ParseBool(c.Query("includeDeleted"))

	result, err := h.shopService.ListAll(filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /shops/pending
func (h *ShopHandler) ListPending(c *gin.Context) {
	result, err := h.shopService.ListPending(utils.GetPaginationParams(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /shops/my-shop
func (h *ShopHandler) MyShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	shop, err := h.shopService.GetByUser(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// GET /shops/:id
func (h *ShopHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// POST /shops
func (h *ShopHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	shop, err := h.shopService.Create(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T(lang, i18n.KeyShopCreated),
		"shop":    shop,
	})
}

// PUT /shops/:id
func (h *ShopHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Owners may edit their own shop's presentation; status, location and
	// isActive stay admin-only.
	if !isAdmin(c) {
		shop, err := h.shopService.GetByID(id)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if shop.UserID != userID {
			utils.RespondError(c, apperrors.Forbidden("you do not own this shop"))
			return
		}
		if req.HasLifecycleOverride() {
			utils.RespondError(c, apperrors.Forbidden("only administrators can change shop status or location"))
			return
		}
	}

	shop, err := h.shopService.Update(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyShopUpdated),
		"shop":    shop,
	})
}

// PATCH /shops/:id/approve
func (h *ShopHandler) Approve(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ApproveShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	shop, err := h.shopService.Approve(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyShopApproved),
		"shop":    shop,
	})
}

// PATCH /shops/:id/reject
func (h *ShopHandler) Reject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.Reject(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyShopRejected),
		"shop":    shop,
	})
}

// PATCH /shops/:id/suspend
func (h *ShopHandler) Suspend(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.Suspend(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyShopSuspended),
		"shop":    shop,
	})
}

// DELETE /shops/:id
func (h *ShopHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.shopService.Remove(id, &userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, i18n.KeyShopDeleted)})
}
