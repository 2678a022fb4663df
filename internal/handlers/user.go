// internal/handlers/user.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/centremall/mall-backend/internal/i18n"
	"github.com/centremall/mall-backend/internal/services"
	"github.com/centremall/mall-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	filters := &services.UserFilters{
		PaginationParams: utils.GetPaginationParams(c),
		Role:             c.Query("role"),
		Search:           c.Query("search"),
	}
	if isActiveStr := c.Query("isActive"); isActiveStr != "" {
		if isActive, err := strconv.ParseBool(isActiveStr); err == nil {
			filters.IsActive = &isActive
		}
	}
	filters.IncludeDeleted, _ = strconv.ParseBool(c.Query("includeDeleted"))

	result, err := h.userService.List(filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyUserUpdated),
		"user":    user,
	})
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Remove(id, &adminID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, i18n.KeyUserDeleted)})
}

// GET /users/boutiques/pending
func (h *UserHandler) ListPendingBoutiques(c *gin.Context) {
	result, err := h.userService.ListPendingBoutiques(utils.GetPaginationParams(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PATCH /users/boutiques/:id/approve
func (h *UserHandler) ApproveBoutique(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.ApproveBoutique(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyUserBoutiqueApproved),
		"user":    user,
	})
}

// PATCH /users/boutiques/:id/reject
func (h *UserHandler) RejectBoutique(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.RejectBoutique(id, &adminID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, i18n.KeyUserBoutiqueRejected)})
}
