// internal/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/centremall/mall-backend/internal/services"
	"github.com/centremall/mall-backend/internal/utils"
)

type AdminHandler struct {
	dashboardService *services.DashboardService
}

func NewAdminHandler(dashboardService *services.DashboardService) *AdminHandler {
	return &AdminHandler{dashboardService: dashboardService}
}

// GET /admin/dashboard/stats
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.dashboardService.GlobalStats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /admin/dashboard/activities
func (h *AdminHandler) RecentActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	activities, err := h.dashboardService.RecentActivities(limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// GET /admin/dashboard/stats/categories
func (h *AdminHandler) ShopStatsByCategory(c *gin.Context) {
	stats, err := h.dashboardService.ShopStatsByCategory()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /admin/dashboard/stats/orders-by-day
func (h *AdminHandler) OrdersByDay(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	buckets, err := h.dashboardService.OrdersByDay(days)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buckets})
}

// GET /admin/dashboard/stats/revenue-by-month
func (h *AdminHandler) RevenueByMonth(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	buckets, err := h.dashboardService.RevenueByMonth(months)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buckets})
}

// GET /admin/dashboard/stats/orders-by-month
func (h *AdminHandler) OrdersByMonth(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	buckets, err := h.dashboardService.OrdersByMonth(months)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buckets})
}
