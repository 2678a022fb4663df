// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/models"
)

// DashboardService aggregates read-only statistics for the admin dashboard.
// Day and month buckets, including the "today" window, use UTC boundaries.
type DashboardService struct {
	db *gorm.DB
}

type ShopOverview struct {
	Total            int64   `json:"total"`
	Active           int64   `json:"active"`
	Pending          int64   `json:"pending"`
	Suspended        int64   `json:"suspended"`
	Rejected         int64   `json:"rejected"`
	ActivePercentage float64 `json:"activePercentage"`
}

type UserOverview struct {
	Total        int64   `json:"total"`
	Clients      int64   `json:"clients"`
	Boutiques    int64   `json:"boutiques"`
	WeeklyGrowth float64 `json:"weeklyGrowth"`
}

type ProductOverview struct {
	Total        int64   `json:"total"`
	Active       int64   `json:"active"`
	Promotion    int64   `json:"promotion"`
	WeeklyGrowth float64 `json:"weeklyGrowth"`
}

type OrderOverview struct {
	Total        int64   `json:"total"`
	Today        int64   `json:"today"`
	WeeklyGrowth float64 `json:"weeklyGrowth"`
}

type RevenueOverview struct {
	Total        float64 `json:"total"`
	Today        float64 `json:"today"`
	WeeklyGrowth float64 `json:"weeklyGrowth"`
}

type CategoryOverview struct {
	Total int64 `json:"total"`
}

type GlobalStats struct {
	Shops      ShopOverview     `json:"shops"`
	Users      UserOverview     `json:"users"`
	Products   ProductOverview  `json:"products"`
	Orders     OrderOverview    `json:"orders"`
	Revenue    RevenueOverview  `json:"revenue"`
	Categories CategoryOverview `json:"categories"`
}

// Activity is the uniform shape every feed entry is mapped to, whichever
// entity it came from.
type Activity struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Action      string                 `json:"action"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	RelatedData map[string]interface{} `json:"relatedData"`
}

type CategoryShopStats struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Active   int64  `json:"active"`
}

type DayBucket struct {
	Date    string  `json:"date"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type MonthBucket struct {
	Month   string  `json:"month"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// Order statuses that count as realized revenue. "paid" appears in
// historical rows imported from the previous system.
var revenueStatuses = []models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusPaid}

const (
	maxOrdersByDayWindow = 30
	maxMonthlyWindow     = 12
)

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// growthPercent compares a current window against the previous one. A dead
// previous window reads as 0% when nothing happened, 100% when activity
// appeared from nothing.
func growthPercent(previous, current int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return round1(100 * float64(current-previous) / float64(previous))
}

func growthPercentF(previous, current float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return round1(100 * (current - previous) / previous)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round1(100 * float64(part) / float64(total))
}

// GlobalStats assembles the dashboard headline numbers. Growth compares the
// last 7 days against the 7 days before that.
func (s *DashboardService) GlobalStats() (*GlobalStats, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	todayStart := dayStart(now)

	stats := &GlobalStats{}

	// Shops, counted per lifecycle status
	shops := s.db.Model(&models.Shop{}).Scopes(models.NotDeleted).Session(&gorm.Session{})
	if err := shops.Count(&stats.Shops.Total).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate shops", err)
	}
	if err := shops.Where("status = ? AND is_active = ?", models.ShopStatusActive, true).
		Count(&stats.Shops.Active).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate shops", err)
	}
	shops.Where("status = ?", models.ShopStatusPending).Count(&stats.Shops.Pending)
	shops.Where("status = ?", models.ShopStatusSuspended).Count(&stats.Shops.Suspended)
	shops.Where("status = ?", models.ShopStatusRejected).Count(&stats.Shops.Rejected)
	stats.Shops.ActivePercentage = percentage(stats.Shops.Active, stats.Shops.Total)

	// Users, admins excluded
	users := s.db.Model(&models.User{}).Scopes(models.NotDeleted).
		Where("role <> ?", models.RoleAdmin).Session(&gorm.Session{})
	if err := users.Count(&stats.Users.Total).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate users", err)
	}
	users.Where("role = ?", models.RoleClient).Count(&stats.Users.Clients)
	users.Where("role = ?", models.RoleBoutique).Count(&stats.Users.Boutiques)

	var usersNew, usersPrev int64
	users.Where("created_at >= ?", weekAgo).Count(&usersNew)
	users.Where("created_at >= ? AND created_at < ?", twoWeeksAgo, weekAgo).Count(&usersPrev)
	stats.Users.WeeklyGrowth = growthPercent(usersPrev, usersNew)

	// Products; growth tracks the visible catalog only
	products := s.db.Model(&models.Product{}).Scopes(models.NotDeleted).Session(&gorm.Session{})
	if err := products.Count(&stats.Products.Total).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate products", err)
	}
	products.Where("is_active = ?", true).Count(&stats.Products.Active)
	products.Where("is_promotion = ?", true).Count(&stats.Products.Promotion)

	var productsNew, productsPrev int64
	products.Where("is_active = ? AND created_at >= ?", true, weekAgo).Count(&productsNew)
	products.Where("is_active = ? AND created_at >= ? AND created_at < ?", true, twoWeeksAgo, weekAgo).
		Count(&productsPrev)
	stats.Products.WeeklyGrowth = growthPercent(productsPrev, productsNew)

	// Orders
	orders := s.db.Model(&models.Order{}).Scopes(models.NotDeleted).Session(&gorm.Session{})
	if err := orders.Count(&stats.Orders.Total).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate orders", err)
	}
	orders.Where("created_at >= ?", todayStart).Count(&stats.Orders.Today)

	var ordersNew, ordersPrev int64
	orders.Where("created_at >= ?", weekAgo).Count(&ordersNew)
	orders.Where("created_at >= ? AND created_at < ?", twoWeeksAgo, weekAgo).Count(&ordersPrev)
	stats.Orders.WeeklyGrowth = growthPercent(ordersPrev, ordersNew)

	// Revenue, realized orders only
	var revTotal, revToday, revNew, revPrev struct{ Total float64 }
	if err := orders.Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status IN ?", revenueStatuses).Scan(&revTotal).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate revenue", err)
	}
	orders.Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status IN ? AND created_at >= ?", revenueStatuses, todayStart).Scan(&revToday)
	orders.Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status IN ? AND created_at >= ?", revenueStatuses, weekAgo).Scan(&revNew)
	orders.Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status IN ? AND created_at >= ? AND created_at < ?", revenueStatuses, twoWeeksAgo, weekAgo).
		Scan(&revPrev)
	stats.Revenue.Total = revTotal.Total
	stats.Revenue.Today = revToday.Total
	stats.Revenue.WeeklyGrowth = growthPercentF(revPrev.Total, revNew.Total)

	// Active product categories
	if err := s.db.Model(&models.Category{}).Scopes(models.NotDeleted).
		Where("type = ? AND is_active = ?", models.CategoryTypeProduit, true).
		Count(&stats.Categories.Total).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate categories", err)
	}

	return stats, nil
}

// RecentActivities merges the latest shops, users, orders and products into
// one reverse-chronological feed.
func (s *DashboardService) RecentActivities(limit int) ([]Activity, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	activities := make([]Activity, 0, 20)

	var shops []models.Shop
	if err := s.db.Scopes(models.NotDeleted).Preload("Owner").Preload("Category").
		Order("created_at DESC").Limit(5).Find(&shops).Error; err != nil {
		return nil, apperrors.Internal("failed to load recent shops", err)
	}
	for _, shop := range shops {
		action := "updated"
		if shop.Status == models.ShopStatusPending {
			action = "created"
		}
		description := ""
		if shop.Owner != nil {
			description = shop.Owner.FullName()
		}
		if shop.Category != nil {
			description += " - " + shop.Category.Name
		}
		activities = append(activities, Activity{
			ID:          shop.ID.String(),
			Type:        "shop",
			Action:      action,
			Title:       "Nouvelle boutique : " + shop.Name,
			Description: description,
			Status:      string(shop.Status),
			Timestamp:   shop.CreatedAt,
			RelatedData: map[string]interface{}{
				"shopId":   shop.ID,
				"userId":   shop.UserID,
				"shopName": shop.Name,
			},
		})
	}

	var users []models.User
	if err := s.db.Scopes(models.NotDeleted).Where("role <> ?", models.RoleAdmin).
		Order("created_at DESC").Limit(5).Find(&users).Error; err != nil {
		return nil, apperrors.Internal("failed to load recent users", err)
	}
	for _, user := range users {
		activities = append(activities, Activity{
			ID:          user.ID.String(),
			Type:        "user",
			Action:      "registered",
			Title:       "Nouvel utilisateur : " + string(user.Role),
			Description: user.FullName() + " (" + user.Email + ")",
			Status:      "active",
			Timestamp:   user.CreatedAt,
			RelatedData: map[string]interface{}{
				"userId":   user.ID,
				"userRole": user.Role,
			},
		})
	}

	var orders []models.Order
	if err := s.db.Scopes(models.NotDeleted).Preload("Customer").
		Order("created_at DESC").Limit(5).Find(&orders).Error; err != nil {
		return nil, apperrors.Internal("failed to load recent orders", err)
	}
	for _, order := range orders {
		description := fmt.Sprintf("%.2f€", order.TotalAmount)
		if order.Customer != nil {
			description = order.Customer.FullName() + " - " + description
		}
		activities = append(activities, Activity{
			ID:          order.ID.String(),
			Type:        "order",
			Action:      "created",
			Title:       "Nouvelle commande : " + order.OrderNumber,
			Description: description,
			Status:      string(order.Status),
			Timestamp:   order.CreatedAt,
			RelatedData: map[string]interface{}{
				"orderId":    order.ID,
				"customerId": order.CustomerID,
				"amount":     order.TotalAmount,
			},
		})
	}

	var products []models.Product
	if err := s.db.Scopes(models.NotDeleted).Where("is_active = ?", true).Preload("Shop").
		Order("created_at DESC").Limit(5).Find(&products).Error; err != nil {
		return nil, apperrors.Internal("failed to load recent products", err)
	}
	for _, product := range products {
		description := fmt.Sprintf("%.2f€", product.Price)
		if product.Shop != nil {
			description = product.Shop.Name + " - " + description
		}
		activities = append(activities, Activity{
			ID:          product.ID.String(),
			Type:        "product",
			Action:      "created",
			Title:       "Nouveau produit : " + product.Name,
			Description: description,
			Status:      "active",
			Timestamp:   product.CreatedAt,
			RelatedData: map[string]interface{}{
				"productId": product.ID,
				"shopId":    product.ShopID,
				"price":     product.Price,
			},
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// ShopStatsByCategory counts shops per boutique category.
func (s *DashboardService) ShopStatsByCategory() ([]CategoryShopStats, error) {
	var rows []CategoryShopStats
	err := s.db.Model(&models.Shop{}).
		Select(`categories.name AS category,
			COUNT(shops.id) AS count,
			COUNT(shops.id) FILTER (WHERE shops.status = 'active' AND shops.is_active) AS active`).
		Joins("JOIN categories ON categories.id = shops.category_id").
		Where("shops.deleted_at IS NULL").
		Group("categories.name").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal("failed to aggregate shops by category", err)
	}
	return rows, nil
}

// OrdersByDay returns one bucket per day over the window, zero-filled and
// chronological. The window is capped at 30 days.
func (s *DashboardService) OrdersByDay(days int) ([]DayBucket, error) {
	if days < 1 {
		days = 7
	}
	if days > maxOrdersByDayWindow {
		days = maxOrdersByDayWindow
	}

	now := time.Now()
	start := dayStart(now).AddDate(0, 0, -(days - 1))

	var rows []struct {
		Day     time.Time
		Count   int64
		Revenue float64
	}
	err := s.db.Model(&models.Order{}).
		Select("DATE_TRUNC('day', created_at AT TIME ZONE 'UTC') AS day, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("deleted_at IS NULL AND created_at >= ?", start).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal("failed to aggregate orders by day", err)
	}

	counts := make(map[string]DayBucket, len(rows))
	for _, row := range rows {
		key := row.Day.UTC().Format("2006-01-02")
		counts[key] = DayBucket{Date: key, Count: row.Count, Revenue: row.Revenue}
	}

	return densifyDays(counts, start, days), nil
}

// RevenueByMonth returns one bucket per month, zero-filled and
// chronological, counting only realized revenue. Capped at 12 months.
func (s *DashboardService) RevenueByMonth(months int) ([]MonthBucket, error) {
	return s.monthlyBuckets(months, true)
}

// OrdersByMonth counts all orders per month regardless of status.
func (s *DashboardService) OrdersByMonth(months int) ([]MonthBucket, error) {
	return s.monthlyBuckets(months, false)
}

func (s *DashboardService) monthlyBuckets(months int, revenueOnly bool) ([]MonthBucket, error) {
	if months < 1 {
		months = 6
	}
	if months > maxMonthlyWindow {
		months = maxMonthlyWindow
	}

	now := time.Now()
	start := monthStart(now).AddDate(0, -(months - 1), 0)

	query := s.db.Model(&models.Order{}).
		Select("DATE_TRUNC('month', created_at AT TIME ZONE 'UTC') AS month, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("deleted_at IS NULL AND created_at >= ?", start)
	if revenueOnly {
		query = query.Where("status IN ?", revenueStatuses)
	}

	var rows []struct {
		Month   time.Time
		Count   int64
		Revenue float64
	}
	if err := query.Group("month").Scan(&rows).Error; err != nil {
		return nil, apperrors.Internal("failed to aggregate orders by month", err)
	}

	counts := make(map[string]MonthBucket, len(rows))
	for _, row := range rows {
		key := row.Month.UTC().Format("2006-01")
		counts[key] = MonthBucket{Month: key, Count: row.Count, Revenue: row.Revenue}
	}

	return densifyMonths(counts, start, months), nil
}

// dayStart truncates to the UTC day boundary, the same boundary DATE_TRUNC
// applies after the AT TIME ZONE 'UTC' shift above.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// densifyDays expands sparse per-day rows into a contiguous window; days
// without orders appear as zero buckets.
func densifyDays(counts map[string]DayBucket, start time.Time, days int) []DayBucket {
	buckets := make([]DayBucket, 0, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		if bucket, ok := counts[key]; ok {
			buckets = append(buckets, bucket)
		} else {
			buckets = append(buckets, DayBucket{Date: key})
		}
	}
	return buckets
}

func densifyMonths(counts map[string]MonthBucket, start time.Time, months int) []MonthBucket {
	buckets := make([]MonthBucket, 0, months)
	for i := 0; i < months; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		if bucket, ok := counts[key]; ok {
			buckets = append(buckets, bucket)
		} else {
			buckets = append(buckets, MonthBucket{Month: key})
		}
	}
	return buckets
}
