// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/centremall/mall-backend/internal/config"
	"github.com/centremall/mall-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		}
	} else {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Info),
			TranslateError: true,
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Shop{},
		&models.Product{},
		&models.Order{},
		&models.Cart{},
		&models.Notification{},
		&models.MallSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_role_active ON users(role, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_type_active ON categories(type, is_active)",

		// Shop indexes
		"CREATE INDEX IF NOT EXISTS idx_shops_user ON shops(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_shops_category ON shops(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_shops_status_active ON shops(status, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_shops_location ON shops(location_floor, location_zone)",
		"CREATE INDEX IF NOT EXISTS idx_shops_created_at ON shops(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_shop ON products(shop_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_shop_active ON products(shop_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_promotion ON products(shop_id, is_promotion)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Notification indexes
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, is_read)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at DESC)",

		// Full-text search indexes
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('french', name || ' ' || coalesce(description, '')))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Email:     "admin@centremall.com",
			Role:      models.RoleAdmin,
			FirstName: "System",
			LastName:  "Administrator",
			IsActive:  true,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Create default mall settings
	var settingsCount int64
	db.Model(&models.MallSettings{}).Count(&settingsCount)

	if settingsCount == 0 {
		settings := &models.MallSettings{
			Name:    "Centre Commercial",
			Contact: models.JSONB{"email": "contact@centremall.com"},
			Hours: models.WeeklyHours{
				"monday":    {Open: "09:00", Close: "20:00"},
				"tuesday":   {Open: "09:00", Close: "20:00"},
				"wednesday": {Open: "09:00", Close: "20:00"},
				"thursday":  {Open: "09:00", Close: "20:00"},
				"friday":    {Open: "09:00", Close: "21:00"},
				"saturday":  {Open: "09:00", Close: "21:00"},
				"sunday":    {Open: "10:00", Close: "19:00"},
			},
		}

		if err := db.Create(settings).Error; err != nil {
			return fmt.Errorf("failed to create mall settings: %w", err)
		}

		log.Println("Default mall settings created successfully")
	}

	// Create default categories
	defaultCategories := []models.Category{
		{Name: "Mode", Type: models.CategoryTypeBoutique, Description: "Vêtements et accessoires", IsActive: true},
		{Name: "Restauration", Type: models.CategoryTypeBoutique, Description: "Restaurants et cafés", IsActive: true},
		{Name: "Électronique", Type: models.CategoryTypeBoutique, Description: "High-tech et électroménager", IsActive: true},
		{Name: "Vêtements", Type: models.CategoryTypeProduit, Description: "Articles d'habillement", IsActive: true},
		{Name: "Accessoires", Type: models.CategoryTypeProduit, Description: "Accessoires de mode", IsActive: true},
	}

	for _, category := range defaultCategories {
		var count int64
		db.Model(&models.Category{}).Where("name = ? AND type = ?", category.Name, category.Type).Count(&count)

		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Warning: Failed to create category %s: %v", category.Name, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
