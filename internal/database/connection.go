// internal/database/connection.go
package database

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/heaponte4/aerea/internal/config"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("failed to get underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("failed to close database connection")
	} else {
		logrus.Info("database connection closed")
	}
}

// Migrate registers every entity plus the two join/ledger tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.PhotographerProfile{},
		&models.Customer{},
		&models.Property{},
		&models.Service{},
		&models.AddonService{},
		&models.Template{},
		&models.PropertyService{},
		&models.Job{},
		&models.Order{},
		&models.OrderService{},
		&models.Payment{},
		&models.Media{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",
		"CREATE INDEX IF NOT EXISTS idx_properties_owner_status ON properties(owner_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_property_services_property_status ON property_services(property_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_property_services_photographer_date ON property_services(photographer_id, scheduled_date)",
		"CREATE INDEX IF NOT EXISTS idx_jobs_photographer_status ON jobs(photographer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_jobs_photographer_date ON jobs(photographer_id, scheduled_date)",
		"CREATE INDEX IF NOT EXISTS idx_orders_property_status ON orders(property_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_payments_photographer_status ON payments(photographer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_media_property_type ON media(property_id, type)",
		"CREATE INDEX IF NOT EXISTS idx_order_services_order ON order_services(order_id)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("index", index).Warn("failed to create index")
		}
	}

	return nil
}

// SeedInitialData installs the default admin account and service catalog on
// an empty database.
func SeedInitialData(db *gorm.DB) error {
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Email:     "admin@aerea.io",
			FirstName: "System",
			LastName:  "Administrator",
			Role:      models.RoleAdmin,
		}

		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			generated, err := utils.GenerateRandomString(16)
			if err != nil {
				return fmt.Errorf("failed to generate admin password: %w", err)
			}
			password = generated
			logrus.WithField("password", password).Warn("ADMIN_PASSWORD not set, generated one-time admin password")
		}
		if err := admin.SetPassword(password); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logrus.WithField("email", admin.Email).Info("default admin user created")
	}

	var serviceCount int64
	db.Model(&models.Service{}).Count(&serviceCount)
	if serviceCount > 0 {
		return nil
	}

	services := []models.Service{
		{Name: "Photography", Description: "Professional HDR photography package", Price: 199, Icon: "camera"},
		{Name: "Video Tour", Description: "Cinematic walkthrough video", Price: 349, Icon: "video"},
		{Name: "3D Scan", Description: "Interactive 3D scan of the property", Price: 299, Icon: "box"},
		{Name: "Drone Photography", Description: "Aerial exterior shots", Price: 249, Icon: "plane"},
	}
	if err := db.Create(&services).Error; err != nil {
		return fmt.Errorf("failed to seed services: %w", err)
	}

	photoID := services[0].ID
	videoID := services[1].ID

	addons := []models.AddonService{
		{Name: "Virtual Staging", Description: "Digitally furnished photos", Price: 79, ApplicableServices: models.UUIDList{photoID}},
		{Name: "Floor Plan", Description: "2D schematic floor plan", Price: 59, ApplicableServices: models.UUIDList{}},
		{Name: "Twilight Edit", Description: "Dusk conversion of exterior shots", Price: 49, ApplicableServices: models.UUIDList{photoID, videoID}},
	}
	if err := db.Create(&addons).Error; err != nil {
		return fmt.Errorf("failed to seed addon services: %w", err)
	}

	logrus.Info("initial catalog seeded")
	return nil
}

// WithTransaction wraps a multi-step workflow so partial state is never
// visible to other requests.
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

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// failure (duplicate email and the like). The sqlite driver used in tests
// reports its own message, matched by gorm's translated error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
