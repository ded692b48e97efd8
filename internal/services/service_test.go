// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/heaponte4/aerea/internal/config"
	"github.com/heaponte4/aerea/internal/models"
)

// setupTestDB opens a fresh in-memory database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Storage: config.StorageConfig{
			LocalBaseURL: "http://localhost:8080/uploads",
			LocalRoot:    t.TempDir(),
			MaxUploadMB:  100,
		},
	}
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPhotographer(t *testing.T, db *gorm.DB, email string, travelFee float64) *models.User {
	t.Helper()

	user := createUser(t, db, email, models.RolePhotographer)
	profile := &models.PhotographerProfile{UserID: user.ID, TravelFee: travelFee}
	require.NoError(t, db.Create(profile).Error)
	return user
}

func createProperty(t *testing.T, db *gorm.DB, owner *models.User) *models.Property {
	t.Helper()

	property := &models.Property{
		Address:      "123 Main St",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78701",
		PropertyType: models.PropertyTypeHouse,
		Status:       models.PropertyStatusDraft,
		OwnerID:      owner.ID,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func createCatalogService(t *testing.T, db *gorm.DB, name string, price float64) *models.Service {
	t.Helper()

	service := &models.Service{Name: name, Price: price}
	require.NoError(t, db.Create(service).Error)
	return service
}

func createAddon(t *testing.T, db *gorm.DB, name string, price float64, applicable ...uuid.UUID) *models.AddonService {
	t.Helper()

	addon := &models.AddonService{
		Name:               name,
		Price:              price,
		ApplicableServices: models.UUIDList(applicable),
	}
	require.NoError(t, db.Create(addon).Error)
	return addon
}

func asPrincipal(user *models.User) Principal {
	return Principal{ID: user.ID, Role: user.Role}
}
