// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/models"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CatalogService

	admin  *models.User
	broker *models.User
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewCatalogService(suite.db)

	suite.admin = createUser(suite.T(), suite.db, "admin@example.com", models.RoleAdmin)
	suite.broker = createUser(suite.T(), suite.db, "broker@example.com", models.RoleBroker)
}

func (suite *CatalogServiceTestSuite) TestWritesAreAdminOnly() {
	_, err := suite.service.CreateService(asPrincipal(suite.broker), &ServiceRequest{Name: "Photography", Price: 199})
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)

	created, err := suite.service.CreateService(asPrincipal(suite.admin), &ServiceRequest{Name: "Photography", Price: 199})
	suite.Require().NoError(err)

	_, err = suite.service.UpdateService(asPrincipal(suite.broker), created.ID, &ServiceRequest{Name: "Photos", Price: 249})
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)

	err = suite.service.DeleteService(asPrincipal(suite.broker), created.ID)
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)
}

func (suite *CatalogServiceTestSuite) TestDeleteAssignedServiceRejected() {
	service := createCatalogService(suite.T(), suite.db, "Photography", 199)
	property := createProperty(suite.T(), suite.db, suite.broker)

	assignment := &models.PropertyService{
		PropertyID: property.ID,
		ServiceID:  service.ID,
		Status:     models.AssignmentStatusPending,
	}
	suite.Require().NoError(suite.db.Create(assignment).Error)

	err := suite.service.DeleteService(asPrincipal(suite.admin), service.ID)
	suite.Require().Error(err)
	suite.IsType(&ConflictError{}, err)

	suite.Require().NoError(suite.db.Delete(assignment).Error)
	suite.Require().NoError(suite.service.DeleteService(asPrincipal(suite.admin), service.ID))
}

func (suite *CatalogServiceTestSuite) TestCreateAddonValidatesApplicableServices() {
	_, err := suite.service.CreateAddon(asPrincipal(suite.admin), &AddonRequest{
		Name:               "Twilight Shots",
		Price:              59,
		ApplicableServices: []uuid.UUID{uuid.New()},
	})
	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
}

func (suite *CatalogServiceTestSuite) TestListAddonsFiltersByService() {
	photo := createCatalogService(suite.T(), suite.db, "Photography", 199)
	video := createCatalogService(suite.T(), suite.db, "Video Tour", 349)

	createAddon(suite.T(), suite.db, "Virtual Staging", 49)
	createAddon(suite.T(), suite.db, "Drone Footage", 99, video.ID)

	all, err := suite.service.ListAddons(nil)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	forPhoto, err := suite.service.ListAddons(&photo.ID)
	suite.Require().NoError(err)
	suite.Require().Len(forPhoto, 1)
	suite.Equal("Virtual Staging", forPhoto[0].Name)

	forVideo, err := suite.service.ListAddons(&video.ID)
	suite.Require().NoError(err)
	suite.Len(forVideo, 2)
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
