// internal/services/property_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

type PropertyServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PropertyService
	broker  *models.User
}

func (suite *PropertyServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewPropertyService(suite.db, events.NewBus())
	suite.broker = createUser(suite.T(), suite.db, "broker@example.com", models.RoleBroker)
}

func (suite *PropertyServiceTestSuite) TestCreateStartsDraft() {
	property, err := suite.service.Create(asPrincipal(suite.broker), &PropertyRequest{
		Address:      "123 Main St",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78701",
		PropertyType: models.PropertyTypeCondo,
		Features:     []string{"pool", "garage"},
	})

	suite.Require().NoError(err)
	suite.Equal(models.PropertyStatusDraft, property.Status)
	suite.Equal(suite.broker.ID, property.OwnerID)
	suite.Equal(models.StringList{"pool", "garage"}, property.Features)
}

func (suite *PropertyServiceTestSuite) TestPhotographerCannotCreate() {
	photographer := createPhotographer(suite.T(), suite.db, "photo@example.com", 0)

	_, err := suite.service.Create(asPrincipal(photographer), &PropertyRequest{
		Address:      "123 Main St",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78701",
		PropertyType: models.PropertyTypeHouse,
	})

	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)
}

func (suite *PropertyServiceTestSuite) TestStatusNeverMovesBackward() {
	property := createProperty(suite.T(), suite.db, suite.broker)

	completed := models.PropertyStatusCompleted
	_, err := suite.service.Update(asPrincipal(suite.broker), property.ID, &PropertyUpdateRequest{
		PropertyRequest: PropertyRequest{
			Address:      property.Address,
			City:         property.City,
			State:        property.State,
			ZipCode:      property.ZipCode,
			PropertyType: property.PropertyType,
		},
		Status: &completed,
	})
	suite.Require().NoError(err)

	draft := models.PropertyStatusDraft
	_, err = suite.service.Update(asPrincipal(suite.broker), property.ID, &PropertyUpdateRequest{
		PropertyRequest: PropertyRequest{
			Address:      property.Address,
			City:         property.City,
			State:        property.State,
			ZipCode:      property.ZipCode,
			PropertyType: property.PropertyType,
		},
		Status: &draft,
	})
	suite.Require().Error(err)
	suite.IsType(&InvalidTransitionError{}, err)
}

func (suite *PropertyServiceTestSuite) TestBrokerListScopedToOwn() {
	other := createUser(suite.T(), suite.db, "other@example.com", models.RoleBroker)
	createProperty(suite.T(), suite.db, suite.broker)
	createProperty(suite.T(), suite.db, suite.broker)
	createProperty(suite.T(), suite.db, other)

	result, err := suite.service.List(asPrincipal(suite.broker), utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"})
	suite.Require().NoError(err)
	suite.Equal(int64(2), result.Total)

	admin := createUser(suite.T(), suite.db, "admin@example.com", models.RoleAdmin)
	result, err = suite.service.List(asPrincipal(admin), utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"})
	suite.Require().NoError(err)
	suite.Equal(int64(3), result.Total)
}

func (suite *PropertyServiceTestSuite) TestDeleteCascades() {
	property := createProperty(suite.T(), suite.db, suite.broker)
	photography := createCatalogService(suite.T(), suite.db, "Photography", 199)

	bus := events.NewBus()
	assignments := NewAssignmentService(suite.db, bus)
	assignment, err := assignments.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: property.ID,
		ServiceID:  photography.ID,
	})
	suite.Require().NoError(err)

	orders := NewOrderService(suite.db, bus)
	order, err := orders.Create(asPrincipal(suite.broker), &CreateOrderRequest{
		PropertyID:         property.ID,
		PropertyServiceIDs: []uuid.UUID{assignment.ID},
	})
	suite.Require().NoError(err)

	media := &models.Media{
		PropertyID: property.ID,
		ServiceID:  photography.ID,
		Type:       models.MediaTypePhoto,
		FileKey:    "property-media/test.jpg",
		FileName:   "test.jpg",
	}
	suite.Require().NoError(suite.db.Create(media).Error)

	suite.Require().NoError(suite.service.Delete(asPrincipal(suite.broker), property.ID))

	var count int64
	suite.db.Model(&models.PropertyService{}).Where("id = ?", assignment.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.OrderService{}).Where("order_id = ?", order.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.Media{}).Where("id = ?", media.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func TestPropertyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PropertyServiceTestSuite))
}
