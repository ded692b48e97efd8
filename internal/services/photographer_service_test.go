// internal/services/photographer_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/models"
)

type PhotographerServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PhotographerService

	admin        *models.User
	photographer *models.User
}

func (suite *PhotographerServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewPhotographerService(suite.db)

	suite.admin = createUser(suite.T(), suite.db, "admin@example.com", models.RoleAdmin)
	suite.photographer = createPhotographer(suite.T(), suite.db, "photo@example.com", 25)
}

func (suite *PhotographerServiceTestSuite) TestUpdateOwnProfile() {
	fee := 40.0
	profile, err := suite.service.UpdateProfile(asPrincipal(suite.photographer), suite.photographer.ID, &PhotographerProfileRequest{
		Bio:         "Architectural photography since 2015",
		Specialties: []string{"drone", "twilight"},
		TravelFee:   &fee,
	})

	suite.Require().NoError(err)
	suite.Equal(40.0, profile.TravelFee)
	suite.Equal(models.StringList{"drone", "twilight"}, profile.Specialties)
}

func (suite *PhotographerServiceTestSuite) TestUpdateForeignProfileForbidden() {
	other := createPhotographer(suite.T(), suite.db, "other@example.com", 0)

	_, err := suite.service.UpdateProfile(asPrincipal(other), suite.photographer.ID, &PhotographerProfileRequest{
		Bio: "hijacked",
	})
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)
}

func (suite *PhotographerServiceTestSuite) TestDeleteNullsReferencesAndKeepsPayments() {
	job := &models.Job{
		PropertyAddress: "123 Main St",
		ServiceType:     "Photography",
		ServicePrice:    199,
		ScheduledDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime:   "10:00",
		Status:          models.JobStatusCompleted,
		PhotographerID:  suite.photographer.ID,
	}
	suite.Require().NoError(suite.db.Create(job).Error)

	payment := &models.Payment{
		PhotographerID: &suite.photographer.ID,
		JobID:          job.ID,
		Amount:         199,
		Status:         models.PaymentStatusPending,
	}
	suite.Require().NoError(suite.db.Create(payment).Error)

	assignment := &models.PropertyService{
		PropertyID:     createProperty(suite.T(), suite.db, createUser(suite.T(), suite.db, "broker@example.com", models.RoleBroker)).ID,
		ServiceID:      createCatalogService(suite.T(), suite.db, "Photography", 199).ID,
		PhotographerID: &suite.photographer.ID,
		Status:         models.AssignmentStatusScheduled,
	}
	suite.Require().NoError(suite.db.Create(assignment).Error)

	suite.Require().NoError(suite.service.Delete(asPrincipal(suite.admin), suite.photographer.ID))

	// Financial history survives with the reference nulled.
	var reloadedPayment models.Payment
	suite.Require().NoError(suite.db.First(&reloadedPayment, "id = ?", payment.ID).Error)
	suite.Nil(reloadedPayment.PhotographerID)

	var reloadedAssignment models.PropertyService
	suite.Require().NoError(suite.db.First(&reloadedAssignment, "id = ?", assignment.ID).Error)
	suite.Nil(reloadedAssignment.PhotographerID)

	var jobs int64
	suite.db.Model(&models.Job{}).Where("id = ?", job.ID).Count(&jobs)
	suite.Equal(int64(0), jobs)

	var users int64
	suite.db.Model(&models.User{}).Where("id = ?", suite.photographer.ID).Count(&users)
	suite.Equal(int64(0), users)
}

func (suite *PhotographerServiceTestSuite) TestDeleteRequiresAdmin() {
	err := suite.service.Delete(asPrincipal(suite.photographer), suite.photographer.ID)
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)
}

type PaymentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PaymentService

	admin        *models.User
	photographer *models.User
	payment      *models.Payment
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewPaymentService(suite.db, events.NewBus())

	suite.admin = createUser(suite.T(), suite.db, "admin@example.com", models.RoleAdmin)
	suite.photographer = createPhotographer(suite.T(), suite.db, "photo@example.com", 25)

	job := &models.Job{
		PropertyAddress: "123 Main St",
		ServiceType:     "Photography",
		ServicePrice:    199,
		ScheduledDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime:   "10:00",
		Status:          models.JobStatusCompleted,
		PhotographerID:  suite.photographer.ID,
	}
	suite.Require().NoError(suite.db.Create(job).Error)

	suite.payment = &models.Payment{
		PhotographerID: &suite.photographer.ID,
		JobID:          job.ID,
		Amount:         199,
		TravelFee:      25,
		Status:         models.PaymentStatusPending,
	}
	suite.Require().NoError(suite.db.Create(suite.payment).Error)
}

func (suite *PaymentServiceTestSuite) TestOnlyAdminUpdatesStatus() {
	_, err := suite.service.UpdateStatus(asPrincipal(suite.photographer), suite.payment.ID, &PaymentStatusRequest{
		Status: models.PaymentStatusProcessing,
	})
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)
}

func (suite *PaymentServiceTestSuite) TestStatusWalksForwardAndStampsDate() {
	_, err := suite.service.UpdateStatus(asPrincipal(suite.admin), suite.payment.ID, &PaymentStatusRequest{
		Status: models.PaymentStatusPaid,
	})
	suite.Require().Error(err)
	suite.IsType(&InvalidTransitionError{}, err)

	updated, err := suite.service.UpdateStatus(asPrincipal(suite.admin), suite.payment.ID, &PaymentStatusRequest{
		Status: models.PaymentStatusProcessing,
	})
	suite.Require().NoError(err)
	suite.Nil(updated.Date)

	updated, err = suite.service.UpdateStatus(asPrincipal(suite.admin), suite.payment.ID, &PaymentStatusRequest{
		Status: models.PaymentStatusPaid,
	})
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusPaid, updated.Status)
	suite.NotNil(updated.Date)
}

func (suite *PaymentServiceTestSuite) TestPayeeCanReadOwnPayment() {
	payment, err := suite.service.Get(asPrincipal(suite.photographer), suite.payment.ID)
	suite.Require().NoError(err)
	suite.Equal(199.0, payment.Amount)

	other := createPhotographer(suite.T(), suite.db, "other@example.com", 0)
	_, err = suite.service.Get(asPrincipal(other), suite.payment.ID)
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)
}

func TestPhotographerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PhotographerServiceTestSuite))
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
