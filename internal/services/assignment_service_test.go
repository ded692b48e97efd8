// internal/services/assignment_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/models"
)

type AssignmentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AssignmentService

	broker       *models.User
	photographer *models.User
	property     *models.Property
	photography  *models.Service
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewAssignmentService(suite.db, events.NewBus())

	suite.broker = createUser(suite.T(), suite.db, "broker@example.com", models.RoleBroker)
	suite.photographer = createPhotographer(suite.T(), suite.db, "photo@example.com", 25)
	suite.property = createProperty(suite.T(), suite.db, suite.broker)
	suite.photography = createCatalogService(suite.T(), suite.db, "Photography", 199)
}

func (suite *AssignmentServiceTestSuite) TestAssignCreatesPending() {
	assignment, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})

	suite.Require().NoError(err)
	suite.Equal(models.AssignmentStatusPending, assignment.Status)
	suite.Nil(assignment.PhotographerID)
	suite.Nil(assignment.JobID)
}

func (suite *AssignmentServiceTestSuite) TestAssignUnknownService() {
	_, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  uuid.New(),
	})

	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
}

func (suite *AssignmentServiceTestSuite) TestAssignInapplicableAddon() {
	video := createCatalogService(suite.T(), suite.db, "Video Tour", 349)
	videoOnly := createAddon(suite.T(), suite.db, "Drone Footage", 99, video.ID)

	_, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
		AddonIDs:   []uuid.UUID{videoOnly.ID},
	})

	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
	suite.Contains(err.Error(), "not applicable")
}

func (suite *AssignmentServiceTestSuite) TestAssignForbiddenForNonOwner() {
	other := createUser(suite.T(), suite.db, "other@example.com", models.RoleBroker)

	_, err := suite.service.Assign(asPrincipal(other), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})

	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)
}

func (suite *AssignmentServiceTestSuite) TestScheduleCreatesJob() {
	staging := createAddon(suite.T(), suite.db, "Virtual Staging", 49, suite.photography.ID)

	assignment, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
		AddonIDs:   []uuid.UUID{staging.ID},
	})
	suite.Require().NoError(err)

	scheduled, err := suite.service.Schedule(asPrincipal(suite.broker), assignment.ID, &ScheduleRequest{
		PhotographerID: suite.photographer.ID,
		Date:           "2026-09-15",
		Time:           "10:00",
	})
	suite.Require().NoError(err)

	suite.Equal(models.AssignmentStatusScheduled, scheduled.Status)
	suite.Require().NotNil(scheduled.PhotographerID)
	suite.Equal(suite.photographer.ID, *scheduled.PhotographerID)
	suite.Require().NotNil(scheduled.JobID)

	var job models.Job
	suite.Require().NoError(suite.db.First(&job, "id = ?", *scheduled.JobID).Error)
	suite.Equal(models.JobStatusUpcoming, job.Status)
	suite.Equal(suite.property.Address, job.PropertyAddress)
	suite.Equal(suite.photography.Name, job.ServiceType)
	suite.Equal(suite.photography.Price, job.ServicePrice)
	suite.Equal(suite.photographer.ID, job.PhotographerID)
	suite.Require().Len(job.Addons, 1)
	suite.Equal("Virtual Staging", job.Addons[0].Name)
	suite.Equal(199.0+49.0, job.Payout())
}

func (suite *AssignmentServiceTestSuite) TestScheduleSnapshotsClient() {
	assignment, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})
	suite.Require().NoError(err)

	scheduled, err := suite.service.Schedule(asPrincipal(suite.broker), assignment.ID, &ScheduleRequest{
		PhotographerID: suite.photographer.ID,
		Date:           "2026-09-15",
		Time:           "10:00",
	})
	suite.Require().NoError(err)

	var job models.Job
	suite.Require().NoError(suite.db.First(&job, "id = ?", *scheduled.JobID).Error)
	suite.Equal(suite.broker.FullName(), job.ClientName)
	suite.Equal(suite.broker.Email, job.ClientEmail)
}

func (suite *AssignmentServiceTestSuite) TestScheduleRejectsNonPhotographer() {
	assignment, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})
	suite.Require().NoError(err)

	_, err = suite.service.Schedule(asPrincipal(suite.broker), assignment.ID, &ScheduleRequest{
		PhotographerID: suite.broker.ID,
		Date:           "2026-09-15",
		Time:           "10:00",
	})

	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
	suite.Contains(err.Error(), "not a photographer")
}

func (suite *AssignmentServiceTestSuite) TestScheduleRejectsDoubleBooking() {
	first, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})
	suite.Require().NoError(err)
	_, err = suite.service.Schedule(asPrincipal(suite.broker), first.ID, &ScheduleRequest{
		PhotographerID: suite.photographer.ID,
		Date:           "2026-09-15",
		Time:           "10:00",
	})
	suite.Require().NoError(err)

	second, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})
	suite.Require().NoError(err)
	_, err = suite.service.Schedule(asPrincipal(suite.broker), second.ID, &ScheduleRequest{
		PhotographerID: suite.photographer.ID,
		Date:           "2026-09-15",
		Time:           "10:00",
	})

	suite.Require().Error(err)
	suite.IsType(&ConflictError{}, err)

	// A different slot on the same day is fine.
	third, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})
	suite.Require().NoError(err)
	_, err = suite.service.Schedule(asPrincipal(suite.broker), third.ID, &ScheduleRequest{
		PhotographerID: suite.photographer.ID,
		Date:           "2026-09-15",
		Time:           "14:00",
	})
	suite.NoError(err)
}

func (suite *AssignmentServiceTestSuite) TestAssignWithImmediateSchedule() {
	date := "2026-09-20"
	timeSlot := "09:30"
	assignment, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID:     suite.property.ID,
		ServiceID:      suite.photography.ID,
		PhotographerID: &suite.photographer.ID,
		ScheduledDate:  &date,
		ScheduledTime:  &timeSlot,
	})

	suite.Require().NoError(err)
	suite.Equal(models.AssignmentStatusScheduled, assignment.Status)
	suite.NotNil(assignment.JobID)
}

func (suite *AssignmentServiceTestSuite) TestCompleteRequiresScheduled() {
	assignment, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})
	suite.Require().NoError(err)

	_, err = suite.service.Complete(asPrincipal(suite.broker), assignment.ID)
	suite.Require().Error(err)
	suite.IsType(&InvalidTransitionError{}, err)

	_, err = suite.service.Schedule(asPrincipal(suite.broker), assignment.ID, &ScheduleRequest{
		PhotographerID: suite.photographer.ID,
		Date:           "2026-09-15",
		Time:           "10:00",
	})
	suite.Require().NoError(err)

	completed, err := suite.service.Complete(asPrincipal(suite.broker), assignment.ID)
	suite.Require().NoError(err)
	suite.Equal(models.AssignmentStatusCompleted, completed.Status)

	// completed is terminal
	_, err = suite.service.Complete(asPrincipal(suite.broker), assignment.ID)
	suite.Require().Error(err)
	suite.IsType(&InvalidTransitionError{}, err)
}

func (suite *AssignmentServiceTestSuite) TestDeleteBilledAssignmentRejected() {
	assignment, err := suite.service.Assign(asPrincipal(suite.broker), &AssignRequest{
		PropertyID: suite.property.ID,
		ServiceID:  suite.photography.ID,
	})
	suite.Require().NoError(err)

	orders := NewOrderService(suite.db, events.NewBus())
	_, err = orders.Create(asPrincipal(suite.broker), &CreateOrderRequest{
		PropertyID:         suite.property.ID,
		PropertyServiceIDs: []uuid.UUID{assignment.ID},
	})
	suite.Require().NoError(err)

	err = suite.service.Delete(asPrincipal(suite.broker), assignment.ID)
	suite.Require().Error(err)
	suite.IsType(&ConflictError{}, err)
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
