// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAssignmentStatusTransitions(t *testing.T) {
	assert.True(t, AssignmentStatusPending.CanTransitionTo(AssignmentStatusScheduled))
	assert.True(t, AssignmentStatusScheduled.CanTransitionTo(AssignmentStatusCompleted))

	assert.False(t, AssignmentStatusPending.CanTransitionTo(AssignmentStatusCompleted))
	assert.False(t, AssignmentStatusScheduled.CanTransitionTo(AssignmentStatusPending))
	assert.False(t, AssignmentStatusCompleted.CanTransitionTo(AssignmentStatusScheduled))
}

func TestJobStatusTransitions(t *testing.T) {
	assert.True(t, JobStatusUpcoming.CanTransitionTo(JobStatusInProgress))
	assert.True(t, JobStatusUpcoming.CanTransitionTo(JobStatusCancelled))
	assert.True(t, JobStatusInProgress.CanTransitionTo(JobStatusCompleted))

	assert.False(t, JobStatusInProgress.CanTransitionTo(JobStatusCancelled))
	assert.False(t, JobStatusCompleted.CanTransitionTo(JobStatusUpcoming))
	assert.False(t, JobStatusCancelled.CanTransitionTo(JobStatusInProgress))
}

func TestOrderStatusAdvancesOneStep(t *testing.T) {
	assert.True(t, OrderStatusDraft.CanTransitionTo(OrderStatusPending))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusPaid))
	assert.True(t, OrderStatusPaid.CanTransitionTo(OrderStatusCompleted))

	assert.False(t, OrderStatusDraft.CanTransitionTo(OrderStatusPaid))
	assert.False(t, OrderStatusPaid.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusDraft))
}

func TestPropertyStatusIsMonotonic(t *testing.T) {
	assert.True(t, PropertyStatusDraft.CanTransitionTo(PropertyStatusCompleted))
	assert.True(t, PropertyStatusScheduled.CanTransitionTo(PropertyStatusScheduled))
	assert.False(t, PropertyStatusCompleted.CanTransitionTo(PropertyStatusDraft))
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleBroker.Can(CapOwnProperties))
	assert.True(t, RoleBroker.Can(CapManageBilling))
	assert.False(t, RoleBroker.Can(CapTakeAssignment))
	assert.False(t, RoleBroker.Can(CapManageCatalog))

	assert.True(t, RolePhotographer.Can(CapTakeAssignment))
	assert.False(t, RolePhotographer.Can(CapOwnProperties))

	assert.True(t, RoleAdmin.Can(CapManageCatalog))
	assert.False(t, RoleAdmin.Can(CapTakeAssignment))

	assert.False(t, Role("ghost").Can(CapOwnProperties))
}

func TestAddonAppliesTo(t *testing.T) {
	photo := uuid.New()
	video := uuid.New()

	restricted := AddonService{ApplicableServices: UUIDList{photo}}
	assert.True(t, restricted.AppliesTo(photo))
	assert.False(t, restricted.AppliesTo(video))

	universal := AddonService{}
	assert.True(t, universal.AppliesTo(photo))
	assert.True(t, universal.AppliesTo(video))
}

func TestJobPayout(t *testing.T) {
	job := Job{
		ServicePrice: 199,
		Addons:       JobAddonList{{Name: "Virtual Staging", Price: 49}, {Name: "Twilight Edit", Price: 25}},
	}
	assert.Equal(t, 273.0, job.Payout())
}

func TestUserSetName(t *testing.T) {
	var u User
	u.SetName("Jane Doe")
	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, "Doe", u.LastName)

	var single User
	single.SetName("Cher")
	assert.Equal(t, "Cher", single.FirstName)
	assert.Empty(t, single.LastName)

	var multi User
	multi.SetName("Ana María de la Cruz")
	assert.Equal(t, "Ana", multi.FirstName)
	assert.Equal(t, "María de la Cruz", multi.LastName)
}
