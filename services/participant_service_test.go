package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParticipantFixture(t *testing.T) (ParticipantService, *fakeParticipantRepo) {
	t.Helper()

	guardianID := 5
	email := "pat@example.com"
	participantRepo := newFakeParticipantRepo(
		&models.Participant{ID: 11, FullName: "Ann", Age: 12, HouseID: 1, GuardianID: &guardianID, GuardianEmail: &email, IsActive: true},
	)
	houseRepo := newFakeHouseRepo(&models.House{ID: 1, Name: "Red"})
	return NewParticipantService(participantRepo, houseRepo), participantRepo
}

func TestCreateParticipant(t *testing.T) {
	service, _ := newParticipantFixture(t)

	email := "  guardian@example.com  "
	participant, err := service.CreateParticipant(context.Background(), ParticipantInput{
		FullName:      " Ben Okafor ",
		Age:           11,
		HouseID:       1,
		GuardianEmail: &email,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ben Okafor", participant.FullName)
	assert.True(t, participant.IsActive)
	require.NotNil(t, participant.GuardianEmail)
	assert.Equal(t, "guardian@example.com", *participant.GuardianEmail)
}

func TestCreateParticipantValidation(t *testing.T) {
	service, _ := newParticipantFixture(t)
	ctx := context.Background()

	_, err := service.CreateParticipant(ctx, ParticipantInput{Age: 11, HouseID: 1})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = service.CreateParticipant(ctx, ParticipantInput{FullName: "Ben", HouseID: 1})
	assert.ErrorIs(t, err, ErrInvalidAge)

	_, err = service.CreateParticipant(ctx, ParticipantInput{FullName: "Ben", Age: 11, HouseID: 9})
	assert.ErrorIs(t, err, ErrHouseNotFound)
}

func TestUpdateParticipantKeepsActivity(t *testing.T) {
	service, repo := newParticipantFixture(t)
	ctx := context.Background()

	require.NoError(t, service.DeactivateParticipant(ctx, 11))

	updated, err := service.UpdateParticipant(ctx, 11, ParticipantInput{
		FullName: "Ann Okafor", Age: 13, HouseID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann Okafor", updated.FullName)
	assert.False(t, updated.IsActive, "update must not reactivate a deactivated participant")

	stored, _ := repo.GetByID(ctx, 11)
	assert.False(t, stored.IsActive)
}

func TestDeactivateParticipant(t *testing.T) {
	service, repo := newParticipantFixture(t)
	ctx := context.Background()

	require.NoError(t, service.DeactivateParticipant(ctx, 11))

	stored, _ := repo.GetByID(ctx, 11)
	assert.False(t, stored.IsActive)

	err := service.DeactivateParticipant(ctx, 99)
	require.ErrorIs(t, err, ErrParticipantNotFound)
}
