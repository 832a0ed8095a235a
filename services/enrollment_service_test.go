package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enrollmentFixture struct {
	service        EnrollmentService
	eventRepo      *fakeEventRepo
	enrollmentRepo *fakeEnrollmentRepo
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()

	relay := &models.Sport{
		ID: 1, Name: "4x100m Relay", Category: "athletics",
		MaxParticipantsPerHouse: 2,
		PointsFirst:             10, PointsSecond: 7, PointsThird: 5,
	}
	event := &models.Event{
		ID: 1, Name: "Relay Heats", SportID: relay.ID,
		Status: models.EventStatusScheduled, Sport: relay,
	}

	eventRepo := newFakeEventRepo(event)
	enrollmentRepo := newFakeEnrollmentRepo()
	participantRepo := newFakeParticipantRepo(
		&models.Participant{ID: 11, FullName: "Ann", HouseID: 1, IsActive: true},
		&models.Participant{ID: 12, FullName: "Ben", HouseID: 1, IsActive: true},
		&models.Participant{ID: 13, FullName: "Cal", HouseID: 1, IsActive: true},
		&models.Participant{ID: 21, FullName: "Dot", HouseID: 2, IsActive: true},
		&models.Participant{ID: 22, FullName: "Eli", HouseID: 2, IsActive: false},
	)

	return &enrollmentFixture{
		service:        NewEnrollmentService(enrollmentRepo, eventRepo, participantRepo),
		eventRepo:      eventRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func TestReplaceRoster(t *testing.T) {
	f := newEnrollmentFixture(t)

	roster, err := f.service.ReplaceRoster(context.Background(), 1, []int{11, 12, 21})
	require.NoError(t, err)
	assert.Len(t, roster, 3)
}

func TestReplaceRosterDeduplicates(t *testing.T) {
	f := newEnrollmentFixture(t)

	roster, err := f.service.ReplaceRoster(context.Background(), 1, []int{11, 11, 21})
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestReplaceRosterEnforcesHouseQuota(t *testing.T) {
	f := newEnrollmentFixture(t)

	// Three entries from house 1 against a quota of two.
	_, err := f.service.ReplaceRoster(context.Background(), 1, []int{11, 12, 13})
	require.ErrorIs(t, err, ErrHouseQuotaExceeded)

	// Nothing was written.
	stored, _ := f.enrollmentRepo.ListByEvent(context.Background(), 1)
	assert.Empty(t, stored)
}

func TestReplaceRosterRejectsClosedEvent(t *testing.T) {
	for _, status := range []models.EventStatus{models.EventStatusCompleted, models.EventStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newEnrollmentFixture(t)
			f.eventRepo.events[1].Status = status

			_, err := f.service.ReplaceRoster(context.Background(), 1, []int{11})
			require.ErrorIs(t, err, ErrEventNotOpen)
		})
	}
}

func TestReplaceRosterRejectsInactiveParticipant(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.service.ReplaceRoster(context.Background(), 1, []int{22})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestReplaceRosterUnknownParticipant(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.service.ReplaceRoster(context.Background(), 1, []int{99})
	require.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestReplaceRosterClearingIsAllowed(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.service.ReplaceRoster(context.Background(), 1, []int{11})
	require.NoError(t, err)

	roster, err := f.service.ReplaceRoster(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestGetRosterUnknownEvent(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.service.GetRoster(context.Background(), 42)
	require.ErrorIs(t, err, ErrEventNotFound)
}
