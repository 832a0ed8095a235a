package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	service     *scoringService
	eventRepo   *fakeEventRepo
	resultRepo  *fakeResultRepo
	houseRepo   *fakeHouseRepo
	broadcaster *fakeBroadcaster
	tx          *fakeTx
}

// newScoringFixture wires a scoring service over in-memory repositories with
// one athletics event: four runners, two per house.
func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()

	red := &models.House{ID: 1, Name: "Red", TotalPoints: 0}
	blue := &models.House{ID: 2, Name: "Blue", TotalPoints: 0}

	sprint := &models.Sport{
		ID: 1, Name: "100m Sprint", Category: "athletics",
		MaxParticipantsPerHouse: 2,
		PointsFirst:             10, PointsSecond: 7, PointsThird: 5,
	}
	event := &models.Event{
		ID: 1, Name: "100m Sprint Final", SportID: sprint.ID,
		Status: models.EventStatusInProgress, Sport: sprint,
	}

	runners := []*models.Participant{
		{ID: 11, FullName: "Ann", HouseID: red.ID, IsActive: true},
		{ID: 12, FullName: "Ben", HouseID: red.ID, IsActive: true},
		{ID: 13, FullName: "Cleo", HouseID: blue.ID, IsActive: true},
		{ID: 14, FullName: "Dev", HouseID: blue.ID, IsActive: true},
	}

	eventRepo := newFakeEventRepo(event)
	enrollmentRepo := newFakeEnrollmentRepo()
	enrollmentRepo.enroll(event.ID, runners...)
	resultRepo := newFakeResultRepo()
	houseRepo := newFakeHouseRepo(red, blue)
	broadcaster := &fakeBroadcaster{}
	tx := &fakeTx{}

	service := &scoringService{
		begin: func(ctx context.Context) (scoringTx, error) {
			return tx, nil
		},
		eventRepo:      eventRepo,
		enrollmentRepo: enrollmentRepo,
		resultRepo:     resultRepo,
		houseRepo:      houseRepo,
		broadcaster:    broadcaster,
	}

	return &scoringFixture{
		service:     service,
		eventRepo:   eventRepo,
		resultRepo:  resultRepo,
		houseRepo:   houseRepo,
		broadcaster: broadcaster,
		tx:          tx,
	}
}

func TestRecordResultsAwardsPointTable(t *testing.T) {
	f := newScoringFixture(t)

	outcome, err := f.service.RecordResults(context.Background(), 1, map[int]int{
		11: 1, // Ann, Red
		13: 2, // Cleo, Blue
		12: 3, // Ben, Red
		14: 4, // Dev, Blue: off the point table
	})
	require.NoError(t, err)
	require.Len(t, outcome.Results, 4)

	// Ordered by position, points from the sport's table, zero below third.
	awards := make(map[int]int)
	for _, result := range outcome.Results {
		awards[result.ParticipantID] = result.PointsAwarded
	}
	assert.Equal(t, 10, awards[11])
	assert.Equal(t, 7, awards[13])
	assert.Equal(t, 5, awards[12])
	assert.Equal(t, 0, awards[14])
	assert.Equal(t, 1, outcome.Results[0].Position)

	assert.Equal(t, models.EventStatusCompleted, outcome.Event.Status)
	assert.True(t, f.tx.committed)
	assert.False(t, f.tx.rolledBack)

	red, _ := f.houseRepo.GetByID(context.Background(), 1)
	blue, _ := f.houseRepo.GetByID(context.Background(), 2)
	assert.Equal(t, 15, red.TotalPoints)
	assert.Equal(t, 7, blue.TotalPoints)
	assert.Equal(t, map[int]int{1: 15, 2: 7}, outcome.HouseDeltas)
}

func TestRecordResultsZeroMeansUnplaced(t *testing.T) {
	f := newScoringFixture(t)

	outcome, err := f.service.RecordResults(context.Background(), 1, map[int]int{
		11: 1,
		12: 0,
	})
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, 11, outcome.Results[0].ParticipantID)
}

func TestRecordResultsEmptyAssignments(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.RecordResults(context.Background(), 1, map[int]int{})
	require.ErrorIs(t, err, ErrNoPositionsAssigned)

	// Validation happens before the transaction; nothing must change.
	assert.False(t, f.tx.committed)
	assert.Empty(t, f.eventRepo.statusChanges)

	event, _ := f.eventRepo.GetByID(context.Background(), 1)
	assert.Equal(t, models.EventStatusInProgress, event.Status)
}

func TestRecordResultsAllZeroAssignments(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.RecordResults(context.Background(), 1, map[int]int{11: 0, 12: 0})
	require.ErrorIs(t, err, ErrNoPositionsAssigned)
}

func TestRecordResultsRejectsNegativePosition(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.RecordResults(context.Background(), 1, map[int]int{11: -1})
	require.ErrorIs(t, err, ErrInvalidPosition)
	assert.False(t, f.tx.committed)
}

func TestRecordResultsRejectsUnenrolledParticipant(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.RecordResults(context.Background(), 1, map[int]int{99: 1})
	require.ErrorIs(t, err, ErrParticipantNotOnRoster)
	assert.False(t, f.tx.committed)
}

func TestRecordResultsUnknownEvent(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.RecordResults(context.Background(), 42, map[int]int{11: 1})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestRecordResultsTieSharesAward(t *testing.T) {
	f := newScoringFixture(t)

	outcome, err := f.service.RecordResults(context.Background(), 1, map[int]int{
		11: 1,
		13: 1, // dead heat: both take first-place points
		12: 3,
	})
	require.NoError(t, err)

	awards := make(map[int]int)
	for _, result := range outcome.Results {
		awards[result.ParticipantID] = result.PointsAwarded
	}
	assert.Equal(t, 10, awards[11])
	assert.Equal(t, 10, awards[13])
	assert.Equal(t, 5, awards[12])
}

func TestRescoreReplacesRowsAndAppliesDelta(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	_, err := f.service.RecordResults(ctx, 1, map[int]int{11: 1, 13: 2})
	require.NoError(t, err)

	red, _ := f.houseRepo.GetByID(ctx, 1)
	blue, _ := f.houseRepo.GetByID(ctx, 2)
	require.Equal(t, 10, red.TotalPoints)
	require.Equal(t, 7, blue.TotalPoints)

	// Correction: Ann actually came second, Cleo first.
	outcome, err := f.service.RecordResults(ctx, 1, map[int]int{11: 2, 13: 1})
	require.NoError(t, err)

	// Still exactly one row per participant after the replace.
	stored, _ := f.resultRepo.ListByEvent(ctx, nil, 1)
	require.Len(t, stored, 2)
	seen := make(map[int]int)
	for _, result := range stored {
		seen[result.ParticipantID]++
	}
	assert.Equal(t, map[int]int{11: 1, 13: 1}, seen)

	// Totals reflect the corrected distribution, not the sum of both runs:
	// Red moved 1st -> 2nd, a net -3; Blue the reverse.
	red, _ = f.houseRepo.GetByID(ctx, 1)
	blue, _ = f.houseRepo.GetByID(ctx, 2)
	assert.Equal(t, 7, red.TotalPoints)
	assert.Equal(t, 10, blue.TotalPoints)
	assert.Equal(t, map[int]int{1: -3, 2: 3}, outcome.HouseDeltas)
}

func TestRescoreIdenticalIsNoOp(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	assignments := map[int]int{11: 1, 13: 2}
	_, err := f.service.RecordResults(ctx, 1, assignments)
	require.NoError(t, err)
	callsAfterFirst := len(f.houseRepo.pointCalls)

	outcome, err := f.service.RecordResults(ctx, 1, assignments)
	require.NoError(t, err)

	// Zero deltas are dropped, so no further point updates are issued.
	assert.Empty(t, outcome.HouseDeltas)
	assert.Len(t, f.houseRepo.pointCalls, callsAfterFirst)

	red, _ := f.houseRepo.GetByID(ctx, 1)
	assert.Equal(t, 10, red.TotalPoints)
}

func TestRecordResultsBroadcasts(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.RecordResults(context.Background(), 1, map[int]int{11: 1})
	require.NoError(t, err)

	rooms := f.broadcaster.rooms()
	assert.Contains(t, rooms, "event_1")
	assert.Contains(t, rooms, "scoreboard")
}

func TestGetEventResults(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	_, err := f.service.RecordResults(ctx, 1, map[int]int{11: 1, 13: 2})
	require.NoError(t, err)

	event, err := f.service.GetEventResults(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCompleted, event.Status)
	assert.Len(t, event.Results, 2)
}

func TestHousePointDeltas(t *testing.T) {
	previous := []models.Result{
		{HouseID: 1, PointsAwarded: 10},
		{HouseID: 2, PointsAwarded: 7},
	}
	next := []*models.Result{
		{HouseID: 1, PointsAwarded: 7},
		{HouseID: 3, PointsAwarded: 10},
	}

	deltas := housePointDeltas(previous, next)
	assert.Equal(t, map[int]int{1: -3, 2: -7, 3: 10}, deltas)
}
