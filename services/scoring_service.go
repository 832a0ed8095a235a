package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/Dosada05/sports-day-system/live"
	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
)

var ErrScoringFailed = errors.New("failed to record results")

// ResultsBroadcaster pushes scoring updates to live subscribers. Implemented
// by live.Hub.
type ResultsBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// ResultsNotifier delivers a results summary to guardian email addresses.
// Implemented by EmailService.
type ResultsNotifier interface {
	SendResultsRecorded(event *models.Event, results []models.Result, recipients []string) error
}

// ScoringOutcome is what RecordResults returns to the caller: the replaced
// result rows and the net change applied to each affected house's total.
type ScoringOutcome struct {
	Event       *models.Event   `json:"event"`
	Results     []models.Result `json:"results"`
	HouseDeltas map[int]int     `json:"house_deltas"`
}

type ScoringService interface {
	// RecordResults converts position assignments for an event's enrolled
	// participants into persisted result rows, marks the event completed and
	// adjusts house totals, all within a single transaction.
	//
	// Assignments map participant ID to position (1 = best). Zero or absent
	// means "no position" and the participant is excluded. Recording is a
	// full replace: prior results for the event are dropped and house totals
	// receive only the difference between the old and new distributions, so
	// re-scoring never double-counts.
	RecordResults(ctx context.Context, eventID int, assignments map[int]int) (*ScoringOutcome, error)

	GetEventResults(ctx context.Context, eventID int) (*models.Event, error)
}

// scoringTx is the transaction surface RecordResults needs: an executor the
// repositories can run statements on, plus commit/rollback.
type scoringTx interface {
	repositories.SQLExecutor
	Commit() error
	Rollback() error
}

type scoringService struct {
	begin          func(ctx context.Context) (scoringTx, error)
	eventRepo      repositories.EventRepository
	enrollmentRepo repositories.EnrollmentRepository
	resultRepo     repositories.ResultRepository
	houseRepo      repositories.HouseRepository
	broadcaster    ResultsBroadcaster
	notifier       ResultsNotifier
}

func NewScoringService(
	db *sql.DB,
	eventRepo repositories.EventRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	resultRepo repositories.ResultRepository,
	houseRepo repositories.HouseRepository,
	broadcaster ResultsBroadcaster,
	notifier ResultsNotifier,
) ScoringService {
	return &scoringService{
		begin: func(ctx context.Context) (scoringTx, error) {
			return db.BeginTx(ctx, nil)
		},
		eventRepo:      eventRepo,
		enrollmentRepo: enrollmentRepo,
		resultRepo:     resultRepo,
		houseRepo:      houseRepo,
		broadcaster:    broadcaster,
		notifier:       notifier,
	}
}

func (s *scoringService) RecordResults(ctx context.Context, eventID int, assignments map[int]int) (*ScoringOutcome, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScoringFailed, err)
	}
	if event.Sport == nil {
		return nil, fmt.Errorf("%w: event %d has no sport", ErrScoringFailed, eventID)
	}

	roster, err := s.enrollmentRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScoringFailed, err)
	}
	enrolled := make(map[int]*models.Participant, len(roster))
	for i := range roster {
		enrolled[roster[i].ParticipantID] = roster[i].Participant
	}

	newResults, err := buildResults(event, enrolled, assignments)
	if err != nil {
		return nil, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", ErrScoringFailed, err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("rollback failed for event %d: %v (original error: %v)", eventID, rbErr, txErr)
			}
		}
	}()

	// Previous distribution, needed so re-scoring applies a delta rather
	// than re-adding the full award.
	previous, listErr := s.resultRepo.ListByEvent(ctx, tx, eventID)
	if listErr != nil {
		txErr = fmt.Errorf("%w: %w", ErrScoringFailed, listErr)
		return nil, txErr
	}

	if delErr := s.resultRepo.DeleteByEvent(ctx, tx, eventID); delErr != nil {
		txErr = fmt.Errorf("%w: %w", ErrScoringFailed, delErr)
		return nil, txErr
	}

	if insErr := s.resultRepo.BatchCreate(ctx, tx, newResults); insErr != nil {
		txErr = fmt.Errorf("%w: %w", ErrScoringFailed, insErr)
		return nil, txErr
	}

	if stErr := s.eventRepo.UpdateStatus(ctx, tx, eventID, models.EventStatusCompleted); stErr != nil {
		txErr = fmt.Errorf("%w: %w", ErrScoringFailed, stErr)
		return nil, txErr
	}

	deltas := housePointDeltas(previous, newResults)
	// Sorted house order keeps concurrent scoring transactions from
	// deadlocking on row locks.
	houseIDs := make([]int, 0, len(deltas))
	for houseID := range deltas {
		houseIDs = append(houseIDs, houseID)
	}
	sort.Ints(houseIDs)
	for _, houseID := range houseIDs {
		if deltas[houseID] == 0 {
			delete(deltas, houseID)
			continue
		}
		if ptErr := s.houseRepo.AddPoints(ctx, tx, houseID, deltas[houseID]); ptErr != nil {
			txErr = fmt.Errorf("%w: house %d: %w", ErrScoringFailed, houseID, ptErr)
			return nil, txErr
		}
	}

	if cErr := tx.Commit(); cErr != nil {
		txErr = fmt.Errorf("%w: failed to commit transaction: %w", ErrScoringFailed, cErr)
		return nil, txErr
	}

	event.Status = models.EventStatusCompleted
	outcome := &ScoringOutcome{
		Event:       event,
		Results:     dereferenceResults(newResults),
		HouseDeltas: deltas,
	}

	s.afterCommit(event, outcome.Results, enrolled)
	return outcome, nil
}

// buildResults validates assignments against the roster and produces the new
// result rows with points from the sport's table and the house denormalized
// from the participant's current membership.
func buildResults(event *models.Event, enrolled map[int]*models.Participant, assignments map[int]int) ([]*models.Result, error) {
	newResults := make([]*models.Result, 0, len(assignments))
	for participantID, position := range assignments {
		if position == 0 {
			continue
		}
		if position < 0 {
			return nil, fmt.Errorf("%w: participant %d", ErrInvalidPosition, participantID)
		}
		participant, ok := enrolled[participantID]
		if !ok {
			return nil, fmt.Errorf("%w: participant %d", ErrParticipantNotOnRoster, participantID)
		}
		newResults = append(newResults, &models.Result{
			EventID:       event.ID,
			ParticipantID: participantID,
			HouseID:       participant.HouseID,
			Position:      position,
			PointsAwarded: event.Sport.PointsForPosition(position),
		})
	}
	if len(newResults) == 0 {
		return nil, ErrNoPositionsAssigned
	}

	sort.Slice(newResults, func(i, j int) bool {
		if newResults[i].Position != newResults[j].Position {
			return newResults[i].Position < newResults[j].Position
		}
		return newResults[i].ParticipantID < newResults[j].ParticipantID
	})
	return newResults, nil
}

// housePointDeltas computes, per house, the new award sum minus the previous
// one. Houses present in either distribution appear in the map.
func housePointDeltas(previous []models.Result, next []*models.Result) map[int]int {
	deltas := make(map[int]int)
	for i := range previous {
		deltas[previous[i].HouseID] -= previous[i].PointsAwarded
	}
	for _, result := range next {
		deltas[result.HouseID] += result.PointsAwarded
	}
	return deltas
}

func (s *scoringService) afterCommit(event *models.Event, results []models.Result, enrolled map[int]*models.Participant) {
	if s.broadcaster != nil {
		payload := map[string]interface{}{
			"event_id":     event.ID,
			"event_name":   event.Name,
			"event_status": event.Status,
			"results":      results,
		}
		s.broadcaster.BroadcastToRoom(live.EventRoom(event.ID), map[string]interface{}{
			"type":    "RESULTS_RECORDED",
			"payload": payload,
		})
		s.broadcaster.BroadcastToRoom(live.ScoreboardRoom, map[string]interface{}{
			"type":    "SCOREBOARD_UPDATED",
			"payload": payload,
		})
	}

	if s.notifier != nil {
		recipients := make([]string, 0, len(results))
		seen := make(map[string]bool)
		for i := range results {
			participant, ok := enrolled[results[i].ParticipantID]
			if !ok || participant.GuardianEmail == nil {
				continue
			}
			email := *participant.GuardianEmail
			if email == "" || seen[email] {
				continue
			}
			seen[email] = true
			recipients = append(recipients, email)
		}
		if len(recipients) > 0 {
			go func() {
				if err := s.notifier.SendResultsRecorded(event, results, recipients); err != nil {
					log.Printf("failed to send results notification for event %d: %v", event.ID, err)
				}
			}()
		}
	}
}

func (s *scoringService) GetEventResults(ctx context.Context, eventID int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}

	results, err := s.resultRepo.ListByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for event %d: %w", eventID, err)
	}
	event.Results = results
	return event, nil
}

func dereferenceResults(results []*models.Result) []models.Result {
	out := make([]models.Result, len(results))
	for i, result := range results {
		out[i] = *result
	}
	return out
}
