package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
)

var ErrEnrollmentFailed = errors.New("failed to update enrollment")

type EnrollmentService interface {
	GetRoster(ctx context.Context, eventID int) ([]models.Enrollment, error)

	// ReplaceRoster swaps the full enrollment set for an event. The house
	// quota from the event's sport is enforced over the proposed roster.
	ReplaceRoster(ctx context.Context, eventID int, participantIDs []int) ([]models.Enrollment, error)
}

type enrollmentService struct {
	enrollmentRepo  repositories.EnrollmentRepository
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
}

func NewEnrollmentService(
	enrollmentRepo repositories.EnrollmentRepository,
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo:  enrollmentRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
	}
}

func (s *enrollmentService) GetRoster(ctx context.Context, eventID int) ([]models.Enrollment, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}

	roster, err := s.enrollmentRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster for event %d: %w", eventID, err)
	}
	return roster, nil
}

func (s *enrollmentService) ReplaceRoster(ctx context.Context, eventID int, participantIDs []int) ([]models.Enrollment, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	if event.Status == models.EventStatusCompleted || event.Status == models.EventStatusCancelled {
		return nil, ErrEventNotOpen
	}

	// Deduplicate and verify every participant, counting per house for the
	// sport quota.
	seen := make(map[int]bool, len(participantIDs))
	perHouse := make(map[int]int)
	unique := make([]int, 0, len(participantIDs))
	for _, participantID := range participantIDs {
		if seen[participantID] {
			continue
		}
		seen[participantID] = true

		participant, pErr := s.participantRepo.GetByID(ctx, participantID)
		if pErr != nil {
			if errors.Is(pErr, repositories.ErrParticipantNotFound) {
				return nil, fmt.Errorf("%w: participant %d", ErrParticipantNotFound, participantID)
			}
			return nil, fmt.Errorf("%w: %w", ErrEnrollmentFailed, pErr)
		}
		if !participant.IsActive {
			return nil, fmt.Errorf("%w: participant %d is inactive", ErrValidationFailed, participantID)
		}

		perHouse[participant.HouseID]++
		if max := event.Sport.MaxParticipantsPerHouse; max > 0 && perHouse[participant.HouseID] > max {
			return nil, fmt.Errorf("%w: house %d exceeds %d entries for %s",
				ErrHouseQuotaExceeded, participant.HouseID, max, event.Sport.Name)
		}
		unique = append(unique, participantID)
	}

	if err := s.enrollmentRepo.ReplaceForEvent(ctx, eventID, unique); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEnrollmentInvalid):
			return nil, fmt.Errorf("%w: unknown event or participant", ErrValidationFailed)
		case errors.Is(err, repositories.ErrEnrollmentConflict):
			return nil, ErrEnrollmentConflict
		default:
			return nil, fmt.Errorf("%w: %w", ErrEnrollmentFailed, err)
		}
	}

	roster, err := s.enrollmentRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload roster for event %d: %w", eventID, err)
	}
	return roster, nil
}
