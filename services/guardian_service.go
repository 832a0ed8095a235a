package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
	"golang.org/x/sync/errgroup"
)

// ChildDetails is the guardian view of one of their children: the participant
// with house, their event schedule and their result history.
type ChildDetails struct {
	Participant *models.Participant `json:"participant"`
	Events      []models.Event      `json:"events"`
	Results     []models.Result     `json:"results"`
}

type GuardianService interface {
	ListChildren(ctx context.Context, guardianID int) ([]models.Participant, error)
	GetChildDetails(ctx context.Context, guardianID, participantID int) (*ChildDetails, error)
	GetChildEvents(ctx context.Context, guardianID, participantID int) ([]models.Event, error)
	GetChildResults(ctx context.Context, guardianID, participantID int) ([]models.Result, error)
}

type guardianService struct {
	participantRepo repositories.ParticipantRepository
	enrollmentRepo  repositories.EnrollmentRepository
	resultRepo      repositories.ResultRepository
}

func NewGuardianService(
	participantRepo repositories.ParticipantRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	resultRepo repositories.ResultRepository,
) GuardianService {
	return &guardianService{
		participantRepo: participantRepo,
		enrollmentRepo:  enrollmentRepo,
		resultRepo:      resultRepo,
	}
}

func (s *guardianService) ListChildren(ctx context.Context, guardianID int) ([]models.Participant, error) {
	children, err := s.participantRepo.List(ctx, repositories.ParticipantFilter{
		GuardianID: &guardianID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list children for guardian %d: %w", guardianID, err)
	}
	if children == nil {
		return []models.Participant{}, nil
	}
	return children, nil
}

// verifyOwnership loads the participant and checks they belong to the
// guardian. Guardians must never see another family's child through ID
// guessing.
func (s *guardianService) verifyOwnership(ctx context.Context, guardianID, participantID int) (*models.Participant, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant %d: %w", participantID, err)
	}
	if participant.GuardianID == nil || *participant.GuardianID != guardianID {
		return nil, ErrForbiddenOperation
	}
	return participant, nil
}

func (s *guardianService) GetChildDetails(ctx context.Context, guardianID, participantID int) (*ChildDetails, error) {
	participant, err := s.verifyOwnership(ctx, guardianID, participantID)
	if err != nil {
		return nil, err
	}

	details := &ChildDetails{Participant: participant}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events, evErr := s.enrollmentRepo.ListEventsByParticipant(gCtx, participantID)
		if evErr != nil {
			return fmt.Errorf("failed to load events for participant %d: %w", participantID, evErr)
		}
		details.Events = events
		return nil
	})
	g.Go(func() error {
		results, resErr := s.resultRepo.ListByParticipant(gCtx, participantID)
		if resErr != nil {
			return fmt.Errorf("failed to load results for participant %d: %w", participantID, resErr)
		}
		details.Results = results
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *guardianService) GetChildEvents(ctx context.Context, guardianID, participantID int) ([]models.Event, error) {
	if _, err := s.verifyOwnership(ctx, guardianID, participantID); err != nil {
		return nil, err
	}
	events, err := s.enrollmentRepo.ListEventsByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for participant %d: %w", participantID, err)
	}
	return events, nil
}

func (s *guardianService) GetChildResults(ctx context.Context, guardianID, participantID int) ([]models.Result, error) {
	if _, err := s.verifyOwnership(ctx, guardianID, participantID); err != nil {
		return nil, err
	}
	results, err := s.resultRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for participant %d: %w", participantID, err)
	}
	return results, nil
}
