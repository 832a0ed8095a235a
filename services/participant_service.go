package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
)

var (
	ErrParticipantCreationFailed = errors.New("failed to create participant")
	ErrParticipantUpdateFailed   = errors.New("failed to update participant")
	ErrParticipantDeleteFailed   = errors.New("failed to delete participant")
)

type ParticipantService interface {
	CreateParticipant(ctx context.Context, input ParticipantInput) (*models.Participant, error)
	GetParticipantByID(ctx context.Context, id int) (*models.Participant, error)
	ListParticipants(ctx context.Context, filter repositories.ParticipantFilter) ([]models.Participant, error)
	UpdateParticipant(ctx context.Context, id int, input ParticipantInput) (*models.Participant, error)
	DeactivateParticipant(ctx context.Context, id int) error
	DeleteParticipant(ctx context.Context, id int) error
}

type ParticipantInput struct {
	FullName      string  `json:"full_name"`
	Age           int     `json:"age"`
	HouseID       int     `json:"house_id"`
	GuardianID    *int    `json:"guardian_id"`
	GuardianEmail *string `json:"guardian_email"`
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	houseRepo       repositories.HouseRepository
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	houseRepo repositories.HouseRepository,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		houseRepo:       houseRepo,
	}
}

func (s *participantService) validate(ctx context.Context, input ParticipantInput) (*models.Participant, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidationFailed)
	}
	if input.Age <= 0 {
		return nil, ErrInvalidAge
	}

	if _, err := s.houseRepo.GetByID(ctx, input.HouseID); err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("failed to verify house %d: %w", input.HouseID, err)
	}

	guardianEmail := input.GuardianEmail
	if guardianEmail != nil {
		trimmed := strings.TrimSpace(*guardianEmail)
		if trimmed == "" {
			guardianEmail = nil
		} else {
			guardianEmail = &trimmed
		}
	}

	return &models.Participant{
		FullName:      fullName,
		Age:           input.Age,
		HouseID:       input.HouseID,
		GuardianID:    input.GuardianID,
		GuardianEmail: guardianEmail,
		IsActive:      true,
	}, nil
}

func (s *participantService) CreateParticipant(ctx context.Context, input ParticipantInput) (*models.Participant, error) {
	participant, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantHouseInvalid) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrParticipantCreationFailed, err)
	}
	return participant, nil
}

func (s *participantService) GetParticipantByID(ctx context.Context, id int) (*models.Participant, error) {
	participant, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant by id %d: %w", id, err)
	}
	return participant, nil
}

func (s *participantService) ListParticipants(ctx context.Context, filter repositories.ParticipantFilter) ([]models.Participant, error) {
	participants, err := s.participantRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	if participants == nil {
		return []models.Participant{}, nil
	}
	return participants, nil
}

func (s *participantService) UpdateParticipant(ctx context.Context, id int, input ParticipantInput) (*models.Participant, error) {
	current, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrParticipantUpdateFailed, id, err)
	}

	updated, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	updated.ID = id
	updated.IsActive = current.IsActive
	updated.CreatedAt = current.CreatedAt

	if err := s.participantRepo.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantNotFound):
			return nil, ErrParticipantNotFound
		case errors.Is(err, repositories.ErrParticipantHouseInvalid):
			return nil, ErrHouseNotFound
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrParticipantUpdateFailed, id, err)
		}
	}
	return updated, nil
}

func (s *participantService) DeactivateParticipant(ctx context.Context, id int) error {
	if err := s.participantRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrParticipantUpdateFailed, id, err)
	}
	return nil
}

func (s *participantService) DeleteParticipant(ctx context.Context, id int) error {
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantNotFound):
			return ErrParticipantNotFound
		case errors.Is(err, repositories.ErrParticipantInUse):
			return ErrParticipantInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrParticipantDeleteFailed, id, err)
		}
	}
	return nil
}
