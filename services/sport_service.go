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
	ErrSportCreationFailed = errors.New("failed to create sport")
	ErrSportUpdateFailed   = errors.New("failed to update sport")
	ErrSportDeleteFailed   = errors.New("failed to delete sport")
)

type SportService interface {
	CreateSport(ctx context.Context, input SportInput) (*models.Sport, error)
	GetSportByID(ctx context.Context, id int) (*models.Sport, error)
	GetAllSports(ctx context.Context, category *string) ([]models.Sport, error)
	UpdateSport(ctx context.Context, id int, input SportInput) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int) error
}

type SportInput struct {
	Name                    string `json:"name"`
	Category                string `json:"category"`
	MaxParticipantsPerHouse int    `json:"max_participants_per_house"`
	PointsFirst             int    `json:"points_first"`
	PointsSecond            int    `json:"points_second"`
	PointsThird             int    `json:"points_third"`
}

type sportService struct {
	sportRepo repositories.SportRepository
}

func NewSportService(sportRepo repositories.SportRepository) SportService {
	return &sportService{
		sportRepo: sportRepo,
	}
}

func (s *sportService) validate(input SportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSportNameRequired
	}
	if input.PointsFirst < 0 || input.PointsSecond < 0 || input.PointsThird < 0 {
		return nil, ErrNegativePoints
	}
	maxPerHouse := input.MaxParticipantsPerHouse
	if maxPerHouse <= 0 {
		return nil, fmt.Errorf("%w: max participants per house must be positive", ErrValidationFailed)
	}

	return &models.Sport{
		Name:                    name,
		Category:                strings.TrimSpace(input.Category),
		MaxParticipantsPerHouse: maxPerHouse,
		PointsFirst:             input.PointsFirst,
		PointsSecond:            input.PointsSecond,
		PointsThird:             input.PointsThird,
	}, nil
}

func (s *sportService) CreateSport(ctx context.Context, input SportInput) (*models.Sport, error) {
	sport, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.sportRepo.Create(ctx, sport); err != nil {
		if errors.Is(err, repositories.ErrSportNameConflict) {
			return nil, ErrSportNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrSportCreationFailed, err)
	}
	return sport, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport by id %d: %w", id, err)
	}
	return sport, nil
}

func (s *sportService) GetAllSports(ctx context.Context, category *string) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sports: %w", err)
	}
	if sports == nil {
		return []models.Sport{}, nil
	}
	return sports, nil
}

func (s *sportService) UpdateSport(ctx context.Context, id int, input SportInput) (*models.Sport, error) {
	sport, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	sport.ID = id

	if err := s.sportRepo.Update(ctx, sport); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return nil, ErrSportNotFound
		case errors.Is(err, repositories.ErrSportNameConflict):
			return nil, ErrSportNameConflict
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrSportUpdateFailed, id, err)
		}
	}
	return sport, nil
}

func (s *sportService) DeleteSport(ctx context.Context, id int) error {
	if err := s.sportRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return ErrSportNotFound
		case errors.Is(err, repositories.ErrSportInUse):
			return ErrSportInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrSportDeleteFailed, id, err)
		}
	}
	return nil
}
