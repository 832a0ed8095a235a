package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	recentResultsLimit = 50
	recordResultsLimit = 25
)

// Scoreboard is the public standings view: houses ordered by total points
// plus a little context about progress through the day.
type Scoreboard struct {
	Houses          []models.House  `json:"houses"`
	EventsCompleted int             `json:"events_completed"`
	RecentResults   []models.Result `json:"recent_results"`
}

type StandingsService interface {
	GetScoreboard(ctx context.Context) (*Scoreboard, error)
	GetSchedule(ctx context.Context, status *models.EventStatus) ([]models.Event, error)
	GetRecentResults(ctx context.Context) ([]models.Result, error)
	GetRecords(ctx context.Context) ([]models.Result, error)
	SearchParticipants(ctx context.Context, query string) ([]models.Participant, error)
}

type standingsService struct {
	houseRepo       repositories.HouseRepository
	eventRepo       repositories.EventRepository
	resultRepo      repositories.ResultRepository
	participantRepo repositories.ParticipantRepository
}

func NewStandingsService(
	houseRepo repositories.HouseRepository,
	eventRepo repositories.EventRepository,
	resultRepo repositories.ResultRepository,
	participantRepo repositories.ParticipantRepository,
) StandingsService {
	return &standingsService{
		houseRepo:       houseRepo,
		eventRepo:       eventRepo,
		resultRepo:      resultRepo,
		participantRepo: participantRepo,
	}
}

func (s *standingsService) GetScoreboard(ctx context.Context) (*Scoreboard, error) {
	scoreboard := &Scoreboard{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		houses, err := s.houseRepo.GetAll(gCtx, true)
		if err != nil {
			return fmt.Errorf("failed to load house standings: %w", err)
		}
		scoreboard.Houses = houses
		return nil
	})
	g.Go(func() error {
		completed, err := s.eventRepo.CountByStatus(gCtx, models.EventStatusCompleted)
		if err != nil {
			return err
		}
		scoreboard.EventsCompleted = completed
		return nil
	})
	g.Go(func() error {
		recent, err := s.resultRepo.ListRecent(gCtx, recentResultsLimit)
		if err != nil {
			return fmt.Errorf("failed to load recent results: %w", err)
		}
		scoreboard.RecentResults = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scoreboard, nil
}

func (s *standingsService) GetSchedule(ctx context.Context, status *models.EventStatus) ([]models.Event, error) {
	events, err := s.eventRepo.List(ctx, repositories.EventFilter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if events == nil {
		return []models.Event{}, nil
	}
	return events, nil
}

func (s *standingsService) GetRecentResults(ctx context.Context) ([]models.Result, error) {
	results, err := s.resultRepo.ListRecent(ctx, recentResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent results: %w", err)
	}
	return results, nil
}

func (s *standingsService) GetRecords(ctx context.Context) ([]models.Result, error) {
	results, err := s.resultRepo.ListTopByPoints(ctx, recordResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return results, nil
}

func (s *standingsService) SearchParticipants(ctx context.Context, query string) ([]models.Participant, error) {
	if query == "" {
		return []models.Participant{}, nil
	}
	participants, err := s.participantRepo.List(ctx, repositories.ParticipantFilter{
		OnlyActive: true,
		NameQuery:  query,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search participants: %w", err)
	}
	return participants, nil
}
