package services

import (
	"context"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	houseRepo       repositories.HouseRepository
	participantRepo repositories.ParticipantRepository
	eventRepo       repositories.EventRepository
	resultRepo      repositories.ResultRepository
}

func NewDashboardService(
	houseRepo repositories.HouseRepository,
	participantRepo repositories.ParticipantRepository,
	eventRepo repositories.EventRepository,
	resultRepo repositories.ResultRepository,
) DashboardService {
	return &dashboardService{
		houseRepo:       houseRepo,
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		resultRepo:      resultRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.houseRepo.Count(gCtx)
		stats.HousesTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.participantRepo.CountActive(gCtx)
		stats.ActiveParticipants = n
		return err
	})
	g.Go(func() error {
		n, err := s.eventRepo.CountByStatus(gCtx, models.EventStatusScheduled)
		stats.EventsScheduled = n
		return err
	})
	g.Go(func() error {
		n, err := s.eventRepo.CountByStatus(gCtx, models.EventStatusInProgress)
		stats.EventsInProgress = n
		return err
	})
	g.Go(func() error {
		n, err := s.eventRepo.CountByStatus(gCtx, models.EventStatusCompleted)
		stats.EventsCompleted = n
		return err
	})
	g.Go(func() error {
		n, err := s.eventRepo.CountByStatus(gCtx, models.EventStatusCancelled)
		stats.EventsCancelled = n
		return err
	})
	g.Go(func() error {
		n, err := s.resultRepo.Count(gCtx)
		stats.ResultsRecorded = n
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
