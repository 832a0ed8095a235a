package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
)

var (
	ErrEventCreationFailed = errors.New("failed to create event")
	ErrEventUpdateFailed   = errors.New("failed to update event")
	ErrEventDeleteFailed   = errors.New("failed to delete event")
)

type EventService interface {
	CreateEvent(ctx context.Context, input EventInput) (*models.Event, error)
	GetEventByID(ctx context.Context, id int) (*models.Event, error)
	ListEvents(ctx context.Context, filter repositories.EventFilter) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id int, input EventInput) (*models.Event, error)
	UpdateEventStatus(ctx context.Context, id int, status models.EventStatus) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int) error
}

type EventInput struct {
	Name          string    `json:"name"`
	SportID       int       `json:"sport_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Location      *string   `json:"location"`
}

type eventService struct {
	eventRepo repositories.EventRepository
	sportRepo repositories.SportRepository
}

func NewEventService(
	eventRepo repositories.EventRepository,
	sportRepo repositories.SportRepository,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		sportRepo: sportRepo,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, input EventInput) (*models.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEventNameRequired
	}
	if input.ScheduledTime.IsZero() {
		return nil, fmt.Errorf("%w: scheduled time is required", ErrValidationFailed)
	}

	sport, err := s.sportRepo.GetByID(ctx, input.SportID)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrEventCreationFailed, err)
	}

	event := &models.Event{
		Name:          name,
		SportID:       sport.ID,
		ScheduledTime: input.ScheduledTime,
		Location:      input.Location,
		Status:        models.EventStatusScheduled,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventSportInvalid) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrEventCreationFailed, err)
	}

	event.Sport = sport
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by id %d: %w", id, err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter repositories.EventFilter) ([]models.Event, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		return []models.Event{}, nil
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int, input EventInput) (*models.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEventNameRequired
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrEventUpdateFailed, id, err)
	}

	event.Name = name
	event.SportID = input.SportID
	if !input.ScheduledTime.IsZero() {
		event.ScheduledTime = input.ScheduledTime
	}
	event.Location = input.Location

	if err := s.eventRepo.Update(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, repositories.ErrEventSportInvalid):
			return nil, ErrSportNotFound
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrEventUpdateFailed, id, err)
		}
	}

	if event.Sport == nil || event.Sport.ID != event.SportID {
		if sport, sportErr := s.sportRepo.GetByID(ctx, event.SportID); sportErr == nil {
			event.Sport = sport
		}
	}
	return event, nil
}

// UpdateEventStatus enforces the monotonic lifecycle
// scheduled -> in_progress -> completed, with cancellation allowed from any
// non-terminal state. Recording results is the only other path to completed.
func (s *eventService) UpdateEventStatus(ctx context.Context, id int, status models.EventStatus) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrEventUpdateFailed, id, err)
	}

	if !statusTransitionAllowed(event.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, event.Status, status)
	}

	if err := s.eventRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrEventUpdateFailed, id, err)
	}

	event.Status = status
	return event, nil
}

func statusTransitionAllowed(from, to models.EventStatus) bool {
	if from == to {
		return false
	}
	switch from {
	case models.EventStatusScheduled:
		return to == models.EventStatusInProgress || to == models.EventStatusCompleted || to == models.EventStatusCancelled
	case models.EventStatusInProgress:
		return to == models.EventStatusCompleted || to == models.EventStatusCancelled
	default:
		// completed and cancelled are terminal for explicit status changes
		return false
	}
}

func (s *eventService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventNotFound):
			return ErrEventNotFound
		case errors.Is(err, repositories.ErrEventInUse):
			return ErrEventInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrEventDeleteFailed, id, err)
		}
	}
	return nil
}
