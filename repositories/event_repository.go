package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/lib/pq"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventSportInvalid = errors.New("event sport reference invalid")
	ErrEventInUse        = errors.New("event cannot be deleted as it has recorded data")
)

// EventFilter narrows List results. Nil fields mean no filtering.
type EventFilter struct {
	Status  *models.EventStatus
	SportID *int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error
	Delete(ctx context.Context, id int) error
	CountByStatus(ctx context.Context, status models.EventStatus) (int, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, sport_id, scheduled_time, location, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Name, event.SportID, event.ScheduledTime, event.Location, event.Status,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrEventSportInvalid
		}
		return err
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `
		SELECT e.id, e.name, e.sport_id, e.scheduled_time, e.location, e.status, e.created_at,
		       s.id, s.name, s.category, s.max_participants_per_house,
		       s.points_first, s.points_second, s.points_third, s.created_at
		FROM events e
		JOIN sports s ON e.sport_id = s.id
		WHERE e.id = $1`

	var event models.Event
	var sport models.Sport
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Name, &event.SportID, &event.ScheduledTime,
		&event.Location, &event.Status, &event.CreatedAt,
		&sport.ID, &sport.Name, &sport.Category, &sport.MaxParticipantsPerHouse,
		&sport.PointsFirst, &sport.PointsSecond, &sport.PointsThird, &sport.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	event.Sport = &sport
	return &event, nil
}

func (r *postgresEventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT e.id, e.name, e.sport_id, e.scheduled_time, e.location, e.status, e.created_at,
		       s.id, s.name, s.category, s.max_participants_per_house,
		       s.points_first, s.points_second, s.points_third, s.created_at
		FROM events e
		JOIN sports s ON e.sport_id = s.id`)

	conditions := []string{}
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if filter.SportID != nil {
		args = append(args, *filter.SportID)
		conditions = append(conditions, fmt.Sprintf("e.sport_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY e.scheduled_time ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var event models.Event
		var sport models.Sport
		scanErr := rows.Scan(
			&event.ID, &event.Name, &event.SportID, &event.ScheduledTime,
			&event.Location, &event.Status, &event.CreatedAt,
			&sport.ID, &sport.Name, &sport.Category, &sport.MaxParticipantsPerHouse,
			&sport.PointsFirst, &sport.PointsSecond, &sport.PointsThird, &sport.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		event.Sport = &sport
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events SET name = $1, sport_id = $2, scheduled_time = $3, location = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		event.Name, event.SportID, event.ScheduledTime, event.Location, event.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrEventSportInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE events SET status = $1 WHERE id = $2`

	result, err := exec.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrEventInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) CountByStatus(ctx context.Context, status models.EventStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events with status %s: %w", status, err)
	}
	return count, nil
}
