package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/lib/pq"
)

var (
	ErrResultNotFound = errors.New("result not found")
	ErrResultInvalid  = errors.New("result event, participant or house invalid")
)

// ResultRepository persists event outcomes. Write methods take an SQLExecutor
// because the scoring workflow replaces result rows inside one transaction
// together with the event status and house total updates.
type ResultRepository interface {
	ListByEvent(ctx context.Context, exec SQLExecutor, eventID int) ([]models.Result, error)
	DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error
	BatchCreate(ctx context.Context, exec SQLExecutor, results []*models.Result) error

	ListByParticipant(ctx context.Context, participantID int) ([]models.Result, error)
	ListRecent(ctx context.Context, limit int) ([]models.Result, error)
	ListTopByPoints(ctx context.Context, limit int) ([]models.Result, error)
	Count(ctx context.Context) (int, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) ListByEvent(ctx context.Context, exec SQLExecutor, eventID int) ([]models.Result, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, event_id, participant_id, house_id, position, points_awarded, created_at
		FROM results
		WHERE event_id = $1
		ORDER BY position ASC, id ASC`

	rows, err := executor.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.Result, 0)
	for rows.Next() {
		var result models.Result
		scanErr := rows.Scan(
			&result.ID, &result.EventID, &result.ParticipantID, &result.HouseID,
			&result.Position, &result.PointsAwarded, &result.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, result)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *postgresResultRepository) DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM results WHERE event_id = $1`, eventID)
	return err
}

func (r *postgresResultRepository) BatchCreate(ctx context.Context, exec SQLExecutor, results []*models.Result) error {
	executor := r.getExecutor(exec)
	if len(results) == 0 {
		return nil
	}

	query := `
		INSERT INTO results (event_id, participant_id, house_id, position, points_awarded)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	for _, result := range results {
		err := executor.QueryRowContext(ctx, query,
			result.EventID, result.ParticipantID, result.HouseID,
			result.Position, result.PointsAwarded,
		).Scan(&result.ID, &result.CreatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return ErrResultInvalid
			}
			return fmt.Errorf("BatchCreate failed for participant %d: %w", result.ParticipantID, err)
		}
	}
	return nil
}

const resultJoinColumns = `
	r.id, r.event_id, r.participant_id, r.house_id, r.position, r.points_awarded, r.created_at,
	p.id, p.full_name, p.age, p.house_id, p.guardian_id, p.guardian_email, p.is_active, p.created_at,
	h.id, h.name, h.color, h.total_points, h.captain_id, h.logo_key, h.created_at,
	e.id, e.name, e.sport_id, e.scheduled_time, e.location, e.status, e.created_at,
	s.id, s.name, s.category, s.max_participants_per_house, s.points_first, s.points_second, s.points_third, s.created_at`

const resultJoinTables = `
	FROM results r
	JOIN participants p ON r.participant_id = p.id
	JOIN houses h ON r.house_id = h.id
	JOIN events e ON r.event_id = e.id
	JOIN sports s ON e.sport_id = s.id`

func (r *postgresResultRepository) ListByParticipant(ctx context.Context, participantID int) ([]models.Result, error) {
	query := `SELECT` + resultJoinColumns + resultJoinTables + `
		WHERE r.participant_id = $1
		ORDER BY r.created_at DESC`
	return r.queryJoined(ctx, query, participantID)
}

func (r *postgresResultRepository) ListRecent(ctx context.Context, limit int) ([]models.Result, error) {
	query := `SELECT` + resultJoinColumns + resultJoinTables + `
		ORDER BY r.created_at DESC
		LIMIT $1`
	return r.queryJoined(ctx, query, limit)
}

func (r *postgresResultRepository) ListTopByPoints(ctx context.Context, limit int) ([]models.Result, error) {
	query := `SELECT` + resultJoinColumns + resultJoinTables + `
		WHERE r.points_awarded > 0
		ORDER BY r.points_awarded DESC, r.created_at DESC
		LIMIT $1`
	return r.queryJoined(ctx, query, limit)
}

func (r *postgresResultRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}

func (r *postgresResultRepository) queryJoined(ctx context.Context, query string, args ...interface{}) ([]models.Result, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.Result, 0)
	for rows.Next() {
		var result models.Result
		var participant models.Participant
		var house models.House
		var event models.Event
		var sport models.Sport
		scanErr := rows.Scan(
			&result.ID, &result.EventID, &result.ParticipantID, &result.HouseID,
			&result.Position, &result.PointsAwarded, &result.CreatedAt,
			&participant.ID, &participant.FullName, &participant.Age, &participant.HouseID,
			&participant.GuardianID, &participant.GuardianEmail, &participant.IsActive, &participant.CreatedAt,
			&house.ID, &house.Name, &house.Color, &house.TotalPoints,
			&house.CaptainID, &house.LogoKey, &house.CreatedAt,
			&event.ID, &event.Name, &event.SportID, &event.ScheduledTime,
			&event.Location, &event.Status, &event.CreatedAt,
			&sport.ID, &sport.Name, &sport.Category, &sport.MaxParticipantsPerHouse,
			&sport.PointsFirst, &sport.PointsSecond, &sport.PointsThird, &sport.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		event.Sport = &sport
		result.Participant = &participant
		result.House = &house
		result.Event = &event
		results = append(results, result)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
