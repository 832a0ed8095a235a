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
	ErrEnrollmentInvalid  = errors.New("enrollment event or participant invalid")
	ErrEnrollmentConflict = errors.New("participant is already enrolled in this event")
)

type EnrollmentRepository interface {
	// ListByEvent returns the roster for one event, each entry carrying the
	// participant with their current house.
	ListByEvent(ctx context.Context, eventID int) ([]models.Enrollment, error)
	ListEventsByParticipant(ctx context.Context, participantID int) ([]models.Event, error)

	// ReplaceForEvent swaps the full roster for an event in one transaction.
	ReplaceForEvent(ctx context.Context, eventID int, participantIDs []int) error
}

type postgresEnrollmentRepository struct {
	db *sql.DB
}

func NewPostgresEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &postgresEnrollmentRepository{db: db}
}

func (r *postgresEnrollmentRepository) ListByEvent(ctx context.Context, eventID int) ([]models.Enrollment, error) {
	query := `
		SELECT ep.event_id, ep.participant_id, ep.created_at,
		       p.id, p.full_name, p.age, p.house_id, p.guardian_id, p.guardian_email, p.is_active, p.created_at,
		       h.id, h.name, h.color, h.total_points, h.captain_id, h.logo_key, h.created_at
		FROM event_participants ep
		JOIN participants p ON ep.participant_id = p.id
		JOIN houses h ON p.house_id = h.id
		WHERE ep.event_id = $1
		ORDER BY h.name ASC, p.full_name ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		var enrollment models.Enrollment
		var participant models.Participant
		var house models.House
		scanErr := rows.Scan(
			&enrollment.EventID, &enrollment.ParticipantID, &enrollment.CreatedAt,
			&participant.ID, &participant.FullName, &participant.Age, &participant.HouseID,
			&participant.GuardianID, &participant.GuardianEmail, &participant.IsActive, &participant.CreatedAt,
			&house.ID, &house.Name, &house.Color, &house.TotalPoints,
			&house.CaptainID, &house.LogoKey, &house.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		participant.House = &house
		enrollment.Participant = &participant
		enrollments = append(enrollments, enrollment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *postgresEnrollmentRepository) ListEventsByParticipant(ctx context.Context, participantID int) ([]models.Event, error) {
	query := `
		SELECT e.id, e.name, e.sport_id, e.scheduled_time, e.location, e.status, e.created_at,
		       s.id, s.name, s.category, s.max_participants_per_house,
		       s.points_first, s.points_second, s.points_third, s.created_at
		FROM event_participants ep
		JOIN events e ON ep.event_id = e.id
		JOIN sports s ON e.sport_id = s.id
		WHERE ep.participant_id = $1
		ORDER BY e.scheduled_time ASC`

	rows, err := r.db.QueryContext(ctx, query, participantID)
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

func (r *postgresEnrollmentRepository) ReplaceForEvent(ctx context.Context, eventID int, participantIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceForEvent failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM event_participants WHERE event_id = $1`, eventID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("ReplaceForEvent failed to clear roster: %w", err)
	}

	if len(participantIDs) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, `
			INSERT INTO event_participants (event_id, participant_id) VALUES ($1, $2)`)
		if prepErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("ReplaceForEvent failed to prepare statement: %w", prepErr)
		}
		defer stmt.Close()

		for _, participantID := range participantIDs {
			if _, err = stmt.ExecContext(ctx, eventID, participantID); err != nil {
				_ = tx.Rollback()
				if pqErr, ok := err.(*pq.Error); ok {
					switch pqErr.Code {
					case "23503":
						return ErrEnrollmentInvalid
					case "23505":
						return ErrEnrollmentConflict
					}
				}
				return fmt.Errorf("ReplaceForEvent failed for participant %d: %w", participantID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceForEvent failed to commit: %w", err)
	}
	return nil
}
