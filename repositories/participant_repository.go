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
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrParticipantHouseInvalid = errors.New("participant house reference invalid")
	ErrParticipantInUse        = errors.New("participant cannot be deleted as it has recorded data")
)

// ParticipantFilter narrows List results. Nil/zero fields mean no filtering.
type ParticipantFilter struct {
	HouseID    *int
	GuardianID *int
	OnlyActive bool
	NameQuery  string
}

type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	List(ctx context.Context, filter ParticipantFilter) ([]models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	Delete(ctx context.Context, id int) error
	SetActive(ctx context.Context, id int, active bool) error
	CountActive(ctx context.Context) (int, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO participants (full_name, age, house_id, guardian_id, guardian_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		participant.FullName, participant.Age, participant.HouseID,
		participant.GuardianID, participant.GuardianEmail, participant.IsActive,
	).Scan(&participant.ID, &participant.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrParticipantHouseInvalid
		}
		return err
	}
	return nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	query := `
		SELECT p.id, p.full_name, p.age, p.house_id, p.guardian_id, p.guardian_email, p.is_active, p.created_at,
		       h.id, h.name, h.color, h.total_points, h.captain_id, h.logo_key, h.created_at
		FROM participants p
		JOIN houses h ON p.house_id = h.id
		WHERE p.id = $1`

	var participant models.Participant
	var house models.House
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&participant.ID, &participant.FullName, &participant.Age, &participant.HouseID,
		&participant.GuardianID, &participant.GuardianEmail, &participant.IsActive, &participant.CreatedAt,
		&house.ID, &house.Name, &house.Color, &house.TotalPoints,
		&house.CaptainID, &house.LogoKey, &house.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	participant.House = &house
	return &participant, nil
}

func (r *postgresParticipantRepository) List(ctx context.Context, filter ParticipantFilter) ([]models.Participant, error) {
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT p.id, p.full_name, p.age, p.house_id, p.guardian_id, p.guardian_email, p.is_active, p.created_at,
		       h.id, h.name, h.color, h.total_points, h.captain_id, h.logo_key, h.created_at
		FROM participants p
		JOIN houses h ON p.house_id = h.id`)

	conditions := []string{}
	args := []interface{}{}
	if filter.HouseID != nil {
		args = append(args, *filter.HouseID)
		conditions = append(conditions, fmt.Sprintf("p.house_id = $%d", len(args)))
	}
	if filter.GuardianID != nil {
		args = append(args, *filter.GuardianID)
		conditions = append(conditions, fmt.Sprintf("p.guardian_id = $%d", len(args)))
	}
	if filter.OnlyActive {
		conditions = append(conditions, "p.is_active = TRUE")
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+filter.NameQuery+"%")
		conditions = append(conditions, fmt.Sprintf("p.full_name ILIKE $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY p.full_name ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var participant models.Participant
		var house models.House
		scanErr := rows.Scan(
			&participant.ID, &participant.FullName, &participant.Age, &participant.HouseID,
			&participant.GuardianID, &participant.GuardianEmail, &participant.IsActive, &participant.CreatedAt,
			&house.ID, &house.Name, &house.Color, &house.TotalPoints,
			&house.CaptainID, &house.LogoKey, &house.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		participant.House = &house
		participants = append(participants, participant)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *postgresParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	query := `
		UPDATE participants SET
			full_name = $1, age = $2, house_id = $3, guardian_id = $4, guardian_email = $5, is_active = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		participant.FullName, participant.Age, participant.HouseID,
		participant.GuardianID, participant.GuardianEmail, participant.IsActive,
		participant.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrParticipantHouseInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM participants WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// results keep history: participants with recorded results cannot
		// be hard-deleted, only deactivated
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrParticipantInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE participants SET is_active = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active participants: %w", err)
	}
	return count, nil
}
