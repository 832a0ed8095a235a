package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/lib/pq"
)

var (
	ErrSportNotFound     = errors.New("sport not found")
	ErrSportNameConflict = errors.New("sport name conflict")
	ErrSportInUse        = errors.New("sport cannot be deleted as it is in use")
)

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	GetAll(ctx context.Context, category *string) ([]models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, id int) error
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

const sportColumns = `id, name, category, max_participants_per_house, points_first, points_second, points_third, created_at`

func (r *postgresSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	query := `
		INSERT INTO sports (name, category, max_participants_per_house, points_first, points_second, points_third)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		sport.Name, sport.Category, sport.MaxParticipantsPerHouse,
		sport.PointsFirst, sport.PointsSecond, sport.PointsThird,
	).Scan(&sport.ID, &sport.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrSportNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	query := `SELECT ` + sportColumns + ` FROM sports WHERE id = $1`
	return scanSport(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSportRepository) GetAll(ctx context.Context, category *string) ([]models.Sport, error) {
	query := `SELECT ` + sportColumns + ` FROM sports`
	args := []interface{}{}
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, *category)
	}
	query += ` ORDER BY category ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		sport, scanErr := scanSport(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, *sport)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *postgresSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	query := `
		UPDATE sports SET
			name = $1, category = $2, max_participants_per_house = $3,
			points_first = $4, points_second = $5, points_third = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		sport.Name, sport.Category, sport.MaxParticipantsPerHouse,
		sport.PointsFirst, sport.PointsSecond, sport.PointsThird, sport.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrSportNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *postgresSportRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM sports WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// events reference sports with ON DELETE RESTRICT
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrSportInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func scanSport(rowScanner interface{ Scan(...interface{}) error }) (*models.Sport, error) {
	var sport models.Sport
	err := rowScanner.Scan(
		&sport.ID, &sport.Name, &sport.Category, &sport.MaxParticipantsPerHouse,
		&sport.PointsFirst, &sport.PointsSecond, &sport.PointsThird, &sport.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}
