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
	ErrHouseNotFound       = errors.New("house not found")
	ErrHouseNameConflict   = errors.New("house name conflict")
	ErrHouseInUse          = errors.New("house cannot be deleted as it is in use")
	ErrHouseCaptainInvalid = errors.New("house captain reference invalid")
)

type HouseRepository interface {
	Create(ctx context.Context, house *models.House) error
	GetByID(ctx context.Context, id int) (*models.House, error)
	GetAll(ctx context.Context, orderByPoints bool) ([]models.House, error)
	Update(ctx context.Context, house *models.House) error
	Delete(ctx context.Context, id int) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Count(ctx context.Context) (int, error)

	// AddPoints applies a server-side atomic add to total_points. The delta
	// may be negative when a re-score lowers a house's award. Takes an
	// SQLExecutor so the scoring workflow can run it inside its transaction.
	AddPoints(ctx context.Context, exec SQLExecutor, houseID int, delta int) error
}

type postgresHouseRepository struct {
	db *sql.DB
}

func NewPostgresHouseRepository(db *sql.DB) HouseRepository {
	return &postgresHouseRepository{db: db}
}

func (r *postgresHouseRepository) Create(ctx context.Context, house *models.House) error {
	query := `
		INSERT INTO houses (name, color, captain_id)
		VALUES ($1, $2, $3)
		RETURNING id, total_points, created_at`

	err := r.db.QueryRowContext(ctx, query, house.Name, house.Color, house.CaptainID).
		Scan(&house.ID, &house.TotalPoints, &house.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrHouseNameConflict
			case "23503":
				return ErrHouseCaptainInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresHouseRepository) GetByID(ctx context.Context, id int) (*models.House, error) {
	query := `
		SELECT id, name, color, total_points, captain_id, logo_key, created_at
		FROM houses WHERE id = $1`

	house, err := scanHouse(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return house, nil
}

func (r *postgresHouseRepository) GetAll(ctx context.Context, orderByPoints bool) ([]models.House, error) {
	query := `
		SELECT id, name, color, total_points, captain_id, logo_key, created_at
		FROM houses`
	if orderByPoints {
		// name as tiebreaker keeps the scoreboard order stable
		query += ` ORDER BY total_points DESC, name ASC`
	} else {
		query += ` ORDER BY name ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	houses := make([]models.House, 0)
	for rows.Next() {
		house, scanErr := scanHouse(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		houses = append(houses, *house)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return houses, nil
}

func (r *postgresHouseRepository) Update(ctx context.Context, house *models.House) error {
	query := `UPDATE houses SET name = $1, color = $2, captain_id = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, house.Name, house.Color, house.CaptainID, house.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrHouseNameConflict
			case "23503":
				return ErrHouseCaptainInvalid
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrHouseNotFound)
}

func (r *postgresHouseRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM houses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// participants and results reference houses with ON DELETE RESTRICT
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrHouseInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrHouseNotFound)
}

func (r *postgresHouseRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE houses SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrHouseNotFound)
}

func (r *postgresHouseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM houses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count houses: %w", err)
	}
	return count, nil
}

func (r *postgresHouseRepository) AddPoints(ctx context.Context, exec SQLExecutor, houseID int, delta int) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE houses SET total_points = total_points + $1 WHERE id = $2`

	result, err := exec.ExecContext(ctx, query, delta, houseID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrHouseNotFound)
}

func scanHouse(rowScanner interface{ Scan(...interface{}) error }) (*models.House, error) {
	var house models.House
	err := rowScanner.Scan(
		&house.ID, &house.Name, &house.Color, &house.TotalPoints,
		&house.CaptainID, &house.LogoKey, &house.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return &house, nil
}
