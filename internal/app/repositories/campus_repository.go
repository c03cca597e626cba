package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// CampusRepository handles database operations for campuses
type CampusRepository struct {
	db *pgxpool.Pool
}

// NewCampusRepository creates a new campus repository
func NewCampusRepository(db *pgxpool.Pool) *CampusRepository {
	return &CampusRepository{
		db: db,
	}
}

// GetAll retrieves all campuses
func (r *CampusRepository) GetAll(ctx context.Context) ([]*models.Campus, error) {
	query := `
		SELECT id, name
		FROM campuses
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campuses []*models.Campus
	for rows.Next() {
		var campus models.Campus
		if err := rows.Scan(&campus.ID, &campus.Name); err != nil {
			return nil, err
		}
		campuses = append(campuses, &campus)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campuses, nil
}

// CreateTx inserts a campus within a transaction and assigns its id
func (r *CampusRepository) CreateTx(ctx context.Context, tx pgx.Tx, campus *models.Campus) error {
	query := `
		INSERT INTO campuses (name)
		VALUES ($1)
		RETURNING id
	`

	return tx.QueryRow(ctx, query, campus.Name).Scan(&campus.ID)
}
