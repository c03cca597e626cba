package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// BuildingRepository handles database operations for buildings
type BuildingRepository struct {
	db *pgxpool.Pool
}

// NewBuildingRepository creates a new building repository
func NewBuildingRepository(db *pgxpool.Pool) *BuildingRepository {
	return &BuildingRepository{
		db: db,
	}
}

// GetAll retrieves all buildings with their owning campus attached
func (r *BuildingRepository) GetAll(ctx context.Context) ([]*models.Building, error) {
	query := `
		SELECT b.id, b.campus_id, b.name, c.id, c.name
		FROM buildings b
		JOIN campuses c ON c.id = b.campus_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		var building models.Building
		var campus models.Campus
		if err := rows.Scan(
			&building.ID,
			&building.CampusID,
			&building.Name,
			&campus.ID,
			&campus.Name,
		); err != nil {
			return nil, err
		}
		building.Campus = &campus
		buildings = append(buildings, &building)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildings, nil
}

// CreateTx inserts a building within a transaction and assigns its id
func (r *BuildingRepository) CreateTx(ctx context.Context, tx pgx.Tx, building *models.Building) error {
	query := `
		INSERT INTO buildings (campus_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	building.CampusID = building.Campus.ID

	return tx.QueryRow(ctx, query, building.CampusID, building.Name).Scan(&building.ID)
}
