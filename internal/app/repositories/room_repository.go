package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// RoomRepository handles database operations for rooms
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		db: db,
	}
}

// GetAll retrieves all rooms with their owning building attached
func (r *RoomRepository) GetAll(ctx context.Context) ([]*models.Room, error) {
	query := `
		SELECT r.id, r.building_id, r.number, b.id, b.name
		FROM rooms r
		JOIN buildings b ON b.id = r.building_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		var building models.Building
		if err := rows.Scan(
			&room.ID,
			&room.BuildingID,
			&room.Number,
			&building.ID,
			&building.Name,
		); err != nil {
			return nil, err
		}
		room.Building = &building
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

// CreateTx inserts a room within a transaction and assigns its id
func (r *RoomRepository) CreateTx(ctx context.Context, tx pgx.Tx, room *models.Room) error {
	query := `
		INSERT INTO rooms (building_id, number)
		VALUES ($1, $2)
		RETURNING id
	`

	room.BuildingID = room.Building.ID

	return tx.QueryRow(ctx, query, room.BuildingID, room.Number).Scan(&room.ID)
}
