package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// InstructorRepository handles database operations for instructors
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
	}
}

// GetAll retrieves all instructors
func (r *InstructorRepository) GetAll(ctx context.Context) ([]*models.Instructor, error) {
	query := `
		SELECT id, external_id, name, email
		FROM instructors
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []*models.Instructor
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(
			&instructor.ID,
			&instructor.ExternalID,
			&instructor.Name,
			&instructor.Email,
		); err != nil {
			return nil, err
		}
		instructors = append(instructors, &instructor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instructors, nil
}

// CreateTx inserts an instructor within a transaction and assigns its id
func (r *InstructorRepository) CreateTx(ctx context.Context, tx pgx.Tx, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (external_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return tx.QueryRow(ctx, query,
		instructor.ExternalID, instructor.Name, instructor.Email).Scan(&instructor.ID)
}
