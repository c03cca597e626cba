package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// TermRepository handles database operations for terms
type TermRepository struct {
	db *pgxpool.Pool
}

// NewTermRepository creates a new term repository
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{
		db: db,
	}
}

// GetAll retrieves all terms
func (r *TermRepository) GetAll(ctx context.Context) ([]*models.Term, error) {
	query := `
		SELECT id, display_name, year, semester
		FROM terms
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*models.Term
	for rows.Next() {
		var term models.Term
		if err := rows.Scan(
			&term.ID,
			&term.DisplayName,
			&term.Year,
			&term.Semester,
		); err != nil {
			return nil, err
		}
		terms = append(terms, &term)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// Create inserts a term outside the batch cycle and assigns its id. Terms
// are persisted as soon as they are first seen so newly created blocks can
// reference them.
func (r *TermRepository) Create(ctx context.Context, term *models.Term) error {
	query := `
		INSERT INTO terms (display_name, year, semester)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		term.DisplayName, term.Year, term.Semester).Scan(&term.ID)
	if err != nil {
		return fmt.Errorf("error creating term: %w", err)
	}

	return nil
}
