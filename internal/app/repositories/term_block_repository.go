package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// TermBlockRepository handles database operations for term blocks
type TermBlockRepository struct {
	db *pgxpool.Pool
}

// NewTermBlockRepository creates a new term block repository
func NewTermBlockRepository(db *pgxpool.Pool) *TermBlockRepository {
	return &TermBlockRepository{
		db: db,
	}
}

// GetAll retrieves all term blocks with their owning term attached
func (r *TermBlockRepository) GetAll(ctx context.Context) ([]*models.TermBlock, error) {
	query := `
		SELECT b.id, b.term_id, b.name, t.id, t.display_name, t.year, t.semester
		FROM term_blocks b
		JOIN terms t ON t.id = b.term_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*models.TermBlock
	for rows.Next() {
		var block models.TermBlock
		var term models.Term
		if err := rows.Scan(
			&block.ID,
			&block.TermID,
			&block.Name,
			&term.ID,
			&term.DisplayName,
			&term.Year,
			&term.Semester,
		); err != nil {
			return nil, err
		}
		block.Term = &term
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blocks, nil
}

// Create inserts a term block outside the batch cycle and assigns its id.
// Block ids participate in section natural keys, so a block is persisted the
// moment it is created.
func (r *TermBlockRepository) Create(ctx context.Context, block *models.TermBlock) error {
	query := `
		INSERT INTO term_blocks (term_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	block.TermID = block.Term.ID

	err := r.db.QueryRow(ctx, query, block.TermID, block.Name).Scan(&block.ID)
	if err != nil {
		return fmt.Errorf("error creating term block: %w", err)
	}

	return nil
}
