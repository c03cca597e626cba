package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// GetAll retrieves all courses with their owning subject attached, so
// natural keys can be computed without extra queries
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.subject_id, c.number, c.name, c.level, s.id, s.name
		FROM courses c
		JOIN subjects s ON s.id = c.subject_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		var subject models.Subject
		if err := rows.Scan(
			&course.ID,
			&course.SubjectID,
			&course.Number,
			&course.Name,
			&course.Level,
			&subject.ID,
			&subject.Name,
		); err != nil {
			return nil, err
		}
		course.Subject = &subject
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// CreateTx inserts a course within a transaction and assigns its id
func (r *CourseRepository) CreateTx(ctx context.Context, tx pgx.Tx, course *models.Course) error {
	query := `
		INSERT INTO courses (subject_id, number, name, level)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	course.SubjectID = course.Subject.ID

	return tx.QueryRow(ctx, query,
		course.SubjectID, course.Number, course.Name, course.Level).Scan(&course.ID)
}
