package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
)

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
	}
}

// GetAll retrieves all sections
func (r *SectionRepository) GetAll(ctx context.Context) ([]*models.Section, error) {
	query := `
		SELECT id, crn, course_id, block_id, subject_id, campus_id, room_id,
		       instructor_id, days, start_date, end_date, start_time, end_time,
		       status, number, num_enrolled, max_enrollment, meeting_type
		FROM sections
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(
			&section.ID,
			&section.CRN,
			&section.CourseID,
			&section.BlockID,
			&section.SubjectID,
			&section.CampusID,
			&section.RoomID,
			&section.InstructorID,
			&section.Days,
			&section.StartDate,
			&section.EndDate,
			&section.StartTime,
			&section.EndTime,
			&section.Status,
			&section.Number,
			&section.NumEnrolled,
			&section.MaxEnrollment,
			&section.MeetingType,
		); err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}

// CreateTx inserts a section within a transaction and assigns its id
func (r *SectionRepository) CreateTx(ctx context.Context, tx pgx.Tx, section *models.Section) error {
	query := `
		INSERT INTO sections (crn, course_id, block_id, subject_id, campus_id,
		                      room_id, instructor_id, days, start_date, end_date,
		                      start_time, end_time, status, number, num_enrolled,
		                      max_enrollment, meeting_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	return tx.QueryRow(ctx, query,
		section.CRN, section.CourseID, section.BlockID, section.SubjectID,
		section.CampusID, section.RoomID, section.InstructorID, section.Days,
		section.StartDate, section.EndDate, section.StartTime, section.EndTime,
		section.Status, section.Number, section.NumEnrolled,
		section.MaxEnrollment, section.MeetingType).Scan(&section.ID)
}

// UpdateTx updates an existing section in place within a transaction
func (r *SectionRepository) UpdateTx(ctx context.Context, tx pgx.Tx, section *models.Section) error {
	query := `
		UPDATE sections
		SET course_id = $1, subject_id = $2, campus_id = $3, room_id = $4,
		    instructor_id = $5, days = $6, start_date = $7, end_date = $8,
		    start_time = $9, end_time = $10, status = $11, number = $12,
		    num_enrolled = $13, max_enrollment = $14, meeting_type = $15
		WHERE id = $16
	`

	_, err := tx.Exec(ctx, query,
		section.CourseID, section.SubjectID, section.CampusID, section.RoomID,
		section.InstructorID, section.Days, section.StartDate, section.EndDate,
		section.StartTime, section.EndTime, section.Status, section.Number,
		section.NumEnrolled, section.MaxEnrollment, section.MeetingType,
		section.ID)

	return err
}
