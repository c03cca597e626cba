package source

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/ashby/coursebook/internal/pkg/apperrors"
)

// odsQuery joins the section headers with their meeting times. Only active
// sections with a sub-period and a numeric section number are imported, and
// rows without meeting times are useless to the calendar.
const odsQuery = `
	SELECT
	  cs.academic_period, cs.sub_academic_period,

	  cs.subject_code, cs.course_number, cs.section_number,
	  cs.section_title, cs.course_reference_number,
	  cs.start_date, cs.end_date, mt.start_time, mt.end_time,
	  mt.meeting_days, cs.status_code, mt.meeting_type_code,

	  cs.maximum_enrollment, cs.actual_enrollment,

	  cs.campus_code, mt.building_desc, mt.room,

	  cs.instructor1_id, cs.instructor1_email,
	  CONCAT(cs.instructor1_first_name, ' ', cs.instructor1_last_name) AS instructor_name
	FROM course_section AS cs
	JOIN meeting_time AS mt
	  ON cs.academic_period = mt.academic_period
	    AND cs.course_reference_number = mt.course_reference_number
	WHERE cs.status_code = ?
	  AND cs.sub_academic_period IS NOT NULL
	  AND cs.section_number REGEXP '[0-9]+'
	  AND cs.academic_period BETWEEN ? AND ?
	  AND (mt.start_time IS NOT NULL AND mt.end_time IS NOT NULL)
	ORDER BY cs.academic_period, cs.sub_academic_period`

const odsCountQuery = `
	SELECT COUNT(*)
	FROM course_section AS cs
	WHERE cs.status_code = ?
	  AND cs.sub_academic_period IS NOT NULL
	  AND cs.section_number REGEXP '[0-9]+'
	  AND cs.academic_period BETWEEN ? AND ?`

// activeStatusCode marks sections still offered.
const activeStatusCode = "A"

// odsRow mirrors one record of the join.
type odsRow struct {
	AcademicPeriod    string         `db:"academic_period"`
	SubAcademicPeriod string         `db:"sub_academic_period"`
	SubjectCode       string         `db:"subject_code"`
	CourseNumber      string         `db:"course_number"`
	SectionNumber     string         `db:"section_number"`
	SectionTitle      string         `db:"section_title"`
	CRN               string         `db:"course_reference_number"`
	StartDate         string         `db:"start_date"`
	EndDate           string         `db:"end_date"`
	StartTime         sql.NullString `db:"start_time"`
	EndTime           sql.NullString `db:"end_time"`
	MeetingDays       sql.NullString `db:"meeting_days"`
	StatusCode        string         `db:"status_code"`
	MeetingTypeCode   string         `db:"meeting_type_code"`
	MaximumEnrollment int            `db:"maximum_enrollment"`
	ActualEnrollment  int            `db:"actual_enrollment"`
	CampusCode        string         `db:"campus_code"`
	BuildingDesc      sql.NullString `db:"building_desc"`
	Room              sql.NullString `db:"room"`
	InstructorID      sql.NullInt64  `db:"instructor1_id"`
	InstructorEmail   sql.NullString `db:"instructor1_email"`
	InstructorName    sql.NullString `db:"instructor_name"`
}

// ODSReader produces rows from the secondary ODS database. The full result
// set is materialized on construction; iteration never touches the database
// again.
type ODSReader struct {
	rows []*Row
	next int
}

// NewODSReader runs the section/meeting-time query over the given
// academic-period range and materializes the result.
func NewODSReader(ctx context.Context, db *sqlx.DB, periodStart, periodEnd int) (*ODSReader, error) {
	var records []odsRow
	if err := db.SelectContext(ctx, &records, odsQuery, activeStatusCode, periodStart, periodEnd); err != nil {
		return nil, fmt.Errorf("%w: querying ods: %v", apperrors.ErrSourceIO, err)
	}

	rows := make([]*Row, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].toRow())
	}

	return &ODSReader{rows: rows}, nil
}

func (r *odsRow) toRow() *Row {
	var id int
	var name string
	if r.InstructorID.Valid && r.InstructorID.Int64 != 0 {
		id = int(r.InstructorID.Int64)
		name = r.InstructorName.String
	}

	return &Row{
		Term:            r.AcademicPeriod,
		Block:           r.SubAcademicPeriod,
		Subject:         r.SubjectCode,
		CourseNumber:    r.CourseNumber,
		CourseTitle:     r.SectionTitle,
		SectionNumber:   r.SectionNumber,
		CRN:             r.CRN,
		InstructorID:    id,
		InstructorName:  name,
		InstructorEmail: r.InstructorEmail.String,
		Status:          r.StatusCode,
		Campus:          r.CampusCode,
		Building:        r.BuildingDesc.String,
		Room:            r.Room.String,
		Days:            r.MeetingDays.String,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		StartTime:       r.StartTime.String,
		EndTime:         r.EndTime.String,
		NumEnrolled:     r.ActualEnrollment,
		MaxEnrollment:   r.MaximumEnrollment,
		MeetingType:     r.MeetingTypeCode,
		Raw:             fmt.Sprintf("crn=%s period=%s", r.CRN, r.AcademicPeriod),
	}
}

// Count reports the number of materialized rows.
func (r *ODSReader) Count(ctx context.Context) (int, error) {
	return len(r.rows), nil
}

// Next returns the next materialized row, or io.EOF at the end.
func (r *ODSReader) Next(ctx context.Context) (*Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.next >= len(r.rows) {
		return nil, io.EOF
	}

	row := r.rows[r.next]
	r.next++

	return row, nil
}

// Close is a no-op; the result set was materialized up front.
func (r *ODSReader) Close() error {
	return nil
}
