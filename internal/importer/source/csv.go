package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ashby/coursebook/internal/pkg/apperrors"
	"github.com/ashby/coursebook/internal/pkg/textutil"
)

// Positional columns of the Book CSV dump. The export carries 37+ columns;
// only the ones below are consumed.
const (
	colTerm           = 0
	colSubject        = 1
	colCourseNumber   = 2
	colSectionNumber  = 3
	colCRN            = 4
	colCourseTitle    = 5
	colInstructorName = 6
	colInstructorID   = 7
	colStatus         = 8
	colCampus         = 9
	colMaxEnrollment  = 11
	colNumEnrolled    = 12
	colStartDate      = 16
	colEndDate        = 17
	colBuilding       = 18
	colRoom           = 19
	colDays           = 20
	colStartTime      = 21
	colEndTime        = 22
	colBlock          = 35
	colCourseLevel    = 36
)

// minBookColumns is the narrowest record the Book export produces.
const minBookColumns = 37

// CSVReader streams rows from a Book CSV file. The header line is discarded
// on open.
type CSVReader struct {
	path  string
	file  *os.File
	csv   *csv.Reader
	count int
	line  int
}

// NewCSVReader opens the Book CSV at path, failing fast if anything prevents
// reading it.
func NewCSVReader(path string) (*CSVReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceIO, err)
	}

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	// Discard the column headers.
	if _, err := r.Read(); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: reading header of %s: %v", apperrors.ErrSourceIO, path, err)
	}

	return &CSVReader{path: path, file: file, csv: r, line: 1}, nil
}

// Count reports the number of data rows in the file by scanning a second
// handle; the streaming position is untouched.
func (r *CSVReader) Count(ctx context.Context) (int, error) {
	if r.count > 0 {
		return r.count, nil
	}

	file, err := os.Open(r.path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrSourceIO, err)
	}
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("%w: counting rows of %s: %v", apperrors.ErrSourceIO, r.path, err)
	}

	if lines > 0 {
		lines-- // header
	}
	r.count = lines

	return lines, nil
}

// Next decodes the next data row.
func (r *CSVReader) Next(ctx context.Context) (*Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, apperrors.NewRowError(fmt.Sprintf("%s:%d", r.path, r.line+1), err)
	}
	r.line++

	raw := strings.Join(record, ",")
	if len(record) < minBookColumns {
		return nil, apperrors.NewRowError(raw,
			fmt.Errorf("expected at least %d columns, got %d", minBookColumns, len(record)))
	}

	instructorID, _ := strconv.Atoi(record[colInstructorID])
	name := record[colInstructorName]
	if record[colInstructorID] == "" {
		name = ""
	}

	return &Row{
		Term:           record[colTerm],
		Block:          record[colBlock],
		Subject:        record[colSubject],
		CourseNumber:   record[colCourseNumber],
		CourseTitle:    textutil.ToUTF8(record[colCourseTitle]),
		CourseLevel:    record[colCourseLevel],
		SectionNumber:  record[colSectionNumber],
		CRN:            record[colCRN],
		InstructorID:   instructorID,
		InstructorName: textutil.ToUTF8(name),
		Status:         record[colStatus],
		Campus:         record[colCampus],
		Building:       record[colBuilding],
		Room:           record[colRoom],
		Days:           record[colDays],
		StartDate:      record[colStartDate],
		EndDate:        record[colEndDate],
		StartTime:      record[colStartTime],
		EndTime:        record[colEndTime],
		NumEnrolled:    atoiOrZero(record[colNumEnrolled]),
		MaxEnrollment:  atoiOrZero(record[colMaxEnrollment]),
		MeetingType:    "class",
		Raw:            raw,
	}, nil
}

// Close releases the file handle.
func (r *CSVReader) Close() error {
	return r.file.Close()
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
