package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ashby/coursebook/internal/pkg/apperrors"
)

// bookRecord builds a 37-column Book export record with the consumed columns
// populated.
func bookRecord() []string {
	record := make([]string, 37)
	record[colTerm] = "Fall 2017"
	record[colSubject] = "CS"
	record[colCourseNumber] = "2413"
	record[colSectionNumber] = "001"
	record[colCRN] = "12345"
	record[colCourseTitle] = "Data Structures"
	record[colInstructorName] = "Ada Lovelace"
	record[colInstructorID] = "42"
	record[colStatus] = "A"
	record[colCampus] = "NORM"
	record[colMaxEnrollment] = "30"
	record[colNumEnrolled] = "25"
	record[colStartDate] = "2017-08-21"
	record[colEndDate] = "2017-12-15"
	record[colBuilding] = "SEC"
	record[colRoom] = "102"
	record[colDays] = "M/W/F"
	record[colStartTime] = "900"
	record[colEndTime] = "1015"
	record[colBlock] = "1"
	record[colCourseLevel] = "Undergraduate"
	return record
}

func writeBookFile(t *testing.T, records ...[]string) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(strings.Repeat("header,", 36) + "header\n")
	for _, record := range records {
		sb.WriteString(strings.Join(record, ",") + "\n")
	}

	path := filepath.Join(t.TempDir(), "classes.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVReaderMapsColumns(t *testing.T) {
	path := writeBookFile(t, bookRecord())

	reader, err := NewCSVReader(path)
	if err != nil {
		t.Fatalf("NewCSVReader() error = %v", err)
	}
	defer reader.Close()

	row, err := reader.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if row.Term != "Fall 2017" {
		t.Errorf("Term = %q", row.Term)
	}
	if row.CRN != "12345" {
		t.Errorf("CRN = %q", row.CRN)
	}
	if row.InstructorID != 42 || row.InstructorName != "Ada Lovelace" {
		t.Errorf("instructor = %d %q", row.InstructorID, row.InstructorName)
	}
	if row.NumEnrolled != 25 || row.MaxEnrollment != 30 {
		t.Errorf("enrollment = %d/%d", row.NumEnrolled, row.MaxEnrollment)
	}
	if row.Building != "SEC" || row.Room != "102" {
		t.Errorf("location = %q %q", row.Building, row.Room)
	}
	if row.MeetingType != "class" {
		t.Errorf("MeetingType = %q, want class", row.MeetingType)
	}
	if row.Block != "1" || row.CourseLevel != "Undergraduate" {
		t.Errorf("block/level = %q %q", row.Block, row.CourseLevel)
	}

	if _, err := reader.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after last row = %v, want io.EOF", err)
	}
}

func TestCSVReaderBlanksInstructorWithoutID(t *testing.T) {
	record := bookRecord()
	record[colInstructorID] = ""

	path := writeBookFile(t, record)
	reader, err := NewCSVReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	row, err := reader.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if row.InstructorID != 0 || row.InstructorName != "" {
		t.Errorf("instructor = %d %q, want blanked", row.InstructorID, row.InstructorName)
	}
}

func TestCSVReaderCount(t *testing.T) {
	path := writeBookFile(t, bookRecord(), bookRecord(), bookRecord())

	reader, err := NewCSVReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	ctx := context.Background()
	count, err := reader.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	// Counting must not disturb the streaming position.
	if _, err := reader.Next(ctx); err != nil {
		t.Errorf("Next() after Count() error = %v", err)
	}
}

func TestCSVReaderMissingFile(t *testing.T) {
	_, err := NewCSVReader(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, apperrors.ErrSourceIO) {
		t.Errorf("error class = %s, want io", apperrors.Classify(err))
	}
}

func TestCSVReaderShortRow(t *testing.T) {
	path := writeBookFile(t, []string{"Fall 2017", "CS", "2413"})

	reader, err := NewCSVReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	_, err = reader.Next(context.Background())
	if err == nil {
		t.Fatal("expected error for short row")
	}

	var rowErr *apperrors.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("error = %v, want RowError", err)
	}
	if !errors.Is(err, apperrors.ErrData) {
		t.Errorf("error class = %s, want data", apperrors.Classify(err))
	}
}

func TestAcademicPeriodRange(t *testing.T) {
	now := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)

	low, high := AcademicPeriodRange(2017, 2, now)
	if low != 201500 {
		t.Errorf("low = %d, want 201500", low)
	}
	if high != 300000 {
		t.Errorf("high = %d, want 300000", high)
	}

	// A zero start year falls back to the current year.
	low, _ = AcademicPeriodRange(0, 2, now)
	if low != 201600 {
		t.Errorf("low = %d, want 201600", low)
	}
}
