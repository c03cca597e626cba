// Package source produces raw schedule rows from the supported import
// origins: the legacy Book CSV dump and the secondary ODS database.
package source

import (
	"context"
	"time"
)

// Selector values accepted by the import command.
const (
	SelectorBook = "book"
	SelectorODS  = "ods"
)

// Row is one raw schedule record, normalized to a common shape across
// sources. Field values are carried as the source reported them; all
// interpretation happens in the reconciler.
type Row struct {
	Term            string // "Fall 2017" (book) or "201710" (ods)
	Block           string // term sub-block code: 1, 2, 3, "DEC", ...
	Subject         string
	CourseNumber    string
	CourseTitle     string
	CourseLevel     string
	SectionNumber   string
	CRN             string
	InstructorID    int
	InstructorName  string
	InstructorEmail string
	Status          string
	Campus          string
	Building        string
	Room            string
	Days            string
	StartDate       string
	EndDate         string
	StartTime       string
	EndTime         string
	NumEnrolled     int
	MaxEnrollment   int
	MeetingType     string
	Raw             string // original record, for data-error reporting
}

// Reader is a finite, single-pass sequence of raw rows. Next returns io.EOF
// after the last row; restarting requires constructing a new reader.
type Reader interface {
	// Count reports the total number of rows the reader will produce,
	// for progress reporting.
	Count(ctx context.Context) (int, error)

	// Next returns the next row, or io.EOF at end of stream.
	Next(ctx context.Context) (*Row, error)

	// Close releases the underlying file or statement handles.
	Close() error
}

// AcademicPeriodRange computes the inclusive YYYYPP bounds queried from the
// ODS source. The start backs off lookback years from startYear (or from the
// current year when startYear is zero); the stop bound is left wide open.
func AcademicPeriodRange(startYear, lookback int, now time.Time) (int, int) {
	year := startYear
	if year == 0 {
		year = now.Year()
	}

	return (year - lookback) * 100, 300000
}
