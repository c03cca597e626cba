package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ashby/coursebook/internal/app/models"
)

// TermParts is the result of parsing a compound term value.
type TermParts struct {
	Year        int
	Semester    string
	Block       string
	DisplayName string
}

// semesterName maps registrar period codes to semester names.
func semesterName(code int) string {
	switch code {
	case 10:
		return models.SemesterFall
	case 20:
		return models.SemesterSpring
	case 30:
		return models.SemesterSummer
	default:
		return models.SemesterUnknown
	}
}

// semesterCode is the inverse of semesterName for display-form terms.
func semesterCode(name string) int {
	switch name {
	case models.SemesterFall:
		return 10
	case models.SemesterSpring:
		return 20
	case models.SemesterSummer:
		return 30
	default:
		return 0
	}
}

// ParseTerm breaks a compound term value into its parts. Two input shapes are
// accepted: a registrar academic period "YYYYPP" (e.g. "201720"), and a
// display string whose first token is the semester and last token the year
// (e.g. "Spring 2018"). Periods coded 20 and above belong to the following
// calendar year, so "201720" is Spring 2018 and "Spring 2018" lands in 2019.
func ParseTerm(raw, block string) (TermParts, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TermParts{}, fmt.Errorf("empty term value")
	}

	var year, code int
	fields := strings.Fields(raw)

	if len(fields) == 1 && len(raw) >= 5 && isDigits(raw) {
		year, _ = strconv.Atoi(raw[:4])
		code, _ = strconv.Atoi(raw[4:])
	} else {
		y, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return TermParts{}, fmt.Errorf("term %q: year token is not numeric", raw)
		}
		year = y

		if c, err := strconv.Atoi(fields[0]); err == nil {
			code = c
		} else {
			code = semesterCode(fields[0])
		}
	}

	if code >= 20 {
		year++
	}

	semester := semesterName(code)
	if semester == models.SemesterUnknown && !isDigits(fields[0]) {
		semester = fields[0]
	}

	return TermParts{
		Year:        year,
		Semester:    semester,
		Block:       block,
		DisplayName: fmt.Sprintf("%s %d", semester, year),
	}, nil
}

// ParseLocation resolves the building/room pair for a row. Registrar rows for
// the exchange building pack the room number into the building field with an
// "XCH" prefix; everywhere else the two fields are separate.
func ParseLocation(building, room string) (string, string) {
	if strings.HasPrefix(building, "XCH") && len(building) > len("XCH") {
		return "XCH", building[len("XCH"):]
	}
	return building, room
}

// dayTable holds the day-of-week tokens used in meeting-day strings, indexed
// Sunday through Saturday.
var dayTable = []string{"Sun", "M", "T", "W", "R", "F", "Sat"}

// ParseDays expands a "/"-separated meeting-day string into weekday indices,
// Sunday = 0. Unknown tokens are dropped. An empty string yields nil.
func ParseDays(days string) []int {
	if days == "" {
		return nil
	}

	var indices []int
	for _, token := range strings.Split(days, "/") {
		for idx, name := range dayTable {
			if token == name {
				indices = append(indices, idx)
				break
			}
		}
	}

	return indices
}

// ParseMeetingTime converts a raw 3-4 digit registrar time such as "900" or
// "1330" into "HH:MM" form. Empty input stays empty.
func ParseMeetingTime(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !isDigits(raw) || len(raw) > 4 {
		return "", fmt.Errorf("bad meeting time %q", raw)
	}

	padded := strings.Repeat("0", 4-len(raw)) + raw
	return padded[:2] + ":" + padded[2:], nil
}

// dateLayouts covers the date forms seen across the Book CSV and the ODS
// database.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a source-local date string.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
