package importer

import (
	"reflect"
	"testing"
)

func TestParseTerm(t *testing.T) {
	tests := []struct {
		raw      string
		year     int
		semester string
		display  string
	}{
		{"201710", 2017, "Fall", "Fall 2017"},
		{"201720", 2018, "Spring", "Spring 2018"},
		{"201730", 2018, "Summer", "Summer 2018"},
		{"Fall 2018", 2018, "Fall", "Fall 2018"},
		// Spring records stamped with a calendar year belong to the
		// following year's term.
		{"Spring 2018", 2019, "Spring", "Spring 2019"},
		{"Summer 2017", 2018, "Summer", "Summer 2018"},
	}

	for _, tt := range tests {
		parts, err := ParseTerm(tt.raw, "1")
		if err != nil {
			t.Fatalf("ParseTerm(%q) error = %v", tt.raw, err)
		}
		if parts.Year != tt.year {
			t.Errorf("ParseTerm(%q).Year = %d, want %d", tt.raw, parts.Year, tt.year)
		}
		if parts.Semester != tt.semester {
			t.Errorf("ParseTerm(%q).Semester = %q, want %q", tt.raw, parts.Semester, tt.semester)
		}
		if parts.DisplayName != tt.display {
			t.Errorf("ParseTerm(%q).DisplayName = %q, want %q", tt.raw, parts.DisplayName, tt.display)
		}
		if parts.Block != "1" {
			t.Errorf("ParseTerm(%q).Block = %q, want %q", tt.raw, parts.Block, "1")
		}
	}
}

func TestParseTermUnknownCode(t *testing.T) {
	parts, err := ParseTerm("201799", "1")
	if err != nil {
		t.Fatalf("ParseTerm error = %v", err)
	}
	if parts.Semester != "Unknown" {
		t.Errorf("Semester = %q, want Unknown", parts.Semester)
	}
}

func TestParseTermErrors(t *testing.T) {
	if _, err := ParseTerm("", "1"); err == nil {
		t.Error("ParseTerm(\"\") expected error")
	}
	if _, err := ParseTerm("Fall semester", "1"); err == nil {
		t.Error("ParseTerm with non-numeric year expected error")
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		building string
		room     string
		wantBldg string
		wantRoom string
	}{
		{"XCH204", "", "XCH", "204"},
		{"SEC", "102", "SEC", "102"},
		{"SEC", "", "SEC", ""},
		{"XCH", "310", "XCH", "310"}, // bare XCH carries no packed room
	}

	for _, tt := range tests {
		bldg, room := ParseLocation(tt.building, tt.room)
		if bldg != tt.wantBldg || room != tt.wantRoom {
			t.Errorf("ParseLocation(%q, %q) = (%q, %q), want (%q, %q)",
				tt.building, tt.room, bldg, room, tt.wantBldg, tt.wantRoom)
		}
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		days string
		want []int
	}{
		{"M/W/F", []int{1, 3, 5}},
		{"T/R", []int{2, 4}},
		{"Sun/Sat", []int{0, 6}},
		{"", nil},
		{"M/X/F", []int{1, 5}}, // unknown tokens dropped
	}

	for _, tt := range tests {
		got := ParseDays(tt.days)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseDays(%q) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestParseMeetingTime(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"900", "09:00"},
		{"1330", "13:30"},
		{"0800", "08:00"},
		{"", ""},
	}

	for _, tt := range tests {
		got, err := ParseMeetingTime(tt.raw)
		if err != nil {
			t.Fatalf("ParseMeetingTime(%q) error = %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseMeetingTime(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}

	if _, err := ParseMeetingTime("noon"); err == nil {
		t.Error("ParseMeetingTime(\"noon\") expected error")
	}
	if _, err := ParseMeetingTime("12345"); err == nil {
		t.Error("ParseMeetingTime(\"12345\") expected error")
	}
}

func TestParseDate(t *testing.T) {
	// The RFC 3339 form appears when a driver scans a date column through
	// a time.Time before it reaches us as a string.
	for _, raw := range []string{
		"2017-08-21",
		"08/21/2017",
		"8/21/2017",
		"2017-08-21 00:00:00",
		"2017-08-21T00:00:00Z",
	} {
		d, err := ParseDate(raw)
		if err != nil {
			t.Fatalf("ParseDate(%q) error = %v", raw, err)
		}
		if d.Year() != 2017 || int(d.Month()) != 8 || d.Day() != 21 {
			t.Errorf("ParseDate(%q) = %v, want 2017-08-21", raw, d)
		}
	}

	if _, err := ParseDate("someday"); err == nil {
		t.Error("ParseDate(\"someday\") expected error")
	}
}
