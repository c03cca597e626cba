package models

import "time"

// Section represents one offering of a course within a term block. It is the
// leaf of the import graph and the only entity updated in place on re-import.
type Section struct {
	ID            int64     `json:"id" db:"id"`
	CRN           string    `json:"crn" db:"crn"`
	CourseID      int64     `json:"courseId" db:"course_id"`
	BlockID       int64     `json:"blockId" db:"block_id"`
	SubjectID     int64     `json:"subjectId" db:"subject_id"`
	CampusID      int64     `json:"campusId" db:"campus_id"`
	RoomID        int64     `json:"roomId" db:"room_id"`
	InstructorID  int64     `json:"instructorId" db:"instructor_id"`
	Days          string    `json:"days" db:"days"`
	StartDate     time.Time `json:"startDate" db:"start_date"`
	EndDate       time.Time `json:"endDate" db:"end_date"`
	StartTime     string    `json:"startTime" db:"start_time"`
	EndTime       string    `json:"endTime" db:"end_time"`
	Status        string    `json:"status" db:"status"`
	Number        string    `json:"number" db:"number"`
	NumEnrolled   int       `json:"numEnrolled" db:"num_enrolled"`
	MaxEnrollment int       `json:"maxEnrollment" db:"max_enrollment"`
	MeetingType   string    `json:"meetingType" db:"meeting_type"`

	// Relations (populated when needed)
	Course     *Course     `json:"course,omitempty"`
	Block      *TermBlock  `json:"block,omitempty"`
	Subject    *Subject    `json:"subject,omitempty"`
	Campus     *Campus     `json:"campus,omitempty"`
	Room       *Room       `json:"room,omitempty"`
	Instructor *Instructor `json:"instructor,omitempty"`
}

// SectionKey is the natural key of a Section. BlockID is the surrogate id of
// the owning term block, which therefore must be assigned before the key is
// computed.
type SectionKey struct {
	CRN     string
	BlockID int64
}

// Key returns the section's natural key.
func (s *Section) Key() SectionKey {
	return SectionKey{CRN: s.CRN, BlockID: s.BlockID}
}
