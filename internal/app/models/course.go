package models

// Course represents a course offered under a subject.
type Course struct {
	ID        int64  `json:"id" db:"id"`
	SubjectID int64  `json:"subjectId" db:"subject_id"`
	Number    string `json:"number" db:"number"`
	Name      string `json:"name" db:"name"`
	Level     string `json:"level" db:"level"`

	// Relations (populated when needed)
	Subject *Subject `json:"subject,omitempty"`
}

// CourseKey is the natural key of a Course.
type CourseKey struct {
	Subject string
	Number  string
}

// Key returns the course's natural key. The owning subject must be attached.
func (c *Course) Key() CourseKey {
	return CourseKey{Subject: c.Subject.Name, Number: c.Number}
}
