package models

// Subject represents a subject area, e.g. "CS" or "HIST".
type Subject struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Courses owned by this subject (populated when needed)
	Courses []*Course `json:"courses,omitempty"`
}

// SubjectKey is the natural key of a Subject.
type SubjectKey struct {
	Name string
}

// Key returns the subject's natural key.
func (s *Subject) Key() SubjectKey {
	return SubjectKey{Name: s.Name}
}

// AddCourse attaches a course to the subject, keeping both sides of the
// relation consistent.
func (s *Subject) AddCourse(course *Course) {
	s.Courses = append(s.Courses, course)
	course.Subject = s
}
