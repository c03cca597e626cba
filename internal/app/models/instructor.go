package models

// Instructor represents a teaching staff member as reported by the registrar.
// Rows without an instructor id collapse into a single sentinel record named
// StaffSentinelName with ExternalID 0.
type Instructor struct {
	ID         int64  `json:"id" db:"id"`
	ExternalID int    `json:"externalId" db:"external_id"`
	Name       string `json:"name" db:"name"`
	Email      string `json:"email" db:"email"`
}

// InstructorKey is the natural key of an Instructor.
type InstructorKey struct {
	ExternalID int
	Name       string
}

// Key returns the instructor's natural key.
func (i *Instructor) Key() InstructorKey {
	return InstructorKey{ExternalID: i.ExternalID, Name: i.Name}
}
