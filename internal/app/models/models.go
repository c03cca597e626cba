package models

// Semester names produced by academic-period parsing.
const (
	SemesterFall    = "Fall"
	SemesterSpring  = "Spring"
	SemesterSummer  = "Summer"
	SemesterUnknown = "Unknown"
)

// StaffSentinelName is assigned to instructors whose source row carries no
// instructor id.
const StaffSentinelName = "N/A"

// DefaultRoomNumber is used when a source row has no room value.
const DefaultRoomNumber = "0000"
