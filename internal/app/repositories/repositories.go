package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	SubjectRepository    *SubjectRepository
	CourseRepository     *CourseRepository
	CampusRepository     *CampusRepository
	BuildingRepository   *BuildingRepository
	RoomRepository       *RoomRepository
	InstructorRepository *InstructorRepository
	TermRepository       *TermRepository
	TermBlockRepository  *TermBlockRepository
	SectionRepository    *SectionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SubjectRepository:    NewSubjectRepository(db),
		CourseRepository:     NewCourseRepository(db),
		CampusRepository:     NewCampusRepository(db),
		BuildingRepository:   NewBuildingRepository(db),
		RoomRepository:       NewRoomRepository(db),
		InstructorRepository: NewInstructorRepository(db),
		TermRepository:       NewTermRepository(db),
		TermBlockRepository:  NewTermBlockRepository(db),
		SectionRepository:    NewSectionRepository(db),
	}
}
