package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashby/coursebook/internal/app/models"
	"github.com/ashby/coursebook/internal/db"
	"github.com/ashby/coursebook/internal/pkg/dberrors"
)

// importLockKey identifies the cross-process advisory lock guarding import
// runs against the same database.
const importLockKey int64 = 0x5C4ED

// Store is the import-facing persistence surface: find-all per type for
// cache seeding, a unit of work accumulating registered entities, and a
// transactional flush. One Store instance serves one import run.
type Store struct {
	db       *db.PostgresDB
	repos    *Repositories
	lockConn *pgxpool.Conn

	pendingSubjects    []*models.Subject
	pendingCourses     []*models.Course
	pendingCampuses    []*models.Campus
	pendingBuildings   []*models.Building
	pendingRooms       []*models.Room
	pendingInstructors []*models.Instructor
	pendingSections    []*models.Section
	queuedSections     map[*models.Section]bool
}

// NewStore creates a store over the given database.
func NewStore(database *db.PostgresDB) *Store {
	return &Store{
		db:             database,
		repos:          NewRepositories(database.Pool),
		queuedSections: make(map[*models.Section]bool),
	}
}

// LoadSubjects retrieves all subjects for cache seeding.
func (s *Store) LoadSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.repos.SubjectRepository.GetAll(ctx)
}

// LoadCourses retrieves all courses for cache seeding.
func (s *Store) LoadCourses(ctx context.Context) ([]*models.Course, error) {
	return s.repos.CourseRepository.GetAll(ctx)
}

// LoadCampuses retrieves all campuses for cache seeding.
func (s *Store) LoadCampuses(ctx context.Context) ([]*models.Campus, error) {
	return s.repos.CampusRepository.GetAll(ctx)
}

// LoadBuildings retrieves all buildings for cache seeding.
func (s *Store) LoadBuildings(ctx context.Context) ([]*models.Building, error) {
	return s.repos.BuildingRepository.GetAll(ctx)
}

// LoadRooms retrieves all rooms for cache seeding.
func (s *Store) LoadRooms(ctx context.Context) ([]*models.Room, error) {
	return s.repos.RoomRepository.GetAll(ctx)
}

// LoadInstructors retrieves all instructors for cache seeding.
func (s *Store) LoadInstructors(ctx context.Context) ([]*models.Instructor, error) {
	return s.repos.InstructorRepository.GetAll(ctx)
}

// LoadTerms retrieves all terms for cache seeding.
func (s *Store) LoadTerms(ctx context.Context) ([]*models.Term, error) {
	return s.repos.TermRepository.GetAll(ctx)
}

// LoadTermBlocks retrieves all term blocks for cache seeding.
func (s *Store) LoadTermBlocks(ctx context.Context) ([]*models.TermBlock, error) {
	return s.repos.TermBlockRepository.GetAll(ctx)
}

// LoadSections retrieves all sections for cache seeding.
func (s *Store) LoadSections(ctx context.Context) ([]*models.Section, error) {
	return s.repos.SectionRepository.GetAll(ctx)
}

// RegisterSubject queues a new subject for the next flush.
func (s *Store) RegisterSubject(subject *models.Subject) {
	s.pendingSubjects = append(s.pendingSubjects, subject)
}

// RegisterCourse queues a new course for the next flush.
func (s *Store) RegisterCourse(course *models.Course) {
	s.pendingCourses = append(s.pendingCourses, course)
}

// RegisterCampus queues a new campus for the next flush.
func (s *Store) RegisterCampus(campus *models.Campus) {
	s.pendingCampuses = append(s.pendingCampuses, campus)
}

// RegisterBuilding queues a new building for the next flush.
func (s *Store) RegisterBuilding(building *models.Building) {
	s.pendingBuildings = append(s.pendingBuildings, building)
}

// RegisterRoom queues a new room for the next flush.
func (s *Store) RegisterRoom(room *models.Room) {
	s.pendingRooms = append(s.pendingRooms, room)
}

// RegisterInstructor queues a new instructor for the next flush.
func (s *Store) RegisterInstructor(instructor *models.Instructor) {
	s.pendingInstructors = append(s.pendingInstructors, instructor)
}

// RegisterSection queues a section write for the next flush. Sections with
// an id are updated in place; the rest are inserted. Re-registering the same
// section within a batch window is a no-op.
func (s *Store) RegisterSection(section *models.Section) {
	if s.queuedSections[section] {
		return
	}
	s.queuedSections[section] = true
	s.pendingSections = append(s.pendingSections, section)
}

// PersistTerm inserts a term immediately, outside the batch cycle.
func (s *Store) PersistTerm(ctx context.Context, term *models.Term) error {
	return s.repos.TermRepository.Create(ctx, term)
}

// PersistTermBlock inserts a term block immediately, outside the batch
// cycle, so its id is available for section keys.
func (s *Store) PersistTermBlock(ctx context.Context, block *models.TermBlock) error {
	return s.repos.TermBlockRepository.Create(ctx, block)
}

// Flush commits everything registered since the previous flush in one
// transaction, inserting parents before the children that reference them.
// On success the pending sets are cleared; on failure they are kept so the
// error surfaces with the run still owning its state.
func (s *Store) Flush(ctx context.Context) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, campus := range s.pendingCampuses {
			if err := s.repos.CampusRepository.CreateTx(ctx, tx, campus); err != nil {
				return fmt.Errorf("flushing campus %q: %w", campus.Name, err)
			}
		}
		for _, subject := range s.pendingSubjects {
			if err := s.repos.SubjectRepository.CreateTx(ctx, tx, subject); err != nil {
				return fmt.Errorf("flushing subject %q: %w", subject.Name, err)
			}
		}
		for _, instructor := range s.pendingInstructors {
			if err := s.repos.InstructorRepository.CreateTx(ctx, tx, instructor); err != nil {
				return fmt.Errorf("flushing instructor %q: %w", instructor.Name, err)
			}
		}
		for _, building := range s.pendingBuildings {
			if err := s.repos.BuildingRepository.CreateTx(ctx, tx, building); err != nil {
				return fmt.Errorf("flushing building %q: %w", building.Name, err)
			}
		}
		for _, room := range s.pendingRooms {
			if err := s.repos.RoomRepository.CreateTx(ctx, tx, room); err != nil {
				return fmt.Errorf("flushing room %q: %w", room.Number, err)
			}
		}
		for _, course := range s.pendingCourses {
			if err := s.repos.CourseRepository.CreateTx(ctx, tx, course); err != nil {
				return fmt.Errorf("flushing course %q: %w", course.Number, err)
			}
		}
		for _, section := range s.pendingSections {
			section.CourseID = section.Course.ID
			section.SubjectID = section.Subject.ID
			section.CampusID = section.Campus.ID
			section.RoomID = section.Room.ID
			section.InstructorID = section.Instructor.ID
			section.BlockID = section.Block.ID

			var err error
			if section.ID == 0 {
				err = s.repos.SectionRepository.CreateTx(ctx, tx, section)
			} else {
				err = s.repos.SectionRepository.UpdateTx(ctx, tx, section)
			}
			if err != nil {
				return fmt.Errorf("flushing section crn %s: %w", section.CRN, err)
			}
		}

		return nil
	})
	if err != nil {
		// A unique violation here means another writer created the same
		// natural key since this run seeded its caches.
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("concurrent import detected, re-run to converge: %w", err)
		}
		return err
	}

	s.pendingSubjects = nil
	s.pendingCourses = nil
	s.pendingCampuses = nil
	s.pendingBuildings = nil
	s.pendingRooms = nil
	s.pendingInstructors = nil
	s.pendingSections = nil
	s.queuedSections = make(map[*models.Section]bool)

	return nil
}

// AcquireImportLock takes the cross-process advisory lock for the duration
// of a run. It returns false when another run holds it. Advisory locks are
// session-scoped, so the lock pins one pool connection until released.
func (s *Store) AcquireImportLock(ctx context.Context) (bool, error) {
	conn, err := s.db.Pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("error acquiring lock connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, importLockKey).Scan(&acquired); err != nil {
		conn.Release()
		return false, fmt.Errorf("error acquiring import lock: %w", err)
	}

	if !acquired {
		conn.Release()
		return false, nil
	}

	s.lockConn = conn
	return true, nil
}

// ReleaseImportLock releases the advisory lock and its connection.
func (s *Store) ReleaseImportLock(ctx context.Context) error {
	if s.lockConn == nil {
		return nil
	}

	_, err := s.lockConn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, importLockKey)
	s.lockConn.Release()
	s.lockConn = nil

	return err
}
