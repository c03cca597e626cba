package importer

import (
	"context"
	"time"

	"github.com/ashby/coursebook/internal/app/models"
	"github.com/ashby/coursebook/internal/importer/source"
	"github.com/ashby/coursebook/internal/pkg/apperrors"
)

// noDataSentinel marks fields the registrar export had no value for. A row
// carrying it in the term or status column is unusable.
const noDataSentinel = "..."

// EntityStore is the persistence surface the reconciler consumes: find-all
// per type for cache seeding, registration of new entities for the next
// batch flush, and immediate persistence for entities whose surrogate id
// participates in a cache key.
type EntityStore interface {
	LoadSubjects(ctx context.Context) ([]*models.Subject, error)
	LoadCourses(ctx context.Context) ([]*models.Course, error)
	LoadCampuses(ctx context.Context) ([]*models.Campus, error)
	LoadBuildings(ctx context.Context) ([]*models.Building, error)
	LoadRooms(ctx context.Context) ([]*models.Room, error)
	LoadInstructors(ctx context.Context) ([]*models.Instructor, error)
	LoadTerms(ctx context.Context) ([]*models.Term, error)
	LoadTermBlocks(ctx context.Context) ([]*models.TermBlock, error)
	LoadSections(ctx context.Context) ([]*models.Section, error)

	RegisterSubject(*models.Subject)
	RegisterCourse(*models.Course)
	RegisterCampus(*models.Campus)
	RegisterBuilding(*models.Building)
	RegisterRoom(*models.Room)
	RegisterInstructor(*models.Instructor)
	RegisterSection(*models.Section)

	// PersistTerm and PersistTermBlock assign identity immediately. Blocks
	// need an id before any section referencing them is cached.
	PersistTerm(ctx context.Context, term *models.Term) error
	PersistTermBlock(ctx context.Context, block *models.TermBlock) error

	// Flush commits everything registered since the previous flush.
	Flush(ctx context.Context) error
}

// Reconciler resolves each raw row into the entity graph, creating entities
// on first encounter and reusing them for the rest of the run.
type Reconciler struct {
	store         EntityStore
	cache         *Cache
	includeOnline bool

	// now is the clock used by the online-section rule; tests override it.
	now func() time.Time
}

// NewReconciler returns a reconciler with a fresh run-scoped cache. Online
// sections are excluded by default.
func NewReconciler(store EntityStore) *Reconciler {
	return &Reconciler{
		store: store,
		cache: NewCache(),
		now:   time.Now,
	}
}

// SetIncludeOnline toggles inclusion of online-only sections.
func (r *Reconciler) SetIncludeOnline(on bool) {
	r.includeOnline = on
}

// Reconcile resolves or creates the entities a row references and upserts
// its section. A skipped row returns (nil, nil) and causes no entity
// mutation. Malformed rows return a data error carrying the raw record.
func (r *Reconciler) Reconcile(ctx context.Context, row *source.Row) (*models.Section, error) {
	skip, err := r.shouldSkip(row)
	if err != nil {
		return nil, apperrors.NewRowError(row.Raw, err)
	}
	if skip {
		return nil, nil
	}

	subject, err := r.subject(ctx, row.Subject)
	if err != nil {
		return nil, err
	}

	course, err := r.course(ctx, subject, row)
	if err != nil {
		return nil, err
	}

	block, err := r.termBlock(ctx, row)
	if err != nil {
		return nil, err
	}

	instructor, err := r.instructor(ctx, row)
	if err != nil {
		return nil, err
	}

	building, roomNumber := ParseLocation(row.Building, row.Room)
	if building == "" {
		building = "N/A"
	}

	campus, err := r.campus(ctx, row.Campus)
	if err != nil {
		return nil, err
	}

	bldg, err := r.building(ctx, campus, building)
	if err != nil {
		return nil, err
	}

	room, err := r.room(ctx, bldg, roomNumber)
	if err != nil {
		return nil, err
	}

	return r.upsertSection(ctx, row, subject, course, block, instructor, campus, room)
}

// shouldSkip applies the row-level exclusion rules before any entity
// resolution.
func (r *Reconciler) shouldSkip(row *source.Row) (bool, error) {
	if row.Term == noDataSentinel || row.Status == noDataSentinel {
		return true, nil
	}

	if !r.includeOnline && row.Days == "" {
		start, err := ParseDate(row.StartDate)
		if err != nil {
			return false, err
		}
		// An online section whose start date is not in the future carries
		// no calendar placement worth importing.
		if !start.After(r.now()) {
			return true, nil
		}
	}

	return false, nil
}

func (r *Reconciler) subject(ctx context.Context, name string) (*models.Subject, error) {
	err := r.cache.subjects.ensure(
		func() ([]*models.Subject, error) { return r.store.LoadSubjects(ctx) },
		func(s *models.Subject) models.SubjectKey { return s.Key() },
	)
	if err != nil {
		return nil, err
	}

	key := models.SubjectKey{Name: name}
	if subject, ok := r.cache.subjects.lookup(key); ok {
		return subject, nil
	}

	subject := &models.Subject{Name: name}
	r.store.RegisterSubject(subject)

	return r.cache.subjects.put(key, subject), nil
}

func (r *Reconciler) course(ctx context.Context, subject *models.Subject, row *source.Row) (*models.Course, error) {
	err := r.cache.courses.ensure(
		func() ([]*models.Course, error) { return r.store.LoadCourses(ctx) },
		func(c *models.Course) models.CourseKey { return c.Key() },
	)
	if err != nil {
		return nil, err
	}

	key := models.CourseKey{Subject: subject.Name, Number: row.CourseNumber}
	if course, ok := r.cache.courses.lookup(key); ok {
		return course, nil
	}

	// Name and level are set on creation only; later rows for the same
	// course do not overwrite them.
	course := &models.Course{
		Number: row.CourseNumber,
		Name:   row.CourseTitle,
		Level:  row.CourseLevel,
	}
	subject.AddCourse(course)
	r.store.RegisterCourse(course)

	return r.cache.courses.put(key, course), nil
}

func (r *Reconciler) termBlock(ctx context.Context, row *source.Row) (*models.TermBlock, error) {
	blockCode := row.Block
	if row.MeetingType == "EXAM" {
		blockCode = row.MeetingType
	}

	parts, err := ParseTerm(row.Term, blockCode)
	if err != nil {
		return nil, apperrors.NewRowError(row.Raw, err)
	}

	term, err := r.term(ctx, parts)
	if err != nil {
		return nil, err
	}

	err = r.cache.blocks.ensure(
		func() ([]*models.TermBlock, error) { return r.store.LoadTermBlocks(ctx) },
		func(b *models.TermBlock) models.TermBlockKey { return b.Key() },
	)
	if err != nil {
		return nil, err
	}

	key := models.TermBlockKey{Term: term.DisplayName, Name: parts.Block}
	if block, ok := r.cache.blocks.lookup(key); ok {
		return block, nil
	}

	block := &models.TermBlock{Name: parts.Block}
	term.AddBlock(block)

	// The block's id participates in section cache keys, so identity is
	// assigned now rather than at the next batch flush.
	if err := r.store.PersistTermBlock(ctx, block); err != nil {
		return nil, err
	}

	return r.cache.blocks.put(key, block), nil
}

func (r *Reconciler) term(ctx context.Context, parts TermParts) (*models.Term, error) {
	err := r.cache.terms.ensure(
		func() ([]*models.Term, error) { return r.store.LoadTerms(ctx) },
		func(t *models.Term) models.TermKey { return t.Key() },
	)
	if err != nil {
		return nil, err
	}

	key := models.TermKey{Year: parts.Year, Semester: parts.Semester}
	if term, ok := r.cache.terms.lookup(key); ok {
		return term, nil
	}

	term := &models.Term{
		DisplayName: parts.DisplayName,
		Year:        parts.Year,
		Semester:    parts.Semester,
	}

	// Persisted immediately so a newly created block under it has a valid
	// term id to reference.
	if err := r.store.PersistTerm(ctx, term); err != nil {
		return nil, err
	}

	return r.cache.terms.put(key, term), nil
}

func (r *Reconciler) instructor(ctx context.Context, row *source.Row) (*models.Instructor, error) {
	err := r.cache.instructors.ensure(
		func() ([]*models.Instructor, error) { return r.store.LoadInstructors(ctx) },
		func(i *models.Instructor) models.InstructorKey { return i.Key() },
	)
	if err != nil {
		return nil, err
	}

	id := row.InstructorID
	name := row.InstructorName
	if id == 0 || name == "" {
		id = 0
		name = models.StaffSentinelName
	}

	key := models.InstructorKey{ExternalID: id, Name: name}
	if instructor, ok := r.cache.instructors.lookup(key); ok {
		return instructor, nil
	}

	instructor := &models.Instructor{
		ExternalID: id,
		Name:       name,
		Email:      row.InstructorEmail,
	}
	r.store.RegisterInstructor(instructor)

	return r.cache.instructors.put(key, instructor), nil
}

func (r *Reconciler) campus(ctx context.Context, name string) (*models.Campus, error) {
	err := r.cache.campuses.ensure(
		func() ([]*models.Campus, error) { return r.store.LoadCampuses(ctx) },
		func(c *models.Campus) models.CampusKey { return c.Key() },
	)
	if err != nil {
		return nil, err
	}

	key := models.CampusKey{Name: name}
	if campus, ok := r.cache.campuses.lookup(key); ok {
		return campus, nil
	}

	campus := &models.Campus{Name: name}
	r.store.RegisterCampus(campus)

	return r.cache.campuses.put(key, campus), nil
}

func (r *Reconciler) building(ctx context.Context, campus *models.Campus, name string) (*models.Building, error) {
	err := r.cache.buildings.ensure(
		func() ([]*models.Building, error) { return r.store.LoadBuildings(ctx) },
		func(b *models.Building) models.BuildingKey { return b.Key() },
	)
	if err != nil {
		return nil, err
	}

	key := models.BuildingKey{Campus: campus.Name, Name: name}
	if building, ok := r.cache.buildings.lookup(key); ok {
		return building, nil
	}

	building := &models.Building{Name: name}
	campus.AddBuilding(building)
	r.store.RegisterBuilding(building)

	return r.cache.buildings.put(key, building), nil
}

func (r *Reconciler) room(ctx context.Context, building *models.Building, number string) (*models.Room, error) {
	err := r.cache.rooms.ensure(
		func() ([]*models.Room, error) { return r.store.LoadRooms(ctx) },
		func(rm *models.Room) models.RoomKey { return rm.Key() },
	)
	if err != nil {
		return nil, err
	}

	if number == "" {
		number = models.DefaultRoomNumber
	}

	key := models.RoomKey{Building: building.Name, Number: number}
	if room, ok := r.cache.rooms.lookup(key); ok {
		return room, nil
	}

	room := &models.Room{Number: number}
	building.AddRoom(room)
	r.store.RegisterRoom(room)

	return r.cache.rooms.put(key, room), nil
}

func (r *Reconciler) upsertSection(
	ctx context.Context,
	row *source.Row,
	subject *models.Subject,
	course *models.Course,
	block *models.TermBlock,
	instructor *models.Instructor,
	campus *models.Campus,
	room *models.Room,
) (*models.Section, error) {
	err := r.cache.sections.ensure(
		func() ([]*models.Section, error) { return r.store.LoadSections(ctx) },
		func(s *models.Section) models.SectionKey { return s.Key() },
	)
	if err != nil {
		return nil, err
	}

	startDate, err := ParseDate(row.StartDate)
	if err != nil {
		return nil, apperrors.NewRowError(row.Raw, err)
	}
	endDate, err := ParseDate(row.EndDate)
	if err != nil {
		return nil, apperrors.NewRowError(row.Raw, err)
	}
	startTime, err := ParseMeetingTime(row.StartTime)
	if err != nil {
		return nil, apperrors.NewRowError(row.Raw, err)
	}
	endTime, err := ParseMeetingTime(row.EndTime)
	if err != nil {
		return nil, apperrors.NewRowError(row.Raw, err)
	}

	key := models.SectionKey{CRN: row.CRN, BlockID: block.ID}
	section, existed := r.cache.sections.lookup(key)
	if !existed {
		section = &models.Section{CRN: row.CRN, BlockID: block.ID}
	}

	section.Days = row.Days
	section.StartDate = startDate
	section.EndDate = endDate
	section.StartTime = startTime
	section.EndTime = endTime
	section.Status = row.Status
	section.Number = row.SectionNumber
	section.NumEnrolled = row.NumEnrolled
	section.MaxEnrollment = row.MaxEnrollment
	section.MeetingType = row.MeetingType
	section.Course = course
	section.Block = block
	section.Subject = subject
	section.Campus = campus
	section.Room = room
	section.Instructor = instructor

	r.store.RegisterSection(section)

	if existed {
		return section, nil
	}

	return r.cache.sections.put(key, section), nil
}
