package importer

import (
	"github.com/ashby/coursebook/internal/app/models"
)

// table is a lazily seeded natural-key index over one entity type. The first
// access loads every stored record of the type; lookups after that are pure
// map hits. Entities put into the table are visible to later lookups in the
// same run with no pending/committed distinction.
type table[K comparable, E any] struct {
	seeded bool
	items  map[K]E
}

// ensure seeds the table on first use.
func (t *table[K, E]) ensure(load func() ([]E, error), keyOf func(E) K) error {
	if t.seeded {
		return nil
	}

	stored, err := load()
	if err != nil {
		return err
	}

	t.items = make(map[K]E, len(stored))
	for _, item := range stored {
		t.items[keyOf(item)] = item
	}
	t.seeded = true

	return nil
}

// lookup returns the entity registered under k, if any.
func (t *table[K, E]) lookup(k K) (E, bool) {
	e, ok := t.items[k]
	return e, ok
}

// put registers an entity under k and returns it.
func (t *table[K, E]) put(k K, e E) E {
	t.items[k] = e
	return e
}

// Cache memoizes entity resolution for the duration of one import run. It is
// owned by the reconciler and never shared between runs, so repeated imports
// and tests do not leak state into each other.
type Cache struct {
	subjects    table[models.SubjectKey, *models.Subject]
	courses     table[models.CourseKey, *models.Course]
	campuses    table[models.CampusKey, *models.Campus]
	buildings   table[models.BuildingKey, *models.Building]
	rooms       table[models.RoomKey, *models.Room]
	instructors table[models.InstructorKey, *models.Instructor]
	terms       table[models.TermKey, *models.Term]
	blocks      table[models.TermBlockKey, *models.TermBlock]
	sections    table[models.SectionKey, *models.Section]
}

// NewCache returns an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{}
}
