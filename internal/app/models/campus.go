package models

// Campus represents a physical campus location.
type Campus struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Buildings owned by this campus (populated when needed)
	Buildings []*Building `json:"buildings,omitempty"`
}

// CampusKey is the natural key of a Campus.
type CampusKey struct {
	Name string
}

// Key returns the campus's natural key.
func (c *Campus) Key() CampusKey {
	return CampusKey{Name: c.Name}
}

// AddBuilding attaches a building to the campus, keeping both sides of the
// relation consistent.
func (c *Campus) AddBuilding(building *Building) {
	c.Buildings = append(c.Buildings, building)
	building.Campus = c
}
