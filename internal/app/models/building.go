package models

// Building represents a building on a campus.
type Building struct {
	ID       int64  `json:"id" db:"id"`
	CampusID int64  `json:"campusId" db:"campus_id"`
	Name     string `json:"name" db:"name"`

	// Relations (populated when needed)
	Campus *Campus `json:"campus,omitempty"`
	Rooms  []*Room `json:"rooms,omitempty"`
}

// BuildingKey is the natural key of a Building.
type BuildingKey struct {
	Campus string
	Name   string
}

// Key returns the building's natural key. The owning campus must be attached.
func (b *Building) Key() BuildingKey {
	return BuildingKey{Campus: b.Campus.Name, Name: b.Name}
}

// AddRoom attaches a room to the building, keeping both sides of the
// relation consistent.
func (b *Building) AddRoom(room *Room) {
	b.Rooms = append(b.Rooms, room)
	room.Building = b
}
