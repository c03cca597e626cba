package models

// Room represents a room within a building.
type Room struct {
	ID         int64  `json:"id" db:"id"`
	BuildingID int64  `json:"buildingId" db:"building_id"`
	Number     string `json:"number" db:"number"`

	// Relations (populated when needed)
	Building *Building `json:"building,omitempty"`
}

// RoomKey is the natural key of a Room.
type RoomKey struct {
	Building string
	Number   string
}

// Key returns the room's natural key. The owning building must be attached.
func (r *Room) Key() RoomKey {
	return RoomKey{Building: r.Building.Name, Number: r.Number}
}
