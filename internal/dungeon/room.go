package dungeon

// Room represents a rectangular room in the dungeon.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps returns true if this room's bounding box, expanded by padding
// on every side, intersects the other room's.
func (r Room) Overlaps(other Room, padding int) bool {
	return r.X-padding < other.X+other.Width+padding &&
		r.X+r.Width+padding > other.X-padding &&
		r.Y-padding < other.Y+other.Height+padding &&
		r.Y+r.Height+padding > other.Y-padding
}
