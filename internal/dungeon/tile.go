// Package dungeon provides procedural map generation: rooms, corridors,
// doors, and an exit carved into a connected tile grid.
package dungeon

// Tile represents a single map tile. The numeric values are the wire
// encoding consumed by renderers, so they must not be reordered.
type Tile int

const (
	// TileFloor is a passable floor tile.
	TileFloor Tile = 0
	// TileWall is an impassable wall tile.
	TileWall Tile = 1
	// TileDoor is a doorway between a room and a corridor.
	TileDoor Tile = 2
	// TileExit is the level exit.
	TileExit Tile = 5
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t != TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t {
	case TileWall:
		return '#'
	case TileDoor:
		return '+'
	case TileExit:
		return '>'
	default:
		return '.'
	}
}
