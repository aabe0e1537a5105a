package dungeon

// Grid is a rectangular tile buffer. Tiles are stored row-major, indexed
// Tiles[y][x]. Dimensions are fixed after allocation.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid allocates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// InBounds reports whether the position lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given position, or a wall when out of bounds.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Ints returns the grid as nested integer rows using the fixed tile
// encoding, for serialization to renderers.
func (g *Grid) Ints() [][]int {
	rows := make([][]int, g.Height)
	for y := range rows {
		rows[y] = make([]int, g.Width)
		for x := range rows[y] {
			rows[y][x] = int(g.Tiles[y][x])
		}
	}
	return rows
}

// carveRoom turns every wall tile inside the room to floor.
func (g *Grid) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.carve(x, y)
		}
	}
}

// carveHorizontal carves a horizontal corridor segment at row y.
func (g *Grid) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.carve(x, y)
	}
}

// carveVertical carves a vertical corridor segment at column x.
func (g *Grid) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.carve(x, y)
	}
}

// carve turns a single wall tile to floor. The 1-tile border stays
// intact, and door or exit tiles are never overwritten.
func (g *Grid) carve(x, y int) {
	if x <= 0 || x >= g.Width-1 || y <= 0 || y >= g.Height-1 {
		return
	}
	if g.Tiles[y][x] == TileWall {
		g.Tiles[y][x] = TileFloor
	}
}

// floorNeighbors counts the 4-neighbors of (x, y) that are floor tiles.
func (g *Grid) floorNeighbors(x, y int) int {
	count := 0
	for _, d := range [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
		if g.At(x+d[0], y+d[1]) == TileFloor {
			count++
		}
	}
	return count
}
