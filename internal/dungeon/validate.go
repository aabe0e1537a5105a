package dungeon

// FullyConnected reports whether every non-wall tile is reachable from
// every other. It flood-fills from the first non-wall tile in scan order
// and compares the reachable count against the total. A grid with no
// non-wall tiles is not connected.
func (g *Grid) FullyConnected() bool {
	total := 0
	startX, startY := -1, -1
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] != TileWall {
				total++
				if startX < 0 {
					startX, startY = x, y
				}
			}
		}
	}
	if total == 0 {
		return false
	}

	visited := make([][]bool, g.Height)
	for y := range visited {
		visited[y] = make([]bool, g.Width)
	}

	queue := [][2]int{{startX, startY}}
	visited[startY][startX] = true
	reached := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		reached++
		for _, d := range [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if !g.InBounds(nx, ny) || visited[ny][nx] || g.Tiles[ny][nx] == TileWall {
				continue
			}
			visited[ny][nx] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}

	return reached == total
}
