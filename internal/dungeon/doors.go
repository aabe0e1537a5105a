package dungeon

import "math/rand"

// placeDoors marks up to count interior wall tiles as doors. Candidates
// are walls strictly inside the border whose floor neighbors satisfy the
// strategy's junction predicate; the placed doors are sampled from the
// candidates uniformly without replacement. Returns the number placed.
func placeDoors(g *Grid, count int, lay layout, rng *rand.Rand) int {
	if count <= 0 {
		return 0
	}

	var candidates [][2]int
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if g.Tiles[y][x] == TileWall && lay.doorCandidate(g, x, y) {
				candidates = append(candidates, [2]int{x, y})
			}
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	placed := min(count, len(candidates))
	for _, c := range candidates[:placed] {
		g.Tiles[c[1]][c[0]] = TileDoor
	}
	return placed
}

// placeExit marks a random strictly-interior tile of a random room as
// the exit. Skipped when no rooms were placed.
func placeExit(g *Grid, rooms []Room, rng *rand.Rand) {
	if len(rooms) == 0 {
		return
	}
	room := rooms[rng.Intn(len(rooms))]
	x := room.X + 1 + rng.Intn(max(1, room.Width-2))
	y := room.Y + 1 + rng.Intn(max(1, room.Height-2))
	g.Tiles[y][x] = TileExit
}
