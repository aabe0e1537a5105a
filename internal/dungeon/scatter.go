package dungeon

import "math/rand"

const (
	// Scatter room dimensions.
	minScatterRoom = 4
	maxScatterRoom = 8

	// placementCeiling bounds room placement attempts. A cramped grid
	// exhausts the ceiling and yields fewer rooms than requested, which
	// is an accepted degraded outcome.
	placementCeiling = 100

	// overlapPadding is the clearance kept between scattered rooms.
	overlapPadding = 2

	// extraCorridorChance is the acceptance probability for each loop
	// corridor added on top of the spanning tree.
	extraCorridorChance = 0.4
)

// scatterLayout places randomly scattered non-overlapping rooms and
// links them with a greedy nearest-neighbor spanning tree.
type scatterLayout struct{}

func (s *scatterLayout) place(width, height, roomCount int, rng *rand.Rand) []Room {
	rooms := make([]Room, 0, roomCount)

	maxW := min(maxScatterRoom, width-3)
	maxH := min(maxScatterRoom, height-3)

	for attempt := 0; attempt < placementCeiling; attempt++ {
		if len(rooms) >= roomCount {
			break
		}

		w := minScatterRoom + rng.Intn(maxW-minScatterRoom+1)
		h := minScatterRoom + rng.Intn(maxH-minScatterRoom+1)
		candidate := Room{
			X:      1 + rng.Intn(width-w-2),
			Y:      1 + rng.Intn(height-h-2),
			Width:  w,
			Height: h,
		}

		overlaps := false
		for _, existing := range rooms {
			if candidate.Overlaps(existing, overlapPadding) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			rooms = append(rooms, candidate)
		}
	}

	return rooms
}

// connect builds a spanning tree over the rooms, repeatedly attaching the
// unconnected room nearest (by Manhattan distance between centers) to any
// connected one, then adds a few random corridors for loops.
func (s *scatterLayout) connect(g *Grid, rooms []Room, rng *rand.Rand) {
	if len(rooms) == 0 {
		return
	}

	connected := make([]bool, len(rooms))
	connected[rng.Intn(len(rooms))] = true

	for linked := 1; linked < len(rooms); linked++ {
		bestFrom, bestTo := -1, -1
		bestDist := 0
		for from := range rooms {
			if !connected[from] {
				continue
			}
			for to := range rooms {
				if connected[to] {
					continue
				}
				d := centerDistance(rooms[from], rooms[to])
				if bestTo == -1 || d < bestDist {
					bestFrom, bestTo, bestDist = from, to, d
				}
			}
		}
		if bestTo == -1 {
			break
		}
		s.carveCorridor(g, rooms[bestFrom], rooms[bestTo])
		connected[bestTo] = true
	}

	// Extra random connections so the map is not a pure tree.
	if len(rooms) < 2 {
		return
	}
	for i := 0; i < len(rooms)/2; i++ {
		a := rng.Intn(len(rooms))
		b := rng.Intn(len(rooms))
		if a == b {
			continue
		}
		if rng.Float64() < extraCorridorChance {
			s.carveCorridor(g, rooms[a], rooms[b])
		}
	}
}

// carveCorridor carves an L-shaped corridor, horizontal leg first.
func (s *scatterLayout) carveCorridor(g *Grid, a, b Room) {
	x1, y1 := a.Center()
	x2, y2 := b.Center()
	g.carveHorizontal(x1, x2, y1)
	g.carveVertical(y1, y2, x2)
}

// doorCandidate: a wall separating exactly one floor region from the rest.
func (s *scatterLayout) doorCandidate(g *Grid, x, y int) bool {
	return g.floorNeighbors(x, y) == 1
}

// centerDistance returns the Manhattan distance between two room centers.
func centerDistance(a, b Room) int {
	ax, ay := a.Center()
	bx, by := b.Center()
	return abs(ax-bx) + abs(ay-by)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
