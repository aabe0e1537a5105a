package dungeon

import (
	"math/rand"
	"testing"
)

func TestScatterPlacementRespectsPadding(t *testing.T) {
	// 20x20 with five requested rooms: at most five placed, all with
	// at least two tiles of clearance between them.
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		lay := &scatterLayout{}
		rooms := lay.place(20, 20, 5, rng)

		if len(rooms) > 5 {
			t.Fatalf("seed %d: placed %d rooms, requested 5", seed, len(rooms))
		}
		for i := range rooms {
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Overlaps(rooms[j], overlapPadding) {
					t.Errorf("seed %d: rooms %d and %d violate the %d-tile clearance", seed, i, j, overlapPadding)
				}
			}
		}
	}
}

func TestScatterRoomsInsideBorder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	lay := &scatterLayout{}
	rooms := lay.place(30, 24, 10, rng)

	for i, room := range rooms {
		if room.Width < minScatterRoom || room.Height < minScatterRoom {
			t.Errorf("room %d is %dx%d, below minimum", i, room.Width, room.Height)
		}
		if room.X < 1 || room.Y < 1 || room.X+room.Width > 29 || room.Y+room.Height > 23 {
			t.Errorf("room %d %+v leaves the 1-tile border", i, room)
		}
	}
}

func TestScatterCrampedGridDegrades(t *testing.T) {
	// A minimal grid cannot hold ten padded rooms; the ceiling runs out
	// and fewer rooms is not an error.
	rng := rand.New(rand.NewSource(11))
	lay := &scatterLayout{}
	rooms := lay.place(12, 12, 10, rng)

	if len(rooms) >= 10 {
		t.Fatalf("expected fewer than 10 rooms on a 12x12 grid, got %d", len(rooms))
	}
	if len(rooms) == 0 {
		t.Fatal("expected at least one room to fit")
	}
}

func TestScatterConnectLinksAllRooms(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	lay := &scatterLayout{}
	g := NewGrid(36, 36)
	rooms := lay.place(36, 36, 7, rng)
	for _, room := range rooms {
		g.carveRoom(room)
	}
	lay.connect(g, rooms, rng)

	if !g.FullyConnected() {
		t.Fatal("spanning tree left the grid disconnected")
	}
}

func TestScatterDoorCandidate(t *testing.T) {
	g := NewGrid(7, 7)
	g.Tiles[3][4] = TileFloor

	lay := &scatterLayout{}
	if !lay.doorCandidate(g, 3, 3) {
		t.Error("wall with one floor neighbor should be a candidate")
	}

	g.Tiles[3][2] = TileFloor
	if lay.doorCandidate(g, 3, 3) {
		t.Error("wall with two floor neighbors is a junction, not a scatter candidate")
	}
}
