package dungeon

import (
	"math/rand"
	"testing"
)

func TestFullyConnectedAllWall(t *testing.T) {
	g := NewGrid(10, 10)
	if g.FullyConnected() {
		t.Error("a grid with no floor tiles is not connected")
	}
}

func TestFullyConnectedSingleRegion(t *testing.T) {
	g := NewGrid(10, 10)
	g.carveRoom(Room{X: 2, Y: 2, Width: 4, Height: 3})
	if !g.FullyConnected() {
		t.Error("a single carved room should be connected")
	}
}

func TestFullyConnectedDisjointRegions(t *testing.T) {
	g := NewGrid(12, 12)
	g.carveRoom(Room{X: 1, Y: 1, Width: 3, Height: 3})
	g.carveRoom(Room{X: 7, Y: 7, Width: 3, Height: 3})
	if g.FullyConnected() {
		t.Error("two disjoint rooms must not validate as connected")
	}

	// Link them and re-check.
	g.carveHorizontal(2, 8, 2)
	g.carveVertical(2, 8, 8)
	if !g.FullyConnected() {
		t.Error("linked rooms should validate as connected")
	}
}

func TestFullyConnectedIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	lay := &scatterLayout{}
	g := NewGrid(24, 24)
	rooms := lay.place(24, 24, 4, rng)
	for _, room := range rooms {
		g.carveRoom(room)
	}
	lay.connect(g, rooms, rng)

	first := g.FullyConnected()
	second := g.FullyConnected()
	if first != second {
		t.Fatalf("validation is not idempotent: %v then %v", first, second)
	}
}

func TestCarveNeverTouchesBorder(t *testing.T) {
	g := NewGrid(10, 8)
	g.carveHorizontal(0, 9, 0)
	g.carveVertical(0, 7, 9)
	g.carveRoom(Room{X: 0, Y: 0, Width: 10, Height: 8})

	for x := 0; x < g.Width; x++ {
		if g.Tiles[0][x] != TileWall || g.Tiles[g.Height-1][x] != TileWall {
			t.Fatalf("border breached at column %d", x)
		}
	}
	for y := 0; y < g.Height; y++ {
		if g.Tiles[y][0] != TileWall || g.Tiles[y][g.Width-1] != TileWall {
			t.Fatalf("border breached at row %d", y)
		}
	}
}

func TestCarvePreservesDoorsAndExit(t *testing.T) {
	g := NewGrid(10, 10)
	g.Tiles[4][4] = TileDoor
	g.Tiles[5][5] = TileExit

	g.carveHorizontal(1, 8, 4)
	g.carveVertical(1, 8, 5)

	if g.Tiles[4][4] != TileDoor {
		t.Error("corridor carving overwrote a door")
	}
	if g.Tiles[5][5] != TileExit {
		t.Error("corridor carving overwrote the exit")
	}
}
