package dungeon

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestGenerateReproducibility(t *testing.T) {
	seed := int64(12345)
	cfg := Config{Width: 40, Height: 30, RoomCount: 6, DoorCount: 4, Strategy: StrategyScatter}

	ctx := context.Background()
	m1, err := Generate(ctx, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	m2, err := Generate(ctx, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}

	if len(m1.Rooms) != len(m2.Rooms) {
		t.Fatalf("room count mismatch: %d != %d", len(m1.Rooms), len(m2.Rooms))
	}
	for i := range m1.Rooms {
		if m1.Rooms[i] != m2.Rooms[i] {
			t.Errorf("room %d mismatch: %+v != %+v", i, m1.Rooms[i], m2.Rooms[i])
		}
	}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if m1.Grid.Tiles[y][x] != m2.Grid.Tiles[y][x] {
				t.Errorf("tile mismatch at (%d,%d): %v != %v", x, y, m1.Grid.Tiles[y][x], m2.Grid.Tiles[y][x])
			}
		}
	}
	if m1.SpawnX != m2.SpawnX || m1.SpawnY != m2.SpawnY {
		t.Errorf("spawn mismatch: (%d,%d) != (%d,%d)", m1.SpawnX, m1.SpawnY, m2.SpawnX, m2.SpawnY)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	cfg := Config{Width: 40, Height: 30, RoomCount: 6, DoorCount: 4, Strategy: StrategyScatter}

	ctx := context.Background()
	m1, err := Generate(ctx, cfg, rand.New(rand.NewSource(12345)))
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	m2, err := Generate(ctx, cfg, rand.New(rand.NewSource(54321)))
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	identical := len(m1.Rooms) == len(m2.Rooms)
	if identical {
		for i := range m1.Rooms {
			if m1.Rooms[i] != m2.Rooms[i] {
				identical = false
				break
			}
		}
	}
	if identical {
		t.Error("maps with different seeds should not be identical")
	}
}

func TestGenerateFullyConnected(t *testing.T) {
	ctx := context.Background()
	for _, strategy := range []Strategy{StrategyScatter, StrategyBSP} {
		for seed := int64(0); seed < 20; seed++ {
			cfg := Config{Width: 32, Height: 32, RoomCount: 8, DoorCount: 5, Strategy: strategy}
			m, err := Generate(ctx, cfg, rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("strategy %d seed %d: %v", strategy, seed, err)
			}
			if !m.Grid.FullyConnected() {
				t.Errorf("strategy %d seed %d: grid is not fully connected", strategy, seed)
			}
		}
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []Config{
		{Width: 0, Height: 20},
		{Width: 20, Height: 0},
		{Width: 5, Height: 20},
		{Width: 20, Height: 6},
	} {
		_, err := Generate(ctx, cfg, rand.New(rand.NewSource(1)))
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("dimensions %dx%d: expected ErrInvalidDimensions, got %v", cfg.Width, cfg.Height, err)
		}
	}
}

func TestGenerateZeroRooms(t *testing.T) {
	cfg := Config{Width: 20, Height: 20, RoomCount: 0, DoorCount: 3, Strategy: StrategyScatter}
	m, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("zero room budget should not fail: %v", err)
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if m.Grid.Tiles[y][x] != TileWall {
				t.Fatalf("expected all-wall grid, found %v at (%d,%d)", m.Grid.Tiles[y][x], x, y)
			}
		}
	}
	if m.HasSpawn() {
		t.Errorf("expected no spawn position, got (%d,%d)", m.SpawnX, m.SpawnY)
	}
}

func TestGenerateSpawnIsFloor(t *testing.T) {
	cfg := Config{Width: 30, Height: 30, RoomCount: 5, DoorCount: 3, Strategy: StrategyScatter}
	m, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if !m.HasSpawn() {
		t.Fatal("expected a spawn position")
	}
	if got := m.Grid.At(m.SpawnX, m.SpawnY); got != TileFloor {
		t.Errorf("spawn tile is %v, want floor", got)
	}

	// Spawn must be the first floor tile in row-major order.
	for y := 0; y <= m.SpawnY; y++ {
		maxX := m.Grid.Width
		if y == m.SpawnY {
			maxX = m.SpawnX
		}
		for x := 0; x < maxX; x++ {
			if m.Grid.Tiles[y][x] == TileFloor {
				t.Fatalf("floor tile at (%d,%d) precedes spawn (%d,%d)", x, y, m.SpawnX, m.SpawnY)
			}
		}
	}
}

func TestGenerateExitInsideRoom(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := Config{Width: 28, Height: 28, RoomCount: 4, DoorCount: 2, Strategy: StrategyScatter}
		m, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		exitX, exitY := -1, -1
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				if m.Grid.Tiles[y][x] == TileExit {
					if exitX >= 0 {
						t.Fatalf("seed %d: multiple exit tiles", seed)
					}
					exitX, exitY = x, y
				}
			}
		}
		if exitX < 0 {
			t.Fatalf("seed %d: no exit tile", seed)
		}

		inside := false
		for _, room := range m.Rooms {
			if exitX > room.X && exitX < room.X+room.Width-1 &&
				exitY > room.Y && exitY < room.Y+room.Height-1 {
				inside = true
				break
			}
		}
		if !inside {
			t.Errorf("seed %d: exit (%d,%d) is not strictly inside any room", seed, exitX, exitY)
		}
	}
}

func TestGenerateDoorsAdjacentToFloor(t *testing.T) {
	for _, strategy := range []Strategy{StrategyScatter, StrategyBSP} {
		cfg := Config{Width: 32, Height: 32, RoomCount: 8, DoorCount: 6, Strategy: strategy}
		m, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("strategy %d: %v", strategy, err)
		}

		doors := 0
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				if m.Grid.Tiles[y][x] != TileDoor {
					continue
				}
				doors++
				if x == 0 || x == cfg.Width-1 || y == 0 || y == cfg.Height-1 {
					t.Errorf("strategy %d: door on border at (%d,%d)", strategy, x, y)
				}
				if m.Grid.floorNeighbors(x, y) < 1 {
					t.Errorf("strategy %d: door at (%d,%d) has no adjacent floor", strategy, x, y)
				}
			}
		}
		if doors > cfg.DoorCount {
			t.Errorf("strategy %d: placed %d doors, budget was %d", strategy, doors, cfg.DoorCount)
		}
	}
}

func TestGenerateBSPScenario(t *testing.T) {
	// 16x16 BSP with a door budget of 3: connected, one exit, at most
	// three doors.
	cfg := Config{Width: 16, Height: 16, RoomCount: 3, DoorCount: 3, Strategy: StrategyBSP}
	m, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	if m.Grid.Width != 16 || m.Grid.Height != 16 {
		t.Fatalf("grid is %dx%d, want 16x16", m.Grid.Width, m.Grid.Height)
	}

	exits, doors := 0, 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			switch m.Grid.Tiles[y][x] {
			case TileExit:
				exits++
			case TileDoor:
				doors++
			}
		}
	}
	if exits < 1 {
		t.Error("expected at least one exit tile")
	}
	if doors > 3 {
		t.Errorf("placed %d doors, budget was 3", doors)
	}
	if !m.Grid.FullyConnected() {
		t.Error("grid is not fully connected")
	}
}
