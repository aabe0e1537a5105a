package dungeon

import (
	"context"
	"errors"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/repocrawl/internal/telemetry"
)

const (
	// minGridSide is the smallest width or height that can host a
	// minimum-size room inside the 1-tile border.
	minGridSide = 7

	// defaultMaxRetries bounds whole-pipeline regeneration when a
	// layout fails the connectivity check.
	defaultMaxRetries = 10
)

var (
	// ErrInvalidDimensions is returned when the grid cannot host the
	// minimum room size plus border. Not retried.
	ErrInvalidDimensions = errors.New("dungeon: dimensions too small for minimum room size")

	// ErrGenerationFailed is returned when no attempt produced a fully
	// connected grid within the retry budget.
	ErrGenerationFailed = errors.New("dungeon: no connected layout within retry budget")
)

// Strategy selects the room placement algorithm.
type Strategy int

const (
	// StrategyScatter scatters non-overlapping rooms at random and
	// links them with a nearest-neighbor spanning tree. Honors the
	// requested room count, up to the placement ceiling.
	StrategyScatter Strategy = iota
	// StrategyBSP recursively partitions the grid and places one room
	// per leaf. Room count is governed by the partition depth, not by
	// the requested room count.
	StrategyBSP
)

// Config holds the generation parameters.
type Config struct {
	Width  int
	Height int

	// RoomCount is the target number of rooms. Scatter may place fewer
	// on a cramped grid; BSP ignores it (see Strategy).
	RoomCount int

	// DoorCount is the target number of doors. Fewer are placed when
	// the grid offers fewer junction candidates.
	DoorCount int

	Strategy Strategy

	// MaxRetries bounds pipeline reruns after failed connectivity
	// validation. Zero means defaultMaxRetries.
	MaxRetries int
}

// Map is a finished, validated dungeon.
type Map struct {
	Grid  *Grid
	Rooms []Room

	// SpawnX, SpawnY point at the first floor tile in scan order, or
	// (-1, -1) when the map has no floor.
	SpawnX int
	SpawnY int
}

// HasSpawn reports whether the map contains a usable spawn position.
func (m *Map) HasSpawn() bool {
	return m.SpawnX >= 0 && m.SpawnY >= 0
}

// layout is the room placement strategy contract: produce rooms, link
// them with corridors, and classify door candidates.
type layout interface {
	place(width, height, roomCount int, rng *rand.Rand) []Room
	connect(g *Grid, rooms []Room, rng *rand.Rand)
	doorCandidate(g *Grid, x, y int) bool
}

func newLayout(s Strategy) layout {
	if s == StrategyBSP {
		return &bspLayout{}
	}
	return &scatterLayout{}
}

// Generate runs the full pipeline: allocate, place rooms, carve,
// connect, validate (with bounded regeneration), place doors and exit,
// and scan for the spawn position. All randomness comes from rng, so a
// fixed seed reproduces the same map.
func Generate(ctx context.Context, cfg Config, rng *rand.Rand) (*Map, error) {
	tracer := telemetry.Tracer("dungeon")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	if cfg.Width < minGridSide || cfg.Height < minGridSide {
		return nil, ErrInvalidDimensions
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	lay := newLayout(cfg.Strategy)

	var (
		grid  *Grid
		rooms []Room
	)
	connected := false
	attempts := 0
	for attempt := 0; attempt < retries && !connected; attempt++ {
		attempts++
		grid = NewGrid(cfg.Width, cfg.Height)
		rooms = lay.place(cfg.Width, cfg.Height, cfg.RoomCount, rng)
		for _, room := range rooms {
			grid.carveRoom(room)
		}
		lay.connect(grid, rooms, rng)

		// A room-less grid stays all wall; that is the accepted
		// degraded outcome for a zero room budget, not a failure.
		connected = len(rooms) == 0 || grid.FullyConnected()
	}
	if !connected {
		span.SetAttributes(attribute.Int("dungeon.attempts", attempts))
		return nil, ErrGenerationFailed
	}

	doors := 0
	if len(rooms) > 0 {
		doors = placeDoors(grid, cfg.DoorCount, lay, rng)
		placeExit(grid, rooms, rng)
	}

	m := &Map{Grid: grid, Rooms: rooms, SpawnX: -1, SpawnY: -1}
	m.SpawnX, m.SpawnY = spawnPosition(grid)

	span.SetAttributes(
		attribute.Int("dungeon.width", cfg.Width),
		attribute.Int("dungeon.height", cfg.Height),
		attribute.Int("dungeon.room_count", len(rooms)),
		attribute.Int("dungeon.door_count", doors),
		attribute.Int("dungeon.attempts", attempts),
	)

	return m, nil
}

// spawnPosition returns the first floor tile in row-major scan order,
// or (-1, -1) when none exists.
func spawnPosition(g *Grid) (int, int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == TileFloor {
				return x, y
			}
		}
	}
	return -1, -1
}
