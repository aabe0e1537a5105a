// Package main is a terminal previewer for generated maps.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/repocrawl/internal/dungeon"
	"github.com/samdwyer/repocrawl/internal/ui"
)

func main() {
	width := flag.Int("width", 60, "map width in tiles")
	height := flag.Int("height", 30, "map height in tiles")
	rooms := flag.Int("rooms", 8, "target room count")
	doors := flag.Int("doors", 5, "target door count")
	seed := flag.Int64("seed", 0, "generation seed (0 picks one from the clock)")
	strategy := flag.String("strategy", "scatter", "placement strategy: scatter or bsp")
	flag.Parse()

	cfg := dungeon.Config{
		Width:     *width,
		Height:    *height,
		RoomCount: *rooms,
		DoorCount: *doors,
	}
	if *strategy == "bsp" {
		cfg.Strategy = dungeon.StrategyBSP
	}

	mapSeed := *seed
	if mapSeed == 0 {
		mapSeed = time.Now().UnixNano()
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Close()

	ctx := context.Background()
	m, err := dungeon.Generate(ctx, cfg, rand.New(rand.NewSource(mapSeed)))
	if err != nil {
		screen.Close()
		log.Fatalf("Generation failed: %v", err)
	}

	for {
		screen.Render(m, mapSeed)

		ev := screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case key.Key() == tcell.KeyEscape, key.Rune() == 'q':
			return
		case key.Rune() == 'r':
			mapSeed = time.Now().UnixNano()
			m, err = dungeon.Generate(ctx, cfg, rand.New(rand.NewSource(mapSeed)))
			if err != nil {
				screen.Close()
				log.Fatalf("Generation failed: %v", err)
			}
		}
	}
}
