// Package ui renders generated maps in the terminal using tcell.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/repocrawl/internal/dungeon"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Render draws the map with its spawn marker and a status line.
func (s *Screen) Render(m *dungeon.Map, seed int64) {
	s.screen.Clear()

	for y := 0; y < m.Grid.Height; y++ {
		for x := 0; x < m.Grid.Width; x++ {
			tile := m.Grid.Tiles[y][x]
			s.screen.SetContent(x, y, tile.Rune(), nil, tileStyle(tile))
		}
	}

	if m.HasSpawn() {
		spawnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
		s.screen.SetContent(m.SpawnX, m.SpawnY, '@', nil, spawnStyle)
	}

	status := fmt.Sprintf("seed %d | %d rooms | r: regenerate  q: quit", seed, len(m.Rooms))
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range status {
		s.screen.SetContent(i, m.Grid.Height+1, ch, nil, statusStyle)
	}

	s.screen.Show()
}

// tileStyle returns the display style for a tile type.
func tileStyle(tile dungeon.Tile) tcell.Style {
	switch tile {
	case dungeon.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case dungeon.TileDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorSandyBrown)
	case dungeon.TileExit:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}
