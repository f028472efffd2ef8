// Package config provides YAML-based configuration loading for the snake
// game, with environment overrides for the values that differ per machine.
package config

import (
	"fmt"

	"github.com/vovakirdan/snake-astar/internal/grid"
)

// SnakeConfig contains all configuration for a snake session.
type SnakeConfig struct {
	Window     WindowConfig `yaml:"window"`
	CellSize   int          `yaml:"cell_size"`
	Speed      int          `yaml:"speed"` // Ticks per second
	Start      StartConfig  `yaml:"start"`
	FoodPoints int          `yaml:"food_points"`
	Autopilot  bool         `yaml:"autopilot"`
	ShowPath   bool         `yaml:"show_path"`
	TraceDB    string       `yaml:"trace_db"`
}

// WindowConfig is the playfield size in pixels.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StartConfig places the snake at the beginning of a game. The body trails
// behind the head, opposite to the starting direction.
type StartConfig struct {
	Col       int    `yaml:"col"`
	Row       int    `yaml:"row"`
	Length    int    `yaml:"length"`
	Direction string `yaml:"direction"`
}

// Mapper builds the grid mapper for the configured window.
func (c SnakeConfig) Mapper() (grid.Mapper, error) {
	return grid.NewMapper(c.Window.Width, c.Window.Height, c.CellSize)
}

// StartDirection parses the configured starting direction.
func (c SnakeConfig) StartDirection() (grid.Direction, error) {
	return grid.ParseDirection(c.Start.Direction)
}

// StartBody returns the initial body cells, head first.
func (c SnakeConfig) StartBody() ([]grid.Cell, error) {
	dir, err := c.StartDirection()
	if err != nil {
		return nil, err
	}
	body := make([]grid.Cell, 0, c.Start.Length)
	seg := grid.Cell{Col: c.Start.Col, Row: c.Start.Row}
	for range c.Start.Length {
		body = append(body, seg)
		seg = seg.Step(dir.Opposite())
	}
	return body, nil
}

// Validate checks that the configuration describes a playable game.
func (c SnakeConfig) Validate() error {
	m, err := c.Mapper()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("config: speed must be positive, got %d", c.Speed)
	}
	if c.Start.Length <= 0 {
		return fmt.Errorf("config: start length must be positive, got %d", c.Start.Length)
	}
	if c.FoodPoints < 0 {
		return fmt.Errorf("config: food_points must not be negative, got %d", c.FoodPoints)
	}
	body, err := c.StartBody()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, seg := range body {
		if !m.InBounds(seg) {
			b := m.Bounds()
			return fmt.Errorf("config: start segment %v outside %dx%d grid", seg, b.Cols, b.Rows)
		}
	}
	return nil
}
