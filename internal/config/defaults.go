package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Window: WindowConfig{
			Width:  720,
			Height: 480,
		},
		CellSize: 10,
		Speed:    15,
		Start: StartConfig{
			Col:       10,
			Row:       5,
			Length:    4,
			Direction: "right",
		},
		FoodPoints: 10,
		Autopilot:  false,
		ShowPath:   true,
	}
}
